package certs

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"storageguard/globals"
	"storageguard/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// QRPayload builds the signed verification payload embedded in a
// certificate's QR code: certID|bookingID|uniqueCode|signature.
func QRPayload(certID, bookingID, uniqueCode string) string {
	data := fmt.Sprintf("%s|%s|%s", certID, bookingID, uniqueCode)

	h := hmac.New(sha256.New, globals.CertHMACSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyQRPayload checks the signature on a scanned payload and returns
// the certificate ID when it is authentic.
func VerifyQRPayload(payload string) (certID string, ok bool) {
	idx := lastPipe(payload)
	if idx < 0 {
		return "", false
	}
	data, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, globals.CertHMACSecret)
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return "", false
	}

	// data is certID|bookingID|uniqueCode
	for i := 0; i < len(data); i++ {
		if data[i] == '|' {
			return data[:i], true
		}
	}
	return "", false
}

func lastPipe(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '|' {
			return i
		}
	}
	return -1
}

// RenderPDF produces the certificate document with an embedded QR code and
// the latest telemetry for the storage location, when available.
func RenderPDF(cert models.Certificate, readings []models.SensorReading, pest *models.PestDetection) ([]byte, error) {
	qrPNG, err := qrcode.Encode(QRPayload(cert.CertID, cert.BookingID, cert.UniqueCode), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %v", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Storage Quality Certificate")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Certificate ID: %s", cert.CertID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Booking: %s", cert.BookingID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Crop: %s (%.0f kg)", cert.CropType, cert.QuantityKg))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Location: %s", cert.LocationID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Issued: %s", cert.IssuedAt.Format(time.RFC1123)))
	pdf.Ln(12)

	if len(readings) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 10, "Conditions at issuance")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		for _, s := range readings {
			pdf.Cell(0, 8, fmt.Sprintf("%s: %.2f %s (%s)", s.SensorType, s.Value, s.Unit, s.Status))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	if pest != nil {
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, fmt.Sprintf("Last pest detection: %s (severity %s, confidence %.2f)",
			pest.PestType, pest.Severity, pest.ConfidenceScore))
		pdf.Ln(8)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %v", err)
	}
	return buf.Bytes(), nil
}
