package certs

import (
	"strings"
	"testing"
	"time"

	"storageguard/models"
)

func TestQRPayloadRoundTrip(t *testing.T) {
	payload := QRPayload("cert-123", "bk-9", "48301275")

	certID, ok := VerifyQRPayload(payload)
	if !ok {
		t.Fatal("freshly generated payload failed verification")
	}
	if certID != "cert-123" {
		t.Errorf("cert id = %s, want cert-123", certID)
	}
}

func TestQRPayloadTamperDetected(t *testing.T) {
	payload := QRPayload("cert-123", "bk-9", "48301275")

	tampered := strings.Replace(payload, "bk-9", "bk-8", 1)
	if _, ok := VerifyQRPayload(tampered); ok {
		t.Error("tampered payload passed verification")
	}

	if _, ok := VerifyQRPayload("garbage-without-pipes"); ok {
		t.Error("payload without structure passed verification")
	}
}

func TestRenderPDFProducesDocument(t *testing.T) {
	cert := models.Certificate{
		CertID:     "cert-123",
		BookingID:  "bk-9",
		CropType:   "wheat",
		QuantityKg: 500,
		LocationID: "L1",
		UniqueCode: "48301275",
		IssuedAt:   time.Now(),
	}
	readings := []models.SensorReading{
		{LocationID: "L1", SensorType: "temperature", Value: 4.5, Unit: "C", Status: "ok"},
	}
	pest := &models.PestDetection{LocationID: "L1", PestType: "weevil", Severity: "low", ConfidenceScore: 0.4}

	pdfBytes, err := RenderPDF(cert, readings, pest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pdfBytes) < 5 {
		t.Fatal("empty PDF output")
	}
	if !strings.HasPrefix(string(pdfBytes[:5]), "%PDF-") {
		t.Error("output does not look like a PDF document")
	}
}
