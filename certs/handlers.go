package certs

import (
	"log"
	"net/http"
	"time"

	"storageguard/db"
	"storageguard/models"
	"storageguard/telemetry"
	"storageguard/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler issues and verifies storage quality certificates.
type Handler struct {
	Store *telemetry.Store
}

func NewHandler(store *telemetry.Store) *Handler {
	return &Handler{Store: store}
}

// IssueCertificate returns the certificate PDF for a booking, issuing a
// new record the first time and reusing the stored one afterwards.
func (h *Handler) IssueCertificate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("bookingid")
	farmerID := utils.GetUserIDFromRequest(r)

	var cert models.Certificate
	err := db.CertificatesCollection.FindOne(r.Context(), bson.M{"bookingid": bookingID}).Decode(&cert)
	if err == mongo.ErrNoDocuments {
		item, ok := h.findBooking(bookingID)
		if !ok {
			utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Booking not found in inventory"})
			return
		}
		cert = models.Certificate{
			CertID:     uuid.NewString(),
			BookingID:  bookingID,
			FarmerID:   farmerID,
			CropType:   item.CropType,
			QuantityKg: item.QuantityKg,
			LocationID: item.LocationID,
			UniqueCode: utils.GenerateRandomDigitString(8),
			IssuedAt:   time.Now(),
		}
		if _, err := db.CertificatesCollection.InsertOne(r.Context(), cert); err != nil {
			log.Println("certificate insert failed:", err)
			utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to issue certificate"})
			return
		}
	} else if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to load certificate"})
		return
	}

	readings := h.Store.SensorsFor(cert.LocationID)
	var pest *models.PestDetection
	if p, ok := h.Store.PestFor(cert.LocationID); ok {
		pest = &p
	}

	pdfBytes, err := RenderPDF(cert, readings, pest)
	if err != nil {
		log.Println("certificate render failed:", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to generate certificate"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=certificate-"+cert.UniqueCode+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

// VerifyCertificate checks a scanned QR payload against the issued record.
func (h *Handler) VerifyCertificate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	payload := r.URL.Query().Get("payload")
	if payload == "" {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "payload is required"})
		return
	}

	certID, ok := VerifyQRPayload(payload)
	if !ok {
		utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{"success": false, "message": "Invalid certificate signature"})
		return
	}

	var cert models.Certificate
	if err := db.CertificatesCollection.FindOne(r.Context(), bson.M{"certid": certID}).Decode(&cert); err != nil {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Certificate not found"})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "certificate": cert})
}

func (h *Handler) findBooking(bookingID string) (models.InventoryItem, bool) {
	for _, item := range h.Store.Snapshot() {
		if item.BookingID == bookingID {
			return item, true
		}
	}
	return models.InventoryItem{}, false
}
