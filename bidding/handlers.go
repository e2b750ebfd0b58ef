package bidding

import (
	"context"
	"log"
	"net/http"
	"time"

	"storageguard/db"
	"storageguard/gateway"
	"storageguard/models"
	"storageguard/mq"
	"storageguard/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// Handler serves the RFQ and bid endpoints.
type Handler struct {
	Gateway *gateway.Client
}

func NewHandler(gw *gateway.Client) *Handler {
	return &Handler{Gateway: gw}
}

// GetRFQs proxies the farmer's RFQ list from the storage service.
func (h *Handler) GetRFQs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rfqs, err := h.Gateway.GetRFQs(r.Context())
	if err != nil {
		log.Println("rfq list fetch failed:", err)
		utils.RespondWithJSON(w, http.StatusBadGateway, utils.M{"success": false, "message": "Could not load RFQs"})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "rfqs": rfqs})
}

// GetRankedBids returns the bids for one RFQ ordered cheapest first, each
// with its cost estimate against the RFQ's quantity, duration and budget.
func (h *Handler) GetRankedBids(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rfqID := ps.ByName("id")

	rfq, ok := h.findRFQ(r.Context(), rfqID)
	if !ok {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "RFQ not found"})
		return
	}

	bids, err := h.Gateway.GetBids(r.Context(), rfqID)
	if err != nil {
		log.Println("bid list fetch failed:", err)
		utils.RespondWithJSON(w, http.StatusBadGateway, utils.M{"success": false, "message": "Could not load bids"})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"rfq":     rfq,
		"bids":    RankBids(rfq, bids),
	})
}

// AcceptBid accepts a bid upstream, records the award, and seeds a pending
// vendor order. On upstream failure nothing is recorded and the response
// states that no change occurred.
func (h *Handler) AcceptBid(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rfqID := ps.ByName("id")
	bidID := r.URL.Query().Get("bid_id")
	farmerID := utils.GetUserIDFromRequest(r)

	if bidID == "" {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "bid_id is required"})
		return
	}

	rfq, ok := h.findRFQ(r.Context(), rfqID)
	if !ok {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "RFQ not found"})
		return
	}
	if rfq.Status != models.RFQStatusOpen {
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{"success": false, "message": "RFQ is no longer open; no change was made"})
		return
	}

	result, err := h.Gateway.AcceptBid(r.Context(), rfqID, bidID, farmerID)
	if err != nil {
		log.Println("accept bid failed:", err)
		utils.RespondWithJSON(w, http.StatusBadGateway, utils.M{"success": false, "message": "Bid acceptance failed; no change was made"})
		return
	}

	award := models.AwardRecord{
		RFQID:      rfqID,
		BidID:      bidID,
		FarmerID:   farmerID,
		TotalPrice: result.TotalPrice,
		AwardedAt:  time.Now(),
	}
	if _, err := db.AwardsCollection.InsertOne(r.Context(), award); err != nil {
		// The upstream accept already went through; the award record is
		// best effort and the booking still exists server-side.
		log.Println("award record insert failed:", err)
	}

	order := models.VendorOrder{
		OrderID:    uuid.NewString(),
		FarmerID:   farmerID,
		RFQID:      rfqID,
		CropType:   rfq.Crop,
		QuantityKg: rfq.QuantityKg,
		Status:     models.OrderStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if _, err := db.VendorOrdersCollection.InsertOne(r.Context(), order); err != nil {
		log.Println("vendor order insert failed:", err)
	}

	go mq.Emit(context.Background(), mq.Update{Kind: "award", FarmerID: farmerID, Payload: award})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":     true,
		"job_id":      result.JobID,
		"total_price": result.TotalPrice,
	})
}

func (h *Handler) findRFQ(ctx context.Context, rfqID string) (models.RFQ, bool) {
	rfqs, err := h.Gateway.GetRFQs(ctx)
	if err != nil {
		log.Println("rfq lookup failed:", err)
		return models.RFQ{}, false
	}
	for _, r := range rfqs {
		if r.ID == rfqID {
			return r, true
		}
	}
	return models.RFQ{}, false
}
