package dashboard

import (
	"log"
	"net/http"

	"storageguard/gateway"
	"storageguard/models"
	"storageguard/rdx"
	"storageguard/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the summary counters and performance metrics. The poller
// keeps the cache warm for the configured farmer; other farmers fall back
// to the Redis snapshot and then to a live gateway fetch.
type Handler struct {
	Cache        *Cache
	Gateway      *gateway.Client
	PolledFarmer string
}

func NewHandler(cache *Cache, gw *gateway.Client, polledFarmer string) *Handler {
	return &Handler{Cache: cache, Gateway: gw, PolledFarmer: polledFarmer}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	farmerID := utils.GetUserIDFromRequest(r)

	if farmerID == h.PolledFarmer {
		if summary, at, ok := h.Cache.Summary(); ok {
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "summary": summary, "as_of": at})
			return
		}
	}

	var cached models.DashboardSummary
	if rdx.LoadSnapshot(r.Context(), farmerID, "summary", &cached) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "summary": cached})
		return
	}

	summary, err := h.Gateway.GetDashboard(r.Context(), farmerID)
	if err != nil {
		log.Println("dashboard fetch failed:", err)
		utils.RespondWithJSON(w, http.StatusBadGateway, utils.M{"success": false, "message": "Could not load dashboard"})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "summary": summary})
}

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	farmerID := utils.GetUserIDFromRequest(r)

	if farmerID == h.PolledFarmer {
		if metrics, at, ok := h.Cache.Metrics(); ok {
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "metrics": metrics, "as_of": at})
			return
		}
	}

	var cached []models.Metric
	if rdx.LoadSnapshot(r.Context(), farmerID, "metrics", &cached) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "metrics": cached})
		return
	}

	metrics, err := h.Gateway.GetMetrics(r.Context(), farmerID)
	if err != nil {
		log.Println("metrics fetch failed:", err)
		utils.RespondWithJSON(w, http.StatusBadGateway, utils.M{"success": false, "message": "Could not load metrics"})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "metrics": metrics})
}
