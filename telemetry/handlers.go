package telemetry

import (
	"net/http"

	"storageguard/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the merged inventory view.
type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// GetInventory returns the current enriched inventory snapshot. The data
// is whatever the last successful polls left behind; a failing upstream
// never empties this view.
func (h *Handler) GetInventory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":   true,
		"inventory": h.Store.Snapshot(),
	})
}
