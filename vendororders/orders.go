package vendororders

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"storageguard/db"
	"storageguard/models"
	"storageguard/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusStored, models.OrderStatusCancelled},
	models.OrderStatusStored:    {models.OrderStatusReleased},
}

// GetOrders lists the caller's storage orders, filterable by status,
// newest first. An order belongs to the caller on either side of the
// booking, as the farmer who placed it or the vendor fulfilling it.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)
	callerID := utils.GetUserIDFromRequest(r)

	filter := bson.M{"$or": []bson.M{
		{"farmerid": callerID},
		{"vendorid": callerID},
	}}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.VendorOrdersCollection.Find(r.Context(), filter, findOpts)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to load orders"})
		return
	}
	defer cursor.Close(r.Context())

	orders := []models.VendorOrder{}
	if err := cursor.All(r.Context(), &orders); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to decode orders"})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "orders": orders})
}

// UpdateOrderStatus moves an order along its lifecycle. Invalid
// transitions are rejected with the order left unchanged.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("id")

	var input struct {
		Status string `json:"status"`
		Notes  string `json:"notes,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Invalid input"})
		return
	}

	var order models.VendorOrder
	if err := db.VendorOrdersCollection.FindOne(r.Context(), bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Order not found"})
		return
	}

	if !ownedBy(order, utils.GetUserIDFromRequest(r)) {
		utils.RespondWithJSON(w, http.StatusForbidden, utils.M{
			"success": false,
			"message": "Order belongs to another account; no change was made",
		})
		return
	}

	if !transitionAllowed(order.Status, input.Status) {
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{
			"success": false,
			"message": "Cannot move order from " + order.Status + " to " + input.Status + "; no change was made",
		})
		return
	}

	update := bson.M{"status": input.Status, "updated_at": time.Now()}
	if input.Notes != "" {
		update["notes"] = input.Notes
	}
	_, err := db.VendorOrdersCollection.UpdateOne(r.Context(), bson.M{"orderid": orderID}, bson.M{"$set": update})
	if err != nil {
		log.Println("order update failed:", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to update order"})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "order_id": orderID, "status": input.Status})
}

func ownedBy(order models.VendorOrder, callerID string) bool {
	if callerID == "" {
		return false
	}
	return order.FarmerID == callerID || order.VendorID == callerID
}

func transitionAllowed(from, to string) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
