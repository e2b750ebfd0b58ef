package vendororders

import (
	"testing"

	"storageguard/models"
)

func TestOwnedByRejectsOtherAccounts(t *testing.T) {
	order := models.VendorOrder{OrderID: "o1", FarmerID: "farmer-1", VendorID: "vendor-1"}

	if !ownedBy(order, "farmer-1") {
		t.Error("the farmer who placed the order must be able to manage it")
	}
	if !ownedBy(order, "vendor-1") {
		t.Error("the fulfilling vendor must be able to manage the order")
	}
	if ownedBy(order, "farmer-2") {
		t.Error("an unrelated account must not manage the order")
	}
	if ownedBy(order, "") {
		t.Error("an empty caller identity must never own an order")
	}
}

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusConfirmed, models.OrderStatusStored, true},
		{models.OrderStatusStored, models.OrderStatusReleased, true},
		{models.OrderStatusPending, models.OrderStatusReleased, false},
		{models.OrderStatusReleased, models.OrderStatusPending, false},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
	}
	for _, c := range cases {
		if got := transitionAllowed(c.from, c.to); got != c.want {
			t.Errorf("transition %s -> %s = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
