package bidding

import (
	"testing"

	"storageguard/gateway"
	"storageguard/models"
)

func openRFQ() models.RFQ {
	return models.RFQ{
		ID:           "rfq-1",
		Crop:         "wheat",
		Status:       models.RFQStatusOpen,
		QuantityKg:   300,
		DurationDays: 45,
	}
}

func bid(id, priceText string, eta int) models.Bid {
	return models.Bid{
		ID:        id,
		RFQID:     "rfq-1",
		PriceText: priceText,
		UnitPrice: gateway.ParseUnitPrice(priceText),
		ETAHours:  eta,
	}
}

func TestRankBidsCheapestFirst(t *testing.T) {
	bids := []models.Bid{
		bid("b1", "₹120/quintal/month", 48),
		bid("b2", "₹95/quintal/month", 72),
	}

	ranked := RankBids(openRFQ(), bids)
	if len(ranked) != 2 {
		t.Fatalf("ranked %d bids, want 2", len(ranked))
	}
	if ranked[0].ID != "b2" {
		t.Errorf("cheapest bid is %s, want b2", ranked[0].ID)
	}
	if !ranked[0].IsLowest {
		t.Error("first ranked bid must be tagged lowest")
	}
	if ranked[1].IsLowest {
		t.Error("only the first ranked bid may be tagged lowest")
	}
	// Ordering must be non-decreasing by unit price.
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].UnitPrice.Amount > ranked[i].UnitPrice.Amount {
			t.Errorf("ranking not sorted at %d", i)
		}
	}
}

func TestRankBidsCostEstimates(t *testing.T) {
	rfq := openRFQ()
	budget := 650.0
	rfq.MaxBudget = &budget

	ranked := RankBids(rfq, []models.Bid{
		bid("b1", "₹120/quintal/month", 48),
		bid("b2", "₹95/quintal/month", 72),
	})

	// 95 * 3 quintals * 2 months = 570, within 650
	if ranked[0].Cost.EstimatedTotal != 570 {
		t.Errorf("cheapest estimate = %v, want 570", ranked[0].Cost.EstimatedTotal)
	}
	if !ranked[0].Cost.WithinBudget {
		t.Error("570 should be within budget 650")
	}
	// 120 * 3 * 2 = 720, over 650
	if ranked[1].Cost.EstimatedTotal != 720 {
		t.Errorf("second estimate = %v, want 720", ranked[1].Cost.EstimatedTotal)
	}
	if ranked[1].Cost.WithinBudget {
		t.Error("720 should be over budget 650")
	}
}

func TestRankBidsTiesKeepFetchOrder(t *testing.T) {
	ranked := RankBids(openRFQ(), []models.Bid{
		bid("first", "₹100/quintal/month", 24),
		bid("second", "₹100/quintal/month", 12),
		bid("third", "₹90/quintal/month", 36),
	})

	if ranked[0].ID != "third" {
		t.Fatalf("cheapest = %s, want third", ranked[0].ID)
	}
	if ranked[1].ID != "first" || ranked[2].ID != "second" {
		t.Errorf("tie order = %s,%s, want first,second", ranked[1].ID, ranked[2].ID)
	}
}

func TestRankBidsUnparseablePriceSortsLast(t *testing.T) {
	ranked := RankBids(openRFQ(), []models.Bid{
		bid("nodigits", "call for price", 24),
		bid("priced", "₹500/quintal/month", 48),
	})

	if ranked[0].ID != "priced" {
		t.Errorf("cheapest = %s, want priced", ranked[0].ID)
	}
	if ranked[1].ID != "nodigits" {
		t.Errorf("unpriced bid must sort last, got %s", ranked[1].ID)
	}
	if ranked[1].IsLowest {
		t.Error("an unpriced bid must never be tagged lowest")
	}
	if ranked[1].Cost.WithinBudget {
		t.Error("an unpriced bid carries no usable cost estimate")
	}
}

func TestRankBidsAllUnparseableNoneTaggedLowest(t *testing.T) {
	ranked := RankBids(openRFQ(), []models.Bid{
		bid("u1", "call for price", 24),
		bid("u2", "negotiable", 48),
	})

	if len(ranked) != 2 {
		t.Fatalf("ranked %d bids, want 2", len(ranked))
	}
	for _, rb := range ranked {
		if rb.IsLowest {
			t.Errorf("bid %s has unparseable price yet is tagged lowest", rb.ID)
		}
	}
}

func TestRankBidsNonOpenRFQYieldsEmpty(t *testing.T) {
	rfq := openRFQ()
	rfq.Status = models.RFQStatusAwarded

	ranked := RankBids(rfq, []models.Bid{bid("b1", "₹95/quintal/month", 48)})
	if len(ranked) != 0 {
		t.Errorf("awarded RFQ ranked %d bids, want 0", len(ranked))
	}
}

func TestRankBidsEmptySetYieldsEmpty(t *testing.T) {
	if ranked := RankBids(openRFQ(), nil); len(ranked) != 0 {
		t.Errorf("empty bid set ranked %d bids, want 0", len(ranked))
	}
}
