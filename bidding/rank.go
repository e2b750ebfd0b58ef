package bidding

import (
	"sort"

	"storageguard/models"
)

// RankedBid is a bid annotated with its rank outcome and cost estimate.
type RankedBid struct {
	models.Bid
	IsLowest bool                `json:"is_lowest"`
	Cost     models.CostEstimate `json:"cost"`
}

// RankBids orders an RFQ's bids by ascending unit price. Ties keep fetch
// order (stable sort). The first bid is tagged lowest. Only OPEN RFQs with
// at least one bid rank; anything else yields an empty sequence so awarded
// RFQs never show stale bids.
//
// Bids with an unparseable price carry the sentinel unit price, so they
// sort last and get a zero cost estimate flagged out of budget.
func RankBids(rfq models.RFQ, bids []models.Bid) []RankedBid {
	if rfq.Status != models.RFQStatusOpen || len(bids) == 0 {
		return []RankedBid{}
	}

	ranked := make([]RankedBid, len(bids))
	for i, b := range bids {
		ranked[i] = RankedBid{Bid: b}
		if b.UnitPrice.Parsed {
			if est, err := EstimateCost(b.UnitPrice.Amount, rfq.QuantityKg, rfq.DurationDays, rfq.MaxBudget); err == nil {
				ranked[i].Cost = est
			}
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UnitPrice.Amount < ranked[j].UnitPrice.Amount
	})

	// An unpriced bid can head the list only when no bid parsed at all;
	// it still must never be presented as the cheapest quote.
	if ranked[0].UnitPrice.Parsed {
		ranked[0].IsLowest = true
	}
	return ranked
}
