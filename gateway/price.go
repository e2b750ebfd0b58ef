package gateway

import (
	"math"
	"regexp"
	"strconv"

	"storageguard/models"
)

// UnparsedPriceSentinel is the unit price assigned to bids whose price text
// contains no digits. It is large enough that such bids always sort after
// every real quote and are never tagged lowest.
const UnparsedPriceSentinel = float64(math.MaxInt32)

var priceDigits = regexp.MustCompile(`\d+`)

// ParseUnitPrice extracts the unit price from a vendor's price text, e.g.
// "₹120/quintal/month" → 120. The first integer substring wins. Text with
// no digits yields the sentinel with Parsed=false; callers must treat such
// bids as unpriced rather than cheap.
func ParseUnitPrice(text string) models.UnitPrice {
	m := priceDigits.FindString(text)
	if m == "" {
		return models.UnitPrice{Amount: UnparsedPriceSentinel, Parsed: false}
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil || n <= 0 {
		return models.UnitPrice{Amount: UnparsedPriceSentinel, Parsed: false}
	}
	return models.UnitPrice{Amount: n, Parsed: true}
}
