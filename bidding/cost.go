package bidding

import (
	"errors"
	"math"

	"storageguard/models"
)

// ErrInvalidInput is returned for non-positive price, quantity, or duration.
var ErrInvalidInput = errors.New("bidding: invalid cost input")

// EstimateCost computes the projected total for storing quantityKg for
// durationDays at unitPrice rupees per quintal per month.
//
// Quintals are fractional (no rounding); months are billed whole, so any
// part of a 30-day block counts as a full month, minimum one. The total is
// rounded to the nearest rupee. A nil maxBudget means the farmer set no
// ceiling and every total is within budget.
func EstimateCost(unitPrice, quantityKg float64, durationDays int, maxBudget *float64) (models.CostEstimate, error) {
	if unitPrice <= 0 || quantityKg <= 0 || durationDays <= 0 {
		return models.CostEstimate{}, ErrInvalidInput
	}

	quintals := quantityKg / 100
	months := int(math.Ceil(float64(durationDays) / 30))
	if months < 1 {
		months = 1
	}
	total := math.Round(unitPrice * quintals * float64(months))

	within := maxBudget == nil || total <= *maxBudget

	return models.CostEstimate{
		Quintals:       quintals,
		Months:         months,
		EstimatedTotal: total,
		WithinBudget:   within,
	}, nil
}
