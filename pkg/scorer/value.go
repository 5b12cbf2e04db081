package score

import (
	"math"
	"slices"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// minValuePrice floors the best price so a bad observation cannot divide by zero.
const minValuePrice = 1.0

// Value returns performance per $1000 of the lowest observed price, scaled
// so typical models land near 50. The second result is false when the
// product has no price observation. Values above 100 are possible.
func (s *Scorer) Value(p *domain.Product, obs []domain.PriceObservation) (float64, bool) {
	best, ok := LowestPrice(p.ID, obs)
	if !ok {
		return 0, false
	}
	if best < minValuePrice {
		best = minValuePrice
	}
	return math.Round(s.Composite(p) / (best / 1000) * s.valueScale), true
}

// LowestPrice returns the lowest observed price for a product id.
func LowestPrice(productID string, obs []domain.PriceObservation) (float64, bool) {
	prices := PricesFor(productID, obs)
	if len(prices) == 0 {
		return 0, false
	}
	return prices[0], true
}

// PricesFor returns every observed price for a product id, ascending.
// NaN prices are skipped.
func PricesFor(productID string, obs []domain.PriceObservation) []float64 {
	var prices []float64
	for i := range obs {
		if obs[i].ProductID != productID || math.IsNaN(obs[i].Price) {
			continue
		}
		prices = append(prices, obs[i].Price)
	}
	slices.Sort(prices)
	return prices
}
