package market

import (
	"time"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// DefaultStaleDays is how long a deal stays trusted after verification.
const DefaultStaleDays = 14

// IsDealStale reports whether a deal needs re-verification. Unverified
// deals are always stale; otherwise the deal is stale once more than
// thresholdDays whole days have passed since LastVerified.
func IsDealStale(d domain.Deal, now time.Time, thresholdDays int) bool {
	if d.LastVerified == nil {
		return true
	}
	days := int(now.Sub(*d.LastVerified) / (24 * time.Hour))
	return days > thresholdDays
}

// StaleDeals returns the deals that need re-verification, in input order.
func StaleDeals(deals []domain.Deal, now time.Time, thresholdDays int) []domain.Deal {
	var out []domain.Deal
	for i := range deals {
		if IsDealStale(deals[i], now, thresholdDays) {
			out = append(out, deals[i])
		}
	}
	return out
}
