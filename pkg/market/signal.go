package market

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// Signal is a buy/wait recommendation.
type Signal string

// Signal constants, strongest first.
const (
	SignalBuyNow   Signal = "buy-now"
	SignalGoodDeal Signal = "good-deal"
	SignalHold     Signal = "hold"
	SignalWait     Signal = "wait"
)

// Signals lists every signal, strongest first.
var Signals = []Signal{SignalBuyNow, SignalGoodDeal, SignalHold, SignalWait}

// Valid reports whether s is a known signal.
func (s Signal) Valid() bool {
	switch s {
	case SignalBuyNow, SignalGoodDeal, SignalHold, SignalWait:
		return true
	default:
		return false
	}
}

// Label returns the display label for s.
func (s Signal) Label() string {
	switch s {
	case SignalBuyNow:
		return "Buy Now"
	case SignalGoodDeal:
		return "Good Deal"
	case SignalHold:
		return "Hold"
	case SignalWait:
		return "Wait"
	default:
		return string(s)
	}
}

// Thresholds tunes BuySignal.
type Thresholds struct {
	// BuyNowMargin is the fraction above the historical low still counted
	// as buy-now.
	BuyNowMargin float64 `json:"buy_now_margin" yaml:"buy_now_margin"`
	// GoodDealDiscount is the minimum discount off MSRP for good-deal.
	GoodDealDiscount float64 `json:"good_deal_discount" yaml:"good_deal_discount"`
	// HoldMargin is the fraction above typical retail still worth holding for.
	HoldMargin float64 `json:"hold_margin" yaml:"hold_margin"`
	// SaleWindowDays is how far ahead to look for sale events.
	SaleWindowDays int `json:"sale_window_days" yaml:"sale_window_days"`
}

// DefaultThresholds returns the standard buy signal thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BuyNowMargin:     0.05,
		GoodDealDiscount: 0.10,
		HoldMargin:       0.10,
		SaleWindowDays:   45,
	}
}

// SignalInput is everything BuySignal looks at.
type SignalInput struct {
	Baseline  domain.PriceBaseline
	BestPrice float64
	// Retailer of the best price. Empty means unknown, and every sale
	// event is then considered relevant.
	Retailer string
	// Lineup of the product. Empty matches every event.
	Lineup  domain.Lineup
	Events  []domain.SaleEvent
	Markets []domain.ComponentMarket
	Now     time.Time
}

// Decision is the outcome of BuySignal.
type Decision struct {
	Signal Signal `json:"signal"`
	Label  string `json:"label"`
	Reason string `json:"reason"`
	// UpcomingSale names the sale behind a hold.
	UpcomingSale string     `json:"upcoming_sale,omitempty"`
	SaleStart    *time.Time `json:"sale_start,omitempty"`
	// Notes are informational and never change the signal.
	Notes []string `json:"notes,omitempty"`
}

// BuySignal recommends buying now or waiting. Rules are checked in order
// and the first match wins: missing baseline (wait), near the historical
// low (buy-now), a real discount at or below typical retail (good-deal),
// near typical retail with a relevant sale coming (hold), else wait. The
// result does not depend on the order of in.Events.
func BuySignal(in SignalInput, th Thresholds) Decision {
	d := decide(in, th)
	d.Label = d.Signal.Label()
	d.Notes = marketNotes(in.Markets)
	return d
}

func decide(in SignalInput, th Thresholds) Decision {
	b := in.Baseline
	if b.MSRP <= 0 || b.HistoricalLow <= 0 || in.BestPrice <= 0 {
		return Decision{Signal: SignalWait, Reason: "no reliable price baseline"}
	}

	if in.BestPrice <= b.HistoricalLow*(1+th.BuyNowMargin) {
		return Decision{
			Signal: SignalBuyNow,
			Reason: fmt.Sprintf("$%.0f is within %.0f%% of the historical low of $%.0f",
				in.BestPrice, th.BuyNowMargin*100, b.HistoricalLow),
		}
	}

	discount := (b.MSRP - in.BestPrice) / b.MSRP
	if in.BestPrice <= b.TypicalRetail && discount > th.GoodDealDiscount {
		return Decision{
			Signal: SignalGoodDeal,
			Reason: fmt.Sprintf("$%.0f is %.0f%% below MSRP of $%.0f", in.BestPrice, discount*100, b.MSRP),
		}
	}

	if in.BestPrice <= b.TypicalRetail*(1+th.HoldMargin) {
		if ev, start, ok := upcomingSale(in, th.SaleWindowDays); ok {
			return Decision{
				Signal:       SignalHold,
				Reason:       fmt.Sprintf("%s expected around %s", ev.Name, start.Format(time.DateOnly)),
				UpcomingSale: ev.Name,
				SaleStart:    &start,
			}
		}
	}

	return Decision{
		Signal: SignalWait,
		Reason: fmt.Sprintf("$%.0f is above typical retail of $%.0f with no sale soon", in.BestPrice, b.TypicalRetail),
	}
}

// upcomingSale returns the earliest relevant sale starting within
// windowDays of in.Now. Ties go to the lower event id.
func upcomingSale(in SignalInput, windowDays int) (domain.SaleEvent, time.Time, bool) {
	var (
		best      domain.SaleEvent
		bestStart time.Time
		found     bool
	)
	window := time.Duration(windowDays) * 24 * time.Hour

	for _, ev := range in.Events {
		if !relevant(ev, in.Retailer, in.Lineup) {
			continue
		}
		start, ok := NextSaleStart(ev, in.Now)
		if !ok || start.Sub(in.Now) > window {
			continue
		}
		if !found ||
			start.Before(bestStart) ||
			(start.Equal(bestStart) && cmp.Less(ev.ID, best.ID)) {
			best, bestStart, found = ev, start, true
		}
	}
	return best, bestStart, found
}

// NextSaleStart projects the next start of a recurring sale on or after
// now, using the first day of the typical week (day 1 when unset). It
// looks at the current and the next year only. Invalid months report false.
func NextSaleStart(ev domain.SaleEvent, now time.Time) (time.Time, bool) {
	if ev.TypicalMonth < 1 || ev.TypicalMonth > 12 {
		return time.Time{}, false
	}
	day := 1
	if ev.TypicalWeek > 0 {
		day = (ev.TypicalWeek-1)*7 + 1
	}

	for _, year := range []int{now.Year(), now.Year() + 1} {
		start := time.Date(year, time.Month(ev.TypicalMonth), day, 0, 0, 0, 0, now.Location())
		if !start.Before(now) {
			return start, true
		}
	}
	return time.Time{}, false
}

func relevant(ev domain.SaleEvent, retailer string, lineup domain.Lineup) bool {
	return retailerMatches(ev.Retailer, retailer) && lineupMatches(ev.BestFor, lineup)
}

func retailerMatches(eventRetailer, retailer string) bool {
	if eventRetailer == "" || strings.EqualFold(eventRetailer, "all") || retailer == "" {
		return true
	}
	return strings.EqualFold(eventRetailer, retailer)
}

// lineupMatches is true when bestFor names no lineup at all, or names
// the product's lineup.
func lineupMatches(bestFor []string, lineup domain.Lineup) bool {
	if lineup == "" {
		return true
	}
	var named []domain.Lineup
	for _, tag := range bestFor {
		for _, l := range domain.Lineups {
			if hasPrefixFold(tag, string(l)) {
				named = append(named, l)
			}
		}
	}
	return len(named) == 0 || slices.Contains(named, lineup)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func marketNotes(markets []domain.ComponentMarket) []string {
	var notes []string
	for _, m := range markets {
		if m.Trend != domain.TrendRising {
			continue
		}
		label := m.Label
		if label == "" {
			label = m.Component
		}
		notes = append(notes, fmt.Sprintf("%s prices rising (%+.0f%%)", label, m.ChangePercent))
	}
	return notes
}
