package domain

import "time"

// PriceType classifies a price observation.
type PriceType string

// Price type constants.
const (
	PriceMSRP        PriceType = "msrp"
	PriceRetail      PriceType = "retail"
	PriceSale        PriceType = "sale"
	PriceRefurbished PriceType = "refurbished"
	PriceUsed        PriceType = "used"
)

// PriceObservation is an immutable observed price for a product.
type PriceObservation struct {
	ID        string    `json:"id"                   yaml:"id"`
	ProductID string    `json:"product_id"           yaml:"product_id"`
	Retailer  string    `json:"retailer"             yaml:"retailer"`
	Price     float64   `json:"price"                yaml:"price"`
	Date      time.Time `json:"date"                 yaml:"date"`
	PriceType PriceType `json:"price_type,omitempty" yaml:"price_type,omitempty"`
	URL       string    `json:"url,omitempty"        yaml:"url,omitempty"`
	Note      string    `json:"note,omitempty"       yaml:"note,omitempty"`
}

// PriceBaseline is the three-tier reference price for a product.
// Invariant: MSRP >= TypicalRetail >= HistoricalLow.
type PriceBaseline struct {
	ProductID             string     `json:"product_id"                        yaml:"product_id"`
	MSRP                  float64    `json:"msrp"                              yaml:"msrp"`
	TypicalRetail         float64    `json:"typical_retail"                    yaml:"typical_retail"`
	HistoricalLow         float64    `json:"historical_low"                    yaml:"historical_low"`
	HistoricalLowDate     *time.Time `json:"historical_low_date,omitempty"     yaml:"historical_low_date,omitempty"`
	HistoricalLowRetailer string     `json:"historical_low_retailer,omitempty" yaml:"historical_low_retailer,omitempty"`
}

// SaleEvent is a recurring retail sale on the calendar.
type SaleEvent struct {
	ID                   string     `json:"id"                     yaml:"id"`
	Name                 string     `json:"name"                   yaml:"name"`
	Retailer             string     `json:"retailer"               yaml:"retailer"`
	TypicalMonth         int        `json:"typical_month"          yaml:"typical_month"`
	TypicalWeek          int        `json:"typical_week,omitempty" yaml:"typical_week,omitempty"`
	DurationDays         int        `json:"duration_days"          yaml:"duration_days"`
	TypicalDiscountRange [2]float64 `json:"typical_discount_range" yaml:"typical_discount_range"`
	BestFor              []string   `json:"best_for,omitempty"     yaml:"best_for,omitempty"`
	Note                 string     `json:"note,omitempty"         yaml:"note,omitempty"`
}

// MarketTrend is the direction of a commodity price.
type MarketTrend string

// Market trend constants.
const (
	TrendRising  MarketTrend = "rising"
	TrendStable  MarketTrend = "stable"
	TrendFalling MarketTrend = "falling"
)

// ComponentMarket is a volatility signal for a commodity component class.
type ComponentMarket struct {
	Component     string      `json:"component"                yaml:"component"`
	Label         string      `json:"label"                    yaml:"label"`
	Trend         MarketTrend `json:"trend"                    yaml:"trend"`
	ChangePercent float64     `json:"change_percent"           yaml:"change_percent"`
	Since         string      `json:"since,omitempty"          yaml:"since,omitempty"`
	AffectedTiers []string    `json:"affected_tiers,omitempty" yaml:"affected_tiers,omitempty"`
	Summary       string      `json:"summary"                  yaml:"summary"`
	Source        string      `json:"source,omitempty"         yaml:"source,omitempty"`
}

// DealPriceType classifies a highlighted deal.
type DealPriceType string

// Deal price type constants.
const (
	DealSale        DealPriceType = "sale"
	DealClearance   DealPriceType = "clearance"
	DealRefurbished DealPriceType = "refurbished"
)

// Deal is a hand-curated highlighted offer.
type Deal struct {
	ID           string        `json:"id"                      yaml:"id"`
	ProductID    string        `json:"product_id"              yaml:"product_id"`
	Retailer     string        `json:"retailer"                yaml:"retailer"`
	Price        float64       `json:"price"                   yaml:"price"`
	PriceType    DealPriceType `json:"price_type"              yaml:"price_type"`
	URL          string        `json:"url,omitempty"           yaml:"url,omitempty"`
	Note         string        `json:"note,omitempty"          yaml:"note,omitempty"`
	AddedDate    time.Time     `json:"added_date"              yaml:"added_date"`
	ExpiryDate   *time.Time    `json:"expiry_date,omitempty"   yaml:"expiry_date,omitempty"`
	Verified     bool          `json:"verified"                yaml:"verified"`
	LastVerified *time.Time    `json:"last_verified,omitempty" yaml:"last_verified,omitempty"`
}
