// Package catalog loads the laptop catalog from its backing store. All
// analytics depend on the Source interface, never on a concrete backend, so
// the engine and API can be tested against mocks without files or a database.
package catalog

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// ErrUnknownKind is returned when a row or file names a table this package
// does not know.
var ErrUnknownKind = errors.New("unknown catalog kind")

// Kind names one catalog table. It doubles as the YAML file stem and the
// kind column in PostgreSQL.
type Kind string

// Catalog table kinds.
const (
	KindProducts          Kind = "products"
	KindCPUBenchmarks     Kind = "cpu_benchmarks"
	KindGPUBenchmarks     Kind = "gpu_benchmarks"
	KindChassisBenchmarks Kind = "chassis_benchmarks"
	KindPriceBaselines    Kind = "price_baselines"
	KindPriceObservations Kind = "price_observations"
	KindSaleEvents        Kind = "sale_events"
	KindComponentMarkets  Kind = "component_markets"
	KindDeals             Kind = "deals"
	KindLinuxCompat       Kind = "linux_compat"
	KindEditorial         Kind = "editorial"
	KindCPUGuide          Kind = "cpu_guide"
	KindGPUGuide          Kind = "gpu_guide"
)

// Kinds lists every table in load order.
var Kinds = []Kind{
	KindProducts,
	KindCPUBenchmarks,
	KindGPUBenchmarks,
	KindChassisBenchmarks,
	KindPriceBaselines,
	KindPriceObservations,
	KindSaleEvents,
	KindComponentMarkets,
	KindDeals,
	KindLinuxCompat,
	KindEditorial,
	KindCPUGuide,
	KindGPUGuide,
}

// Valid reports whether k is a known table kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Source loads a full catalog snapshot.
type Source interface {
	// Load reads every table and returns a fresh, immutable catalog.
	Load(ctx context.Context) (*domain.Catalog, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// Raw is the catalog as stored: plain row slices in file order, before
// tables are keyed. Products may contain nil entries for null rows.
type Raw struct {
	Products          []*domain.Product         `json:"products"           yaml:"products"`
	CPUBenchmarks     []domain.CPUBenchmark     `json:"cpu_benchmarks"     yaml:"cpu_benchmarks"`
	GPUBenchmarks     []domain.GPUBenchmark     `json:"gpu_benchmarks"     yaml:"gpu_benchmarks"`
	ChassisBenchmarks []domain.ChassisBenchmark `json:"chassis_benchmarks" yaml:"chassis_benchmarks"`
	PriceBaselines    []domain.PriceBaseline    `json:"price_baselines"    yaml:"price_baselines"`
	PriceObservations []domain.PriceObservation `json:"price_observations" yaml:"price_observations"`
	SaleEvents        []domain.SaleEvent        `json:"sale_events"        yaml:"sale_events"`
	ComponentMarkets  []domain.ComponentMarket  `json:"component_markets"  yaml:"component_markets"`
	Deals             []domain.Deal             `json:"deals"              yaml:"deals"`
	LinuxCompat       []domain.CompatEntry      `json:"linux_compat"       yaml:"linux_compat"`
	Editorial         []domain.EditorialEntry   `json:"editorial"          yaml:"editorial"`
	CPUGuide          []domain.GuideEntry       `json:"cpu_guide"          yaml:"cpu_guide"`
	GPUGuide          []domain.GuideEntry       `json:"gpu_guide"          yaml:"gpu_guide"`
}

// target returns a pointer to the slice backing kind, for decoding.
func (r *Raw) target(k Kind) (any, error) {
	switch k {
	case KindProducts:
		return &r.Products, nil
	case KindCPUBenchmarks:
		return &r.CPUBenchmarks, nil
	case KindGPUBenchmarks:
		return &r.GPUBenchmarks, nil
	case KindChassisBenchmarks:
		return &r.ChassisBenchmarks, nil
	case KindPriceBaselines:
		return &r.PriceBaselines, nil
	case KindPriceObservations:
		return &r.PriceObservations, nil
	case KindSaleEvents:
		return &r.SaleEvents, nil
	case KindComponentMarkets:
		return &r.ComponentMarkets, nil
	case KindDeals:
		return &r.Deals, nil
	case KindLinuxCompat:
		return &r.LinuxCompat, nil
	case KindEditorial:
		return &r.Editorial, nil
	case KindCPUGuide:
		return &r.CPUGuide, nil
	case KindGPUGuide:
		return &r.GPUGuide, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
}

// Build keys the raw tables into an immutable catalog.
func Build(raw *Raw) *domain.Catalog {
	if raw == nil {
		return &domain.Catalog{}
	}
	return &domain.Catalog{
		Products:          raw.Products,
		CPUBenchmarks:     domain.NewTable(domain.CPUBenchmarkKey, raw.CPUBenchmarks...),
		GPUBenchmarks:     domain.NewTable(domain.GPUBenchmarkKey, raw.GPUBenchmarks...),
		ChassisBenchmarks: domain.NewTable(domain.ChassisBenchmarkKey, raw.ChassisBenchmarks...),
		PriceBaselines:    domain.NewTable(domain.PriceBaselineKey, raw.PriceBaselines...),
		PriceObservations: raw.PriceObservations,
		SaleEvents:        raw.SaleEvents,
		ComponentMarkets:  raw.ComponentMarkets,
		Deals:             raw.Deals,
		Compat:            domain.NewTable(domain.CompatKey, raw.LinuxCompat...),
		Editorial:         domain.NewTable(domain.EditorialKey, raw.Editorial...),
		CPUGuide:          domain.NewTable(domain.GuideKey, raw.CPUGuide...),
		GPUGuide:          domain.NewTable(domain.GuideKey, raw.GPUGuide...),
	}
}
