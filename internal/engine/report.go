package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/donaldgifford/laptop-compare/internal/metrics"
	"github.com/donaldgifford/laptop-compare/pkg/market"
	score "github.com/donaldgifford/laptop-compare/pkg/scorer"
	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// DimensionReport is one dimension of a product report.
type DimensionReport struct {
	Dimension      score.Dimension `json:"dimension"`
	Score          float64         `json:"score"`
	Percentile     int             `json:"percentile"`
	Interpretation string          `json:"interpretation"`
	Context        score.Context   `json:"context"`
}

// ProductReport is every derived number for one configured product.
type ProductReport struct {
	Product     domain.Product     `json:"product"`
	Composite   float64            `json:"composite"`
	Dimensions  score.Dimensions   `json:"dimensions"`
	Details     []DimensionReport  `json:"details"`
	Value       *float64           `json:"value,omitempty"`
	LowestPrice *float64           `json:"lowest_price,omitempty"`
	CPU         score.CPUBreakdown `json:"cpu"`
	GPU         score.GPUBreakdown `json:"gpu"`
	Scenarios   []score.Scenario   `json:"scenarios"`
	Signal      market.Decision    `json:"signal"`
}

// ProductReport scores product id with the given build-to-order
// selection. Percentiles rank the configured product against its lineup.
func (e *Engine) ProductReport(ctx context.Context, id string, sel domain.Selection) (*ProductReport, error) {
	_, span := e.tracer.Start(ctx, "engine.ProductReport")
	defer span.End()

	snap, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	cat := snap.Catalog

	base, ok := cat.Product(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	p := domain.Resolve(base, sel)
	s := e.scorer(cat)
	dims := s.Dimensions(&p)
	peers := score.PeersByLineup(cat.Products, p.Lineup)

	report := &ProductReport{
		Product:    p,
		Composite:  s.Blend(dims),
		Dimensions: dims,
		Details:    make([]DimensionReport, 0, len(score.AllDimensions)),
		CPU:        s.CPUBreakdown(p.Processor.Name),
		GPU:        s.GPUBreakdown(p.GPU.Name),
		Scenarios:  s.Scenarios(&p),
		Signal:     e.signal(cat, &p, snap),
	}

	for _, dim := range score.AllDimensions {
		v := dims.Get(dim)
		report.Details = append(report.Details, DimensionReport{
			Dimension:      dim,
			Score:          v,
			Percentile:     s.Percentile(v, dim, peers),
			Interpretation: score.Interpretation(dim, v),
			Context:        s.Context(dim, &p, cat.Products),
		})
	}

	if v, ok := s.Value(&p, cat.PriceObservations); ok {
		report.Value = &v
	}
	if lo, ok := score.LowestPrice(p.ID, cat.PriceObservations); ok {
		report.LowestPrice = &lo
	}

	metrics.CompositeScoreDistribution.Observe(report.Composite)

	return report, nil
}

// Signal returns the buy signal for product id.
func (e *Engine) Signal(ctx context.Context, id string) (market.Decision, error) {
	_, span := e.tracer.Start(ctx, "engine.Signal")
	defer span.End()

	snap, err := e.Snapshot()
	if err != nil {
		return market.Decision{}, err
	}
	p, ok := snap.Catalog.Product(id)
	if !ok {
		return market.Decision{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return e.signal(snap.Catalog, p, snap), nil
}

func (e *Engine) signal(cat *domain.Catalog, p *domain.Product, snap *Snapshot) market.Decision {
	baseline, _ := cat.PriceBaselines.Get(p.ID)
	best, retailer := bestOffer(cat.ObservationsFor(p.ID))

	d := market.BuySignal(market.SignalInput{
		Baseline:  baseline,
		BestPrice: best,
		Retailer:  retailer,
		Lineup:    p.Lineup,
		Events:    cat.SaleEvents,
		Markets:   cat.ComponentMarkets,
		Now:       e.now(),
	}, e.thresholds)

	metrics.SignalsTotal.WithLabelValues(string(d.Signal)).Inc()
	e.log.Debug("buy signal computed",
		"run_id", snap.RunID,
		"product", p.ID,
		"signal", d.Signal,
		"best_price", best,
	)
	return d
}

// bestOffer returns the lowest valid price and its retailer, or zero when
// there is none. The first observation wins a tie.
func bestOffer(obs []domain.PriceObservation) (float64, string) {
	best := math.Inf(1)
	retailer := ""
	for i := range obs {
		o := &obs[i]
		if math.IsNaN(o.Price) || o.Price >= best {
			continue
		}
		best = o.Price
		retailer = o.Retailer
	}
	if math.IsInf(best, 1) {
		return 0, ""
	}
	return best, retailer
}

// FrontierPoint is a product on the price/performance chart.
type FrontierPoint struct {
	market.Point
	Name      string        `json:"name"`
	Lineup    domain.Lineup `json:"lineup"`
	Efficient bool          `json:"efficient"`
}

// FrontierResult is every priced product and the efficient subset.
type FrontierResult struct {
	Points   []FrontierPoint `json:"points"`
	Frontier []market.Point  `json:"frontier"`
}

// Frontier plots every priced product by lowest price and composite score
// and marks the efficiency frontier. An empty lineup includes every
// product.
func (e *Engine) Frontier(ctx context.Context, lineup domain.Lineup) (*FrontierResult, error) {
	_, span := e.tracer.Start(ctx, "engine.Frontier")
	defer span.End()

	snap, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	cat := snap.Catalog
	s := e.scorer(cat)

	res := &FrontierResult{Points: []FrontierPoint{}}
	pts := make([]market.Point, 0, len(cat.Products))
	for _, p := range cat.Products {
		if p == nil || (lineup != "" && p.Lineup != lineup) {
			continue
		}
		price, ok := score.LowestPrice(p.ID, cat.PriceObservations)
		if !ok {
			continue
		}
		pt := market.Point{ID: p.ID, Price: price, Perf: s.Composite(p)}
		pts = append(pts, pt)
		res.Points = append(res.Points, FrontierPoint{Point: pt, Name: p.Name, Lineup: p.Lineup})
	}

	res.Frontier = market.EfficiencyFrontier(pts)

	onFrontier := make(map[string]bool, len(res.Frontier))
	for _, pt := range res.Frontier {
		onFrontier[pt.ID] = true
	}
	for i := range res.Points {
		res.Points[i].Efficient = onFrontier[res.Points[i].ID]
	}

	return res, nil
}

// StaleDeals returns deals not verified within days. Zero or negative
// days uses the configured default.
func (e *Engine) StaleDeals(_ context.Context, days int) ([]domain.Deal, error) {
	snap, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = e.staleDays
	}
	stale := market.StaleDeals(snap.Catalog.Deals, e.now(), days)
	if stale == nil {
		stale = []domain.Deal{}
	}
	return stale, nil
}

// StaleDays returns the configured default staleness threshold.
func (e *Engine) StaleDays() int {
	return e.staleDays
}
