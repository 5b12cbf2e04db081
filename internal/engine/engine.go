// Package engine orchestrates catalog loading, validation and the derived
// analytics served by the API and the CLI. It holds the current catalog
// snapshot so a scheduled refresh can swap it while readers keep using the
// previous one.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/laptop-compare/internal/catalog"
	"github.com/donaldgifford/laptop-compare/internal/metrics"
	"github.com/donaldgifford/laptop-compare/internal/notify"
	"github.com/donaldgifford/laptop-compare/internal/telemetry"
	"github.com/donaldgifford/laptop-compare/pkg/market"
	score "github.com/donaldgifford/laptop-compare/pkg/scorer"
	domain "github.com/donaldgifford/laptop-compare/pkg/types"
	"github.com/donaldgifford/laptop-compare/pkg/validate"
)

var (
	// ErrNoSnapshot is returned by readers before the first successful refresh.
	ErrNoSnapshot = errors.New("catalog not loaded")
	// ErrProductNotFound is returned when a product id is not in the catalog.
	ErrProductNotFound = errors.New("product not found")
)

// Snapshot is one loaded and validated catalog. It is never mutated after
// it is published.
type Snapshot struct {
	RunID      uuid.UUID
	Catalog    *domain.Catalog
	Validation validate.Result
	LoadedAt   time.Time
	Duration   time.Duration
}

// Engine loads catalogs from a Source and answers analytics queries
// against the latest snapshot.
type Engine struct {
	source   catalog.Source
	notifier notify.Notifier
	log      *slog.Logger
	tracer   trace.Tracer
	meter    metric.Meter
	inst     *telemetry.Instruments
	now      func() time.Time

	sourceName  string
	scorerOpts  []score.Option
	thresholds  market.Thresholds
	staleDays   int
	bounds      validate.Bounds
	workers     int
	notifyStale bool

	mu   sync.Mutex // serializes Refresh
	snap atomic.Pointer[Snapshot]
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithNotifier sets the notifier used after each refresh.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithTracer sets the tracer used for refresh spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithMeter sets the meter used for refresh instruments.
func WithMeter(m metric.Meter) Option {
	return func(e *Engine) {
		e.meter = m
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithSourceName labels snapshots and notifications with the source kind.
func WithSourceName(name string) Option {
	return func(e *Engine) {
		e.sourceName = name
	}
}

// WithWeights sets the composite weights.
func WithWeights(w score.Weights) Option {
	return func(e *Engine) {
		e.scorerOpts = append(e.scorerOpts, score.WithWeights(w))
	}
}

// WithValueScale sets the value score multiplier.
func WithValueScale(scale float64) Option {
	return func(e *Engine) {
		e.scorerOpts = append(e.scorerOpts, score.WithValueScale(scale))
	}
}

// WithThresholds sets the buy signal thresholds.
func WithThresholds(th market.Thresholds) Option {
	return func(e *Engine) {
		e.thresholds = th
	}
}

// WithStaleDays sets the default deal staleness threshold.
func WithStaleDays(days int) Option {
	return func(e *Engine) {
		e.staleDays = days
	}
}

// WithBounds sets the validation plausibility bounds.
func WithBounds(b validate.Bounds) Option {
	return func(e *Engine) {
		e.bounds = b
	}
}

// WithWorkers sets the validation parallelism.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithStaleDealNotifications enables a stale deal report after each refresh.
func WithStaleDealNotifications(enabled bool) Option {
	return func(e *Engine) {
		e.notifyStale = enabled
	}
}

// New creates an Engine reading from src.
func New(src catalog.Source, opts ...Option) *Engine {
	e := &Engine{
		source:     src,
		now:        time.Now,
		sourceName: "catalog",
		thresholds: market.DefaultThresholds(),
		staleDays:  market.DefaultStaleDays,
		bounds:     validate.DefaultBounds(),
		workers:    1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.notifier == nil {
		e.notifier = notify.NewNoOpNotifier(e.log)
	}
	if e.tracer == nil {
		e.tracer = telemetry.Tracer()
	}
	if e.meter == nil {
		e.meter = telemetry.Meter()
	}
	inst, err := telemetry.NewInstruments(e.meter)
	if err != nil {
		e.log.Warn("creating otel instruments failed, metrics export disabled", "error", err)
		inst, _ = telemetry.NewInstruments(noop.NewMeterProvider().Meter(telemetry.InstrumentationName))
	}
	e.inst = inst
	return e
}

// Ping reports whether the catalog source is reachable.
func (e *Engine) Ping(ctx context.Context) error {
	return e.source.Ping(ctx)
}

// Snapshot returns the current snapshot or ErrNoSnapshot.
func (e *Engine) Snapshot() (*Snapshot, error) {
	s := e.snap.Load()
	if s == nil {
		return nil, ErrNoSnapshot
	}
	return s, nil
}

// Refresh loads the catalog, validates it and publishes the result as the
// current snapshot. A load failure keeps the previous snapshot. Validation
// issues never make Refresh fail.
func (e *Engine) Refresh(ctx context.Context) (*Snapshot, error) {
	ctx, span := e.tracer.Start(ctx, "engine.Refresh")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()

	cat, err := e.source.Load(ctx)
	if err != nil {
		metrics.CatalogLoadErrorsTotal.Inc()
		e.inst.RecordRefresh(ctx, e.sourceName, time.Since(start), err, 0, 0)
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog load failed")
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	metrics.CatalogLoadsTotal.Inc()

	res := e.validate(ctx, cat)

	snap := &Snapshot{
		RunID:      uuid.New(),
		Catalog:    cat,
		Validation: res,
		LoadedAt:   e.now(),
		Duration:   time.Since(start),
	}
	e.snap.Store(snap)
	recordSnapshot(snap)
	e.inst.RecordRefresh(ctx, e.sourceName, snap.Duration, nil, len(res.Errors), len(res.Warnings))

	span.SetAttributes(
		attribute.String("run_id", snap.RunID.String()),
		attribute.Int("products", len(cat.Products)),
		attribute.Int("errors", len(res.Errors)),
		attribute.Int("warnings", len(res.Warnings)),
	)

	e.log.Info("catalog refreshed",
		"run_id", snap.RunID,
		"source", e.sourceName,
		"products", len(cat.Products),
		"errors", len(res.Errors),
		"warnings", len(res.Warnings),
		"duration", snap.Duration,
	)

	e.sendNotifications(ctx, snap)

	return snap, nil
}

func (e *Engine) validate(ctx context.Context, cat *domain.Catalog) validate.Result {
	_, span := e.tracer.Start(ctx, "validate.Validate")
	defer span.End()

	start := time.Now()
	res := validate.Validate(cat,
		validate.WithBounds(e.bounds),
		validate.WithWorkers(e.workers),
	)
	metrics.ValidationDuration.Observe(time.Since(start).Seconds())
	return res
}

func recordSnapshot(s *Snapshot) {
	metrics.CatalogProducts.Set(float64(len(s.Catalog.Products)))
	metrics.CatalogLastLoadTimestamp.Set(float64(s.LoadedAt.Unix()))

	outcome := "pass"
	if s.Validation.HasErrors() {
		outcome = "fail"
	}
	metrics.ValidationRunsTotal.WithLabelValues(outcome).Inc()

	metrics.ValidationIssues.Reset()
	for _, is := range s.Validation.All() {
		metrics.ValidationIssues.WithLabelValues(string(is.Level), string(is.Category)).Inc()
		if is.Category == validate.CategoryValidationCrash {
			metrics.ValidationCrashesTotal.Inc()
		}
	}
}

func (e *Engine) sendNotifications(ctx context.Context, s *Snapshot) {
	summary := &notify.SummaryPayload{
		RunID:    s.RunID,
		Source:   e.sourceName,
		Products: len(s.Catalog.Products),
		Result:   s.Validation,
		LoadedAt: s.LoadedAt,
	}
	if err := e.notifier.SendValidationSummary(ctx, summary); err != nil {
		e.log.Error("sending validation summary failed", "run_id", s.RunID, "error", err)
	}

	stale := market.StaleDeals(s.Catalog.Deals, s.LoadedAt, e.staleDays)
	metrics.StaleDeals.Set(float64(len(stale)))
	if !e.notifyStale || len(stale) == 0 {
		return
	}
	payload := &notify.StaleDealsPayload{Deals: stale, Threshold: e.staleDays, Now: s.LoadedAt}
	if err := e.notifier.SendStaleDeals(ctx, payload); err != nil {
		e.log.Error("sending stale deal report failed", "count", len(stale), "error", err)
	}
}

// scorer builds a Scorer over the snapshot's benchmark tables.
func (e *Engine) scorer(cat *domain.Catalog) *score.Scorer {
	return score.New(cat.CPUBenchmarks, cat.GPUBenchmarks, e.scorerOpts...)
}
