// Package telemetry installs the OpenTelemetry tracer and meter providers.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"

	"github.com/donaldgifford/laptop-compare/internal/config"
)

// InstrumentationName is the tracer and meter name used across the module.
const InstrumentationName = "github.com/donaldgifford/laptop-compare"

// ShutdownFunc flushes and stops the installed providers.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs global tracer and meter providers exporting over OTLP
// gRPC. When telemetry is disabled the global no-op providers are left in
// place.
func Setup(ctx context.Context, cfg config.TelemetryConfig, version string) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return noopShutdown, nil
	}

	res := newResource(cfg.ServiceName, version)
	dial := grpc.WithUserAgent(cfg.ServiceName + "/" + version)

	traceOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithDialOption(dial),
	}
	metricOpts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
		otlpmetricgrpc.WithDialOption(dial),
	}
	if cfg.Insecure {
		traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
		metricOpts = append(metricOpts, otlpmetricgrpc.WithInsecure())
	}

	traceExp, err := otlptrace.New(ctx, otlptracegrpc.NewClient(traceOpts...))
	if err != nil {
		return nil, fmt.Errorf("creating otlp trace exporter: %w", err)
	}

	metricExp, err := otlpmetricgrpc.New(ctx, metricOpts...)
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("creating otlp metric exporter: %w", err),
			traceExp.Shutdown(ctx),
		)
	}

	tp := newTracerProvider(traceExp, res, cfg.SampleRatio)
	mp := NewMeterProvider(
		sdkmetric.NewPeriodicReader(metricExp, sdkmetric.WithInterval(cfg.MetricInterval)),
		cfg.ServiceName, version,
	)
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

func newResource(serviceName, version string) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)
}

func newTracerProvider(exp sdktrace.SpanExporter, res *resource.Resource, sampleRatio float64) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	)
}

// NewProvider builds a tracer provider batching spans to exp.
func NewProvider(
	exp sdktrace.SpanExporter,
	serviceName, version string,
	sampleRatio float64,
) *sdktrace.TracerProvider {
	return newTracerProvider(exp, newResource(serviceName, version), sampleRatio)
}

// NewMeterProvider builds a meter provider collected by reader.
func NewMeterProvider(reader sdkmetric.Reader, serviceName, version string) *sdkmetric.MeterProvider {
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(newResource(serviceName, version)),
	)
}

// Tracer returns the module tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// Meter returns the module meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(InstrumentationName)
}

// Instruments are the OpenTelemetry instruments recorded by the engine.
// They mirror the Prometheus catalog metrics for OTLP backends.
type Instruments struct {
	RefreshDuration metric.Float64Histogram
	Refreshes       metric.Int64Counter
	Issues          metric.Int64Histogram
}

// NewInstruments creates the engine instruments on m.
func NewInstruments(m metric.Meter) (*Instruments, error) {
	dur, err := m.Float64Histogram("lcc.catalog.refresh.duration",
		metric.WithDescription("Duration of catalog load and validation."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating refresh duration histogram: %w", err)
	}
	refreshes, err := m.Int64Counter("lcc.catalog.refreshes",
		metric.WithDescription("Catalog refresh attempts by outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating refresh counter: %w", err)
	}
	issues, err := m.Int64Histogram("lcc.validation.issues",
		metric.WithDescription("Validation issues found per run, by level."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating issue histogram: %w", err)
	}
	return &Instruments{RefreshDuration: dur, Refreshes: refreshes, Issues: issues}, nil
}

// RecordRefresh records one refresh attempt. A nil err is a successful
// load; issue counts are recorded only then.
func (in *Instruments) RecordRefresh(ctx context.Context, source string, d time.Duration, err error, errs, warnings int) {
	outcome := "ok"
	if err != nil {
		outcome = "load_error"
	}
	in.Refreshes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("outcome", outcome),
	))
	if err != nil {
		return
	}
	in.RefreshDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("source", source)))
	in.Issues.Record(ctx, int64(errs), metric.WithAttributes(attribute.String("level", "error")))
	in.Issues.Record(ctx, int64(warnings), metric.WithAttributes(attribute.String("level", "warning")))
}
