package main

import "errors"

// KnownMetrics is the set of metric names exported by laptop-compare plus
// recording rule names referenced in dashboards and alerts. Histogram
// series are listed by their base name.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"lcc_http_request_duration_seconds": true,
	"lcc_http_requests_total":           true,
	"lcc_http_rate_limited_total":       true,
	"lcc_http_panics_total":             true,

	// Health metrics.
	"lcc_healthz_up": true,
	"lcc_readyz_up":  true,

	// Catalog metrics.
	"lcc_catalog_loads_total":                 true,
	"lcc_catalog_load_errors_total":           true,
	"lcc_catalog_products":                    true,
	"lcc_catalog_last_load_timestamp_seconds": true,

	// Validation metrics.
	"lcc_validation_runs_total":       true,
	"lcc_validation_duration_seconds": true,
	"lcc_validation_issues":           true,
	"lcc_validation_crashes_total":    true,

	// Scoring and market metrics.
	"lcc_composite_score_distribution": true,
	"lcc_signals_total":                true,
	"lcc_stale_deals":                  true,

	// Notification metrics.
	"lcc_notification_duration_seconds": true,
	"lcc_notification_failures_total":   true,

	// Scheduler metrics.
	"lcc_scheduler_next_refresh_timestamp_seconds": true,
	"lcc_scheduler_refresh_failures_total":         true,

	// Recording rules.
	"lcc:http_requests:rate5m":           true,
	"lcc:http_errors:rate5m":             true,
	"lcc:catalog_load_errors:rate5m":     true,
	"lcc:validation_failures:increase1h": true,
	"lcc:notification_duration:p95_5m":   true,
	"lcc:signals:rate1h":                 true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
