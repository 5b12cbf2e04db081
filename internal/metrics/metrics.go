// Package metrics defines Prometheus metrics for laptop-compare.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lcc"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPRateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	})

	HTTPPanicsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_panics_total",
		Help:      "Total number of panics recovered in HTTP handlers.",
	})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded, 0 otherwise.",
	})
)

// Catalog metrics.
var (
	CatalogLoadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_loads_total",
		Help:      "Total number of successful catalog loads.",
	})

	CatalogLoadErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_load_errors_total",
		Help:      "Total number of failed catalog loads.",
	})

	CatalogProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_products",
		Help:      "Number of product rows in the current catalog snapshot.",
	})

	CatalogLastLoadTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_last_load_timestamp_seconds",
		Help:      "Unix time of the last successful catalog load.",
	})
)

// Validation metrics.
var (
	ValidationRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_runs_total",
		Help:      "Total number of validation runs by outcome (pass, fail).",
	}, []string{"outcome"})

	ValidationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "validation_duration_seconds",
		Help:      "Duration of validation passes in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	ValidationIssues = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "validation_issues",
		Help:      "Issues found by the most recent validation run, by level and category.",
	}, []string{"level", "category"})

	ValidationCrashesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_crashes_total",
		Help:      "Total number of per-product validation crashes.",
	})
)

// Scoring metrics.
var (
	CompositeScoreDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "composite_score_distribution",
		Help:      "Distribution of computed composite scores.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11), // 0, 10, 20, ..., 100
	})

	SignalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signals_total",
		Help:      "Total number of buy signals computed, by signal.",
	}, []string{"signal"})

	StaleDeals = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stale_deals",
		Help:      "Number of stale deals in the current catalog snapshot.",
	})
)

// Notification metrics.
var (
	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of notification webhook calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})
)

// Scheduler metrics.
var (
	SchedulerNextRefreshTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_next_refresh_timestamp_seconds",
		Help:      "Unix time of the next scheduled catalog refresh.",
	})

	SchedulerRefreshFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduler_refresh_failures_total",
		Help:      "Total number of scheduled refreshes that failed to load the catalog.",
	})
)
