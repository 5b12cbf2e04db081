// Package middleware provides Echo middleware for the laptop-compare API.
package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/laptop-compare/internal/metrics"
)

// unmatchedPath labels requests that matched no route, keeping raw URLs
// out of the path label.
const unmatchedPath = "unmatched"

// metricsSkipPaths defines URL paths excluded from HTTP request metrics.
var metricsSkipPaths = map[string]struct{}{
	"/metrics": {},
	"/healthz": {},
	"/readyz":  {},
}

// healthGauges maps probe paths to their up/down gauge.
var healthGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and status
// by route template. Probe and scrape paths skip the histogram and counter;
// probe paths update an up/down gauge instead.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := routePath(c)

			if _, skip := metricsSkipPaths[path]; skip {
				err := next(c)
				updateHealthGauge(path, c.Response().Status)
				return err
			}

			start := time.Now()

			err := next(c)

			status := c.Response().Status
			var he *echo.HTTPError
			if errors.As(err, &he) && !c.Response().Committed {
				status = he.Code
			}
			labels := []string{c.Request().Method, path, strconv.Itoa(status)}

			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()

			return err
		}
	}
}

// routePath returns the matched route template, the raw path for probe
// endpoints, or unmatchedPath.
func routePath(c echo.Context) string {
	if p := c.Path(); p != "" && p != "/*" {
		return p
	}
	raw := c.Request().URL.Path
	if _, ok := metricsSkipPaths[raw]; ok {
		return raw
	}
	return unmatchedPath
}

func updateHealthGauge(path string, status int) {
	gauge, ok := healthGauges[path]
	if !ok {
		return
	}

	if status >= 200 && status < 300 {
		gauge.Set(1)
	} else {
		gauge.Set(0)
	}
}
