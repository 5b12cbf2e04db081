package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/donaldgifford/laptop-compare/internal/api/middleware"
	"github.com/donaldgifford/laptop-compare/internal/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		handler    echo.HandlerFunc
		wantStatus int
	}{
		{
			name:   "records 200 response",
			method: http.MethodGet,
			path:   "/api/v1/frontier",
			handler: func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]any{"points": []any{}})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "records 404 response",
			method: http.MethodGet,
			path:   "/notfound",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "records POST request",
			method: http.MethodPost,
			path:   "/api/v1/validation/refresh",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusAccepted)
			},
			wantStatus: http.StatusAccepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(mw.Metrics())
			e.Add(tt.method, tt.path, tt.handler)

			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			statusStr := strconv.Itoa(tt.wantStatus)

			// Verify the counter was incremented.
			counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(
				tt.method, tt.path, statusStr,
			)
			require.NoError(t, err)

			m := &io_prometheus_client.Metric{}
			require.NoError(t, counter.Write(m))
			assert.Greater(t, m.GetCounter().GetValue(), float64(0))

			// Verify histogram was observed.
			observer, err := metrics.HTTPRequestDuration.GetMetricWithLabelValues(
				tt.method, tt.path, statusStr,
			)
			require.NoError(t, err)

			hm := &io_prometheus_client.Metric{}
			require.NoError(t, observer.(prometheus.Metric).Write(hm))
			assert.Positive(t, hm.GetHistogram().GetSampleCount())
		})
	}
}

func TestMetricsMiddleware_RouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(mw.Metrics())
	e.GET("/api/v1/products/:id/signal", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	before := testutil.ToFloat64(
		metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/products/:id/signal", "200"),
	)

	for _, id := range []string{"t14-gen5", "legion-5i-gen9"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id+"/signal", http.NoBody)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	after := testutil.ToFloat64(
		metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/products/:id/signal", "200"),
	)
	assert.InDelta(t, 2.0, after-before, 0.001, "ids collapse into one route label")
}

func TestMetricsMiddleware_HTTPErrorStatus(t *testing.T) {
	e := echo.New()
	e.Use(mw.Metrics())
	e.GET("/api/v1/frontier", func(_ echo.Context) error {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "catalog not loaded")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/frontier", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	got := testutil.ToFloat64(
		metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/frontier", "503"),
	)
	assert.Positive(t, got)
}

func TestMetricsMiddleware_SkipsProbePaths(t *testing.T) {
	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			e := echo.New()
			e.Use(mw.Metrics())
			e.GET(path, func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})

			before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, path, "200"))

			req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)

			after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, path, "200"))
			assert.InDelta(t, before, after, 0.001)
		})
	}
}

func TestMetricsMiddleware_HealthGauges(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		gauge  prometheus.Gauge
		want   float64
	}{
		{name: "healthz up", path: "/healthz", status: http.StatusOK, gauge: metrics.HealthzUp, want: 1},
		{name: "readyz down", path: "/readyz", status: http.StatusServiceUnavailable, gauge: metrics.ReadyzUp, want: 0},
		{name: "readyz up", path: "/readyz", status: http.StatusOK, gauge: metrics.ReadyzUp, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(mw.Metrics())
			e.GET(tt.path, func(c echo.Context) error {
				return c.NoContent(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.InDelta(t, tt.want, testutil.ToFloat64(tt.gauge), 0.001)
		})
	}
}
