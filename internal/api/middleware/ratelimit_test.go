package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-compare/internal/metrics"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, rl.Allow("10.0.0.2"), "clients are limited independently")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"), "one token refilled")
	assert.Equal(t, 2, rl.Clients())
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1000, 1000)
	rl.now = func() time.Time { return now }

	rl.Allow("idle")
	now = now.Add(limiterIdleTTL + time.Minute)
	for range sweepEvery {
		rl.Allow("active")
	}

	assert.Equal(t, 1, rl.Clients())
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(0.5, 1)

	e := echo.New()
	e.Use(rl.Middleware())
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/api/v1/validation", ok)
	e.GET("/healthz", ok)

	serve := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		req.RemoteAddr = "192.0.2.10:5555"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	before := testutil.ToFloat64(metrics.HTTPRateLimitedTotal)

	require.Equal(t, http.StatusOK, serve("/api/v1/validation").Code)

	rec := serve("/api/v1/validation")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.HTTPRateLimitedTotal)-before, 0.001)

	for range 3 {
		assert.Equal(t, http.StatusOK, serve("/healthz").Code, "probes are never limited")
	}
}
