package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/laptop-compare/internal/metrics"
)

const (
	// limiterIdleTTL is how long an idle client's limiter is kept.
	limiterIdleTTL = 5 * time.Minute
	// sweepEvery is how many requests pass between idle sweeps.
	sweepEvery = 1024
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	perSecond rate.Limit
	burst     int
	now       func() time.Time

	mu      sync.Mutex
	clients map[string]*clientLimiter
	calls   int
}

// NewRateLimiter creates a RateLimiter allowing perSecond requests per
// client with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		perSecond: rate.Limit(perSecond),
		burst:     burst,
		now:       time.Now,
		clients:   make(map[string]*clientLimiter),
	}
}

// Allow reports whether a request from key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.calls++
	if rl.calls%sweepEvery == 0 {
		rl.sweep(now)
	}

	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.perSecond, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Clients returns the number of tracked clients.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) sweep(now time.Time) {
	for k, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(rl.clients, k)
		}
	}
}

// Middleware returns Echo middleware that rejects requests over the limit
// with 429. Probe and scrape paths are never limited.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	retryAfter := "1"
	if rl.perSecond > 0 && rl.perSecond < 1 {
		retryAfter = strconv.Itoa(int(1/float64(rl.perSecond)) + 1)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, skip := metricsSkipPaths[c.Request().URL.Path]; skip {
				return next(c)
			}
			if rl.Allow(c.RealIP()) {
				return next(c)
			}

			metrics.HTTPRateLimitedTotal.Inc()
			c.Response().Header().Set("Retry-After", retryAfter)
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "rate limit exceeded",
			})
		}
	}
}
