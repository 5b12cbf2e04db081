// Package api assembles the Echo server: middleware, probes, the
// Prometheus endpoint and the Huma operations.
package api

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/laptop-compare/internal/api/handlers"
	"github.com/donaldgifford/laptop-compare/internal/api/middleware"
	"github.com/donaldgifford/laptop-compare/internal/config"
	"github.com/donaldgifford/laptop-compare/internal/engine"
)

const apiTitle = "Laptop Compare API"

// Options configures NewRouter.
type Options struct {
	Version   string
	RateLimit config.RateLimitConfig
	Logger    *slog.Logger
}

// NewRouter returns an Echo instance serving every endpoint over eng.
// The OpenAPI document is served at /openapi.json and docs at /docs.
func NewRouter(eng *engine.Engine, opts Options) *echo.Echo {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.Recovery(log))
	if opts.RateLimit.Enabled {
		e.Use(middleware.NewRateLimiter(opts.RateLimit.PerSecond, opts.RateLimit.Burst).Middleware())
	}

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(eng))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	humaAPI := humaecho.New(e, huma.DefaultConfig(apiTitle, version))
	handlers.RegisterValidationRoutes(humaAPI, handlers.NewValidationHandler(eng))
	handlers.RegisterProductRoutes(humaAPI, handlers.NewProductsHandler(eng))
	handlers.RegisterFrontierRoutes(humaAPI, handlers.NewFrontierHandler(eng))
	handlers.RegisterDealRoutes(humaAPI, handlers.NewDealsHandler(eng))

	return e
}
