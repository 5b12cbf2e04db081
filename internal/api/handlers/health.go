// Package handlers implements HTTP handlers for the laptop-compare API.
package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/laptop-compare/internal/engine"
)

// Readiness reports whether the catalog source is reachable and a snapshot
// has been published.
type Readiness interface {
	Ping(ctx context.Context) error
	Snapshot() (*engine.Snapshot, error)
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	ready Readiness
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(r Readiness) *HealthHandler {
	return &HealthHandler{ready: r}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 once a catalog is loaded and its source is reachable,
// 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if _, err := h.ready.Snapshot(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "loading"})
	}
	if err := h.ready.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}

// RegisterHealthRoutes registers the probe endpoints directly on Echo so
// they stay out of the OpenAPI document.
func RegisterHealthRoutes(e *echo.Echo, h *HealthHandler) {
	e.GET("/healthz", h.Healthz)
	e.GET("/readyz", h.Readyz)
}
