// Package internalapi provides HTTP handlers for the internal diagnostics
// API. These routes are only reachable on the internal port.
package internalapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianlabs/converse/internal/service"
)

// Handler handles internal HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new internal API handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// RegisterRoutes registers internal routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/internal/v1/turns", h.ActiveTurns)
	e.GET("/internal/v1/health", h.Health)
}

// ActiveTurns returns the turns currently in flight, for diagnosing
// contention and timeouts.
// GET /internal/v1/turns
func (h *Handler) ActiveTurns(c echo.Context) error {
	turns := h.service.ActiveTurns()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"turns": turns,
		"count": len(turns),
	})
}

// Health returns internal health status.
// GET /internal/v1/health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}
