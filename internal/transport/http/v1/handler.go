// Package v1 provides the public HTTP handlers for the chat backend.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianlabs/converse/internal/auth"
	"github.com/meridianlabs/converse/internal/config"
	"github.com/meridianlabs/converse/internal/domain"
	"github.com/meridianlabs/converse/internal/service"
)

// Handler handles public HTTP requests.
type Handler struct {
	service *service.Service
	auth    *auth.Authenticator
	config  *config.Config
}

// NewHandler creates a new handler.
func NewHandler(svc *service.Service, authn *auth.Authenticator, cfg *config.Config) *Handler {
	return &Handler{
		service: svc,
		auth:    authn,
		config:  cfg,
	}
}

// RegisterRoutes registers public routes with the echo server. Everything
// under /api/v1 except token issuance requires a valid bearer token.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")
	if h.config.AuthDevTokens {
		api.POST("/auth/token", h.IssueDevToken)
	}

	authed := api.Group("", auth.Middleware(h.auth))
	authed.POST("/chat", h.Chat)
	authed.POST("/chat/sessions", h.CreateSession)
	authed.GET("/chat/sessions", h.ListSessions)
	authed.PUT("/chat/sessions/:session_id", h.RenameSession)
	authed.POST("/chat/sessions/:session_id/title", h.AutoTitleSession)
	authed.GET("/chat/sessions/:session_id/history", h.SessionHistory)
	authed.GET("/hello", h.Hello)
	authed.GET("/models", h.ListModels)
}

// Health returns process liveness, independent of collaborators.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// jsonError maps domain errors to HTTP statuses with generic bodies.
// Diagnostic detail is included only in development mode.
func (h *Handler) jsonError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	msg := "an internal error occurred"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, msg = http.StatusBadRequest, "invalid request"
	case errors.Is(err, domain.ErrForbidden):
		status, msg = http.StatusForbidden, "you do not have permission to access this session"
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, "session not found"
	case errors.Is(err, domain.ErrConflict):
		status, msg = http.StatusConflict, "session already exists"
	case errors.Is(err, domain.ErrStoreUnavailable):
		status, msg = http.StatusServiceUnavailable, "storage temporarily unavailable"
	case errors.Is(err, domain.ErrModelTimeout):
		status, msg = http.StatusGatewayTimeout, "model request timed out"
	case errors.Is(err, domain.ErrModelError):
		status, msg = http.StatusBadGateway, "model request failed"
	}
	if h.config.IsDevelopment() {
		return c.JSON(status, map[string]string{"error": msg, "detail": err.Error()})
	}
	return c.JSON(status, map[string]string{"error": msg})
}
