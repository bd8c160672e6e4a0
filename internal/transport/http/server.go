// Package http provides the HTTP server constructors for the chat backend.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/meridianlabs/converse/internal/auth"
	"github.com/meridianlabs/converse/internal/config"
	"github.com/meridianlabs/converse/internal/service"
	"github.com/meridianlabs/converse/internal/transport/http/internalapi"
	v1 "github.com/meridianlabs/converse/internal/transport/http/v1"
)

// NewExternalServer creates and configures the public-facing HTTP server:
// chat, session management, and token issuance.
func NewExternalServer(svc *service.Service, authn *auth.Authenticator, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	h := v1.NewHandler(svc, authn, cfg)
	h.RegisterRoutes(e)

	return e
}

// NewInternalServer creates and configures the internal-facing HTTP server
// used for diagnostics. It is never exposed publicly.
func NewInternalServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	internalHandler := internalapi.NewHandler(svc)
	internalHandler.RegisterRoutes(e)

	return e
}
