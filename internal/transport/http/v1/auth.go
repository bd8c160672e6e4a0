package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/meridianlabs/converse/internal/auth"
	"github.com/meridianlabs/converse/internal/domain"
)

// IssueDevToken issues a non-expiring token for the given username. Only
// registered when AUTH_DEV_TOKENS is enabled; real deployments get their
// tokens from the identity provider, not from this server.
// POST /api/v1/auth/token
func (h *Handler) IssueDevToken(c echo.Context) error {
	var req domain.TokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || strings.Contains(username, "_") {
		// Underscores would blur the owner/suffix boundary in session ids.
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid username"})
	}

	token, err := h.auth.Issue(username, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, domain.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Hello returns a personalized greeting for the authenticated user.
// GET /api/v1/hello
func (h *Handler) Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Hello, %s!", auth.Username(c)),
	})
}
