package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianlabs/converse/internal/auth"
	"github.com/meridianlabs/converse/internal/domain"
)

// Chat executes one conversational turn.
// POST /api/v1/chat
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	owner := auth.Username(c)
	ctx := c.Request().Context()

	response, sessionID, err := h.service.Chat(ctx, owner, req.SessionID, req.Message)
	if err != nil {
		return h.jsonError(c, err)
	}

	return c.JSON(http.StatusOK, domain.ChatResponse{
		Response:  response,
		SessionID: sessionID,
	})
}

// ListModels retrieves the upstream model list.
// GET /api/v1/models
func (h *Handler) ListModels(c echo.Context) error {
	models, err := h.service.ListModels(c.Request().Context())
	if err != nil {
		return h.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"models": models})
}
