package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianlabs/converse/internal/auth"
	"github.com/meridianlabs/converse/internal/domain"
)

// CreateSession creates a new chat session.
// POST /api/v1/chat/sessions
func (h *Handler) CreateSession(c echo.Context) error {
	var req domain.SessionCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	session, err := h.service.CreateSession(c.Request().Context(), auth.Username(c), req.Name, "")
	if err != nil {
		return h.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// ListSessions lists the caller's sessions, most recently active first.
// GET /api/v1/chat/sessions
func (h *Handler) ListSessions(c echo.Context) error {
	sessions, err := h.service.ListSessions(c.Request().Context(), auth.Username(c))
	if err != nil {
		return h.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, domain.SessionListResponse{Sessions: sessions})
}

// RenameSession updates a session's display name.
// PUT /api/v1/chat/sessions/:session_id
func (h *Handler) RenameSession(c echo.Context) error {
	var req domain.SessionRenameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	session, err := h.service.RenameSession(c.Request().Context(), auth.Username(c), c.Param("session_id"), req.Name)
	if err != nil {
		return h.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// AutoTitleSession derives a title from the session's content and applies it.
// POST /api/v1/chat/sessions/:session_id/title
func (h *Handler) AutoTitleSession(c echo.Context) error {
	session, err := h.service.AutoTitleSession(c.Request().Context(), auth.Username(c), c.Param("session_id"))
	if err != nil {
		return h.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// SessionHistory returns a session's messages in insertion order.
// GET /api/v1/chat/sessions/:session_id/history
func (h *Handler) SessionHistory(c echo.Context) error {
	messages, err := h.service.SessionHistory(c.Request().Context(), auth.Username(c), c.Param("session_id"))
	if err != nil {
		return h.jsonError(c, err)
	}

	history := make([]domain.HistoryMessage, len(messages))
	for i, msg := range messages {
		history[i] = domain.HistoryMessage{Role: msg.Role, Content: msg.Content}
	}
	return c.JSON(http.StatusOK, domain.HistoryResponse{Messages: history})
}
