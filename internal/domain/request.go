package domain

// ChatRequest is the inbound payload for a chat turn. SessionID is optional;
// when absent a new session is created before the turn executes.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse carries the assistant reply and the session the turn ran in.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// SessionCreateRequest is the payload for explicit session creation.
type SessionCreateRequest struct {
	Name string `json:"name,omitempty"`
}

// SessionRenameRequest is the payload for renaming a session.
type SessionRenameRequest struct {
	Name string `json:"name"`
}

// SessionListResponse wraps the owner's sessions, most recently active first.
type SessionListResponse struct {
	Sessions []Session `json:"sessions"`
}

// HistoryMessage is the external view of one persisted message.
type HistoryMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// HistoryResponse wraps a session's message history in insertion order.
type HistoryResponse struct {
	Messages []HistoryMessage `json:"messages"`
}

// TokenRequest is the payload for development token issuance.
type TokenRequest struct {
	Username string `json:"username"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
