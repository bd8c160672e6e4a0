// Package domain defines the core domain models for the chat backend.
package domain

import "time"

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Session is the durable metadata record for one conversation.
// SessionID is namespaced by its owner: "{owner}_{suffix}".
type Session struct {
	SessionID    string    `json:"session_id"`
	Owner        string    `json:"owner"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// Message is one half of a turn. Messages are immutable once persisted;
// retrieval preserves insertion order.
type Message struct {
	MessageID string    `json:"message_id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
