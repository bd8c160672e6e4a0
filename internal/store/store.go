// Package store defines the persistence interface and implementations.
package store

import (
	"context"
	"time"

	"github.com/meridianlabs/converse/internal/domain"
)

// Store is the durable backing for session metadata and message history.
// Messages are append-only: there is no update or delete operation, and
// GetMessages returns them in insertion order. A missing session is reported
// with domain.ErrNotFound by the session operations; GetMessages simply
// returns an empty slice.
type Store interface {
	// Session registry operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	ListSessions(ctx context.Context, owner string) ([]domain.Session, error)
	UpdateSessionName(ctx context.Context, sessionID, name string, updatedAt time.Time) error
	BumpSession(ctx context.Context, sessionID string, delta int, updatedAt time.Time) error

	// Message log operations
	AppendMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, sessionID string) ([]domain.Message, error)

	// Lifecycle
	Close() error
}
