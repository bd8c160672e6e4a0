package store

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/meridianlabs/converse/internal/domain"
)

const (
	retryAttempts  = 3
	retryBaseDelay = 50 * time.Millisecond
)

// RetryStore decorates a Store with bounded exponential backoff. Store
// operations are idempotent or safely re-driven, so transient backend
// failures get retryAttempts tries before surfacing. Domain outcomes
// (not found, conflict) and context cancellation are returned immediately.
type RetryStore struct {
	inner Store
}

// WithRetry wraps a Store with retry behavior.
func WithRetry(inner Store) *RetryStore {
	return &RetryStore{inner: inner}
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

func (r *RetryStore) do(ctx context.Context, name string, op func() error) error {
	delay := retryBaseDelay
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = op()
		if err == nil || !retryable(err) {
			return err
		}
		if attempt == retryAttempts {
			break
		}
		log.Printf("WARN: %s failed (attempt %d/%d), retrying: %v", name, attempt, retryAttempts, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}

func (r *RetryStore) CreateSession(ctx context.Context, session *domain.Session) error {
	return r.do(ctx, "CreateSession", func() error {
		return r.inner.CreateSession(ctx, session)
	})
}

func (r *RetryStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session *domain.Session
	err := r.do(ctx, "GetSession", func() error {
		var opErr error
		session, opErr = r.inner.GetSession(ctx, sessionID)
		return opErr
	})
	return session, err
}

func (r *RetryStore) ListSessions(ctx context.Context, owner string) ([]domain.Session, error) {
	var sessions []domain.Session
	err := r.do(ctx, "ListSessions", func() error {
		var opErr error
		sessions, opErr = r.inner.ListSessions(ctx, owner)
		return opErr
	})
	return sessions, err
}

func (r *RetryStore) UpdateSessionName(ctx context.Context, sessionID, name string, updatedAt time.Time) error {
	return r.do(ctx, "UpdateSessionName", func() error {
		return r.inner.UpdateSessionName(ctx, sessionID, name, updatedAt)
	})
}

func (r *RetryStore) BumpSession(ctx context.Context, sessionID string, delta int, updatedAt time.Time) error {
	return r.do(ctx, "BumpSession", func() error {
		return r.inner.BumpSession(ctx, sessionID, delta, updatedAt)
	})
}

func (r *RetryStore) AppendMessage(ctx context.Context, message *domain.Message) error {
	return r.do(ctx, "AppendMessage", func() error {
		return r.inner.AppendMessage(ctx, message)
	})
}

func (r *RetryStore) GetMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.do(ctx, "GetMessages", func() error {
		var opErr error
		messages, opErr = r.inner.GetMessages(ctx, sessionID)
		return opErr
	})
	return messages, err
}

func (r *RetryStore) Close() error {
	return r.inner.Close()
}
