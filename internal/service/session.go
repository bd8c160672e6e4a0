package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meridianlabs/converse/internal/domain"
)

const defaultSessionName = "New Chat"

// CreateSession creates a new session for owner. The session id is owner's
// namespace plus either customID or a random 8-character suffix. Reusing a
// custom id yields domain.ErrConflict.
func (s *Service) CreateSession(ctx context.Context, owner, name, customID string) (*domain.Session, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: missing owner identity", domain.ErrInvalidInput)
	}
	if name == "" {
		name = defaultSessionName
	}
	suffix := customID
	if suffix == "" {
		suffix = uuid.New().String()[:8]
	}
	now := time.Now().UTC()
	session := &domain.Session{
		SessionID: owner + "_" + suffix,
		Owner:     owner,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: creating session: %v", domain.ErrStoreUnavailable, err)
	}
	return session, nil
}

// ListSessions returns all of owner's sessions, most recently active first.
func (s *Service) ListSessions(ctx context.Context, owner string) ([]domain.Session, error) {
	sessions, err := s.store.ListSessions(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: listing sessions: %v", domain.ErrStoreUnavailable, err)
	}
	return sessions, nil
}

// RenameSession updates a session's display name. The stored owner must
// match, not just the id prefix.
func (s *Service) RenameSession(ctx context.Context, owner, sessionID, name string) (*domain.Session, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
	}
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: loading session: %v", domain.ErrStoreUnavailable, err)
	}
	if session.Owner != owner {
		return nil, fmt.Errorf("%w: session %s does not belong to %s", domain.ErrForbidden, sessionID, owner)
	}

	now := time.Now().UTC()
	if err := s.store.UpdateSessionName(ctx, sessionID, name, now); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: renaming session: %v", domain.ErrStoreUnavailable, err)
	}
	session.Name = name
	session.UpdatedAt = now
	return session, nil
}

// SessionHistory returns a session's messages in insertion order after an
// ownership check.
func (s *Service) SessionHistory(ctx context.Context, owner, sessionID string) ([]domain.Message, error) {
	allowed, err := s.policyEngine.Allow(ctx, owner, sessionID)
	if err != nil {
		return nil, fmt.Errorf("policy evaluation failed: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: session %s does not belong to %s", domain.ErrForbidden, sessionID, owner)
	}
	messages, err := s.store.GetMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading history: %v", domain.ErrStoreUnavailable, err)
	}
	return messages, nil
}
