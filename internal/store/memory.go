package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/meridianlabs/converse/internal/domain"
)

// MemoryStore implements Store with in-process maps. It is used by tests and
// by STORE_BACKEND=memory deployments where durability is not required.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	messages map[string][]domain.Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
		messages: make(map[string][]domain.Message),
	}
}

func (s *MemoryStore) CreateSession(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.SessionID]; ok {
		return fmt.Errorf("session %s: %w", session.SessionID, domain.ErrConflict)
	}
	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	copied := *session
	return &copied, nil
}

func (s *MemoryStore) ListSessions(_ context.Context, owner string) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := []domain.Session{}
	for _, session := range s.sessions {
		if session.Owner == owner {
			sessions = append(sessions, *session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].UpdatedAt.Equal(sessions[j].UpdatedAt) {
			return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
		}
		return sessions[i].SessionID < sessions[j].SessionID
	})
	return sessions, nil
}

func (s *MemoryStore) UpdateSessionName(_ context.Context, sessionID, name string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	session.Name = name
	session.UpdatedAt = updatedAt
	return nil
}

func (s *MemoryStore) BumpSession(_ context.Context, sessionID string, delta int, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	session.MessageCount += delta
	session.UpdatedAt = updatedAt
	return nil
}

func (s *MemoryStore) AppendMessage(_ context.Context, message *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[message.SessionID]; !ok {
		return fmt.Errorf("session %s: %w", message.SessionID, domain.ErrNotFound)
	}
	for _, existing := range s.messages[message.SessionID] {
		if existing.MessageID == message.MessageID {
			return fmt.Errorf("message %s: %w", message.MessageID, domain.ErrConflict)
		}
	}
	s.messages[message.SessionID] = append(s.messages[message.SessionID], *message)
	return nil
}

func (s *MemoryStore) GetMessages(_ context.Context, sessionID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.messages[sessionID]
	messages := make([]domain.Message, len(stored))
	copy(messages, stored)
	return messages, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
