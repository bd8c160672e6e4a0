package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridianlabs/converse/internal/adapter/llm"
	"github.com/meridianlabs/converse/internal/domain"
)

// Chat executes one conversational turn: load history, append the user
// message, invoke the model, append the reply, update session metadata.
// An empty sessionID creates a new session before the turn runs.
//
// The user message is persisted before the model is invoked, so a model
// failure never loses the user's input. The flip side is deliberate: a failed
// turn leaves a user message with no assistant reply. The next successful
// turn on the session picks it up as ordinary history.
func (s *Service) Chat(ctx context.Context, owner, sessionID, message string) (string, string, error) {
	if owner == "" {
		return "", "", fmt.Errorf("%w: missing owner identity", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(message) == "" {
		return "", "", fmt.Errorf("%w: message must not be empty", domain.ErrInvalidInput)
	}

	if sessionID == "" {
		session, err := s.CreateSession(ctx, owner, "Chat Session", "")
		if err != nil {
			return "", "", err
		}
		sessionID = session.SessionID
	} else {
		allowed, err := s.policyEngine.Allow(ctx, owner, sessionID)
		if err != nil {
			return "", "", fmt.Errorf("policy evaluation failed: %w", err)
		}
		if !allowed {
			return "", "", fmt.Errorf("%w: session %s does not belong to %s", domain.ErrForbidden, sessionID, owner)
		}
		// Policy only checks the namespace; the session must actually exist.
		if _, err := s.store.GetSession(ctx, sessionID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return "", "", err
			}
			return "", "", fmt.Errorf("%w: loading session: %v", domain.ErrStoreUnavailable, err)
		}
	}

	// Serialize turns per session: the whole read-invoke-persist sequence
	// runs under the session's lock so a concurrent turn cannot observe a
	// stale history snapshot.
	unlock := s.locks.acquire(sessionID)
	defer unlock()

	requestID := "turn_" + uuid.New().String()[:8]
	s.tracker.Begin(requestID, sessionID, message)
	defer s.tracker.End(requestID)

	history, err := s.store.GetMessages(ctx, sessionID)
	if err != nil {
		return "", "", fmt.Errorf("%w: loading history: %v", domain.ErrStoreUnavailable, err)
	}

	userMsg := &domain.Message{
		MessageID: "msg_" + uuid.New().String()[:8],
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.AppendMessage(ctx, userMsg); err != nil {
		return "", "", fmt.Errorf("%w: persisting user message: %v", domain.ErrStoreUnavailable, err)
	}

	reply, err := s.complete(ctx, append(history, *userMsg), nil)
	if err != nil {
		log.Printf("ERROR: model invocation failed for session %s: %v", sessionID, err)
		return "", "", err
	}

	assistantMsg := &domain.Message{
		MessageID: "msg_" + uuid.New().String()[:8],
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.AppendMessage(ctx, assistantMsg); err != nil {
		return "", "", fmt.Errorf("%w: persisting assistant message: %v", domain.ErrStoreUnavailable, err)
	}

	// Best effort: message delivery takes priority over bookkeeping accuracy.
	if err := s.store.BumpSession(ctx, sessionID, 2, time.Now().UTC()); err != nil {
		log.Printf("WARN: metadata update failed for session %s: %v", sessionID, err)
	}

	return reply, sessionID, nil
}

// complete invokes the model with the ordered message list under the
// configured timeout and returns the assistant content.
func (s *Service) complete(ctx context.Context, messages []domain.Message, maxTokens *int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.LLMTimeout)
	defer cancel()

	req := &llm.ChatCompletionRequest{
		Model:     s.config.LLMModel,
		Messages:  toChatMessages(messages),
		MaxTokens: maxTokens,
	}
	resp, err := s.model.CreateChatCompletion(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrModelTimeout), errors.Is(err, domain.ErrModelError):
			return "", err
		case errors.Is(err, context.DeadlineExceeded):
			return "", fmt.Errorf("%w: %v", domain.ErrModelTimeout, err)
		default:
			return "", fmt.Errorf("%w: %v", domain.ErrModelError, err)
		}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return "", fmt.Errorf("%w: empty completion", domain.ErrModelError)
	}
	return resp.Choices[0].Message.Content, nil
}

// ListModels retrieves the upstream model list.
func (s *Service) ListModels(ctx context.Context) ([]llm.Model, error) {
	return s.model.ListModels(ctx)
}

func toChatMessages(messages []domain.Message) []llm.ChatMessage {
	out := make([]llm.ChatMessage, len(messages))
	for i, msg := range messages {
		out[i] = llm.ChatMessage{Role: string(msg.Role), Content: msg.Content}
	}
	return out
}
