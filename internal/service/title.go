package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/meridianlabs/converse/internal/domain"
)

const (
	fallbackSessionTitle = "Chat Session"
	titleContextMessages = 3
	maxTitleLen          = 50

	titleInstruction = "Based on this conversation, generate an ultra short, descriptive title, max 3 words. Respond with ONLY the title, no quotes or explanations."
)

// GenerateTitle derives a short label for a session from its early turns.
// Sessions with fewer than two messages get the default name without a model
// call. Any internal failure yields the fallback title; this never errors.
func (s *Service) GenerateTitle(ctx context.Context, sessionID string) string {
	history, err := s.store.GetMessages(ctx, sessionID)
	if err != nil {
		log.Printf("WARN: title generation could not load history for %s: %v", sessionID, err)
		return fallbackSessionTitle
	}
	if len(history) < 2 {
		return defaultSessionName
	}

	if len(history) > titleContextMessages {
		history = history[:titleContextMessages]
	}
	var lines []string
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}

	prompt := []domain.Message{
		{Role: domain.RoleSystem, Content: titleInstruction},
		{Role: domain.RoleUser, Content: strings.Join(lines, "\n")},
	}
	maxTokens := s.config.TitleMaxTokens
	reply, err := s.complete(ctx, prompt, &maxTokens)
	if err != nil {
		log.Printf("WARN: title generation failed for %s: %v", sessionID, err)
		return fallbackSessionTitle
	}

	title := strings.TrimSpace(reply)
	title = strings.Trim(title, `"'`)
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLen {
		log.Printf("WARN: discarding generated title for %s: %q", sessionID, title)
		return fallbackSessionTitle
	}
	return title
}

// AutoTitleSession generates a title for the session and renames it,
// returning the updated record.
func (s *Service) AutoTitleSession(ctx context.Context, owner, sessionID string) (*domain.Session, error) {
	title := s.GenerateTitle(ctx, sessionID)
	return s.RenameSession(ctx, owner, sessionID, title)
}
