package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// MockClient is a deterministic, history-aware implementation of Client used
// in mock mode and in tests. It answers from the prompt it is given, which
// makes it useful for verifying that conversation history actually reaches
// the model.
type MockClient struct{}

// NewMockClient creates a new mock model client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

var namePattern = regexp.MustCompile(`(?i)\bmy name is ([A-Za-z]+)`)

// CreateChatCompletion returns a canned response derived from the prompt.
func (m *MockClient) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	content := m.reply(req.Messages)
	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []Choice{
			{
				Index: 0,
				Message: &ChatMessage{
					Role:    "assistant",
					Content: content,
				},
				FinishReason: "stop",
			},
		},
		Usage: &Usage{
			PromptTokens:     estimateTokens(req.Messages),
			CompletionTokens: len(content) / 4,
			TotalTokens:      estimateTokens(req.Messages) + len(content)/4,
		},
	}, nil
}

// ListModels returns a fixed model list.
func (m *MockClient) ListModels(ctx context.Context) ([]Model, error) {
	return []Model{
		{ID: "mock-gpt-4o-mini", Object: "model", Created: time.Now().Unix(), OwnedBy: "mock"},
	}, nil
}

func (m *MockClient) reply(messages []ChatMessage) string {
	if len(messages) > 0 && messages[0].Role == "system" &&
		strings.Contains(strings.ToLower(messages[0].Content), "title") {
		return "Quick Chat"
	}

	var last string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			last = messages[i].Content
			break
		}
	}
	if last == "" {
		return "Hello! How can I help?"
	}

	lower := strings.ToLower(last)
	if strings.Contains(lower, "name") && strings.Contains(last, "?") {
		// Answer strictly from the conversation we were handed.
		for i := len(messages) - 1; i >= 0; i-- {
			if messages[i].Role != "user" {
				continue
			}
			if match := namePattern.FindStringSubmatch(messages[i].Content); match != nil {
				return fmt.Sprintf("Your name is %s.", match[1])
			}
		}
		return "I don't know your name yet."
	}

	if match := namePattern.FindStringSubmatch(last); match != nil {
		return fmt.Sprintf("Nice to meet you, %s!", match[1])
	}

	return fmt.Sprintf("You said: %q. How can I help?", truncate(last, 100))
}

func estimateTokens(messages []ChatMessage) int {
	total := 0
	for _, msg := range messages {
		total += len(msg.Content) / 4
	}
	return total
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
