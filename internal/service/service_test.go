package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meridianlabs/converse/internal/adapter/llm"
	"github.com/meridianlabs/converse/internal/config"
	"github.com/meridianlabs/converse/internal/store"
	"github.com/meridianlabs/converse/internal/tracker"
	"github.com/meridianlabs/converse/policy"
)

// scriptedModel is an llm.Client whose completion behavior is injected per
// test. It records every request so tests can inspect the exact prompt the
// executor assembled.
type scriptedModel struct {
	mu       sync.Mutex
	requests []*llm.ChatCompletionRequest
	complete func(req *llm.ChatCompletionRequest) (string, error)
}

func (m *scriptedModel) CreateChatCompletion(ctx context.Context, req *llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	fn := m.complete
	m.mu.Unlock()

	content := "ok"
	if fn != nil {
		var err error
		content, err = fn(req)
		if err != nil {
			return nil, err
		}
	}
	return &llm.ChatCompletionResponse{
		ID:     "chatcmpl-test",
		Object: "chat.completion",
		Model:  req.Model,
		Choices: []llm.Choice{
			{Index: 0, Message: &llm.ChatMessage{Role: "assistant", Content: content}, FinishReason: "stop"},
		},
	}, nil
}

func (m *scriptedModel) ListModels(ctx context.Context) ([]llm.Model, error) {
	return []llm.Model{{ID: "scripted", Object: "model"}}, nil
}

func (m *scriptedModel) recorded() []*llm.ChatCompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*llm.ChatCompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

var _ llm.Client = (*scriptedModel)(nil)

func testConfig() *config.Config {
	return &config.Config{
		LLMModel:       "test-model",
		LLMTimeout:     2 * time.Second,
		TitleMaxTokens: 10,
	}
}

// newTestService wires a Service over an in-memory store and the given model.
func newTestService(t *testing.T, st store.Store, model llm.Client) *Service {
	t.Helper()
	if st == nil {
		st = store.NewMemoryStore()
	}
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)
	return New(st, model, engine, tracker.New(), testConfig())
}
