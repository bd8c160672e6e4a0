// Package llm provides an abstraction for the external model API.
package llm

import "context"

// Client defines the interface for model invocations. The model is treated as
// a stateless function: ordered message list in, single response out. Calls
// may fail or time out; the caller decides what that means for its turn.
type Client interface {
	// CreateChatCompletion sends a chat completion request.
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)

	// ListModels retrieves the list of available models.
	ListModels(ctx context.Context) ([]Model, error)
}

// Ensure both implementations satisfy the Client interface.
var (
	_ Client = (*HTTPClient)(nil)
	_ Client = (*MockClient)(nil)
)
