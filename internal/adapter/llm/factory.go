package llm

import (
	"fmt"
	"log"

	"github.com/meridianlabs/converse/internal/config"
)

// New constructs the model client selected by configuration. Mock mode must
// be requested explicitly; a misconfigured live client is a startup error,
// never a silent fallback to the mock.
func New(cfg *config.Config) (Client, error) {
	switch cfg.LLMMode {
	case "mock":
		log.Println("LLM_MODE=mock, using mock model client")
		return NewMockClient(), nil
	case "live", "":
		if cfg.LLMBaseURL == "" {
			return nil, fmt.Errorf("LLM_BASE_URL is required in live mode")
		}
		return NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM_MODE %q", cfg.LLMMode)
	}
}
