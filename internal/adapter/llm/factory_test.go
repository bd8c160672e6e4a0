package llm

import (
	"testing"
	"time"

	"github.com/meridianlabs/converse/internal/config"
)

func TestFactoryMockMode(t *testing.T) {
	client, err := New(&config.Config{LLMMode: "mock"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := client.(*MockClient); !ok {
		t.Fatalf("expected MockClient, got %T", client)
	}
}

func TestFactoryLiveMode(t *testing.T) {
	client, err := New(&config.Config{
		LLMMode:    "live",
		LLMBaseURL: "http://localhost:9999",
		LLMTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := client.(*HTTPClient); !ok {
		t.Fatalf("expected HTTPClient, got %T", client)
	}
}

func TestFactoryLiveModeRequiresBaseURL(t *testing.T) {
	if _, err := New(&config.Config{LLMMode: "live"}); err == nil {
		t.Fatal("expected error without base URL")
	}
}

func TestFactoryRejectsUnknownMode(t *testing.T) {
	if _, err := New(&config.Config{LLMMode: "hologram"}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
