package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meridianlabs/converse/internal/adapter/llm"
	"github.com/meridianlabs/converse/internal/auth"
	"github.com/meridianlabs/converse/internal/config"
	"github.com/meridianlabs/converse/internal/service"
	"github.com/meridianlabs/converse/internal/store"
	"github.com/meridianlabs/converse/internal/tracker"
	transport "github.com/meridianlabs/converse/internal/transport/http"
	"github.com/meridianlabs/converse/policy"
)

func main() {
	cfg := config.Load()

	log.Printf("Starting converse...")
	log.Printf("External HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Internal HTTP Port: %d", cfg.InternalPort)
	log.Printf("Store backend: %s", cfg.StoreBackend)
	log.Printf("LLM mode: %s (model %s)", cfg.LLMMode, cfg.LLMModel)

	// Initialize store
	var backend store.Store
	switch cfg.StoreBackend {
	case "memory":
		backend = store.NewMemoryStore()
	case "sqlite", "":
		sqliteStore, err := store.NewSQLiteStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		backend = sqliteStore
	default:
		log.Fatalf("Unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	db := store.WithRetry(backend)
	defer db.Close()

	// Initialize model client
	modelClient, err := llm.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize model client: %v", err)
	}

	// Initialize authenticator
	authn, err := auth.New(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize authenticator: %v", err)
	}

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize turn tracker and service
	trk := tracker.New()
	svc := service.New(db, modelClient, policyEngine, trk, cfg)

	externalServer := transport.NewExternalServer(svc, authn, cfg)
	internalServer := transport.NewInternalServer(svc)

	// Start external server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := externalServer.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start external server: %v", err)
		}
	}()

	// Start internal server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.InternalPort)
		if err := internalServer.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start internal server: %v", err)
		}
	}()

	log.Printf("External API started on port %d", cfg.HTTPPort)
	log.Printf("Internal API started on port %d", cfg.InternalPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down converse...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdown(shutdownCtx, externalServer, "external")
	shutdown(shutdownCtx, internalServer, "internal")

	log.Println("Converse stopped")
}

func shutdown(ctx context.Context, e *echo.Echo, name string) {
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown %s server gracefully: %v", name, err)
	}
}
