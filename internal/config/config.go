// Package config provides configuration for the chat backend.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the process configuration.
type Config struct {
	// Server settings
	HTTPPort     int
	InternalPort int

	// CORS
	CORSOrigins []string

	// Storage
	DatabaseURL  string
	StoreBackend string // "sqlite" or "memory"

	// Model collaborator
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	LLMTimeout     time.Duration
	LLMMode        string // "live" or "mock"
	TitleMaxTokens int

	// Auth
	JWTSecret     string
	AuthDevTokens bool

	// Environment
	Environment string
	LogLevel    string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		InternalPort:   getEnvInt("INTERNAL_PORT", 8081),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		DatabaseURL:    getEnv("DATABASE_URL", "file:converse.db?cache=shared&mode=rwc"),
		StoreBackend:   getEnv("STORE_BACKEND", "sqlite"),
		LLMBaseURL:     getEnv("LLM_BASE_URL", ""),
		LLMAPIKey:      getEnv("LLM_API_KEY", ""),
		LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeout:     time.Duration(getEnvInt("LLM_TIMEOUT_MS", 30000)) * time.Millisecond,
		LLMMode:        getEnv("LLM_MODE", "live"),
		TitleMaxTokens: getEnvInt("TITLE_MAX_TOKENS", 10),
		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		AuthDevTokens:  getEnvBool("AUTH_DEV_TOKENS", false),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

// IsDevelopment reports whether the process runs in development mode.
// Error responses include diagnostic detail only in development.
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.Environment) != "production"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
