// Package config provides configuration management for Folio.
// It loads settings from environment variables with the FOLIO_ prefix
// and provides sensible defaults for all configuration options.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration settings for the Folio application.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	LLM      LLMConfig
	Search   SearchConfig
	Chat     ChatConfig
	Security SecurityConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port int    // Server port (default: 8484)
	Host string // Server host (default: 127.0.0.1)
}

// StorageConfig contains database configuration.
type StorageConfig struct {
	StorageEngine string // Storage engine type: sqlite, postgres (default: sqlite)
	DataPath      string // Path to data directory for SQLite (default: ./data)
	PostgresDSN   string // PostgreSQL connection string when engine is postgres
}

// LLMConfig contains LLM provider configuration.
type LLMConfig struct {
	APIKey      string        // API key for the chat-completion provider
	Model       string        // Model name (default: gpt-4o-mini)
	BaseURL     string        // API base URL (default: https://api.openai.com)
	Timeout     time.Duration // Per-call timeout (default: 60s)
	Temperature float64       // Sampling temperature for all calls (default: 0.7)
}

// SearchConfig contains web search provider configuration.
type SearchConfig struct {
	TavilyAPIKey string        // Primary provider key; empty disables the primary
	Timeout      time.Duration // Per-search-call timeout (default: 10s)
}

// ChatConfig contains chat pipeline configuration.
type ChatConfig struct {
	RequestTimeout time.Duration // Whole-pipeline timeout per chat request (default: 90s)
	PersonaPath    string        // Optional YAML file overriding the built-in persona
}

// SecurityConfig contains security and authentication settings.
type SecurityConfig struct {
	SecurityMode string // Security mode: development, production (default: development)
	APIToken     string // API authentication token for production mode
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. All environment variables use the FOLIO_ prefix.
func LoadConfig() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("FOLIO_PORT", 8484),
			Host: getEnv("FOLIO_HOST", "127.0.0.1"),
		},
		Storage: StorageConfig{
			StorageEngine: getEnv("FOLIO_STORAGE_ENGINE", "sqlite"),
			DataPath:      getEnv("FOLIO_DATA_PATH", "./data"),
			PostgresDSN:   getEnv("FOLIO_POSTGRES_DSN", ""),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("FOLIO_LLM_API_KEY", ""),
			Model:       getEnv("FOLIO_LLM_MODEL", "gpt-4o-mini"),
			BaseURL:     getEnv("FOLIO_LLM_BASE_URL", "https://api.openai.com"),
			Timeout:     getEnvDuration("FOLIO_LLM_TIMEOUT", 60*time.Second),
			Temperature: getEnvFloat("FOLIO_LLM_TEMPERATURE", 0.7),
		},
		Search: SearchConfig{
			TavilyAPIKey: getEnv("FOLIO_TAVILY_API_KEY", ""),
			Timeout:      getEnvDuration("FOLIO_SEARCH_TIMEOUT", 10*time.Second),
		},
		Chat: ChatConfig{
			RequestTimeout: getEnvDuration("FOLIO_CHAT_TIMEOUT", 90*time.Second),
			PersonaPath:    getEnv("FOLIO_PERSONA_PATH", ""),
		},
		Security: SecurityConfig{
			SecurityMode: getEnv("FOLIO_SECURITY_MODE", "development"),
			APIToken:     getEnv("FOLIO_API_TOKEN", ""),
		},
	}, nil
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
// value. If the environment variable exists but cannot be parsed as an
// integer, it returns the default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a default value.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable (e.g. "30s")
// or returns a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
