// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, upstream endpoints, cache TTLs and LLM providers.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// University API Configuration
	UniversityAPIBaseURL string // Base URL of the university REST services
	UniversityAPIKey     string // Sent as X-API-KEY on every upstream GET
	OfficialWebsite      string // Linked from composed answers and the oracle prompt

	// LLM Configuration
	GroqAPIKey         string // Groq API key (OpenAI-compatible chat completions)
	GeminiAPIKey       string // Gemini API key (fallback provider)
	GroqModel          string // Groq model (default applies if empty)
	GeminiModel        string // Gemini model (default applies if empty)
	LLMPrimaryProvider string // "groq" or "gemini" (default: "groq")
	OracleTimeout      time.Duration

	// Metrics Authentication
	MetricsUsername string // Username for /metrics Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics Basic Auth (empty = no auth)

	// Sentry
	SentryDSN         string
	SentryEnvironment string

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	CacheTTL   time.Duration // TTL for cached upstream collections
	SessionTTL time.Duration // TTL for idle conversation state

	// Upstream Configuration
	UpstreamTimeout time.Duration

	// Rate Limits (Token Bucket Algorithm)
	SessionRateBurst  float64 // Maximum burst tokens per session (default: 10)
	SessionRateRefill float64 // Tokens refilled per second (default: 0.5)
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		UniversityAPIBaseURL: getEnv(EnvUniversityAPIBaseURL, ""),
		UniversityAPIKey:     getEnv(EnvUniversityAPIKey, ""),
		OfficialWebsite:      getEnv(EnvOfficialWebsite, "https://sgou.ac.in"),

		GroqAPIKey:         getEnv(EnvGroqAPIKey, ""),
		GeminiAPIKey:       getEnv(EnvGeminiAPIKey, ""),
		GroqModel:          getEnv(EnvGroqModel, ""),
		GeminiModel:        getEnv(EnvGeminiModel, ""),
		LLMPrimaryProvider: getEnv(EnvLLMPrimaryProvider, "groq"),
		OracleTimeout:      getDurationEnv(EnvOracleTimeout, OracleRequest),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),

		Port:            getEnv(EnvPort, "8000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),

		CacheTTL:   getDurationEnv(EnvCacheTTL, UpstreamCacheTTL),
		SessionTTL: getDurationEnv(EnvSessionTTL, SessionTTL),

		UpstreamTimeout: getDurationEnv(EnvUpstreamTimeout, UpstreamRequest),

		SessionRateBurst:  getFloatEnv(EnvSessionRateBurst, 10.0),
		SessionRateRefill: getFloatEnv(EnvSessionRateRefill, 0.5),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.UniversityAPIBaseURL == "" {
		errs = append(errs, errors.New(EnvUniversityAPIBaseURL+" is required"))
	}
	if c.UniversityAPIKey == "" {
		errs = append(errs, errors.New(EnvUniversityAPIKey+" is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvCacheTTL, c.CacheTTL))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvSessionTTL, c.SessionTTL))
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvUpstreamTimeout, c.UpstreamTimeout))
	}
	if c.SessionRateBurst <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvSessionRateBurst, c.SessionRateBurst))
	}
	if p := c.LLMPrimaryProvider; p != "groq" && p != "gemini" {
		errs = append(errs, fmt.Errorf("%s must be \"groq\" or \"gemini\", got %q", EnvLLMPrimaryProvider, p))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// HasLLMProvider returns true if at least one LLM provider is configured.
func (c *Config) HasLLMProvider() bool {
	return c.GroqAPIKey != "" || c.GeminiAPIKey != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
