package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvUniversityAPIBaseURL, "https://sgou.ac.in/api")
	t.Setenv(EnvUniversityAPIKey, "test-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.UpstreamTimeout != 10*time.Second {
		t.Errorf("UpstreamTimeout = %v, want 10s", cfg.UpstreamTimeout)
	}
	if cfg.OfficialWebsite != "https://sgou.ac.in" {
		t.Errorf("OfficialWebsite = %q", cfg.OfficialWebsite)
	}
	if cfg.LLMPrimaryProvider != "groq" {
		t.Errorf("LLMPrimaryProvider = %q, want groq", cfg.LLMPrimaryProvider)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPort, "9000")
	t.Setenv(EnvCacheTTL, "1m")
	t.Setenv(EnvSessionRateBurst, "3")
	t.Setenv(EnvLLMPrimaryProvider, "gemini")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", cfg.CacheTTL)
	}
	if cfg.SessionRateBurst != 3 {
		t.Errorf("SessionRateBurst = %v, want 3", cfg.SessionRateBurst)
	}
	if cfg.LLMPrimaryProvider != "gemini" {
		t.Errorf("LLMPrimaryProvider = %q, want gemini", cfg.LLMPrimaryProvider)
	}
}

func TestLoadRequiresAPIConfig(t *testing.T) {
	t.Setenv(EnvUniversityAPIBaseURL, "")
	t.Setenv(EnvUniversityAPIKey, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when university API config is missing")
	}
	if !strings.Contains(err.Error(), EnvUniversityAPIBaseURL) {
		t.Errorf("error should name %s, got: %v", EnvUniversityAPIBaseURL, err)
	}
	if !strings.Contains(err.Error(), EnvUniversityAPIKey) {
		t.Errorf("error should name %s, got: %v", EnvUniversityAPIKey, err)
	}
}

func TestValidateRejectsBadProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvLLMPrimaryProvider, "cohere")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown LLM provider")
	}
}

func TestHasLLMProvider(t *testing.T) {
	cfg := &Config{}
	if cfg.HasLLMProvider() {
		t.Error("no keys configured, HasLLMProvider should be false")
	}
	cfg.GeminiAPIKey = "k"
	if !cfg.HasLLMProvider() {
		t.Error("Gemini key configured, HasLLMProvider should be true")
	}
}
