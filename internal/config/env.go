// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Core (Required)
	EnvUniversityAPIBaseURL = "SGOU_UNIVERSITY_API_BASE_URL"
	EnvUniversityAPIKey     = "SGOU_UNIVERSITY_API_KEY"

	// Server
	EnvPort            = "SGOU_PORT"
	EnvLogLevel        = "SGOU_LOG_LEVEL"
	EnvShutdownTimeout = "SGOU_SHUTDOWN_TIMEOUT"
	EnvOfficialWebsite = "SGOU_OFFICIAL_WEBSITE"

	// Data
	EnvCacheTTL   = "SGOU_CACHE_TTL"
	EnvSessionTTL = "SGOU_SESSION_TTL"

	// Upstream
	EnvUpstreamTimeout = "SGOU_UPSTREAM_TIMEOUT"

	// Rate Limits
	EnvSessionRateBurst  = "SGOU_SESSION_RATE_BURST"
	EnvSessionRateRefill = "SGOU_SESSION_RATE_REFILL"

	// LLM Feature
	EnvGroqAPIKey         = "SGOU_GROQ_API_KEY"
	EnvGeminiAPIKey       = "SGOU_GEMINI_API_KEY"
	EnvGroqModel          = "SGOU_GROQ_MODEL"
	EnvGeminiModel        = "SGOU_GEMINI_MODEL"
	EnvLLMPrimaryProvider = "SGOU_LLM_PRIMARY_PROVIDER"
	EnvOracleTimeout      = "SGOU_ORACLE_TIMEOUT"

	// Sentry Feature
	EnvSentryDSN         = "SGOU_SENTRY_DSN"
	EnvSentryEnvironment = "SGOU_SENTRY_ENVIRONMENT"

	// Metrics Auth Feature
	EnvMetricsUsername = "SGOU_METRICS_USERNAME"
	EnvMetricsPassword = "SGOU_METRICS_PASSWORD"
)
