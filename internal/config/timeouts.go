// Package config provides centralized timeout constants for the application.
//
// Upstream calls are single GETs against the university REST services; the
// oracle call is one chat completion per turn. Neither is retried, so the
// timeouts below bound the worst case for a whole turn.
package config

import "time"

// Upstream timeouts
const (
	// UpstreamRequest is the timeout for a single GET to a university API
	// endpoint (programmes, regional centers, LSCs, Q&A corpus).
	UpstreamRequest = 10 * time.Second

	// UpstreamCacheTTL is the default TTL for cached upstream collections.
	// Programme data changes rarely; five minutes keeps answers fresh while
	// avoiding a fetch per turn.
	UpstreamCacheTTL = 5 * time.Minute
)

// Oracle timeouts
const (
	// OracleRequest is the timeout for one chat-completion call. Matches the
	// upstream chatbot behavior of giving up and apologizing rather than
	// retrying.
	OracleRequest = 20 * time.Second
)

// Session lifetime
const (
	// SessionTTL is how long idle conversation state is kept. A pending
	// clarification older than this is treated as gone.
	SessionTTL = 30 * time.Minute

	// SessionCleanupInterval is how often expired session entries are purged.
	SessionCleanupInterval = 10 * time.Minute
)

// HTTP server timeouts
const (
	// ServerHTTPRead bounds reading a chat request body (small JSON).
	ServerHTTPRead = 10 * time.Second

	// ServerHTTPWrite accommodates a full turn: upstream fetches plus one
	// oracle call plus serialization.
	ServerHTTPWrite = 45 * time.Second

	// ServerHTTPIdle is the keep-alive idle timeout.
	ServerHTTPIdle = 120 * time.Second
)

// Graceful shutdown
const (
	// GracefulShutdown is the timeout for draining in-flight requests.
	GracefulShutdown = 30 * time.Second
)
