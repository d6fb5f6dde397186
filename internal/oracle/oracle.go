// Package oracle calls external LLM chat-completion services for open-ended
// answers the structural handlers cannot produce.
//
// Answers are best-effort: one attempt per provider per turn, primary then
// fallback, no retries. A turn that exhausts the chain degrades to a canned
// reply upstream; nothing here is load-bearing for structural intents.
package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/sgou-dev/sgou-chatbot-go/internal/config"
	"github.com/sgou-dev/sgou-chatbot-go/internal/errors"
	"github.com/sgou-dev/sgou-chatbot-go/internal/logger"
	"github.com/sgou-dev/sgou-chatbot-go/internal/metrics"
)

// Generation settings shared by all providers.
const (
	completionTemperature = 0.3
	completionMaxTokens   = 400
)

// Provider is one chat-completion backend.
type Provider interface {
	// Complete returns the model's text for a system+user prompt pair.
	Complete(ctx context.Context, system, user string) (string, error)

	// Name identifies the provider in logs and metrics.
	Name() string
}

// Chain tries providers in order and returns the first answer.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewChain builds a provider chain. An empty provider list is valid; the
// chain then reports ErrOracleUnavailable on every call.
func NewChain(providers []Provider, timeout time.Duration, log *logger.Logger, m *metrics.Metrics) *Chain {
	return &Chain{
		providers: providers,
		timeout:   timeout,
		log:       log.WithModule("oracle"),
		metrics:   m,
	}
}

// NewChainFromConfig assembles providers from configuration, ordered by the
// configured primary. Providers without an API key are skipped.
func NewChainFromConfig(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (*Chain, error) {
	var groq, gemini Provider
	if cfg.GroqAPIKey != "" {
		groq = NewGroq(cfg.GroqAPIKey, cfg.GroqModel)
	}
	if cfg.GeminiAPIKey != "" {
		p, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini provider: %w", err)
		}
		gemini = p
	}

	var providers []Provider
	if cfg.LLMPrimaryProvider == "gemini" {
		providers = appendProvider(providers, gemini, groq)
	} else {
		providers = appendProvider(providers, groq, gemini)
	}
	return NewChain(providers, cfg.OracleTimeout, log, m), nil
}

func appendProvider(dst []Provider, ps ...Provider) []Provider {
	for _, p := range ps {
		if p != nil {
			dst = append(dst, p)
		}
	}
	return dst
}

// Enabled reports whether at least one provider is configured.
func (c *Chain) Enabled() bool {
	return c != nil && len(c.providers) > 0
}

// Complete asks each provider in order, one attempt each, and returns the
// first non-empty answer. All failures collapse to ErrOracleUnavailable.
func (c *Chain) Complete(ctx context.Context, system, user string) (string, error) {
	if !c.Enabled() {
		return "", errors.ErrOracleUnavailable
	}

	var lastErr error
	for _, p := range c.providers {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		answer, err := p.Complete(callCtx, system, user)
		cancel()

		if err != nil {
			lastErr = err
			c.metrics.RecordOracleCall(p.Name(), "error")
			c.log.WithError(err).WithField("provider", p.Name()).Warn("completion failed")
			continue
		}

		c.metrics.RecordOracleCall(p.Name(), "success")
		return answer, nil
	}

	return "", fmt.Errorf("%w: %w", errors.ErrOracleUnavailable, lastErr)
}
