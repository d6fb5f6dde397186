package ratelimit

import (
	"sync"
	"time"
)

// PerKeyConfig configures a PerKeyLimiter.
type PerKeyConfig struct {
	MaxTokens     float64       // Burst capacity per key
	RefillRate    float64       // Tokens refilled per second
	CleanupPeriod time.Duration // How often idle buckets are discarded
}

// PerKeyLimiter keeps one token bucket per session and discards buckets that
// have refilled completely, so idle sessions cost nothing.
type PerKeyLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*Limiter
	config   PerKeyConfig
	onDrop   func()
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewPerKeyLimiter creates a per-key limiter and starts its cleanup loop.
// Callers must Stop it when done.
func NewPerKeyLimiter(cfg PerKeyConfig) *PerKeyLimiter {
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = 5 * time.Minute
	}
	pkl := &PerKeyLimiter{
		limiters: make(map[string]*Limiter),
		config:   cfg,
		stopCh:   make(chan struct{}),
	}
	go pkl.cleanupLoop()
	return pkl
}

// OnDrop registers a callback invoked whenever a request is rejected.
func (pkl *PerKeyLimiter) OnDrop(fn func()) {
	pkl.onDrop = fn
}

// Allow consumes one token for key, creating its bucket on first sight.
// An empty key is never limited.
func (pkl *PerKeyLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	pkl.mu.RLock()
	limiter, exists := pkl.limiters[key]
	pkl.mu.RUnlock()

	if !exists {
		pkl.mu.Lock()
		limiter, exists = pkl.limiters[key]
		if !exists {
			limiter = New(pkl.config.MaxTokens, pkl.config.RefillRate)
			pkl.limiters[key] = limiter
		}
		pkl.mu.Unlock()
	}

	allowed := limiter.Allow()
	if !allowed && pkl.onDrop != nil {
		pkl.onDrop()
	}
	return allowed
}

// Stop terminates the cleanup loop. Safe to call more than once.
func (pkl *PerKeyLimiter) Stop() {
	pkl.stopOnce.Do(func() { close(pkl.stopCh) })
}

func (pkl *PerKeyLimiter) cleanupLoop() {
	ticker := time.NewTicker(pkl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pkl.cleanup()
		case <-pkl.stopCh:
			return
		}
	}
}

func (pkl *PerKeyLimiter) cleanup() {
	pkl.mu.Lock()
	defer pkl.mu.Unlock()

	for key, limiter := range pkl.limiters {
		if limiter.IsFull() {
			delete(pkl.limiters, key)
		}
	}
}
