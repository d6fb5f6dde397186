// Package sentry wraps Sentry SDK initialization for error tracking.
// Reporting is opt-in: with no DSN configured every function is a no-op.
package sentry

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds Sentry configuration.
type Config struct {
	// DSN is the Sentry project DSN. Empty disables reporting.
	DSN string

	// Environment identifies the deployment environment.
	Environment string

	// Release identifies the application release version.
	Release string
}

var enabled bool

// Initialize sets up the Sentry SDK. An empty DSN disables reporting and
// returns nil.
func Initialize(cfg Config) error {
	if cfg.DSN == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
	})
	if err != nil {
		return err
	}

	enabled = true
	return nil
}

// IsEnabled reports whether error reporting is active.
func IsEnabled() bool {
	return enabled
}

// CaptureError reports an error. No-op when disabled or err is nil.
func CaptureError(err error) {
	if !enabled || err == nil {
		return
	}
	sentry.CaptureException(err)
}

// Flush waits for buffered events to be sent. Call before process exit.
func Flush(timeout time.Duration) {
	if !enabled {
		return
	}
	sentry.Flush(timeout)
}
