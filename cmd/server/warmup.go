// Package main provides the SGOU chatbot server entry point.
package main

import (
	"context"
	"time"

	"github.com/sgou-dev/sgou-chatbot-go/internal/gateway"
	"github.com/sgou-dev/sgou-chatbot-go/internal/logger"
)

// warmCache prefetches every upstream collection so the first user turn is
// served from cache. Failures are logged and left for the next on-demand
// fetch; warmup never blocks startup.
func warmCache(ctx context.Context, gw *gateway.Client, log *logger.Logger) {
	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	start := time.Now()

	if _, err := gw.FetchPrograms(warmCtx); err != nil {
		log.WithError(err).Warn("Programme cache warmup failed")
	}
	if _, err := gw.FetchRegionalCenters(warmCtx); err != nil {
		log.WithError(err).Warn("Regional center cache warmup failed")
	}
	if _, err := gw.FetchLSCs(warmCtx, ""); err != nil {
		log.WithError(err).Warn("LSC cache warmup failed")
	}
	if _, err := gw.FetchFAQCorpus(warmCtx); err != nil {
		log.WithError(err).Warn("FAQ cache warmup failed")
	}

	log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Cache warmup finished")
}
