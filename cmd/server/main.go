// Package main provides the SGOU chatbot server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sgou-dev/sgou-chatbot-go/internal/chatbot"
	"github.com/sgou-dev/sgou-chatbot-go/internal/config"
	"github.com/sgou-dev/sgou-chatbot-go/internal/gateway"
	"github.com/sgou-dev/sgou-chatbot-go/internal/logger"
	"github.com/sgou-dev/sgou-chatbot-go/internal/metrics"
	"github.com/sgou-dev/sgou-chatbot-go/internal/oracle"
	"github.com/sgou-dev/sgou-chatbot-go/internal/ratelimit"
	"github.com/sgou-dev/sgou-chatbot-go/internal/sentry"
	"github.com/sgou-dev/sgou-chatbot-go/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("Starting SGOU chatbot server")

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error reporting disabled")
	} else if sentry.IsEnabled() {
		log.Info("Sentry error reporting enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	gw := gateway.NewClient(
		cfg.UniversityAPIBaseURL,
		cfg.UniversityAPIKey,
		cfg.UpstreamTimeout,
		cfg.CacheTTL,
		log,
		m,
	)
	log.WithField("base_url", cfg.UniversityAPIBaseURL).Info("University API gateway created")

	sessions := session.NewManager(cfg.SessionTTL, config.SessionCleanupInterval)

	oracleChain, err := oracle.NewChainFromConfig(context.Background(), cfg, log, m)
	if err != nil {
		log.WithError(err).Fatal("Failed to create oracle providers")
	}
	if oracleChain.Enabled() {
		log.WithField("primary", cfg.LLMPrimaryProvider).Info("Oracle providers configured")
	} else {
		log.Warn("No LLM provider configured, open-ended answers disabled")
	}

	handler := chatbot.New(gw, sessions, oracleChain, cfg.OfficialWebsite, log, m)

	limiter := ratelimit.NewPerKeyLimiter(ratelimit.PerKeyConfig{
		MaxTokens:     cfg.SessionRateBurst,
		RefillRate:    cfg.SessionRateRefill,
		CleanupPeriod: 5 * time.Minute,
	})
	defer limiter.Stop()

	// Prefetch upstream collections while the server starts.
	go warmCache(context.Background(), gw, log)

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, cfg, handler, gw, limiter, registry, m)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.ServerHTTPRead,
		WriteTimeout: config.ServerHTTPWrite,
		IdleTimeout:  config.ServerHTTPIdle,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start server")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	sentry.Flush(2 * time.Second)
	log.Info("Server stopped")
}
