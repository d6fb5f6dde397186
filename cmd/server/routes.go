// Package main provides the SGOU chatbot server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sgou-dev/sgou-chatbot-go/internal/chatbot"
	"github.com/sgou-dev/sgou-chatbot-go/internal/compose"
	"github.com/sgou-dev/sgou-chatbot-go/internal/config"
	"github.com/sgou-dev/sgou-chatbot-go/internal/gateway"
	"github.com/sgou-dev/sgou-chatbot-go/internal/metrics"
	"github.com/sgou-dev/sgou-chatbot-go/internal/ratelimit"
)

// chatRequest is the POST /api/chat body.
type chatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// setupRoutes configures all HTTP routes.
func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	handler *chatbot.Handler,
	gw *gateway.Client,
	limiter *ratelimit.PerKeyLimiter,
	registry *prometheus.Registry,
	m *metrics.Metrics,
) {
	// Liveness probe. Never checks dependencies.
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe: upstream reachability plus collection sizes.
	readyHandler := func(c *gin.Context) {
		checkCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		programs, err := gw.FetchPrograms(checkCtx)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "university API unreachable",
			})
			return
		}

		centers, _ := gw.FetchRegionalCenters(checkCtx)
		lscs, _ := gw.FetchLSCs(checkCtx, "")
		faqs, _ := gw.FetchFAQCorpus(checkCtx)

		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"cache": gin.H{
				"programs": len(programs),
				"centers":  len(centers),
				"lscs":     len(lscs),
				"faqs":     len(faqs),
			},
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	router.POST("/api/chat", chatHandler(handler, limiter, m))
	router.GET("/api/programs", programsHandler(gw, cfg.OfficialWebsite))

	// Prometheus metrics, behind basic auth when a password is set.
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUsername: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}

// chatHandler answers one chat turn. Business failures are already folded
// into the reply text; the endpoint itself fails only on malformed bodies
// and rate-limited sessions.
func chatHandler(handler *chatbot.Handler, limiter *ratelimit.PerKeyLimiter, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		// First turn of a conversation gets a server-issued session.
		if strings.TrimSpace(req.SessionID) == "" {
			req.SessionID = uuid.NewString()
		}

		if !limiter.Allow(req.SessionID) {
			m.RecordRateLimiterDrop("session")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please slow down",
			})
			return
		}

		message := handler.HandleTurn(c.Request.Context(), req.SessionID, req.Query)
		c.JSON(http.StatusOK, gin.H{
			"message":    message,
			"session_id": req.SessionID,
		})
	}
}

// programsHandler is the direct programme lookup endpoint: the full numbered
// listing by default, or one programme's details via ?number=N.
func programsHandler(gw *gateway.Client, websiteURL string) gin.HandlerFunc {
	link := compose.WebsiteLink(websiteURL)

	return func(c *gin.Context) {
		programs, err := gw.FetchPrograms(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to fetch programs from SGOU API.",
				"help":  "You can also check programs directly on " + link,
			})
			return
		}

		number := c.Query("number")
		if number == "" {
			var lines []string
			for i, p := range programs {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, p.Name))
			}
			c.JSON(http.StatusOK, gin.H{
				"programs":        strings.Join(lines, "\n"),
				"additional_info": "For detailed information about each program, please visit " + link,
			})
			return
		}

		n, err := strconv.Atoi(number)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid program number",
				"help":  "Please visit " + link + " for valid program information",
			})
			return
		}
		if n < 1 || n > len(programs) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Program number not found",
				"help":  "Please check the available programs on " + link,
			})
			return
		}

		p := programs[n-1]
		c.JSON(http.StatusOK, gin.H{
			"program": gin.H{
				"name":             p.Name,
				"description":      p.Description,
				"fee":              p.Fee,
				"category":         p.Category,
				"duration":         p.Duration,
				"official_website": "For more details, visit " + link,
			},
		})
	}
}
