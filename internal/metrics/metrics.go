package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Upstream gateway metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamDurationSeconds *prometheus.HistogramVec

	// Gateway cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Turn metrics
	TurnsTotal          *prometheus.CounterVec
	TurnDurationSeconds prometheus.Histogram

	// Oracle metrics
	OracleCallsTotal *prometheus.CounterVec

	// FAQ matching metrics
	FAQMatchScore prometheus.Histogram

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		UpstreamRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sgou_upstream_requests_total",
				Help: "Total number of university API requests by source and status",
			},
			[]string{"source", "status"}, // status: success, error, malformed
		),

		UpstreamDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sgou_upstream_duration_seconds",
				Help:    "University API request duration in seconds by source",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10}, // Matches 10s upstream timeout
			},
			[]string{"source"}, // source: programs, centers, lsc, faq
		),

		CacheHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sgou_cache_hits_total",
				Help: "Total number of gateway cache hits by source",
			},
			[]string{"source"},
		),

		CacheMissesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sgou_cache_misses_total",
				Help: "Total number of gateway cache misses by source",
			},
			[]string{"source"},
		),

		TurnsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sgou_turns_total",
				Help: "Total number of chat turns by resolved intent and status",
			},
			[]string{"intent", "status"}, // status: answered, degraded, oracle, error
		),

		TurnDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sgou_turn_duration_seconds",
				Help:    "End-to-end chat turn duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
		),

		OracleCallsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sgou_oracle_calls_total",
				Help: "Total number of LLM completion calls by provider and status",
			},
			[]string{"provider", "status"}, // status: success, error
		),

		FAQMatchScore: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sgou_faq_match_score",
				Help:    "Best combined FAQ match score per lookup",
				Buckets: []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.0, 1.2},
			},
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sgou_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: session
		),
	}
}

// RecordUpstreamRequest records a university API request with status
func (m *Metrics) RecordUpstreamRequest(source, status string, duration float64) {
	m.UpstreamRequestsTotal.WithLabelValues(source, status).Inc()
	m.UpstreamDurationSeconds.WithLabelValues(source).Observe(duration)
}

// RecordCacheHit records a gateway cache hit
func (m *Metrics) RecordCacheHit(source string) {
	m.CacheHitsTotal.WithLabelValues(source).Inc()
}

// RecordCacheMiss records a gateway cache miss
func (m *Metrics) RecordCacheMiss(source string) {
	m.CacheMissesTotal.WithLabelValues(source).Inc()
}

// RecordTurn records a completed chat turn
func (m *Metrics) RecordTurn(intent, status string, duration float64) {
	m.TurnsTotal.WithLabelValues(intent, status).Inc()
	m.TurnDurationSeconds.Observe(duration)
}

// RecordOracleCall records an LLM completion attempt
func (m *Metrics) RecordOracleCall(provider, status string) {
	m.OracleCallsTotal.WithLabelValues(provider, status).Inc()
}

// RecordFAQScore records the best FAQ match score of a lookup
func (m *Metrics) RecordFAQScore(score float64) {
	m.FAQMatchScore.Observe(score)
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}
