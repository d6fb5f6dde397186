// Package gateway wraps the university's read-only collection APIs behind
// typed fetchers with response normalization and a bounded TTL cache.
//
// Upstream payload shapes are unreliable: the logical list moves between key
// names, elements are sometimes double-JSON-encoded strings, and field names
// drift between deployments. Everything here normalizes to the models types
// and isolates failures per source, so one broken collection never takes the
// others down with it.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sgou-dev/sgou-chatbot-go/internal/errors"
	"github.com/sgou-dev/sgou-chatbot-go/internal/logger"
	"github.com/sgou-dev/sgou-chatbot-go/internal/metrics"
)

// Source names used for cache keys and metric labels.
const (
	sourcePrograms = "programs"
	sourceCenters  = "centers"
	sourceLSCs     = "lsc"
	sourceFAQ      = "faq"
)

// Upstream collection paths.
const (
	pathPrograms = "/api/programmes/"
	pathCenters  = "/api/regional-centers/"
	pathLSCs     = "/api/learning-support-centers/"
	pathFAQ      = "/api/faqs/"
)

// Client fetches university collections over HTTP with an API key header.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      *gocache.Cache
	log        *logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a gateway client. Successful fetches are cached for
// cacheTTL per source; failures are never cached.
func NewClient(baseURL, apiKey string, timeout, cacheTTL time.Duration, log *logger.Logger, m *metrics.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		log:     log.WithModule("gateway"),
		metrics: m,
	}
}

// getJSON performs one GET and decodes the body as arbitrary JSON.
//
// Transport errors and non-2xx statuses return an UpstreamError. A body that
// is not valid JSON is logged and returned as nil with no error: the source
// answered, it just answered garbage, and the batch degrades to empty rather
// than unavailable.
func (c *Client) getJSON(ctx context.Context, source, path string) (any, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordUpstreamRequest(source, "error", time.Since(start).Seconds())
		c.log.WithError(err).WithField("source", source).Warn("upstream request failed")
		return nil, errors.NewUpstreamError(path, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordUpstreamRequest(source, "error", time.Since(start).Seconds())
		c.log.WithFields(map[string]any{
			"source": source,
			"status": resp.StatusCode,
		}).Warn("upstream returned non-success status")
		return nil, errors.NewUpstreamError(path, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordUpstreamRequest(source, "error", time.Since(start).Seconds())
		return nil, errors.NewUpstreamError(path, resp.StatusCode, err)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		c.metrics.RecordUpstreamRequest(source, "malformed", time.Since(start).Seconds())
		c.log.WithError(errors.ErrMalformedPayload).WithField("source", source).Warn("upstream body is not valid JSON")
		return nil, nil
	}

	c.metrics.RecordUpstreamRequest(source, "success", time.Since(start).Seconds())
	return payload, nil
}

// cachedList returns the cached slice for source, or calls fetch and caches
// its result. Only successful fetches enter the cache.
func cachedList[T any](ctx context.Context, c *Client, source string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if v, ok := c.cache.Get(source); ok {
		c.metrics.RecordCacheHit(source)
		return v.([]T), nil
	}
	c.metrics.RecordCacheMiss(source)

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(source, items)
	return items, nil
}
