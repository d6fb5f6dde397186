package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordUpstreamRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordUpstreamRequest("programs", "success", 0.2)
	m.RecordUpstreamRequest("programs", "error", 1.5)
	m.RecordUpstreamRequest("centers", "success", 0.1)

	if got := testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("programs", "success")); got != 1 {
		t.Errorf("programs/success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("programs", "error")); got != 1 {
		t.Errorf("programs/error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("centers", "success")); got != 1 {
		t.Errorf("centers/success = %v, want 1", got)
	}
}

func TestRecordTurn(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordTurn("program_list", "answered", 0.05)
	m.RecordTurn("program_list", "answered", 0.07)
	m.RecordTurn("faq_or_general", "oracle", 2.1)

	if got := testutil.ToFloat64(m.TurnsTotal.WithLabelValues("program_list", "answered")); got != 2 {
		t.Errorf("program_list/answered = %v, want 2", got)
	}
}

func TestRecordCacheAndDrops(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordCacheHit("faq")
	m.RecordCacheMiss("faq")
	m.RecordCacheMiss("faq")
	m.RecordRateLimiterDrop("session")

	if got := testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("faq")); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("faq")); got != 2 {
		t.Errorf("cache misses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.RateLimiterDropped.WithLabelValues("session")); got != 1 {
		t.Errorf("dropped = %v, want 1", got)
	}
}

// Registering twice on the same registry must panic (duplicate collectors),
// so each component gets its own registry in tests.
func TestSeparateRegistries(t *testing.T) {
	m1 := New(prometheus.NewRegistry())
	m2 := New(prometheus.NewRegistry())

	m1.RecordOracleCall("groq", "success")
	if got := testutil.ToFloat64(m2.OracleCallsTotal.WithLabelValues("groq", "success")); got != 0 {
		t.Errorf("metrics leaked across registries: %v", got)
	}
}
