package chatbot

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgou-dev/sgou-chatbot-go/internal/compose"
	"github.com/sgou-dev/sgou-chatbot-go/internal/gateway"
	"github.com/sgou-dev/sgou-chatbot-go/internal/logger"
	"github.com/sgou-dev/sgou-chatbot-go/internal/metrics"
	"github.com/sgou-dev/sgou-chatbot-go/internal/session"
)

const testWebsite = "https://sgou.ac.in"

type stubOracle struct {
	enabled bool
	answer  string
	err     error
	calls   int
	lastSys string
	lastUsr string
}

func (s *stubOracle) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls++
	s.lastSys = system
	s.lastUsr = user
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubOracle) Enabled() bool { return s.enabled }

// defaultUpstream serves a small but complete university dataset.
func defaultUpstream() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/programmes/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"programme": [
			{"pgm_name": "BA History", "pgm_category": "UG", "pgm_year": "3", "fee_structure": "12000", "pgm_desc": "History degree"},
			{"pgm_name": "BA History (Honours)", "pgm_category": "FYUG", "pgm_year": "4", "fee_structure": "16000", "pgm_desc": "Honours history degree"},
			{"pgm_name": "BCA", "pgm_category": "UG", "pgm_year": "3", "fee_structure": "15000", "pgm_desc": "Computer applications"},
			{"pgm_name": "MSc Zoology", "pgm_category": "PG", "pgm_year": "2", "fee_structure": "18000", "pgm_desc": "Zoology masters"}
		]}`))
	})
	mux.HandleFunc("/api/regional-centers/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rc": [
			{"id": 1, "rcname": "Regional Centre – Kochi", "address": "Kochi"},
			{"id": 2, "rcname": "Regional Centre - Trivandrum", "address": "Trivandrum"}
		]}`))
	})
	mux.HandleFunc("/api/learning-support-centers/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"lsc": [
			{"lscname": "LSC Aluva", "rc": 1, "address": "Aluva"},
			{"lscname": "LSC Attingal", "rc": 2, "address": "Attingal"}
		]}`))
	})
	mux.HandleFunc("/api/faqs/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"questions": [
			{"question": "What is the full form of SGOU?", "answer": "Sreenarayanaguru Open University"},
			{"question": "What is the duration of BA History", "answer": "BA History runs for three years."}
		]}`))
	})
	return mux
}

func newTestHandler(t *testing.T, upstream http.Handler) (*Handler, *stubOracle) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	log := logger.NewWithWriter("error", io.Discard)
	m := metrics.New(prometheus.NewRegistry())
	gw := gateway.NewClient(srv.URL, "test-key", 5*time.Second, time.Minute, log, m)
	sessions := session.NewManager(time.Minute, time.Minute)
	o := &stubOracle{enabled: true, answer: "oracle answer"}

	return New(gw, sessions, o, testWebsite, log, m), o
}

func TestHandleTurnEmptyQuery(t *testing.T) {
	h, _ := newTestHandler(t, defaultUpstream())
	assert.Equal(t, compose.MsgEmptyQuery, h.HandleTurn(context.Background(), "s1", "   "))
}

func TestExactFAQMatchWinsPrecheck(t *testing.T) {
	h, o := newTestHandler(t, defaultUpstream())

	reply := h.HandleTurn(context.Background(), "s1", "what is the full form of sgou?")
	assert.Equal(t, "Sreenarayanaguru Open University", reply)
	assert.Equal(t, 0, o.calls)
}

func TestStructuralRequestBypassesFAQ(t *testing.T) {
	h, _ := newTestHandler(t, defaultUpstream())

	reply := h.HandleTurn(context.Background(), "s1", "list all programs")
	assert.Contains(t, reply, "<ol>")
	assert.Equal(t, 4, strings.Count(reply, "<li>"))
	assert.Contains(t, reply, "BA History")
}

func TestNumericFollowUpAfterListing(t *testing.T) {
	h, _ := newTestHandler(t, defaultUpstream())
	ctx := context.Background()

	_ = h.HandleTurn(ctx, "s1", "list all programs")

	reply := h.HandleTurn(ctx, "s1", "3")
	assert.Contains(t, reply, "<b>BCA</b>")
	assert.Contains(t, reply, "Fee: 15000")
}

func TestNumericFollowUpOutOfRangeClearsList(t *testing.T) {
	h, _ := newTestHandler(t, defaultUpstream())
	ctx := context.Background()

	_ = h.HandleTurn(ctx, "s1", "list all programs")

	assert.Equal(t, compose.MsgOutOfRange, h.HandleTurn(ctx, "s1", "9"))

	// The bad pick invalidated the list; even a valid index now fails.
	assert.Equal(t, compose.MsgNoListPresent, h.HandleTurn(ctx, "s1", "1"))
}

func TestNumericFollowUpWithoutList(t *testing.T) {
	h, _ := newTestHandler(t, defaultUpstream())
	assert.Equal(t, compose.MsgNoListPresent, h.HandleTurn(context.Background(), "s1", "2"))
}

func TestHonoursClarificationFlow(t *testing.T) {
	h, _ := newTestHandler(t, defaultUpstream())
	ctx := context.Background()

	reply := h.HandleTurn(ctx, "s1", "ba history")
	assert.Equal(t, "Are you asking about the Honours version of BA History? Please reply yes or no.", reply)

	// "yes" resolves to the Honours variant.
	reply = h.HandleTurn(ctx, "s1", "yes")
	assert.Contains(t, reply, "<b>BA History (Honours)</b>")
	assert.Contains(t, reply, "Duration: 4")

	// A fresh session answering "no" gets the plain variant.
	_ = h.HandleTurn(ctx, "s2", "ba history")
	reply = h.HandleTurn(ctx, "s2", "no")
	assert.Contains(t, reply, "<b>BA History</b>")
	assert.Contains(t, reply, "Duration: 3")
}

func TestClarificationSurvivesUnrelatedReply(t *testing.T) {
	h, o := newTestHandler(t, defaultUpstream())
	ctx := context.Background()

	prompt := h.HandleTurn(ctx, "s1", "ba history")
	require.Equal(t, "Are you asking about the Honours version of BA History? Please reply yes or no.", prompt)

	// A reply that is neither yes nor no repeats the question and keeps
	// the clarification pending.
	assert.Equal(t, prompt, h.HandleTurn(ctx, "s1", "maybe tell me more"))
	assert.Equal(t, 0, o.calls)

	// The pending question still resolves on the next turn.
	reply := h.HandleTurn(ctx, "s1", "yes")
	assert.Contains(t, reply, "<b>BA History (Honours)</b>")
}

func TestFeeFlowAsksForProgramName(t *testing.T) {
	h, _ := newTestHandler(t, defaultUpstream())
	ctx := context.Background()

	assert.Equal(t, compose.MsgAskFeeProgram, h.HandleTurn(ctx, "s1", "how much is the tuition"))

	reply := h.HandleTurn(ctx, "s1", "BCA")
	assert.Equal(t, "The fee for BCA is 15000.", reply)
}

func TestFieldQuery(t *testing.T) {
	h, _ := newTestHandler(t, defaultUpstream())

	reply := h.HandleTurn(context.Background(), "s1", "category of msc zoology")
	assert.Equal(t, "The category of MSc Zoology is PG.", reply)
}

func TestCategoryListing(t *testing.T) {
	h, _ := newTestHandler(t, defaultUpstream())
	ctx := context.Background()

	reply := h.HandleTurn(ctx, "s1", "show ug programs")
	assert.Contains(t, reply, "UG programmes")
	assert.Equal(t, 2, strings.Count(reply, "<li>"))
	assert.Contains(t, reply, "BCA")
	assert.NotContains(t, reply, "MSc Zoology")

	// The filtered listing supports numeric follow-up.
	reply = h.HandleTurn(ctx, "s1", "2")
	assert.Contains(t, reply, "<b>BCA</b>")
}

func TestProgramCount(t *testing.T) {
	h, _ := newTestHandler(t, defaultUpstream())
	reply := h.HandleTurn(context.Background(), "s1", "how many programs do you offer")
	assert.Equal(t, "The university currently offers 4 programmes.", reply)
}

func TestLSCUnderCenterResolvesDisplayName(t *testing.T) {
	h, _ := newTestHandler(t, defaultUpstream())

	reply := h.HandleTurn(context.Background(), "s1", "LSC's under Regional Centre - Kochi")
	assert.Contains(t, reply, "Learning Support Centers under Regional Centre – Kochi")
	assert.Contains(t, reply, "LSC Aluva")
	assert.NotContains(t, reply, "LSC Attingal")
}

func TestCenterListing(t *testing.T) {
	h, _ := newTestHandler(t, defaultUpstream())

	reply := h.HandleTurn(context.Background(), "s1", "list regional centres")
	assert.Contains(t, reply, "Regional Centre – Kochi")
	assert.Contains(t, reply, "Regional Centre - Trivandrum")
}

func TestUpstreamFailureNeverReachesOracle(t *testing.T) {
	down := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	h, o := newTestHandler(t, down)

	reply := h.HandleTurn(context.Background(), "s1", "tell me about the university")
	assert.Equal(t, compose.MsgUpstreamDown, reply)
	assert.Equal(t, 0, o.calls)
}

func TestDegradedFAQWhenProgramsDown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/programmes/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/faqs/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"questions": [
			{"question": "What is the duration of BA History", "answer": "BA History runs for three years."}
		]}`))
	})
	h, o := newTestHandler(t, mux)

	// The loose match scores between the degraded and pre-check
	// thresholds, so it only surfaces once the programme API is down.
	reply := h.HandleTurn(context.Background(), "s1", "duration")
	assert.Equal(t, "BA History runs for three years.", reply)
	assert.Equal(t, 0, o.calls)
}

func TestDegradedFAQRejectsBoundaryScore(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/programmes/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/faqs/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"questions": [
			{"question": "Where is the student portal link", "answer": "Use the link on the homepage."}
		]}`))
	})
	h, o := newTestHandler(t, mux)

	// This pair lands exactly on the relaxed threshold (sequence 0.5,
	// overlap 1/6, combined 0.3). Acceptance is strictly above it.
	reply := h.HandleTurn(context.Background(), "s1", "is there parking")
	assert.Equal(t, compose.MsgUpstreamDown, reply)
	assert.Equal(t, 0, o.calls)
}

func TestOpenEndedQueryGoesToOracle(t *testing.T) {
	h, o := newTestHandler(t, defaultUpstream())

	reply := h.HandleTurn(context.Background(), "s1", "who are you")
	assert.Equal(t, "oracle answer", reply)
	require.Equal(t, 1, o.calls)

	// The prompt carries the catalogue and the question.
	assert.Contains(t, o.lastUsr, "BA History")
	assert.Contains(t, o.lastUsr, "User question: who are you")
	assert.Contains(t, o.lastSys, "Sreenarayanaguru Open University")
}

func TestOracleFailureDegradesToRephrase(t *testing.T) {
	h, o := newTestHandler(t, defaultUpstream())
	o.err = stderrors.New("all providers down")

	reply := h.HandleTurn(context.Background(), "s1", "who are you")
	assert.Equal(t, compose.Rephrase(testWebsite), reply)
}

func TestOracleDisabled(t *testing.T) {
	h, o := newTestHandler(t, defaultUpstream())
	o.enabled = false

	reply := h.HandleTurn(context.Background(), "s1", "who are you")
	assert.Equal(t, compose.Rephrase(testWebsite), reply)
	assert.Equal(t, 0, o.calls)
}
