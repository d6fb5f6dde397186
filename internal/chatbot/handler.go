// Package chatbot orchestrates a chat turn: classify the query, fetch
// whatever university data the intent needs, update conversation state and
// compose the reply.
//
// A well-formed query never produces an error. Upstream failures degrade to
// apology messages or a relaxed-threshold FAQ answer, and the oracle is
// strictly best-effort; the worst outcome of any turn is a canned reply.
package chatbot

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sgou-dev/sgou-chatbot-go/internal/compose"
	"github.com/sgou-dev/sgou-chatbot-go/internal/errors"
	"github.com/sgou-dev/sgou-chatbot-go/internal/gateway"
	"github.com/sgou-dev/sgou-chatbot-go/internal/intent"
	"github.com/sgou-dev/sgou-chatbot-go/internal/logger"
	"github.com/sgou-dev/sgou-chatbot-go/internal/match"
	"github.com/sgou-dev/sgou-chatbot-go/internal/metrics"
	"github.com/sgou-dev/sgou-chatbot-go/internal/models"
	"github.com/sgou-dev/sgou-chatbot-go/internal/session"
	"github.com/sgou-dev/sgou-chatbot-go/internal/stringutil"
)

// Turn statuses for metrics.
const (
	statusAnswered = "answered"
	statusDegraded = "degraded"
	statusOracle   = "oracle"
)

// Completer produces free-text answers for open-ended queries.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Enabled() bool
}

// Handler resolves one chat turn at a time.
type Handler struct {
	gateway    *gateway.Client
	sessions   *session.Manager
	oracle     Completer
	websiteURL string
	log        *logger.Logger
	metrics    *metrics.Metrics
}

// New creates a turn handler.
func New(gw *gateway.Client, sessions *session.Manager, oracle Completer, websiteURL string, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		gateway:    gw,
		sessions:   sessions,
		oracle:     oracle,
		websiteURL: websiteURL,
		log:        log.WithModule("chatbot"),
		metrics:    m,
	}
}

// HandleTurn answers one user query for a session.
func (h *Handler) HandleTurn(ctx context.Context, sessionID, query string) string {
	start := time.Now()

	query = strings.TrimSpace(query)
	if query == "" {
		h.metrics.RecordTurn("empty", statusAnswered, time.Since(start).Seconds())
		return compose.MsgEmptyQuery
	}

	state := h.sessions.Get(sessionID)
	result := intent.Classify(query, state)
	reply, status := h.dispatch(ctx, sessionID, query, result)

	h.metrics.RecordTurn(string(result.Intent), status, time.Since(start).Seconds())
	h.log.WithSessionID(sessionID).WithFields(map[string]any{
		"intent": string(result.Intent),
		"status": status,
	}).Debug("turn handled")
	return reply
}

func (h *Handler) dispatch(ctx context.Context, sessionID, query string, result intent.Result) (string, string) {
	switch result.Intent {
	case intent.AwaitingClarificationReply:
		return h.handleClarificationReply(ctx, sessionID, query)
	case intent.FeeProgramNameReply:
		return h.handleFeeProgramReply(ctx, sessionID, query)
	}

	// High-confidence FAQ pre-check. Explicit list/show/all requests skip
	// it so administrative listings are never shadowed by a loosely
	// related FAQ entry.
	if !intent.IsStructuralListRequest(query) {
		if reply, ok := h.faqAnswer(ctx, query, match.FAQAcceptPrecheck); ok {
			return reply, statusAnswered
		}
	}

	switch result.Intent {
	case intent.FieldQuery:
		return h.handleFieldQuery(ctx, result)
	case intent.FeeQuery:
		h.sessions.SetAwaitingFeeProgram(sessionID)
		return compose.MsgAskFeeProgram, statusAnswered
	case intent.LSCUnderCenterQuery:
		return h.handleLSCUnderCenter(ctx, result.CenterKey)
	case intent.CenterQuery:
		return h.handleCenterQuery(ctx)
	case intent.LSCQuery:
		return h.handleLSCQuery(ctx)
	case intent.CategoryAndProgramQuery:
		return h.handleCategoryQuery(ctx, sessionID, result.Category)
	case intent.ProgramCountQuery:
		return h.handleProgramCount(ctx)
	case intent.ProgramListQuery:
		return h.handleProgramList(ctx, sessionID)
	case intent.SpecificProgramQuery:
		return h.handleSpecificProgram(ctx, sessionID, query)
	case intent.NumericFollowUp:
		return h.handleNumericFollowUp(sessionID, result.Number)
	default:
		return h.handleFAQOrGeneral(ctx, query)
	}
}

// handleClarificationReply resolves a pending honours-vs-plain question.
// Anything that is not a yes/no repeats the question and keeps the
// clarification pending.
func (h *Handler) handleClarificationReply(ctx context.Context, sessionID, query string) (string, string) {
	state := h.sessions.Get(sessionID)
	pending := state.PendingClarification
	if pending == nil {
		return h.handleFAQOrGeneral(ctx, query)
	}

	switch folded := stringutil.Fold(query); folded {
	case "yes", "y", "yeah", "yep":
		h.sessions.ClearClarification(sessionID)
		return compose.ProgramDetail(pending.Honours), statusAnswered
	case "no", "n", "nope":
		h.sessions.ClearClarification(sessionID)
		return compose.ProgramDetail(pending.Plain), statusAnswered
	}

	return compose.ClarificationPrompt(pending.Plain.Name), statusAnswered
}

// handleFeeProgramReply answers the fee question the previous turn promised.
func (h *Handler) handleFeeProgramReply(ctx context.Context, sessionID, query string) (string, string) {
	h.sessions.ClearAwaitingFeeProgram(sessionID)

	programs, err := h.gateway.FetchPrograms(ctx)
	if err != nil {
		return compose.MsgUpstreamDown, statusDegraded
	}

	matches := match.RankPrograms(query, programs, match.ProgramNameThreshold)
	if len(matches) == 0 {
		return compose.MsgNoProgramMatch, statusAnswered
	}
	return compose.FeeAnswer(matches[0].Program), statusAnswered
}

func (h *Handler) handleFieldQuery(ctx context.Context, result intent.Result) (string, string) {
	programs, err := h.gateway.FetchPrograms(ctx)
	if err != nil {
		return compose.MsgUpstreamDown, statusDegraded
	}

	matches := match.RankPrograms(result.ProgramHint, programs, match.ProgramNameThreshold)
	if len(matches) == 0 {
		return compose.MsgNoProgramMatch, statusAnswered
	}
	return compose.FieldValue(matches[0].Program, result.Field), statusAnswered
}

// handleLSCUnderCenter lists the LSCs owned by one regional center. The two
// collections are independent, so they are fetched concurrently; the reply
// heading always shows the resolved center name when one matches the key.
func (h *Handler) handleLSCUnderCenter(ctx context.Context, centerKey string) (string, string) {
	var (
		centers []models.RegionalCenter
		lscs    []models.LearningSupportCenter
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		centers, err = h.gateway.FetchRegionalCenters(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		lscs, err = h.gateway.FetchLSCs(gctx, centerKey)
		return err
	})
	if err := g.Wait(); err != nil {
		return compose.MsgUpstreamDown, statusDegraded
	}

	displayName := centerKey
	for _, rc := range centers {
		if strings.Contains(stringutil.CleanCenterKey(rc.Name), centerKey) {
			displayName = rc.Name
			break
		}
	}
	return compose.LSCUnderCenter(displayName, lscs), statusAnswered
}

func (h *Handler) handleCenterQuery(ctx context.Context) (string, string) {
	centers, err := h.gateway.FetchRegionalCenters(ctx)
	if err != nil {
		return compose.MsgUpstreamDown, statusDegraded
	}
	return compose.CenterList(centers), statusAnswered
}

func (h *Handler) handleLSCQuery(ctx context.Context) (string, string) {
	lscs, err := h.gateway.FetchLSCs(ctx, "")
	if err != nil {
		return compose.MsgUpstreamDown, statusDegraded
	}
	return compose.LSCList(lscs), statusAnswered
}

func (h *Handler) handleCategoryQuery(ctx context.Context, sessionID, category string) (string, string) {
	programs, err := h.gateway.FetchPrograms(ctx)
	if err != nil {
		return compose.MsgUpstreamDown, statusDegraded
	}

	var filtered []models.Program
	for _, p := range programs {
		if canonical, ok := intent.CanonicalCategory(p.Category); ok && canonical == category {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return fmt.Sprintf("No %s programmes are listed at the moment.", category), statusAnswered
	}

	h.sessions.SetLastListed(sessionID, filtered)
	heading := fmt.Sprintf("<p>%s programmes offered by the university:</p>", category)
	return compose.ProgramListWithPrompt(heading, filtered), statusAnswered
}

func (h *Handler) handleProgramCount(ctx context.Context) (string, string) {
	programs, err := h.gateway.FetchPrograms(ctx)
	if err != nil {
		return compose.MsgUpstreamDown, statusDegraded
	}
	return compose.ProgramCount(len(programs)), statusAnswered
}

func (h *Handler) handleProgramList(ctx context.Context, sessionID string) (string, string) {
	programs, err := h.gateway.FetchPrograms(ctx)
	if err != nil {
		return compose.MsgUpstreamDown, statusDegraded
	}
	if len(programs) == 0 {
		return "No programmes are listed at the moment.", statusAnswered
	}

	h.sessions.SetLastListed(sessionID, programs)
	return compose.ProgramListWithPrompt("<p>Here are the programmes offered by the university:</p>", programs), statusAnswered
}

// handleSpecificProgram fuzzy-matches a programme name and applies the
// disambiguation policy: one honours plus one plain match asks a yes/no
// question, several plain matches become a numbered pick list, a single
// match resolves immediately.
func (h *Handler) handleSpecificProgram(ctx context.Context, sessionID, query string) (string, string) {
	programs, err := h.gateway.FetchPrograms(ctx)
	if err != nil {
		return h.degradedFAQ(ctx, query)
	}

	matches := match.RankPrograms(query, programs, match.ProgramNameThreshold)
	switch {
	case len(matches) == 0:
		return h.handleFAQOrGeneral(ctx, query)

	case len(matches) == 1:
		return compose.ProgramDetail(matches[0].Program), statusAnswered

	case len(matches) == 2 && match.IsHonours(matches[0].Program.Name) != match.IsHonours(matches[1].Program.Name):
		honours, plain := matches[0].Program, matches[1].Program
		if match.IsHonours(plain.Name) {
			honours, plain = plain, honours
		}
		h.sessions.SetClarification(sessionID, &models.Clarification{
			Honours: honours,
			Plain:   plain,
		})
		return compose.ClarificationPrompt(plain.Name), statusAnswered

	default:
		listed := make([]models.Program, len(matches))
		for i, m := range matches {
			listed[i] = m.Program
		}
		h.sessions.SetLastListed(sessionID, listed)
		return compose.ProgramListWithPrompt("<p>I found several matching programmes:</p>", listed), statusAnswered
	}
}

func (h *Handler) handleNumericFollowUp(sessionID string, n int) (string, string) {
	program, err := h.sessions.ResolveNumeric(sessionID, n)
	switch {
	case stderrors.Is(err, errors.ErrNoListPresent):
		return compose.MsgNoListPresent, statusAnswered
	case stderrors.Is(err, errors.ErrOutOfRange):
		return compose.MsgOutOfRange, statusAnswered
	case err != nil:
		return compose.MsgNoListPresent, statusAnswered
	}
	return compose.ProgramDetail(program), statusAnswered
}

// handleFAQOrGeneral tries the corpus at the general threshold and forwards
// anything unanswered to the oracle. The oracle prompt carries the programme
// names; if the catalogue cannot be fetched there is no oracle call and the
// turn degrades instead.
func (h *Handler) handleFAQOrGeneral(ctx context.Context, query string) (string, string) {
	if reply, ok := h.faqAnswer(ctx, query, match.FAQAcceptGeneral); ok {
		return reply, statusAnswered
	}

	programs, err := h.gateway.FetchPrograms(ctx)
	if err != nil {
		return h.degradedFAQ(ctx, query)
	}

	if h.oracle == nil || !h.oracle.Enabled() {
		return compose.Rephrase(h.websiteURL), statusDegraded
	}

	answer, err := h.oracle.Complete(ctx,
		compose.SystemPrompt(h.websiteURL),
		compose.BuildOraclePrompt(query, programs))
	if err != nil {
		h.log.WithError(err).Warn("oracle completion failed")
		return compose.Rephrase(h.websiteURL), statusDegraded
	}
	return answer, statusOracle
}

// faqAnswer returns the best corpus answer when its score clears threshold.
// A failed corpus fetch is treated as no match.
func (h *Handler) faqAnswer(ctx context.Context, query string, threshold float64) (string, bool) {
	corpus, err := h.gateway.FetchFAQCorpus(ctx)
	if err != nil {
		return "", false
	}

	entry, score := match.BestFAQ(query, corpus)
	if entry == nil {
		return "", false
	}
	h.metrics.RecordFAQScore(score)
	if score > threshold {
		return compose.FAQAnswer(*entry), true
	}
	return "", false
}

// degradedFAQ is the fallback when the programme API is down: a relaxed
// corpus match beats a bare apology, but nothing reaches the oracle.
func (h *Handler) degradedFAQ(ctx context.Context, query string) (string, string) {
	corpus, err := h.gateway.FetchFAQCorpus(ctx)
	if err == nil {
		if entry, score := match.BestFAQ(query, corpus); entry != nil && score > match.FAQAcceptDegraded {
			return compose.FAQAnswer(*entry), statusDegraded
		}
	}
	return compose.MsgUpstreamDown, statusDegraded
}
