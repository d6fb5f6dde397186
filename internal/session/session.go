// Package session keeps per-conversation state between turns.
//
// State is held in an expiring in-memory cache keyed by session ID. A session
// that stays idle past its TTL simply vanishes, which resets the conversation
// without any explicit cleanup path. At most one awaiting flag is set at a
// time; every transition that sets one clears the other.
package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sgou-dev/sgou-chatbot-go/internal/errors"
	"github.com/sgou-dev/sgou-chatbot-go/internal/models"
)

// Manager stores and mutates conversation state for active sessions.
type Manager struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewManager creates a Manager whose sessions expire after ttl of inactivity.
func NewManager(ttl, cleanupInterval time.Duration) *Manager {
	return &Manager{
		store: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Get returns the state for the given session, creating an empty one on
// first sight. Every access refreshes the expiry so an active conversation
// never times out mid-flow.
func (m *Manager) Get(sessionID string) *models.ConversationState {
	if v, ok := m.store.Get(sessionID); ok {
		state := v.(*models.ConversationState)
		m.store.Set(sessionID, state, m.ttl)
		return state
	}
	state := &models.ConversationState{}
	m.store.Set(sessionID, state, m.ttl)
	return state
}

// SetClarification records a pending honours-vs-plain question. Any other
// awaiting flag is cleared; the listing survives so a numeric pick still
// works after the clarification resolves.
func (m *Manager) SetClarification(sessionID string, c *models.Clarification) {
	state := m.Get(sessionID)
	state.PendingClarification = c
	state.AwaitingFeeProgram = false
	m.store.Set(sessionID, state, m.ttl)
}

// ClearClarification drops the pending clarification, if any.
func (m *Manager) ClearClarification(sessionID string) {
	state := m.Get(sessionID)
	state.PendingClarification = nil
	m.store.Set(sessionID, state, m.ttl)
}

// SetAwaitingFeeProgram marks that the next utterance names a programme
// whose fee was asked for.
func (m *Manager) SetAwaitingFeeProgram(sessionID string) {
	state := m.Get(sessionID)
	state.AwaitingFeeProgram = true
	state.PendingClarification = nil
	m.store.Set(sessionID, state, m.ttl)
}

// ClearAwaitingFeeProgram drops the fee-programme flag.
func (m *Manager) ClearAwaitingFeeProgram(sessionID string) {
	state := m.Get(sessionID)
	state.AwaitingFeeProgram = false
	m.store.Set(sessionID, state, m.ttl)
}

// SetLastListed replaces the listing that numeric follow-ups index into.
func (m *Manager) SetLastListed(sessionID string, programs []models.Program) {
	state := m.Get(sessionID)
	state.LastListedPrograms = programs
	m.store.Set(sessionID, state, m.ttl)
}

// ResolveNumeric resolves a 1-based pick against the last listing.
//
// With no listing on record it returns ErrNoListPresent. An out-of-range
// pick returns ErrOutOfRange and clears the listing, so a second bad pick
// gets the no-list message instead of repeating the range error.
func (m *Manager) ResolveNumeric(sessionID string, n int) (models.Program, error) {
	state := m.Get(sessionID)
	if len(state.LastListedPrograms) == 0 {
		return models.Program{}, errors.ErrNoListPresent
	}
	if n < 1 || n > len(state.LastListedPrograms) {
		state.LastListedPrograms = nil
		m.store.Set(sessionID, state, m.ttl)
		return models.Program{}, errors.ErrOutOfRange
	}
	return state.LastListedPrograms[n-1], nil
}
