// Package models defines the domain entities exchanged between the upstream
// gateway, the matching engine and the response composer. None of these are
// persisted by the service; they mirror whatever the university APIs return
// after field aliasing and normalization.
package models

// Program is an academic programme offered by the university.
// Names are not guaranteed unique: "Honours" variants collide with their base
// names and are disambiguated at the conversation level.
type Program struct {
	Name        string
	Category    string // free-text label, e.g. "UG", "PG", "FYUG", "STP"
	Duration    string // free text, usually a year count
	Description string
	Fee         string
	Code        string
}

// RegionalCenter is a top-level administrative unit that owns zero or more
// learning support centers.
type RegionalCenter struct {
	ID        int
	Name      string
	Address   string
	HeadName  string
	HeadPhone string
	HeadEmail string
}

// LearningSupportCenter is a smaller center subordinate to one regional
// center. CenterID references the owning RegionalCenter; CenterName is
// resolved through the regional center collection and falls back to "N/A"
// when the reference cannot be resolved.
type LearningSupportCenter struct {
	Name             string
	Address          string
	ContactNumber    string
	CoordinatorName  string
	CoordinatorEmail string
	CenterID         int
	CenterName       string
}

// FAQEntry is one canned question/answer pair from the Q&A corpus.
type FAQEntry struct {
	Question string
	Answer   string
	Keywords []string
}

// Clarification holds the two near-identical programme matches of a pending
// yes/no disambiguation turn.
type Clarification struct {
	Honours Program
	Plain   Program
}

// ConversationState is the per-session state carried across turns.
//
// Invariant: at most one of PendingClarification / AwaitingFeeProgram is
// active at a time. LastListedPrograms is overwritten whenever a new list is
// shown and cleared when a numeric reply falls out of range.
type ConversationState struct {
	PendingClarification *Clarification
	LastListedPrograms   []Program
	AwaitingFeeProgram   bool
}
