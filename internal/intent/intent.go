// Package intent classifies a normalized user query into one of a fixed set
// of intents using ordered keyword and pattern rules.
//
// The rule order is load-bearing: the categories overlap (a fee question may
// also contain a programme keyword) and the first matching rule wins. Session
// state short-circuits everything else, because a pending clarification or a
// pending fee-programme prompt changes what the next utterance means.
package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sgou-dev/sgou-chatbot-go/internal/models"
	"github.com/sgou-dev/sgou-chatbot-go/internal/stringutil"
)

// Intent identifies the classified purpose of a user query.
type Intent string

// Intents in precedence order. The classifier returns the first that
// matches; see Classify for the exact rules.
const (
	AwaitingClarificationReply Intent = "awaiting_clarification_reply"
	FeeProgramNameReply        Intent = "fee_program_name_reply"
	FieldQuery                 Intent = "field_query"
	FeeQuery                   Intent = "fee_query"
	LSCUnderCenterQuery        Intent = "lsc_under_center_query"
	CenterQuery                Intent = "center_query"
	LSCQuery                   Intent = "lsc_query"
	CategoryAndProgramQuery    Intent = "category_and_program_query"
	ProgramCountQuery          Intent = "program_count_query"
	ProgramListQuery           Intent = "program_list_query"
	SpecificProgramQuery       Intent = "specific_program_query"
	NumericFollowUp            Intent = "numeric_follow_up"
	FAQOrGeneral               Intent = "faq_or_general"
)

// Result is a classified query plus the arguments the matched rule extracted.
type Result struct {
	Intent Intent

	// Field is the requested programme attribute for FieldQuery
	// (one of "category", "duration", "description").
	Field string

	// ProgramHint is the free text naming a programme for FieldQuery,
	// extracted after the of/for connective.
	ProgramHint string

	// CenterKey is the cleaned regional-center lookup key for
	// LSCUnderCenterQuery.
	CenterKey string

	// Category is the canonical programme category for
	// CategoryAndProgramQuery (one of "UG", "PG", "FYUG", "STP").
	Category string

	// Number is the parsed index for NumericFollowUp.
	Number int
}

// lscUnderRegex captures the free text after "lsc under" / "lsc's under".
var lscUnderRegex = regexp.MustCompile(`lsc(?:'?s)?\s+under\s+(.+)`)

var (
	fieldKeywords = map[string]string{
		"category":    "category",
		"year":        "duration",
		"years":       "duration",
		"duration":    "duration",
		"description": "description",
		"desc":        "description",
		"details":     "description",
	}

	feeKeywords = []string{"fee", "fees", "cost", "tuition", "price", "payment"}

	// centerKeywords includes the misspellings observed in real traffic.
	centerKeywords = []string{
		"regional center", "regional centre", "study center", "study centre",
		"center", "centre", "centers", "centres", "cender", "centar",
	}

	lscKeywords = []string{
		"lsc", "lscs", "lsc's",
		"learning support center", "learning support centre", "support center", "support centre",
	}

	programKeywords = []string{
		"program", "programs", "programme", "programmes", "course", "courses", "degree", "degrees",
	}

	countPhrases = []string{
		"how many programs", "how many programmes",
		"number of programs", "number of programmes",
		"total programs", "total programmes",
		"programs count", "programmes count",
	}

	structuralVerbs = []string{"list", "show", "all"}
)

// Classify maps a raw query to an intent, consulting session state first.
// The query is folded and punctuation-normalized internally, so callers may
// pass the user's text as received.
func Classify(query string, state *models.ConversationState) Result {
	q := stringutil.Fold(stringutil.NormalizePunct(query))

	// 1-2. Session state owns the turn.
	if state != nil && state.PendingClarification != nil {
		return Result{Intent: AwaitingClarificationReply}
	}
	if state != nil && state.AwaitingFeeProgram {
		return Result{Intent: FeeProgramNameReply}
	}

	// 3. Programme field lookup: an attribute word plus an of/for connective.
	if field, hint, ok := matchFieldQuery(q); ok {
		return Result{Intent: FieldQuery, Field: field, ProgramHint: hint}
	}

	// 4. Fee questions.
	if containsAnyToken(q, feeKeywords) {
		return Result{Intent: FeeQuery}
	}

	// 5. LSCs scoped to a regional center.
	if m := lscUnderRegex.FindStringSubmatch(q); m != nil {
		return Result{Intent: LSCUnderCenterQuery, CenterKey: stringutil.CleanCenterKey(m[1])}
	}

	// 6-7. Center and LSC listings. LSC keywords are checked second so a
	// bare "centre" query is not hijacked by the narrower LSC rule.
	if containsAnyPhrase(q, centerKeywords) && !containsAnyPhrase(q, lscKeywords) {
		return Result{Intent: CenterQuery}
	}
	if containsAnyPhrase(q, lscKeywords) {
		return Result{Intent: LSCQuery}
	}

	// 8. Category-scoped programme listing.
	if cat, ok := matchCategory(q); ok && containsAnyToken(q, programKeywords) {
		return Result{Intent: CategoryAndProgramQuery, Category: cat}
	}

	// 9. Explicit count phrasing beats the general listing rule.
	if containsAnyPhrase(q, countPhrases) {
		return Result{Intent: ProgramCountQuery}
	}

	// 10. General programme keywords.
	if containsAnyToken(q, programKeywords) {
		return Result{Intent: ProgramListQuery}
	}

	// 11. Anything long enough is treated as a programme name.
	if len(q) > 3 {
		return Result{Intent: SpecificProgramQuery}
	}

	// 12. Bare numbers pick from the last displayed list.
	if stringutil.IsNumeric(q) {
		n, _ := strconv.Atoi(q)
		return Result{Intent: NumericFollowUp, Number: n}
	}

	// 13. Fallback.
	return Result{Intent: FAQOrGeneral}
}

// IsStructuralListRequest reports whether the query is an explicit
// list/show/all request for programmes, centers, or LSCs. Such requests
// bypass the FAQ pre-check so an administrative listing is never shadowed by
// a loosely related FAQ entry.
func IsStructuralListRequest(query string) bool {
	q := stringutil.Fold(stringutil.NormalizePunct(query))
	if !containsAnyToken(q, structuralVerbs) {
		return false
	}
	return containsAnyToken(q, programKeywords) ||
		containsAnyPhrase(q, centerKeywords) ||
		containsAnyPhrase(q, lscKeywords)
}

func matchFieldQuery(q string) (field, hint string, ok bool) {
	tokens := strings.Fields(q)
	for _, tok := range tokens {
		f, isField := fieldKeywords[tok]
		if !isField {
			continue
		}
		for i, t := range tokens {
			if (t == "of" || t == "for") && i+1 < len(tokens) {
				return f, strings.Join(tokens[i+1:], " "), true
			}
		}
	}
	return "", "", false
}

func containsAnyToken(q string, keywords []string) bool {
	tokens := tokenSet(q)
	for _, kw := range keywords {
		if _, ok := tokens[kw]; ok {
			return true
		}
	}
	return false
}

// containsAnyPhrase matches multi-word keywords as substrings and single
// words as whole tokens, so "center" does not fire inside "epicenter".
func containsAnyPhrase(q string, keywords []string) bool {
	tokens := tokenSet(q)
	for _, kw := range keywords {
		if strings.Contains(kw, " ") {
			if strings.Contains(q, kw) {
				return true
			}
		} else if _, ok := tokens[kw]; ok {
			return true
		}
	}
	return false
}

func tokenSet(q string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(q) {
		tok = strings.Trim(tok, ".,!?;:")
		set[tok] = struct{}{}
	}
	return set
}
