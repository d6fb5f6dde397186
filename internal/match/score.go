// Package match implements the lexical similarity scoring used for FAQ and
// programme-name lookup. All functions are pure; thresholds are exported so
// callers and tests agree on the exact decision boundaries.
package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sgou-dev/sgou-chatbot-go/internal/stringutil"
)

// Decision thresholds. These are empirically tuned against the production
// FAQ corpus; change them only with product sign-off.
const (
	// FAQAcceptGeneral is the combined-score threshold on the general
	// FAQ-or-oracle path.
	FAQAcceptGeneral = 0.7

	// FAQAcceptPrecheck is the combined-score threshold for the
	// high-confidence FAQ pre-check that runs before classification.
	FAQAcceptPrecheck = 0.5

	// FAQAcceptDegraded is the relaxed threshold used when the programme API
	// is down and an FAQ answer is better than a bare apology.
	FAQAcceptDegraded = 0.3

	// ProgramNameThreshold is the sequence-similarity threshold for fuzzy
	// programme-name matching. Programme names are short, so the single
	// signal suffices.
	ProgramNameThreshold = 0.6
)

// domainPhrases are multi-word phrases that signal the user and a candidate
// question are about the same topic even when token overlap is low. Each
// phrase present in both strings adds a fixed boost.
var domainPhrases = []string{
	"full form",
	"eligibility",
	"how long",
	"duration",
	"fee",
	"admission",
}

// phraseBoost is added to KeywordOverlap per shared domain phrase. The sum is
// deliberately not capped at 1.0: values above 1 mean "very confident".
const phraseBoost = 0.2

// SequenceSimilarity returns the normalized longest-matching-blocks ratio of
// the two strings after case folding. It is symmetric, order-sensitive, and
// 1.0 iff the folded strings are equal.
func SequenceSimilarity(a, b string) float64 {
	ra := strings.Split(strings.ToLower(a), "")
	rb := strings.Split(strings.ToLower(b), "")
	return difflib.NewMatcher(ra, rb).Ratio()
}

// KeywordOverlap returns the ratio of shared whitespace-delimited tokens to
// the larger token-set size, boosted by phraseBoost for every domain phrase
// appearing in both strings. The result may exceed 1.0; callers must treat
// such values as high confidence rather than clamping.
func KeywordOverlap(a, b string) float64 {
	fa := stringutil.Fold(a)
	fb := stringutil.Fold(b)

	setA := tokenSet(fa)
	setB := tokenSet(fb)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			shared++
		}
	}

	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	score := float64(shared) / float64(larger)

	for _, phrase := range domainPhrases {
		if strings.Contains(fa, phrase) && strings.Contains(fb, phrase) {
			score += phraseBoost
		}
	}

	return score
}

// CombinedScore blends sequence similarity and keyword overlap for FAQ
// matching. Exact equality after case/whitespace folding short-circuits to
// 1.0 without running either signal.
func CombinedScore(a, b string) float64 {
	if Exact(a, b) {
		return 1.0
	}
	return 0.4*SequenceSimilarity(a, b) + 0.6*KeywordOverlap(a, b)
}

// Exact reports case- and whitespace-insensitive equality.
func Exact(a, b string) bool {
	return stringutil.Fold(a) == stringutil.Fold(b)
}

func tokenSet(folded string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(folded) {
		set[tok] = struct{}{}
	}
	return set
}
