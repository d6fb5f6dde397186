package match

import (
	"sort"
	"strings"

	"github.com/sgou-dev/sgou-chatbot-go/internal/models"
)

// IsHonours reports whether a programme name is an Honours variant.
// Upstream uses both "(Honours)" suffixes and bare "Honours" words.
func IsHonours(name string) bool {
	return strings.Contains(strings.ToLower(name), "honours")
}

// BestFAQ scores every corpus entry against the query and returns the best
// one with its score, or (nil, 0) for an empty corpus.
//
// An exact (case/whitespace-folded) question match is checked across the
// whole corpus before any scoring and wins with 1.0 regardless of how other
// entries would score. Ties keep the first-seen entry, so selection is stable
// over the input order.
func BestFAQ(query string, corpus []models.FAQEntry) (*models.FAQEntry, float64) {
	if len(corpus) == 0 {
		return nil, 0
	}

	for i := range corpus {
		if Exact(query, corpus[i].Question) {
			return &corpus[i], 1.0
		}
	}

	var best *models.FAQEntry
	bestScore := 0.0
	for i := range corpus {
		score := CombinedScore(query, corpus[i].Question)
		if score > bestScore {
			best = &corpus[i]
			bestScore = score
		}
	}
	return best, bestScore
}

// ProgramMatch pairs a programme with its similarity score for a query.
type ProgramMatch struct {
	Program models.Program
	Score   float64
}

// RankPrograms returns the programmes whose names score at least threshold
// against the query, ordered by descending score. Equal scores preserve the
// input order. An exact name match scores 1.0.
func RankPrograms(query string, programs []models.Program, threshold float64) []ProgramMatch {
	var matches []ProgramMatch
	for _, p := range programs {
		score := SequenceSimilarity(query, p.Name)
		if Exact(query, p.Name) {
			score = 1.0
		}
		if score >= threshold {
			matches = append(matches, ProgramMatch{Program: p, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
