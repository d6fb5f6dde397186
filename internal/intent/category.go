package intent

import (
	"strings"

	"github.com/sgou-dev/sgou-chatbot-go/internal/stringutil"
)

// categoryAlias maps a surface form to a canonical programme category.
type categoryAlias struct {
	surface   string
	canonical string
}

// categoryAliases is scanned longest-surface-first so "four year
// undergraduate" resolves to FYUG before the bare "undergraduate" alias can
// claim it for UG. Keep the slice sorted by descending surface length.
var categoryAliases = []categoryAlias{
	{"four year undergraduate", "FYUG"},
	{"four-year undergraduate", "FYUG"},
	{"short term programme", "STP"},
	{"short term program", "STP"},
	{"postgraduate degree", "PG"},
	{"undergraduate degree", "UG"},
	{"four year", "FYUG"},
	{"short term", "STP"},
	{"postgraduate", "PG"},
	{"post graduate", "PG"},
	{"undergraduate", "UG"},
	{"under graduate", "UG"},
	{"honours", "FYUG"},
	{"honors", "FYUG"},
	{"fyug", "FYUG"},
	{"stp", "STP"},
	{"pg", "PG"},
	{"ug", "UG"},
}

// CanonicalCategory resolves a free-text category label (a query fragment or
// an upstream category field) to its canonical form.
func CanonicalCategory(label string) (string, bool) {
	return matchCategory(stringutil.Fold(stringutil.NormalizePunct(label)))
}

// matchCategory finds the first category alias present in the folded query.
// Multi-word aliases match as substrings; single-word aliases must be whole
// tokens so "pg" does not fire inside "pgm" or "paging".
func matchCategory(q string) (string, bool) {
	tokens := tokenSet(q)
	for _, a := range categoryAliases {
		if strings.Contains(a.surface, " ") {
			if strings.Contains(q, a.surface) {
				return a.canonical, true
			}
		} else if _, ok := tokens[a.surface]; ok {
			return a.canonical, true
		}
	}
	return "", false
}
