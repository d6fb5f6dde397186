// Package stringutil provides the string normalization helpers shared by the
// classifier, the matching engine and the upstream gateway.
package stringutil

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// punctNormalizer maps stray Unicode punctuation found in upstream center
// names (en/em-dash variants, non-breaking spaces, replacement characters)
// to a plain hyphen or space so name comparisons are stable.
var punctNormalizer = runes.Map(func(r rune) rune {
	switch r {
	case '‒', '–', '—', '―', '−':
		return '-'
	case ' ', ' ', ' ':
		return ' '
	case '�':
		return ' '
	}
	return r
})

// IsNumeric checks if a string contains only digits.
// Returns false for empty strings.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizePunct replaces dash and space variants with their ASCII
// equivalents. The input is returned unchanged if transformation fails.
func NormalizePunct(s string) string {
	out, _, err := transform.String(punctNormalizer, s)
	if err != nil {
		return s
	}
	return out
}

// Fold lower-cases s and collapses all whitespace runs to single spaces.
// Two strings are considered equal for matching purposes when their folded
// forms are equal.
func Fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// CleanCenterKey turns free text naming a regional center into a lookup key:
// punctuation normalized, lower-cased, and leading "regional centre"/"regional
// center" prefixes with their trailing dashes stripped.
//
//	CleanCenterKey("Regional Centre – Kochi") == "kochi"
func CleanCenterKey(s string) string {
	key := Fold(NormalizePunct(s))
	for _, prefix := range []string{"regional centre", "regional center"} {
		key = strings.TrimPrefix(key, prefix)
	}
	return strings.Trim(key, " -")
}
