package conv

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the Unicode case-folded form of s. Two strings that differ
// only in case fold to the same value.
func Fold(s string) string {
	// cases.Caser keeps state, so one per call.
	return cases.Fold().String(s)
}

// ContainsFold reports whether needle occurs in haystack, ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
