package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns s case-folded for case-insensitive comparison.
// A new Caser is built per call; Casers are stateful and not safe to share.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether needle occurs in haystack, ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
