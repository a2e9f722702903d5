// Package search implements fuzzy, weighted search and filtering over blog posts
package search

import "github.com/agnivade/levenshtein"

// Distance returns the edit distance between a and b: the minimum number of
// single-rune insertions, deletions and substitutions turning a into b
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}
