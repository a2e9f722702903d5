package search

import (
	"strings"
	"unicode/utf8"
)

// DefaultFuzzyThreshold is the similarity a term must reach to count as a fuzzy match
const DefaultFuzzyThreshold = 0.6

// FuzzyMatch reports whether term approximately occurs in text
// Empty inputs never match. A case-insensitive substring is always a match;
// otherwise similarity = 1 - distance / max(len(term), len(text)) must reach threshold
func FuzzyMatch(term, text string, threshold float64) bool {
	if term == "" || text == "" {
		return false
	}

	termLower := strings.ToLower(term)
	textLower := strings.ToLower(text)

	if strings.Contains(textLower, termLower) {
		return true
	}

	distance := Distance(termLower, textLower)
	maxLength := max(utf8.RuneCountInString(termLower), utf8.RuneCountInString(textLower))
	similarity := 1 - float64(distance)/float64(maxLength)

	return similarity >= threshold
}
