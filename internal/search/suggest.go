package search

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lqtrung-95/my-new-blog/internal/model"
)

const (
	// DefaultSuggestionLimit is the number of suggestions returned when no limit is given
	DefaultSuggestionLimit = 5
	// minSuggestionQuery is the shortest query that produces suggestions
	minSuggestionQuery = 2
	// minSuggestionWord is the length a summary word must exceed to be suggested
	minSuggestionWord = 3
)

// nonWord matches everything outside [A-Za-z0-9_]
var nonWord = regexp.MustCompile(`[^\w]`)

// Suggest returns up to limit completion candidates for query, in discovery order
// Candidates are matching titles, matching tags and matching summary words (longer than 3)
func Suggest(posts []model.Post, query string, limit int) []string {
	if utf8.RuneCountInString(query) < minSuggestionQuery {
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	queryLower := strings.ToLower(query)
	seen := make(map[string]struct{})
	suggestions := make([]string, 0, limit)

	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		suggestions = append(suggestions, s)
	}

	for _, post := range posts {
		if post.Title != "" && strings.Contains(strings.ToLower(post.Title), queryLower) {
			add(post.Title)
		}

		for _, tag := range post.Tags {
			if strings.Contains(strings.ToLower(tag), queryLower) {
				add(tag)
			}
		}

		if post.Summary != "" {
			for _, word := range strings.Split(post.Summary, " ") {
				clean := strings.ToLower(nonWord.ReplaceAllString(word, ""))
				if strings.Contains(clean, queryLower) && len(clean) > minSuggestionWord {
					add(clean)
				}
			}
		}
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
