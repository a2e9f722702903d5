package search

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lqtrung-95/my-new-blog/internal/model"
)

// Result is a post copy augmented with its relevance score
type Result struct {
	model.Post
	Score float64 `json:"searchScore"`
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithWeights overrides the default scoring weights
func WithWeights(w Weights) EngineOption {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithClock sets the time source used for the recency bonus
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine ranks posts against a query and a filter set
type Engine struct {
	scorer  *Scorer
	weights Weights
	now     func() time.Time
}

// NewEngine creates a search engine with default weights and the wall clock
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		weights: DefaultWeights(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.scorer = NewScorer(e.weights, e.now)
	return e
}

// Scorer returns the scorer used by the engine
func (e *Engine) Scorer() *Scorer {
	return e.scorer
}

// Search scores posts against query and filters and returns matches best first
// With an empty query and no filter keys, every post is returned unscored in input order
func (e *Engine) Search(posts []model.Post, query string, filters Filters) []Result {
	if !IsActive(query, filters) {
		return unscored(posts)
	}

	terms := Terms(query)

	results := make([]Result, 0, len(posts))
	for _, post := range posts {
		score := e.scorer.Score(post, terms, filters)
		if score <= 0 {
			continue
		}
		results = append(results, Result{Post: post, Score: score})
	}

	// Stable sort keeps input order among equal scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// unscored wraps posts as results with zero score, preserving order
func unscored(posts []model.Post) []Result {
	results := make([]Result, len(posts))
	for i, p := range posts {
		results[i] = Result{Post: p}
	}
	return results
}

// IsActive reports whether a query or any filter key is set
// A whitespace-only query counts as unset
func IsActive(query string, filters Filters) bool {
	return strings.TrimSpace(query) != "" || filters.HasActive()
}

// Terms lower-cases query and splits it into non-empty whitespace-separated terms
func Terms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// ResultsDiffer reports whether results differ from posts in length or slug order
// Used by list views to decide whether a search is visibly narrowing the list
func ResultsDiffer(posts []model.Post, results []Result) bool {
	if len(posts) != len(results) {
		return true
	}
	for i := range results {
		if results[i].Slug != posts[i].Slug {
			return true
		}
	}
	return false
}

// Summarize returns the human-readable result count line for a list view
func Summarize(total int, results []Result, active bool) string {
	if !active {
		return fmt.Sprintf("%d posts", total)
	}
	if len(results) == 0 {
		return "No posts found matching your search criteria."
	}

	noun := "posts"
	if len(results) == 1 {
		noun = "post"
	}
	line := fmt.Sprintf("Found %d %s", len(results), noun)
	if len(results) != total {
		line += fmt.Sprintf(" out of %d total posts", total)
	}
	return line
}
