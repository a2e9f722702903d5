package search

import (
	"strings"
	"time"

	"github.com/lqtrung-95/my-new-blog/internal/model"
)

// Weights holds the fixed scoring configuration
type Weights struct {
	Title   float64 // Exact title match
	Summary float64 // Exact summary match
	Tags    float64 // Exact match in space-joined tags
	Recency float64 // Flat bonus for recent posts

	TitleThreshold   float64 // Fuzzy similarity required on title
	SummaryThreshold float64 // Fuzzy similarity required on summary
	TagsThreshold    float64 // Fuzzy similarity required on tags

	TitleFuzzyFactor   float64 // Fraction of Title weight added on fuzzy match
	SummaryFuzzyFactor float64 // Fraction of Summary weight added on fuzzy match
	TagsFuzzyFactor    float64 // Fraction of Tags weight added on fuzzy match
	TitlePrefixFactor  float64 // Fraction of Title weight added when title starts with the term

	RecencyWindow time.Duration // Posts younger than this get the Recency bonus
	BaseScore     float64       // Score of every passing post in a filters-only search

	// ExclusiveFuzzy counts a fuzzy match only when the exact match on the same field failed
	ExclusiveFuzzy bool
}

// DefaultWeights returns the standard scoring configuration
func DefaultWeights() Weights {
	return Weights{
		Title:   10,
		Summary: 5,
		Tags:    8,
		Recency: 2,

		TitleThreshold:   0.7,
		SummaryThreshold: 0.7,
		TagsThreshold:    0.8,

		TitleFuzzyFactor:   0.7,
		SummaryFuzzyFactor: 0.7,
		TagsFuzzyFactor:    0.8,
		TitlePrefixFactor:  0.5,

		RecencyWindow: 30 * 24 * time.Hour,
		BaseScore:     1,
	}
}

// Scorer computes relevance scores for posts
type Scorer struct {
	weights Weights
	now     func() time.Time
}

// NewScorer creates a scorer with the given weights and clock
// A nil clock falls back to time.Now
func NewScorer(weights Weights, now func() time.Time) *Scorer {
	if now == nil {
		now = time.Now
	}
	return &Scorer{weights: weights, now: now}
}

// Weights returns the scorer configuration
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score returns the relevance of post for the given lower-cased terms
// Posts failing the filters score 0; filters-only searches score BaseScore
func (s *Scorer) Score(post model.Post, terms []string, filters Filters) float64 {
	if !PassesFilters(post, filters) {
		return 0
	}

	if len(terms) == 0 {
		return s.weights.BaseScore
	}

	w := s.weights
	title := strings.ToLower(post.Title)
	summary := strings.ToLower(post.Summary)
	tags := strings.ToLower(post.TagsString())

	score := 0.0
	for _, term := range terms {
		titleExact := strings.Contains(title, term)
		summaryExact := strings.Contains(summary, term)
		tagsExact := strings.Contains(tags, term)

		// Exact matches
		if titleExact {
			score += w.Title
		}
		if summaryExact {
			score += w.Summary
		}
		if tagsExact {
			score += w.Tags
		}

		// Fuzzy matches (lower weight)
		if !(w.ExclusiveFuzzy && titleExact) && FuzzyMatch(term, title, w.TitleThreshold) {
			score += w.Title * w.TitleFuzzyFactor
		}
		if !(w.ExclusiveFuzzy && summaryExact) && FuzzyMatch(term, summary, w.SummaryThreshold) {
			score += w.Summary * w.SummaryFuzzyFactor
		}
		if !(w.ExclusiveFuzzy && tagsExact) && FuzzyMatch(term, tags, w.TagsThreshold) {
			score += w.Tags * w.TagsFuzzyFactor
		}

		// Title prefix bonus
		if strings.HasPrefix(title, term) {
			score += w.Title * w.TitlePrefixFactor
		}
	}

	if s.isRecent(post) {
		score += w.Recency
	}

	return score
}

// isRecent reports whether the post is younger than the recency window
// Posts without a date are never recent
func (s *Scorer) isRecent(post model.Post) bool {
	if !post.HasDate() {
		return false
	}
	return s.now().Sub(post.Date) < s.weights.RecencyWindow
}
