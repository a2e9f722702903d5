package search

import (
	"strings"
	"time"

	"github.com/lqtrung-95/my-new-blog/internal/model"
)

// FilterKey names one dimension of a filter set
type FilterKey string

const (
	// FilterTags restricts results to posts carrying a matching tag
	FilterTags FilterKey = "tags"
	// FilterDateRange restricts results to posts published within a range
	FilterDateRange FilterKey = "dateRange"
	// FilterAuthor restricts results to posts by a matching author
	FilterAuthor FilterKey = "author"
)

// DateRange bounds publication dates; a zero bound means no bound on that side
type DateRange struct {
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
}

// IsZero reports whether neither bound is set
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether t falls inside the range (both bounds inclusive)
// A zero t is treated as malformed and never falls inside a bounded range
func (r DateRange) Contains(t time.Time) bool {
	if r.IsZero() {
		return true
	}
	if t.IsZero() {
		return false
	}
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// Filters is a set of structured constraints combined with AND
// A nil field means the key is absent; absent keys impose no constraint
type Filters struct {
	Tags      []string   `json:"tags,omitempty"`
	DateRange *DateRange `json:"dateRange,omitempty"`
	Author    *string    `json:"author,omitempty"`
}

// Keys returns the keys present in the filter set, in a fixed order
func (f Filters) Keys() []FilterKey {
	keys := make([]FilterKey, 0, 3)
	if f.Tags != nil {
		keys = append(keys, FilterTags)
	}
	if f.DateRange != nil {
		keys = append(keys, FilterDateRange)
	}
	if f.Author != nil {
		keys = append(keys, FilterAuthor)
	}
	return keys
}

// HasActive reports whether at least one filter key is present
// A present key with an empty value still counts, matching how the key was set
func (f Filters) HasActive() bool {
	return len(f.Keys()) > 0
}

// PassesFilters reports whether post satisfies every present filter
func PassesFilters(post model.Post, f Filters) bool {
	// Tag filter: any filter tag contained in any post tag
	if len(f.Tags) > 0 {
		matched := false
		for _, tag := range f.Tags {
			tagLower := strings.ToLower(tag)
			for _, postTag := range post.Tags {
				if strings.Contains(strings.ToLower(postTag), tagLower) {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Date range filter
	if f.DateRange != nil && !f.DateRange.Contains(post.Date) {
		return false
	}

	// Author filter: posts without an author fail closed
	if f.Author != nil && *f.Author != "" {
		if post.Author == "" {
			return false
		}
		if !strings.Contains(strings.ToLower(post.Author), strings.ToLower(*f.Author)) {
			return false
		}
	}

	return true
}
