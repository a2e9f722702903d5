// Package history tracks recent searches and query popularity for a search session
package history

import (
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// maxEntries is the number of recent searches kept
	maxEntries = 10
	// maxPopular is the number of popular queries kept
	maxPopular = 10
)

// Entry is a single completed search
type Entry struct {
	Query       string    `json:"query"`
	Timestamp   time.Time `json:"timestamp"`
	ResultCount int       `json:"resultCount"`
}

// Popularity counts how often a query was searched
type Popularity struct {
	Query    string    `json:"query"`
	Count    int       `json:"count"`
	LastUsed time.Time `json:"lastUsed"`
}

// Option configures Analytics
type Option func(*Analytics)

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(a *Analytics) {
		if now != nil {
			a.now = now
		}
	}
}

// Analytics holds the search history and popularity table of one session
type Analytics struct {
	entries []Entry      // Newest first
	popular []Popularity // Sorted by count, descending
	mu      sync.RWMutex
	now     func() time.Time
}

// New creates an empty Analytics aggregate
func New(opts ...Option) *Analytics {
	a := &Analytics{
		entries: make([]Entry, 0, maxEntries),
		popular: make([]Popularity, 0, maxPopular),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Record adds a completed search to the history and bumps its popularity
// Blank queries are ignored
func (a *Analytics) Record(query string, resultCount int) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()

	entry := Entry{Query: query, Timestamp: now, ResultCount: resultCount}
	a.entries = append([]Entry{entry}, a.entries...)
	if len(a.entries) > maxEntries {
		a.entries = a.entries[:maxEntries]
	}

	found := false
	for i := range a.popular {
		if a.popular[i].Query == query {
			a.popular[i].Count++
			a.popular[i].LastUsed = now
			found = true
			break
		}
	}
	if !found {
		a.popular = append(a.popular, Popularity{Query: query, Count: 1, LastUsed: now})
	}

	sort.SliceStable(a.popular, func(i, j int) bool {
		return a.popular[i].Count > a.popular[j].Count
	})
	if len(a.popular) > maxPopular {
		a.popular = a.popular[:maxPopular]
	}
}

// Entries returns the recent searches, newest first
func (a *Analytics) Entries() []Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Popular returns the most searched queries, highest count first
func (a *Analytics) Popular() []Popularity {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]Popularity, len(a.popular))
	copy(out, a.popular)
	return out
}

// Stats returns the summed popularity counts and the number of tracked queries
func (a *Analytics) Stats() (totalSearches int, uniqueQueries int) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	uniqueQueries = len(a.popular)
	for _, p := range a.popular {
		totalSearches += p.Count
	}

	return totalSearches, uniqueQueries
}

// ClearHistory removes recent searches but keeps popularity
func (a *Analytics) ClearHistory() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = make([]Entry, 0, maxEntries)
}

// Clear removes all history and popularity
func (a *Analytics) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = make([]Entry, 0, maxEntries)
	a.popular = make([]Popularity, 0, maxPopular)
}
