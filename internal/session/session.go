// Package session keeps the query and filter state of one interactive search
// and re-runs the search engine as that state changes
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lqtrung-95/my-new-blog/internal/history"
	"github.com/lqtrung-95/my-new-blog/internal/model"
	"github.com/lqtrung-95/my-new-blog/internal/search"
)

// DefaultDebounce is the quiet period after the last query change before a search runs
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrUnknownFilterKey is returned when UpdateFilter gets a key it does not know
	ErrUnknownFilterKey = errors.New("unknown filter key")
	// ErrInvalidFilterValue is returned when a filter value has the wrong type for its key
	ErrInvalidFilterValue = errors.New("invalid filter value")
)

// Timer is a scheduled callback that can be cancelled
type Timer interface {
	Stop() bool
}

// Scheduler runs a callback once after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Snapshot is a consistent view of the session state
type Snapshot struct {
	Query          string
	DebouncedQuery string
	Filters        search.Filters
	Results        []search.Result
	Total          int
	Active         bool
	Pending        bool
	Version        uint64 // Grows with every state change; a higher version is newer
}

// Summary returns the result count line for the snapshot
func (s Snapshot) Summary() string {
	return search.Summarize(s.Total, s.Results, s.Active)
}

// Option configures a Session
type Option func(*Session)

// WithEngine sets the engine used for evaluations
func WithEngine(e *search.Engine) Option {
	return func(s *Session) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithDebounce sets the quiet period for query changes
func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.debounce = d
		}
	}
}

// WithScheduler replaces the timer source used for debouncing
func WithScheduler(sched Scheduler) Option {
	return func(s *Session) {
		if sched != nil {
			s.scheduler = sched
		}
	}
}

// WithAnalytics sets the analytics aggregate that records completed searches
func WithAnalytics(a *history.Analytics) Option {
	return func(s *Session) {
		if a != nil {
			s.analytics = a
		}
	}
}

// WithSuggestionLimit sets how many suggestions Suggestions returns
func WithSuggestionLimit(n int) Option {
	return func(s *Session) {
		s.suggestionLimit = n
	}
}

// WithNotify registers a callback invoked after every evaluation
// The callback runs outside the session lock, possibly on a timer goroutine
func WithNotify(fn func(Snapshot)) Option {
	return func(s *Session) {
		s.notify = fn
	}
}

// Session owns the query, filters and analytics of one search UI
type Session struct {
	engine          *search.Engine
	analytics       *history.Analytics
	scheduler       Scheduler
	debounce        time.Duration
	suggestionLimit int
	notify          func(Snapshot)

	mu             sync.Mutex
	posts          []model.Post
	query          string // As typed
	debouncedQuery string // Last query that settled
	filters        search.Filters
	results        []search.Result
	pending        bool
	timer          Timer
	generation     uint64 // Incremented whenever an outstanding timer becomes stale
	version        uint64 // Incremented on every state change
	closed         bool
}

// New creates a session over posts and runs the initial evaluation
func New(posts []model.Post, opts ...Option) *Session {
	s := &Session{
		debounce:        DefaultDebounce,
		suggestionLimit: search.DefaultSuggestionLimit,
		scheduler:       wallScheduler{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = search.NewEngine()
	}
	if s.analytics == nil {
		s.analytics = history.New()
	}

	s.posts = clonePosts(posts)
	s.evaluateLocked()
	return s
}

// SetQuery updates the typed query and schedules a debounced evaluation
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.query = q
	s.pending = true
	s.version++
	s.cancelTimerLocked()

	gen := s.generation
	s.timer = s.scheduler.AfterFunc(s.debounce, func() {
		s.fire(gen)
	})
}

// fire runs when the debounce timer for generation gen expires
func (s *Session) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.generation || !s.pending {
		s.mu.Unlock()
		return
	}

	s.timer = nil
	s.settleLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snap)
}

// settleLocked promotes the typed query and evaluates if it changed
func (s *Session) settleLocked() {
	s.pending = false
	s.version++
	if s.query == s.debouncedQuery {
		return
	}
	s.debouncedQuery = s.query
	s.evaluateLocked()
}

// Flush runs a pending evaluation immediately
func (s *Session) Flush() {
	s.mu.Lock()
	if s.closed || !s.pending {
		s.mu.Unlock()
		return
	}

	s.cancelTimerLocked()
	s.settleLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snap)
}

// UpdateFilter replaces one filter key and evaluates immediately
// A nil value removes the key
func (s *Session) UpdateFilter(key search.FilterKey, value any) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}

	filters := cloneFilters(s.filters)
	if err := applyFilter(&filters, key, value); err != nil {
		s.mu.Unlock()
		return err
	}

	s.filters = filters
	s.version++
	s.evaluateLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snap)
	return nil
}

// applyFilter sets key on f from value
func applyFilter(f *search.Filters, key search.FilterKey, value any) error {
	switch key {
	case search.FilterTags:
		switch v := value.(type) {
		case nil:
			f.Tags = nil
		case []string:
			if v == nil {
				f.Tags = nil
				return nil
			}
			f.Tags = append(make([]string, 0, len(v)), v...)
		default:
			return fmt.Errorf("%w: %s expects []string, got %T", ErrInvalidFilterValue, key, value)
		}

	case search.FilterDateRange:
		switch v := value.(type) {
		case nil:
			f.DateRange = nil
		case search.DateRange:
			f.DateRange = &v
		case *search.DateRange:
			if v == nil {
				f.DateRange = nil
				return nil
			}
			r := *v
			f.DateRange = &r
		default:
			return fmt.Errorf("%w: %s expects search.DateRange, got %T", ErrInvalidFilterValue, key, value)
		}

	case search.FilterAuthor:
		switch v := value.(type) {
		case nil:
			f.Author = nil
		case string:
			f.Author = &v
		case *string:
			if v == nil {
				f.Author = nil
				return nil
			}
			a := *v
			f.Author = &a
		default:
			return fmt.Errorf("%w: %s expects string, got %T", ErrInvalidFilterValue, key, value)
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilterKey, key)
	}

	return nil
}

// ClearFilters removes every filter key and evaluates immediately
func (s *Session) ClearFilters() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.filters = search.Filters{}
	s.version++
	s.evaluateLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snap)
}

// ClearSearch cancels any pending evaluation, resets query and filters, and evaluates immediately
func (s *Session) ClearSearch() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.cancelTimerLocked()
	s.pending = false
	s.query = ""
	s.debouncedQuery = ""
	s.filters = search.Filters{}
	s.version++
	s.evaluateLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snap)
}

// SetPosts replaces the post collection and re-evaluates the settled query
func (s *Session) SetPosts(posts []model.Post) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.posts = clonePosts(posts)
	s.version++
	s.evaluateLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snap)
}

// Close cancels any pending evaluation; later calls become no-ops
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimerLocked()
	s.pending = false
	s.closed = true
}

// Pending reports whether a query change is waiting for the debounce timer
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// HasActiveFilters reports whether any filter key is set
func (s *Session) HasActiveFilters() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.HasActive()
}

// Query returns the query as last typed
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// DebouncedQuery returns the query the current results were computed for
func (s *Session) DebouncedQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debouncedQuery
}

// Filters returns a copy of the current filter set
func (s *Session) Filters() search.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneFilters(s.filters)
}

// Results returns a copy of the latest results
func (s *Session) Results() []search.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneResults(s.results)
}

// Suggestions returns completions for the typed query, without waiting for the debounce
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return search.Suggest(s.posts, s.query, s.suggestionLimit)
}

// Analytics returns the analytics aggregate the session records into
func (s *Session) Analytics() *history.Analytics {
	return s.analytics
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Query:          s.query,
		DebouncedQuery: s.debouncedQuery,
		Filters:        cloneFilters(s.filters),
		Results:        cloneResults(s.results),
		Total:          len(s.posts),
		Active:         search.IsActive(s.debouncedQuery, s.filters),
		Pending:        s.pending,
		Version:        s.version,
	}
}

// evaluateLocked runs the engine over the settled query and records the search
func (s *Session) evaluateLocked() {
	s.results = s.engine.Search(s.posts, s.debouncedQuery, s.filters)

	if q := strings.TrimSpace(s.debouncedQuery); q != "" {
		s.analytics.Record(q, len(s.results))
	}
}

// cancelTimerLocked stops the outstanding timer and invalidates its callback
func (s *Session) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}

func (s *Session) emit(snap Snapshot) {
	if s.notify != nil {
		s.notify(snap)
	}
}

func clonePosts(posts []model.Post) []model.Post {
	out := make([]model.Post, len(posts))
	copy(out, posts)
	return out
}

func cloneResults(results []search.Result) []search.Result {
	out := make([]search.Result, len(results))
	copy(out, results)
	return out
}

func cloneFilters(f search.Filters) search.Filters {
	var out search.Filters
	if f.Tags != nil {
		out.Tags = append(make([]string, 0, len(f.Tags)), f.Tags...)
	}
	if f.DateRange != nil {
		r := *f.DateRange
		out.DateRange = &r
	}
	if f.Author != nil {
		a := *f.Author
		out.Author = &a
	}
	return out
}
