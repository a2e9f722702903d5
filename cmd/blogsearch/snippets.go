package main

import (
	"sync"

	"github.com/lqtrung-95/my-new-blog/internal/index"
	"github.com/lqtrung-95/my-new-blog/internal/logger"
	"github.com/lqtrung-95/my-new-blog/internal/model"
)

// snippetSource serves TUI snippets from an index that can be rebuilt on reload
type snippetSource struct {
	mu  sync.Mutex
	idx *index.PostIndex // Nil when indexing failed
}

// rebuild replaces the index with one over posts
// A failed build leaves the source without snippets
func (s *snippetSource) rebuild(posts []model.Post) {
	next, err := index.NewPostIndex(posts)
	if err != nil {
		logger.Debug("Snippet index unavailable: %v", err)
		next = nil
	}

	s.mu.Lock()
	prev := s.idx
	s.idx = next
	s.mu.Unlock()

	closeIndex(prev)
}

// lookup returns snippets for query, or nil without an index
func (s *snippetSource) lookup(query string, max int) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idx == nil {
		return nil
	}
	found, err := s.idx.Snippets(query, max)
	if err != nil {
		logger.Debug("Snippet search failed: %v", err)
		return nil
	}
	return found
}

func (s *snippetSource) close() {
	s.mu.Lock()
	prev := s.idx
	s.idx = nil
	s.mu.Unlock()

	closeIndex(prev)
}

func closeIndex(idx *index.PostIndex) {
	if idx == nil {
		return
	}
	if err := idx.Close(); err != nil {
		logger.Debug("Failed to close index: %v", err)
	}
}
