package index

import (
	"strings"
	"testing"

	"github.com/blevesearch/bleve/v2/search"

	"github.com/lqtrung-95/my-new-blog/internal/model"
)

func snippetPosts() []model.Post {
	return []model.Post{
		{
			Slug:    "go-concurrency",
			Title:   "Go Concurrency",
			Summary: "Patterns for concurrent programs",
			Tags:    []string{"go"},
			Content: "Channels let goroutines communicate. A worker pool bounds how many goroutines run at once.",
		},
		{
			Slug:    "react-hooks",
			Title:   "React Hooks",
			Summary: "Hooks in depth",
			Tags:    []string{"react", "javascript"},
			Content: "The useEffect hook synchronizes a component with an external system.",
		},
		{
			Slug:    "no-body",
			Title:   "Release Notes",
			Summary: "What changed in the latest release",
		},
	}
}

func newTestIndex(t *testing.T) *PostIndex {
	t.Helper()
	pi, err := NewPostIndex(snippetPosts())
	if err != nil {
		t.Fatalf("NewPostIndex() error = %v", err)
	}
	t.Cleanup(func() { _ = pi.Close() })
	return pi
}

func TestNewPostIndex(t *testing.T) {
	pi := newTestIndex(t)

	count, err := pi.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 documents, got %d", count)
	}
}

func TestNewPostIndex_Empty(t *testing.T) {
	pi, err := NewPostIndex(nil)
	if err != nil {
		t.Fatalf("NewPostIndex(nil) error = %v", err)
	}
	defer pi.Close()

	count, _ := pi.Count()
	if count != 0 {
		t.Errorf("Expected empty index, got %d documents", count)
	}
}

func TestPostIndex_Search_Content(t *testing.T) {
	pi := newTestIndex(t)

	matches, err := pi.Search("goroutines", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("Expected at least one match")
	}
	if matches[0].Slug != "go-concurrency" {
		t.Errorf("Expected go-concurrency first, got %s", matches[0].Slug)
	}
	if !strings.Contains(strings.ToLower(matches[0].Snippet), "goroutines") {
		t.Errorf("Snippet should contain the matched word, got %q", matches[0].Snippet)
	}
	if strings.Contains(matches[0].Snippet, "<mark>") {
		t.Errorf("Snippet should not contain markup, got %q", matches[0].Snippet)
	}
}

func TestPostIndex_Search_Typo(t *testing.T) {
	pi := newTestIndex(t)

	matches, err := pi.Search("gorutines", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) == 0 || matches[0].Slug != "go-concurrency" {
		t.Errorf("Expected typo to match go-concurrency, got %+v", matches)
	}
}

func TestPostIndex_Search_Prefix(t *testing.T) {
	pi := newTestIndex(t)

	matches, err := pi.Search("synchro", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) == 0 || matches[0].Slug != "react-hooks" {
		t.Errorf("Expected prefix to match react-hooks, got %+v", matches)
	}
}

func TestPostIndex_Search_EmptyQuery(t *testing.T) {
	pi := newTestIndex(t)

	for _, q := range []string{"", "   "} {
		matches, err := pi.Search(q, 10)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", q, err)
		}
		if len(matches) != 0 {
			t.Errorf("Search(%q) returned %d matches, want 0", q, len(matches))
		}
	}
}

func TestPostIndex_Snippets(t *testing.T) {
	pi := newTestIndex(t)

	snippets, err := pi.Snippets("release", 10)
	if err != nil {
		t.Fatalf("Snippets() error = %v", err)
	}

	snippet, ok := snippets["no-body"]
	if !ok {
		t.Fatalf("Expected snippet for no-body, got %v", snippets)
	}
	if !strings.Contains(strings.ToLower(snippet), "release") {
		t.Errorf("Snippet should mention the query, got %q", snippet)
	}
}

func TestPostIndex_Snippets_TitleOnlyMatch(t *testing.T) {
	pi := newTestIndex(t)

	// "concurrency" appears only in the title of go-concurrency
	snippets, err := pi.Snippets("concurrency", 10)
	if err != nil {
		t.Fatalf("Snippets() error = %v", err)
	}
	if got := snippets["go-concurrency"]; got != "Patterns for concurrent programs" {
		t.Errorf("Snippet = %q, want the summary", got)
	}
}

func TestPostIndex_AddAndDelete(t *testing.T) {
	pi := newTestIndex(t)

	err := pi.Add(model.Post{Slug: "rust", Title: "Rust Ownership", Content: "Borrowing rules explained."})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	matches, _ := pi.Search("borrowing", 10)
	if len(matches) != 1 || matches[0].Slug != "rust" {
		t.Fatalf("Expected added post to be searchable, got %+v", matches)
	}

	if err := pi.Delete("rust"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	matches, _ = pi.Search("borrowing", 10)
	if len(matches) != 0 {
		t.Errorf("Expected deleted post to be gone, got %+v", matches)
	}
}

func TestNewPostDocument(t *testing.T) {
	doc := NewPostDocument(model.Post{
		Slug:    "a",
		Title:   "T",
		Summary: "S",
		Tags:    []string{"x", "y"},
		Content: "C",
	})

	if doc.Slug != "a" || doc.Title != "T" || doc.Summary != "S" || doc.Content != "C" {
		t.Errorf("Unexpected document: %+v", doc)
	}
	if doc.Tags != "x y" {
		t.Errorf("Tags = %q, want %q", doc.Tags, "x y")
	}
}

func TestStripHTMLTags(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain text", "plain text"},
		{"text with <mark>highlighted</mark> word", "text with highlighted word"},
		{"nested <div>tags <span>here</span></div>", "nested tags here"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := stripHTMLTags(tt.input); got != tt.expected {
				t.Errorf("stripHTMLTags(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractSnippet(t *testing.T) {
	long := strings.Repeat("word ", 60)

	tests := []struct {
		name      string
		fragments map[string][]string
		fields    map[string]interface{}
		expected  string
	}{
		{
			name:      "content fragment",
			fragments: map[string][]string{"Content": {"a <mark>match</mark> here"}},
			expected:  "a match here",
		},
		{
			name:      "at most two fragments",
			fragments: map[string][]string{"Content": {"one", "two", "three"}},
			expected:  "one ... two",
		},
		{
			name: "content preferred over summary",
			fragments: map[string][]string{
				"Summary": {"from summary"},
				"Content": {"from content"},
			},
			expected: "from content",
		},
		{
			name:      "summary fragment",
			fragments: map[string][]string{"Summary": {"<mark>summary</mark> hit"}},
			expected:  "summary hit",
		},
		{
			name: "empty body fragment skipped",
			fragments: map[string][]string{
				"Content": {""},
				"Summary": {"latest <mark>release</mark>"},
			},
			expected: "latest release",
		},
		{
			name: "marked summary beats unmarked body",
			fragments: map[string][]string{
				"Content": {"Opening paragraph of the body"},
				"Summary": {"about <mark>hooks</mark>"},
			},
			expected: "about hooks",
		},
		{
			name:      "unmarked body loses to summary field",
			fragments: map[string][]string{"Content": {"Opening paragraph of the body"}},
			fields:    map[string]interface{}{"Summary": "Plain summary"},
			expected:  "Plain summary",
		},
		{
			name:      "blank fragments only",
			fragments: map[string][]string{"Content": {"", "  "}},
			fields:    map[string]interface{}{"Summary": ""},
			expected:  "",
		},
		{
			name:     "summary fallback",
			fields:   map[string]interface{}{"Summary": "Plain summary"},
			expected: "Plain summary",
		},
		{
			name:     "long summary truncated",
			fields:   map[string]interface{}{"Summary": long},
			expected: Truncate(long, maxSnippetRunes),
		},
		{
			name:     "nothing available",
			fields:   map[string]interface{}{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := &search.DocumentMatch{Fragments: tt.fragments, Fields: tt.fields}
			if got := extractSnippet(hit); got != tt.expected {
				t.Errorf("extractSnippet() = %q, want %q", got, tt.expected)
			}
		})
	}
}
