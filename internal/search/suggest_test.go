package search

import (
	"reflect"
	"testing"

	"github.com/lqtrung-95/my-new-blog/internal/model"
)

func TestSuggest_Titles(t *testing.T) {
	posts := []model.Post{
		{Slug: "a", Title: "Getting Started with Rust"},
		{Slug: "b", Title: "Rust Concurrency Patterns"},
		{Slug: "c", Title: "Cooking Pasta"},
	}

	got := Suggest(posts, "rust", DefaultSuggestionLimit)
	want := []string{"Getting Started with Rust", "Rust Concurrency Patterns"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %v, want %v", got, want)
	}
}

func TestSuggest_ShortQuery(t *testing.T) {
	posts := []model.Post{{Slug: "a", Title: "Rust"}}

	for _, query := range []string{"", "r", "é"} {
		if got := Suggest(posts, query, 5); len(got) != 0 {
			t.Errorf("Suggest(%q) = %v, want empty", query, got)
		}
	}
}

func TestSuggest_TagsAndDedup(t *testing.T) {
	posts := []model.Post{
		{Slug: "a", Title: "Post A", Tags: []string{"rust", "systems"}},
		{Slug: "b", Title: "Post B", Tags: []string{"Rustlang", "rust"}},
	}

	got := Suggest(posts, "RUST", 10)
	want := []string{"rust", "Rustlang"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %v, want %v", got, want)
	}
}

func TestSuggest_SummaryWords(t *testing.T) {
	posts := []model.Post{
		{Slug: "a", Title: "Notes", Summary: "Trusty tools, rusty code. Rum!"},
	}

	// "Rum!" cleans to "rum", too short to suggest
	got := Suggest(posts, "ru", 10)
	want := []string{"trusty", "rusty"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %v, want %v", got, want)
	}
}

func TestSuggest_DiscoveryOrderAcrossSources(t *testing.T) {
	posts := []model.Post{
		{Slug: "a", Title: "Go Generics", Tags: []string{"golang"}, Summary: "Using golang generics well"},
		{Slug: "b", Title: "Going Further", Tags: []string{"go"}},
	}

	got := Suggest(posts, "go", 10)
	// Title, then tag, then summary word (deduplicated against the tag), then next post
	want := []string{"Go Generics", "golang", "Going Further", "go"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %v, want %v", got, want)
	}
}

func TestSuggest_Limit(t *testing.T) {
	posts := []model.Post{
		{Slug: "a", Title: "Test One"},
		{Slug: "b", Title: "Test Two"},
		{Slug: "c", Title: "Test Three"},
	}

	if got := Suggest(posts, "test", 2); len(got) != 2 {
		t.Errorf("Suggest with limit 2 returned %d items", len(got))
	}

	got := Suggest(posts, "test", 0)
	if len(got) != 3 {
		t.Errorf("Non-positive limit should use default, got %d items", len(got))
	}
	if got[0] != "Test One" {
		t.Errorf("First suggestion = %q, want %q", got[0], "Test One")
	}
}
