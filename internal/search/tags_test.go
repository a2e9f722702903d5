package search

import (
	"reflect"
	"testing"
	"time"

	"github.com/lqtrung-95/my-new-blog/internal/model"
)

func TestAllTags(t *testing.T) {
	posts := []model.Post{
		{Slug: "a", Tags: []string{"react", "javascript"}},
		{Slug: "b", Tags: []string{"go", "react"}},
		{Slug: "c"},
	}

	got := AllTags(posts)
	want := []string{"go", "javascript", "react"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllTags() = %v, want %v", got, want)
	}
}

func TestTagCounts(t *testing.T) {
	posts := []model.Post{
		{Slug: "a", Tags: []string{"react", "react", "js"}},
		{Slug: "b", Tags: []string{"react"}},
	}

	counts := TagCounts(posts)

	if counts["react"] != 2 {
		t.Errorf("react count = %d, want 2", counts["react"])
	}
	if counts["js"] != 1 {
		t.Errorf("js count = %d, want 1", counts["js"])
	}
}

func TestDatePresets(t *testing.T) {
	now := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	presets := DatePresets(now)

	expected := []struct {
		label string
		days  int
	}{
		{"Last 7 days", 7},
		{"Last 30 days", 30},
		{"Last 3 months", 90},
		{"Last year", 365},
	}

	if len(presets) != len(expected) {
		t.Fatalf("Expected %d presets, got %d", len(expected), len(presets))
	}

	for i, e := range expected {
		p := presets[i]
		if p.Label != e.label {
			t.Errorf("Preset %d label = %q, want %q", i, p.Label, e.label)
		}
		wantStart := now.Add(-time.Duration(e.days) * 24 * time.Hour)
		if !p.Range.Start.Equal(wantStart) {
			t.Errorf("Preset %q start = %v, want %v", p.Label, p.Range.Start, wantStart)
		}
		if !p.Range.End.IsZero() {
			t.Errorf("Preset %q should be open-ended", p.Label)
		}
	}
}
