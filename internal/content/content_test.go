package content

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/lqtrung-95/my-new-blog/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

const reactPost = `---
title: React Hooks Guide
date: 2024-03-01
tags: [react, javascript]
summary: Everything about hooks
authors: [Jane Doe]
---

# Intro

Hooks let you use **state** in function components.
`

const goPost = `---
title: "Go Concurrency"
date: '2024-05-10'
tags:
  - go
author: John Smith
---

Goroutines and channels make concurrent code readable.

More text follows here.
`

const draftPost = `---
title: Unfinished
date: 2024-06-01
draft: true
---

Not ready yet.
`

func TestLoadPosts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "react-hooks.md", reactPost)
	writeFile(t, dir, "go/concurrency.mdx", goPost)
	writeFile(t, dir, "draft.md", draftPost)
	writeFile(t, dir, "notes.txt", "ignored")

	posts, err := New(dir).LoadPosts(LoadOptions{PoolSize: 2})
	if err != nil {
		t.Fatalf("LoadPosts() error = %v", err)
	}

	if len(posts) != 2 {
		t.Fatalf("Expected 2 published posts, got %d", len(posts))
	}

	// Newest first
	if posts[0].Slug != "go/concurrency" {
		t.Errorf("Expected go/concurrency first, got %s", posts[0].Slug)
	}
	if posts[1].Slug != "react-hooks" {
		t.Errorf("Expected react-hooks second, got %s", posts[1].Slug)
	}

	react := posts[1]
	if react.Title != "React Hooks Guide" {
		t.Errorf("Title = %q", react.Title)
	}
	if react.Summary != "Everything about hooks" {
		t.Errorf("Summary = %q", react.Summary)
	}
	if len(react.Tags) != 2 || react.Tags[0] != "react" {
		t.Errorf("Tags = %v", react.Tags)
	}
	if react.Author != "Jane Doe" {
		t.Errorf("Author = %q", react.Author)
	}
	if !react.Date.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", react.Date)
	}
	if react.Content == "" || react.Content[0] == '#' {
		t.Errorf("Content should be plain text, got %q", react.Content)
	}

	golang := posts[0]
	if golang.Author != "John Smith" {
		t.Errorf("Author = %q", golang.Author)
	}
	if golang.Summary != "Goroutines and channels make concurrent code readable." {
		t.Errorf("Derived summary = %q", golang.Summary)
	}
}

func TestLoadPosts_IncludeDrafts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "react-hooks.md", reactPost)
	writeFile(t, dir, "draft.md", draftPost)

	posts, err := New(dir).LoadPosts(LoadOptions{IncludeDrafts: true})
	if err != nil {
		t.Fatalf("LoadPosts() error = %v", err)
	}

	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts with drafts, got %d", len(posts))
	}
	if posts[0].Slug != "draft" || !posts[0].Draft {
		t.Errorf("Expected draft first, got %+v", posts[0])
	}
}

func TestLoadPosts_SkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "react-hooks.md", reactPost)
	writeFile(t, dir, "no-front-matter.md", "# Just a heading\n")
	writeFile(t, dir, "bad-yaml.md", "---\ntitle: [unclosed\n---\nbody\n")

	posts, err := New(dir).LoadPosts(LoadOptions{})
	if err != nil {
		t.Fatalf("LoadPosts() error = %v", err)
	}

	if len(posts) != 1 || posts[0].Slug != "react-hooks" {
		t.Errorf("Expected only react-hooks, got %+v", posts)
	}
}

func TestLoadPosts_DirNotFound(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing")).LoadPosts(LoadOptions{})
	if !errors.Is(err, ErrContentDirNotFound) {
		t.Errorf("Expected ErrContentDirNotFound, got %v", err)
	}
}

func TestLoadPosts_ReadError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test on Windows: chmod doesn't work the same way")
	}
	if os.Getuid() == 0 {
		t.Skip("Skipping test when running as root")
	}

	dir := t.TempDir()
	writeFile(t, dir, "locked.md", reactPost)
	path := filepath.Join(dir, "locked.md")
	if err := os.Chmod(path, 0000); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}
	defer os.Chmod(path, 0644)

	if _, err := New(dir).LoadPosts(LoadOptions{}); err == nil {
		t.Error("LoadPosts should fail when a post cannot be read")
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "react-hooks.md", reactPost)
	writeFile(t, dir, "draft.md", draftPost)

	count, err := New(dir).Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 published post, got %d", count)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if !New(dir).Exists() {
		t.Error("Exists() should be true for an existing directory")
	}

	writeFile(t, dir, "file.md", reactPost)
	if New(filepath.Join(dir, "file.md")).Exists() {
		t.Error("Exists() should be false for a file")
	}
	if New(filepath.Join(dir, "missing")).Exists() {
		t.Error("Exists() should be false for a missing path")
	}
}

func TestParsePost(t *testing.T) {
	post, err := ParsePost("fallback", []byte("---\nslug: custom\ndate: not a date\n---\nBody text."))
	if err != nil {
		t.Fatalf("ParsePost() error = %v", err)
	}

	if post.Slug != "custom" {
		t.Errorf("Slug = %q, want custom", post.Slug)
	}
	if post.Title != "custom" {
		t.Errorf("Missing title should fall back to slug, got %q", post.Title)
	}
	if !post.Date.IsZero() {
		t.Errorf("Malformed date should be zero, got %v", post.Date)
	}
	if post.Summary != "Body text." {
		t.Errorf("Summary = %q", post.Summary)
	}
	if post.Tags != nil {
		t.Errorf("Tags should be nil, got %v", post.Tags)
	}
}

func TestParsePost_CRLFAndBOM(t *testing.T) {
	data := "\xef\xbb\xbf---\r\ntitle: Windows\r\n---\r\nBody\r\n"

	post, err := ParsePost("win", []byte(data))
	if err != nil {
		t.Fatalf("ParsePost() error = %v", err)
	}
	if post.Title != "Windows" {
		t.Errorf("Title = %q", post.Title)
	}
}

func TestParsePost_NoFrontMatter(t *testing.T) {
	tests := []string{
		"# Title\n\nBody",
		"---\ntitle: never closed\n",
	}

	for _, data := range tests {
		if _, err := ParsePost("x", []byte(data)); !errors.Is(err, ErrNoFrontMatter) {
			t.Errorf("ParsePost(%q) error = %v, want ErrNoFrontMatter", data, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"2024-01-15 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"January 15, 2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{" 2024-01-15 ", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"yesterday", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok || !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSortPosts(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC) }
	posts := []model.Post{
		{Slug: "undated"},
		{Slug: "b", Date: d(5)},
		{Slug: "a", Date: d(5)},
		{Slug: "newest", Date: d(9)},
	}

	SortPosts(posts)

	want := []string{"newest", "a", "b", "undated"}
	for i, slug := range want {
		if posts[i].Slug != slug {
			t.Errorf("posts[%d] = %s, want %s", i, posts[i].Slug, slug)
		}
	}
}

func TestReadWriteProjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "projects.yaml")
	projects := []model.Project{
		{
			Title:        "Blog Search",
			Description:  "Fuzzy search for posts",
			Technologies: []string{"Go", "Bleve"},
			Category:     "Tools",
			Status:       "active",
		},
		{Title: "Portfolio", Description: "Personal site"},
	}

	if err := WriteProjects(path, projects); err != nil {
		t.Fatalf("WriteProjects() error = %v", err)
	}

	loaded, err := LoadProjects(path)
	if err != nil {
		t.Fatalf("LoadProjects() error = %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(loaded))
	}
	if loaded[0].Title != "Blog Search" || loaded[0].Category != "Tools" {
		t.Errorf("Unexpected project: %+v", loaded[0])
	}
	if len(loaded[0].Technologies) != 2 || loaded[0].Technologies[1] != "Bleve" {
		t.Errorf("Technologies = %v", loaded[0].Technologies)
	}
}

func TestLoadProjects_NotFound(t *testing.T) {
	_, err := LoadProjects(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Expected error for missing projects file")
	}
}

func TestLoadProjects_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	writeFile(t, filepath.Dir(path), "projects.yaml", "projects: [unclosed")

	if _, err := LoadProjects(path); err == nil {
		t.Error("Expected error for malformed projects file")
	}
}
