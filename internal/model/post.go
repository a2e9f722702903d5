// Package model defines core data structures for blog posts and portfolio projects
package model

import (
	"strings"
	"time"
)

// Post represents a blog post as seen by the search core
type Post struct {
	Slug    string    `json:"slug" yaml:"slug"`                           // Unique identifier (e.g., "react-hooks-guide")
	Title   string    `json:"title" yaml:"title"`                         // Post title
	Summary string    `json:"summary,omitempty" yaml:"summary,omitempty"` // Short description (may be empty)
	Tags    []string  `json:"tags,omitempty" yaml:"tags,omitempty"`       // Ordered tag list (may be empty)
	Date    time.Time `json:"date" yaml:"date"`                           // Publication date (zero if missing or malformed)
	Author  string    `json:"author,omitempty" yaml:"author,omitempty"`   // Author name (may be empty)
	Draft   bool      `json:"draft,omitempty" yaml:"draft,omitempty"`     // Draft posts are hidden unless requested
	Content string    `json:"-" yaml:"-"`                                 // Plain-text body, used for snippets only
}

// TagsString returns all tags joined by a single space
// Example: ["react", "hooks"] -> "react hooks"
func (p Post) TagsString() string {
	return strings.Join(p.Tags, " ")
}

// HasDate reports whether the post carries a usable publication date
func (p Post) HasDate() bool {
	return !p.Date.IsZero()
}

// DisplayString returns formatted display string in style: title [tag1, tag2]
// Posts without tags return just the title
func (p Post) DisplayString() string {
	if len(p.Tags) == 0 {
		return p.Title
	}
	return p.Title + " [" + strings.Join(p.Tags, ", ") + "]"
}

// URL returns the public URL of the post under the given site root
// For site "https://blog.example.com/" and slug "intro" returns "https://blog.example.com/blog/intro"
func (p Post) URL(siteURL string) string {
	base := strings.TrimSuffix(siteURL, "/")
	return base + "/blog/" + strings.TrimPrefix(p.Slug, "/")
}
