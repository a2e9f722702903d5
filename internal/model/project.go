package model

import "strings"

// Project represents a portfolio project listing entry
type Project struct {
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description" yaml:"description"`
	LongDescription string   `json:"longDescription,omitempty" yaml:"longDescription,omitempty"`
	Technologies    []string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	Link            string   `json:"link,omitempty" yaml:"link,omitempty"`
	Category        string   `json:"category,omitempty" yaml:"category,omitempty"`
	Status          string   `json:"status,omitempty" yaml:"status,omitempty"`
	Role            string   `json:"role,omitempty" yaml:"role,omitempty"`
	Highlights      []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	ImgSrc          string   `json:"imgSrc,omitempty" yaml:"imgSrc,omitempty"`
	Href            string   `json:"href,omitempty" yaml:"href,omitempty"`
}

// DisplayString returns formatted display string in style: [category] > title
// Projects without a category return just the title
func (p Project) DisplayString() string {
	if p.Category == "" {
		return p.Title
	}
	return "[" + p.Category + "] > " + p.Title
}

// Matches reports whether the project belongs to the given category or uses the given technology
// Both comparisons are case-insensitive substring checks; an empty filter matches everything
func (p Project) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	needle := strings.ToLower(filter)
	if strings.Contains(strings.ToLower(p.Category), needle) {
		return true
	}
	for _, tech := range p.Technologies {
		if strings.Contains(strings.ToLower(tech), needle) {
			return true
		}
	}
	return false
}
