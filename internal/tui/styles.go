package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorScheme holds all adaptive color definitions for the TUI
type ColorScheme struct {
	// Title and branding
	Title    lipgloss.AdaptiveColor
	Wave     string // Pre-rendered gradient wave
	Version  lipgloss.AdaptiveColor
	SiteInfo lipgloss.AdaptiveColor

	// Input prompt and suggestions
	Prompt     lipgloss.AdaptiveColor
	Suggestion lipgloss.AdaptiveColor

	// Post list
	Normal     lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor
	SelectedBg lipgloss.AdaptiveColor
	Highlight  lipgloss.AdaptiveColor // First query token in titles
	Meta       lipgloss.AdaptiveColor // Date, tags and scores
	Snippet    lipgloss.AdaptiveColor

	// Filters and summary
	Filter  lipgloss.AdaptiveColor
	Summary lipgloss.AdaptiveColor
	Empty   lipgloss.AdaptiveColor

	// Indicators
	Cursor        lipgloss.AdaptiveColor
	StatusPending lipgloss.AdaptiveColor // Debounce timer running
	StatusIdle    lipgloss.AdaptiveColor

	// Help text
	Help lipgloss.AdaptiveColor
}

// waveStops are the brand gradient stops (#0EA5E9 sky, #6366F1 indigo, #A855F7 purple)
var waveStops = []struct {
	position float64
	color    [3]int
}{
	{0.0, [3]int{0x0E, 0xA5, 0xE9}},
	{0.5, [3]int{0x63, 0x66, 0xF1}},
	{1.0, [3]int{0xA8, 0x55, 0xF7}},
}

// NewColorScheme creates a new color scheme with adaptive colors for terminal theme
func NewColorScheme() *ColorScheme {
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#8B8FA3"}

	return &ColorScheme{
		Title: lipgloss.AdaptiveColor{
			Light: "#4338CA", // Indigo for light backgrounds
			Dark:  "#A5B4FC", // Soft indigo for dark backgrounds
		},
		Wave:     renderWave(),
		Version:  muted,
		SiteInfo: muted,

		Prompt: lipgloss.AdaptiveColor{
			Light: "#0284C7",
			Dark:  "#38BDF8",
		},
		Suggestion: lipgloss.AdaptiveColor{
			Light: "#7C3AED",
			Dark:  "#C4B5FD",
		},

		Normal: lipgloss.AdaptiveColor{
			Light: "#111827",
			Dark:  "#F3F4F6",
		},
		Selected: lipgloss.AdaptiveColor{
			Light: "#000000",
			Dark:  "#FFFFFF",
		},
		SelectedBg: lipgloss.AdaptiveColor{
			Light: "#E0E7FF",
			Dark:  "#312E81",
		},
		Highlight: lipgloss.AdaptiveColor{
			Light: "#B45309", // Amber for light backgrounds
			Dark:  "#FCD34D", // Yellow for dark backgrounds
		},
		Meta: muted,
		Snippet: lipgloss.AdaptiveColor{
			Light: "#737373",
			Dark:  "#A3A3A3",
		},

		Filter: lipgloss.AdaptiveColor{
			Light: "#047857",
			Dark:  "#6EE7B7",
		},
		Summary: muted,
		Empty: lipgloss.AdaptiveColor{
			Light: "#B91C1C",
			Dark:  "#FCA5A5",
		},

		Cursor: lipgloss.AdaptiveColor{
			Light: "#6366F1",
			Dark:  "#818CF8",
		},
		StatusPending: lipgloss.AdaptiveColor{
			Light: "#D97706",
			Dark:  "#FBBF24",
		},
		StatusIdle: lipgloss.AdaptiveColor{
			Light: "#737373",
			Dark:  "#666666",
		},

		Help: lipgloss.AdaptiveColor{
			Light: "#737373",
			Dark:  "#666666",
		},
	}
}

// renderWave creates the brand gradient wave █▓▒░
func renderWave() string {
	chars := []string{"█", "▓", "▒", "░"}

	var result strings.Builder
	for i, char := range chars {
		position := float64(i) / float64(len(chars)-1)
		r, g, b := interpolate(position)
		color := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, b))
		result.WriteString(lipgloss.NewStyle().Foreground(color).Render(char))
	}

	return result.String()
}

// interpolate returns the gradient color at position in [0, 1]
func interpolate(position float64) (r, g, b int) {
	start, end := 0, len(waveStops)-1
	for j := 0; j < len(waveStops)-1; j++ {
		if position >= waveStops[j].position && position <= waveStops[j+1].position {
			start, end = j, j+1
			break
		}
	}

	from, to := waveStops[start], waveStops[end]
	local := (position - from.position) / (to.position - from.position)

	mix := func(c int) int {
		return int(float64(from.color[c]) + float64(to.color[c]-from.color[c])*local)
	}
	return mix(0), mix(1), mix(2)
}

// GetStyles returns pre-configured lipgloss styles using the color scheme
func (cs *ColorScheme) GetStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(cs.Title),

		Version: lipgloss.NewStyle().
			Foreground(cs.Version),

		SiteInfo: lipgloss.NewStyle().
			Foreground(cs.SiteInfo),

		Prompt: lipgloss.NewStyle().
			Foreground(cs.Prompt),

		Suggestion: lipgloss.NewStyle().
			Foreground(cs.Suggestion),

		Normal: lipgloss.NewStyle().
			Foreground(cs.Normal),

		Selected: lipgloss.NewStyle().
			Foreground(cs.Selected).
			Background(cs.SelectedBg),

		Highlight: lipgloss.NewStyle().
			Foreground(cs.Highlight).
			Bold(true),

		Meta: lipgloss.NewStyle().
			Foreground(cs.Meta),

		Snippet: lipgloss.NewStyle().
			Foreground(cs.Snippet).
			Italic(true),

		Filter: lipgloss.NewStyle().
			Foreground(cs.Filter).
			Bold(true),

		Summary: lipgloss.NewStyle().
			Foreground(cs.Summary),

		Empty: lipgloss.NewStyle().
			Foreground(cs.Empty),

		Cursor: lipgloss.NewStyle().
			Foreground(cs.Cursor).
			Bold(true),

		StatusPending: lipgloss.NewStyle().
			Foreground(cs.StatusPending),

		StatusIdle: lipgloss.NewStyle().
			Foreground(cs.StatusIdle),

		Help: lipgloss.NewStyle().
			Foreground(cs.Help),
	}
}

// Styles holds pre-configured lipgloss styles
type Styles struct {
	Title         lipgloss.Style
	Version       lipgloss.Style
	SiteInfo      lipgloss.Style
	Prompt        lipgloss.Style
	Suggestion    lipgloss.Style
	Normal        lipgloss.Style
	Selected      lipgloss.Style
	Highlight     lipgloss.Style
	Meta          lipgloss.Style
	Snippet       lipgloss.Style
	Filter        lipgloss.Style
	Summary       lipgloss.Style
	Empty         lipgloss.Style
	Cursor        lipgloss.Style
	StatusPending lipgloss.Style
	StatusIdle    lipgloss.Style
	Help          lipgloss.Style
}
