package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Brand colors
var (
	// Indigo accent: #6366F1
	brandIndigo = lipgloss.Color("#6366F1")
	// Sky accent for tags
	brandSky = lipgloss.Color("#0EA5E9")
	// Success green
	successGreen = lipgloss.Color("#00C853")
	// Warning yellow
	warningYellow = lipgloss.Color("#FFC107")
	// Info blue
	infoBlue = lipgloss.Color("#2196F3")
	// Muted gray
	mutedGray = lipgloss.Color("#9E9E9E")
)

// Style definitions
var (
	// Title style - bold with indigo accent
	titleStyle = lipgloss.NewStyle().
			Foreground(brandIndigo).
			Bold(true)

	// Tag style
	tagStyle = lipgloss.NewStyle().
			Foreground(brandSky)

	// Success style
	successStyle = lipgloss.NewStyle().
			Foreground(successGreen).
			Bold(true)

	// Warning style
	warningStyle = lipgloss.NewStyle().
			Foreground(warningYellow).
			Bold(true)

	// Muted text style
	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	// Input prompt style
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8B5CF6"))

	// Snippet text style
	exampleStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	// URL style
	urlStyle = lipgloss.NewStyle().
			Foreground(infoBlue)
)

// printLogo prints the styled logo with version
func printLogo(w io.Writer, ver string) {
	// Gradient blocks █▓▒░
	gradient := lipgloss.NewStyle().Foreground(brandIndigo).Render("█▓▒░")
	title := titleStyle.Render("blogsearch")
	versionText := mutedStyle.Render(ver)

	fmt.Fprintf(w, "%s %s %s\n", gradient, title, versionText)
	fmt.Fprintln(w, mutedStyle.Render("Fuzzy search for your blog"))
	fmt.Fprintln(w)
}

// printTitle prints a styled section title
func printTitle(w io.Writer, text string) {
	fmt.Fprintln(w, titleStyle.Render(text))
	fmt.Fprintln(w)
}

// printSuccess prints a success message
func printSuccess(w io.Writer, text string) {
	fmt.Fprintln(w, successStyle.Render("✓ "+text))
}

// printWarning prints a warning message
func printWarning(w io.Writer, text string) {
	fmt.Fprintln(w, warningStyle.Render("⚠️  "+text))
}

// printMuted prints muted text
func printMuted(w io.Writer, text string) {
	fmt.Fprintln(w, mutedStyle.Render(text))
}

// printPrompt prints an input prompt on same line
func printPrompt(w io.Writer, text string) {
	fmt.Fprint(w, promptStyle.Render(text))
}
