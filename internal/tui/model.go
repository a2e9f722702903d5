// Package tui implements the interactive post search screen
package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lqtrung-95/my-new-blog/internal/history"
	"github.com/lqtrung-95/my-new-blog/internal/model"
	"github.com/lqtrung-95/my-new-blog/internal/search"
	"github.com/lqtrung-95/my-new-blog/internal/session"
)

// snippetRunes is the display width of a snippet line
const snippetRunes = 60

// SnippetFunc returns display snippets keyed by post slug for a query
type SnippetFunc func(query string, max int) map[string]string

// Options configures the TUI
type Options struct {
	Engine          *search.Engine
	Analytics       *history.Analytics
	Scheduler       session.Scheduler // Nil uses wall-clock timers
	Debounce        time.Duration
	SuggestionLimit int
	MaxResults      int
	InitialQuery    string
	SiteURL         string
	Version         string
	ShowScores      bool
	Snippets        SnippetFunc
	Reload          func() ([]model.Post, error) // Rereads posts on ctrl+r; nil disables reloading
	Now             func() time.Time             // Reference time for date presets
}

// snapshotMsg carries a session evaluation into the update loop
type snapshotMsg session.Snapshot

// postsLoadedMsg carries the result of a reload
type postsLoadedMsg struct {
	posts []model.Post
	err   error
}

// Model represents the TUI state
type Model struct {
	textInput   textinput.Model
	styles      Styles
	colorScheme *ColorScheme
	sess        *session.Session
	posts       []model.Post
	reload      func() ([]model.Post, error)
	status      string // One-off notice, cleared on the next key
	updates     chan session.Snapshot // Evaluations from the session, newest wins
	snap        session.Snapshot      // Latest evaluation
	snippets    map[string]string     // Slug -> snippet for snap.DebouncedQuery
	snippetFor  SnippetFunc
	tags        []string            // Tag filter cycle
	presets     []search.DatePreset // Date filter cycle
	tagIndex    int                 // -1 when no tag filter
	presetIndex int                 // -1 when no date filter
	maxResults  int
	siteURL     string
	version     string
	selected    *model.Post
	cursor      int
	width       int
	height      int
	quitting    bool
	showScores  bool
	showHelp    bool
}

// New creates a new TUI model searching posts
func New(posts []model.Post, opts Options) Model {
	colorScheme := NewColorScheme()
	styles := colorScheme.GetStyles()

	ti := textinput.New()
	ti.Placeholder = "Search posts..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 50
	ti.Prompt = "> "
	ti.PromptStyle = styles.Prompt

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	updates := make(chan session.Snapshot, 1)
	sessOpts := []session.Option{
		session.WithEngine(opts.Engine),
		session.WithAnalytics(opts.Analytics),
		session.WithScheduler(opts.Scheduler),
		session.WithSuggestionLimit(opts.SuggestionLimit),
		session.WithNotify(func(s session.Snapshot) { publish(updates, s) }),
	}
	if opts.Debounce > 0 {
		sessOpts = append(sessOpts, session.WithDebounce(opts.Debounce))
	}
	sess := session.New(posts, sessOpts...)

	if opts.InitialQuery != "" {
		ti.SetValue(opts.InitialQuery)
		sess.SetQuery(opts.InitialQuery)
		sess.Flush()
	}

	m := Model{
		textInput:   ti,
		styles:      styles,
		colorScheme: colorScheme,
		sess:        sess,
		posts:       posts,
		reload:      opts.Reload,
		updates:     updates,
		snippetFor:  opts.Snippets,
		tags:        search.AllTags(posts),
		presets:     search.DatePresets(now()),
		tagIndex:    -1,
		presetIndex: -1,
		maxResults:  maxResults,
		siteURL:     strings.TrimPrefix(strings.TrimPrefix(opts.SiteURL, "https://"), "http://"),
		version:     opts.Version,
		showScores:  opts.ShowScores,
	}
	m.apply(sess.Snapshot())

	return m
}

// publish hands a snapshot to the UI without blocking the session
func publish(ch chan session.Snapshot, s session.Snapshot) {
	select {
	case ch <- s:
		return
	default:
	}
	// Replace the unread snapshot with the newer one
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}

// waitForSnapshot blocks until the session publishes an evaluation
func waitForSnapshot(ch <-chan session.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-ch)
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForSnapshot(m.updates))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.sess.Close()
			return m, tea.Quit

		case "enter":
			results := m.visible()
			if m.cursor < len(results) {
				post := results[m.cursor].Post
				m.selected = &post
			}
			m.quitting = true
			m.sess.Close()
			return m, tea.Quit

		case "tab":
			// Accept the first suggestion
			if suggestions := m.sess.Suggestions(); len(suggestions) > 0 {
				m.textInput.SetValue(suggestions[0])
				m.textInput.CursorEnd()
				m.sess.SetQuery(suggestions[0])
				m.cursor = 0
			}

		case "ctrl+t":
			m.cycleTag()

		case "ctrl+d":
			m.cyclePreset()

		case "ctrl+f":
			m.sess.ClearFilters()
			m.tagIndex, m.presetIndex = -1, -1
			m.apply(m.sess.Snapshot())

		case "ctrl+u":
			m.sess.ClearSearch()
			m.textInput.SetValue("")
			m.tagIndex, m.presetIndex = -1, -1
			m.apply(m.sess.Snapshot())

		case "ctrl+r":
			if m.reload != nil {
				m.status = "Reloading posts..."
				return m, reloadPosts(m.reload)
			}

		case "ctrl+x":
			m.sess.Analytics().ClearHistory()
			m.status = "Recent searches cleared"

		case "?":
			m.showHelp = !m.showHelp

		case "down", "ctrl+n":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		default:
			before := m.textInput.Value()
			m.textInput, cmd = m.textInput.Update(msg)
			if value := m.textInput.Value(); value != before {
				m.sess.SetQuery(value)
				m.cursor = 0
			}
		}

	case snapshotMsg:
		m.apply(session.Snapshot(msg))
		return m, waitForSnapshot(m.updates)

	case postsLoadedMsg:
		m.setPosts(msg.posts, msg.err)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, cmd
}

// reloadPosts runs the reload function off the update loop
func reloadPosts(reload func() ([]model.Post, error)) tea.Cmd {
	return func() tea.Msg {
		posts, err := reload()
		return postsLoadedMsg{posts: posts, err: err}
	}
}

// setPosts swaps in reloaded posts, keeping the tag filter when its tag survives
func (m *Model) setPosts(posts []model.Post, err error) {
	if err != nil {
		m.status = "Reload failed: " + err.Error()
		return
	}

	current := ""
	if m.tagIndex >= 0 && m.tagIndex < len(m.tags) {
		current = m.tags[m.tagIndex]
	}
	m.posts = posts
	m.tags = search.AllTags(posts)
	m.tagIndex = -1
	for i, tag := range m.tags {
		if tag == current {
			m.tagIndex = i
		}
	}
	if current != "" && m.tagIndex < 0 {
		_ = m.sess.UpdateFilter(search.FilterTags, nil)
	}

	m.sess.SetPosts(posts)
	m.snippets = nil
	m.apply(m.sess.Snapshot())
	m.status = fmt.Sprintf("Reloaded %s posts", formatNumber(len(posts)))
}

// cycleTag moves the tag filter to the next known tag, then back to none
func (m *Model) cycleTag() {
	if len(m.tags) == 0 {
		return
	}
	m.tagIndex++
	var value any
	if m.tagIndex >= len(m.tags) {
		m.tagIndex = -1
	} else {
		value = []string{m.tags[m.tagIndex]}
	}
	if err := m.sess.UpdateFilter(search.FilterTags, value); err == nil {
		m.apply(m.sess.Snapshot())
	}
}

// cyclePreset moves the date filter to the next preset, then back to none
func (m *Model) cyclePreset() {
	m.presetIndex++
	var value any
	if m.presetIndex >= len(m.presets) {
		m.presetIndex = -1
	} else {
		value = m.presets[m.presetIndex].Range
	}
	if err := m.sess.UpdateFilter(search.FilterDateRange, value); err == nil {
		m.apply(m.sess.Snapshot())
	}
}

// apply stores a snapshot, refreshes snippets when the settled query changed, and clamps the cursor
func (m *Model) apply(s session.Snapshot) {
	// Timer and key evaluations publish from different goroutines
	if s.Version < m.snap.Version {
		return
	}
	queryChanged := s.DebouncedQuery != m.snap.DebouncedQuery || m.snippets == nil
	m.snap = s

	if queryChanged {
		m.snippets = map[string]string{}
		if m.snippetFor != nil && strings.TrimSpace(s.DebouncedQuery) != "" {
			if snippets := m.snippetFor(s.DebouncedQuery, m.maxResults*2); snippets != nil {
				m.snippets = snippets
			}
		}
	}

	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// visible returns the results shown in the list
func (m Model) visible() []search.Result {
	if len(m.snap.Results) > m.maxResults {
		return m.snap.Results[:m.maxResults]
	}
	return m.snap.Results
}

// Selected returns the post chosen with enter, if any
func (m Model) Selected() (model.Post, bool) {
	if m.selected == nil {
		return model.Post{}, false
	}
	return *m.selected, true
}

// renderResult renders a result title line with optional meta and snippet lines
func (m Model) renderResult(r search.Result, query string) string {
	var b strings.Builder

	b.WriteString(highlightToken(r.Title, query, lipgloss.NewStyle(), m.styles.Highlight))

	var meta []string
	if r.HasDate() {
		meta = append(meta, r.Date.Format("Jan 2, 2006"))
	}
	if len(r.Tags) > 0 {
		meta = append(meta, "#"+strings.Join(r.Tags, " #"))
	}
	if m.showScores && m.snap.Active {
		meta = append(meta, fmt.Sprintf("[%.1f]", r.Score))
	}
	if len(meta) > 0 {
		b.WriteString(" ")
		b.WriteString(m.styles.Meta.Render(strings.Join(meta, "  ")))
	}

	snippet := m.snippets[r.Slug]
	if snippet == "" && !m.snap.Active {
		snippet = r.Summary
	}
	if snippet != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Snippet.Render(truncateSnippet(snippet, snippetRunes)))
	}

	return b.String()
}

// highlightToken highlights the first occurrence of the first query token
func highlightToken(text, query string, style, highlightStyle lipgloss.Style) string {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return style.Render(text)
	}
	token := tokens[0]

	lowerText := strings.ToLower(text)
	lowerToken := strings.ToLower(token)

	// Byte offsets are only valid when lowering kept every length
	if len(lowerText) != len(text) || len(lowerToken) != len(token) {
		return style.Render(text)
	}

	idx := strings.Index(lowerText, lowerToken)
	if idx < 0 {
		return style.Render(text)
	}

	before := text[:idx]
	matched := text[idx : idx+len(token)]
	after := text[idx+len(token):]

	return style.Render(before) + highlightStyle.Render(matched) + style.Render(after)
}

// lineCount returns how many terminal lines a result takes
func (m Model) lineCount(r search.Result) int {
	if m.snippets[r.Slug] != "" || (!m.snap.Active && r.Summary != "") {
		return 2
	}
	return 1
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Status indicator: ● while a query waits for the debounce timer
	statusIndicator := m.styles.StatusIdle.Render("○")
	if m.snap.Pending {
		statusIndicator = m.styles.StatusPending.Render("●")
	}

	titleLeft := fmt.Sprintf("%s %s %s",
		m.colorScheme.Wave,
		m.styles.Title.Render("blogsearch"),
		m.styles.Version.Render(m.version))

	narrowed := m.snap.Active && search.ResultsDiffer(m.posts, m.snap.Results)
	postCount := formatCount(len(m.snap.Results), m.snap.Total, narrowed)
	helpIndicator := m.styles.Help.Render("[?] Help")
	siteInfo := ""
	if m.siteURL != "" {
		siteInfo = m.styles.SiteInfo.Render("[ " + m.siteURL + " ]")
	}

	leftWidth := lipgloss.Width(titleLeft)
	minWidth := leftWidth + lipgloss.Width(postCount) + lipgloss.Width(statusIndicator) + 4

	var titleRight string
	switch {
	case m.width < minWidth+30:
		titleRight = fmt.Sprintf("%s %s", m.styles.Summary.Render(postCount), statusIndicator)
	case siteInfo == "" || m.width < minWidth+lipgloss.Width(siteInfo)+30:
		titleRight = fmt.Sprintf("%s %s %s", m.styles.Summary.Render(postCount), helpIndicator, statusIndicator)
	default:
		titleRight = fmt.Sprintf("%s %s %s %s", m.styles.Summary.Render(postCount), siteInfo, helpIndicator, statusIndicator)
	}

	rightWidth := lipgloss.Width(titleRight)
	spacing := " "
	if m.width > leftWidth+rightWidth {
		spacing = strings.Repeat(" ", m.width-leftWidth-rightWidth)
	}

	b.WriteString(titleLeft)
	b.WriteString(spacing)
	b.WriteString(titleRight)
	b.WriteString("\n")

	if m.width > 0 {
		b.WriteString(m.styles.Help.Render(strings.Repeat("─", m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	usedLines := 6 // Title, separator, blank, input, two info lines
	b.WriteString(m.renderInfoLine())
	b.WriteString("\n")
	b.WriteString(m.renderFilterLine())
	b.WriteString("\n\n")

	if m.showHelp {
		usedLines += 3
	}

	maxAvailableLines := m.height - usedLines - 4
	if maxAvailableLines < 1 {
		maxAvailableLines = 1
	}

	results := m.visible()
	if len(results) == 0 {
		b.WriteString(m.styles.Empty.Render(" " + m.snap.Summary()))
		b.WriteString("\n")
	}

	// Scroll so the cursor item and as many items before it as fit are visible
	start := 0
	if m.cursor > 0 && m.cursor < len(results) {
		lines := m.lineCount(results[m.cursor])
		itemsBefore := 0
		for i := m.cursor - 1; i >= 0; i-- {
			itemLines := m.lineCount(results[i])
			if lines+itemLines > maxAvailableLines {
				break
			}
			lines += itemLines
			itemsBefore++
		}
		start = m.cursor - itemsBefore
	}

	query := strings.TrimSpace(m.snap.DebouncedQuery)
	renderedLines := 0
	for i := start; i < len(results); i++ {
		r := results[i]
		itemLines := m.lineCount(r)
		if renderedLines+itemLines > maxAvailableLines {
			break
		}

		if i == m.cursor {
			b.WriteString(m.styles.Cursor.Render("▌"))
		} else {
			b.WriteString(" ")
		}

		for lineIdx, line := range strings.Split(m.renderResult(r, query), "\n") {
			lineContent := " " + line
			if lineIdx > 0 {
				b.WriteString("\n ")
				lineContent = "    " + line
			}

			if i == m.cursor {
				b.WriteString(m.styles.Selected.Width(max(m.width-2, 0)).Render(lineContent))
			} else {
				b.WriteString(m.styles.Normal.Render(lineContent))
			}
		}
		b.WriteString("\n")

		renderedLines += itemLines
	}

	if m.showHelp {
		b.WriteString("\n\n")
		helpText := "↑/↓: navigate • enter: open • tab: accept suggestion • ctrl+t: tag • ctrl+d: date • ctrl+f: clear filters • ctrl+u: reset • ctrl+r: reload • ctrl+x: clear recent • ?: toggle help"
		b.WriteString(m.styles.Help.Render(helpText))
	}

	return b.String()
}

// renderInfoLine shows suggestions while typing, otherwise recent and popular searches
func (m Model) renderInfoLine() string {
	if suggestions := m.sess.Suggestions(); len(suggestions) > 0 {
		return m.styles.Help.Render(" Suggestions: ") + m.styles.Suggestion.Render(strings.Join(suggestions, " · "))
	}

	if strings.TrimSpace(m.textInput.Value()) != "" {
		return ""
	}

	analytics := m.sess.Analytics()
	var parts []string
	if entries := analytics.Entries(); len(entries) > 0 {
		recent := make([]string, 0, 3)
		for _, e := range entries[:min(3, len(entries))] {
			recent = append(recent, e.Query)
		}
		parts = append(parts, "Recent: "+strings.Join(recent, ", "))
	}
	if popular := analytics.Popular(); len(popular) > 0 {
		top := make([]string, 0, 3)
		for _, p := range popular[:min(3, len(popular))] {
			top = append(top, fmt.Sprintf("%s (%d)", p.Query, p.Count))
		}
		parts = append(parts, "Popular: "+strings.Join(top, ", "))
	}
	if searches, unique := analytics.Stats(); searches > 0 {
		noun := "searches"
		if searches == 1 {
			noun = "search"
		}
		parts = append(parts, fmt.Sprintf("%s %s, %s unique", formatNumber(searches), noun, formatNumber(unique)))
	}
	if len(parts) == 0 {
		return ""
	}
	return m.styles.Help.Render(" " + strings.Join(parts, "   "))
}

// renderFilterLine lists the active filters and any status notice
func (m Model) renderFilterLine() string {
	status := ""
	if m.status != "" {
		status = m.styles.Meta.Render(" " + m.status)
	}

	var chips []string
	if m.tagIndex >= 0 && m.tagIndex < len(m.tags) {
		chips = append(chips, "#"+m.tags[m.tagIndex])
	}
	if m.presetIndex >= 0 && m.presetIndex < len(m.presets) {
		chips = append(chips, m.presets[m.presetIndex].Label)
	}
	if len(chips) == 0 {
		return status
	}
	return m.styles.Help.Render(" Filters: ") + m.styles.Filter.Render(strings.Join(chips, " · ")) + m.styles.Help.Render("  (ctrl+f to clear)") + status
}

// formatCount renders the header count, e.g. "3/42 posts" while a search narrows the list
func formatCount(matched, total int, narrowed bool) string {
	if !narrowed {
		return formatNumber(total) + " posts"
	}
	return formatNumber(matched) + "/" + formatNumber(total) + " posts"
}

// truncateSnippet truncates text at word boundary respecting UTF-8
func truncateSnippet(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}

	truncated := runes[:maxRunes]

	lastBreak := -1
	for i := len(truncated) - 1; i >= 0; i-- {
		if unicode.IsSpace(truncated[i]) || truncated[i] == ',' || truncated[i] == '.' || truncated[i] == ';' {
			lastBreak = i
			break
		}
	}

	// Only cut at the boundary if it keeps most of the text
	if lastBreak > int(float64(maxRunes)*0.8) {
		truncated = truncated[:lastBreak]
	}

	return string(truncated) + "..."
}

// formatNumber adds thousands separators
func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
