package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lqtrung-95/my-new-blog/internal/index"
	"github.com/lqtrung-95/my-new-blog/internal/logger"
	"github.com/lqtrung-95/my-new-blog/internal/model"
	"github.com/lqtrung-95/my-new-blog/internal/search"
)

// dayLayout is the date format accepted by --since and --until
const dayLayout = "2006-01-02"

// snippetWidth is the rune limit of snippets in direct output
const snippetWidth = 100

var findCmd = &cobra.Command{
	Use:   "find [query...]",
	Short: "Print posts matching a query (non-interactive)",
	Long: `Search posts and print the results instead of opening the interactive screen.
Multi-word queries add up the score of every word.
If no query or filter is provided, all posts are listed newest first.

Examples:
  blogsearch find react
  blogsearch find react hooks --tag tutorial
  blogsearch find --author "Jane Doe" --since 2024-01-01`,
	RunE: runFind,
}

func init() {
	addFilterFlags(findCmd)
	findCmd.Flags().BoolVar(&showScores, "scores", false, "show relevance scores")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	filters, err := buildFilters(tagFlags, authorFlag, sinceFlag, untilFlag)
	if err != nil {
		return err
	}

	posts, err := loadPosts(cfg)
	if err != nil {
		return err
	}

	query := strings.TrimSpace(strings.Join(args, " "))

	if jsonOutput {
		return runJSON(os.Stdout, posts, query, filters, resultLimit(cfg), cfg.Site.URL)
	}

	engine := search.NewEngine()
	logger.Debug("Scoring weights: %+v", engine.Scorer().Weights())

	results := engine.Search(posts, query, filters)
	snippets := lookupSnippets(posts, query, resultLimit(cfg))

	printResults(os.Stdout, results, len(posts), search.IsActive(query, filters), resultLimit(cfg), snippets, cfg.Site.URL)
	return nil
}

// buildFilters turns command-line flag values into search filters
// Unset flags leave their filter key absent
func buildFilters(tags []string, author, since, until string) (search.Filters, error) {
	var filters search.Filters

	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			filters.Tags = append(filters.Tags, tag)
		}
	}

	if author = strings.TrimSpace(author); author != "" {
		filters.Author = &author
	}

	var r search.DateRange
	if since != "" {
		start, err := parseDay(since)
		if err != nil {
			return search.Filters{}, fmt.Errorf("invalid --since: %w", err)
		}
		r.Start = start
	}
	if until != "" {
		end, err := parseDay(until)
		if err != nil {
			return search.Filters{}, fmt.Errorf("invalid --until: %w", err)
		}
		// Include the whole final day
		r.End = end.Add(24*time.Hour - time.Nanosecond)
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return search.Filters{}, fmt.Errorf("--until %s is before --since %s", until, since)
	}
	if !r.IsZero() {
		filters.DateRange = &r
	}

	return filters, nil
}

// parseDay parses a YYYY-MM-DD date in UTC
func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return t, nil
}

// lookupSnippets finds body snippets for query, or nil when the index cannot help
func lookupSnippets(posts []model.Post, query string, limit int) map[string]string {
	if strings.TrimSpace(query) == "" || len(posts) == 0 {
		return nil
	}

	postIndex, err := index.NewPostIndex(posts)
	if err != nil {
		logger.Debug("Snippet index unavailable: %v", err)
		return nil
	}
	defer func() {
		if err := postIndex.Close(); err != nil {
			logger.Debug("Failed to close index: %v", err)
		}
	}()

	snippets, err := postIndex.Snippets(query, limit*2)
	if err != nil {
		logger.Debug("Snippet search failed: %v", err)
		return nil
	}
	return snippets
}

// printResults writes a human-readable result list
func printResults(w io.Writer, results []search.Result, total int, active bool, limit int, snippets map[string]string, siteURL string) {
	fmt.Fprintln(w, mutedStyle.Render(search.Summarize(total, results, active)))
	if len(results) == 0 {
		return
	}
	fmt.Fprintln(w)

	shown := results
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	for _, r := range shown {
		line := titleStyle.Render(r.Title)
		if r.HasDate() {
			line += " " + mutedStyle.Render(r.Date.Format(dayLayout))
		}
		if showScores && active {
			line += " " + mutedStyle.Render(fmt.Sprintf("[%.1f]", r.Score))
		}
		fmt.Fprintln(w, line)

		if len(r.Tags) > 0 {
			fmt.Fprintln(w, "  "+tagStyle.Render("#"+strings.Join(r.Tags, " #")))
		}
		if snippet := snippets[r.Slug]; snippet != "" {
			fmt.Fprintln(w, "  "+exampleStyle.Render(index.Truncate(snippet, snippetWidth)))
		} else if r.Summary != "" {
			fmt.Fprintln(w, "  "+index.Truncate(r.Summary, snippetWidth))
		}
		if siteURL != "" {
			fmt.Fprintln(w, "  "+urlStyle.Render(r.URL(siteURL)))
		}
	}

	if hidden := len(results) - len(shown); hidden > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("... and %d more (use --limit to show more)", hidden)))
	}
}

// jsonResult is one post in JSON output
type jsonResult struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Date    string   `json:"date,omitempty"`
	Author  string   `json:"author,omitempty"`
	URL     string   `json:"url,omitempty"`
	Score   float64  `json:"searchScore,omitempty"`
	Snippet string   `json:"snippet,omitempty"`
}

// jsonResponse is the JSON document printed by --json
type jsonResponse struct {
	Query   string       `json:"query"`
	Total   int          `json:"total"`
	Matched int          `json:"matched"`
	Summary string       `json:"summary"`
	Results []jsonResult `json:"results"`
}

// runJSON searches posts and writes the result as JSON
func runJSON(w io.Writer, posts []model.Post, query string, filters search.Filters, limit int, siteURL string) error {
	engine := search.NewEngine()
	logger.Debug("Scoring weights: %+v", engine.Scorer().Weights())

	results := engine.Search(posts, query, filters)
	active := search.IsActive(query, filters)
	snippets := lookupSnippets(posts, query, limit)

	capacity := len(results)
	if limit > 0 && limit < capacity {
		capacity = limit
	}

	resp := jsonResponse{
		Query:   query,
		Total:   len(posts),
		Matched: len(results),
		Summary: search.Summarize(len(posts), results, active),
		Results: make([]jsonResult, 0, capacity),
	}

	for i, r := range results {
		if limit > 0 && i >= limit {
			break
		}
		item := jsonResult{
			Slug:    r.Slug,
			Title:   r.Title,
			Summary: r.Summary,
			Tags:    r.Tags,
			Author:  r.Author,
			Score:   r.Score,
			Snippet: snippets[r.Slug],
		}
		if r.HasDate() {
			item.Date = r.Date.Format(dayLayout)
		}
		if siteURL != "" {
			item.URL = r.URL(siteURL)
		}
		resp.Results = append(resp.Results, item)
	}

	return outputJSON(w, resp)
}

// outputJSON writes v as indented JSON
func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
