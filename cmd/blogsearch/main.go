package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lqtrung-95/my-new-blog/internal/config"
	"github.com/lqtrung-95/my-new-blog/internal/content"
	"github.com/lqtrung-95/my-new-blog/internal/history"
	"github.com/lqtrung-95/my-new-blog/internal/logger"
	"github.com/lqtrung-95/my-new-blog/internal/model"
	"github.com/lqtrung-95/my-new-blog/internal/search"
	"github.com/lqtrung-95/my-new-blog/internal/tui"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"     // Version from git tag or "dev"
	commit    = "unknown" // Git commit hash (used in version output)
	buildTime = "unknown" // Build timestamp (used in version output)
)

// Platform constants for runtime.GOOS
const (
	platformDarwin  = "darwin"
	platformLinux   = "linux"
	platformWindows = "windows"
)

var (
	verbose       bool     // Flag to enable verbose logging
	showScores    bool     // Flag to show relevance scores
	autoGo        bool     // Flag to automatically select first result and open in browser
	jsonOutput    bool     // Flag to print results as JSON
	includeDrafts bool     // Flag to include draft posts
	contentDir    string   // Overrides content.dir from config
	tagFlags      []string // Required tags (all must match)
	authorFlag    string   // Required author
	sinceFlag     string   // Earliest publication date, YYYY-MM-DD
	untilFlag     string   // Latest publication date, YYYY-MM-DD
	limitFlag     int      // Maximum results in direct output, 0 uses config
)

var rootCmd = &cobra.Command{
	Use:   "blogsearch [flags] [query...]",
	Short: "Blog Search - fuzzy search across your blog posts",
	Long: `blogsearch searches the Markdown posts of a blog by title, summary and tags.
Typos are tolerated, recent posts get a small boost, and results can be narrowed
by tag, author and publication date.

Getting Started:
  1. Run: blogsearch config (points blogsearch at your posts directory)
  2. Run: blogsearch (interactive mode) or blogsearch find <query> (direct search)

Examples:
  blogsearch                        # Interactive search
  blogsearch react hooks            # Interactive search starting with "react hooks"
  blogsearch find typescript        # Print matching posts
  blogsearch find --tag react       # Posts tagged react
  blogsearch --since 2024-01-01 go  # Posts about go published since 2024
  blogsearch --json docker          # Machine-readable results
  blogsearch -g nextjs              # Open the best match in the browser

Configuration:
  Set the posts directory in ~/.config/blogsearch/config.yaml or via environment:
    BLOGSEARCH_CONTENT_DIR=~/code/my-blog/data/blog
    BLOGSEARCH_SITE_URL=https://blog.example.com`,
	RunE: runSearch,
	// Accept any number of arguments as search query
	Args: cobra.ArbitraryArgs,
	// Don't suggest commands when args don't match subcommands
	SuggestionsMinimumDistance: 2,
}

// loadConfig loads the configuration, applying the --dir override
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("configuration error: %w", err)
		}
		if contentDir == "" {
			return nil, fmt.Errorf("no posts directory configured, run 'blogsearch config' or pass --dir: %w", err)
		}
		cfg = config.Default()
	}

	if contentDir != "" {
		cfg = cfg.WithContentDir(contentDir)
	}
	if includeDrafts {
		cfg.Content.IncludeDrafts = true
	}

	return cfg, nil
}

// loadPosts reads every post under the configured directory, minus excluded slugs
func loadPosts(cfg *config.Config) ([]model.Post, error) {
	loader := content.New(cfg.Content.Dir)
	if !loader.Exists() {
		return nil, fmt.Errorf("%w: %s", content.ErrContentDirNotFound, cfg.Content.Dir)
	}

	start := time.Now()
	posts, err := loader.LoadPosts(content.LoadOptions{IncludeDrafts: cfg.Content.IncludeDrafts})
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	kept := posts[:0]
	for _, post := range posts {
		if cfg.Content.IsExcluded(post.Slug) {
			logger.Debug("Excluded post: %s", post.Slug)
			continue
		}
		kept = append(kept, post)
	}

	logger.Debug("Loaded %d posts from %s in %v", len(kept), cfg.Content.Dir, time.Since(start))
	return kept, nil
}

// runSearch handles the default search behavior
func runSearch(cmd *cobra.Command, args []string) error {
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

	// Join all args to support multi-word queries: "blogsearch react hooks"
	query := strings.TrimSpace(strings.Join(args, " "))

	if jsonOutput {
		return runJSON(os.Stdout, posts, query, filters, resultLimit(cfg), cfg.Site.URL)
	}

	if autoGo {
		if query == "" && !filters.HasActive() {
			return fmt.Errorf("-g/--go requires a search query or filter")
		}
		return runAutoGo(posts, query, filters, cfg)
	}

	// Filters given on the command line print results directly
	if filters.HasActive() {
		return runFind(cmd, args)
	}

	return runInteractive(posts, query, cfg)
}

// resultLimit returns the --limit flag or the configured maximum
func resultLimit(cfg *config.Config) int {
	if limitFlag > 0 {
		return limitFlag
	}
	return cfg.Search.MaxResults
}

// runAutoGo opens the best match in the browser
func runAutoGo(posts []model.Post, query string, filters search.Filters, cfg *config.Config) error {
	if len(posts) == 0 {
		return fmt.Errorf("no posts found in %s", cfg.Content.Dir)
	}

	results := search.NewEngine().Search(posts, query, filters)
	if len(results) == 0 {
		return fmt.Errorf("no posts found for query: %s", query)
	}

	postURL := results[0].URL(cfg.Site.URL)

	logger.Debug("Opening browser with URL: %s", postURL)
	if err := openBrowser(postURL); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", err)
		logger.Debug("Browser open error: %v", err)
	} else {
		logger.Debug("Browser command executed successfully")
	}

	fmt.Println(postURL)
	return nil
}

// openBrowser opens the given URL in the default browser (cross-platform)
func openBrowser(url string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case platformDarwin: // macOS
		cmd = exec.CommandContext(ctx, "open", url)
	case platformLinux:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	case platformWindows:
		// Empty string before URL is important: start interprets first quoted arg as window title
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Run()
}

// runInteractive launches the interactive TUI with optional initial query
func runInteractive(posts []model.Post, initialQuery string, cfg *config.Config) error {
	if len(posts) == 0 {
		fmt.Printf("No posts found in %s.\n", cfg.Content.Dir)
		return nil
	}

	// Snippet index is optional: search works without it
	snippets := &snippetSource{}
	snippets.rebuild(posts)
	defer snippets.close()

	engine := search.NewEngine()
	logger.Debug("Scoring weights: %+v", engine.Scorer().Weights())

	m := tui.New(posts, tui.Options{
		Engine:          engine,
		Analytics:       history.New(),
		Debounce:        cfg.Search.GetDebounce(),
		SuggestionLimit: cfg.Search.SuggestionLimit,
		MaxResults:      cfg.Search.MaxResults,
		InitialQuery:    initialQuery,
		SiteURL:         cfg.Site.URL,
		Version:         version,
		ShowScores:      showScores,
		Snippets:        snippets.lookup,
		Reload:          reloadFunc(cfg, snippets),
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if final, ok := finalModel.(tui.Model); ok {
		if post, selected := final.Selected(); selected {
			postURL := post.URL(cfg.Site.URL)

			logger.Debug("Opening browser with URL: %s", postURL)
			if err := openBrowser(postURL); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", err)
				logger.Debug("Browser open error: %v", err)
			}

			// Output URL to stdout (for copying or script usage)
			fmt.Println(postURL)
		}
	}

	return nil
}

// reloadFunc rereads the content directory and rebuilds the snippet index
func reloadFunc(cfg *config.Config, snippets *snippetSource) func() ([]model.Post, error) {
	return func() ([]model.Post, error) {
		posts, err := loadPosts(cfg)
		if err != nil {
			return nil, err
		}
		snippets.rebuild(posts)
		return posts, nil
	}
}

func init() {
	// Set version info
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&contentDir, "dir", "d", "", "posts directory (overrides content.dir)")
	rootCmd.PersistentFlags().BoolVar(&includeDrafts, "drafts", false, "include draft posts")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().IntVarP(&limitFlag, "limit", "n", 0, "maximum number of results (default from config)")

	addFilterFlags(rootCmd)
	rootCmd.Flags().BoolVar(&showScores, "scores", false, "show relevance scores")
	rootCmd.Flags().BoolVarP(&autoGo, "go", "g", false, "auto-select first result and open in browser")

	// Set up verbose mode before command execution
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
		logger.Debug("Verbose mode enabled")
	}
}

// addFilterFlags registers the post filter flags on cmd
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&tagFlags, "tag", "t", nil, "require tag (repeatable, all must match)")
	cmd.Flags().StringVarP(&authorFlag, "author", "a", "", "require author")
	cmd.Flags().StringVar(&sinceFlag, "since", "", "published on or after date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&untilFlag, "until", "", "published on or before date (YYYY-MM-DD)")
}

func main() {
	// Enable interspersed flags (flags can appear anywhere in the command line)
	rootCmd.Flags().SetInterspersed(true)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
