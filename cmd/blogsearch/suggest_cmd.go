package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lqtrung-95/my-new-blog/internal/model"
	"github.com/lqtrung-95/my-new-blog/internal/search"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <query...>",
	Short: "Print autocomplete suggestions for a partial query",
	Long: `Print titles, tags and summary words containing the query, one per line.
Queries shorter than two characters produce no suggestions.

Examples:
  blogsearch suggest rea
  blogsearch suggest --limit 10 type`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	posts, err := loadPosts(cfg)
	if err != nil {
		return err
	}

	limit := cfg.Search.SuggestionLimit
	if limitFlag > 0 {
		limit = limitFlag
	}

	return writeSuggestions(os.Stdout, posts, strings.Join(args, " "), limit)
}

// writeSuggestions prints suggestions for query, as JSON when --json is set
func writeSuggestions(w io.Writer, posts []model.Post, query string, limit int) error {
	suggestions := search.Suggest(posts, query, limit)

	if jsonOutput {
		return outputJSON(w, suggestions)
	}

	for _, s := range suggestions {
		fmt.Fprintln(w, s)
	}
	return nil
}
