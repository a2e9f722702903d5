package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lqtrung-95/my-new-blog/internal/model"
	"github.com/lqtrung-95/my-new-blog/internal/search"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag with the number of posts using it",
	Long: `List the tags used across all posts, most used first.
Use the names with --tag to filter searches.`,
	Args: cobra.NoArgs,
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	posts, err := loadPosts(cfg)
	if err != nil {
		return err
	}

	return writeTags(os.Stdout, posts)
}

// tagCount is one row of the tag listing
type tagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// sortedTagCounts returns tag usage ordered by count, then name
func sortedTagCounts(posts []model.Post) []tagCount {
	counts := search.TagCounts(posts)
	rows := make([]tagCount, 0, len(counts))
	for tag, n := range counts {
		rows = append(rows, tagCount{Tag: tag, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Tag < rows[j].Tag
	})
	return rows
}

// writeTags prints the tag listing, as JSON when --json is set
func writeTags(w io.Writer, posts []model.Post) error {
	rows := sortedTagCounts(posts)

	if jsonOutput {
		return outputJSON(w, rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No tags found."))
		return nil
	}

	for _, row := range rows {
		fmt.Fprintf(w, "%s %s\n", tagStyle.Render(row.Tag), mutedStyle.Render(fmt.Sprintf("(%d)", row.Count)))
	}
	return nil
}
