package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lqtrung-95/my-new-blog/internal/content"
	"github.com/lqtrung-95/my-new-blog/internal/model"
)

var projectFilter string // Category or technology filter for the projects command

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List portfolio projects",
	Long: `List the projects from the projects file (content.projects_file, or
projects.yaml inside the posts directory).

Examples:
  blogsearch projects
  blogsearch projects --filter web
  blogsearch projects --filter typescript --json`,
	Args: cobra.NoArgs,
	RunE: runProjects,
}

func init() {
	projectsCmd.Flags().StringVarP(&projectFilter, "filter", "f", "", "only projects whose category or technology contains this text")
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	projects, err := content.LoadProjects(cfg.Content.ProjectsPath())
	if err != nil {
		return err
	}

	return writeProjects(os.Stdout, projects, projectFilter)
}

// writeProjects prints projects matching filter, as JSON when --json is set
func writeProjects(w io.Writer, projects []model.Project, filter string) error {
	matched := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if p.Matches(filter) {
			matched = append(matched, p)
		}
	}

	if jsonOutput {
		return outputJSON(w, matched)
	}

	if len(matched) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No projects found."))
		return nil
	}

	for _, p := range matched {
		fmt.Fprintln(w, titleStyle.Render(p.DisplayString()))
		if p.Description != "" {
			fmt.Fprintln(w, "  "+p.Description)
		}
		if len(p.Technologies) > 0 {
			fmt.Fprintln(w, "  "+tagStyle.Render(strings.Join(p.Technologies, ", ")))
		}
		if link := p.Link; link != "" {
			fmt.Fprintln(w, "  "+urlStyle.Render(link))
		} else if p.Href != "" {
			fmt.Fprintln(w, "  "+urlStyle.Render(p.Href))
		}
	}
	return nil
}
