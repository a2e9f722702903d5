package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lqtrung-95/my-new-blog/internal/content"
	"github.com/lqtrung-95/my-new-blog/internal/index"
	"github.com/lqtrung-95/my-new-blog/internal/model"
)

// demoPost is a post written to disk with its age relative to today
type demoPost struct {
	slug    string
	title   string
	summary string
	tags    []string
	author  string
	daysAgo int
	draft   bool
	body    string
}

// demoFrontMatter is the YAML header written for each post
type demoFrontMatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Tags    []string `yaml:"tags,omitempty"`
	Summary string   `yaml:"summary,omitempty"`
	Authors []string `yaml:"authors,omitempty"`
	Draft   bool     `yaml:"draft,omitempty"`
}

func main() {
	// Create demo content directory in demo/data/blog
	demoDir := "demo/data/blog"
	if err := os.MkdirAll(demoDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create demo dir: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating fake data in: %s\n", demoDir)

	posts := []demoPost{
		{
			slug:    "react-hooks-guide",
			title:   "A Practical Guide to React Hooks",
			summary: "useState, useEffect and custom hooks explained with real components",
			tags:    []string{"react", "hooks", "frontend"},
			author:  "Trung Le",
			daysAgo: 3,
			body:    "Hooks let function components hold state.\n\n## useEffect\n\nEffects run after render. Clean up subscriptions in the returned function.\n\n```tsx\nuseEffect(() => subscribe(), [])\n```\n",
		},
		{
			slug:    "typescript-generics",
			title:   "TypeScript Generics Without Tears",
			summary: "Constraints, inference and conditional types for everyday code",
			tags:    []string{"typescript", "types"},
			author:  "Trung Le",
			daysAgo: 12,
			body:    "Generics describe relationships between inputs and outputs.\n\nA constraint such as `T extends string` narrows what callers may pass.\n",
		},
		{
			slug:    "nextjs-app-router",
			title:   "Migrating to the Next.js App Router",
			summary: "Layouts, server components and data fetching after the move from pages",
			tags:    []string{"nextjs", "react", "frontend"},
			author:  "Trung Le",
			daysAgo: 40,
			body:    "The app directory introduces nested layouts.\n\nServer components fetch data directly and stream HTML to the browser.\n",
		},
		{
			slug:    "docker-compose-dev",
			title:   "Local Development with Docker Compose",
			summary: "One command to start the database, cache and API together",
			tags:    []string{"docker", "devops"},
			author:  "Guest Writer",
			daysAgo: 95,
			body:    "Compose files describe services, networks and volumes.\n\n- postgres for data\n- redis for sessions\n- the api itself\n",
		},
		{
			slug:    "go-concurrency-patterns",
			title:   "Go Concurrency Patterns",
			summary: "Worker pools, fan-out and cancellation with context",
			tags:    []string{"go", "concurrency", "backend"},
			author:  "Trung Le",
			daysAgo: 160,
			body:    "Goroutines are cheap. Channels connect them.\n\nA worker pool bounds parallelism while a context cancels outstanding work.\n",
		},
		{
			slug:    "postgres-indexing",
			title:   "PostgreSQL Indexing Basics",
			summary: "B-tree, GIN and partial indexes and when each one helps",
			tags:    []string{"postgres", "database", "backend"},
			author:  "Guest Writer",
			daysAgo: 240,
			body:    "EXPLAIN ANALYZE shows whether the planner uses an index.\n\nPartial indexes keep hot rows small.\n",
		},
		{
			slug:    "css-grid-layouts",
			title:   "Responsive Layouts with CSS Grid",
			summary: "Template areas and auto-fit columns for real pages",
			tags:    []string{"css", "frontend"},
			author:  "Trung Le",
			daysAgo: 400,
			body:    "Grid handles two dimensions at once.\n\nUse minmax with auto-fit for cards that wrap naturally.\n",
		},
		{
			slug:    "tailwind-design-tokens",
			title:   "Design Tokens in Tailwind",
			summary: "Sharing colors and spacing between Figma and code",
			tags:    []string{"css", "tailwind", "design"},
			author:  "Trung Le",
			daysAgo: 2,
			draft:   true,
			body:    "Work in progress.\n",
		},
	}

	now := time.Now()
	for _, p := range posts {
		fm := demoFrontMatter{
			Title:   p.title,
			Date:    now.AddDate(0, 0, -p.daysAgo).Format("2006-01-02"),
			Tags:    p.tags,
			Summary: p.summary,
			Authors: []string{p.author},
			Draft:   p.draft,
		}
		header, err := yaml.Marshal(fm)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode front matter for %s: %v\n", p.slug, err)
			os.Exit(1)
		}

		var b strings.Builder
		b.WriteString("---\n")
		b.Write(header)
		b.WriteString("---\n\n")
		b.WriteString(p.body)

		path := filepath.Join(demoDir, p.slug+".mdx")
		if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write post: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("✓ Created %d posts\n", len(posts))

	projects := []model.Project{
		{
			Title:        "my-new-blog",
			Description:  "Personal blog built with Next.js and MDX",
			Technologies: []string{"Next.js", "TypeScript", "Tailwind CSS"},
			Category:     "Web",
			Status:       "Live",
			Role:         "Author",
			Href:         "/",
		},
		{
			Title:        "blogsearch",
			Description:  "Terminal search for the blog's posts",
			Technologies: []string{"Go", "Bubble Tea"},
			Category:     "Tools",
			Status:       "Active",
			Highlights:   []string{"Typo-tolerant ranking", "Debounced interactive search"},
		},
		{
			Title:        "habit-tracker",
			Description:  "Mobile app for building daily routines",
			Technologies: []string{"React Native", "Expo"},
			Category:     "Mobile",
			Status:       "Archived",
			Link:         "https://example.com/habit-tracker",
		},
	}

	projectsPath := filepath.Join(demoDir, "projects.yaml")
	if err := content.WriteProjects(projectsPath, projects); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write projects: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Created projects listing (%d projects)\n", len(projects))

	// Read everything back the way blogsearch does
	loaded, err := content.New(demoDir).LoadPosts(content.LoadOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load demo posts: %v\n", err)
		os.Exit(1)
	}

	postIndex, err := index.NewPostIndex(loaded)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to index demo posts: %v\n", err)
		os.Exit(1)
	}
	defer postIndex.Close()

	count, err := postIndex.Count()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to count indexed posts: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Verified %d published posts (%d indexed)\n", len(loaded), count)

	fmt.Printf("\n✅ Demo data generated successfully!\n\n")
	fmt.Printf("To search the demo posts:\n")
	fmt.Printf("  blogsearch --dir %s\n\n", demoDir)
	fmt.Printf("Demo directory: %s\n", demoDir)
}
