// Package content loads blog posts and the project listing from a content directory
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"gopkg.in/yaml.v3"

	"github.com/lqtrung-95/my-new-blog/internal/index"
	"github.com/lqtrung-95/my-new-blog/internal/logger"
	"github.com/lqtrung-95/my-new-blog/internal/model"
)

// maxSummaryRunes bounds summaries derived from a post body
const maxSummaryRunes = 200

var (
	// ErrContentDirNotFound indicates the content directory does not exist
	ErrContentDirNotFound = errors.New("content directory not found")
	// ErrNoFrontMatter indicates a post file does not start with a YAML front matter block
	ErrNoFrontMatter = errors.New("missing front matter")
)

// dateLayouts are the accepted front matter date formats, tried in order
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// LoadOptions controls which posts are loaded
type LoadOptions struct {
	IncludeDrafts bool
	PoolSize      int // Worker count; defaults to the number of CPUs
}

// Loader reads posts from a directory of Markdown and MDX files
type Loader struct {
	dir string
}

// New creates a new Loader for dir
func New(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the content directory
func (l *Loader) Dir() string {
	return l.dir
}

// Exists checks if the content directory exists
func (l *Loader) Exists() bool {
	info, err := os.Stat(l.dir)
	return err == nil && info.IsDir()
}

// PostPaths returns every *.md and *.mdx file under the content directory, sorted
func (l *Loader) PostPaths() ([]string, error) {
	if !l.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrContentDirNotFound, l.dir)
	}

	var paths []string
	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".mdx":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan content directory: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadPosts parses all posts concurrently and returns them newest first
// Files that fail to parse are skipped with a warning; read errors abort the load
func (l *Loader) LoadPosts(opts LoadOptions) ([]model.Post, error) {
	paths, err := l.PostPaths()
	if err != nil {
		return nil, err
	}

	poolSize := opts.PoolSize
	if poolSize < 1 {
		poolSize = runtime.NumCPU()
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	type parsed struct {
		post model.Post
		ok   bool
	}

	results := make([]parsed, len(paths))
	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)

	for i, path := range paths {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			data, err := os.ReadFile(path)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to read %s: %w", path, err)
				}
				errMu.Unlock()
				return
			}

			post, err := ParsePost(l.slugFor(path), data)
			if err != nil {
				logger.Warn("Skipping %s: %v", path, err)
				return
			}
			results[i] = parsed{post: post, ok: true}
		})
		if submitErr != nil {
			wg.Done()
			return nil, fmt.Errorf("failed to schedule %s: %w", path, submitErr)
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	posts := make([]model.Post, 0, len(results))
	drafts := 0
	for _, r := range results {
		if !r.ok {
			continue
		}
		if r.post.Draft && !opts.IncludeDrafts {
			drafts++
			continue
		}
		posts = append(posts, r.post)
	}

	SortPosts(posts)

	logger.Debug("Loaded %d posts from %s (%d drafts skipped)", len(posts), l.dir, drafts)
	return posts, nil
}

// Stats returns the number of published posts
func (l *Loader) Stats() (int, error) {
	posts, err := l.LoadPosts(LoadOptions{})
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

// slugFor derives a slug from the file path relative to the content directory
func (l *Loader) slugFor(path string) string {
	rel, err := filepath.Rel(l.dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel)
}

// SortPosts orders posts newest first; undated posts go last and ties break on slug
func SortPosts(posts []model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.Slug < b.Slug
	})
}

// frontMatter is the YAML header of a post file
type frontMatter struct {
	Title   string   `yaml:"title"`
	Slug    string   `yaml:"slug"`
	Date    string   `yaml:"date"`
	Tags    []string `yaml:"tags"`
	Summary string   `yaml:"summary"`
	Authors []string `yaml:"authors"`
	Author  string   `yaml:"author"`
	Draft   bool     `yaml:"draft"`
}

// ParsePost builds a post from a file with YAML front matter
// The slug argument is used unless the front matter sets one
func ParsePost(slug string, data []byte) (model.Post, error) {
	header, body, err := splitFrontMatter(data)
	if err != nil {
		return model.Post{}, err
	}

	var fm frontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return model.Post{}, fmt.Errorf("failed to parse front matter: %w", err)
	}

	if fm.Slug != "" {
		slug = fm.Slug
	}

	post := model.Post{
		Slug:    slug,
		Title:   strings.TrimSpace(fm.Title),
		Summary: strings.TrimSpace(fm.Summary),
		Tags:    fm.Tags,
		Author:  fm.Author,
		Draft:   fm.Draft,
		Content: index.CleanMarkdown(string(body)),
	}

	if post.Title == "" {
		post.Title = slug
	}
	if len(fm.Authors) > 0 {
		post.Author = strings.Join(fm.Authors, ", ")
	}
	if post.Summary == "" {
		post.Summary = index.Excerpt(string(body), maxSummaryRunes)
	}

	if fm.Date != "" {
		date, ok := ParseDate(fm.Date)
		if !ok {
			logger.Debug("Post %s has unparseable date %q", slug, fm.Date)
		}
		post.Date = date
	}

	return post, nil
}

// ParseDate parses a front matter date; the zero time and false are returned when no layout fits
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// splitFrontMatter separates the leading --- delimited YAML block from the body
func splitFrontMatter(data []byte) (header, body []byte, err error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	if !bytes.HasPrefix(data, []byte("---\n")) {
		return nil, nil, ErrNoFrontMatter
	}
	rest := data[len("---\n"):]

	// Closing delimiter may be the last line of the file
	if bytes.HasPrefix(rest, []byte("---\n")) || bytes.Equal(rest, []byte("---")) {
		return nil, bytes.TrimPrefix(rest[3:], []byte("\n")), nil
	}

	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-len("\n---")], nil, nil
		}
		return nil, nil, fmt.Errorf("%w: unterminated block", ErrNoFrontMatter)
	}

	return rest[:end], rest[end+len("\n---\n"):], nil
}

// projectFile is the on-disk layout of the project listing
type projectFile struct {
	Projects []model.Project `yaml:"projects"`
}

// LoadProjects reads the YAML project listing at path
func LoadProjects(path string) ([]model.Project, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("projects file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read projects file: %w", err)
	}

	var pf projectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse projects file: %w", err)
	}

	return pf.Projects, nil
}

// WriteProjects writes the project listing to path as YAML
func WriteProjects(path string, projects []model.Project) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create projects directory: %w", err)
	}

	data, err := yaml.Marshal(projectFile{Projects: projects})
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write projects file: %w", err)
	}

	return nil
}
