package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrConfigNotFound is returned when no configuration is found
var ErrConfigNotFound = errors.New("configuration not found")

const (
	defaultSiteURL         = "http://localhost:3000"
	defaultDebounceMs      = 300
	defaultSuggestionLimit = 5
	defaultMaxResults      = 10
	projectsFileName       = "projects.yaml"
)

// Config holds the application configuration
type Config struct {
	Site    SiteConfig    `mapstructure:"site" yaml:"site"`
	Content ContentConfig `mapstructure:"content" yaml:"content"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
}

// SiteConfig holds settings of the published blog
type SiteConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// ContentConfig holds where posts and projects are read from
type ContentConfig struct {
	Dir           string   `mapstructure:"dir" yaml:"dir"`
	ProjectsFile  string   `mapstructure:"projects_file" yaml:"projects_file,omitempty"`
	IncludeDrafts bool     `mapstructure:"include_drafts" yaml:"include_drafts"`
	Exclude       []string `mapstructure:"exclude" yaml:"exclude,omitempty"` // Slug patterns hidden from search
}

// SearchConfig holds search tuning
type SearchConfig struct {
	DebounceMs      int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
	SuggestionLimit int `mapstructure:"suggestion_limit" yaml:"suggestion_limit"`
	MaxResults      int `mapstructure:"max_results" yaml:"max_results"`
}

// Default returns a configuration with every default applied and no content directory
func Default() *Config {
	return &Config{
		Site: SiteConfig{URL: defaultSiteURL},
		Search: SearchConfig{
			DebounceMs:      defaultDebounceMs,
			SuggestionLimit: defaultSuggestionLimit,
			MaxResults:      defaultMaxResults,
		},
	}
}

// ConfigDir returns the directory holding the config file
func ConfigDir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "blogsearch")
}

// ConfigPath returns the path of the main config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(ConfigDir())
	viper.AddConfigPath(".") // Also check current directory

	// BLOGSEARCH_CONTENT_DIR maps to content.dir
	viper.SetEnvPrefix("BLOGSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("site.url", defaultSiteURL)
	viper.SetDefault("content.dir", "")
	viper.SetDefault("content.projects_file", "")
	viper.SetDefault("content.include_drafts", false)
	viper.SetDefault("search.debounce_ms", defaultDebounceMs)
	viper.SetDefault("search.suggestion_limit", defaultSuggestionLimit)
	viper.SetDefault("search.max_results", defaultMaxResults)

	// Try to read config file (it's okay if it doesn't exist)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Content.Dir == "" {
		return nil, ErrConfigNotFound
	}

	cfg.normalize()
	return &cfg, nil
}

// normalize expands paths and replaces out-of-range tuning values with defaults
func (c *Config) normalize() {
	c.Content.Dir = expandPath(c.Content.Dir)
	c.Content.ProjectsFile = expandPath(c.Content.ProjectsFile)
	c.Site.URL = strings.TrimRight(c.Site.URL, "/")

	if c.Search.DebounceMs < 0 {
		c.Search.DebounceMs = defaultDebounceMs
	}
	if c.Search.SuggestionLimit <= 0 {
		c.Search.SuggestionLimit = defaultSuggestionLimit
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = defaultMaxResults
	}
}

// WithContentDir returns a copy of c reading content from dir
func (c Config) WithContentDir(dir string) *Config {
	c.Content.Dir = dir
	c.normalize()
	return &c
}

// GetDebounce returns the query debounce as time.Duration
func (c *SearchConfig) GetDebounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// ProjectsPath returns the project listing path, defaulting to projects.yaml in the content directory
func (c *ContentConfig) ProjectsPath() string {
	if c.ProjectsFile != "" {
		return c.ProjectsFile
	}
	return filepath.Join(c.Dir, projectsFileName)
}

// IsExcluded checks if a post slug matches any excluded pattern
func (c *ContentConfig) IsExcluded(slug string) bool {
	for _, pattern := range c.Exclude {
		// Patterns ending with /* match everything below that prefix
		if prefix, ok := strings.CutSuffix(pattern, "/*"); ok && prefix != "" {
			if strings.HasPrefix(slug, prefix+"/") {
				return true
			}
			continue
		}
		if matched, err := filepath.Match(pattern, slug); err == nil && matched {
			return true
		}
	}
	return false
}

// expandPath expands ~ to home directory in paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home := os.Getenv("HOME")
		if len(path) == 1 {
			return home
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// EnsureConfigDir ensures the config directory exists
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}

// ExampleConfigPath returns the path where the example config should be created
func ExampleConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml.example")
}

// Save saves the current configuration to file
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("site.url", c.Site.URL)
	viper.Set("content.dir", c.Content.Dir)
	viper.Set("content.projects_file", c.Content.ProjectsFile)
	viper.Set("content.include_drafts", c.Content.IncludeDrafts)
	viper.Set("content.exclude", c.Content.Exclude)
	viper.Set("search.debounce_ms", c.Search.DebounceMs)
	viper.Set("search.suggestion_limit", c.Search.SuggestionLimit)
	viper.Set("search.max_results", c.Search.MaxResults)

	if err := viper.WriteConfigAs(ConfigPath()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateExampleConfig creates an example configuration file
func CreateExampleConfig() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	exampleConfig := `# blogsearch configuration file
# Place this file at ~/.config/blogsearch/config.yaml

site:
  # Base URL used to build post links (optional)
  url: "https://blog.example.com"

content:
  # Directory containing .md/.mdx posts with YAML front matter (required)
  dir: "~/code/my-blog/data/blog"

  # Project listing (optional, defaults to <dir>/projects.yaml)
  projects_file: "~/code/my-blog/data/projects.yaml"

  # Include posts marked draft: true
  include_drafts: false

  # Slugs hidden from search (supports wildcards)
  exclude:
  # - "archive/*"

search:
  # Quiet period after typing before results refresh, in milliseconds
  debounce_ms: 300
  suggestion_limit: 5
  max_results: 10

# Environment variables can also be used:
# BLOGSEARCH_CONTENT_DIR=~/code/my-blog/data/blog
# BLOGSEARCH_SITE_URL=https://blog.example.com
`

	return os.WriteFile(ExampleConfigPath(), []byte(exampleConfig), 0644)
}
