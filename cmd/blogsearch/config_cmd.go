package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lqtrung-95/my-new-blog/internal/config"
	"github.com/lqtrung-95/my-new-blog/internal/content"
)

var writeExample bool // Flag to write the commented example config instead of running the wizard

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure the posts directory and site URL",
	Long: `Interactive configuration wizard to set up where posts are read from.
Creates or updates the configuration file at ~/.config/blogsearch/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&writeExample, "example", false, "write a commented example config next to the real one")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	if writeExample {
		if err := config.CreateExampleConfig(); err != nil {
			return fmt.Errorf("failed to write example config: %w", err)
		}
		printSuccess(os.Stdout, "Example configuration written to "+config.ExampleConfigPath())
		return nil
	}

	return runConfigWizard(os.Stdin, os.Stdout)
}

// runConfigWizard asks for each setting, keeping existing values on empty input
func runConfigWizard(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	printLogo(out, version)
	printTitle(out, "Configuration Wizard")

	// Load existing config if available
	existing, err := config.Load()
	if err != nil {
		existing = config.Default()
	}

	dir, err := ask(reader, out, "Posts directory", existing.Content.Dir)
	if err != nil {
		return err
	}
	if dir == "" {
		return fmt.Errorf("posts directory is required")
	}

	siteURL, err := ask(reader, out, "Site URL", existing.Site.URL)
	if err != nil {
		return err
	}

	drafts := "n"
	if existing.Content.IncludeDrafts {
		drafts = "y"
	}
	drafts, err = ask(reader, out, "Include drafts (y/n)", drafts)
	if err != nil {
		return err
	}

	cfg := existing.WithContentDir(dir)
	cfg.Site.URL = strings.TrimRight(siteURL, "/")
	cfg.Content.IncludeDrafts = strings.HasPrefix(strings.ToLower(drafts), "y")

	// Check the directory before saving
	fmt.Fprintf(out, "\nChecking %s...\n", cfg.Content.Dir)
	loader := content.New(cfg.Content.Dir)
	if !loader.Exists() {
		return fmt.Errorf("%w: %s", content.ErrContentDirNotFound, cfg.Content.Dir)
	}
	count, err := loader.Stats()
	if err != nil {
		return fmt.Errorf("failed to scan posts directory: %w", err)
	}
	if count == 0 {
		printWarning(out, "No published posts found in "+cfg.Content.Dir)
	} else {
		printSuccess(out, fmt.Sprintf("Found %d published posts", count))
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	printSuccess(out, "Configuration saved to "+config.ConfigPath())
	printMuted(out, "You can now run 'blogsearch' to search your posts.")

	return nil
}

// ask prints a prompt with the current value and reads one line
// An empty answer keeps current
func ask(reader *bufio.Reader, out io.Writer, label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt += " [" + current + "]"
	}
	printPrompt(out, prompt+": ")

	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	if answer := strings.TrimSpace(line); answer != "" {
		return answer, nil
	}
	return current, nil
}
