// Package cli implements the cloudscope command-line interface.
//
// This package provides commands for serving the graph API, exploring an
// inventory interactively in the terminal, exporting rendered graphs, and
// managing the persisted source list. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - serve: Run the HTTP API over a dataset session
//   - explore: Browse an inventory graph in the terminal
//   - export: Render an inventory to DOT or SVG
//   - sources: Manage the persisted source list
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cloudscope/cloudscope/pkg/buildinfo"
	"github.com/cloudscope/cloudscope/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "cloudscope"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "CloudScope explores a collected infrastructure inventory as a graph",
		Long:         `CloudScope builds a typed resource graph from collected inventory documents and lets you filter, search, and inspect it from the terminal, over HTTP, or as rendered exports.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/cloudscope/config.toml)")

	root.AddCommand(c.serveCommand(&configPath))
	root.AddCommand(c.exploreCommand(&configPath))
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.sourcesCommand(&configPath))
	root.AddCommand(c.completionCommand())

	return root
}

// newCache builds the export cache, falling back to a null cache when the
// cache directory is unavailable.
func newCache(disabled bool, dir string) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/cloudscope/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
