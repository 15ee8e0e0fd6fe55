// Package cli implements the reqcheck command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/reqcheck/internal/config"
	"github.com/matzehuels/reqcheck/pkg/buildinfo"
	"github.com/matzehuels/reqcheck/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "reqcheck"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string // --config override, empty for the default location
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command. The root itself runs the
// compatibility check; cache and completion are subcommands.
func (c *CLI) RootCommand() *cobra.Command {
	opts := defaultCheckOptions()

	root := &cobra.Command{
		Use:   appName + " [flags]",
		Short: "Check requirements pins for Python version compatibility",
		Long: `Reqcheck parses requirements files (name==version pins) and asks PyPI
which interpreter versions each pinned release declares support for,
reporting compatibility against a target Python version.

With no --files argument, reqcheck reads piped input (e.g. pip freeze)
or falls back to ./requirements.txt.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd, opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.Flags().StringSliceVarP(&opts.files, "files", "f", nil, "requirements file(s) to check")
	root.Flags().StringVarP(&opts.python, "python", "p", "", "Python version to check against, e.g. 3.11 (default from config or "+defaultPythonHelp+")")
	root.Flags().BoolVarP(&opts.strict, "error", "e", false, "terminate with a non-zero exit on the first warning or error")
	root.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the response cache")
	root.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the response cache entirely")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/reqcheck/config.toml)")

	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file, honoring the --config override.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			c.Logger.Debugf("Config path unavailable: %v", err)
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// newCache builds the cache backend selected by config and flags.
// Backend failures degrade to a null cache rather than failing the check.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) cache.Cache {
	if noCache || cfg.Cache.Backend == "none" {
		return cache.NewNullCache()
	}

	if cfg.Cache.Backend == "redis" {
		backend, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, appName+":")
		if err != nil {
			c.Logger.Warnf("Redis cache unavailable (%v), falling back to file cache", err)
		} else {
			return backend
		}
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	backend, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debugf("File cache unavailable: %v", err)
		return cache.NewNullCache()
	}
	return backend
}

// cacheDir returns the cache directory using XDG standard (~/.cache/reqcheck/).
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
