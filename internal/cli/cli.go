// Package cli implements the filemerge command-line interface.
//
// The main commands are:
//   - merge: combine images or text files into a single output
//   - info, collect, backup: inspect and organize input files
//   - settings, cache, history: manage persistent state
//   - serve: expose the merge engine over HTTP
//
// Commands support --verbose (-v) for debug logging and --quiet (-q) to
// keep only errors. Running filemerge without a subcommand on a terminal
// opens an interactive menu.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/filemerge/filemerge/pkg/cache"
	"github.com/filemerge/filemerge/pkg/pipeline"
	"github.com/filemerge/filemerge/pkg/settings"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "filemerge"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

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

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg settings.GeneralSettings, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache selects the cache backend from settings. A broken cache never
// blocks a merge: unreachable Redis falls back to the file cache, and an
// unusable cache directory falls back to no caching at all.
func (c *CLI) newCache(ctx context.Context, cfg settings.GeneralSettings, noCache bool) (cache.Cache, error) {
	if noCache || !cfg.Cache {
		return cache.NewNullCache(), nil
	}
	if cfg.CacheBackend == "redis" {
		store, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr})
		if err == nil {
			return store, nil
		}
		c.Logger.Warn("Redis cache unavailable, using file cache", "addr", cfg.RedisAddr, "err", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Settings
// =============================================================================

// loadSettings reads the settings file. A missing or unreadable file yields
// the built-in defaults with a warning, so merges keep working.
func (c *CLI) loadSettings() settings.Settings {
	mgr, err := settings.NewManager("")
	if err != nil {
		c.Logger.Warn("Settings unavailable, using defaults", "err", err)
		return settings.Default()
	}
	cfg, err := mgr.Load()
	if err != nil {
		c.Logger.Warn("Could not read settings, using defaults", "path", mgr.Path(), "err", err)
		return settings.Default()
	}
	return cfg
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/filemerge/).
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
