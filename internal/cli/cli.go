// Package cli implements the tagplacer command-line interface.
//
// The CLI places annotation tags on scene files, previews spiral candidates,
// resolves single anchors, serves the HTTP API and manages the placement
// cache. It is built on cobra; settings come from the TOML config file and
// are overridden by flags.
//
// # Commands
//
//   - place: tag every feature of a category and move crowded tags
//   - spiral: print the candidate spiral around an anchor
//   - resolve: resolve one anchor against the features of a scene
//   - serve: run the HTTP API
//   - cache: clear or locate the placement cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// shared through the CLI struct and attached to the command context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagplacer/pkg/buildinfo"
	"github.com/matzehuels/tagplacer/pkg/cache"
	"github.com/matzehuels/tagplacer/pkg/config"
	"github.com/matzehuels/tagplacer/pkg/observability"
	"github.com/matzehuels/tagplacer/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "tagplacer"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config     config.Config
	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level. Debug logging also reports callers.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.Logger.SetReportCaller(level <= log.DebugLevel)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Tagplacer places annotation tags clear of the features they label",
		Long: `Tagplacer tags point features in a drawing (windows, by default) and moves
every tag whose anchor sits closer than the clearance distance to a feature.
Candidate positions are walked on a square spiral around the anchor; the
first crowded candidate is pushed out to exactly the clearance distance.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(log.WithContext(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tagplacer/config.toml)")

	// Register all subcommands
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.spiralCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file selected by --config.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner on the configured cache backend.
// At debug level, pipeline and API events are logged through the hooks.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	if c.Logger.GetLevel() <= log.DebugLevel {
		observability.Set(observability.LogHooks(c.Logger))
	}
	r := pipeline.NewRunner(store, c.newKeyer(), c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.Prefix,
		})
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newKeyer scopes cache keys when a scope is configured.
func (c *CLI) newKeyer() cache.Keyer {
	if scope := c.Config.Cache.Scope; scope != "" {
		return cache.NewScopedKeyer(nil, "project:"+scope+":")
	}
	return cache.NewDefaultKeyer()
}
