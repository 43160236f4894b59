// Package cli implements the geomech command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/geomech/pkg/archive"
	"github.com/matzehuels/geomech/pkg/buildinfo"
	"github.com/matzehuels/geomech/pkg/cache"
	"github.com/matzehuels/geomech/pkg/config"
	"github.com/matzehuels/geomech/pkg/tools"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "geomech"

	// resultScope prefixes cache keys. Bump it when tool responses change
	// shape.
	resultScope = "v1:"
)

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
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	info := buildinfo.Get()
	root := &cobra.Command{
		Use:   appName,
		Short: "Geomech estimates in-situ stress and wellbore stability",
		Long: `Geomech is a geomechanics calculator for well planning. It estimates
in-situ stresses and pore pressure, evaluates rock failure and wellbore
stability, and derives safe mud weight windows.

Every calculation is a named tool that takes a JSON request. Run tools
one at a time with "geomech run", chain them with "geomech scenario",
or serve them over HTTP with "geomech serve".`,
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(info.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default: search "+config.EnvConfig+", ./"+config.LocalFile+", ~/.config/"+appName+")")

	root.AddCommand(c.toolsCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.scenarioCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration and applies its log level. --verbose
// wins over the configured level.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner opens the configured cache and archive and returns a tool runner
// over them. The returned func closes both backends.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*tools.Runner, func(), error) {
	remote := c.Config.Cache.Backend == config.BackendRedis || c.Config.Archive.Backend == config.BackendMongo
	var spin *Spinner
	if remote && !noCache {
		spin = newSpinnerWithContext(ctx, os.Stderr, "Connecting to backends...")
		spin.Start()
	}
	stop := func() {
		if spin != nil {
			spin.Stop()
		}
	}

	rc, err := c.Config.Cache.Open(ctx, noCache)
	if err != nil {
		stop()
		return nil, nil, err
	}
	store, err := c.Config.Archive.Open(ctx)
	if err != nil {
		stop()
		rc.Close()
		return nil, nil, err
	}
	stop()

	c.Logger.Debug("backends ready", "cache", c.Config.Cache.Backend, "archive", c.Config.Archive.Backend, "no_cache", noCache)
	runner := tools.NewRunner(nil, rc, cache.NewScopedKeyer(nil, resultScope), store, c.Logger)
	runner.TTL = c.Config.Cache.TTL.Duration

	closeFn := func() {
		if err := rc.Close(); err != nil {
			c.Logger.Warn("close cache", "err", err)
		}
		if err := store.Close(); err != nil {
			c.Logger.Warn("close archive", "err", err)
		}
	}
	return runner, closeFn, nil
}

// openArchive opens the configured run archive on its own.
func (c *CLI) openArchive(ctx context.Context) (archive.Store, error) {
	return c.Config.Archive.Open(ctx)
}
