// Package cli implements the cutrewrite command-line interface.
//
// The commands read BENCH or JSON netlists, optimise them with cut
// rewriting, and inspect the results:
//   - optimize: run rewriting passes and write the optimised netlist
//   - cleanup: remove dangling logic
//   - stats: print interface, gate count and depth
//   - dot: write a Graphviz drawing
//   - verify: prove two netlists equivalent
//   - cut: inspect the reconvergence-driven cut of a node
//   - cache: manage the result cache
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cutrewrite/pkg/buildinfo"
	"github.com/matzehuels/cutrewrite/pkg/cache"
	cerrors "github.com/matzehuels/cutrewrite/pkg/errors"
	nio "github.com/matzehuels/cutrewrite/pkg/io"
	"github.com/matzehuels/cutrewrite/pkg/io/bench"
	"github.com/matzehuels/cutrewrite/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "cutrewrite"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	redisAddr  string
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Cutrewrite optimises logic networks by cut rewriting",
		Long:         `Cutrewrite reads k-LUT netlists, replaces small cones of logic with cheaper equivalents found by resynthesis, and writes the optimised netlist.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "TOML configuration file")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the result cache")
	pf.StringVar(&c.redisAddr, "redis", "", "use the Redis result cache at this address")

	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.cleanupCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.cutCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// loadConfig reads the --config file, or returns the zero configuration.
func (c *CLI) loadConfig() (pipeline.Config, error) {
	if c.configPath == "" {
		return pipeline.Config{}, nil
	}
	return pipeline.LoadConfig(c.configPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg pipeline.CacheConfig) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache opens the cache selected by flags and configuration. Flags win.
// An unreachable Redis falls back to the file cache with a warning.
func (c *CLI) newCache(ctx context.Context, cfg pipeline.CacheConfig) (cache.Cache, error) {
	if c.noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	addr := cfg.RedisAddr
	if c.redisAddr != "" {
		addr = c.redisAddr
	}
	if addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr})
		if err == nil {
			return rc, nil
		}
		c.Logger.Warn("redis cache unavailable, using file cache", "err", err)
	}

	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeCache, err, "open cache %s", dir)
	}
	return fc, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/cutrewrite/).
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

// loadDesign validates path and reads the netlist.
func loadDesign(path string) (*bench.Design, error) {
	if err := cerrors.ValidateNetworkPath(path); err != nil {
		return nil, err
	}
	return nio.Load(path)
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
