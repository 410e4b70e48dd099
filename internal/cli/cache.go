package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cutrewrite/pkg/cache"
	"github.com/matzehuels/cutrewrite/pkg/pipeline"
)

// cacheDisabled is the cache configuration of commands that never cache.
var cacheDisabled = pipeline.CacheConfig{Disabled: true}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the optimisation result cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cc, err := c.newCache(cmd.Context(), cfg.Cache)
			if err != nil {
				return err
			}
			defer cc.Close()

			p := printer{cmd.OutOrStdout()}
			if _, ok := cc.(*cache.NullCache); ok {
				p.info("Cache is disabled")
				return nil
			}
			n, err := cc.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			p.success("Cleared %d cached results", n)
			if fc, ok := cc.(*cache.FileCache); ok {
				p.detail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir := cfg.Cache.Dir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
