package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagplacer/pkg/cache"
	"github.com/matzehuels/tagplacer/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the placement cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached placements",
		Long: `Remove all cached placements from the file cache.

Entries in a redis cache expire on their own and are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := newPrinter(cmd)
			switch c.Config.Cache.Backend {
			case config.BackendNone:
				ui.info("Caching is disabled")
				return nil
			case config.BackendRedis:
				ui.warn("Redis entries expire after %s; nothing cleared", c.Config.Cache.TTL.Duration)
				ui.detail("Server: %s", c.Config.Cache.RedisAddr)
				return nil
			}

			dir, err := c.Config.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			defer fc.Close()

			count, err := fc.Clear()
			if err != nil {
				return err
			}
			if count == 0 {
				ui.info("Cache is empty")
			} else {
				ui.success("Cleared %d cached entries", count)
			}
			ui.detail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached placements are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch c.Config.Cache.Backend {
			case config.BackendNone:
				newPrinter(cmd).info("Caching is disabled")
				return nil
			case config.BackendRedis:
				fmt.Fprintln(out, "redis://"+c.Config.Cache.RedisAddr)
				return nil
			}
			dir, err := c.Config.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(out, dir)
			return nil
		},
	}
}
