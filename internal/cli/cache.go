package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geomech/pkg/cache"
	"github.com/matzehuels/geomech/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
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
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if c.Config.Cache.Backend == config.BackendNone {
				printInfo(out, "Caching is disabled")
				return nil
			}
			rc, err := c.Config.Cache.Open(ctx, false)
			if err != nil {
				return err
			}
			defer rc.Close()

			clearer, ok := rc.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%s cache cannot be cleared", c.Config.Cache.Backend)
			}
			n, err := clearer.Clear(ctx)
			if err != nil {
				return err
			}
			printSuccess(out, "Cleared %d cached results", n)
			printDetail(out, "%s", cacheLocation(c.Config.Cache))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where results are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(c.Config.Cache))
			return nil
		},
	}
}

// cacheLocation describes the configured cache: a directory for the file
// backend, a redis URL with key prefix otherwise.
func cacheLocation(cfg config.Cache) string {
	switch cfg.Backend {
	case config.BackendNone:
		return "none"
	case config.BackendRedis:
		return fmt.Sprintf("redis://%s/%d %s*", cfg.RedisAddr, cfg.RedisDB, cfg.RedisPrefix)
	}
	if cfg.Dir != "" {
		return cfg.Dir
	}
	return cache.DefaultDir()
}
