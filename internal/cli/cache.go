package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgraph/pkg/cache"
	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
)

// cacheCommand creates the render cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
		Long: `Manage the render cache. Rendered SVGs are cached by the hash of their
DOT source, so re-rendering an unchanged graph skips Graphviz.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return rgerrors.Wrap(rgerrors.ErrCodeInvalidPath, err, "get cache dir")
			}
			n, err := cache.Clear(dir)
			if err != nil {
				return rgerrors.Wrap(rgerrors.ErrCodeStorage, err, "clear cache")
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached %s", n, plural(n, "render", "renders"))
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location and usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return rgerrors.Wrap(rgerrors.ErrCodeInvalidPath, err, "get cache dir")
			}
			n, size, err := cache.Usage(dir)
			if err != nil {
				return rgerrors.Wrap(rgerrors.ErrCodeStorage, err, "read cache")
			}
			printKeyValue("Directory", dir)
			printKeyValue("Entries", fmt.Sprint(n))
			printKeyValue("Size", formatBytes(size))
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
			dir, err := cacheDir()
			if err != nil {
				return rgerrors.Wrap(rgerrors.ErrCodeInvalidPath, err, "get cache dir")
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// formatBytes renders n with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
