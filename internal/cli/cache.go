package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/galdraw/pkg/cache"
	"github.com/matzehuels/galdraw/pkg/errors"
)

// cacheCommand groups maintenance of the local file cache. The Redis cache
// used by "serve" expires on its own.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local layout and artifact cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every cached layout and artifact",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return clearCache() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := localCacheDir()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
				return err
			},
		},
	)
	return cmd
}

func clearCache() error {
	dir, err := localCacheDir()
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return err
	}
	printSuccess("Cleared %d cached entries", n)
	printDetail("Directory: %s", dir)
	return nil
}

func localCacheDir() (string, error) {
	dir, err := cacheDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "locate cache directory")
	}
	return dir, nil
}
