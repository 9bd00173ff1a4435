package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/apkg/pkg/cache"
)

// NewCacheCmd creates the cache command with subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the scratch area",
		Long:  "Inspect and clear downloaded bundles and extraction leftovers below <root>/tmp",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	var all, downloads, scratch bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the scratch area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			result, err := cache.NewManager(cfg.Layout()).Clean(cache.CleanOptions{
				All:       all,
				Downloads: downloads,
				Scratch:   scratch,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.TotalFreed == 0 {
				_, _ = fmt.Fprintln(out, "Nothing to clean.")
				return nil
			}
			_, _ = fmt.Fprintf(out, "Freed %s.\n", cache.FormatBytes(result.TotalFreed))
			if result.DownloadsFreed > 0 {
				_, _ = fmt.Fprintf(out, "- Downloads: %s\n", cache.FormatBytes(result.DownloadsFreed))
			}
			if result.ScratchFreed > 0 {
				_, _ = fmt.Fprintf(out, "- Scratch:   %s\n", cache.FormatBytes(result.ScratchFreed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Clean downloads and scratch files (default)")
	cmd.Flags().BoolVar(&downloads, "downloads", false, "Clean downloaded bundles only")
	cmd.Flags().BoolVar(&scratch, "scratch", false, "Clean extraction leftovers only")
	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show scratch area usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			info, err := cache.NewManager(cfg.Layout()).GetInfo()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Directory:  %s\nTotal:      %s\nDownloads:  %s (%d files)\nScratch:    %s (%d files)\n",
				info.Directory,
				cache.FormatBytes(info.TotalSize),
				cache.FormatBytes(info.DownloadSize), info.DownloadFiles,
				cache.FormatBytes(info.ScratchSize), info.ScratchFiles,
			)
			return nil
		},
	}
}
