package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/apkg/pkg/index"
)

// NewIndexCmd creates the index command with subcommands.
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Repository index tooling",
	}

	cmd.AddCommand(newIndexGenerateCmd())

	return cmd
}

func newIndexGenerateCmd() *cobra.Command {
	var (
		baseURL string
		osTag   string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "generate <source-dir> <output-file>",
		Short: "Generate a repository index from .apkg bundles",
		Long: `Generate a repository document from a directory containing .apkg bundles.

Every bundle found in the source directory and its subdirectories becomes one entry.
Entry URLs are the bundle paths relative to the source directory, joined onto --base-url.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogging()

			absSourceDir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("invalid source directory: %w", err)
			}
			absOutputFile, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("invalid output file: %w", err)
			}

			gen := index.NewGenerator(absSourceDir, absOutputFile, baseURL)
			gen.OS = osTag
			gen.ForceOverwrite = force

			idx, err := gen.Generate(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to generate index: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully generated index with %d packages at %s\n",
				len(idx.PackageList), absOutputFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "URL the source directory is served from (required)")
	cmd.Flags().StringVar(&osTag, "os", "", `Platform tag for every entry (default "any")`)
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing output file")
	_ = cmd.MarkFlagRequired("base-url")

	return cmd
}
