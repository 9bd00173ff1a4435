package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/apkg/pkg/artifact"
)

// NewPackCmd creates the pack command.
func NewPackCmd() *cobra.Command {
	var (
		sourceDir   string
		outputDir   string
		pkgName     string
		pkgVer      string
		maintainer  string
		description string
		homepage    string
		hooks       map[string]string
	)

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Create a package bundle",
		Long: `Create an .apkg bundle from a source directory laid out like the install root.

Every file becomes part of the package, except tengo scripts below hooks/, which
only run during installation (see --hook).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			initLogging()
			p := artifact.NewPacker(pkgName, pkgVer, maintainer, description, homepage, hooks, sourceDir, outputDir)
			out, err := p.Pack(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to create bundle: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceDir, "source", "s", ".", "Source directory containing the package files")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Output directory for the created bundle")
	cmd.Flags().StringVarP(&pkgName, "name", "n", "", "Package name (required)")
	cmd.Flags().StringVar(&pkgVer, "version", "", "Package version (required)")
	cmd.Flags().StringVarP(&maintainer, "maintainer", "m", "", "Package maintainer")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Package description")
	cmd.Flags().StringVar(&homepage, "homepage", "", "Project homepage")
	cmd.Flags().StringToStringVar(&hooks, "hook", nil, "Hook script, e.g. post-install=hooks/setup.tengo")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}
