package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var (
		nameFilter string
		showFiles  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Long: `List all installed packages from the local registry.

Use --name to filter packages by name and --files to print the files each package owns.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, nameFilter, showFiles)
		},
	}

	cmd.Flags().StringVar(&nameFilter, "name", "", "Filter packages by name (partial match)")
	cmd.Flags().BoolVar(&showFiles, "files", false, "Show owned files")

	return cmd
}

func runList(cmd *cobra.Command, nameFilter string, showFiles bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg := loadRegistry(cfg)

	names, err := reg.ListPackages()
	if err != nil {
		return fmt.Errorf("failed to read installed registry: %w", err)
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, TabWidth, ' ', 0)
	printed := 0
	for _, name := range names {
		if nameFilter != "" && !strings.Contains(name, nameFilter) {
			continue
		}
		rec, err := reg.Get(name)
		if err != nil {
			return err
		}
		if printed == 0 {
			_, _ = fmt.Fprintln(tw, "PACKAGE\tVERSION\tFILES")
		}
		printed++
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", rec.Name, rec.Version, len(rec.Files))
		if showFiles {
			for _, f := range rec.Files {
				_, _ = fmt.Fprintf(tw, "  %s\t\t\n", f)
			}
		}
	}
	_ = tw.Flush()

	if printed == 0 {
		_, _ = fmt.Fprintln(out, "No packages installed")
	}
	return nil
}
