package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewAvailableCmd creates the available command.
func NewAvailableCmd() *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:     "available [PATTERN]",
		Aliases: []string{"search"},
		Short:   "List packages offered by the repositories",
		Long: `List the packages offered by the configured repositories, in repository order.

An optional PATTERN keeps only names containing it. Unreachable repositories produce an
empty list; run "apkg reload" to see the error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}
			return runAvailable(cmd, pattern, details)
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "Show the platform tag and URL of every entry")

	return cmd
}

func runAvailable(cmd *cobra.Command, pattern string, details bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	im := loadIndexManager(cfg)
	out := cmd.OutOrStdout()

	names := im.ListAvailableNames(cmd.Context())
	if !details {
		for _, name := range names {
			if strings.Contains(name, pattern) {
				_, _ = fmt.Fprintln(out, name)
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PACKAGE\tOS\tURL")
	for _, e := range im.Entries() {
		if strings.Contains(e.Name, pattern) {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.OS, e.URL)
		}
	}
	return tw.Flush()
}
