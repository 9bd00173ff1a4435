package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove PACKAGE...",
		Aliases: []string{"uninstall"},
		Short:   "Remove installed packages",
		Long: `Remove installed packages and every file they own.

Files that were already deleted by hand are skipped. Directories left empty by the
removal are deleted too, up to the install root, including ones that existed before the
package was installed. If a file cannot be deleted the
package stays registered, so the command can simply be run again.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			orch := loadOrchestrator(cfg, nil, progressHooks(cmd.OutOrStdout()))
			for _, name := range args {
				if err := orch.Remove(cmd.Context(), name); err != nil {
					return fmt.Errorf("failed to remove %s: %w", name, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s removed\n", name)
			}
			return nil
		},
	}

	return cmd
}
