package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewReloadCmd creates the reload command.
func NewReloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reload",
		Aliases: []string{"sync"},
		Short:   "Fetch every configured repository",
		Long: `Download and parse every repository listed in var/apkg/repos.

The command fails, naming the repository, if any of them cannot be fetched or parsed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			im := loadIndexManager(cfg)
			if err := im.Reload(cmd.Context()); err != nil {
				return fmt.Errorf("failed to reload repositories: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d packages available\n", len(im.Entries()))
			return nil
		},
	}

	return cmd
}

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve PACKAGE",
		Short: "Print the download URL a package resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			url, err := loadIndexManager(cfg).Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	return cmd
}
