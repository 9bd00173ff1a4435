package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/index"
)

// NewRepoCmd creates the repo command with subcommands.
func NewRepoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage repositories",
		Long:  "Add, remove and list the repository URLs in var/apkg/repos",
	}

	cmd.AddCommand(
		newRepoAddCmd(),
		newRepoRemoveCmd(),
		newRepoListCmd(),
	)

	return cmd
}

func newRepoAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add URL",
		Short: "Add a repository",
		Long:  "Append a repository index URL. Repositories listed first win when several offer a package.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			added, err := index.AddRepository(cfg.Layout().ReposFile(), args[0])
			if err != nil {
				return err
			}
			if !added {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is already configured\n", args[0])
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", args[0])
			return nil
		},
	}
}

func newRepoRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove URL",
		Short: "Remove a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			removed, err := index.RemoveRepository(cfg.Layout().ReposFile(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("repository %s is not configured", args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}

func newRepoListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			urls, err := index.ReadRepositoryList(cfg.Layout().ReposFile())
			if errors.Is(err, apkgErrors.ErrConfigMissing) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No repositories configured")
				return nil
			}
			if err != nil {
				return err
			}
			for i, u := range urls {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i+1, u)
			}
			return nil
		},
	}
}
