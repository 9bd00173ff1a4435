package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/apkg/internal/cli"
)

var (
	rootDir    string
	configPath string
	verbose    bool
	noColor    bool
	assumeYes  bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apkg",
		Short: "A small local package manager",
		Long: `apkg installs packages from .apkg bundles into an install root and keeps track of
which package owns which file.

- install, remove, list: manage installed packages
- repo, reload, available, resolve: work with repository indexes
- pack, index generate: build bundles and repositories`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&rootDir, "root", "", "install root (default: root_dir from the config, or the working directory)")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: <root>/var/apkg/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to every confirmation")

	// Set up CLI package variables
	cli.RootDir = &rootDir
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor
	cli.AssumeYes = &assumeYes

	cmd.AddCommand(
		cli.NewInstallCmd(),
		cli.NewRemoveCmd(),
		cli.NewListCmd(),
		cli.NewAvailableCmd(),
		cli.NewReloadCmd(),
		cli.NewResolveCmd(),
		cli.NewRepoCmd(),
		cli.NewConfigCmd(),
		cli.NewPackCmd(),
		cli.NewIndexCmd(),
		cli.NewCacheCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
