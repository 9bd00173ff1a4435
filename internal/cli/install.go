package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/apkg/pkg/artifact"
	"github.com/glorpus-work/apkg/pkg/orchestrator"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var keepDownload bool

	cmd := &cobra.Command{
		Use:   "install PACKAGE|BUNDLE...",
		Short: "Install packages",
		Long: `Install packages by name from the configured repositories, or from local .apkg bundles.

Installing a package that is already installed upgrades it without asking.
Reinstalling the same version or downgrading asks for confirmation unless --yes is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args, keepDownload)
		},
	}

	cmd.Flags().BoolVar(&keepDownload, "keep-download", false, "Keep downloaded bundles in the download directory")

	return cmd
}

func runInstall(cmd *cobra.Command, targets []string, keepDownload bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	orch := loadOrchestrator(cfg, confirmer(cmd.InOrStdin(), out), progressHooks(out))

	for _, target := range targets {
		var res *artifact.InstallResult
		if isBundlePath(target) {
			res, err = orch.InstallFile(cmd.Context(), target)
		} else {
			res, err = orch.InstallByName(cmd.Context(), target, orchestrator.InstallOptions{KeepDownload: keepDownload})
		}
		if err != nil {
			return fmt.Errorf("failed to install %s: %w", target, err)
		}
		printInstallResult(out, res)
	}
	return nil
}

func isBundlePath(target string) bool {
	if !strings.HasSuffix(target, "."+artifact.BundleSuffix) {
		return false
	}
	info, err := os.Stat(target)
	return err == nil && !info.IsDir()
}

func printInstallResult(out io.Writer, res *artifact.InstallResult) {
	switch res.Outcome {
	case artifact.OutcomeAborted:
		_, _ = fmt.Fprintf(out, "%s: installation aborted\n", res.Name)
	case artifact.OutcomeUpgraded, artifact.OutcomeDowngraded:
		_, _ = fmt.Fprintf(out, "%s %s (%s -> %s)\n", res.Name, res.Outcome, res.PreviousVersion, res.Version)
	default:
		_, _ = fmt.Fprintf(out, "%s %s %s\n", res.Name, res.Version, res.Outcome)
	}
	if res.Maintainer != "" && res.Outcome != artifact.OutcomeAborted {
		_, _ = fmt.Fprintf(out, "  maintainer: %s\n", res.Maintainer)
	}
}

func progressHooks(out io.Writer) orchestrator.Hooks {
	return orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
		if !flagBool(Verbose) {
			return
		}
		if e.ID != "" {
			_, _ = fmt.Fprintf(out, "%s: %s (%s)\n", e.Phase, e.Msg, e.ID)
		} else {
			_, _ = fmt.Fprintf(out, "%s: %s\n", e.Phase, e.Msg)
		}
	}}
}
