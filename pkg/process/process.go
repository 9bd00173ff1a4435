//go:generate mockgen -destination=mocks/process.go . Runner

// Package process runs external commands on behalf of the installer.
package process

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/glorpus-work/apkg/internal/logger"
)

// Runner executes an external program and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, dir, name string, args []string) error
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() ExecRunner {
	return ExecRunner{}
}

// Run starts name with args in dir. A non-zero exit is returned as an error that
// carries the command's trimmed stderr.
func (ExecRunner) Run(ctx context.Context, dir, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("Running command", logger.Fields{"cmd": name, "args": strings.Join(args, " "), "dir": dir})

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}
