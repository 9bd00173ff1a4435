package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/glorpus-work/apkg/pkg/artifact"
)

// Prompt asks yes/no questions on a terminal. Anything but y or yes is a no.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

var _ artifact.Confirmer = (*Prompt)(nil)

// NewPrompt creates a Prompt reading answers from in and writing questions to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Confirm writes question and reads one line of answer. End of input counts as no.
func (p *Prompt) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprint(p.out, question+" "); err != nil {
		return false, err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// confirmer returns the Confirmer for a command: the terminal prompt, or yes to everything with --yes.
func confirmer(in io.Reader, out io.Writer) artifact.Confirmer {
	if flagBool(AssumeYes) {
		return artifact.ConfirmFunc(func(string) (bool, error) { return true, nil })
	}
	return NewPrompt(in, out)
}
