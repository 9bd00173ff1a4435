//go:generate mockgen -destination=./mocks/artifact.go . Manager,Confirmer,HookExecutor
package artifact

import "context"

// Manager installs package bundles and removes installed packages.
type Manager interface {
	// Install places the bundle at archivePath under the install root and registers it.
	// A declined confirmation is reported as OutcomeAborted with a nil error.
	Install(ctx context.Context, archivePath string) (*InstallResult, error)

	// Remove deletes every file owned by name and then its registry record.
	Remove(ctx context.Context, name string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(question string) (bool, error)

// Confirm calls f(question).
func (f ConfirmFunc) Confirm(question string) (bool, error) {
	return f(question)
}

// AlwaysDecline answers no to every question.
var AlwaysDecline Confirmer = ConfirmFunc(func(string) (bool, error) { return false, nil })
