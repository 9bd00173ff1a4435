//go:generate mockgen -destination=./mocks/index.go . Manager
package index

import (
	"context"

	"github.com/glorpus-work/apkg/pkg/model"
)

// Manager resolves package names against the configured repositories.
type Manager interface {
	// Resolve returns the download URL of the first entry named name that installs on this platform.
	Resolve(ctx context.Context, name string) (string, error)

	// ListAvailableNames returns the names of all loaded entries in list order.
	// Load failures yield an empty list.
	ListAvailableNames(ctx context.Context) []string

	// Reload fetches every configured repository and replaces the loaded entries.
	Reload(ctx context.Context) error

	// Entries returns a copy of the loaded entries.
	Entries() []model.RepositoryEntry
}
