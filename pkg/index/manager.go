// Package index loads the repository indexes and resolves package names to download URLs.
package index

import (
	"context"
	"fmt"

	"github.com/glorpus-work/apkg/internal/logger"
	"github.com/glorpus-work/apkg/pkg/config"
	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/http"
	"github.com/glorpus-work/apkg/pkg/model"
)

// ManagerImpl is the in-memory repository index. It is populated lazily on first use
// and replaced wholesale by every successful Reload.
type ManagerImpl struct {
	client  http.Client
	tag     string
	layout  config.Layout
	entries []model.RepositoryEntry
	loaded  bool
}

var _ Manager = (*ManagerImpl)(nil)

// NewManager creates an index that fetches with client and matches entries against tag.
func NewManager(client http.Client, tag string, layout config.Layout) *ManagerImpl {
	return &ManagerImpl{
		client: client,
		tag:    tag,
		layout: layout,
	}
}

// Loaded reports whether a reload has succeeded.
func (m *ManagerImpl) Loaded() bool {
	return m.loaded
}

// Resolve returns the URL of the first entry in list order named name whose os tag
// is "any" or the platform tag. Earlier repositories win ties.
func (m *ManagerImpl) Resolve(ctx context.Context, name string) (string, error) {
	if !m.loaded {
		if err := m.Reload(ctx); err != nil {
			return "", err
		}
	}

	for i := range m.entries {
		e := &m.entries[i]
		if e.Name == name && e.MatchPlatform(m.tag) {
			logger.Debug("Resolved package", logger.Fields{"package": name, "os": e.OS, "url": e.URL})
			return e.URL, nil
		}
	}
	return "", fmt.Errorf("%w: %s for platform %s", apkgErrors.ErrPackageNotFound, name, m.tag)
}

// ListAvailableNames returns the names of all loaded entries in list order.
func (m *ManagerImpl) ListAvailableNames(ctx context.Context) []string {
	if !m.loaded {
		if err := m.Reload(ctx); err != nil {
			logger.Warn("Cannot load repository index", logger.Fields{"error": err.Error()})
			return []string{}
		}
	}

	names := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		names = append(names, e.Name)
	}
	return names
}

// Reload downloads and parses every repository in the configured list.
// The loaded entries are replaced only when all repositories succeed.
func (m *ManagerImpl) Reload(ctx context.Context) error {
	urls, err := ReadRepositoryList(m.layout.ReposFile())
	if err != nil {
		return err
	}

	scratch := m.layout.RepoScratchFile()
	fresh := make([]model.RepositoryEntry, 0)
	for i, u := range urls {
		position := i + 1
		logger.Debug("Loading repository", logger.Fields{"url": u, "position": position})

		if err := m.client.Download(ctx, u, scratch); err != nil {
			return apkgErrors.NewRepositoryError(apkgErrors.ErrFetch, u, position, err)
		}
		idx, err := ParseIndexFromFile(scratch)
		if err != nil {
			return apkgErrors.NewRepositoryError(apkgErrors.ErrParse, u, position, err)
		}
		fresh = append(fresh, idx.PackageList...)
	}

	m.entries = fresh
	m.loaded = true
	logger.Info("Repository index loaded", logger.Fields{"repositories": len(urls), "packages": len(fresh)})
	return nil
}

// Entries returns a copy of the loaded entries.
func (m *ManagerImpl) Entries() []model.RepositoryEntry {
	out := make([]model.RepositoryEntry, len(m.entries))
	copy(out, m.entries)
	return out
}
