package orchestrator

import (
	"context"

	"github.com/glorpus-work/apkg/pkg/artifact"
	"github.com/glorpus-work/apkg/pkg/config"
)

// PackageResolver is the subset of the index manager used by the orchestrator.
type PackageResolver interface {
	Resolve(ctx context.Context, name string) (string, error)
	ListAvailableNames(ctx context.Context) []string
	Reload(ctx context.Context) error
}

// PackageManager is the subset of the artifact manager used by the orchestrator.
type PackageManager interface {
	Install(ctx context.Context, archivePath string) (*artifact.InstallResult, error)
	Remove(ctx context.Context, name string) error
}

// Downloader fetches bundles.
type Downloader interface {
	Download(ctx context.Context, rawURL, filePath string) error
}

// Orchestrator ties the index, the downloader and the artifact manager together.
type Orchestrator struct {
	Index     PackageResolver
	DL        Downloader
	Artifacts PackageManager
	Layout    config.Layout
	Hooks     Hooks // Hooks for progress and event notifications
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // resolving|downloading|installing|removing|reloading|done|error
	ID    string // package name
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// InstallOptions control orchestrator install execution.
type InstallOptions struct {
	// KeepDownload leaves the fetched bundle in the download directory.
	KeepDownload bool
}
