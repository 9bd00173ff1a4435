// Package orchestrator runs the user-facing flows that span more than one component,
// such as installing a package by name.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/glorpus-work/apkg/internal/logger"
	"github.com/glorpus-work/apkg/pkg/artifact"
	"github.com/glorpus-work/apkg/pkg/config"
)

// New creates an Orchestrator.
func New(idx PackageResolver, dl Downloader, am PackageManager, layout config.Layout, hooks Hooks) *Orchestrator {
	return &Orchestrator{Index: idx, DL: dl, Artifacts: am, Layout: layout, Hooks: hooks}
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// InstallByName resolves name against the index, downloads the bundle and installs it.
func (o *Orchestrator) InstallByName(ctx context.Context, name string, opts InstallOptions) (*artifact.InstallResult, error) {
	if o.Index == nil {
		return nil, fmt.Errorf("index resolver is not configured")
	}
	if o.DL == nil {
		return nil, fmt.Errorf("downloader is not configured")
	}

	emit(o.Hooks, Event{Phase: "resolving", ID: name})
	url, err := o.Index.Resolve(ctx, name)
	if err != nil {
		return nil, o.fail(name, err)
	}

	bundlePath := o.Layout.DownloadFile(name)
	emit(o.Hooks, Event{Phase: "downloading", ID: name, Msg: url})
	if err := o.DL.Download(ctx, url, bundlePath); err != nil {
		return nil, o.fail(name, err)
	}
	if !opts.KeepDownload {
		defer func() {
			if err := os.Remove(bundlePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
				logger.Debug("Failed to remove downloaded bundle", logger.Fields{"path": bundlePath, "error": err})
			}
		}()
	}

	return o.InstallFile(ctx, bundlePath)
}

// InstallFile installs a bundle that is already on disk.
func (o *Orchestrator) InstallFile(ctx context.Context, bundlePath string) (*artifact.InstallResult, error) {
	if o.Artifacts == nil {
		return nil, fmt.Errorf("artifact installer is not configured")
	}

	emit(o.Hooks, Event{Phase: "installing", Msg: bundlePath})
	res, err := o.Artifacts.Install(ctx, bundlePath)
	if err != nil {
		return nil, o.fail("", err)
	}
	emit(o.Hooks, Event{Phase: "done", ID: res.Name, Msg: string(res.Outcome)})
	return res, nil
}

// Remove uninstalls name.
func (o *Orchestrator) Remove(ctx context.Context, name string) error {
	if o.Artifacts == nil {
		return fmt.Errorf("artifact installer is not configured")
	}

	emit(o.Hooks, Event{Phase: "removing", ID: name})
	if err := o.Artifacts.Remove(ctx, name); err != nil {
		return o.fail(name, err)
	}
	emit(o.Hooks, Event{Phase: "done", ID: name, Msg: "removed"})
	return nil
}

// Reload refetches every configured repository.
func (o *Orchestrator) Reload(ctx context.Context) error {
	if o.Index == nil {
		return fmt.Errorf("index resolver is not configured")
	}

	emit(o.Hooks, Event{Phase: "reloading"})
	if err := o.Index.Reload(ctx); err != nil {
		return o.fail("", err)
	}
	emit(o.Hooks, Event{Phase: "done", Msg: "reloaded"})
	return nil
}

// Available lists the package names offered by the configured repositories.
func (o *Orchestrator) Available(ctx context.Context) []string {
	if o.Index == nil {
		return []string{}
	}
	return o.Index.ListAvailableNames(ctx)
}

func (o *Orchestrator) fail(id string, err error) error {
	emit(o.Hooks, Event{Phase: "error", ID: id, Msg: err.Error()})
	return err
}
