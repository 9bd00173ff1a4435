package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/apkg/internal/logger"
	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/fsutil"
	"github.com/glorpus-work/apkg/pkg/model"
	"github.com/glorpus-work/apkg/pkg/platform"
)

// Install extracts the bundle at archivePath into the scratch directory, checks it against the
// registry and places its files under the install root.
//
// Nothing outside the scratch directory changes until the conflict check has passed and, where
// needed, the user has confirmed. The copy itself is not transactional: a failure leaves the
// files copied so far in place and the package unregistered.
func (m *ManagerImpl) Install(ctx context.Context, archivePath string) (*InstallResult, error) {
	manifest, err := m.loadBundle(ctx, archivePath)
	if err != nil {
		return nil, err
	}

	result := &InstallResult{
		Outcome:    OutcomeInstalled,
		Name:       manifest.PackageName,
		Version:    manifest.PackageVersion,
		Maintainer: manifest.Project.Maintainer,
	}

	proceed, err := m.checkInstall(ctx, manifest, result)
	if err != nil {
		return nil, err
	}
	if !proceed {
		logger.Info("Installation aborted", logger.Fields{"package": result.Name})
		result.Outcome = OutcomeAborted
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if result.PreviousVersion != "" {
		if err := m.Remove(ctx, manifest.PackageName); err != nil {
			return nil, fmt.Errorf("failed to remove installed version %s of %s: %w", result.PreviousVersion, manifest.PackageName, err)
		}
	}

	if err := m.copyFiles(ctx, manifest); err != nil {
		return nil, err
	}

	logger.Debug("Registering package", logger.Fields{"package": result.Name, "files": len(manifest.Files)})
	if err := m.registry.Register(manifest.PackageName, manifest.PackageVersion, manifest.Files); err != nil {
		return nil, err
	}

	m.runPostInstall(ctx, manifest, result)

	logger.Success(fmt.Sprintf("Package %s", result.Outcome), logger.Fields{
		"package": result.Name,
		"version": result.Version,
	})
	return result, nil
}

// loadBundle resets the scratch directory, extracts the bundle into it and reads its manifest.
func (m *ManagerImpl) loadBundle(ctx context.Context, archivePath string) (*Manifest, error) {
	extractDir := m.layout.ExtractDir()

	logger.Info("Extracting package", logger.Fields{"archive": archivePath})
	if err := fsutil.ResetDir(extractDir); err != nil {
		return nil, apkgErrors.NewFileOperationError(apkgErrors.ErrScratchDir, "reset", extractDir, err)
	}
	if err := m.extractor.ExtractAll(ctx, archivePath, extractDir); err != nil {
		if errors.Is(err, apkgErrors.ErrExtract) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", apkgErrors.ErrExtract, archivePath, err)
	}

	logger.Info("Checking package integrity", logger.Fields{"archive": archivePath})
	manifest, err := ParseManifestFromFile(filepath.Join(extractDir, ManifestFile))
	if err != nil {
		return nil, err
	}

	for _, rel := range manifest.Files {
		info, err := os.Stat(filepath.Join(extractDir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("%w: %s lists %s but the bundle does not contain it", apkgErrors.ErrParse, ManifestFile, rel)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s lists directory %s as a file", apkgErrors.ErrParse, ManifestFile, rel)
		}
	}
	return manifest, nil
}

// checkInstall runs the conflict check and, for a package that is already registered, picks the
// outcome and asks for confirmation when the version is not newer.
// A registered package always takes this same-name path, even when none of the new files collide
// with its old ones, so a disjoint downgrade or reinstall still prompts and the old files are
// removed rather than left unowned.
// It reports false when the user declines.
func (m *ManagerImpl) checkInstall(ctx context.Context, manifest *Manifest, result *InstallResult) (bool, error) {
	name := manifest.PackageName

	if !m.registry.HasPackage(name) {
		safe, conflict, err := CheckConflicts(manifest.Files, m.registry)
		if err != nil {
			return false, err
		}
		if !safe {
			return false, m.conflictError(conflict)
		}
		return true, nil
	}

	installed, err := m.registry.InstalledVersion(name)
	if err != nil {
		return false, err
	}
	cmp, err := model.CompareVersions(installed, manifest.PackageVersion)
	if err != nil {
		return false, err
	}
	result.PreviousVersion = installed

	safe, conflict, err := CheckConflictsExcept(manifest.Files, m.registry, name)
	if err != nil {
		return false, err
	}
	if !safe {
		return false, m.conflictError(conflict)
	}

	var question string
	switch {
	case cmp == 0:
		result.Outcome = OutcomeReinstalled
		question = "reinstall same package version [y/n]?"
	case cmp > 0:
		result.Outcome = OutcomeDowngraded
		question = fmt.Sprintf("downgrade package (%s->%s) [y/n]?", installed, manifest.PackageVersion)
	default:
		result.Outcome = OutcomeUpgraded
		logger.Info("Upgrading package", logger.Fields{"package": name, "from": installed, "to": manifest.PackageVersion})
		return true, nil
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := m.confirmer.Confirm(question)
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return ok, nil
}

func (m *ManagerImpl) conflictError(file string) error {
	owner, err := FindOwner(m.registry, file)
	if err != nil {
		logger.Debug("Cannot determine conflicting owner", logger.Fields{"file": file, "error": err})
	}
	return fmt.Errorf("%w: %w", apkgErrors.ErrConflict, &ConflictError{Path: file, Owner: owner})
}

// copyFiles copies every manifest file, in manifest order, from the scratch directory to the
// install root.
func (m *ManagerImpl) copyFiles(ctx context.Context, manifest *Manifest) error {
	extractDir := m.layout.ExtractDir()
	root := m.layout.Root
	execBit := platform.NeedsExecBit(m.platform)

	for _, rel := range manifest.Files {
		dst, err := fsutil.Resolve(root, rel)
		if err != nil {
			return apkgErrors.NewFileOperationError(apkgErrors.ErrCopy, "copy", rel, err)
		}
		if fsutil.Exists(dst) {
			logger.Warn("Overwriting file not owned by any package", logger.Fields{"file": rel})
		}

		logger.Debug("Copying file", logger.Fields{"file": rel})
		if err := fsutil.EnsureFileDir(dst); err != nil {
			return apkgErrors.NewFileOperationError(apkgErrors.ErrCopy, "copy", rel, err)
		}
		if err := fsutil.Copy(filepath.Join(extractDir, filepath.FromSlash(rel)), dst); err != nil {
			return apkgErrors.NewFileOperationError(apkgErrors.ErrCopy, "copy", rel, err)
		}

		if execBit && m.isScript(rel) {
			if err := m.runner.Run(ctx, root, "chmod", []string{"+x", dst}); err != nil {
				logger.Warn("Failed to mark script executable", logger.Fields{"file": rel, "error": err})
			}
		}
	}
	return nil
}

func (m *ManagerImpl) isScript(rel string) bool {
	dir := path.Clean(filepath.ToSlash(m.scriptsDir))
	return strings.HasPrefix(path.Clean(filepath.ToSlash(rel)), dir+"/")
}

func (m *ManagerImpl) runPostInstall(ctx context.Context, manifest *Manifest, result *InstallResult) {
	script, ok := manifest.Hook(HookPostInstall)
	if !ok {
		return
	}

	extractDir := m.layout.ExtractDir()
	hookCtx := &HookContext{
		PackageName:     result.Name,
		PackageVersion:  result.Version,
		PreviousVersion: result.PreviousVersion,
		Operation:       string(result.Outcome),
		InstallRoot:     m.layout.Root,
		ExtractDir:      extractDir,
		Platform:        m.platform,
	}
	if err := m.hooks.ExecuteHook(ctx, filepath.Join(extractDir, filepath.FromSlash(script)), hookCtx); err != nil {
		logger.Warn("Post-install hook failed", logger.Fields{"package": result.Name, "error": err})
	}
}
