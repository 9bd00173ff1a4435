package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/apkg/internal/logger"
	"github.com/glorpus-work/apkg/pkg/archive"
	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/fsutil"
)

const (
	// BundleSuffix is the extension of package bundles.
	BundleSuffix = "apkg"

	// HooksDir holds hook scripts inside a bundle. Its content is never installed.
	HooksDir = "hooks"
)

// Packer builds a bundle from a directory laid out like the install root.
// Scripts below HooksDir stay in the bundle; every other file is listed in the manifest.
type Packer struct {
	name        string
	version     string
	maintainer  string
	description string
	homepage    string
	hooks       map[string]string

	inputDir  string
	outputDir string
	tempDir   string
	manifest  *Manifest
}

// NewPacker creates a Packer. Hook scripts are given relative to inputDir.
func NewPacker(name, version, maintainer, description, homepage string, hooks map[string]string, inputDir, outputDir string) *Packer {
	return &Packer{
		name:        name,
		version:     version,
		maintainer:  maintainer,
		description: description,
		homepage:    homepage,
		hooks:       hooks,
		inputDir:    inputDir,
		outputDir:   outputDir,
	}
}

// Pack writes the bundle and returns its path.
func (p *Packer) Pack(ctx context.Context) (string, error) {
	if err := p.checkInput(); err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "apkg-packer")
	if err != nil {
		return "", err
	}
	p.tempDir = dir
	defer func() { _ = os.RemoveAll(dir) }()

	p.manifest = &Manifest{
		PackageName:    p.name,
		PackageVersion: p.version,
		Files:          []string{},
		Project: Project{
			Maintainer:  p.maintainer,
			Description: p.description,
			Homepage:    p.homepage,
		},
		Hooks: p.hooks,
	}

	if err := p.copyInputDir(); err != nil {
		return "", err
	}
	if err := p.manifest.Validate(); err != nil {
		return "", err
	}
	if err := p.createManifestFile(); err != nil {
		return "", err
	}

	am := archive.NewManager()
	if err := am.Create(ctx, p.tempDir, p.OutputFile()); err != nil {
		return "", err
	}
	if err := p.verify(ctx, am); err != nil {
		return "", err
	}

	logger.Success("Bundle created", logger.Fields{"path": p.OutputFile(), "files": len(p.manifest.Files)})
	return p.OutputFile(), nil
}

// OutputFile is where Pack writes the bundle.
func (p *Packer) OutputFile() string {
	return filepath.Join(p.outputDir, fmt.Sprintf("%s_%s.%s", p.name, p.version, BundleSuffix))
}

// checkInput ensures that:
// - the input directory exists
// - it does not already contain a manifest
// - every hook script exists below HooksDir, and every script there is referenced
func (p *Packer) checkInput() error {
	info, err := os.Stat(p.inputDir)
	if err != nil || !info.IsDir() {
		return apkgErrors.Wrapf(apkgErrors.ErrInvalidPath, "input directory %s does not exist", p.inputDir)
	}

	if fsutil.Exists(filepath.Join(p.inputDir, ManifestFile)) {
		return apkgErrors.Wrapf(apkgErrors.ErrInvalidPath, "%s already exists in input directory", ManifestFile)
	}

	referenced := make(map[string]struct{}, len(p.hooks))
	for hook, script := range p.hooks {
		clean := path.Clean(filepath.ToSlash(script))
		if !strings.HasPrefix(clean, HooksDir+"/") {
			return apkgErrors.Wrapf(apkgErrors.ErrInvalidPath, "hook %s must live in the %s directory", hook, HooksDir)
		}
		if !fsutil.Exists(filepath.Join(p.inputDir, filepath.FromSlash(clean))) {
			return apkgErrors.Wrapf(apkgErrors.ErrInvalidPath, "hook script %s does not exist", script)
		}
		referenced[clean] = struct{}{}
	}

	entries, err := os.ReadDir(filepath.Join(p.inputDir, HooksDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if _, ok := referenced[HooksDir+"/"+entry.Name()]; !ok {
			return apkgErrors.Wrapf(apkgErrors.ErrInvalidPath, "hook %s is not referenced", entry.Name())
		}
	}
	return nil
}

// copyInputDir copies the input directory into the staging directory and records the file list.
// Symlinks must be relative and stay inside the input directory.
func (p *Packer) copyInputDir() error {
	absInputDir, err := filepath.Abs(p.inputDir)
	if err != nil {
		return apkgErrors.Wrap(err, "error getting absolute path of input directory")
	}

	return filepath.WalkDir(absInputDir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return apkgErrors.Wrapf(err, "error accessing path %s", filePath)
		}
		if filePath == absInputDir {
			return nil
		}

		relPath, err := filepath.Rel(absInputDir, filePath)
		if err != nil {
			return apkgErrors.Wrapf(err, "error getting relative path of %s", filePath)
		}
		tempPath := filepath.Join(p.tempDir, relPath)
		slashPath := filepath.ToSlash(relPath)

		switch d.Type() & os.ModeType {
		case os.ModeDir:
			return fsutil.EnsureDir(tempPath)
		case os.ModeSymlink:
			target, err := os.Readlink(filePath)
			if err != nil {
				return apkgErrors.Wrapf(err, "error reading symlink %s", filePath)
			}
			if filepath.IsAbs(target) || !fsutil.IsWithin(absInputDir, filepath.Join(filepath.Dir(filePath), target)) {
				return apkgErrors.Wrapf(apkgErrors.ErrInvalidPath, "symlink %s points outside the input directory", filePath)
			}
			if err := os.Symlink(target, tempPath); err != nil {
				return apkgErrors.Wrapf(err, "error creating symlink %s", filePath)
			}
		default:
			if err := fsutil.Copy(filePath, tempPath); err != nil {
				return apkgErrors.Wrapf(err, "error copying file %s", filePath)
			}
		}

		if !strings.HasPrefix(slashPath, HooksDir+"/") {
			p.manifest.Files = append(p.manifest.Files, slashPath)
		}
		return nil
	})
}

func (p *Packer) createManifestFile() error {
	data, err := json.MarshalIndent(p.manifest, "", "  ")
	if err != nil {
		return apkgErrors.Wrap(err, "error marshaling manifest")
	}
	data = append(data, '\n')
	return os.WriteFile(filepath.Join(p.tempDir, ManifestFile), data, fsutil.FileModeDefault)
}

// verify reads the manifest back from the finished bundle.
func (p *Packer) verify(ctx context.Context, am *archive.Manager) error {
	data, err := am.ReadFile(ctx, p.OutputFile(), ManifestFile)
	if err != nil {
		return err
	}
	m, err := ParseManifest(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if m.PackageName != p.name || m.PackageVersion != p.version || len(m.Files) != len(p.manifest.Files) {
		return fmt.Errorf("%w: bundle manifest does not match the packed input", apkgErrors.ErrParse)
	}
	return nil
}
