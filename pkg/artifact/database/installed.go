// Package database keeps the record of installed packages on disk.
//
// Every package owns one directory below the registry root holding two plain text files:
// "files" lists the package's relative paths one per line and "version" holds its version.
package database

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glorpus-work/apkg/internal/logger"
	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/fsutil"
	"github.com/glorpus-work/apkg/pkg/model"
)

const (
	filesArtifact   = "files"
	versionArtifact = "version"
)

// InstalledManager defines the interface for managing installed packages.
type InstalledManager interface {
	Register(name, version string, files []string) error
	Unregister(name string) error
	ListInstalledFiles() ([]string, error)
	HasPackage(name string) bool
	InstalledVersion(name string) (string, error)
	Files(name string) ([]string, error)
	ListPackages() ([]string, error)
	Get(name string) (*model.Record, error)
}

// Registry is the directory-per-package implementation of InstalledManager.
type Registry struct {
	root string
}

var _ InstalledManager = (*Registry)(nil)

// NewRegistry creates a registry rooted at dir. The directory is created on first Register.
func NewRegistry(dir string) *Registry {
	return &Registry{root: dir}
}

// Root returns the registry directory.
func (r *Registry) Root() string {
	return r.root
}

// ValidateName rejects names that cannot be used as a directory below the registry root.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty name", apkgErrors.ErrInvalidPackageName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", apkgErrors.ErrInvalidPackageName, name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains a path separator", apkgErrors.ErrInvalidPackageName, name)
	}
	return nil
}

// Register records a package, replacing any previous record of the same name.
// Every file must be a canonical relative path; nothing is written otherwise.
func (r *Registry) Register(name, version string, files []string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	for _, f := range files {
		if err := fsutil.ValidateCanonicalPath(f); err != nil {
			return fmt.Errorf("%w: cannot record %q for %s: %w", apkgErrors.ErrRegistryWrite, f, name, err)
		}
	}
	dir := r.packageDir(name)
	if err := fsutil.EnsureDir(dir); err != nil {
		return apkgErrors.NewFileOperationError(apkgErrors.ErrRegistryWrite, "create", dir, err)
	}

	var sb strings.Builder
	for _, f := range files {
		sb.WriteString(f)
		sb.WriteByte('\n')
	}
	if err := writeFileAtomic(filepath.Join(dir, filesArtifact), sb.String()); err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(dir, versionArtifact), strings.TrimSpace(version)+"\n"); err != nil {
		return err
	}

	logger.Debug("Registered package", logger.Fields{"package": name, "version": version, "files": len(files)})
	return nil
}

// Unregister deletes the record of a package. It returns ErrNotInstalled when none exists.
func (r *Registry) Unregister(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	dir := r.packageDir(name)
	if !r.HasPackage(name) {
		return fmt.Errorf("%w: %s", apkgErrors.ErrNotInstalled, name)
	}
	if err := os.RemoveAll(dir); err != nil {
		return apkgErrors.NewFileOperationError(apkgErrors.ErrRegistryWrite, "remove", dir, err)
	}

	logger.Debug("Unregistered package", logger.Fields{"package": name})
	return nil
}

// ListInstalledFiles returns every path owned by any installed package.
// Paths are not deduplicated. A registry root that does not exist yet is empty.
func (r *Registry) ListInstalledFiles() ([]string, error) {
	names, err := r.ListPackages()
	if err != nil {
		return nil, err
	}

	var all []string
	for _, name := range names {
		files, err := r.Files(name)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}
	return all, nil
}

// HasPackage reports whether a record exists for name.
func (r *Registry) HasPackage(name string) bool {
	if ValidateName(name) != nil {
		return false
	}
	info, err := os.Stat(r.packageDir(name))
	return err == nil && info.IsDir()
}

// InstalledVersion returns the recorded version of a package with surrounding whitespace trimmed.
func (r *Registry) InstalledVersion(name string) (string, error) {
	if !r.HasPackage(name) {
		return "", fmt.Errorf("%w: %s", apkgErrors.ErrNotInstalled, name)
	}
	path := filepath.Join(r.packageDir(name), versionArtifact)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apkgErrors.NewFileOperationError(apkgErrors.ErrRegistryRead, "read", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Files returns the paths owned by a package in recorded order.
func (r *Registry) Files(name string) ([]string, error) {
	if !r.HasPackage(name) {
		return nil, fmt.Errorf("%w: %s", apkgErrors.ErrNotInstalled, name)
	}
	path := filepath.Join(r.packageDir(name), filesArtifact)
	files, err := readLines(path)
	if err != nil {
		return nil, apkgErrors.NewFileOperationError(apkgErrors.ErrRegistryRead, "read", path, err)
	}
	return files, nil
}

// ListPackages returns the names of all installed packages, sorted.
func (r *Registry) ListPackages() ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, apkgErrors.NewFileOperationError(apkgErrors.ErrRegistryRead, "list", r.root, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Get returns the full record of a package.
func (r *Registry) Get(name string) (*model.Record, error) {
	version, err := r.InstalledVersion(name)
	if err != nil {
		return nil, err
	}
	files, err := r.Files(name)
	if err != nil {
		return nil, err
	}
	return &model.Record{Name: name, Version: version, Files: files}, nil
}

func (r *Registry) packageDir(name string) string {
	return filepath.Join(r.root, name)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func writeFileAtomic(path, content string) (err error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return apkgErrors.NewFileOperationError(apkgErrors.ErrRegistryWrite, "create", path, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmpFile.WriteString(content); err != nil {
		_ = tmpFile.Close()
		return apkgErrors.NewFileOperationError(apkgErrors.ErrRegistryWrite, "write", path, err)
	}
	if err = tmpFile.Close(); err != nil {
		return apkgErrors.NewFileOperationError(apkgErrors.ErrRegistryWrite, "write", path, err)
	}
	if err = os.Chmod(tmpPath, fsutil.FileModeDefault); err != nil {
		return apkgErrors.NewFileOperationError(apkgErrors.ErrRegistryWrite, "chmod", path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return apkgErrors.NewFileOperationError(apkgErrors.ErrRegistryWrite, "rename", path, err)
	}
	return nil
}
