// Package archive provides utilities for creating and extracting package bundles.
package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/mholt/archives"

	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/fsutil"
)

// Extractor unpacks a bundle into a directory.
type Extractor interface {
	ExtractAll(ctx context.Context, archivePath, destDir string) error
}

// Manager handles archive extraction and creation operations.
type Manager struct{}

var _ Extractor = (*Manager)(nil)

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// ExtractAll extracts every entry of the archive below destDir.
// Entries or symlinks that would land outside destDir fail the extraction.
func (am *Manager) ExtractAll(ctx context.Context, archivePath, destDir string) error {
	fsys, err := openArchive(ctx, archivePath)
	if err != nil {
		return err
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	if err := fsutil.EnsureDir(destDir); err != nil {
		return fmt.Errorf("%w: failed to create destination directory: %v", apkgErrors.ErrExtract, err)
	}

	walkFn := func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return am.extractEntry(fsys, p, destDir, d)
	}

	if err := fs.WalkDir(fsys, ".", walkFn); err != nil {
		return fmt.Errorf("%w: %s: %w", apkgErrors.ErrExtract, archivePath, err)
	}
	return nil
}

// ReadFile returns the contents of a single entry without extracting the rest.
func (am *Manager) ReadFile(ctx context.Context, archivePath, name string) ([]byte, error) {
	fsys, err := openArchive(ctx, archivePath)
	if err != nil {
		return nil, err
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s from %s: %w", apkgErrors.ErrExtract, name, archivePath, err)
	}
	return data, nil
}

// Create writes a tar.gz bundle containing the contents of sourceDir.
func (am *Manager) Create(ctx context.Context, sourceDir, archivePath string) error {
	absolutePath, err := filepath.Abs(sourceDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for source directory: %w", err)
	}

	archiveFiles, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		absolutePath + string(os.PathSeparator): "",
	})
	if err != nil {
		return fmt.Errorf("failed to read files from disk: %w", err)
	}

	if err := fsutil.EnsureFileDir(archivePath); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", archivePath, err)
	}
	file, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", archivePath, err)
	}
	defer func() { _ = file.Close() }()

	format := archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}

	if err := format.Archive(ctx, file, archiveFiles); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	return file.Sync()
}

func openArchive(ctx context.Context, archivePath string) (fs.FS, error) {
	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open archive file: %w", apkgErrors.ErrExtract, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", apkgErrors.ErrExtract, archivePath)
	}

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open archive file: %w", apkgErrors.ErrExtract, err)
	}
	return fsys, nil
}

func (am *Manager) extractEntry(fsys fs.FS, p, destDir string, d fs.DirEntry) error {
	if p == "." {
		return nil
	}

	targetPath, err := fsutil.Resolve(destDir, p)
	if err != nil {
		return err
	}

	if d.IsDir() {
		return fsutil.EnsureDir(targetPath)
	}

	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("failed to get file info for %s: %w", p, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return am.writeSymlink(fsys, p, targetPath, info)
	}

	return am.writeRegularFile(fsys, p, targetPath, info)
}

func (am *Manager) writeSymlink(fsys fs.FS, p, targetPath string, info fs.FileInfo) error {
	var linkTarget string
	if fi, ok := info.(archives.FileInfo); ok && fi.LinkTarget != "" {
		linkTarget = fi.LinkTarget
	} else {
		f, err := fsys.Open(p)
		if err != nil {
			return fmt.Errorf("failed to read symlink %s: %w", p, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("failed to read symlink target %s: %w", p, err)
		}
		linkTarget = string(data)
	}

	// the link must resolve inside the bundle
	if err := fsutil.ValidateRelPath(path.Join(path.Dir(p), filepath.ToSlash(linkTarget))); err != nil || filepath.IsAbs(linkTarget) {
		return fmt.Errorf("%w: symlink %s points outside the bundle", apkgErrors.ErrInvalidPath, p)
	}

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return fmt.Errorf("failed to create parent directory for symlink %s: %w", p, err)
	}
	_ = os.Remove(targetPath)

	return os.Symlink(linkTarget, targetPath)
}

func (am *Manager) writeRegularFile(fsys fs.FS, p, targetPath string, info fs.FileInfo) error {
	srcFile, err := fsys.Open(p)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", p, err)
	}
	defer func() { _ = srcFile.Close() }()

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", p, err)
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = fsutil.FileModeDefault
	}
	dstFile, err := fsutil.CreateFilePerm(targetPath, perm)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("failed to copy file %s: %w", p, err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", targetPath, err)
	}

	if err := os.Chmod(targetPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions for %s: %w", targetPath, err)
	}
	if err := os.Chtimes(targetPath, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time for %s: %w", targetPath, err)
	}
	return nil
}
