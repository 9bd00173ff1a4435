package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates a directory and all missing parents with DirModeDefault permissions.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// EnsureFileDir creates the parent directory of a file path if it doesn't exist.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// ResetDir removes path with everything below it and recreates it empty.
func ResetDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to clear %s: %w", path, err)
	}
	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return nil
}

// RemoveEmptyParents walks up from the parent of filePath and removes empty directories
// until it reaches stopAt, a non-empty directory, or a directory outside stopAt.
// stopAt itself is never removed. Directories are not tracked by owner, so an empty directory
// that predates the file is removed as well.
func RemoveEmptyParents(filePath, stopAt string) {
	stop := filepath.Clean(stopAt)
	dir := filepath.Dir(filepath.Clean(filePath))

	for dir != stop && IsWithin(stop, dir) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
