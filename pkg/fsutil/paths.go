package fsutil

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
)

// IsWithin reports whether path is root or lies below it. Both are cleaned first.
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ValidateRelPath checks that rel is a non-empty relative path that stays inside its root.
// Both '/' and the OS separator are accepted. Control characters are rejected.
func ValidateRelPath(rel string) error {
	if strings.TrimSpace(rel) == "" {
		return fmt.Errorf("%w: empty path", apkgErrors.ErrInvalidPath)
	}
	if strings.IndexFunc(rel, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: %q contains a control character", apkgErrors.ErrInvalidPath, rel)
	}
	p := filepath.FromSlash(rel)
	if filepath.IsAbs(p) || strings.HasPrefix(rel, "/") || filepath.VolumeName(p) != "" {
		return fmt.Errorf("%w: %s is absolute", apkgErrors.ErrInvalidPath, rel)
	}
	clean := filepath.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s escapes the install root", apkgErrors.ErrInvalidPath, rel)
	}
	return nil
}

// ValidateCanonicalPath checks rel like ValidateRelPath and additionally requires the
// canonical '/'-separated form, so that two different strings never name the same file.
func ValidateCanonicalPath(rel string) error {
	if err := ValidateRelPath(rel); err != nil {
		return err
	}
	if strings.ContainsRune(rel, '\\') || path.Clean(rel) != rel {
		return fmt.Errorf("%w: %s is not in canonical form", apkgErrors.ErrInvalidPath, rel)
	}
	return nil
}

// Resolve joins rel onto root after validating it.
func Resolve(root, rel string) (string, error) {
	if err := ValidateRelPath(rel); err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(rel)), nil
}
