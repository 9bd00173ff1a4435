package artifact

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/glorpus-work/apkg/pkg/artifact/database"
	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/fsutil"
	"github.com/glorpus-work/apkg/pkg/model"
)

const (
	// ManifestFile is the manifest's name at the root of every bundle.
	ManifestFile = "PKGINFO.json"

	// HookPostInstall names the script run after a package has been registered.
	HookPostInstall = "post-install"
)

// Project describes who publishes a package.
type Project struct {
	Maintainer  string `json:"maintainer"`
	Description string `json:"description,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
}

// Manifest is the content of PKGINFO.json.
type Manifest struct {
	PackageName    string            `json:"packageName"`
	PackageVersion string            `json:"packageVersion"`
	Files          []string          `json:"files"`
	Project        Project           `json:"project"`
	Hooks          map[string]string `json:"hooks,omitempty"`
}

// ParseManifest decodes and validates a manifest.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: malformed %s: %v", apkgErrors.ErrParse, ManifestFile, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseManifestFromFile parses the manifest stored at filePath.
func ParseManifestFromFile(filePath string) (*Manifest, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %w", apkgErrors.ErrParse, filePath, err)
	}
	defer func() { _ = f.Close() }()
	return ParseManifest(f)
}

// Validate checks the name, the version and that every file stays below the install root.
// File paths must be in canonical '/'-separated form, since ownership is compared by string.
func (m *Manifest) Validate() error {
	if err := database.ValidateName(m.PackageName); err != nil {
		return fmt.Errorf("%w: %w", apkgErrors.ErrParse, err)
	}
	if _, err := model.ParseVersion(m.PackageVersion); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(m.Files))
	for _, f := range m.Files {
		if err := fsutil.ValidateCanonicalPath(f); err != nil {
			return fmt.Errorf("%w: %w", apkgErrors.ErrParse, NewPathTraversalError(f, err))
		}
		if _, dup := seen[f]; dup {
			return fmt.Errorf("%w: file %s listed twice", apkgErrors.ErrParse, f)
		}
		seen[f] = struct{}{}
	}

	for hook, script := range m.Hooks {
		if hook != HookPostInstall {
			return fmt.Errorf("%w: unknown hook %q", apkgErrors.ErrParse, hook)
		}
		if err := fsutil.ValidateCanonicalPath(script); err != nil {
			return fmt.Errorf("%w: %w", apkgErrors.ErrParse, NewPathTraversalError(script, err))
		}
		if path.Ext(script) != ".tengo" {
			return fmt.Errorf("%w: hook script %s must have the .tengo extension", apkgErrors.ErrParse, script)
		}
	}
	return nil
}

// Hook returns the script registered for hook, if any.
func (m *Manifest) Hook(hook string) (string, bool) {
	script, ok := m.Hooks[hook]
	return script, ok && script != ""
}
