package index

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/apkg/internal/logger"
	"github.com/glorpus-work/apkg/pkg/archive"
	"github.com/glorpus-work/apkg/pkg/artifact"
	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/fsutil"
	"github.com/glorpus-work/apkg/pkg/model"
	"github.com/glorpus-work/apkg/pkg/platform"
)

// Generator builds a repository document from a directory of bundles.
// Each bundle's manifest supplies the entry name. The entry URL is BaseURL joined with the
// bundle's path relative to Dir, so the directory can be published as is.
type Generator struct {
	// Dir is searched recursively for *.apkg bundles.
	Dir string
	// OutputPath is the document to write, e.g. "/srv/repo/index.json".
	OutputPath string
	// BaseURL is the absolute URL under which Dir is served.
	BaseURL string
	// OS is the platform tag recorded for every entry. Empty means "any".
	OS string
	// ForceOverwrite controls whether to overwrite an existing output file.
	ForceOverwrite bool
}

// NewGenerator creates a new Generator with default values.
func NewGenerator(dir, outputPath, baseURL string) *Generator {
	return &Generator{
		Dir:        dir,
		OutputPath: outputPath,
		BaseURL:    baseURL,
	}
}

// Validate checks if the generator is properly configured.
func (g *Generator) Validate() error {
	if g.Dir == "" {
		return apkgErrors.Wrapf(apkgErrors.ErrInvalidPath, "source directory is required")
	}
	if g.OutputPath == "" {
		return apkgErrors.Wrapf(apkgErrors.ErrInvalidPath, "output path is required")
	}

	if fi, err := os.Stat(g.Dir); err != nil {
		return apkgErrors.Wrapf(apkgErrors.ErrInvalidPath, "source directory does not exist: %s", g.Dir)
	} else if !fi.IsDir() {
		return apkgErrors.Wrapf(apkgErrors.ErrInvalidPath, "source is not a directory: %s", g.Dir)
	}

	u, err := url.Parse(g.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base URL %q must be absolute", apkgErrors.ErrConfigValidation, g.BaseURL)
	}

	if !g.ForceOverwrite && fsutil.Exists(g.OutputPath) {
		return apkgErrors.Wrapf(apkgErrors.ErrInvalidPath, "output file exists (use ForceOverwrite to overwrite): %s", g.OutputPath)
	}
	return nil
}

// Generate scans Dir, builds an Index, and writes it to OutputPath.
// Bundles are listed in lexical path order.
func (g *Generator) Generate(ctx context.Context) (*Index, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	tag := g.OS
	if tag == "" {
		tag = platform.AnyTag
	}

	am := archive.NewManager()
	idx := &Index{PackageList: []model.RepositoryEntry{}}
	walkErr := filepath.WalkDir(g.Dir, func(p string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), "."+artifact.BundleSuffix) {
			return nil
		}

		entry, err := g.describeBundle(ctx, am, p, tag)
		if err != nil {
			return fmt.Errorf("failed to process bundle %s: %w", p, err)
		}
		logger.Debug("Indexed bundle", logger.Fields{"package": entry.Name, "url": entry.URL})
		idx.PackageList = append(idx.PackageList, entry)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if len(idx.PackageList) == 0 {
		return nil, fmt.Errorf("%w: no .%s bundles found in %s", apkgErrors.ErrInvalidPath, artifact.BundleSuffix, g.Dir)
	}

	data, err := idx.ToJSON()
	if err != nil {
		return nil, err
	}
	if err := fsutil.EnsureFileDir(g.OutputPath); err != nil {
		return nil, err
	}
	if err := os.WriteFile(g.OutputPath, append(data, '\n'), fsutil.FileModeDefault); err != nil {
		return nil, err
	}
	return idx, nil
}

func (g *Generator) describeBundle(ctx context.Context, am *archive.Manager, bundlePath, tag string) (model.RepositoryEntry, error) {
	data, err := am.ReadFile(ctx, bundlePath, artifact.ManifestFile)
	if err != nil {
		return model.RepositoryEntry{}, err
	}
	m, err := artifact.ParseManifest(bytes.NewReader(data))
	if err != nil {
		return model.RepositoryEntry{}, err
	}

	rel, err := filepath.Rel(g.Dir, bundlePath)
	if err != nil {
		return model.RepositoryEntry{}, err
	}
	base, err := url.Parse(g.BaseURL)
	if err != nil {
		return model.RepositoryEntry{}, err
	}
	base.Path = path.Join(base.Path, filepath.ToSlash(rel))

	return model.RepositoryEntry{Name: m.PackageName, OS: tag, URL: base.String()}, nil
}
