package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/glorpus-work/apkg/internal/logger"
	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/fsutil"
)

// Remove deletes the files owned by name and then its registry record.
// A file that is already gone counts as deleted. Any other deletion failure stops the loop and
// keeps the record, so Remove can be retried.
func (m *ManagerImpl) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.registry.HasPackage(name) {
		return fmt.Errorf("%w: %s", apkgErrors.ErrNotInstalled, name)
	}

	files, err := m.registry.Files(name)
	if err != nil {
		return err
	}

	logger.Info("Removing package", logger.Fields{"package": name, "files": len(files)})
	root := m.layout.Root
	for _, rel := range files {
		target, err := fsutil.Resolve(root, rel)
		if err != nil {
			return apkgErrors.NewFileOperationError(apkgErrors.ErrDelete, "remove", rel, err)
		}

		if err := os.Remove(target); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("File already missing", logger.Fields{"package": name, "file": rel})
				continue
			}
			return apkgErrors.NewFileOperationError(apkgErrors.ErrDelete, "remove", rel, err)
		}
		fsutil.RemoveEmptyParents(target, root)
	}

	if err := m.registry.Unregister(name); err != nil {
		return err
	}
	logger.Success("Package removed", logger.Fields{"package": name})
	return nil
}
