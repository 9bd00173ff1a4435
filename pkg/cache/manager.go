package cache

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/apkg/internal/logger"
	"github.com/glorpus-work/apkg/pkg/config"
	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/fsutil"
)

// DefaultManager implements Manager on top of an install root layout.
type DefaultManager struct {
	layout config.Layout
}

var _ Manager = (*DefaultManager)(nil)

// NewManager creates a scratch area manager for the given layout.
func NewManager(layout config.Layout) *DefaultManager {
	return &DefaultManager{layout: layout}
}

// Clean removes scratch files according to the specified options.
// The installed registry and the repository list are never touched.
func (cm *DefaultManager) Clean(options CleanOptions) (*CleanResult, error) {
	if !options.Downloads && !options.Scratch {
		options.All = true
	}

	result := &CleanResult{}
	if options.All || options.Downloads {
		size, err := cleanDirectory(cm.layout.DownloadDir())
		if err != nil {
			return nil, apkgErrors.Wrapf(err, "failed to clean downloads")
		}
		result.DownloadsFreed = size
		result.TotalFreed += size
	}

	if options.All || options.Scratch {
		size, err := cleanDirectory(cm.layout.ExtractDir())
		if err != nil {
			return nil, apkgErrors.Wrapf(err, "failed to clean extraction directory")
		}
		fileSize, err := removeFile(cm.layout.RepoScratchFile())
		if err != nil {
			return nil, apkgErrors.Wrapf(err, "failed to remove repository scratch file")
		}
		result.ScratchFreed = size + fileSize
		result.TotalFreed += result.ScratchFreed
	}

	logger.Debug("Cleaned scratch area", logger.Fields{
		"downloads": result.DownloadsFreed,
		"scratch":   result.ScratchFreed,
	})
	return result, nil
}

// GetInfo returns the current size of the scratch area.
func (cm *DefaultManager) GetInfo() (*Info, error) {
	info := &Info{Directory: cm.layout.TmpDir()}

	size, files, err := getDirSizeAndFiles(cm.layout.DownloadDir())
	if err != nil {
		return nil, apkgErrors.Wrapf(err, "failed to get download info")
	}
	info.DownloadSize = size
	info.DownloadFiles = files

	size, files, err = getDirSizeAndFiles(cm.layout.ExtractDir())
	if err != nil {
		return nil, apkgErrors.Wrapf(err, "failed to get scratch info")
	}
	if fi, statErr := os.Stat(cm.layout.RepoScratchFile()); statErr == nil && !fi.IsDir() {
		size += fi.Size()
		files++
	}
	info.ScratchSize = size
	info.ScratchFiles = files

	info.TotalSize = info.DownloadSize + info.ScratchSize
	return info, nil
}

// GetDirectory returns the scratch area root.
func (cm *DefaultManager) GetDirectory() string {
	return cm.layout.TmpDir()
}

// cleanDirectory empties dir and returns the bytes freed.
func cleanDirectory(dir string) (int64, error) {
	size, _, err := getDirSizeAndFiles(dir)
	if err != nil {
		return 0, err
	}
	if !fsutil.Exists(dir) {
		return 0, nil
	}
	if err := fsutil.ResetDir(dir); err != nil {
		return 0, &apkgErrors.FileOperationError{Kind: apkgErrors.ErrDelete, Op: "reset", Path: dir, Err: err}
	}
	return size, nil
}

func removeFile(p string) (int64, error) {
	fi, err := os.Stat(p)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if err := os.Remove(p); err != nil {
		return 0, &apkgErrors.FileOperationError{Kind: apkgErrors.ErrDelete, Op: "remove", Path: p, Err: err}
	}
	return fi.Size(), nil
}

// getDirSizeAndFiles returns the total size and number of regular files below dir.
// A missing directory is empty.
func getDirSizeAndFiles(dir string) (size int64, count int, err error) {
	if _, err = os.Stat(dir); os.IsNotExist(err) {
		return 0, 0, nil
	}

	err = filepath.Walk(dir, func(_ string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			size += info.Size()
			count++
		}
		return nil
	})
	if err != nil {
		err = apkgErrors.Wrapf(err, "error walking directory %s", dir)
	}
	return size, count, err
}
