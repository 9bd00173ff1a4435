package config

import "path/filepath"

// Layout computes every persisted path below an install root.
type Layout struct {
	Root string
}

// NewLayout returns the layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// StateDir is var/apkg.
func (l Layout) StateDir() string {
	return filepath.Join(l.Root, "var", "apkg")
}

// ReposFile lists one repository index URL per line.
func (l Layout) ReposFile() string {
	return filepath.Join(l.StateDir(), "repos")
}

// ConfigFile is the optional settings file.
func (l Layout) ConfigFile() string {
	return filepath.Join(l.StateDir(), "config.yaml")
}

// InstalledDir holds one directory per installed package.
func (l Layout) InstalledDir() string {
	return filepath.Join(l.StateDir(), "installed")
}

// PackageDir is the registry directory of a single package.
func (l Layout) PackageDir(name string) string {
	return filepath.Join(l.InstalledDir(), name)
}

// TmpDir is the scratch area.
func (l Layout) TmpDir() string {
	return filepath.Join(l.Root, "tmp")
}

// RepoScratchFile receives each downloaded index document.
func (l Layout) RepoScratchFile() string {
	return filepath.Join(l.TmpDir(), "repo.json")
}

// ExtractDir is cleared and refilled for every install.
func (l Layout) ExtractDir() string {
	return filepath.Join(l.TmpDir(), "plugin-extract")
}

// DownloadDir receives archives fetched by package name.
func (l Layout) DownloadDir() string {
	return filepath.Join(l.TmpDir(), "downloads")
}

// DownloadFile is the download target of the named package.
func (l Layout) DownloadFile(name string) string {
	return filepath.Join(l.DownloadDir(), name+".apkg")
}
