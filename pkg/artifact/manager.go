// Package artifact installs package bundles under an install root and removes them again.
// File ownership is tracked by the registry in the database subpackage.
package artifact

import (
	"github.com/glorpus-work/apkg/pkg/archive"
	"github.com/glorpus-work/apkg/pkg/artifact/database"
	"github.com/glorpus-work/apkg/pkg/config"
	"github.com/glorpus-work/apkg/pkg/process"
)

// Outcome is how an install attempt ended.
type Outcome string

const (
	OutcomeInstalled   Outcome = "installed"
	OutcomeReinstalled Outcome = "reinstalled"
	OutcomeUpgraded    Outcome = "upgraded"
	OutcomeDowngraded  Outcome = "downgraded"
	OutcomeAborted     Outcome = "aborted"
)

// InstallResult describes a finished install attempt.
type InstallResult struct {
	Outcome         Outcome
	Name            string
	Version         string
	PreviousVersion string
	Maintainer      string
}

// Options carries the collaborators of a ManagerImpl. Registry and Layout are required.
type Options struct {
	Registry   database.InstalledManager
	Extractor  archive.Extractor
	Confirmer  Confirmer
	Runner     process.Runner
	Hooks      HookExecutor
	Platform   string
	Layout     config.Layout
	ScriptsDir string
}

// ManagerImpl is the default Manager.
type ManagerImpl struct {
	registry   database.InstalledManager
	extractor  archive.Extractor
	confirmer  Confirmer
	runner     process.Runner
	hooks      HookExecutor
	platform   string
	layout     config.Layout
	scriptsDir string
}

var _ Manager = (*ManagerImpl)(nil)

// NewManager creates a ManagerImpl. Missing collaborators fall back to the real
// implementations, and a missing Confirmer declines every question.
func NewManager(opts Options) *ManagerImpl {
	m := &ManagerImpl{
		registry:   opts.Registry,
		extractor:  opts.Extractor,
		confirmer:  opts.Confirmer,
		runner:     opts.Runner,
		hooks:      opts.Hooks,
		platform:   opts.Platform,
		layout:     opts.Layout,
		scriptsDir: opts.ScriptsDir,
	}
	if m.extractor == nil {
		m.extractor = archive.NewManager()
	}
	if m.confirmer == nil {
		m.confirmer = AlwaysDecline
	}
	if m.runner == nil {
		m.runner = process.NewExecRunner()
	}
	if m.hooks == nil {
		m.hooks = NewHookExecutor()
	}
	if m.scriptsDir == "" {
		m.scriptsDir = config.DefaultScriptsDir
	}
	return m
}
