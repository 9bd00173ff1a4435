package artifact_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/glorpus-work/apkg/pkg/archive"
	"github.com/glorpus-work/apkg/pkg/artifact"
	"github.com/glorpus-work/apkg/pkg/artifact/database"
	mock_artifact "github.com/glorpus-work/apkg/pkg/artifact/mocks"
	"github.com/glorpus-work/apkg/pkg/config"
	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/platform"
	mock_process "github.com/glorpus-work/apkg/pkg/process/mocks"
)

type fixture struct {
	root      string
	layout    config.Layout
	reg       *database.Registry
	confirmer *mock_artifact.MockConfirmer
	runner    *mock_process.MockRunner
	hooks     *mock_artifact.MockHookExecutor
	mgr       *artifact.ManagerImpl
}

func newFixture(t *testing.T, tag string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{root: t.TempDir()}
	f.layout = config.NewLayout(f.root)
	f.reg = database.NewRegistry(f.layout.InstalledDir())
	f.confirmer = mock_artifact.NewMockConfirmer(ctrl)
	f.runner = mock_process.NewMockRunner(ctrl)
	f.hooks = mock_artifact.NewMockHookExecutor(ctrl)
	f.mgr = artifact.NewManager(artifact.Options{
		Registry:  f.reg,
		Extractor: archive.NewManager(),
		Confirmer: f.confirmer,
		Runner:    f.runner,
		Hooks:     f.hooks,
		Platform:  tag,
		Layout:    f.layout,
	})
	return f
}

// bundle packs a PKGINFO.json for name/version listing files, plus the given contents.
func bundle(t *testing.T, name, version string, files []string, contents map[string]string) string {
	t.Helper()
	return bundleManifest(t, artifact.Manifest{
		PackageName:    name,
		PackageVersion: version,
		Files:          files,
		Project:        artifact.Project{Maintainer: "dev@example.com"},
	}, contents)
}

func bundleManifest(t *testing.T, m artifact.Manifest, contents map[string]string) string {
	t.Helper()
	src := t.TempDir()

	data, err := json.Marshal(m)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(src, artifact.ManifestFile), data, 0o644))

	for _, f := range m.Files {
		if _, ok := contents[f]; !ok {
			contents[f] = m.PackageName + "@" + m.PackageVersion + ":" + f
		}
	}
	for rel, content := range contents {
		p := filepath.Join(src, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	out := filepath.Join(t.TempDir(), m.PackageName+".apkg")
	require.NoError(t, archive.NewManager().Create(context.Background(), src, out))
	return out
}

func (f *fixture) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) install(t *testing.T, name, version string, files ...string) {
	t.Helper()
	_, err := f.mgr.Install(context.Background(), bundle(t, name, version, files, map[string]string{}))
	require.NoError(t, err)
}

func TestInstall_Fresh(t *testing.T) {
	f := newFixture(t, platform.Windows64)

	res, err := f.mgr.Install(context.Background(), bundle(t, "tool", "1.0.0", []string{"bin/tool", "share/doc/tool.txt"}, map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, artifact.OutcomeInstalled, res.Outcome)
	assert.Equal(t, "tool", res.Name)
	assert.Equal(t, "1.0.0", res.Version)
	assert.Empty(t, res.PreviousVersion)
	assert.Equal(t, "dev@example.com", res.Maintainer)

	assert.Equal(t, "tool@1.0.0:bin/tool", f.read(t, "bin/tool"))
	assert.Equal(t, "tool@1.0.0:share/doc/tool.txt", f.read(t, "share/doc/tool.txt"))

	files, err := f.reg.Files("tool")
	require.NoError(t, err)
	assert.Equal(t, []string{"bin/tool", "share/doc/tool.txt"}, files)
	v, err := f.reg.InstalledVersion("tool")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v)
}

func TestInstall_RegistersManifestFilesOnly(t *testing.T) {
	f := newFixture(t, platform.Windows64)

	_, err := f.mgr.Install(context.Background(), bundle(t, "tool", "1.0.0", []string{"bin/tool"}, map[string]string{"extra/unlisted": "x"}))
	require.NoError(t, err)

	files, err := f.reg.Files("tool")
	require.NoError(t, err)
	assert.Equal(t, []string{"bin/tool"}, files)
	assert.NoFileExists(t, filepath.Join(f.root, "extra", "unlisted"))
}

func TestInstall_ExecBit(t *testing.T) {
	f := newFixture(t, platform.Linux64)
	script := filepath.Join(f.root, "share", "scripts", "run.sh")

	f.runner.EXPECT().Run(gomock.Any(), f.root, "chmod", []string{"+x", script}).Return(nil)
	f.install(t, "tool", "1.0.0", "bin/tool", "share/scripts/run.sh")
	assert.FileExists(t, script)
}

func TestInstall_ExecBitFailureIsWarning(t *testing.T) {
	f := newFixture(t, platform.Mac64)

	f.runner.EXPECT().Run(gomock.Any(), f.root, "chmod", gomock.Any()).Return(assert.AnError)
	f.install(t, "tool", "1.0.0", "share/scripts/run.sh")
	assert.True(t, f.reg.HasPackage("tool"))
}

func TestInstall_NoExecBitOnWindows(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "1.0.0", "share/scripts/run.cmd")
	assert.True(t, f.reg.HasPackage("tool"))
}

func TestInstall_ConflictWithOtherPackage(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "other", "1.0.0", "bin/shared")

	_, err := f.mgr.Install(context.Background(), bundle(t, "tool", "1.0.0", []string{"bin/tool", "bin/shared"}, map[string]string{}))
	require.ErrorIs(t, err, apkgErrors.ErrConflict)

	var ce *artifact.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "bin/shared", ce.Path)
	assert.Equal(t, "other", ce.Owner)

	assert.NoFileExists(t, filepath.Join(f.root, "bin", "tool"))
	assert.Equal(t, "other@1.0.0:bin/shared", f.read(t, "bin/shared"))
	assert.False(t, f.reg.HasPackage("tool"))
}

func TestInstall_ReinstallDeclined(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "1.0.0", "bin/tool", "lib/tool.so")
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "bin", "tool"), []byte("local edit"), 0o644))

	f.confirmer.EXPECT().Confirm("reinstall same package version [y/n]?").Return(false, nil)

	res, err := f.mgr.Install(context.Background(), bundle(t, "tool", "1.0.0", []string{"bin/tool", "lib/tool.so"}, map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, artifact.OutcomeAborted, res.Outcome)

	assert.Equal(t, "local edit", f.read(t, "bin/tool"))
	files, err := f.reg.Files("tool")
	require.NoError(t, err)
	assert.Equal(t, []string{"bin/tool", "lib/tool.so"}, files)
	v, err := f.reg.InstalledVersion("tool")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v)
}

func TestInstall_ReinstallAccepted(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "1.0", "bin/tool")
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "bin", "tool"), []byte("local edit"), 0o644))

	f.confirmer.EXPECT().Confirm(gomock.Any()).Return(true, nil)

	res, err := f.mgr.Install(context.Background(), bundle(t, "tool", "1.0.0", []string{"bin/tool"}, map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, artifact.OutcomeReinstalled, res.Outcome)
	assert.Equal(t, "1.0", res.PreviousVersion)
	assert.Equal(t, "tool@1.0.0:bin/tool", f.read(t, "bin/tool"))
}

func TestInstall_ConfirmerError(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "1.0.0", "bin/tool")

	f.confirmer.EXPECT().Confirm(gomock.Any()).Return(false, assert.AnError)

	_, err := f.mgr.Install(context.Background(), bundle(t, "tool", "1.0.0", []string{"bin/tool"}, map[string]string{}))
	assert.ErrorIs(t, err, assert.AnError)
	assert.True(t, f.reg.HasPackage("tool"))
}

func TestInstall_UpgradeWithoutPrompt(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "1.9.9", "bin/tool", "share/tool/old.txt")

	res, err := f.mgr.Install(context.Background(), bundle(t, "tool", "1.10.0", []string{"bin/tool", "share/tool/new.txt"}, map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, artifact.OutcomeUpgraded, res.Outcome)
	assert.Equal(t, "1.9.9", res.PreviousVersion)

	assert.Equal(t, "tool@1.10.0:bin/tool", f.read(t, "bin/tool"))
	assert.FileExists(t, filepath.Join(f.root, "share", "tool", "new.txt"))
	assert.NoFileExists(t, filepath.Join(f.root, "share", "tool", "old.txt"))

	files, err := f.reg.Files("tool")
	require.NoError(t, err)
	assert.Equal(t, []string{"bin/tool", "share/tool/new.txt"}, files)
	v, err := f.reg.InstalledVersion("tool")
	require.NoError(t, err)
	assert.Equal(t, "1.10.0", v)
}

func TestInstall_DowngradeAccepted(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "2.0.0", "bin/tool", "bin/tool-helper")

	f.confirmer.EXPECT().Confirm("downgrade package (2.0.0->1.5.0) [y/n]?").Return(true, nil)

	res, err := f.mgr.Install(context.Background(), bundle(t, "tool", "1.5.0", []string{"bin/tool"}, map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, artifact.OutcomeDowngraded, res.Outcome)

	files, err := f.reg.Files("tool")
	require.NoError(t, err)
	assert.Equal(t, []string{"bin/tool"}, files)
	v, err := f.reg.InstalledVersion("tool")
	require.NoError(t, err)
	assert.Equal(t, "1.5.0", v)
	assert.NoFileExists(t, filepath.Join(f.root, "bin", "tool-helper"))
}

func TestInstall_DowngradeDeclined(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "2.0.0", "bin/tool")

	f.confirmer.EXPECT().Confirm(gomock.Any()).Return(false, nil)

	res, err := f.mgr.Install(context.Background(), bundle(t, "tool", "1.0.0", []string{"bin/tool"}, map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, artifact.OutcomeAborted, res.Outcome)
	assert.Equal(t, "tool@2.0.0:bin/tool", f.read(t, "bin/tool"))
}

func TestInstall_DisjointDowngradeStillPrompts(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "2.0.0", "bin/tool-v2")

	f.confirmer.EXPECT().Confirm("downgrade package (2.0.0->1.0.0) [y/n]?").Return(true, nil)

	res, err := f.mgr.Install(context.Background(), bundle(t, "tool", "1.0.0", []string{"bin/tool-v1"}, map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, artifact.OutcomeDowngraded, res.Outcome)
	assert.Equal(t, "2.0.0", res.PreviousVersion)
	assert.NoFileExists(t, filepath.Join(f.root, "bin", "tool-v2"))
	assert.FileExists(t, filepath.Join(f.root, "bin", "tool-v1"))
}

func TestInstall_DefaultConfirmerDeclines(t *testing.T) {
	root := t.TempDir()
	layout := config.NewLayout(root)
	mgr := artifact.NewManager(artifact.Options{
		Registry: database.NewRegistry(layout.InstalledDir()),
		Platform: platform.Windows64,
		Layout:   layout,
	})

	archivePath := bundle(t, "tool", "1.0.0", []string{"bin/tool"}, map[string]string{})
	_, err := mgr.Install(context.Background(), archivePath)
	require.NoError(t, err)

	res, err := mgr.Install(context.Background(), archivePath)
	require.NoError(t, err)
	assert.Equal(t, artifact.OutcomeAborted, res.Outcome)
}

func TestInstall_UpgradeConflictWithThirdPackage(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "1.0.0", "bin/tool")
	f.install(t, "other", "1.0.0", "bin/other")

	_, err := f.mgr.Install(context.Background(), bundle(t, "tool", "2.0.0", []string{"bin/tool", "bin/other"}, map[string]string{}))
	require.ErrorIs(t, err, apkgErrors.ErrConflict)

	v, err := f.reg.InstalledVersion("tool")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v)
	assert.Equal(t, "tool@1.0.0:bin/tool", f.read(t, "bin/tool"))
}

func TestInstall_OverwritesUnownedFile(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	require.NoError(t, os.MkdirAll(filepath.Join(f.root, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "bin", "tool"), []byte("stale"), 0o644))

	f.install(t, "tool", "1.0.0", "bin/tool")
	assert.Equal(t, "tool@1.0.0:bin/tool", f.read(t, "bin/tool"))
}

func TestInstall_StructuralFailures(t *testing.T) {
	tests := []struct {
		name    string
		archive func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing archive",
			archive: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.apkg") },
			wantErr: apkgErrors.ErrExtract,
		},
		{
			name: "missing manifest",
			archive: func(t *testing.T) string {
				src := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(src, "bin"), []byte("x"), 0o644))
				out := filepath.Join(t.TempDir(), "bad.apkg")
				require.NoError(t, archive.NewManager().Create(context.Background(), src, out))
				return out
			},
			wantErr: apkgErrors.ErrParse,
		},
		{
			name: "listed file missing from bundle",
			archive: func(t *testing.T) string {
				src := t.TempDir()
				doc := `{"packageName":"tool","packageVersion":"1.0","files":["bin/tool"]}`
				require.NoError(t, os.WriteFile(filepath.Join(src, artifact.ManifestFile), []byte(doc), 0o644))
				out := filepath.Join(t.TempDir(), "bad.apkg")
				require.NoError(t, archive.NewManager().Create(context.Background(), src, out))
				return out
			},
			wantErr: apkgErrors.ErrParse,
		},
		{
			name: "path traversal",
			archive: func(t *testing.T) string {
				src := t.TempDir()
				doc := `{"packageName":"tool","packageVersion":"1.0","files":["../escape"]}`
				require.NoError(t, os.WriteFile(filepath.Join(src, artifact.ManifestFile), []byte(doc), 0o644))
				out := filepath.Join(t.TempDir(), "bad.apkg")
				require.NoError(t, archive.NewManager().Create(context.Background(), src, out))
				return out
			},
			wantErr: apkgErrors.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, platform.Windows64)
			_, err := f.mgr.Install(context.Background(), tt.archive(t))
			assert.ErrorIs(t, err, tt.wantErr)

			names, err := f.reg.ListPackages()
			require.NoError(t, err)
			assert.Empty(t, names)
			assert.NoDirExists(t, filepath.Join(f.root, "bin"))
		})
	}
}

func TestInstall_NonCanonicalPathCannotTakeOwnedFile(t *testing.T) {
	for _, file := range []string{"bin/./tool", "bin//tool", "x/../bin/tool", "./bin/tool", "x\nbin/tool"} {
		t.Run(file, func(t *testing.T) {
			f := newFixture(t, platform.Windows64)
			f.install(t, "alpha", "1.0.0", "bin/tool")

			src := t.TempDir()
			data, err := json.Marshal(artifact.Manifest{PackageName: "beta", PackageVersion: "1.0.0", Files: []string{file}})
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(filepath.Join(src, artifact.ManifestFile), data, 0o644))
			require.NoError(t, os.MkdirAll(filepath.Join(src, "bin"), 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(src, "bin", "tool"), []byte("beta"), 0o644))
			out := filepath.Join(t.TempDir(), "beta.apkg")
			require.NoError(t, archive.NewManager().Create(context.Background(), src, out))

			_, err = f.mgr.Install(context.Background(), out)
			require.ErrorIs(t, err, apkgErrors.ErrParse)
			assert.ErrorIs(t, err, apkgErrors.ErrInvalidPath)

			assert.Equal(t, "alpha@1.0.0:bin/tool", f.read(t, "bin/tool"))
			assert.False(t, f.reg.HasPackage("beta"))
			files, err := f.reg.ListInstalledFiles()
			require.NoError(t, err)
			assert.Equal(t, []string{"bin/tool"}, files)
		})
	}
}

func TestInstall_CopyFailureNamesFile(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	// a regular file where a parent directory is needed
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "share"), []byte("in the way"), 0o644))

	_, err := f.mgr.Install(context.Background(), bundle(t, "tool", "1.0.0", []string{"bin/tool", "share/x"}, map[string]string{}))
	require.ErrorIs(t, err, apkgErrors.ErrCopy)

	var foe *apkgErrors.FileOperationError
	require.ErrorAs(t, err, &foe)
	assert.Equal(t, "share/x", foe.Path)

	assert.Equal(t, "tool@1.0.0:bin/tool", f.read(t, "bin/tool"))
	assert.False(t, f.reg.HasPackage("tool"))
}

func TestInstall_UpgradeCopyFailureLeavesNoRecord(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "1.0.0", "bin/tool", "lib/tool")
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "share"), []byte("in the way"), 0o644))

	_, err := f.mgr.Install(context.Background(), bundle(t, "tool", "2.0.0", []string{"bin/tool", "share/x"}, map[string]string{}))
	require.ErrorIs(t, err, apkgErrors.ErrCopy)

	var foe *apkgErrors.FileOperationError
	require.ErrorAs(t, err, &foe)
	assert.Equal(t, "share/x", foe.Path)

	// the old version was removed before copying started
	assert.False(t, f.reg.HasPackage("tool"))
	assert.NoFileExists(t, filepath.Join(f.root, "lib", "tool"))
	assert.Equal(t, "tool@2.0.0:bin/tool", f.read(t, "bin/tool"))
}

func TestInstall_ScratchDirFailure(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	require.NoError(t, os.WriteFile(f.layout.TmpDir(), []byte("in the way"), 0o644))

	_, err := f.mgr.Install(context.Background(), bundle(t, "tool", "1.0.0", []string{"bin/tool"}, map[string]string{}))
	assert.ErrorIs(t, err, apkgErrors.ErrScratchDir)
	assert.False(t, f.reg.HasPackage("tool"))
}

func TestInstall_PostInstallHook(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	archivePath := bundleManifest(t, artifact.Manifest{
		PackageName:    "tool",
		PackageVersion: "1.0.0",
		Files:          []string{"bin/tool"},
		Hooks:          map[string]string{artifact.HookPostInstall: "hooks/setup.tengo"},
	}, map[string]string{"hooks/setup.tengo": "x := 1"})

	f.hooks.EXPECT().
		ExecuteHook(gomock.Any(), filepath.Join(f.layout.ExtractDir(), "hooks", "setup.tengo"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, hc *artifact.HookContext) error {
			assert.Equal(t, "tool", hc.PackageName)
			assert.Equal(t, "1.0.0", hc.PackageVersion)
			assert.Equal(t, string(artifact.OutcomeInstalled), hc.Operation)
			assert.Equal(t, f.root, hc.InstallRoot)
			return assert.AnError
		})

	res, err := f.mgr.Install(context.Background(), archivePath)
	require.NoError(t, err)
	assert.Equal(t, artifact.OutcomeInstalled, res.Outcome)
	assert.NoFileExists(t, filepath.Join(f.root, "hooks", "setup.tengo"))
}

func TestRemove(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "1.0.0", "bin/tool", "share/tool/data/a.txt")
	f.install(t, "other", "1.0.0", "share/other.txt")

	require.NoError(t, f.mgr.Remove(context.Background(), "tool"))

	assert.False(t, f.reg.HasPackage("tool"))
	assert.NoFileExists(t, filepath.Join(f.root, "bin", "tool"))
	assert.NoDirExists(t, filepath.Join(f.root, "share", "tool"))
	assert.FileExists(t, filepath.Join(f.root, "share", "other.txt"))

	files, err := f.reg.ListInstalledFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"share/other.txt"}, files)
}

func TestRemove_NotInstalled(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	err := f.mgr.Remove(context.Background(), "ghost")
	assert.ErrorIs(t, err, apkgErrors.ErrNotInstalled)
}

func TestRemove_MissingFileIsTolerated(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "1.0.0", "bin/tool", "bin/tool-helper")
	require.NoError(t, os.Remove(filepath.Join(f.root, "bin", "tool")))

	require.NoError(t, f.mgr.Remove(context.Background(), "tool"))
	assert.False(t, f.reg.HasPackage("tool"))
	assert.NoFileExists(t, filepath.Join(f.root, "bin", "tool-helper"))
}

func TestRemove_DeleteFailureKeepsRecord(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "tool", "1.0.0", "bin/tool", "lib/tool")

	// a non-empty directory where the file used to be cannot be removed
	blocker := filepath.Join(f.root, "lib", "tool")
	require.NoError(t, os.Remove(blocker))
	require.NoError(t, os.MkdirAll(filepath.Join(blocker, "child"), 0o755))

	err := f.mgr.Remove(context.Background(), "tool")
	require.ErrorIs(t, err, apkgErrors.ErrDelete)

	var foe *apkgErrors.FileOperationError
	require.ErrorAs(t, err, &foe)
	assert.Equal(t, "lib/tool", foe.Path)
	assert.True(t, f.reg.HasPackage("tool"))

	require.NoError(t, os.RemoveAll(blocker))
	require.NoError(t, f.mgr.Remove(context.Background(), "tool"))
	assert.False(t, f.reg.HasPackage("tool"))
}

func TestOwnershipStaysDisjoint(t *testing.T) {
	f := newFixture(t, platform.Windows64)
	f.install(t, "a", "1.0.0", "bin/a", "share/common/a")
	f.install(t, "b", "1.0.0", "bin/b")

	_, err := f.mgr.Install(context.Background(), bundle(t, "b", "2.0.0", []string{"bin/b", "share/common/a"}, map[string]string{}))
	require.ErrorIs(t, err, apkgErrors.ErrConflict)

	files, err := f.reg.ListInstalledFiles()
	require.NoError(t, err)
	seen := map[string]int{}
	for _, file := range files {
		seen[file]++
	}
	for file, n := range seen {
		assert.Equal(t, 1, n, file)
	}
}
