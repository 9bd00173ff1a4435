package artifact

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/apkg/pkg/archive"
	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
)

func writeInput(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func TestPacker_Pack(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		noInput     bool
		hooks       map[string]string
		expectedErr error
		wantFiles   []string
	}{
		{
			name: "successful bundle creation",
			files: map[string]string{
				"bin/tool":                 "binary",
				"share/scripts/tool.sh":    "#!/bin/sh",
				"hooks/post-install.tengo": "x := 1",
			},
			hooks:     map[string]string{HookPostInstall: "hooks/post-install.tengo"},
			wantFiles: []string{"bin/tool", "share/scripts/tool.sh"},
		},
		{
			name:        "missing input directory",
			noInput:     true,
			expectedErr: apkgErrors.ErrInvalidPath,
		},
		{
			name:        "manifest already present",
			files:       map[string]string{ManifestFile: "{}"},
			expectedErr: apkgErrors.ErrInvalidPath,
		},
		{
			name:        "unreferenced hook script",
			files:       map[string]string{"hooks/stray.tengo": ""},
			expectedErr: apkgErrors.ErrInvalidPath,
		},
		{
			name:        "hook outside the hooks directory",
			files:       map[string]string{"bin/setup.tengo": ""},
			hooks:       map[string]string{HookPostInstall: "bin/setup.tengo"},
			expectedErr: apkgErrors.ErrInvalidPath,
		},
		{
			name:        "hook script missing",
			files:       map[string]string{"bin/tool": ""},
			hooks:       map[string]string{HookPostInstall: "hooks/post-install.tengo"},
			expectedErr: apkgErrors.ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			inputDir := filepath.Join(tempDir, "input")
			outputDir := filepath.Join(tempDir, "output")
			if !tt.noInput {
				require.NoError(t, os.MkdirAll(inputDir, 0o755))
				writeInput(t, inputDir, tt.files)
			}

			p := NewPacker("tool", "1.0.0", "dev@example.com", "a tool", "", tt.hooks, inputDir, outputDir)
			out, err := p.Pack(context.Background())
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.NoFileExists(t, p.OutputFile())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(outputDir, "tool_1.0.0.apkg"), out)

			data, err := archive.NewManager().ReadFile(context.Background(), out, ManifestFile)
			require.NoError(t, err)
			m, err := ParseManifest(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, "tool", m.PackageName)
			assert.Equal(t, "1.0.0", m.PackageVersion)
			assert.Equal(t, "dev@example.com", m.Project.Maintainer)
			assert.Equal(t, tt.wantFiles, m.Files)

			script, ok := m.Hook(HookPostInstall)
			assert.True(t, ok)
			assert.Equal(t, "hooks/post-install.tengo", script)
		})
	}
}

func TestPacker_InvalidName(t *testing.T) {
	inputDir := t.TempDir()
	writeInput(t, inputDir, map[string]string{"bin/tool": "x"})

	_, err := NewPacker("../evil", "1.0.0", "", "", "", nil, inputDir, t.TempDir()).Pack(context.Background())
	assert.ErrorIs(t, err, apkgErrors.ErrParse)
}
