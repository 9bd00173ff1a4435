package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, level string, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	InitLogger(level, true)
	fn()

	return buf.String()
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:     "info log",
			level:    "info",
			logFn:    func() { Info("test info message") },
			contains: []string{"test info message", "level=info"},
		},
		{
			name:     "debug log with debug level",
			level:    "debug",
			logFn:    func() { Debug("test debug message") },
			contains: []string{"test debug message", "level=debug"},
		},
		{
			name:     "debug log with info level",
			level:    "info",
			logFn:    func() { Debug("test debug message") },
			excludes: []string{"test debug message"},
		},
		{
			name:     "warn log with fields",
			level:    "warn",
			logFn:    func() { Warn("test warning", Fields{"key1": "value1", "key2": 42}) },
			contains: []string{"test warning", "level=warning", "key1=value1", "key2=42"},
		},
		{
			name:     "info suppressed at error level",
			level:    "error",
			logFn:    func() { Info("quiet") },
			excludes: []string{"quiet"},
		},
		{
			name:     "error log",
			level:    "error",
			logFn:    func() { Errorf("failed %s", "badly") },
			contains: []string{"failed badly", "level=error"},
		},
		{
			name:     "success log",
			level:    "info",
			logFn:    func() { Success("operation completed", Fields{"package": "foo"}) },
			contains: []string{"operation completed", "status=success", "package=foo"},
		},
		{
			name:     "unknown level falls back to info",
			level:    "loud",
			logFn:    func() { Infof("formatted %s", "message") },
			contains: []string{"formatted message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(t, tt.level, tt.logFn)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestMergeFields(t *testing.T) {
	merged := mergeFields(Fields{"a": 1}, Fields{"b": 2, "a": 3})
	assert.Equal(t, 3, merged["a"])
	assert.Equal(t, 2, merged["b"])
	assert.Empty(t, mergeFields())
}
