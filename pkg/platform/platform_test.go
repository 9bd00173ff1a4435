package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag(t *testing.T) {
	assert.Equal(t, TagFor(runtime.GOOS, runtime.GOARCH), Tag())
	assert.NotEmpty(t, Tag())
}

func TestTagFor(t *testing.T) {
	tests := []struct {
		goos     string
		goarch   string
		expected string
	}{
		{"linux", "amd64", Linux64},
		{"linux", "386", "lnx32"},
		{"linux", "aarch64", "lnxarm64"},
		{"windows", "amd64", Windows64},
		{"Windows", "x86_64", Windows64},
		{"darwin", "amd64", Mac64},
		{"macos", "arm64", "macarm64"},
		{"freebsd", "amd64", "fbsd64"},
		{"plan9", "mips", "plan9mips"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			assert.Equal(t, tt.expected, TagFor(tt.goos, tt.goarch))
		})
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches(AnyTag, Linux64))
	assert.True(t, Matches(Linux64, Linux64))
	assert.False(t, Matches(Windows64, Linux64))
	assert.False(t, Matches("", Linux64))
}

func TestNeedsExecBit(t *testing.T) {
	assert.True(t, NeedsExecBit(Linux64))
	assert.True(t, NeedsExecBit(Mac64))
	assert.True(t, NeedsExecBit("fbsd64"))
	assert.False(t, NeedsExecBit(Windows64))
	assert.False(t, NeedsExecBit("win32"))
	assert.False(t, NeedsExecBit(AnyTag))
	assert.False(t, NeedsExecBit(""))
}
