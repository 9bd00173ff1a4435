package platform

import (
	"runtime"
	"strings"
)

// Tag returns the tag of the running platform, e.g. "lnx64".
func Tag() string {
	return TagFor(runtime.GOOS, runtime.GOARCH)
}

// TagFor builds the tag for an OS/architecture pair. Unknown values are used verbatim.
func TagFor(goos, goarch string) string {
	goos = NormalizeOS(goos)
	goarch = NormalizeArch(goarch)

	prefix, ok := osPrefixes[goos]
	if !ok {
		prefix = goos
	}
	suffix, ok := archSuffixes[goarch]
	if !ok {
		suffix = goarch
	}
	return prefix + suffix
}

// Matches reports whether an entry tagged entryTag installs on the platform tagged tag.
func Matches(entryTag, tag string) bool {
	return entryTag == AnyTag || entryTag == tag
}

// NeedsExecBit reports whether files in the scripts area must be marked executable on tag.
func NeedsExecBit(tag string) bool {
	return tag != "" && tag != AnyTag && !strings.HasPrefix(tag, osPrefixes[OSWindows])
}

// NormalizeOS normalizes OS names to a common format
func NormalizeOS(os string) string {
	os = strings.ToLower(os)
	switch os {
	case "macos", "osx":
		return OSDarwin
	case "win":
		return OSWindows
	default:
		return os
	}
}

// NormalizeArch normalizes architecture names to a common format
func NormalizeArch(arch string) string {
	arch = strings.ToLower(arch)
	switch arch {
	case "x86_64", "x64":
		return ArchAMD64
	case "x86", "i386", "i686":
		return Arch386
	case "aarch64":
		return ArchARM64
	default:
		return arch
	}
}
