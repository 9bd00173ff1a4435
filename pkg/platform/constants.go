// Package platform provides the short platform tags used to select repository entries
// and to decide whether installed scripts need an executable bit.
package platform

const (
	// OSWindows represents the Windows operating system.
	OSWindows = "windows"
	// OSLinux represents the Linux operating system.
	OSLinux = "linux"
	// OSDarwin represents the macOS operating system.
	OSDarwin = "darwin"
	// OSFreeBSD represents the FreeBSD operating system.
	OSFreeBSD = "freebsd"
	// OSOpenBSD represents the OpenBSD operating system.
	OSOpenBSD = "openbsd"
	// OSNetBSD represents the NetBSD operating system.
	OSNetBSD = "netbsd"

	// ArchAMD64 represents the AMD64 (x86_64) architecture.
	ArchAMD64 = "amd64"
	// Arch386 represents the 32-bit x86 architecture.
	Arch386 = "386"
	// ArchARM represents the ARM architecture (32-bit).
	ArchARM = "arm"
	// ArchARM64 represents the ARM64 (AArch64) architecture.
	ArchARM64 = "arm64"

	// AnyTag marks a repository entry that installs on every platform.
	AnyTag = "any"

	// Linux64 is the tag of 64-bit x86 Linux.
	Linux64 = "lnx64"
	// Windows64 is the tag of 64-bit x86 Windows.
	Windows64 = "win64"
	// Mac64 is the tag of 64-bit x86 macOS.
	Mac64 = "mac64"
)

var osPrefixes = map[string]string{
	OSLinux:   "lnx",
	OSWindows: "win",
	OSDarwin:  "mac",
	OSFreeBSD: "fbsd",
	OSOpenBSD: "obsd",
	OSNetBSD:  "nbsd",
}

var archSuffixes = map[string]string{
	ArchAMD64: "64",
	Arch386:   "32",
	ArchARM:   "arm",
	ArchARM64: "arm64",
}
