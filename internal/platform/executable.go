package platform

import (
	"runtime"
	"strings"
)

// IsWindows returns true if the current OS is Windows.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}

// ExecutableName returns the on-disk file name for an executable called base.
func ExecutableName(base string) string {
	if IsWindows() && !strings.HasSuffix(strings.ToLower(base), ".exe") {
		return base + ".exe"
	}
	return base
}

// MatchesExecutable reports whether a file name is the executable called base.
// The comparison ignores case and tolerates a ".exe" suffix on every OS, since
// the game package is built for Windows first.
func MatchesExecutable(name, base string) bool {
	if strings.EqualFold(name, base) {
		return true
	}
	return strings.EqualFold(name, base+".exe")
}
