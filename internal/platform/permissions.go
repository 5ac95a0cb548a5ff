package platform

import (
	"os"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// MarkExecutable adds the execute bits to path for everyone who can read it.
// Zip entries created on Windows carry no mode, so extracted game binaries
// need this before they can be started on Unix.
func MarkExecutable(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	perm := info.Mode().Perm()
	return Chmod(path, perm|(perm&0444)>>2)
}
