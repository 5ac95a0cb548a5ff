package userdata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitfighters/launcher/internal/config"
	"github.com/bitfighters/launcher/internal/platform"
)

// CheckHome validates the launcher home and the files in it. When fix is
// true, it attempts to repair permissions and remove unusable files.
func CheckHome(w io.Writer, fix bool) error {
	root := config.Dir()

	fmt.Fprintln(w, "Launcher home check:")

	if _, statErr := os.Stat(root); os.IsNotExist(statErr) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", root)
		if fix {
			if err := EnsureHome(); err != nil {
				return fmt.Errorf("auto-fix home: %w", err)
			}
			fmt.Fprintf(w, "  [FIX ] Created %s\n", root)
		} else {
			fmt.Fprintln(w, "         It is created on the next login or install")
		}
		return nil
	}
	checkDirWithPerm(w, root, DirPermSecure, fix)

	checkFilePerm(w, GetVaultPath(), FilePermSecure, fix)
	checkInstallRoot(w, GetInstallRootPath(), fix)
	checkOptionalFile(w, config.FilePath())
	checkOptionalFile(w, GetLogPath())

	return nil
}

func checkDirWithPerm(w io.Writer, path string, expectedPerm os.FileMode, fix bool) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [FAIL] %s exists but is not a directory\n", path)
		return
	}

	actualPerm := info.Mode().Perm()
	if actualPerm != expectedPerm && !platform.IsWindows() {
		fmt.Fprintf(w, "  [WARN] %s has permissions %o (expected %o)\n", path, actualPerm, expectedPerm)
		if fix {
			if chErr := platform.Chmod(path, expectedPerm); chErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not fix permissions on %s: %v\n", path, chErr)
				return
			}
			fmt.Fprintf(w, "  [FIX ] Fixed permissions on %s to %o\n", path, expectedPerm)
		}
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s (permissions %o)\n", path, actualPerm)
}

func checkFilePerm(w io.Writer, path string, expectedPerm os.FileMode, fix bool) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [ -- ] %s not present\n", filepath.Base(path))
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return
	}

	perm := info.Mode().Perm()
	if perm != expectedPerm && !platform.IsWindows() {
		fmt.Fprintf(w, "  [WARN] %s has permissions %o (expected %o)\n", path, perm, expectedPerm)
		if fix {
			if chErr := platform.Chmod(path, expectedPerm); chErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not fix permissions on %s: %v\n", path, chErr)
				return
			}
			fmt.Fprintf(w, "  [FIX ] Fixed permissions on %s to %o\n", path, expectedPerm)
		}
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s (permissions %o)\n", path, perm)
}

// checkInstallRoot reports the remembered install root. A file whose first
// line is not an existing directory is removed when fixing.
func checkInstallRoot(w io.Writer, path string, fix bool) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [ -- ] %s not set (default install root is used)\n", filepath.Base(path))
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return
	}
	sc := bufio.NewScanner(f)
	var root string
	if sc.Scan() {
		root = strings.TrimSpace(sc.Text())
	}
	f.Close()

	info, statErr := os.Stat(root)
	if root != "" && statErr == nil && info.IsDir() {
		fmt.Fprintf(w, "  [ OK ] install root %s\n", root)
		return
	}

	fmt.Fprintf(w, "  [WARN] install root %q is not a directory\n", root)
	if fix {
		if rmErr := os.Remove(path); rmErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not remove %s: %v\n", path, rmErr)
			return
		}
		fmt.Fprintf(w, "  [FIX ] Removed %s\n", path)
	}
}

func checkOptionalFile(w io.Writer, path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [ -- ] %s not present\n", filepath.Base(path))
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
}
