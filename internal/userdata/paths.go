package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitfighters/launcher/internal/branding"
	"github.com/bitfighters/launcher/internal/config"
)

// File and directory names inside the launcher home.
const (
	VaultFile       = "credentials.dat"
	InstallRootFile = "install_root"
	LogFile         = "launcher.log"
	DocumentsDir    = "Documents"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
)

// GetVaultPath returns the path of the encrypted credential file.
func GetVaultPath() string {
	return filepath.Join(config.Dir(), VaultFile)
}

// GetInstallRootPath returns the path of the single-line install-root setting.
func GetInstallRootPath() string {
	return filepath.Join(config.Dir(), InstallRootFile)
}

// GetLogPath returns the default log file path.
func GetLogPath() string {
	return filepath.Join(config.Dir(), LogFile)
}

// DefaultInstallRoot returns the install root used when the user has not
// chosen one. BITFIGHTERS_INSTALL_ROOT overrides the Documents folder.
func DefaultInstallRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("INSTALL_ROOT")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, DocumentsDir), nil
}

// EnsureHome creates the launcher home directory with owner-only access.
func EnsureHome() error {
	dir := config.Dir()
	if err := os.MkdirAll(dir, DirPermSecure); err != nil {
		return fmt.Errorf("creating launcher home %s: %w", dir, err)
	}
	return nil
}
