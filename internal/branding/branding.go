// Package branding provides compile-time identity values for the launcher.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults cover a missing or empty file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	BaseURL     string `yaml:"base_url"`
	Executable  string `yaml:"executable"`
	PackageFile string `yaml:"package_file"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "bitfighters",
			DisplayName: "BitFighters Launcher",
			Description: "Log in, install, update and launch BitFighters",
			HomeDir:     ".bitfighters",
			EnvPrefix:   "BITFIGHTERS",
			GoModule:    "github.com/bitfighters/launcher",
			BaseURL:     "https://bitfighters.net",
			Executable:  "BitFighters",
			PackageFile: "BitFighters.zip",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "bitfighters").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".bitfighters").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "BITFIGHTERS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// BaseURL returns the default backend URL, without a trailing slash.
func BaseURL() string { load(); return strings.TrimRight(defaults.BaseURL, "/") }

// Executable returns the game executable name without a platform suffix.
func Executable() string { load(); return defaults.Executable }

// PackageFile returns the file name of the game package on the backend.
func PackageFile() string { load(); return defaults.PackageFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "BITFIGHTERS_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
