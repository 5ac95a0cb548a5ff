package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitfighters/launcher/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by Settings.
const (
	KeyBaseURL        = "base_url"
	KeyRequestTimeout = "request_timeout"
	KeyNewsLimit      = "news_limit"
	KeyLogLevel       = "log_level"
	KeyLogFile        = "log_file"
	KeyPackagePath    = "package_path"
)

// DefaultRequestTimeout bounds login and version requests.
const DefaultRequestTimeout = 10 * time.Second

// Settings is the typed view of the launcher configuration.
type Settings struct {
	BaseURL        string
	RequestTimeout time.Duration
	NewsLimit      int
	LogLevel       string
	LogFile        string
	PackagePath    string
}

// PackageURL returns the absolute URL of the game package.
func (s Settings) PackageURL() string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + strings.TrimLeft(s.PackagePath, "/")
}

// Dir returns the path to the launcher home directory (~/.bitfighters/).
// BITFIGHTERS_HOME overrides it.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyBaseURL, branding.BaseURL())
	viper.SetDefault(KeyRequestTimeout, DefaultRequestTimeout)
	viper.SetDefault(KeyNewsLimit, 10)
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFile, "")
	viper.SetDefault(KeyPackagePath, branding.PackageFile())

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the typed settings. Load must have been called.
func Current() Settings {
	s := Settings{
		BaseURL:        strings.TrimRight(viper.GetString(KeyBaseURL), "/"),
		RequestTimeout: viper.GetDuration(KeyRequestTimeout),
		NewsLimit:      viper.GetInt(KeyNewsLimit),
		LogLevel:       viper.GetString(KeyLogLevel),
		LogFile:        viper.GetString(KeyLogFile),
		PackagePath:    viper.GetString(KeyPackagePath),
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = DefaultRequestTimeout
	}
	if s.NewsLimit <= 0 {
		s.NewsLimit = 10
	}
	return s
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
