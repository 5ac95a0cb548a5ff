package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BITFIGHTERS_HOME", dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func TestDir_EnvOverride(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, dir, Dir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), FilePath())
}

func TestCurrent_Defaults(t *testing.T) {
	isolate(t)
	Load()

	s := Current()
	assert.Equal(t, "https://bitfighters.net", s.BaseURL)
	assert.Equal(t, 10*time.Second, s.RequestTimeout)
	assert.Equal(t, 10, s.NewsLimit)
	assert.Equal(t, "https://bitfighters.net/BitFighters.zip", s.PackageURL())
}

func TestCurrent_EnvOverridesFile(t *testing.T) {
	isolate(t)
	t.Setenv("BITFIGHTERS_BASE_URL", "http://127.0.0.1:8080/")
	Load()

	assert.Equal(t, "http://127.0.0.1:8080", Current().BaseURL)
}

func TestSetAndReload(t *testing.T) {
	isolate(t)
	Load()
	require.NoError(t, Set(KeyNewsLimit, "3"))

	viper.Reset()
	Load()
	assert.Equal(t, "3", Get(KeyNewsLimit))
	assert.Equal(t, 3, Current().NewsLimit)
}
