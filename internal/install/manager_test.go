package install

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, defaultRoot string) *Manager {
	t.Helper()
	return NewManager(
		WithRootFile(filepath.Join(t.TempDir(), "install_root")),
		WithDefaultRoot(defaultRoot),
		WithExecutable("BitFighters"),
	)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
}

func TestResolve_EmptyDirectory(t *testing.T) {
	root := t.TempDir()
	st := newTestManager(t, root).Resolve(root)
	assert.Equal(t, NotInstalled, st.Status)
	assert.False(t, st.IsInstalled())
	assert.Equal(t, root, st.Root)
}

func TestResolve_MissingDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nope")
	st := newTestManager(t, root).Resolve(root)
	assert.Equal(t, NotInstalled, st.Status)
}

func TestResolve_NestedTwoLevels(t *testing.T) {
	root := t.TempDir()
	exe := filepath.Join(root, "BitFighters", "Build", "BitFighters.exe")
	writeFile(t, exe, "bin")

	st := newTestManager(t, root).Resolve(root)
	require.Equal(t, Installed, st.Status)
	assert.Equal(t, exe, st.Executable)
	assert.Equal(t, filepath.Join(root, "BitFighters", "Build"), st.Root)
}

func TestResolve_DefaultsWhenNotConfigured(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "BitFighters", "BitFighters.exe"), "bin")

	st := newTestManager(t, root).Resolve("")
	assert.Equal(t, Installed, st.Status)
}

func TestResolve_PrefersShallowest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "b", "c", "BitFighters.exe"), "deep")
	writeFile(t, filepath.Join(root, "z", "BitFighters.exe"), "shallow")

	st := newTestManager(t, root).Resolve(root)
	assert.Equal(t, filepath.Join(root, "z"), st.Root)
}

func TestResolve_IgnoresDirectoryNamedLikeExecutable(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "BitFighters"), 0o755))

	st := newTestManager(t, root).Resolve(root)
	assert.Equal(t, NotInstalled, st.Status)
}

func TestResolve_DepthBound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "1", "2", "3", "BitFighters.exe"), "bin")

	m := NewManager(WithRootFile(filepath.Join(t.TempDir(), "r")), WithExecutable("BitFighters"), WithMaxDepth(2))
	assert.Equal(t, NotInstalled, m.Resolve(root).Status)
}

func TestResolve_SkipsUnreadableDirectories(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "a-locked")
	require.NoError(t, os.MkdirAll(locked, 0o755))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })
	writeFile(t, filepath.Join(root, "b", "BitFighters.exe"), "bin")

	st := newTestManager(t, root).Resolve(root)
	assert.Equal(t, Installed, st.Status)
}

func TestResolve_ReadsMarkerVersion(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "BitFighters")
	writeFile(t, filepath.Join(dir, "BitFighters.exe"), "bin")
	require.NoError(t, WriteMarker(dir, &Marker{Version: "1.2.0", InstalledAt: time.Now()}))

	st := newTestManager(t, root).Resolve(root)
	assert.Equal(t, "1.2.0", st.Version)
}

func TestRootPersistence(t *testing.T) {
	m := newTestManager(t, t.TempDir())

	_, ok := m.LoadRoot()
	assert.False(t, ok)

	dir := t.TempDir()
	require.NoError(t, m.PersistRoot(dir))
	got, ok := m.LoadRoot()
	require.True(t, ok)
	assert.Equal(t, dir, got)
	assert.Equal(t, dir, m.TargetRoot())

	require.NoError(t, m.ClearRoot())
	require.NoError(t, m.ClearRoot())
	_, ok = m.LoadRoot()
	assert.False(t, ok)
}

func TestLoadRoot_Garbage(t *testing.T) {
	m := newTestManager(t, "")
	require.NoError(t, os.WriteFile(m.rootFile, []byte("   \n\n"), 0o600))
	_, ok := m.LoadRoot()
	assert.False(t, ok)
}

func TestLoadRoot_UnreadableIsNotConfigured(t *testing.T) {
	m := newTestManager(t, "")
	require.NoError(t, os.MkdirAll(m.rootFile, 0o755)) // a directory cannot be read as a file
	_, ok := m.LoadRoot()
	assert.False(t, ok)
}

func TestState_ReprobesEachTime(t *testing.T) {
	root := t.TempDir()
	m := newTestManager(t, root)
	require.NoError(t, m.PersistRoot(root))
	exe := filepath.Join(root, "BitFighters.exe")
	writeFile(t, exe, "bin")

	assert.Equal(t, Installed, m.State().Status)
	require.NoError(t, os.Remove(exe))
	assert.Equal(t, NotInstalled, m.State().Status)
}

func TestPhaseTransitions(t *testing.T) {
	m := newTestManager(t, t.TempDir())
	assert.Equal(t, NotInstalled, m.Phase())

	require.Error(t, m.BeginInstall())
	require.NoError(t, m.BeginDownload())
	assert.ErrorIs(t, m.BeginDownload(), ErrBusy)
	assert.Equal(t, Downloading, m.State().Status)

	require.NoError(t, m.BeginInstall())
	assert.Equal(t, Installing, m.Phase())

	m.End()
	assert.Equal(t, NotInstalled, m.Phase())
	require.NoError(t, m.BeginDownload())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "installed", Installed.String())
	assert.Equal(t, "downloading", Downloading.String())
	assert.Equal(t, "unknown", Status(99).String())
}

func TestStateIsInstalled(t *testing.T) {
	assert.True(t, State{Status: Installed}.IsInstalled())
	assert.False(t, State{Status: Downloading, Executable: "/games/BitFighters"}.IsInstalled())
	assert.False(t, State{Status: NotInstalled}.IsInstalled())
}
