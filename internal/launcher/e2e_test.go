package launcher

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/bitfighters/launcher/internal/auth"
	"github.com/bitfighters/launcher/internal/install"
	"github.com/bitfighters/launcher/internal/release"
	"github.com/bitfighters/launcher/internal/updater"
	"github.com/bitfighters/launcher/internal/vault"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gameScript = `#!/bin/sh
printf '%s\n' "$@" > "$(dirname "$0")/args.txt"
`

func gameZip(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	hdr := &zip.FileHeader{Name: "BitFighters/BitFighters", Method: zip.Deflate}
	hdr.SetMode(0o755)
	w, err := zw.CreateHeader(hdr)
	require.NoError(t, err)
	_, err = w.Write([]byte(gameScript))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newGameServer(t *testing.T) *httptest.Server {
	t.Helper()
	pkg := gameZip(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/main_proxy.php", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req["password"] != "hunter2" {
			w.Write([]byte(`{"success":false,"message":"nope"}`))
			return
		}
		w.Write([]byte(`{"success":true,"user":{"id":42,"username":"alice","highest_score":0,"created_at":"2024-01-01 10:00:00"}}`))
	})
	mux.HandleFunc("/version.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("1.2.0\n"))
	})
	mux.HandleFunc("/BitFighters.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(pkg)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestEndToEnd_LoginInstallLaunch(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("launches a shell script")
	}
	srv := newGameServer(t)
	home := t.TempDir()
	gamesDir := filepath.Join(t.TempDir(), "Documents")

	manager := install.NewManager(
		install.WithRootFile(filepath.Join(home, "install_root")),
		install.WithDefaultRoot(gamesDir),
		install.WithExecutable("BitFighters"),
	)
	creds := vault.New(filepath.Join(home, "credentials.dat"), vault.WithSecret([]byte("test-machine")))
	window := &recordingWindow{}

	l, err := New(Deps{
		Auth:        auth.New(srv.URL, auth.WithHTTPClient(srv.Client())),
		Releases:    release.New(srv.URL, release.WithHTTPClient(srv.Client())),
		Installs:    manager,
		Installer:   updater.New(manager, updater.WithHTTPClient(srv.Client()), updater.WithTempDir(t.TempDir())),
		Credentials: creds,
		PackageURL:  srv.URL + "/BitFighters.zip",
	}, WithWindow(window))
	require.NoError(t, err)
	ctx := context.Background()

	_, ok := l.Start()
	assert.False(t, ok)

	require.Error(t, l.Login(ctx, "alice", "wrong", true))
	require.NoError(t, l.Login(ctx, "alice", "hunter2", true))

	s := l.RefreshInstallSurface(ctx)
	assert.Equal(t, "1.2.0", s.Version)
	assert.Equal(t, ActionDownload, s.Action)

	var last updater.Progress
	st, err := l.Install(ctx, "", func(p updater.Progress) { last = p })
	require.NoError(t, err)
	assert.Equal(t, install.Installed, st.Status)
	assert.Equal(t, "1.2.0", st.Version)
	assert.Equal(t, last.Total, last.Received)

	s = l.RefreshInstallSurface(ctx)
	assert.Equal(t, ActionLaunch, s.Action)
	assert.False(t, s.UpdateAvailable)

	exited, err := l.Launch(ctx)
	require.NoError(t, err)
	select {
	case err := <-exited:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("game did not exit")
	}

	args, err := os.ReadFile(filepath.Join(st.Root, "args.txt"))
	require.NoError(t, err)
	assert.Equal(t, "-username\nalice\n-userid\n42\n-created\n2024-01-01 10:00:00", strings.TrimSpace(string(args)))
	assert.Equal(t, []string{"hide", "show"}, window.snapshot())

	// A new process sees the remembered login.
	cred, ok := l.Start()
	require.True(t, ok)
	assert.Equal(t, "alice", cred.Username)
	assert.Equal(t, 42, cred.UserID)

	l.Logout()
	_, ok = l.Start()
	assert.False(t, ok)
	assert.True(t, manager.State().IsInstalled(), "logout keeps the install")
}
