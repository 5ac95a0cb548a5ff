package launcher

import (
	"context"
	"errors"
	"sync"

	"github.com/bitfighters/launcher/internal/auth"
	"github.com/bitfighters/launcher/internal/install"
	"github.com/bitfighters/launcher/internal/release"
	"github.com/bitfighters/launcher/internal/updater"
	"github.com/bitfighters/launcher/internal/vault"
)

type fakeAuth struct {
	login func(ctx context.Context, username, password string) (*auth.User, error)
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*auth.User, error) {
	return f.login(ctx, username, password)
}

func acceptAll(id int) *fakeAuth {
	return &fakeAuth{login: func(_ context.Context, username, _ string) (*auth.User, error) {
		return &auth.User{ID: id, Username: username, CreatedAt: "2024-01-01 10:00:00"}, nil
	}}
}

type fakeReleases struct {
	version string
	news    []release.NewsEntry
}

func (f *fakeReleases) Version(context.Context) string { return f.version }

func (f *fakeReleases) News(_ context.Context, limit int) []release.NewsEntry {
	if len(f.news) > limit {
		return f.news[:limit]
	}
	return f.news
}

type fakeInstalls struct {
	state install.State
	root  string
}

func (f *fakeInstalls) State() install.State { return f.state }
func (f *fakeInstalls) TargetRoot() string   { return f.root }

type fakeInstaller struct {
	calls   int
	url     string
	root    string
	version string
	err     error
}

func (f *fakeInstaller) DownloadAndInstall(_ context.Context, url, destRoot, version string, onProgress updater.ProgressFunc) (install.State, error) {
	f.calls++
	f.url, f.root, f.version = url, destRoot, version
	if onProgress != nil {
		onProgress(updater.Progress{Received: 5, Total: 10})
		onProgress(updater.Progress{Received: 10, Total: 10})
	}
	if f.err != nil {
		return install.State{Status: install.NotInstalled, Root: destRoot}, f.err
	}
	return install.State{Status: install.Installed, Root: destRoot, Version: version}, nil
}

type memCreds struct {
	mu      sync.Mutex
	cred    vault.Credential
	has     bool
	saveErr error
	cleared int
}

func (m *memCreds) Load() (vault.Credential, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred, m.has
}

func (m *memCreds) Save(username, password string, remember bool, userID int, createdAt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.cred = vault.Credential{RememberMe: remember}
	if remember {
		m.cred.Username = username
		m.cred.PasswordDigest = vault.PasswordDigest(password)
		m.cred.UserID = userID
		m.cred.UserCreatedAt = createdAt
	}
	m.has = true
	return nil
}

func (m *memCreds) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred, m.has = vault.Credential{}, false
	m.cleared++
	return nil
}

// recordingDispatcher runs callbacks inline and counts them.
type recordingDispatcher struct {
	mu    sync.Mutex
	posts int
}

func (d *recordingDispatcher) Post(fn func()) {
	d.mu.Lock()
	d.posts++
	d.mu.Unlock()
	fn()
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.posts
}

type recordingWindow struct {
	mu     sync.Mutex
	events []string
}

func (w *recordingWindow) Hide() { w.record("hide") }
func (w *recordingWindow) Show() { w.record("show") }

func (w *recordingWindow) record(e string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, e)
}

func (w *recordingWindow) snapshot() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.events...)
}

var errBoom = errors.New("boom")
