package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bitfighters/launcher/internal/apperr"
	"github.com/bitfighters/launcher/internal/auth"
	"github.com/bitfighters/launcher/internal/install"
	"github.com/bitfighters/launcher/internal/logging"
	"github.com/bitfighters/launcher/internal/release"
	"github.com/bitfighters/launcher/internal/updater"
	"github.com/bitfighters/launcher/internal/vault"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrLoginInProgress is returned when Login is called while another
	// login is still running.
	ErrLoginInProgress = errors.New("login already in progress")
	// ErrNotAuthenticated is returned by Launch without a session.
	ErrNotAuthenticated = errors.New("not logged in")
	// ErrNotInstalled is returned by Launch when the game is not installed.
	ErrNotInstalled = errors.New("game not installed")
)

// Authenticator checks credentials against the account server.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*auth.User, error)
}

// ReleaseSource publishes the current version and news.
type ReleaseSource interface {
	Version(ctx context.Context) string
	News(ctx context.Context, limit int) []release.NewsEntry
}

// InstallProbe reports the on-disk install.
type InstallProbe interface {
	State() install.State
	TargetRoot() string
}

// Installer downloads and installs a package.
type Installer interface {
	DownloadAndInstall(ctx context.Context, url, destRoot, version string, onProgress updater.ProgressFunc) (install.State, error)
}

// CredentialStore persists the remembered login.
type CredentialStore interface {
	Load() (vault.Credential, bool)
	Save(username, password string, remember bool, userID int, createdAt string) error
	Clear() error
}

// Deps are the components a Launcher drives.
type Deps struct {
	Auth        Authenticator
	Releases    ReleaseSource
	Installs    InstallProbe
	Installer   Installer
	Credentials CredentialStore
	PackageURL  string
}

// CommandFunc builds the command that starts the game.
type CommandFunc func(name string, args ...string) *exec.Cmd

// Launcher is the session orchestrator.
type Launcher struct {
	deps       Deps
	dispatcher Dispatcher
	window     Window
	newsLimit  int
	command    CommandFunc
	log        *slog.Logger

	loggingIn atomic.Bool

	mu      sync.Mutex
	session Session
	version string
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithDispatcher sets where callbacks run. Defaults to Immediate.
func WithDispatcher(d Dispatcher) Option {
	return func(l *Launcher) {
		l.dispatcher = d
	}
}

// WithWindow sets the window hidden while the game runs.
func WithWindow(w Window) Option {
	return func(l *Launcher) {
		l.window = w
	}
}

// WithNewsLimit sets how many news entries News returns.
func WithNewsLimit(n int) Option {
	return func(l *Launcher) {
		l.newsLimit = n
	}
}

// WithCommand replaces exec.Command for starting the game.
func WithCommand(fn CommandFunc) Option {
	return func(l *Launcher) {
		l.command = fn
	}
}

// WithLogger sets the logger.
func WithLogger(lg *slog.Logger) Option {
	return func(l *Launcher) {
		l.log = lg
	}
}

// New creates a Launcher. Every dependency is required.
func New(deps Deps, opts ...Option) (*Launcher, error) {
	switch {
	case deps.Auth == nil:
		return nil, fmt.Errorf("launcher: auth client is required")
	case deps.Releases == nil:
		return nil, fmt.Errorf("launcher: release source is required")
	case deps.Installs == nil:
		return nil, fmt.Errorf("launcher: install probe is required")
	case deps.Installer == nil:
		return nil, fmt.Errorf("launcher: installer is required")
	case deps.Credentials == nil:
		return nil, fmt.Errorf("launcher: credential store is required")
	case deps.PackageURL == "":
		return nil, fmt.Errorf("launcher: package URL is required")
	}

	l := &Launcher{
		deps:       deps,
		dispatcher: Immediate{},
		window:     NopWindow{},
		newsLimit:  release.DefaultNewsLimit,
		command:    exec.Command,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = logging.OrDiscard(l.log)
	return l, nil
}

// Start returns the remembered login, if any, for pre-filling the form.
// It never logs in by itself.
func (l *Launcher) Start() (vault.Credential, bool) {
	cred, ok := l.deps.Credentials.Load()
	if !ok || !cred.RememberMe {
		return vault.Credential{}, false
	}
	return cred, true
}

// Session returns a copy of the current session.
func (l *Launcher) Session() Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session
}

// Login authenticates and, on success, replaces the session with the
// server's record of the user. A failed login leaves the session as it was.
func (l *Launcher) Login(ctx context.Context, username, password string, remember bool) error {
	if !l.loggingIn.CompareAndSwap(false, true) {
		return ErrLoginInProgress
	}
	defer l.loggingIn.Store(false)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return apperr.New(apperr.KindCredential, "launcher.Login", "enter a username and password")
	}

	user, err := l.deps.Auth.Login(ctx, username, password)
	if err != nil {
		l.log.Info("login failed", "username", username, "kind", apperr.KindOf(err))
		return err
	}

	l.mu.Lock()
	l.session = Session{
		Username:      user.Username,
		UserID:        user.ID,
		CreatedAt:     user.CreatedAt,
		Authenticated: true,
	}
	l.mu.Unlock()

	if err := l.deps.Credentials.Save(user.Username, password, remember, user.ID, user.CreatedAt); err != nil {
		l.log.Warn("could not save login", "error", err)
	}
	l.log.Info("logged in", "username", user.Username, "user_id", user.ID)
	return nil
}

// Logout forgets the saved login and ends the session. The install is
// not touched.
func (l *Launcher) Logout() {
	if err := l.deps.Credentials.Clear(); err != nil {
		l.log.Warn("could not clear saved login", "error", err)
	}
	l.mu.Lock()
	l.session = Session{}
	l.mu.Unlock()
}

// News returns the latest news, never empty.
func (l *Launcher) News(ctx context.Context) []release.NewsEntry {
	return l.deps.Releases.News(ctx, l.newsLimit)
}

// RefreshInstallSurface fetches the published version and probes the
// install concurrently. Neither side can fail the other.
func (l *Launcher) RefreshInstallSurface(ctx context.Context) Surface {
	var (
		version string
		state   install.State
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		version = l.deps.Releases.Version(gctx)
		return nil
	})
	g.Go(func() error {
		state = l.deps.Installs.State()
		return nil
	})
	_ = g.Wait()

	known := release.IsKnown(version)
	if known {
		l.mu.Lock()
		l.version = version
		l.mu.Unlock()
	}

	s := Surface{
		Version:      version,
		VersionKnown: known,
		State:        state,
		Installed:    state.IsInstalled(),
		Action:       PrimaryAction(state),
	}
	s.UpdateAvailable = s.Installed && updater.NeedsUpdate(state.Version, version)
	return s
}

// Install downloads the package into root, or into the target root when
// root is empty. The root is remembered only when the install succeeds.
// Progress callbacks go through the dispatcher.
func (l *Launcher) Install(ctx context.Context, root string, onProgress updater.ProgressFunc) (install.State, error) {
	if root == "" {
		root = l.deps.Installs.TargetRoot()
	}

	l.mu.Lock()
	version := l.version
	l.mu.Unlock()
	if version == "" {
		version = l.deps.Releases.Version(ctx)
	}

	var progress updater.ProgressFunc
	if onProgress != nil {
		progress = func(p updater.Progress) {
			l.dispatcher.Post(func() { onProgress(p) })
		}
	}

	l.log.Info("installing", "root", root, "version", version)
	return l.deps.Installer.DownloadAndInstall(ctx, l.deps.PackageURL, root, version, progress)
}

// Launch starts the game as the logged-in user. The window is hidden
// while the game runs. The returned channel yields the exit result once.
func (l *Launcher) Launch(ctx context.Context) (<-chan error, error) {
	const op = "launcher.Launch"
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess := l.Session()
	if !sess.Authenticated {
		return nil, apperr.Wrap(apperr.KindCredential, op, "log in before playing", ErrNotAuthenticated)
	}
	st := l.deps.Installs.State()
	if !st.IsInstalled() {
		return nil, apperr.Wrap(apperr.KindInstall, op, "install the game before playing", ErrNotInstalled)
	}

	cmd := l.command(st.Executable, LaunchArgs(sess)...)
	cmd.Dir = st.Root
	if err := cmd.Start(); err != nil {
		l.log.Error("could not start game", "executable", st.Executable, "error", err)
		return nil, apperr.Wrap(apperr.KindInstall, op, "could not start the game", err)
	}
	l.log.Info("game started", "pid", cmd.Process.Pid, "username", sess.Username)
	l.dispatcher.Post(l.window.Hide)

	done := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		l.log.Info("game exited", "error", err)
		l.dispatcher.Post(l.window.Show)
		done <- err
		close(done)
	}()
	return done, nil
}

// LaunchArgs are the command-line arguments that hand the session to the game.
func LaunchArgs(s Session) []string {
	return []string{
		"-username", s.Username,
		"-userid", strconv.Itoa(s.UserID),
		"-created", s.CreatedAt,
	}
}

// LoginAsync runs Login in the background and posts the result.
func (l *Launcher) LoginAsync(ctx context.Context, username, password string, remember bool, done func(error)) {
	go func() {
		err := l.Login(ctx, username, password, remember)
		if done != nil {
			l.dispatcher.Post(func() { done(err) })
		}
	}()
}

// RefreshAsync runs RefreshInstallSurface in the background and posts the result.
func (l *Launcher) RefreshAsync(ctx context.Context, done func(Surface)) {
	go func() {
		s := l.RefreshInstallSurface(ctx)
		if done != nil {
			l.dispatcher.Post(func() { done(s) })
		}
	}()
}

// InstallAsync runs Install in the background and posts the result.
func (l *Launcher) InstallAsync(ctx context.Context, root string, onProgress updater.ProgressFunc, done func(install.State, error)) {
	go func() {
		st, err := l.Install(ctx, root, onProgress)
		if done != nil {
			l.dispatcher.Post(func() { done(st, err) })
		}
	}()
}
