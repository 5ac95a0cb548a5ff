package install

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bitfighters/launcher/internal/apperr"
	"github.com/bitfighters/launcher/internal/branding"
	"github.com/bitfighters/launcher/internal/logging"
	"github.com/bitfighters/launcher/internal/userdata"
)

// Manager owns the install-root setting and the install phase.
type Manager struct {
	rootFile    string
	defaultRoot func() (string, error)
	executable  string
	maxDepth    int
	log         *slog.Logger

	mu   sync.Mutex
	busy Status // NotInstalled when idle, else Downloading or Installing
}

// Option configures a Manager.
type Option func(*Manager)

// WithRootFile sets where the install root is persisted.
func WithRootFile(path string) Option {
	return func(m *Manager) {
		m.rootFile = path
	}
}

// WithDefaultRoot sets the root used when none is configured.
func WithDefaultRoot(dir string) Option {
	return func(m *Manager) {
		m.defaultRoot = func() (string, error) { return dir, nil }
	}
}

// WithExecutable sets the executable base name to look for.
func WithExecutable(name string) Option {
	return func(m *Manager) {
		m.executable = name
	}
}

// WithMaxDepth bounds the executable search.
func WithMaxDepth(depth int) Option {
	return func(m *Manager) {
		m.maxDepth = depth
	}
}

// WithLogger sets the manager logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// NewManager creates a Manager using the launcher's default locations.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootFile:    userdata.GetInstallRootPath(),
		defaultRoot: userdata.DefaultInstallRoot,
		executable:  branding.Executable(),
		maxDepth:    DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = logging.OrDiscard(m.log)
	return m
}

// Executable returns the executable base name the manager looks for.
func (m *Manager) Executable() string {
	return m.executable
}

// LoadRoot returns the persisted install root. Any read failure counts as
// "not configured".
func (m *Manager) LoadRoot() (string, bool) {
	data, err := os.ReadFile(m.rootFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.log.Warn("reading install root setting", "path", m.rootFile, "error", err)
		}
		return "", false
	}
	line, _, _ := strings.Cut(string(data), "\n")
	root := strings.TrimSpace(line)
	if root == "" {
		return "", false
	}
	return root, true
}

// PersistRoot stores path as the install root.
func (m *Manager) PersistRoot(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return apperr.Wrap(apperr.KindStorage, "install.persist_root", "could not save install folder", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.rootFile), userdata.DirPermSecure); err != nil {
		return apperr.Wrap(apperr.KindStorage, "install.persist_root", "could not save install folder", err)
	}
	if err := os.WriteFile(m.rootFile, []byte(abs+"\n"), userdata.FilePermSecure); err != nil {
		return apperr.Wrap(apperr.KindStorage, "install.persist_root", "could not save install folder", err)
	}
	return nil
}

// ClearRoot forgets the persisted install root. A missing file is not an error.
func (m *Manager) ClearRoot() error {
	if err := os.Remove(m.rootFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.Wrap(apperr.KindStorage, "install.clear_root", "could not reset install folder", err)
	}
	return nil
}

// DefaultRoot returns the root used when the user has not chosen one.
func (m *Manager) DefaultRoot() string {
	root, err := m.defaultRoot()
	if err != nil {
		m.log.Warn("resolving default install root", "error", err)
		return ""
	}
	return root
}

// TargetRoot returns the persisted root, or the default one.
func (m *Manager) TargetRoot() string {
	if root, ok := m.LoadRoot(); ok {
		return root
	}
	return m.DefaultRoot()
}

// Resolve probes configuredRoot (or the default root when empty) for the
// executable.
func (m *Manager) Resolve(configuredRoot string) State {
	root := configuredRoot
	if root == "" {
		root = m.DefaultRoot()
	}

	exe, ok := FindExecutable(root, m.executable, m.maxDepth)
	if !ok {
		return State{Status: NotInstalled, Root: root}
	}

	st := State{Status: Installed, Root: filepath.Dir(exe), Executable: exe}
	marker, err := ReadMarker(st.Root)
	if err != nil {
		m.log.Warn("ignoring install marker", "root", st.Root, "error", err)
	}
	if marker != nil {
		st.Version = marker.Version
	}
	return st
}

// State probes the persisted root and overlays the running phase, if any.
func (m *Manager) State() State {
	root, _ := m.LoadRoot()
	st := m.Resolve(root)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy != NotInstalled {
		st.Status = m.busy
	}
	return st
}

// Phase returns Downloading or Installing while work runs, NotInstalled otherwise.
func (m *Manager) Phase() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// BeginDownload moves the manager into the Downloading phase.
func (m *Manager) BeginDownload() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy != NotInstalled {
		return ErrBusy
	}
	m.busy = Downloading
	return nil
}

// BeginInstall moves a running download into the Installing phase.
func (m *Manager) BeginInstall() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy != Downloading {
		return fmt.Errorf("cannot install while %s", m.busy)
	}
	m.busy = Installing
	return nil
}

// End leaves the running phase; the next State call re-probes the disk.
func (m *Manager) End() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = NotInstalled
}
