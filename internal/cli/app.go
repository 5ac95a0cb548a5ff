package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/bitfighters/launcher/internal/apperr"
	"github.com/bitfighters/launcher/internal/auth"
	"github.com/bitfighters/launcher/internal/branding"
	"github.com/bitfighters/launcher/internal/config"
	"github.com/bitfighters/launcher/internal/install"
	"github.com/bitfighters/launcher/internal/launcher"
	"github.com/bitfighters/launcher/internal/release"
	"github.com/bitfighters/launcher/internal/updater"
	"github.com/bitfighters/launcher/internal/userdata"
	"github.com/bitfighters/launcher/internal/vault"
)

// app bundles the components a command needs.
type app struct {
	settings config.Settings
	auth     *auth.Client
	releases *release.Client
	installs *install.Manager
	creds    *vault.Vault
	launcher *launcher.Launcher
}

// httpClient is replaced in tests.
var httpClient = http.DefaultClient

func newApp() (*app, error) {
	if err := userdata.EnsureHome(); err != nil {
		return nil, err
	}
	s := config.Current()

	defaultRoot, err := userdata.DefaultInstallRoot()
	if err != nil {
		return nil, fmt.Errorf("resolving default install root: %w", err)
	}

	a := &app{settings: s}
	a.auth = auth.New(s.BaseURL,
		auth.WithHTTPClient(httpClient),
		auth.WithTimeout(s.RequestTimeout),
		auth.WithLogger(logger),
	)
	a.releases = release.New(s.BaseURL,
		release.WithHTTPClient(httpClient),
		release.WithTimeout(s.RequestTimeout),
		release.WithLogger(logger),
	)
	a.installs = install.NewManager(
		install.WithRootFile(userdata.GetInstallRootPath()),
		install.WithDefaultRoot(defaultRoot),
		install.WithExecutable(branding.Executable()),
		install.WithLogger(logger),
	)
	a.creds = vault.New(userdata.GetVaultPath(), vault.WithLogger(logger))

	a.launcher, err = launcher.New(launcher.Deps{
		Auth:        a.auth,
		Releases:    a.releases,
		Installs:    a.installs,
		Installer:   updater.New(a.installs, updater.WithHTTPClient(httpClient), updater.WithLogger(logger)),
		Credentials: a.creds,
		PackageURL:  s.PackageURL(),
	}, launcher.WithNewsLimit(s.NewsLimit), launcher.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return a, nil
}

// signalContext is cancelled on interrupt.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}

// userError returns the text shown for err.
func userError(err error) string {
	switch {
	case errors.Is(err, launcher.ErrLoginInProgress):
		return err.Error()
	case apperr.KindOf(err) != apperr.KindUnknown:
		return apperr.UserMessage(err)
	default:
		return err.Error()
	}
}
