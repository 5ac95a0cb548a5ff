package updater

import (
	"context"
	"fmt"
	"os"

	"github.com/bitfighters/launcher/internal/apperr"
	"github.com/bitfighters/launcher/internal/install"
	"github.com/bitfighters/launcher/internal/platform"
	"golang.org/x/sync/errgroup"
)

const opInstall = "updater.DownloadAndInstall"

// DownloadAndInstall downloads the package at url and installs it under
// destRoot. version is recorded in the install marker. onProgress may be
// nil. A second call while one is running fails with ErrBusy.
//
// On success the returned state is Installed and destRoot is persisted.
// On failure the persisted root is left alone, except that a missing
// executable after extraction clears it.
func (u *Updater) DownloadAndInstall(ctx context.Context, url, destRoot, version string, onProgress ProgressFunc) (install.State, error) {
	if !u.slot.TryAcquire(1) {
		return u.manager.State(), apperr.Wrap(apperr.KindInstall, opInstall, msgBusy, ErrBusy)
	}
	defer u.slot.Release(1)

	if err := u.manager.BeginDownload(); err != nil {
		return u.manager.State(), apperr.Wrap(apperr.KindInstall, opInstall, msgBusy, err)
	}

	state, err := u.run(ctx, url, destRoot, version, onProgress)
	if err != nil {
		// The phase has ended, so this is the probed state.
		return u.manager.State(), err
	}
	return state, nil
}

func (u *Updater) run(ctx context.Context, url, destRoot, version string, onProgress ProgressFunc) (install.State, error) {
	defer u.manager.End()

	u.log.Info("downloading package", "url", url, "root", destRoot)
	archive, err := u.download(ctx, url, onProgress)
	if err != nil {
		u.log.Error("download failed", "url", url, "error", err)
		return install.State{}, apperr.Wrap(apperr.KindInstall, opInstall, msgDownloadFailed,
			fmt.Errorf("%w: %w", ErrDownloadFailed, err))
	}

	if err := u.manager.BeginInstall(); err != nil {
		os.Remove(archive)
		return install.State{}, apperr.Wrap(apperr.KindInstall, opInstall, msgExtractionFailed,
			fmt.Errorf("%w: %w", ErrExtractionFailed, err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer func() {
			if rmErr := os.Remove(archive); rmErr != nil && !os.IsNotExist(rmErr) {
				u.log.Warn("could not remove downloaded archive", "path", archive, "error", rmErr)
			}
		}()
		return Extract(gctx, archive, destRoot)
	})
	if err := g.Wait(); err != nil {
		u.log.Error("extraction failed", "root", destRoot, "error", err)
		return install.State{}, apperr.Wrap(apperr.KindInstall, opInstall, msgExtractionFailed,
			fmt.Errorf("%w: %w", ErrExtractionFailed, err))
	}

	state := u.manager.Resolve(destRoot)
	if !state.IsInstalled() {
		if err := u.manager.ClearRoot(); err != nil {
			u.log.Warn("could not clear install root", "error", err)
		}
		u.log.Error("executable missing after install", "root", destRoot, "executable", u.manager.Executable())
		return install.State{}, apperr.Wrap(apperr.KindInstall, opInstall, msgExecutableMissing,
			fmt.Errorf("%w: %s not found under %s", ErrExecutableMissing, u.manager.Executable(), destRoot))
	}

	if err := platform.MarkExecutable(state.Executable); err != nil {
		u.log.Warn("could not mark executable", "path", state.Executable, "error", err)
	}
	marker := &install.Marker{Version: version, InstalledAt: u.now().UTC(), Source: url}
	if err := install.WriteMarker(state.Root, marker); err != nil {
		u.log.Warn("could not write install marker", "root", state.Root, "error", err)
	} else {
		state.Version = version
	}
	if err := u.manager.PersistRoot(destRoot); err != nil {
		u.log.Warn("could not persist install root", "root", destRoot, "error", err)
	}

	u.log.Info("package installed", "root", state.Root, "version", version)
	return state, nil
}
