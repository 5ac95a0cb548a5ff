package updater

import (
	"errors"

	"github.com/bitfighters/launcher/internal/install"
)

// Pipeline failures. Match them with errors.Is.
var (
	ErrDownloadFailed    = errors.New("download failed")
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrExecutableMissing = errors.New("executable missing after install")
	ErrBusy              = install.ErrBusy
)

// User-facing messages for each failure.
const (
	msgBusy              = "an install is already running"
	msgDownloadFailed    = "download failed, check your connection and try again"
	msgExtractionFailed  = "could not unpack the game files"
	msgExecutableMissing = "the game files are incomplete, please choose the install folder again"
)
