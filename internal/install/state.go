package install

import "errors"

// Status is the phase of the game installation.
type Status int

const (
	NotInstalled Status = iota
	Installed
	Downloading
	Installing
)

func (s Status) String() string {
	switch s {
	case NotInstalled:
		return "not installed"
	case Installed:
		return "installed"
	case Downloading:
		return "downloading"
	case Installing:
		return "installing"
	default:
		return "unknown"
	}
}

// State is a snapshot of the installation.
type State struct {
	Status Status
	// Root is the directory holding the executable when installed, or the
	// directory that was searched otherwise.
	Root       string
	Executable string
	// Version comes from the install marker and is empty when unknown.
	Version string
}

// IsInstalled reports whether the state is Installed. A running download
// or install is not installed.
func (s State) IsInstalled() bool {
	return s.Status == Installed
}

// ErrBusy is returned when a download or install is already running.
var ErrBusy = errors.New("an install is already in progress")
