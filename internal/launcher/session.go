package launcher

import "github.com/bitfighters/launcher/internal/install"

// Session is the logged-in user. The zero value is logged out.
type Session struct {
	Username      string
	UserID        int
	CreatedAt     string
	Authenticated bool
}

// Action is what the primary button does.
type Action int

const (
	ActionDownload Action = iota
	ActionLaunch
)

func (a Action) String() string {
	switch a {
	case ActionLaunch:
		return "launch"
	default:
		return "download"
	}
}

// PrimaryAction maps an install state to the action offered to the user.
func PrimaryAction(st install.State) Action {
	if st.IsInstalled() {
		return ActionLaunch
	}
	return ActionDownload
}

// Surface is everything the install panel shows.
type Surface struct {
	Version         string
	VersionKnown    bool
	State           install.State
	Installed       bool
	UpdateAvailable bool
	Action          Action
}
