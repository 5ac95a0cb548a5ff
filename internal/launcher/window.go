package launcher

// Window is the launcher's main window. It is hidden while the game runs.
type Window interface {
	Hide()
	Show()
}

// NopWindow is a Window for front ends without one.
type NopWindow struct{}

func (NopWindow) Hide() {}
func (NopWindow) Show() {}
