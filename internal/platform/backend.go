package platform

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Monitor describes a display: its full geometry, the work area left after
// panels and docks, and its integer UI scale factor.
type Monitor struct {
	ID          int
	Name        string
	Geometry    Rect
	Workarea    Rect
	ScaleFactor int
}

// Window is a native top-level window whose placement can be changed.
// Requests are fire-and-forget; the window manager may adjust or ignore them.
type Window interface {
	Move(x, y int)
	Resize(width, height int)
}

// View is the host's active UI surface.
type View interface {
	// Toplevel returns the window containing the view, or nil when none can
	// be resolved.
	Toplevel() Window
	// Monitors lists the displays the view can be shown on.
	Monitors() ([]Monitor, error)
}

// TargetSpec selects the top-level window that belongs to the host. The
// first non-zero field wins; the zero value selects the active window.
type TargetSpec struct {
	WindowID uint32
	PID      int
	Class    string
}
