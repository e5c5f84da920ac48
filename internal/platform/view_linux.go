//go:build linux

package platform

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/windowsize/internal/x11"
)

// LinuxView resolves the host's top-level window on an X11 connection.
type LinuxView struct {
	conn   *x11.Connection
	target TargetSpec
	scale  int
	logger *slog.Logger
}

var _ View = (*LinuxView)(nil)

// NewLinuxView wraps conn. A nil conn yields a view that never resolves a
// window. scaleOverride is passed to ScaleFactor.
func NewLinuxView(conn *x11.Connection, target TargetSpec, scaleOverride int, logger *slog.Logger) *LinuxView {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinuxView{
		conn:   conn,
		target: target,
		scale:  scaleOverride,
		logger: logger,
	}
}

// NewLinuxViewFromDisplay opens a fresh X11 connection for the view.
func NewLinuxViewFromDisplay(target TargetSpec, scaleOverride int, logger *slog.Logger) (*LinuxView, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxView(conn, target, scaleOverride, logger), nil
}

// Disconnect closes the underlying X11 connection.
func (v *LinuxView) Disconnect() {
	if v != nil && v.conn != nil {
		v.conn.Close()
	}
}

// Toplevel returns the target window, or nil when it cannot be found.
func (v *LinuxView) Toplevel() Window {
	if v == nil || v.conn == nil {
		return nil
	}
	id, err := v.resolve()
	if err != nil {
		v.logger.Debug("no toplevel window", "error", err)
		return nil
	}
	return &linuxWindow{conn: v.conn, id: id}
}

func (v *LinuxView) resolve() (xproto.Window, error) {
	switch {
	case v.target.WindowID != 0:
		id := xproto.Window(v.target.WindowID)
		if !v.conn.WindowExists(id) {
			return 0, fmt.Errorf("window 0x%x does not exist", v.target.WindowID)
		}
		return id, nil
	case v.target.PID != 0:
		return v.conn.FindWindowByPID(v.target.PID)
	case v.target.Class != "":
		return v.conn.FindWindowByClass(v.target.Class)
	default:
		id, err := v.conn.GetActiveWindow()
		if err != nil {
			return 0, err
		}
		if id == 0 {
			return 0, fmt.Errorf("no active window")
		}
		return id, nil
	}
}

// Monitors lists the active monitors with their work areas.
func (v *LinuxView) Monitors() ([]Monitor, error) {
	if v == nil || v.conn == nil {
		return nil, fmt.Errorf("x11 view connection is nil")
	}

	raw, err := v.conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	scale := ScaleFactor(v.scale)
	monitors := make([]Monitor, 0, len(raw))
	for _, m := range raw {
		monitors = append(monitors, Monitor{
			ID:          m.ID,
			Name:        m.Name,
			Geometry:    rectFromArea(m.Geometry),
			Workarea:    rectFromArea(m.Workarea),
			ScaleFactor: scale,
		})
	}
	return monitors, nil
}

type linuxWindow struct {
	conn *x11.Connection
	id   xproto.Window
}

func (w *linuxWindow) Move(x, y int) {
	w.conn.MoveWindow(w.id, x, y)
}

func (w *linuxWindow) Resize(width, height int) {
	w.conn.ResizeWindow(w.id, width, height)
}

func rectFromArea(a x11.Area) Rect {
	return Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
}
