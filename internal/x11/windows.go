package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// MoveWindow asks the window manager to move a window, configuring the
// window directly when no EWMH-compliant manager answers.
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) {
	if err := ewmh.MoveWindow(c.XUtil, windowID, x, y); err != nil {
		xwindow.New(c.XUtil, windowID).Move(x, y)
	}
}

// ResizeWindow asks the window manager to resize a window, configuring the
// window directly when no EWMH-compliant manager answers.
func (c *Connection) ResizeWindow(windowID xproto.Window, width, height int) {
	if err := ewmh.ResizeWindow(c.XUtil, windowID, width, height); err != nil {
		xwindow.New(c.XUtil, windowID).Resize(width, height)
	}
}

// WindowExists reports whether the server still knows the window.
func (c *Connection) WindowExists(windowID xproto.Window) bool {
	if windowID == 0 {
		return false
	}
	_, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	return err == nil
}

// GetActiveWindow returns _NET_ACTIVE_WINDOW.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// FindWindowByPID returns the first managed client whose _NET_WM_PID is pid.
func (c *Connection) FindWindowByPID(pid int) (xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to list clients: %w", err)
	}
	for _, windowID := range clients {
		p, err := ewmh.WmPidGet(c.XUtil, windowID)
		if err == nil && int(p) == pid {
			return windowID, nil
		}
	}
	return 0, fmt.Errorf("no window owned by pid %d", pid)
}

// FindWindowByClass returns the first managed client whose WM_CLASS class or
// instance equals class, ignoring case.
func (c *Connection) FindWindowByClass(class string) (xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to list clients: %w", err)
	}
	for _, windowID := range clients {
		wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
		if err != nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(wmClass.Class), class) ||
			strings.EqualFold(strings.TrimSpace(wmClass.Instance), class) {
			return windowID, nil
		}
	}
	return 0, fmt.Errorf("no window with class %q", class)
}
