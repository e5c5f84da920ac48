package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Area is a rectangle in root window coordinates.
type Area struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Monitor represents a physical display and its usable work area.
type Monitor struct {
	ID       int
	Name     string
	Geometry Area
	Workarea Area
}

// GetMonitors retrieves all active monitors using XRandR, with the work area
// of each one resolved from dock struts or _NET_WORKAREA.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		geometry := Area{
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		monitors = append(monitors, Monitor{
			ID:       i,
			Name:     outputName,
			Geometry: geometry,
			Workarea: c.workarea(geometry),
		})
	}

	return monitors, nil
}

// workarea shrinks a monitor by the dock struts touching it, falling back to
// its intersection with _NET_WORKAREA and finally to the full geometry.
func (c *Connection) workarea(monitor Area) Area {
	if partials, root, ok := c.dockStruts(); ok {
		if area, applied := applyStruts(monitor, root, partials); applied {
			return area
		}
	}

	workAreas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workAreas) == 0 {
		return monitor
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(currentDesktop) < len(workAreas) {
		desktopIndex = int(currentDesktop)
	}
	wa := workAreas[desktopIndex]
	return intersectOr(monitor, Area{X: int(wa.X), Y: int(wa.Y), Width: int(wa.Width), Height: int(wa.Height)})
}

// dockStruts collects the struts of every dock window, expanding plain
// _NET_WM_STRUT values to full-length partial struts.
func (c *Connection) dockStruts() ([]ewmh.WmStrutPartial, Area, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return nil, Area{}, false
	}
	root := Area{Width: int(rootGeom.Width), Height: int(rootGeom.Height)}

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, Area{}, false
	}

	var partials []ewmh.WmStrutPartial
	for _, windowID := range clients {
		if !c.isDock(windowID) {
			continue
		}
		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			partials = append(partials, *sp)
			continue
		}
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			partials = append(partials, fullLengthStrut(s, root))
		}
	}
	return partials, root, true
}

func (c *Connection) isDock(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}
