package x11

import "github.com/BurntSushi/xgbutil/ewmh"

type strutInsets struct {
	left   int
	right  int
	top    int
	bottom int
}

func (s strutInsets) empty() bool {
	return s.left == 0 && s.right == 0 && s.top == 0 && s.bottom == 0
}

// applyStruts removes from monitor the parts reserved by partials on a root
// window of size root. It reports false when no strut touches the monitor.
func applyStruts(monitor, root Area, partials []ewmh.WmStrutPartial) (Area, bool) {
	var insets strutInsets
	for i := range partials {
		accumulateStrut(monitor, root, &partials[i], &insets)
	}
	if insets.empty() {
		return monitor, false
	}

	area := Area{
		X:      monitor.X + insets.left,
		Y:      monitor.Y + insets.top,
		Width:  monitor.Width - insets.left - insets.right,
		Height: monitor.Height - insets.top - insets.bottom,
	}
	if area.Width < 1 {
		area.Width = 1
	}
	if area.Height < 1 {
		area.Height = 1
	}
	return area, true
}

func accumulateStrut(monitor, root Area, sp *ewmh.WmStrutPartial, acc *strutInsets) {
	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		band := Area{X: int(sp.TopStartX), Y: 0, Width: int(sp.TopEndX) - int(sp.TopStartX) + 1, Height: int(sp.Top)}
		if isect, ok := intersect(monitor, band); ok {
			acc.top = max(acc.top, isect.Height)
		}
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		band := Area{X: int(sp.BottomStartX), Y: root.Height - int(sp.Bottom), Width: int(sp.BottomEndX) - int(sp.BottomStartX) + 1, Height: int(sp.Bottom)}
		if isect, ok := intersect(monitor, band); ok {
			acc.bottom = max(acc.bottom, isect.Height)
		}
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		band := Area{X: 0, Y: int(sp.LeftStartY), Width: int(sp.Left), Height: int(sp.LeftEndY) - int(sp.LeftStartY) + 1}
		if isect, ok := intersect(monitor, band); ok {
			acc.left = max(acc.left, isect.Width)
		}
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		band := Area{X: root.Width - int(sp.Right), Y: int(sp.RightStartY), Width: int(sp.Right), Height: int(sp.RightEndY) - int(sp.RightStartY) + 1}
		if isect, ok := intersect(monitor, band); ok {
			acc.right = max(acc.right, isect.Width)
		}
	}
}

// fullLengthStrut widens a legacy _NET_WM_STRUT to span the whole root edge.
func fullLengthStrut(s *ewmh.WmStrut, root Area) ewmh.WmStrutPartial {
	return ewmh.WmStrutPartial{
		Left:         s.Left,
		Right:        s.Right,
		Top:          s.Top,
		Bottom:       s.Bottom,
		LeftStartY:   0,
		LeftEndY:     uint(root.Height - 1),
		RightStartY:  0,
		RightEndY:    uint(root.Height - 1),
		TopStartX:    0,
		TopEndX:      uint(root.Width - 1),
		BottomStartX: 0,
		BottomEndX:   uint(root.Width - 1),
	}
}

func intersect(a, b Area) (Area, bool) {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return Area{}, false
	}
	return Area{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// intersectOr returns the overlap of monitor and workarea, or monitor when
// they do not overlap.
func intersectOr(monitor, workarea Area) Area {
	if isect, ok := intersect(monitor, workarea); ok {
		return isect
	}
	return monitor
}
