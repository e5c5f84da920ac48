package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestApplyStruts(t *testing.T) {
	root := Area{Width: 3840, Height: 1080}
	left := Area{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := Area{X: 1920, Y: 0, Width: 1920, Height: 1080}

	// 32px top panel spanning only the left monitor.
	panel := ewmh.WmStrutPartial{Top: 32, TopStartX: 0, TopEndX: 1919}

	got, ok := applyStruts(left, root, []ewmh.WmStrutPartial{panel})
	if !ok {
		t.Fatal("expected strut to apply to left monitor")
	}
	if want := (Area{X: 0, Y: 32, Width: 1920, Height: 1048}); got != want {
		t.Fatalf("left workarea = %+v, want %+v", got, want)
	}

	got, ok = applyStruts(right, root, []ewmh.WmStrutPartial{panel})
	if ok || got != right {
		t.Fatalf("right workarea = %+v, %v; want untouched", got, ok)
	}
}

func TestApplyStrutsLegacyFullLength(t *testing.T) {
	root := Area{Width: 1920, Height: 1080}
	dock := fullLengthStrut(&ewmh.WmStrut{Bottom: 40, Left: 64}, root)

	got, ok := applyStruts(root, root, []ewmh.WmStrutPartial{dock})
	if !ok {
		t.Fatal("expected struts to apply")
	}
	if want := (Area{X: 64, Y: 0, Width: 1856, Height: 1040}); got != want {
		t.Fatalf("workarea = %+v, want %+v", got, want)
	}
}

func TestApplyStrutsKeepsMinimumSize(t *testing.T) {
	root := Area{Width: 100, Height: 100}
	huge := fullLengthStrut(&ewmh.WmStrut{Left: 60, Right: 60}, root)
	got, _ := applyStruts(root, root, []ewmh.WmStrutPartial{huge})
	if got.Width != 1 {
		t.Fatalf("width = %d, want clamp to 1", got.Width)
	}
}

func TestIntersectOr(t *testing.T) {
	monitor := Area{X: 1920, Y: 0, Width: 1920, Height: 1080}
	if got := intersectOr(monitor, Area{X: 0, Y: 24, Width: 3840, Height: 1056}); got != (Area{X: 1920, Y: 24, Width: 1920, Height: 1056}) {
		t.Fatalf("intersectOr() = %+v", got)
	}
	if got := intersectOr(monitor, Area{X: 0, Y: 0, Width: 100, Height: 100}); got != monitor {
		t.Fatalf("disjoint intersectOr() = %+v, want monitor", got)
	}
}
