package windowsize

import (
	"github.com/1broseidon/windowsize/internal/platform"
	"github.com/1broseidon/windowsize/internal/value"
)

// MakeFrameValue converts frame dimensions into the channel representation:
// [x, y, width, height] as floats.
func MakeFrameValue(x, y, width, height int) value.Value {
	return value.List(
		value.Float(float64(x)),
		value.Float(float64(y)),
		value.Float(float64(width)),
		value.Float(float64(height)),
	)
}

func makeRectValue(r platform.Rect) value.Value {
	return MakeFrameValue(r.X, r.Y, r.Width, r.Height)
}

// MakeMonitorValue converts monitor information into the channel
// representation.
func MakeMonitorValue(m platform.Monitor) value.Value {
	return value.NewMap().
		Set(FrameKey, makeRectValue(m.Geometry)).
		Set(VisibleFrameKey, makeRectValue(m.Workarea)).
		Set(ScaleFactorKey, value.Float(float64(m.ScaleFactor)))
}

// MakeMonitorList encodes each monitor independently, in the given order.
func MakeMonitorList(monitors []platform.Monitor) value.Value {
	items := make([]value.Value, len(monitors))
	for i, m := range monitors {
		items[i] = MakeMonitorValue(m)
	}
	return value.List(items...)
}
