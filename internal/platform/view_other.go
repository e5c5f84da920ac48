//go:build !linux

package platform

import (
	"errors"
	"log/slog"
)

// ErrUnsupported is returned on platforms without an X11 view.
var ErrUnsupported = errors.New("window control is only supported on Linux/X11")

// LinuxView is unavailable on this platform.
type LinuxView struct{}

var _ View = (*LinuxView)(nil)

func NewLinuxViewFromDisplay(target TargetSpec, scaleOverride int, logger *slog.Logger) (*LinuxView, error) {
	return nil, ErrUnsupported
}

func (v *LinuxView) Disconnect() {}

func (v *LinuxView) Toplevel() Window { return nil }

func (v *LinuxView) Monitors() ([]Monitor, error) { return nil, ErrUnsupported }
