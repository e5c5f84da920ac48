// Package windowsize answers window geometry requests from a UI runtime on
// the "flutter/windowsize" method channel.
package windowsize

import (
	"log/slog"
	"math"
	"sync"

	"github.com/1broseidon/windowsize/internal/channel"
	"github.com/1broseidon/windowsize/internal/platform"
	"github.com/1broseidon/windowsize/internal/value"
)

const (
	ChannelName = "flutter/windowsize"

	BadArgumentsError = "Bad Arguments"
	NoScreenError     = "No Screen"

	SetWindowFrameMethod = "setWindowFrame"

	FrameKey        = "frame"
	VisibleFrameKey = "visibleFrame"
	ScaleFactorKey  = "scaleFactor"
)

// Registrar is the host's plugin registration context.
type Registrar interface {
	Messenger() channel.Messenger
	// View returns the active UI surface, or nil when the host has none.
	View() platform.View
}

// Geometry holds size constraints for the window.
type Geometry struct {
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
}

func unconstrained() Geometry {
	return Geometry{
		MinWidth:  -1,
		MinHeight: -1,
		MaxWidth:  math.MaxInt32,
		MaxHeight: math.MaxInt32,
	}
}

// Plugin serves the window-size channel for one host.
type Plugin struct {
	mu        sync.Mutex
	registrar Registrar
	channel   *channel.MethodChannel
	logger    *slog.Logger

	// Requested window geometry. Not applied yet.
	geometry Geometry
}

// New creates a plugin and binds its channel on the registrar's messenger.
func New(registrar Registrar, logger *slog.Logger) *Plugin {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Plugin{
		registrar: registrar,
		logger:    logger.With("plugin", "windowsize"),
		geometry:  unconstrained(),
	}
	p.channel = channel.NewMethodChannel(registrar.Messenger(), ChannelName, channel.JSONMethodCodec{}, logger)
	p.channel.SetMethodCallHandler(p.HandleMethodCall)
	return p
}

// HandleMethodCall routes one call to its handler.
func (p *Plugin) HandleMethodCall(call channel.MethodCall) channel.Response {
	switch call.Method {
	case SetWindowFrameMethod:
		return p.setWindowFrame(call.Args)
	default:
		return channel.NotImplementedResponse()
	}
}

// setWindowFrame moves then resizes the window to the (x, y, width, height)
// list in args, truncating each number toward zero.
func (p *Plugin) setWindowFrame(args value.Value) channel.Response {
	frame, ok := frameArgs(args)
	if !ok {
		return channel.ErrorResponse(BadArgumentsError, "Expected 4-element list", value.Null())
	}

	window := p.window()
	if window == nil {
		return channel.ErrorResponse(NoScreenError, "", value.Null())
	}

	p.logger.Debug("setting window frame", "x", frame[0], "y", frame[1], "width", frame[2], "height", frame[3])
	window.Move(frame[0], frame[1])
	window.Resize(frame[2], frame[3])

	return channel.SuccessResponse(value.Null())
}

func frameArgs(args value.Value) ([4]int, bool) {
	var frame [4]int
	if args.Kind() != value.KindList {
		return frame, false
	}
	if n, _ := args.Len(); n != len(frame) {
		return frame, false
	}
	for i := range frame {
		item, _ := args.Index(i)
		f, err := item.AsNumber()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return frame, false
		}
		frame[i] = int(f)
	}
	return frame, true
}

// window resolves the window being controlled.
func (p *Plugin) window() platform.Window {
	p.mu.Lock()
	registrar := p.registrar
	p.mu.Unlock()
	if registrar == nil {
		return nil
	}

	view := registrar.View()
	if view == nil {
		return nil
	}
	return view.Toplevel()
}

// Dispose unbinds the channel and drops the registrar. It is safe to call
// more than once.
func (p *Plugin) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	p.registrar = nil
}
