// Package host embeds the window-size plugin in a long-running process that
// serves its channel over local transports.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/windowsize/internal/channel"
	"github.com/1broseidon/windowsize/internal/platform"
	"github.com/1broseidon/windowsize/internal/windowsize"
)

// Options configures a Host.
type Options struct {
	SocketPath string
	// WebSocketAddr enables the websocket transport when non-empty.
	WebSocketAddr string
	Logger        *slog.Logger
}

// Host owns the channel registry and the platform view, and acts as the
// plugin's registrar.
type Host struct {
	registry *channel.Registry
	view     platform.View
	opts     Options
	logger   *slog.Logger

	socket    *channel.SocketServer
	websocket *channel.WebSocketServer
	plugin    *windowsize.Plugin
}

var _ windowsize.Registrar = (*Host)(nil)

// New creates a host over view. A nil view makes every frame request answer
// "No Screen".
func New(view platform.View, opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		registry: channel.NewRegistry(),
		view:     view,
		opts:     opts,
		logger:   logger,
	}
}

func (h *Host) Messenger() channel.Messenger { return h.registry }

func (h *Host) View() platform.View { return h.view }

// Registry exposes the host's messenger for in-process dispatch.
func (h *Host) Registry() *channel.Registry { return h.registry }

// Start registers the plugin and starts the configured transports.
func (h *Host) Start() error {
	h.plugin = windowsize.New(h, h.logger)

	if h.opts.SocketPath != "" {
		h.socket = channel.NewSocketServer(h.opts.SocketPath, h.registry, h.logger)
		if err := h.socket.Start(); err != nil {
			h.Stop()
			return err
		}
	}

	if h.opts.WebSocketAddr != "" {
		h.websocket = channel.NewWebSocketServer(h.opts.WebSocketAddr, h.registry, h.logger)
		if err := h.websocket.Start(); err != nil {
			h.Stop()
			return err
		}
	}

	if h.socket == nil && h.websocket == nil {
		h.Stop()
		return fmt.Errorf("no transport configured")
	}

	h.logger.Info("windowsize host started", "channel", windowsize.ChannelName)
	return nil
}

// Run starts the host and blocks until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	if err := h.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	h.Stop()
	return nil
}

// Stop disposes the plugin, then stops the transports.
func (h *Host) Stop() {
	if h.plugin != nil {
		h.plugin.Dispose()
		h.plugin = nil
	}
	if h.socket != nil {
		h.socket.Stop()
		h.socket = nil
	}
	if h.websocket != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := h.websocket.Stop(ctx); err != nil {
			h.logger.Warn("websocket shutdown", "error", err)
		}
		cancel()
		h.websocket = nil
	}
	h.logger.Info("windowsize host stopped")
}
