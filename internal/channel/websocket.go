package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// WebSocketServer exposes a Registry over websockets at
// /channels/{channel}. Every text message is an Envelope and is answered
// with one Reply; the envelope's channel must match the route.
type WebSocketServer struct {
	registry *Registry
	logger   *slog.Logger
	upgrader websocket.Upgrader
	router   chi.Router
	server   *http.Server

	wg           sync.WaitGroup
	conns        map[*websocket.Conn]struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewWebSocketServer creates a server bound to addr once Start is called.
func NewWebSocketServer(addr string, registry *Registry, logger *slog.Logger) *WebSocketServer {
	if logger == nil {
		logger = slog.Default()
	}
	s := &WebSocketServer{
		registry: registry,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}

	r := chi.NewRouter()
	r.Get("/channels/*", s.serveChannel)
	s.router = r
	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *WebSocketServer) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address in the background.
func (s *WebSocketServer) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen for websocket channels: %w", err)
	}
	s.logger.Info("websocket channels listening", "addr", ln.Addr().String())

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("websocket server stopped", "error", err)
		}
	}()
	return nil
}

// Stop shuts the HTTP server down, closes every upgraded connection and
// waits for their handlers to return. The HTTP shutdown is bounded by ctx.
func (s *WebSocketServer) Stop(ctx context.Context) error {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	for conn := range s.conns {
		conn.Close()
	}
	s.shutdownMu.Unlock()

	err := s.server.Shutdown(ctx)
	s.wg.Wait()
	return err
}

func (s *WebSocketServer) track(conn *websocket.Conn) bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	if s.shuttingDown {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *WebSocketServer) untrack(conn *websocket.Conn) {
	s.shutdownMu.Lock()
	delete(s.conns, conn)
	s.shutdownMu.Unlock()
	s.wg.Done()
}

func (s *WebSocketServer) serveChannel(w http.ResponseWriter, r *http.Request) {
	// Channel names contain slashes, so the route uses a wildcard.
	name := chi.URLParam(r, "*")
	if name == "" {
		http.Error(w, "channel name is required", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if !s.track(conn) {
		conn.Close()
		return
	}
	defer s.untrack(conn)
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket channel closed", "channel", name, "error", err)
			}
			return
		}

		if err := conn.WriteJSON(s.replyTo(name, data)); err != nil {
			s.logger.Warn("failed to send reply", "channel", name, "error", err)
			return
		}
	}
}

func (s *WebSocketServer) replyTo(name string, data []byte) *Reply {
	env, err := decodeEnvelope(data)
	if err != nil {
		return &Reply{Error: fmt.Sprintf("invalid envelope: %v", err)}
	}
	if env.Channel == "" {
		env.Channel = name
	}
	if env.Channel != name {
		return &Reply{ID: env.ID, Error: fmt.Sprintf("envelope channel %q does not match route %q", env.Channel, name)}
	}
	return deliver(s.registry, env)
}
