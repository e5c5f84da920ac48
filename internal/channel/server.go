package channel

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"syscall"
	"time"
)

// SocketServer exposes a Registry on a unix socket. Each connection carries
// newline-delimited envelopes and receives one reply line per envelope.
type SocketServer struct {
	socketPath string
	registry   *Registry
	logger     *slog.Logger

	listener     net.Listener
	wg           sync.WaitGroup
	conns        map[net.Conn]struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// ErrSocketInUse is returned by Start when another host answers on the
// socket path.
var ErrSocketInUse = errors.New("channel socket is in use")

// NewSocketServer creates a server for socketPath.
func NewSocketServer(socketPath string, registry *Registry, logger *slog.Logger) *SocketServer {
	if logger == nil {
		logger = slog.Default()
	}

	return &SocketServer{
		socketPath: socketPath,
		registry:   registry,
		logger:     logger,
		conns:      make(map[net.Conn]struct{}),
	}
}

// Start begins listening for connections. A stale socket file left by a
// dead host is removed first.
func (s *SocketServer) Start() error {
	if err := removeStaleSocket(s.socketPath); err != nil {
		return err
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create channel socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("channel socket listening", "path", s.socketPath)

	go s.acceptLoop()
	return nil
}

// Path returns the socket path.
func (s *SocketServer) Path() string {
	return s.socketPath
}

func (s *SocketServer) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isShuttingDown() {
				return
			}
			s.logger.Warn("channel accept error", "error", err)
			continue
		}

		if !s.track(conn) {
			conn.Close()
			return
		}
		go func() {
			defer s.untrack(conn)
			s.handleConnection(conn)
		}()
	}
}

func (s *SocketServer) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		data, err := reader.ReadBytes('\n')
		if len(data) > 0 {
			if werr := s.serveLine(conn, data); werr != nil {
				s.logger.Warn("failed to send reply", "error", werr)
				return
			}
		}
		if err != nil {
			if err != io.EOF && !s.isShuttingDown() {
				s.logger.Warn("channel read error", "error", err)
			}
			return
		}
	}
}

func (s *SocketServer) serveLine(conn net.Conn, data []byte) error {
	var reply *Reply
	env, err := ParseEnvelope(data)
	if err != nil {
		reply = &Reply{Error: fmt.Sprintf("invalid envelope: %v", err)}
	} else {
		reply = deliver(s.registry, env)
	}

	out, err := reply.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}
	out = append(out, '\n')
	_, err = conn.Write(out)
	return err
}

func (s *SocketServer) track(conn net.Conn) bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	if s.shuttingDown {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *SocketServer) untrack(conn net.Conn) {
	s.shutdownMu.Lock()
	delete(s.conns, conn)
	s.shutdownMu.Unlock()
	s.wg.Done()
}

func (s *SocketServer) isShuttingDown() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

// Stop closes the listener and every open connection, waits for in-flight
// replies and removes the socket file.
func (s *SocketServer) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	for conn := range s.conns {
		conn.Close()
	}
	s.shutdownMu.Unlock()

	if s.listener == nil {
		return
	}
	s.listener.Close()
	s.wg.Wait()
	os.Remove(s.socketPath)
}

func removeStaleSocket(path string) error {
	conn, err := net.DialTimeout("unix", path, 500*time.Millisecond)
	if err == nil {
		conn.Close()
		return fmt.Errorf("%w: %s", ErrSocketInUse, path)
	}
	if !errors.Is(err, syscall.ECONNREFUSED) && !errors.Is(err, syscall.ENOENT) {
		return fmt.Errorf("failed to check channel socket: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}
	return nil
}
