package channel

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/windowsize/internal/value"
)

// MessageHandler answers one encoded message on a channel with one encoded
// reply.
type MessageHandler func(message []byte) ([]byte, error)

// Messenger routes encoded messages to per-channel handlers.
type Messenger interface {
	// SetMessageHandler binds handler to the named channel, replacing any
	// previous binding. A nil handler removes the binding.
	SetMessageHandler(channel string, handler MessageHandler)
}

// ErrNoHandler is returned by Registry.Dispatch for unbound channels.
var ErrNoHandler = errors.New("no handler for channel")

// Registry is a Messenger shared by every transport of a host. Dispatch
// runs one handler at a time, so handlers never observe concurrent calls.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]MessageHandler

	dispatchMu sync.Mutex
}

var _ Messenger = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]MessageHandler)}
}

func (r *Registry) SetMessageHandler(channel string, handler MessageHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if handler == nil {
		delete(r.handlers, channel)
		return
	}
	r.handlers[channel] = handler
}

// Channels returns the number of bound channels.
func (r *Registry) Channels() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Dispatch delivers message to the handler bound to channel.
func (r *Registry) Dispatch(channel string, message []byte) ([]byte, error) {
	r.mu.RLock()
	handler, ok := r.handlers[channel]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrNoHandler, channel)
	}

	r.dispatchMu.Lock()
	defer r.dispatchMu.Unlock()
	return handler(message)
}

// MethodChannel binds a MethodCallHandler to a named channel of a Messenger.
type MethodChannel struct {
	name      string
	messenger Messenger
	codec     MethodCodec
	logger    *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewMethodChannel creates a channel; no handler is bound until
// SetMethodCallHandler is called.
func NewMethodChannel(messenger Messenger, name string, codec MethodCodec, logger *slog.Logger) *MethodChannel {
	if logger == nil {
		logger = slog.Default()
	}
	return &MethodChannel{
		name:      name,
		messenger: messenger,
		codec:     codec,
		logger:    logger.With("channel", name),
	}
}

// SetMethodCallHandler binds handler to the channel. A nil handler unbinds it.
func (c *MethodChannel) SetMethodCallHandler(handler MethodCallHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if handler == nil {
		c.messenger.SetMessageHandler(c.name, nil)
		return
	}
	c.messenger.SetMessageHandler(c.name, func(message []byte) ([]byte, error) {
		return c.handleMessage(handler, message)
	})
}

func (c *MethodChannel) handleMessage(handler MethodCallHandler, message []byte) ([]byte, error) {
	var resp Response
	call, err := c.codec.DecodeMethodCall(message)
	if err != nil {
		c.logger.Warn("rejecting malformed method call", "error", err)
		resp = ErrorResponse(CodeMalformedCall, err.Error(), value.Null())
	} else {
		resp = handler(call)
	}

	data, err := c.codec.EncodeResponse(resp)
	if err != nil {
		c.logger.Warn("failed to send method call response", "method", call.Method, "error", err)
		return nil, err
	}
	return data, nil
}

// Close unbinds the channel. Later SetMethodCallHandler calls are ignored.
func (c *MethodChannel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.messenger.SetMessageHandler(c.name, nil)
}
