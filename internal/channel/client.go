package channel

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/1broseidon/windowsize/internal/value"
)

// DeliveryError reports a message the host could not route, e.g. because
// no handler is bound to the channel.
type DeliveryError struct {
	Channel string
	Reason  string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("host could not deliver message on %s: %s", e.Channel, e.Reason)
}

// Client invokes methods on a host's SocketServer.
type Client struct {
	socketPath string
	codec      MethodCodec
	timeout    time.Duration
}

// NewClient creates a client for the socket at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		codec:      JSONMethodCodec{},
		timeout:    5 * time.Second,
	}
}

// WithTimeout returns a copy of the client using timeout for each exchange.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	clone := *c
	clone.timeout = timeout
	return &clone
}

// InvokeMethod sends one method call on channel and returns the decoded
// response. Error and not-implemented answers are returned as responses,
// not as errors; use Response.Err to convert them.
func (c *Client) InvokeMethod(ctx context.Context, channel, method string, args value.Value) (Response, error) {
	payload, err := c.codec.EncodeMethodCall(MethodCall{Method: method, Args: args})
	if err != nil {
		return Response{}, err
	}

	reply, err := c.send(ctx, &Envelope{
		ID:      uuid.NewString(),
		Channel: channel,
		Payload: payload,
	})
	if err != nil {
		return Response{}, err
	}
	if reply.Error != "" {
		return Response{}, &DeliveryError{Channel: channel, Reason: reply.Error}
	}
	return c.codec.DecodeResponse(reply.Payload)
}

func (c *Client) send(ctx context.Context, env *Envelope) (*Reply, error) {
	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to host: %w (is the host running?)", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	conn.SetDeadline(deadline)

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to send envelope: %w", err)
	}

	respData, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}

	var reply Reply
	if err := json.Unmarshal(respData, &reply); err != nil {
		return nil, fmt.Errorf("failed to parse reply: %w", err)
	}
	if reply.ID != env.ID {
		return nil, errors.New("reply does not match request id")
	}
	return &reply, nil
}
