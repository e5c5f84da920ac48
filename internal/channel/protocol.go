package channel

import (
	"encoding/json"
	"fmt"
)

// Envelope carries one encoded message addressed to a channel.
type Envelope struct {
	ID      string          `json:"id"`
	Channel string          `json:"channel"`
	Payload json.RawMessage `json:"payload"`
}

// Reply answers an Envelope with the same ID. Error is set only when the
// message could not be delivered; handler-level failures travel inside
// Payload.
type Reply struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ParseEnvelope parses an envelope from JSON bytes
func ParseEnvelope(data []byte) (*Envelope, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	if env.Channel == "" {
		return nil, fmt.Errorf("envelope has no channel")
	}
	return env, nil
}

// decodeEnvelope parses an envelope that may leave its channel to the route.
func decodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse envelope: %w", err)
	}
	return &env, nil
}

// Marshal converts a reply to JSON bytes
func (r *Reply) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// deliver routes env through the registry and builds the reply.
func deliver(registry *Registry, env *Envelope) *Reply {
	payload, err := registry.Dispatch(env.Channel, env.Payload)
	if err != nil {
		return &Reply{ID: env.ID, Error: err.Error()}
	}
	return &Reply{ID: env.ID, Payload: payload}
}
