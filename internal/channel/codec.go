package channel

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/windowsize/internal/value"
)

// MethodCodec converts method calls and responses to and from bytes.
type MethodCodec interface {
	EncodeMethodCall(call MethodCall) ([]byte, error)
	DecodeMethodCall(data []byte) (MethodCall, error)
	EncodeResponse(resp Response) ([]byte, error)
	DecodeResponse(data []byte) (Response, error)
}

// JSONMethodCodec encodes calls and responses as JSON documents.
type JSONMethodCodec struct{}

var _ MethodCodec = JSONMethodCodec{}

type jsonCall struct {
	Method string      `json:"method"`
	Args   value.Value `json:"args"`
}

type jsonResponse struct {
	Status  string       `json:"status"`
	Result  *value.Value `json:"result,omitempty"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
	Details *value.Value `json:"details,omitempty"`
}

func (JSONMethodCodec) EncodeMethodCall(call MethodCall) ([]byte, error) {
	if call.Method == "" {
		return nil, fmt.Errorf("method name is required")
	}
	data, err := json.Marshal(jsonCall{Method: call.Method, Args: call.Args})
	if err != nil {
		return nil, fmt.Errorf("failed to encode method call: %w", err)
	}
	return data, nil
}

func (JSONMethodCodec) DecodeMethodCall(data []byte) (MethodCall, error) {
	var raw struct {
		Method *string          `json:"method"`
		Args   *json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return MethodCall{}, fmt.Errorf("failed to decode method call: %w", err)
	}
	if raw.Method == nil || *raw.Method == "" {
		return MethodCall{}, fmt.Errorf("method call has no method name")
	}

	call := MethodCall{Method: *raw.Method}
	if raw.Args != nil {
		args, err := value.Parse(*raw.Args)
		if err != nil {
			return MethodCall{}, fmt.Errorf("failed to decode arguments of %s: %w", call.Method, err)
		}
		call.Args = args
	}
	return call, nil
}

func (JSONMethodCodec) EncodeResponse(resp Response) ([]byte, error) {
	out := jsonResponse{Status: resp.Kind.String()}
	switch resp.Kind {
	case KindSuccess:
		if !resp.Result.IsNull() {
			out.Result = &resp.Result
		}
	case KindError:
		if resp.Code == "" {
			return nil, fmt.Errorf("error response has no code")
		}
		out.Code = resp.Code
		out.Message = resp.Message
		if !resp.Details.IsNull() {
			out.Details = &resp.Details
		}
	case KindNotImplemented:
	default:
		return nil, fmt.Errorf("unknown response kind %d", int(resp.Kind))
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return data, nil
}

func (JSONMethodCodec) DecodeResponse(data []byte) (Response, error) {
	var raw jsonResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", err)
	}

	switch raw.Status {
	case "OK":
		resp := SuccessResponse(value.Null())
		if raw.Result != nil {
			resp.Result = *raw.Result
		}
		return resp, nil
	case "ERROR":
		resp := ErrorResponse(raw.Code, raw.Message, value.Null())
		if raw.Details != nil {
			resp.Details = *raw.Details
		}
		return resp, nil
	case "NOT_IMPLEMENTED":
		return NotImplementedResponse(), nil
	default:
		return Response{}, fmt.Errorf("unknown response status %q", raw.Status)
	}
}
