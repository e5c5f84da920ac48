// Package channel carries method calls between a host runtime and native
// handlers over named channels.
package channel

import (
	"errors"
	"fmt"

	"github.com/1broseidon/windowsize/internal/value"
)

// CodeMalformedCall is the error code sent back for undecodable calls.
const CodeMalformedCall = "Malformed Call"

// MethodCall is a single request on a channel.
type MethodCall struct {
	Method string
	Args   value.Value
}

// ResponseKind distinguishes the three possible answers to a method call.
type ResponseKind int

const (
	KindSuccess ResponseKind = iota
	KindError
	KindNotImplemented
)

func (k ResponseKind) String() string {
	switch k {
	case KindSuccess:
		return "OK"
	case KindError:
		return "ERROR"
	case KindNotImplemented:
		return "NOT_IMPLEMENTED"
	default:
		return fmt.Sprintf("ResponseKind(%d)", int(k))
	}
}

// Response is the answer to a MethodCall. Result is only meaningful for
// success responses; Code, Message and Details only for errors. An empty
// Message means the error carries no message.
type Response struct {
	Kind    ResponseKind
	Result  value.Value
	Code    string
	Message string
	Details value.Value
}

func SuccessResponse(result value.Value) Response {
	return Response{Kind: KindSuccess, Result: result}
}

func ErrorResponse(code, message string, details value.Value) Response {
	return Response{Kind: KindError, Code: code, Message: message, Details: details}
}

// NotImplementedResponse signals that the handler does not know the method.
// Callers use it to detect optional capabilities; it is not an error.
func NotImplementedResponse() Response {
	return Response{Kind: KindNotImplemented}
}

// ErrNotImplemented is returned by Response.Err for not-implemented answers.
var ErrNotImplemented = errors.New("method not implemented")

// MethodError is an error response surfaced as a Go error.
type MethodError struct {
	Code    string
	Message string
	Details value.Value
}

func (e *MethodError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Err converts r into a Go error: nil for success, *MethodError for error
// responses and ErrNotImplemented otherwise.
func (r Response) Err() error {
	switch r.Kind {
	case KindSuccess:
		return nil
	case KindError:
		return &MethodError{Code: r.Code, Message: r.Message, Details: r.Details}
	default:
		return ErrNotImplemented
	}
}

// MethodCallHandler answers method calls. It must always produce a response.
type MethodCallHandler func(call MethodCall) Response
