package cdp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// Command is one outbound protocol request.
type Command struct {
	ID     int64          `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params,omitempty"`
}

// Response is one inbound frame. Frames carrying an id correlate to a
// Command; frames without one are unsolicited events.
type Response struct {
	ID     int64           `json:"id"`
	Method string          `json:"method,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ResponseError  `json:"error,omitempty"`
}

// ResponseError is a protocol-level error reported by the browser for
// an otherwise well-delivered command.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("protocol error %d: %s", e.Code, e.Message)
}

// Decode unmarshals the command result into v.
func (r *Response) Decode(v any) error {
	if len(r.Result) == 0 {
		return errors.New("empty result")
	}
	return sonic.Unmarshal(r.Result, v)
}

// ErrNoTarget indicates discovery found no debuggable browsing context
// even after requesting a new one.
var ErrNoTarget = errors.New("no debuggable target available")

// ConnectionError is a transport-level failure. The dispatcher absorbs
// the first one per command via reconnect; callers only see it when
// establishing the connection itself fails.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection %s failed: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// CommandError is terminal: the command failed and the one permitted
// reconnect-and-resend also failed.
type CommandError struct {
	Method string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed after reconnect: %v", e.Method, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// State is the connection lifecycle position.
type State int

const (
	Disconnected State = iota
	Connected
	Reconnecting
)

func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	case Reconnecting:
		return "reconnecting"
	default:
		return "disconnected"
	}
}
