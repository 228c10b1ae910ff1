package cdp

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// conn is one connection epoch. A reconnect replaces the whole value
// rather than mutating it, so command ids stay unique per epoch.
type conn struct {
	ws     *websocket.Conn
	wsURL  string
	nextID int64
}

func dial(ctx context.Context, wsURL string) (*conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	ws, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Err: err}
	}
	return &conn{ws: ws, wsURL: wsURL}, nil
}

// send writes one command and blocks until the frame with the matching
// id arrives. Frames with any other id, including unsolicited events,
// are discarded.
func (c *conn) send(ctx context.Context, method string, params map[string]any) (*Response, error) {
	c.nextID++
	cmd := Command{ID: c.nextID, Method: method, Params: params}

	payload, err := sonic.Marshal(cmd)
	if err != nil {
		return nil, &ConnectionError{Op: "encode", Err: err}
	}

	// Deadlines stick to the socket, not the call: a ctx without one
	// must disarm whatever an earlier deadline-scoped send left behind.
	deadline, _ := ctx.Deadline()
	_ = c.ws.SetWriteDeadline(deadline)
	_ = c.ws.SetReadDeadline(deadline)

	if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
		return nil, &ConnectionError{Op: "write", Err: err}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, &ConnectionError{Op: "read", Err: err}
		}
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return nil, &ConnectionError{Op: "read", Err: err}
		}

		var resp Response
		if err := sonic.Unmarshal(data, &resp); err != nil {
			continue // unparseable frame, skip
		}
		if resp.ID != cmd.ID {
			continue
		}
		return &resp, nil
	}
}

func (c *conn) close() error {
	return c.ws.Close()
}
