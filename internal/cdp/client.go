package cdp

import (
	"context"

	"go.uber.org/zap"

	"github.com/hireloop/scout/internal/logging"
)

// enableDomains are the protocol domains every downstream primitive
// relies on: navigation lifecycle, DOM queries, script evaluation.
var enableDomains = []string{"Page.enable", "DOM.enable", "Runtime.enable"}

// Client drives one remote browsing context. It owns the connection
// exclusively and replaces it wholesale on reconnect.
type Client struct {
	discovery *Discoverer
	conn      *conn
	state     State
	log       *logging.Logger
}

// NewClient creates a client against a discovery endpoint. No network
// traffic happens until Connect or the first Send.
func NewClient(host string, port int, log *logging.Logger) *Client {
	if log == nil {
		log = logging.NewNop()
	}
	return &Client{
		discovery: NewDiscoverer(host, port),
		state:     Disconnected,
		log:       log,
	}
}

// State reports the connection lifecycle position.
func (c *Client) State() State { return c.state }

// Connect resolves a target, opens the websocket, and enables the
// required protocol domains. Idempotent: a connected client returns
// immediately, so it is safe to re-invoke after a reconnect.
func (c *Client) Connect(ctx context.Context) error {
	if c.state == Connected && c.conn != nil {
		return nil
	}

	wsURL, err := c.discovery.Discover(ctx)
	if err != nil {
		c.state = Disconnected
		return err
	}

	conn, err := dial(ctx, wsURL)
	if err != nil {
		c.state = Disconnected
		return err
	}

	for _, method := range enableDomains {
		if _, err := conn.send(ctx, method, nil); err != nil {
			_ = conn.close()
			c.state = Disconnected
			return err
		}
	}

	c.conn = conn
	c.state = Connected
	c.log.Debug("connected to debug target", zap.String("url", wsURL))
	return nil
}

// Send dispatches one command and blocks for its correlated response.
// A transport failure triggers exactly one silent reconnect and resend;
// a second failure is terminal and surfaces as a CommandError naming
// the method.
func (c *Client) Send(ctx context.Context, method string, params map[string]any) (*Response, error) {
	if c.state != Connected || c.conn == nil {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.conn.send(ctx, method, params)
	if err == nil {
		return resp, nil
	}

	c.state = Reconnecting
	c.log.Warn("transport failure, reconnecting once",
		zap.String("method", method), zap.Error(err))
	c.teardown()

	if err := c.Connect(ctx); err != nil {
		return nil, &CommandError{Method: method, Err: err}
	}
	resp, err = c.conn.send(ctx, method, params)
	if err != nil {
		c.teardown()
		return nil, &CommandError{Method: method, Err: err}
	}
	return resp, nil
}

// Close tears the connection down. The client can be reused; the next
// Send re-establishes a fresh epoch.
func (c *Client) Close() error {
	if c.conn == nil {
		c.state = Disconnected
		return nil
	}
	err := c.conn.close()
	c.conn = nil
	c.state = Disconnected
	return err
}

func (c *Client) teardown() {
	if c.conn != nil {
		_ = c.conn.close()
		c.conn = nil
	}
	if c.state != Reconnecting {
		c.state = Disconnected
	}
}
