package browser

import (
	"context"
	"time"

	"github.com/hireloop/scout/internal/cdp"
	"github.com/hireloop/scout/internal/infrastructure/config"
	"github.com/hireloop/scout/internal/logging"
)

// Commander is the dispatcher surface the primitives need.
type Commander interface {
	Send(ctx context.Context, method string, params map[string]any) (*cdp.Response, error)
}

// NodeID is an ephemeral handle into the currently loaded document.
// It is invalidated the instant a navigation replaces the document.
// Zero means no match.
type NodeID int64

// Page exposes the interaction primitives against one browsing context.
type Page struct {
	client Commander
	cfg    config.BrowserConfig
	log    *logging.Logger
}

// New creates a page bound to a dispatcher.
func New(client Commander, cfg config.BrowserConfig, log *logging.Logger) *Page {
	if log == nil {
		log = logging.NewNop()
	}
	return &Page{client: client, cfg: cfg, log: log}
}

// Navigate loads a URL and applies a fixed settle delay. Navigation is
// not event-driven; callers needing reliable readiness must follow
// with WaitForSelector.
func (p *Page) Navigate(ctx context.Context, url string) error {
	if _, err := p.client.Send(ctx, "Page.navigate", map[string]any{"url": url}); err != nil {
		return err
	}
	sleep(ctx, p.cfg.SettleDelay)
	return nil
}

// QuerySelector resolves a selector under a freshly fetched document
// root. Returns zero when nothing matches.
func (p *Page) QuerySelector(ctx context.Context, selector string) (NodeID, error) {
	resp, err := p.client.Send(ctx, "DOM.getDocument", nil)
	if err != nil {
		return 0, err
	}
	var doc struct {
		Root struct {
			NodeID int64 `json:"nodeId"`
		} `json:"root"`
	}
	if err := resp.Decode(&doc); err != nil {
		return 0, err
	}

	resp, err = p.client.Send(ctx, "DOM.querySelector", map[string]any{
		"nodeId":   doc.Root.NodeID,
		"selector": selector,
	})
	if err != nil {
		return 0, err
	}
	if resp.Error != nil {
		return 0, nil
	}
	var node struct {
		NodeID int64 `json:"nodeId"`
	}
	if err := resp.Decode(&node); err != nil {
		return 0, nil
	}
	return NodeID(node.NodeID), nil
}

// WaitForSelector polls QuerySelector on a fixed interval until the
// selector matches or the timeout elapses. Command failures inside the
// poll count as not-found; the loop stays bounded either way.
func (p *Page) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = p.cfg.WaitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		if ctx.Err() != nil {
			return false
		}
		if id, err := p.QuerySelector(ctx, selector); err == nil && id != 0 {
			return true
		}
		if !sleep(ctx, p.cfg.PollInterval) {
			return false
		}
	}
}

// sleep blocks for d or until ctx is done. Returns false on cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
