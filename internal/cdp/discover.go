package cdp

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

// Target is one debuggable browsing context from the discovery listing.
type Target struct {
	Type                 string `json:"type"`
	Title                string `json:"title"`
	URL                  string `json:"url"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// Discoverer resolves a debugger websocket endpoint from the browser's
// HTTP discovery listing.
type Discoverer struct {
	http *resty.Client
	base string
}

// NewDiscoverer creates a discoverer for a debug endpoint.
func NewDiscoverer(host string, port int) *Discoverer {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil

	rc := resty.NewWithClient(retryClient.StandardClient())
	rc.SetTimeout(5 * time.Second)
	rc.SetHeader("User-Agent", "scout/1.0")

	return &Discoverer{
		http: rc,
		base: fmt.Sprintf("http://%s:%d", host, port),
	}
}

// Discover picks a websocket debugger URL: a page-type target first,
// then any target exposing one, then a freshly created target. Fails
// with ErrNoTarget once all options are exhausted.
func (d *Discoverer) Discover(ctx context.Context) (string, error) {
	targets, err := d.list(ctx)
	if err != nil {
		return "", err
	}
	if url := pickTarget(targets); url != "" {
		return url, nil
	}

	// No usable target: ask the browser for a new one and retry once.
	if err := d.createTarget(ctx); err == nil {
		time.Sleep(200 * time.Millisecond)
		if targets, err := d.list(ctx); err == nil {
			if url := pickTarget(targets); url != "" {
				return url, nil
			}
		}
	}
	return "", ErrNoTarget
}

func (d *Discoverer) list(ctx context.Context) ([]Target, error) {
	resp, err := d.http.R().SetContext(ctx).Get(d.base + "/json")
	if err != nil {
		return nil, fmt.Errorf("discovery request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("discovery returned HTTP %d", resp.StatusCode())
	}

	var targets []Target
	if err := sonic.Unmarshal(resp.Body(), &targets); err != nil {
		return nil, fmt.Errorf("discovery listing malformed: %w", err)
	}
	return targets, nil
}

func (d *Discoverer) createTarget(ctx context.Context) error {
	resp, err := d.http.R().SetContext(ctx).Put(d.base + "/json/new")
	if err != nil {
		return fmt.Errorf("target creation failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("target creation returned HTTP %d", resp.StatusCode())
	}
	return nil
}

func pickTarget(targets []Target) string {
	for _, t := range targets {
		if t.Type == "page" && t.WebSocketDebuggerURL != "" {
			return t.WebSocketDebuggerURL
		}
	}
	for _, t := range targets {
		if t.WebSocketDebuggerURL != "" {
			return t.WebSocketDebuggerURL
		}
	}
	return ""
}
