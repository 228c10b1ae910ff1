package cdp

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// discoveryServer serves a scripted /json listing and counts /json/new
// creation requests.
type discoveryServer struct {
	srv      *httptest.Server
	targets  func() []Target
	created  int
	onCreate func()
}

func newDiscoveryServer(t *testing.T, targets func() []Target) *discoveryServer {
	t.Helper()
	ds := &discoveryServer{targets: targets}
	mux := http.NewServeMux()
	mux.HandleFunc("/json", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(ds.targets())
	})
	mux.HandleFunc("/json/new", func(w http.ResponseWriter, _ *http.Request) {
		ds.created++
		if ds.onCreate != nil {
			ds.onCreate()
		}
		json.NewEncoder(w).Encode(Target{Type: "page"})
	})
	ds.srv = httptest.NewServer(mux)
	t.Cleanup(ds.srv.Close)
	return ds
}

func (ds *discoveryServer) hostPort(t *testing.T) (string, int) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(ds.srv.Listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}

func TestDiscoverPrefersPageTarget(t *testing.T) {
	ds := newDiscoveryServer(t, func() []Target {
		return []Target{
			{Type: "background_page", WebSocketDebuggerURL: "ws://x/bg"},
			{Type: "page", WebSocketDebuggerURL: "ws://x/page"},
		}
	})
	host, port := ds.hostPort(t)

	url, err := NewDiscoverer(host, port).Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ws://x/page", url)
	assert.Zero(t, ds.created)
}

func TestDiscoverFallsBackToAnyDebuggableTarget(t *testing.T) {
	ds := newDiscoveryServer(t, func() []Target {
		return []Target{
			{Type: "page"}, // no debugger URL, unattachable
			{Type: "service_worker", WebSocketDebuggerURL: "ws://x/worker"},
		}
	})
	host, port := ds.hostPort(t)

	url, err := NewDiscoverer(host, port).Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ws://x/worker", url)
}

func TestDiscoverCreatesTargetWhenListingEmpty(t *testing.T) {
	var available []Target
	ds := newDiscoveryServer(t, func() []Target { return available })
	ds.onCreate = func() {
		available = []Target{{Type: "page", WebSocketDebuggerURL: "ws://x/fresh"}}
	}
	host, port := ds.hostPort(t)

	url, err := NewDiscoverer(host, port).Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ws://x/fresh", url)
	assert.Equal(t, 1, ds.created)
}

func TestDiscoverExhaustedIsErrNoTarget(t *testing.T) {
	ds := newDiscoveryServer(t, func() []Target { return nil })
	host, port := ds.hostPort(t)

	_, err := NewDiscoverer(host, port).Discover(context.Background())
	assert.ErrorIs(t, err, ErrNoTarget)
	assert.Equal(t, 1, ds.created, "creation fallback is tried exactly once")
}

func TestDiscoverMalformedListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	t.Cleanup(srv.Close)
	host, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)
	port, _ := strconv.Atoi(portStr)

	_, err = NewDiscoverer(host, port).Discover(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoTarget)
}
