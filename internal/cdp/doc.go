// Package cdp implements a minimal client for the browser
// remote-debugging protocol: HTTP target discovery, a persistent
// websocket connection, and a synchronous command dispatcher with
// strict id correlation and a single reconnect-and-retry policy.
//
// The client is deliberately single-caller. Every command blocks until
// its response arrives; unsolicited protocol events are discarded.
// Sharing one Client across goroutines requires external locking that
// this package does not provide.
package cdp
