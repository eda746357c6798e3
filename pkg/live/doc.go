// Package live serves a tree file as a live preview.
//
// A Session owns one real tree (an x/net/html document behind a recording
// adapter) and serializes patches against it. The Server renders the
// session over HTTP and streams every patch to connected browsers as a
// binary op frame over WebSocket:
//
//	GET /        page with the current markup and the client script
//	GET /tree    the current tree as YAML
//	GET /ws      WebSocket: snapshot on connect, then patch frames
//	GET /metrics Prometheus metrics, when a gatherer is configured
//
// A Watcher reloads the tree file on change and feeds the result to the
// server.
package live
