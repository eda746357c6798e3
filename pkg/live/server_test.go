package live

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vtree/pkg/modules"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	reg := prometheus.NewRegistry()
	session, err := NewSession(SessionConfig{
		Modules: []string{"attributes", "metrics"},
		Env:     modules.Env{Registry: reg},
	})
	require.NoError(t, err)
	srv := NewServer(ServerConfig{Session: session, Title: "test", Gatherer: reg})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServerPageAndTree(t *testing.T) {
	srv, ts := newTestServer(t)

	code, _ := get(t, ts.URL+"/tree")
	require.Equal(t, http.StatusNotFound, code)

	srv.Update(vdom.H("section#main", vdom.H("h1", "Hello")))

	code, body := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "<title>test</title>")
	require.Contains(t, body, `<div id="vtree-root"><section id="main"><h1>Hello</h1></section></div>`)
	require.Contains(t, body, "new WebSocket")

	code, body = get(t, ts.URL+"/tree")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "section#main")
	require.Contains(t, body, "Hello")
}

func TestServerMetrics(t *testing.T) {
	srv, ts := newTestServer(t)
	srv.Update(vdom.H("p", "x"))

	code, body := get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "vtree_patches_total 1")
	require.Contains(t, body, `vtree_hook_calls_total{point="create"}`)
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) *protocol.Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	typ, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, typ)
	f, err := protocol.DecodeFrame(data)
	require.NoError(t, err)
	return f
}

func TestServerStreamsPatches(t *testing.T) {
	srv, ts := newTestServer(t)
	srv.Update(vdom.H("p", "one"))

	conn := dial(t, ts)
	f := readFrame(t, conn)
	require.Equal(t, protocol.FrameSnapshot, f.Type)
	snap, err := protocol.DecodeSnapshot(f.Payload)
	require.NoError(t, err)
	require.Equal(t, uint64(1), snap.Version)
	require.Equal(t, "<p>one</p>", snap.HTML)
	require.Len(t, snap.IDs, 2)
	require.Equal(t, 1, srv.ClientCount())

	srv.Update(vdom.H("p", "two"))

	f = readFrame(t, conn)
	require.Equal(t, protocol.FramePatches, f.Type)
	batch, err := protocol.DecodeBatch(f.Payload)
	require.NoError(t, err)
	require.Equal(t, uint64(2), batch.Version)
	require.Len(t, batch.Ops, 1)
	require.Equal(t, snap.IDs[0], batch.Ops[0].Node)
	require.Equal(t, "two", batch.Ops[0].Value)
}

func TestServerReportsErrors(t *testing.T) {
	srv, ts := newTestServer(t)
	srv.Update(vdom.H("p", "ok"))
	srv.Fail("E101", errors.New("bad tree"))

	conn := dial(t, ts)
	require.Equal(t, protocol.FrameSnapshot, readFrame(t, conn).Type)
	f := readFrame(t, conn)
	require.Equal(t, protocol.FrameError, f.Type)
	em, err := protocol.DecodeErrorMessage(f.Payload)
	require.NoError(t, err)
	require.Equal(t, "E101", em.Code)
	require.Equal(t, "bad tree", em.Message)

	// A good tree clears the error for later clients.
	srv.Update(vdom.H("p", "fixed"))
	conn2 := dial(t, ts)
	require.Equal(t, protocol.FrameSnapshot, readFrame(t, conn2).Type)
	require.NoError(t, conn2.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = conn2.ReadMessage()
	require.Error(t, err)
}

func TestServerSnapshotThenConsecutivePatches(t *testing.T) {
	srv, ts := newTestServer(t)
	srv.Update(vdom.H("p", "0"))

	const updates = 50
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= updates; i++ {
			srv.Update(vdom.H("p", fmt.Sprint(i)))
		}
	}()

	conns := make([]*websocket.Conn, 0, 5)
	for i := 0; i < 5; i++ {
		conns = append(conns, dial(t, ts))
	}
	<-done

	for _, conn := range conns {
		f := readFrame(t, conn)
		require.Equal(t, protocol.FrameSnapshot, f.Type)
		snap, err := protocol.DecodeSnapshot(f.Payload)
		require.NoError(t, err)

		// Every later update arrives as a patch, in order, with no gap.
		for want := snap.Version + 1; want <= updates+1; want++ {
			f := readFrame(t, conn)
			require.Equal(t, protocol.FramePatches, f.Type)
			batch, err := protocol.DecodeBatch(f.Payload)
			require.NoError(t, err)
			require.Equal(t, want, batch.Version)
		}
	}
}
