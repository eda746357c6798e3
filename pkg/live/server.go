package live

import (
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/treefile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// ServerConfig configures a Server.
type ServerConfig struct {
	// Session is the tree being served. Required.
	Session *Session

	// Title is the page title (default: "vtree").
	Title string

	// MetricsPath mounts a Prometheus handler when Gatherer is set
	// (default: "/metrics").
	MetricsPath string
	Gatherer    prometheus.Gatherer

	// PingInterval is how often idle clients receive a ping frame
	// (default: 30s).
	PingInterval time.Duration

	// WriteTimeout bounds every frame write (default: 10s).
	WriteTimeout time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// client is one WebSocket connection. gorilla connections allow a single
// concurrent writer, so every write goes through mu.
type client struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	timeout time.Duration
}

func (c *client) send(f *protocol.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.BinaryMessage, f.Encode())
}

// Server serves a Session over HTTP and streams its patches to browsers.
type Server struct {
	// updateMu keeps frames in version order.
	updateMu sync.Mutex

	session  *Session
	config   ServerConfig
	clients  map[*client]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	router   chi.Router
	logger   *slog.Logger
	lastErr  *protocol.ErrorMessage
}

// NewServer creates a server for cfg.Session.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Title == "" {
		cfg.Title = "vtree"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if cfg.PingInterval == 0 {
		cfg.PingInterval = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		session: cfg.Session,
		config:  cfg,
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Preview server, any origin
			},
		},
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handlePage)
	r.Get("/tree", s.handleTree)
	r.Get("/ws", s.handleWebSocket)
	if cfg.Gatherer != nil {
		r.Handle(cfg.MetricsPath, promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	s.router = r
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="vtree-root">{{.Markup}}</div>
<script>{{.Script}}</script>
</body>
</html>
`))

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, struct {
		Title  string
		Markup template.HTML
		Script template.JS
	}{
		Title:  s.config.Title,
		Markup: template.HTML(snap.HTML),
		Script: template.JS(ClientScript),
	})
	if err != nil {
		s.logger.Warn("live: page render failed", "error", err)
	}
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	tree := s.session.Tree()
	if tree == nil {
		http.Error(w, "no tree loaded", http.StatusNotFound)
		return
	}
	data, err := treefile.Marshal(tree)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(data)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn, timeout: s.config.WriteTimeout}
	if err := s.register(c); err != nil {
		s.logger.Debug("live: snapshot failed", "remote", r.RemoteAddr, "error", err)
		s.drop(c)
		return
	}
	s.logger.Debug("live: client connected", "remote", r.RemoteAddr)

	done := make(chan struct{})
	go s.pingLoop(c, done)

	// Clients never send anything meaningful; read until they go away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	close(done)
	s.drop(c)
}

// register sends c the current snapshot, followed by the pending error if
// any, and adds it to the broadcast set. Holding updateMu throughout means
// the first patch c receives is the one right after its snapshot.
func (s *Server) register(c *client) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.mu.Lock()
	s.clients[c] = true
	lastErr := s.lastErr
	s.mu.Unlock()

	if err := c.send(protocol.SnapshotFrame(s.session.Snapshot())); err != nil {
		return err
	}
	if lastErr != nil {
		return c.send(protocol.ErrorFrame(lastErr))
	}
	return nil
}

func (s *Server) pingLoop(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.send(protocol.NewFrame(protocol.FramePing, nil)); err != nil {
				return
			}
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

// Update applies v to the session and sends the resulting op frame to every
// client. A successful update clears any reported error.
func (s *Server) Update(v *vdom.VNode) *protocol.Batch {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	batch := s.session.Apply(v)
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
	s.broadcast(protocol.PatchFrame(batch))
	return batch
}

// Fail reports a tree that could not be loaded. The current tree stays up;
// clients connecting later receive the error after their snapshot.
func (s *Server) Fail(code string, err error) {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	em := &protocol.ErrorMessage{Code: code, Message: err.Error()}
	s.mu.Lock()
	s.lastErr = em
	s.mu.Unlock()
	s.broadcast(protocol.ErrorFrame(em))
}

// broadcast sends a frame to all connected clients, dropping the ones that
// fail.
func (s *Server) broadcast(f *protocol.Frame) {
	s.mu.RLock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(f); err != nil {
			s.logger.Debug("live: dropping client", "error", err)
			s.drop(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close closes all client connections.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.clients {
		c.conn.Close()
		delete(s.clients, c)
	}
}
