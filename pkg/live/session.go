package live

import (
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/htmldom"
	"github.com/vango-dev/vtree/pkg/modules"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// SessionConfig configures a Session.
type SessionConfig struct {
	// Modules are module names in registration order. Empty selects
	// modules.DefaultNames.
	Modules []string

	// Env is handed to the module constructors.
	Env modules.Env

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Session is one real tree kept in sync with successive VNode trees.
// All methods are safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	rec     *dom.Recorder
	engine  *reconcile.Engine
	body    *html.Node
	mount   *html.Node
	cur     *vdom.VNode
	version uint64
	logger  *slog.Logger
}

// NewSession creates a session with an empty mount point.
func NewSession(cfg SessionConfig) (*Session, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rec := dom.NewRecorder(htmldom.API)
	mods, err := modules.ByName(cfg.Modules, rec, cfg.Env)
	if err != nil {
		return nil, err
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	mount := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	body.AppendChild(mount)
	// The container is always id 1 on the wire, the initial mount point 2.
	rec.ID(body)
	rec.ID(mount)

	return &Session{
		rec:    rec,
		engine: reconcile.New(mods, rec, reconcile.WithLogger(logger)),
		body:   body,
		mount:  mount,
		logger: logger,
	}, nil
}

// Apply patches the session's tree into v and returns the recorded ops
// tagged with the new version.
func (s *Session) Apply(v *vdom.VNode) *protocol.Batch {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		s.cur = s.engine.Patch(s.mount, v)
	} else {
		s.cur = s.engine.Patch(s.cur, v)
	}
	s.version++
	ops := s.rec.Take()
	s.logger.Debug("live: patched", "version", s.version, "ops", len(ops))
	return &protocol.Batch{Version: s.version, Ops: ops}
}

// Snapshot returns the current markup with the wire id of every node in
// document order. The markup is the content of the container, usually the
// single root of the tree.
func (s *Session) Snapshot() *protocol.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &protocol.Snapshot{Version: s.version, HTML: s.render()}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		snap.IDs = append(snap.IDs, s.rec.ID(n))
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := s.body.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return snap
}

func (s *Session) render() string {
	var sb strings.Builder
	if err := htmldom.RenderChildren(&sb, s.body); err != nil {
		s.logger.Warn("live: render failed", "error", err)
	}
	return sb.String()
}

// HTML renders the current tree.
func (s *Session) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.render()
}

// Tree returns the last applied tree, or nil.
func (s *Session) Tree() *vdom.VNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Version returns the number of patches applied.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}
