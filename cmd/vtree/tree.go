package main

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	crdb "github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/memdom"
	"github.com/vango-dev/vtree/pkg/modules"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/treefile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// treeErrorCode picks the registered code for a tree file failure.
func treeErrorCode(err error) string {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return "E100"
	case crdb.Is(err, treefile.ErrInvalid):
		return "E102"
	default:
		return "E101"
	}
}

// loadTree decodes the tree file at path, or stdin for "-".
func loadTree(path string, stdin io.Reader) (*vdom.VNode, error) {
	var (
		v   *vdom.VNode
		err error
	)
	if path == "-" {
		v, err = treefile.Decode(stdin)
	} else {
		v, err = treefile.DecodeFile(path)
	}
	if err != nil {
		return nil, errors.New(treeErrorCode(err)).WithLocation(path, 0, 0).Wrap(err)
	}
	return v, nil
}

// stage is a detached memdom document holding one mount point, patched by
// an engine whose adapter calls are recorded.
type stage struct {
	rec    *dom.Recorder
	engine *reconcile.Engine
	body   *memdom.Node
	cur    any
}

func newStage(names []string, logger *slog.Logger) (*stage, error) {
	rec := dom.NewRecorder(memdom.API)
	mods, err := modules.ByName(names, rec, modules.Env{
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	})
	if err != nil {
		return nil, errors.New("E201").Wrap(err)
	}

	body := memdom.NewElement("body")
	mount := memdom.NewElement("div")
	body.AppendChild(mount)
	rec.ID(body)
	rec.ID(mount)

	return &stage{
		rec:    rec,
		engine: reconcile.New(mods, rec, reconcile.WithLogger(logger)),
		body:   body,
		cur:    mount,
	}, nil
}

// patch moves the stage to v and returns the operations it took.
func (s *stage) patch(v *vdom.VNode) []dom.Op {
	s.cur = s.engine.Patch(s.cur, v)
	return s.rec.Take()
}

// html serializes everything under the stage's body.
func (s *stage) html() string {
	var buf bytes.Buffer
	for _, c := range s.body.Children() {
		if err := memdom.Render(&buf, c); err != nil {
			return buf.String()
		}
	}
	return buf.String()
}

// openOutput returns the writer for an -o flag value.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.New("E301").WithLocation(path, 0, 0).Wrap(err)
	}
	return f, f.Close, nil
}

// cliLogger logs to w at debug level when verbose, and nowhere otherwise.
func cliLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
