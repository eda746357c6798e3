package reconcile

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/memdom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// PatchFunc patches old into vnode and returns vnode. old is either the
// *vdom.VNode returned by the previous call or a real node to take over.
type PatchFunc func(old any, vnode *vdom.VNode) *vdom.VNode

// Engine is a configured reconciler. An Engine holds no per-patch state, but
// calls against the same real root must be serialized by the caller.
type Engine struct {
	api     dom.Adapter
	hooks   registry
	modules []Module
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for the few non-hot-path events the
// engine reports. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New builds an Engine from an ordered module list and an adapter. A nil
// adapter selects memdom.API.
func New(modules []Module, api dom.Adapter, opts ...Option) *Engine {
	if api == nil {
		api = memdom.API
	}
	e := &Engine{
		api:     api,
		hooks:   newRegistry(modules),
		modules: append([]Module(nil), modules...),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init builds an Engine and returns its Patch method.
func Init(modules []Module, api dom.Adapter) PatchFunc {
	return New(modules, api).Patch
}

// Adapter returns the adapter the engine mutates the real tree through.
func (e *Engine) Adapter() dom.Adapter {
	return e.api
}

// Modules returns the registered modules in registration order.
func (e *Engine) Modules() []Module {
	return e.modules
}

// Hooks returns how many module callbacks are registered for p.
func (e *Engine) Hooks(p HookPoint) int {
	return e.hooks.Len(p)
}

// Patch brings the real tree in line with vnode and returns vnode, now
// carrying real-node references throughout.
//
// When old and vnode are the same logical node the root is patched in
// place. Otherwise vnode is materialized, inserted right after old's real
// node and old is removed through the normal removal path. A replaced root
// without a parent is only materialized.
//
// Hooks and the adapter may panic; the engine does not recover.
func (e *Engine) Patch(old any, vnode *vdom.VNode) *vdom.VNode {
	var queue []*vdom.VNode
	e.hooks.firePre()

	oldV, ok := old.(*vdom.VNode)
	if !ok {
		oldV = e.emptyNodeAt(old)
	}

	if vdom.SameVNode(oldV, vnode) {
		e.patchVnode(oldV, vnode, &queue)
	} else {
		elm := oldV.Elm
		parent := e.api.ParentNode(elm)
		e.createElm(vnode, &queue)
		if parent != nil {
			e.api.InsertBefore(parent, vnode.Elm, e.api.NextSibling(elm))
			e.removeVnodes(parent, []*vdom.VNode{oldV}, 0, 0)
		} else {
			e.logger.Debug("vtree: replaced root has no parent", "old", oldV.Sel, "new", vnode.Sel)
		}
	}

	for _, v := range queue {
		if h := v.Hook(); h != nil && h.Insert != nil {
			h.Insert(v)
		}
	}
	e.hooks.firePost()
	return vnode
}

// emptyNodeAt wraps an existing real element in a VNode whose selector is
// derived from its tag, id and class attributes.
func (e *Engine) emptyNodeAt(elm dom.Node) *vdom.VNode {
	sel := vdom.BuildSelector(
		strings.ToLower(e.api.TagName(elm)),
		e.api.GetAttribute(elm, "id"),
		e.api.GetAttribute(elm, "class"),
	)
	return vdom.New(sel, &vdom.Data{}, []*vdom.VNode{}, "", false, elm)
}
