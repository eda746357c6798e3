package reconcile

import (
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// removal detaches a real node once every remove hook and the reconciler
// itself have signalled completion. Extra signals after detachment are
// ignored.
type removal struct {
	api     dom.Adapter
	elm     dom.Node
	pending int
}

// done records one completion signal and detaches the node on the last one.
func (r *removal) done() {
	r.pending--
	if r.pending == 0 {
		r.api.RemoveChild(r.api.ParentNode(r.elm), r.elm)
	}
}

// invokeDestroyHook fires destroy hooks for v and then its descendants:
// the node's own hook first, then every module's.
func (e *Engine) invokeDestroyHook(v *vdom.VNode) {
	if v.Data == nil {
		return
	}
	if h := v.Data.Hook; h != nil && h.Destroy != nil {
		h.Destroy(v)
	}
	e.hooks.fireDestroy(v)
	for _, ch := range v.Children {
		if ch != nil {
			e.invokeDestroyHook(ch)
		}
	}
}

// removeVnodes removes vnodes[start..end] from parent. Element and comment
// nodes go through destroy hooks and the gated remove path; text nodes are
// detached immediately.
func (e *Engine) removeVnodes(parent dom.Node, vnodes []*vdom.VNode, start, end int) {
	for ; start <= end; start++ {
		ch := vnodes[start]
		if ch == nil {
			continue
		}
		if ch.Sel == "" {
			e.api.RemoveChild(parent, ch.Elm)
			continue
		}
		e.invokeDestroyHook(ch)
		r := &removal{api: e.api, elm: ch.Elm, pending: e.hooks.Len(HookRemove) + 1}
		e.hooks.fireRemove(ch, r.done)
		if h := ch.Hook(); h != nil && h.Remove != nil {
			h.Remove(ch, r.done)
		} else {
			r.done()
		}
	}
}
