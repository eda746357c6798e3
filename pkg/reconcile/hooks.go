package reconcile

import "github.com/vango-dev/vtree/pkg/vdom"

// HookPoint is one of the six module lifecycle points. The set is closed.
type HookPoint uint8

const (
	HookPre     HookPoint = iota // Start of a patch
	HookCreate                   // Element materialized, before its children
	HookUpdate                   // Reused node about to be patched
	HookDestroy                  // Node and its subtree leaving the tree
	HookRemove                   // Node about to be detached; gates detachment
	HookPost                     // End of a patch
)

// HookPoints lists every lifecycle point in declaration order.
var HookPoints = []HookPoint{HookPre, HookCreate, HookUpdate, HookDestroy, HookRemove, HookPost}

// String returns the string representation of the HookPoint.
func (p HookPoint) String() string {
	switch p {
	case HookPre:
		return "pre"
	case HookCreate:
		return "create"
	case HookUpdate:
		return "update"
	case HookDestroy:
		return "destroy"
	case HookRemove:
		return "remove"
	case HookPost:
		return "post"
	default:
		return "unknown"
	}
}

// Module is a bag of optional lifecycle callbacks. Modules are registered
// once, at engine construction, and fire in registration order.
type Module struct {
	// Name identifies the module in logs.
	Name string

	Pre     func()
	Create  func(empty, v *vdom.VNode)
	Update  func(old, v *vdom.VNode)
	Destroy func(v *vdom.VNode)
	Remove  func(v *vdom.VNode, rm func())
	Post    func()
}

// registry holds, per lifecycle point, the module callbacks in module order.
type registry struct {
	pre     []func()
	create  []func(empty, v *vdom.VNode)
	update  []func(old, v *vdom.VNode)
	destroy []func(v *vdom.VNode)
	remove  []func(v *vdom.VNode, rm func())
	post    []func()
}

func newRegistry(modules []Module) registry {
	var r registry
	for _, m := range modules {
		if m.Pre != nil {
			r.pre = append(r.pre, m.Pre)
		}
		if m.Create != nil {
			r.create = append(r.create, m.Create)
		}
		if m.Update != nil {
			r.update = append(r.update, m.Update)
		}
		if m.Destroy != nil {
			r.destroy = append(r.destroy, m.Destroy)
		}
		if m.Remove != nil {
			r.remove = append(r.remove, m.Remove)
		}
		if m.Post != nil {
			r.post = append(r.post, m.Post)
		}
	}
	return r
}

// Len returns how many callbacks are registered for p.
func (r *registry) Len(p HookPoint) int {
	switch p {
	case HookPre:
		return len(r.pre)
	case HookCreate:
		return len(r.create)
	case HookUpdate:
		return len(r.update)
	case HookDestroy:
		return len(r.destroy)
	case HookRemove:
		return len(r.remove)
	case HookPost:
		return len(r.post)
	}
	return 0
}

func (r *registry) firePre() {
	for _, f := range r.pre {
		f()
	}
}

func (r *registry) fireCreate(empty, v *vdom.VNode) {
	for _, f := range r.create {
		f(empty, v)
	}
}

func (r *registry) fireUpdate(old, v *vdom.VNode) {
	for _, f := range r.update {
		f(old, v)
	}
}

func (r *registry) fireDestroy(v *vdom.VNode) {
	for _, f := range r.destroy {
		f(v)
	}
}

func (r *registry) fireRemove(v *vdom.VNode, rm func()) {
	for _, f := range r.remove {
		f(v, rm)
	}
}

func (r *registry) firePost() {
	for _, f := range r.post {
		f()
	}
}
