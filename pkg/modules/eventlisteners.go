package modules

import (
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// listener is the single real-tree listener attached per element. It is
// carried from one generation of a VNode to the next and always dispatches
// to the newest one, so handlers can change without re-registering.
type listener struct {
	vnode *vdom.VNode
}

// HandleEvent implements dom.EventListener.
func (l *listener) HandleEvent(ev *dom.Event) {
	on := onOf(l.vnode)
	if h, ok := on[ev.Type]; ok {
		invokeHandler(h, l.vnode, ev)
	}
}

func invokeHandler(h vdom.Handler, v *vdom.VNode, ev *dom.Event) {
	switch fn := h.(type) {
	case func(*dom.Event, *vdom.VNode):
		fn(ev, v)
	case func(*dom.Event):
		fn(ev)
	case func():
		fn()
	case vdom.HandlerWithArgs:
		if fn.Fn != nil {
			args := make([]any, 0, len(fn.Args)+2)
			args = append(args, fn.Args...)
			fn.Fn(append(args, ev, v)...)
		}
	case []vdom.Handler:
		for _, each := range fn {
			invokeHandler(each, v, ev)
		}
	}
}

func onOf(v *vdom.VNode) map[string]vdom.Handler {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.On
}

// EventListeners attaches the handlers in Data.On. It needs an adapter
// implementing dom.EventTarget and does nothing otherwise.
func EventListeners(api dom.Adapter) reconcile.Module {
	et, ok := api.(dom.EventTarget)
	if !ok {
		return reconcile.Module{Name: "eventlisteners"}
	}

	update := func(old, v *vdom.VNode) {
		oldOn := onOf(old)
		oldListener, _ := old.Listener.(*listener)
		oldElm := old.Elm
		var (
			on  map[string]vdom.Handler
			elm dom.Node
		)
		if v != nil {
			on = onOf(v)
			elm = v.Elm
		}

		if sameMap(oldOn, on) {
			if v != nil && oldListener != nil {
				oldListener.vnode = v
				v.Listener = oldListener
			}
			return
		}

		if oldOn != nil && oldListener != nil {
			for name := range oldOn {
				if _, keep := on[name]; on == nil || !keep {
					et.RemoveEventListener(oldElm, name, oldListener)
				}
			}
		}

		if on != nil {
			l := oldListener
			if l == nil {
				l = &listener{}
			}
			l.vnode = v
			v.Listener = l
			for name := range on {
				if _, had := oldOn[name]; oldOn == nil || !had {
					et.AddEventListener(elm, name, l)
				}
			}
		}
	}

	return reconcile.Module{
		Name:    "eventlisteners",
		Create:  update,
		Update:  update,
		Destroy: func(v *vdom.VNode) { update(v, nil) },
	}
}
