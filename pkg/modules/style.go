package modules

import (
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// StyleOption configures the Style module.
type StyleOption func(*styleModule)

// WithTransition sets the function that waits for a removal transition to
// finish before calling done. The default calls done immediately.
func WithTransition(wait func(v *vdom.VNode, done func())) StyleOption {
	return func(m *styleModule) {
		m.wait = wait
	}
}

type styleModule struct {
	api     dom.StyleAdapter
	wait    func(v *vdom.VNode, done func())
	delayed []delayedStyle
}

type delayedStyle struct {
	elm         dom.Node
	name, value string
}

// Style syncs Data.Style onto inline styles. Props are applied on create and
// update. Delayed values are applied when the current patch finishes, so a
// transition can run from the initial to the delayed value. Destroy values
// are applied when the node is destroyed and Remove values before it is
// detached, with detachment waiting on the transition hook.
//
// The module needs an adapter implementing dom.StyleAdapter and does
// nothing otherwise.
func Style(api dom.Adapter, opts ...StyleOption) reconcile.Module {
	sa, ok := api.(dom.StyleAdapter)
	if !ok {
		return reconcile.Module{Name: "style"}
	}
	m := &styleModule{
		api:  sa,
		wait: func(_ *vdom.VNode, done func()) { done() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return reconcile.Module{
		Name:    "style",
		Create:  m.update,
		Update:  m.update,
		Destroy: m.destroy,
		Remove:  m.remove,
		Post:    m.flush,
	}
}

func styleOf(v *vdom.VNode) (vdom.Style, bool) {
	if v == nil || v.Data == nil || v.Data.Style.Empty() {
		return vdom.Style{}, false
	}
	return v.Data.Style, true
}

func (m *styleModule) update(old, v *vdom.VNode) {
	oldStyle, hadOld := styleOf(old)
	style, has := styleOf(v)
	if !hadOld && !has {
		return
	}
	if sameMap(oldStyle.Props, style.Props) && sameMap(oldStyle.Delayed, style.Delayed) {
		return
	}
	elm := v.Elm
	for name := range oldStyle.Props {
		if _, ok := style.Props[name]; !ok {
			m.api.RemoveStyle(elm, name)
		}
	}
	for name, cur := range style.Props {
		if prev, ok := oldStyle.Props[name]; !ok || prev != cur {
			m.api.SetStyle(elm, name, cur)
		}
	}
	for name, cur := range style.Delayed {
		if prev, ok := oldStyle.Delayed[name]; oldStyle.Delayed == nil || !ok || prev != cur {
			m.delayed = append(m.delayed, delayedStyle{elm: elm, name: name, value: cur})
		}
	}
}

func (m *styleModule) flush() {
	for _, d := range m.delayed {
		m.api.SetStyle(d.elm, d.name, d.value)
	}
	m.delayed = m.delayed[:0]
}

func (m *styleModule) destroy(v *vdom.VNode) {
	style, ok := styleOf(v)
	if !ok || v.Elm == nil {
		return
	}
	for name, cur := range style.Destroy {
		m.api.SetStyle(v.Elm, name, cur)
	}
}

func (m *styleModule) remove(v *vdom.VNode, rm func()) {
	style, ok := styleOf(v)
	if !ok || len(style.Remove) == 0 {
		rm()
		return
	}
	for name, cur := range style.Remove {
		m.api.SetStyle(v.Elm, name, cur)
	}
	m.wait(v, rm)
}
