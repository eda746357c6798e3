package modules

import (
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Props syncs Data.Props onto element properties. It needs an adapter that
// implements dom.PropAdapter and does nothing otherwise. The "value"
// property is compared against the element's live value so user edits are
// not clobbered by an unchanged tree.
func Props(api dom.Adapter) reconcile.Module {
	pa, ok := api.(dom.PropAdapter)
	if !ok {
		return reconcile.Module{Name: "props"}
	}
	update := func(old, v *vdom.VNode) {
		oldProps, props := propsOf(old), propsOf(v)
		if oldProps == nil && props == nil {
			return
		}
		if sameMap(oldProps, props) {
			return
		}
		elm := v.Elm
		for name := range oldProps {
			if _, ok := props[name]; !ok {
				pa.SetProperty(elm, name, nil)
			}
		}
		for name, cur := range props {
			prev := oldProps[name]
			if equalValue(prev, cur) {
				continue
			}
			if name == "value" && equalValue(pa.GetProperty(elm, name), cur) {
				continue
			}
			pa.SetProperty(elm, name, cur)
		}
	}
	return reconcile.Module{Name: "props", Create: update, Update: update}
}

func propsOf(v *vdom.VNode) map[string]any {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.Props
}
