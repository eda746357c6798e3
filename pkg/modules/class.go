package modules

import (
	"strings"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Class toggles class names from Data.Class on top of the classes the
// selector sets.
func Class(api dom.Adapter) reconcile.Module {
	update := func(old, v *vdom.VNode) {
		oldClass, class := classOf(old), classOf(v)
		if oldClass == nil && class == nil {
			return
		}
		if sameMap(oldClass, class) {
			return
		}
		elm := v.Elm
		for name, on := range oldClass {
			if on && !class[name] {
				toggleClass(api, elm, name, false)
			}
		}
		for name, on := range class {
			if prev, ok := oldClass[name]; !ok || prev != on {
				toggleClass(api, elm, name, on)
			}
		}
	}
	return reconcile.Module{Name: "class", Create: update, Update: update}
}

func classOf(v *vdom.VNode) map[string]bool {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.Class
}

// toggleClass adds or removes one token of the class attribute.
func toggleClass(api dom.Adapter, elm dom.Node, name string, on bool) {
	tokens := strings.Fields(api.GetAttribute(elm, "class"))
	out := tokens[:0]
	found := false
	for _, t := range tokens {
		if t == name {
			found = true
			if !on {
				continue
			}
		}
		out = append(out, t)
	}
	if on && !found {
		out = append(out, name)
	}
	if len(out) == 0 {
		if aa, ok := api.(dom.AttrAdapter); ok {
			aa.RemoveAttribute(elm, "class")
			return
		}
	}
	api.SetAttribute(elm, "class", strings.Join(out, " "))
}
