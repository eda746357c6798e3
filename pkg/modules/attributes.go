package modules

import (
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Attributes syncs Data.Attrs onto elements. true sets an empty attribute,
// false removes it, anything else is set to its string form. Qualified
// names such as xlink:href and xml:lang are passed through verbatim.
func Attributes(api dom.Adapter) reconcile.Module {
	remove := func(elm dom.Node, name string) {
		if aa, ok := api.(dom.AttrAdapter); ok {
			aa.RemoveAttribute(elm, name)
		}
	}
	update := func(old, v *vdom.VNode) {
		oldAttrs, attrs := attrsOf(old), attrsOf(v)
		if oldAttrs == nil && attrs == nil {
			return
		}
		if sameMap(oldAttrs, attrs) {
			return
		}
		elm := v.Elm
		for name, cur := range attrs {
			prev, had := oldAttrs[name]
			if had && equalValue(prev, cur) {
				continue
			}
			switch b, isBool := cur.(bool); {
			case isBool && b:
				api.SetAttribute(elm, name, "")
			case isBool:
				remove(elm, name)
			default:
				api.SetAttribute(elm, name, stringify(cur))
			}
		}
		for name := range oldAttrs {
			if _, ok := attrs[name]; !ok {
				remove(elm, name)
			}
		}
	}
	return reconcile.Module{Name: "attributes", Create: update, Update: update}
}

func attrsOf(v *vdom.VNode) map[string]any {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.Attrs
}
