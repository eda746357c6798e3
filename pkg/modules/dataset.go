package modules

import (
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Dataset syncs Data.Dataset onto data-* attributes; camelCase keys become
// kebab-case attribute names.
func Dataset(api dom.Adapter) reconcile.Module {
	update := func(old, v *vdom.VNode) {
		oldSet, set := datasetOf(old), datasetOf(v)
		if oldSet == nil && set == nil {
			return
		}
		if sameMap(oldSet, set) {
			return
		}
		elm := v.Elm
		for key := range oldSet {
			if _, ok := set[key]; !ok {
				if aa, ok := api.(dom.AttrAdapter); ok {
					aa.RemoveAttribute(elm, "data-"+kebab(key))
				}
			}
		}
		for key, cur := range set {
			if prev, ok := oldSet[key]; !ok || prev != cur {
				api.SetAttribute(elm, "data-"+kebab(key), cur)
			}
		}
	}
	return reconcile.Module{Name: "dataset", Create: update, Update: update}
}

func datasetOf(v *vdom.VNode) map[string]string {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.Dataset
}
