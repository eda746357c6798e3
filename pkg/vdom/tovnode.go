package vdom

import (
	"strings"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/memdom"
)

// ToVNode builds a VNode tree mirroring an existing real subtree, with every
// Elm already pointing at its real node. Patching the result against a new
// tree adopts the existing markup instead of recreating it.
//
// Elements keep their id and class in the selector and every other
// attribute in Data.Attrs. Attributes and children are only read when api
// implements dom.AttrAdapter and dom.ChildLister. A nil api uses memdom.API.
func ToVNode(n dom.Node, api dom.Adapter) *VNode {
	if api == nil {
		api = memdom.API
	}
	switch {
	case api.IsElement(n):
		sel := BuildSelector(strings.ToLower(api.TagName(n)), api.GetAttribute(n, "id"), api.GetAttribute(n, "class"))
		attrs := make(map[string]any)
		if aa, ok := api.(dom.AttrAdapter); ok {
			for _, a := range aa.Attributes(n) {
				if a.Name != "id" && a.Name != "class" {
					attrs[a.Name] = a.Value
				}
			}
		}
		children := []*VNode{}
		if cl, ok := api.(dom.ChildLister); ok {
			for _, c := range cl.ChildNodes(n) {
				children = append(children, ToVNode(c, api))
			}
		}
		return New(sel, &Data{Attrs: attrs}, children, "", false, n)
	case api.IsText(n):
		return New("", nil, nil, api.GetTextContent(n), true, n)
	case api.IsComment(n):
		return New(CommentSel, &Data{}, []*VNode{}, api.GetTextContent(n), true, n)
	default:
		return New("", &Data{}, []*VNode{}, "", false, n)
	}
}
