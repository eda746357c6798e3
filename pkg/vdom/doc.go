// Package vdom provides the abstract tree that vtree reconciles.
//
// A VNode describes one node of the UI: a selector (tag#id.class, "!" for
// comments, empty for text), a configuration bag (Data) and either text or
// children. The reconciler fills in Elm, the reference to the real node the
// VNode stands for.
//
// # Building Trees
//
// H builds nodes from a selector and any mix of data, children and text:
//
//	H("div#main.card",
//	    H("h1", "Title"),
//	    H("ul", H("li", &Data{Key: "a"}, "A"), H("li", &Data{Key: "b"}, "B")),
//	)
//
// # Thunks
//
// Thunk defers rendering of a subtree and skips it entirely while its
// render function and arguments are unchanged.
//
// # Adopting Markup
//
// ToVNode mirrors an existing real subtree so the first patch can reuse it.
package vdom
