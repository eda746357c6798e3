// Package memdom is an in-memory, browser-style document tree and the
// default target adapter for the reconciler.
//
// Nodes are doubly linked the way a DOM is: parent, first/last child and
// sibling pointers. Moving a node that is already attached detaches it
// first, matching insertBefore semantics in browsers. Elements carry
// ordered attributes, inline styles, free-form properties and event
// listeners; Dispatch delivers an event to a node and bubbles it through
// its ancestors.
//
//	body := memdom.NewElement("body")
//	mount := memdom.NewElement("div")
//	body.AppendChild(mount)
//
//	patch := reconcile.Init(nil, memdom.API)
//	patch(mount, vdom.H("div#app", "hello"))
//	fmt.Println(body.OuterHTML()) // <body><div id="app">hello</div></body>
//
// Render and OuterHTML serialize a subtree through golang.org/x/net/html.
package memdom
