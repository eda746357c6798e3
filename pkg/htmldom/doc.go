// Package htmldom adapts golang.org/x/net/html node trees to the
// reconciler, for rendering and diffing on the server without a browser.
//
// Parse existing markup with ParseFragment, adopt it with vdom.ToVNode and
// patch it; Render writes the result back out.
package htmldom
