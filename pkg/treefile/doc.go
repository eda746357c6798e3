// Package treefile reads and writes vdom trees as YAML (or JSON) documents.
//
// A document is one node; children nest under "children":
//
//	sel: ul#todo.list
//	children:
//	  - sel: li
//	    key: a
//	    class: {done: true}
//	    text: Buy milk
//	  - sel: li
//	    key: b
//	    attrs: {title: later}
//	    text: Walk dog
//	  - text: a bare text node
//	  - sel: "!"
//	    text: a comment
//
// Decoding validates what the reconciler deliberately does not: text and
// children are exclusive, void elements have no children, text nodes carry
// no configuration, and sibling keys are unique.
package treefile
