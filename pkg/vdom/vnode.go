package vdom

import "github.com/vango-dev/vtree/pkg/dom"

// CommentSel is the selector that marks a comment node.
const CommentSel = "!"

// VNode is the abstract node the reconciler diffs.
//
// Exactly one of Text and Children drives patching: when HasText is set the
// node has text semantics regardless of Children. A node with an empty Sel
// is a pure text node. Elm is written by the reconciler when the node is
// materialized or reused and is meaningless before that.
type VNode struct {
	Sel      string   // tag#id.class1.class2, "!" for comments, "" for text
	Data     *Data    // nil when the node carries no configuration
	Children []*VNode // nil when undefined; entries may be nil placeholders
	Text     string   // Text or comment payload
	HasText  bool     // Whether Text is defined
	Elm      dom.Node // Real node this VNode represents
	Key      string   // Mirrors Data.Key; "" means no key

	// Listener is derived state the event-listener module threads from one
	// generation of a node to the next.
	Listener any
}

// Data is the configuration bag of a VNode. The reconciler reads Key, NS
// and Hook; every other field belongs to a module.
type Data struct {
	Key  string
	NS   string
	Hook *Hook

	Attrs   map[string]any     // attributes module
	Props   map[string]any     // props module
	Class   map[string]bool    // class module
	Style   Style              // style module
	Dataset map[string]string  // dataset module
	On      map[string]Handler // event-listener module

	// Fn and Args are set on thunks.
	Fn   ThunkFn
	Args []any

	// Ext holds fields for modules vtree does not know about.
	Ext map[string]any
}

// Style holds inline styles plus the transition maps the style module
// understands.
type Style struct {
	Props   map[string]string // applied on create and update
	Delayed map[string]string // applied on the next tick after create
	Remove  map[string]string // applied before removal
	Destroy map[string]string // applied when destroyed
}

// Empty reports whether s declares nothing.
func (s Style) Empty() bool {
	return len(s.Props) == 0 && len(s.Delayed) == 0 && len(s.Remove) == 0 && len(s.Destroy) == 0
}

// Hook holds a node's own lifecycle callbacks. Every field is optional.
type Hook struct {
	Init      func(v *VNode)
	Create    func(empty, v *VNode)
	Insert    func(v *VNode)
	Prepatch  func(old, v *VNode)
	Update    func(old, v *VNode)
	Postpatch func(old, v *VNode)
	Destroy   func(v *VNode)
	Remove    func(v *VNode, rm func())
}

// Handler is an event handler accepted by the event-listener module. It is
// one of:
//   - func(ev *dom.Event, v *VNode)
//   - func(ev *dom.Event)
//   - func()
//   - HandlerWithArgs, usually built with Bind
//   - []Handler, every entry invoked in order
type Handler any

// HandlerWithArgs is a handler bound to leading arguments. Fn receives Args
// followed by the *dom.Event and the *VNode.
type HandlerWithArgs struct {
	Fn   func(args ...any)
	Args []any
}

// Bind returns a handler calling fn(args..., ev, v).
func Bind(fn func(args ...any), args ...any) HandlerWithArgs {
	return HandlerWithArgs{Fn: fn, Args: args}
}

// ThunkFn renders a subtree from its arguments.
type ThunkFn func(args ...any) *VNode

// New constructs a VNode from its parts, copying the key out of data.
func New(sel string, data *Data, children []*VNode, text string, hasText bool, elm dom.Node) *VNode {
	v := &VNode{
		Sel:      sel,
		Data:     data,
		Children: children,
		Text:     text,
		HasText:  hasText,
		Elm:      elm,
	}
	if data != nil {
		v.Key = data.Key
	}
	return v
}

// Hook returns the node's own hook bag, or nil.
func (v *VNode) Hook() *Hook {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.Hook
}

// IsComment reports whether v is a comment node.
func (v *VNode) IsComment() bool {
	return v.Sel == CommentSel
}

// IsText reports whether v is a pure text node.
func (v *VNode) IsText() bool {
	return v.Sel == ""
}

// SameVNode reports whether a and b are the same logical node: equal keys
// (both absent counts as equal) and equal selectors. Reuse versus replace
// is decided by this relation alone.
func SameVNode(a, b *VNode) bool {
	return a.Key == b.Key && a.Sel == b.Sel
}
