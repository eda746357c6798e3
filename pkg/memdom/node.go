package memdom

import (
	"strings"

	"github.com/vango-dev/vtree/pkg/dom"
)

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode  NodeType = iota // <div>, <svg>, etc.
	TextNode                     // Character data
	CommentNode                  // <!-- ... -->
	FragmentNode                 // Parentless container
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case FragmentNode:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Node is a node of the in-memory document.
type Node struct {
	Type NodeType
	Tag  string // Element tag as created
	NS   string // Element namespace URI, empty for HTML
	Data string // Text and comment payload

	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	PrevSibling *Node
	NextSibling *Node

	attrs     []dom.Attr
	styles    []dom.Attr
	props     map[string]any
	listeners map[string][]dom.EventListener
}

// NewElement creates a detached element.
func NewElement(tag string) *Node {
	return &Node{Type: ElementNode, Tag: tag}
}

// NewElementNS creates a detached namespaced element.
func NewElementNS(ns, tag string) *Node {
	return &Node{Type: ElementNode, Tag: tag, NS: ns}
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Data: text}
}

// NewComment creates a detached comment node.
func NewComment(text string) *Node {
	return &Node{Type: CommentNode, Data: text}
}

// NewFragment creates a parentless container, handy as a mount point.
func NewFragment() *Node {
	return &Node{Type: FragmentNode}
}

// TagName returns the tag name the way a browser reports it: upper-cased for
// HTML elements, verbatim for namespaced ones.
func (n *Node) TagName() string {
	if n.Type != ElementNode {
		return ""
	}
	if n.NS == "" {
		return strings.ToUpper(n.Tag)
	}
	return n.Tag
}

// Children returns the child nodes in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// AppendChild moves child to the end of n's children.
func (n *Node) AppendChild(child *Node) {
	n.InsertBefore(child, nil)
}

// InsertBefore moves child into n before ref. A nil ref appends. A ref that
// is not a child of n also appends.
func (n *Node) InsertBefore(child, ref *Node) {
	if child == ref {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	if ref != nil && ref.Parent != n {
		ref = nil
	}
	child.Parent = n
	if ref == nil {
		child.PrevSibling = n.LastChild
		if n.LastChild != nil {
			n.LastChild.NextSibling = child
		} else {
			n.FirstChild = child
		}
		n.LastChild = child
		return
	}
	child.NextSibling = ref
	child.PrevSibling = ref.PrevSibling
	if ref.PrevSibling != nil {
		ref.PrevSibling.NextSibling = child
	} else {
		n.FirstChild = child
	}
	ref.PrevSibling = child
}

// RemoveChild detaches child from n. It does nothing when child is not a
// child of n.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.Parent != n {
		return
	}
	if child.PrevSibling != nil {
		child.PrevSibling.NextSibling = child.NextSibling
	} else {
		n.FirstChild = child.NextSibling
	}
	if child.NextSibling != nil {
		child.NextSibling.PrevSibling = child.PrevSibling
	} else {
		n.LastChild = child.PrevSibling
	}
	child.Parent = nil
	child.PrevSibling = nil
	child.NextSibling = nil
}

// TextContent returns the node's text, concatenating descendant text for
// elements and fragments.
func (n *Node) TextContent() string {
	switch n.Type {
	case TextNode, CommentNode:
		return n.Data
	}
	var sb strings.Builder
	var walk func(*Node)
	walk = func(p *Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case TextNode:
				sb.WriteString(c.Data)
			case ElementNode, FragmentNode:
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}

// SetTextContent replaces the node's text. On elements every child is
// dropped and, for non-empty text, replaced by a single text node.
func (n *Node) SetTextContent(text string) {
	switch n.Type {
	case TextNode, CommentNode:
		n.Data = text
		return
	}
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	if text != "" {
		n.AppendChild(NewText(text))
	}
}

// Attr returns the attribute value and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, keeping first-set order.
func (n *Node) SetAttr(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, dom.Attr{Name: name, Value: value})
}

// RemoveAttr removes an attribute.
func (n *Node) RemoveAttr(name string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// Attrs returns a copy of the attributes in order.
func (n *Node) Attrs() []dom.Attr {
	return append([]dom.Attr(nil), n.attrs...)
}

// Style returns an inline style property.
func (n *Node) Style(name string) string {
	for _, s := range n.styles {
		if s.Name == name {
			return s.Value
		}
	}
	return ""
}

// SetStyle sets an inline style property. An empty value removes it.
func (n *Node) SetStyle(name, value string) {
	if value == "" {
		n.RemoveStyle(name)
		return
	}
	for i := range n.styles {
		if n.styles[i].Name == name {
			n.styles[i].Value = value
			return
		}
	}
	n.styles = append(n.styles, dom.Attr{Name: name, Value: value})
}

// RemoveStyle removes an inline style property.
func (n *Node) RemoveStyle(name string) {
	for i := range n.styles {
		if n.styles[i].Name == name {
			n.styles = append(n.styles[:i], n.styles[i+1:]...)
			return
		}
	}
}

// StyleText serializes the inline styles as a style attribute value.
func (n *Node) StyleText() string {
	parts := make([]string, 0, len(n.styles))
	for _, s := range n.styles {
		parts = append(parts, s.Name+": "+s.Value)
	}
	return strings.Join(parts, "; ")
}

// Prop returns a free-form property.
func (n *Node) Prop(name string) any {
	return n.props[name]
}

// SetProp sets a free-form property.
func (n *Node) SetProp(name string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
}

// AddEventListener registers l for events of the given type. Registering
// the same listener twice has no effect.
func (n *Node) AddEventListener(name string, l dom.EventListener) {
	for _, have := range n.listeners[name] {
		if have == l {
			return
		}
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]dom.EventListener)
	}
	n.listeners[name] = append(n.listeners[name], l)
}

// RemoveEventListener unregisters l.
func (n *Node) RemoveEventListener(name string, l dom.EventListener) {
	ls := n.listeners[name]
	for i, have := range ls {
		if have == l {
			n.listeners[name] = append(ls[:i], ls[i+1:]...)
			return
		}
	}
}

// ListenerCount returns how many listeners are registered for an event type.
func (n *Node) ListenerCount(name string) int {
	return len(n.listeners[name])
}

// Dispatch delivers an event to n and then bubbles it through n's ancestors.
func (n *Node) Dispatch(typ string, detail any) {
	ev := &dom.Event{Type: typ, Target: n, Detail: detail}
	for cur := n; cur != nil; cur = cur.Parent {
		for _, l := range append([]dom.EventListener(nil), cur.listeners[typ]...) {
			l.HandleEvent(ev)
		}
	}
}
