package memdom

import "github.com/vango-dev/vtree/pkg/dom"

// API is the default adapter over the in-memory document.
var API = Adapter{}

// Adapter implements dom.Adapter and every optional capability over *Node
// handles.
type Adapter struct{}

var (
	_ dom.Adapter      = Adapter{}
	_ dom.AttrAdapter  = Adapter{}
	_ dom.ChildLister  = Adapter{}
	_ dom.EventTarget  = Adapter{}
	_ dom.StyleAdapter = Adapter{}
	_ dom.PropAdapter  = Adapter{}
)

func node(n dom.Node) *Node {
	if n == nil {
		return nil
	}
	return n.(*Node)
}

// handle wraps n so that a nil *Node becomes an untyped nil.
func handle(n *Node) dom.Node {
	if n == nil {
		return nil
	}
	return n
}

func (Adapter) CreateElement(tag string) dom.Node { return NewElement(tag) }
func (Adapter) CreateElementNS(ns, tag string) dom.Node { return NewElementNS(ns, tag) }
func (Adapter) CreateTextNode(text string) dom.Node { return NewText(text) }
func (Adapter) CreateComment(text string) dom.Node { return NewComment(text) }
func (Adapter) AppendChild(parent, child dom.Node) { node(parent).AppendChild(node(child)) }
func (Adapter) InsertBefore(parent, child, ref dom.Node) { node(parent).InsertBefore(node(child), node(ref)) }
func (Adapter) ParentNode(n dom.Node) dom.Node { return handle(node(n).Parent) }
func (Adapter) NextSibling(n dom.Node) dom.Node { return handle(node(n).NextSibling) }
func (Adapter) TagName(n dom.Node) string { return node(n).TagName() }
func (Adapter) SetTextContent(n dom.Node, text string) { node(n).SetTextContent(text) }
func (Adapter) GetTextContent(n dom.Node) string { return node(n).TextContent() }
func (Adapter) SetAttribute(n dom.Node, name, value string) { node(n).SetAttr(name, value) }
func (Adapter) RemoveAttribute(n dom.Node, name string) { node(n).RemoveAttr(name) }
func (Adapter) Attributes(n dom.Node) []dom.Attr { return node(n).Attrs() }

// RemoveChild detaches child. A nil parent is ignored.
func (Adapter) RemoveChild(parent, child dom.Node) {
	if p := node(parent); p != nil {
		p.RemoveChild(node(child))
	}
}

func (Adapter) GetAttribute(n dom.Node, name string) string {
	v, _ := node(n).Attr(name)
	return v
}

func (Adapter) IsElement(n dom.Node) bool {
	x, ok := n.(*Node)
	return ok && x != nil && x.Type == ElementNode
}

func (Adapter) IsText(n dom.Node) bool {
	x, ok := n.(*Node)
	return ok && x != nil && x.Type == TextNode
}

func (Adapter) IsComment(n dom.Node) bool {
	x, ok := n.(*Node)
	return ok && x != nil && x.Type == CommentNode
}

func (Adapter) ChildNodes(n dom.Node) []dom.Node {
	var out []dom.Node
	for c := node(n).FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func (Adapter) AddEventListener(n dom.Node, name string, l dom.EventListener) {
	node(n).AddEventListener(name, l)
}

func (Adapter) RemoveEventListener(n dom.Node, name string, l dom.EventListener) {
	node(n).RemoveEventListener(name, l)
}

func (Adapter) SetStyle(n dom.Node, name, value string) { node(n).SetStyle(name, value) }
func (Adapter) RemoveStyle(n dom.Node, name string) { node(n).RemoveStyle(name) }
func (Adapter) GetStyle(n dom.Node, name string) string { return node(n).Style(name) }
func (Adapter) SetProperty(n dom.Node, name string, v any) { node(n).SetProp(name, v) }
func (Adapter) GetProperty(n dom.Node, name string) any { return node(n).Prop(name) }
