package htmldom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vtree/pkg/dom"
)

// API is the adapter over *html.Node handles.
var API = Adapter{}

// Adapter implements dom.Adapter, dom.AttrAdapter, dom.ChildLister and
// dom.StyleAdapter over golang.org/x/net/html nodes. Styles are kept in the
// style attribute.
type Adapter struct{}

var (
	_ dom.Adapter      = Adapter{}
	_ dom.AttrAdapter  = Adapter{}
	_ dom.ChildLister  = Adapter{}
	_ dom.StyleAdapter = Adapter{}
)

func node(n dom.Node) *html.Node {
	if n == nil {
		return nil
	}
	return n.(*html.Node)
}

func handle(n *html.Node) dom.Node {
	if n == nil {
		return nil
	}
	return n
}

func (Adapter) CreateElement(tag string) dom.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func (Adapter) CreateElementNS(ns, tag string) dom.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, Namespace: nsPrefix(ns)}
}

func (Adapter) CreateTextNode(text string) dom.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

func (Adapter) CreateComment(text string) dom.Node {
	return &html.Node{Type: html.CommentNode, Data: text}
}

// InsertBefore moves child under parent before ref. Unlike html.Node's own
// InsertBefore it accepts an attached child.
func (Adapter) InsertBefore(parent, child, ref dom.Node) {
	p, c, r := node(parent), node(child), node(ref)
	if c == r {
		return
	}
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	if r != nil && r.Parent != p {
		r = nil
	}
	p.InsertBefore(c, r)
}

func (a Adapter) AppendChild(parent, child dom.Node) {
	a.InsertBefore(parent, child, nil)
}

// RemoveChild detaches child. It does nothing when child is not a child of
// parent.
func (Adapter) RemoveChild(parent, child dom.Node) {
	p, c := node(parent), node(child)
	if p == nil || c == nil || c.Parent != p {
		return
	}
	p.RemoveChild(c)
}

func (Adapter) ParentNode(n dom.Node) dom.Node  { return handle(node(n).Parent) }
func (Adapter) NextSibling(n dom.Node) dom.Node { return handle(node(n).NextSibling) }

// TagName reports HTML element names upper-cased, like a browser.
func (Adapter) TagName(n dom.Node) string {
	x := node(n)
	if x.Type != html.ElementNode {
		return ""
	}
	if x.Namespace == "" {
		return strings.ToUpper(x.Data)
	}
	return x.Data
}

func (Adapter) SetTextContent(n dom.Node, text string) {
	x := node(n)
	switch x.Type {
	case html.TextNode, html.CommentNode:
		x.Data = text
		return
	}
	for x.FirstChild != nil {
		x.RemoveChild(x.FirstChild)
	}
	if text != "" {
		x.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func (Adapter) GetTextContent(n dom.Node) string {
	x := node(n)
	switch x.Type {
	case html.TextNode, html.CommentNode:
		return x.Data
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				sb.WriteString(c.Data)
			case html.ElementNode, html.DocumentNode:
				walk(c)
			}
		}
	}
	walk(x)
	return sb.String()
}

func (Adapter) SetAttribute(n dom.Node, name, value string) {
	x := node(n)
	for i := range x.Attr {
		if x.Attr[i].Key == name && x.Attr[i].Namespace == "" {
			x.Attr[i].Val = value
			return
		}
	}
	x.Attr = append(x.Attr, html.Attribute{Key: name, Val: value})
}

func (Adapter) GetAttribute(n dom.Node, name string) string {
	for _, a := range node(n).Attr {
		if a.Key == name && a.Namespace == "" {
			return a.Val
		}
	}
	return ""
}

func (Adapter) RemoveAttribute(n dom.Node, name string) {
	x := node(n)
	for i := range x.Attr {
		if x.Attr[i].Key == name && x.Attr[i].Namespace == "" {
			x.Attr = append(x.Attr[:i], x.Attr[i+1:]...)
			return
		}
	}
}

func (Adapter) Attributes(n dom.Node) []dom.Attr {
	x := node(n)
	out := make([]dom.Attr, 0, len(x.Attr))
	for _, a := range x.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		out = append(out, dom.Attr{Name: name, Value: a.Val})
	}
	return out
}

func (Adapter) ChildNodes(n dom.Node) []dom.Node {
	var out []dom.Node
	for c := node(n).FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func (Adapter) IsElement(n dom.Node) bool {
	x, ok := n.(*html.Node)
	return ok && x != nil && x.Type == html.ElementNode
}

func (Adapter) IsText(n dom.Node) bool {
	x, ok := n.(*html.Node)
	return ok && x != nil && x.Type == html.TextNode
}

func (Adapter) IsComment(n dom.Node) bool {
	x, ok := n.(*html.Node)
	return ok && x != nil && x.Type == html.CommentNode
}

// nsPrefix maps a namespace URI to the short namespace x/net/html uses.
func nsPrefix(ns string) string {
	switch ns {
	case "http://www.w3.org/2000/svg":
		return "svg"
	case "http://www.w3.org/1998/Math/MathML":
		return "math"
	default:
		return ns
	}
}
