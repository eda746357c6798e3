package memdom

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
)

// ToHTML converts the subtree rooted at n into golang.org/x/net/html nodes.
// Inline styles become a style attribute. Fragments become a DocumentNode.
func ToHTML(n *Node) *html.Node {
	var out *html.Node
	switch n.Type {
	case TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Data}
	case CommentNode:
		return &html.Node{Type: html.CommentNode, Data: n.Data}
	case FragmentNode:
		out = &html.Node{Type: html.DocumentNode}
	default:
		out = &html.Node{Type: html.ElementNode, Data: n.Tag, Namespace: nsPrefix(n.NS)}
		for _, a := range n.attrs {
			out.Attr = append(out.Attr, html.Attribute{Key: a.Name, Val: a.Value})
		}
		if len(n.styles) > 0 {
			out.Attr = append(out.Attr, html.Attribute{Key: "style", Val: n.StyleText()})
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out.AppendChild(ToHTML(c))
	}
	return out
}

// Render writes the subtree rooted at n as HTML.
func Render(w io.Writer, n *Node) error {
	if n.Type == FragmentNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(w, ToHTML(c)); err != nil {
				return err
			}
		}
		return nil
	}
	return html.Render(w, ToHTML(n))
}

// OuterHTML returns the subtree rooted at n as an HTML string.
func (n *Node) OuterHTML() string {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// nsPrefix maps a namespace URI to the short namespace x/net/html uses.
func nsPrefix(ns string) string {
	switch ns {
	case "":
		return ""
	case "http://www.w3.org/2000/svg":
		return "svg"
	case "http://www.w3.org/1998/Math/MathML":
		return "math"
	default:
		return ns
	}
}
