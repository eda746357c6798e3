package htmldom

import (
	"bytes"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup in a <body> context and returns a detached
// container element holding the parsed nodes. Whitespace-only text between
// elements is dropped.
func ParseFragment(r io.Reader) (*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, errors.Wrap(err, "htmldom: parse fragment")
	}
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	trimWhitespace(root)
	return root, nil
}

// ParseFragmentString is ParseFragment over a string.
func ParseFragmentString(s string) (*html.Node, error) {
	return ParseFragment(strings.NewReader(s))
}

// FirstElement returns the first element child of n, or nil.
func FirstElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

func trimWhitespace(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
			n.RemoveChild(c)
		case c.Type == html.ElementNode && c.DataAtom != atom.Pre && c.DataAtom != atom.Textarea:
			trimWhitespace(c)
		}
		c = next
	}
}

// Render writes n as HTML.
func Render(w io.Writer, n *html.Node) error {
	return errors.Wrap(html.Render(w, n), "htmldom: render")
}

// RenderChildren writes every child of n as HTML, without n itself.
func RenderChildren(w io.Writer, n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return errors.Wrap(err, "htmldom: render")
		}
	}
	return nil
}

// String renders n as an HTML string.
func String(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}
