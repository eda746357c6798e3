package vdom

import (
	"fmt"
	"strconv"
)

// SVGNamespace is the namespace H assigns to svg subtrees.
const SVGNamespace = "http://www.w3.org/2000/svg"

// H builds a VNode from a selector and any mix of:
//
//   - nil (ignored, handy for conditional content)
//   - *Data or Data (configuration; the last one wins)
//   - *VNode or []*VNode (children)
//   - []any (children, primitives become text nodes)
//   - string, bool or any integer or float (text)
//
// A single primitive and nothing else becomes the node's Text. Otherwise
// primitives become text children in argument order. Nodes under an svg
// selector get the SVG namespace, except below foreignObject.
//
//	H("ul#list", H("li", "one"), H("li", &Data{Key: "2"}, "two"))
func H(sel string, args ...any) *VNode {
	data := &Data{}
	var (
		children []*VNode
		prims    []string
		hasKids  bool
	)
	addPrim := func(s string) {
		prims = append(prims, s)
		children = append(children, TextNode(s))
	}
	var add func(arg any)
	add = func(arg any) {
		switch v := arg.(type) {
		case nil:
		case *Data:
			if v != nil {
				data = v
			}
		case Data:
			d := v
			data = &d
		case *VNode:
			if v != nil {
				children = append(children, v)
				hasKids = true
			}
		case []*VNode:
			children = append(children, v...)
			hasKids = true
		case []any:
			for _, c := range v {
				add(c)
			}
			hasKids = true
		default:
			if s, ok := primitive(v); ok {
				addPrim(s)
			}
		}
	}
	for _, arg := range args {
		add(arg)
	}

	v := &VNode{Sel: sel, Data: data, Key: data.Key}
	if !hasKids && len(prims) == 1 {
		v.Text = prims[0]
		v.HasText = true
	} else if hasKids || len(prims) > 0 {
		v.Children = children
		if v.Children == nil {
			v.Children = []*VNode{}
		}
	}
	if isSVG(sel) {
		addNS(data, v.Children, sel)
	}
	return v
}

// TextNode creates a pure text VNode.
func TextNode(text string) *VNode {
	return &VNode{Text: text, HasText: true}
}

// Textf creates a formatted text VNode.
func Textf(format string, args ...any) *VNode {
	return TextNode(fmt.Sprintf(format, args...))
}

// Comment creates a comment VNode.
func Comment(text string) *VNode {
	return &VNode{Sel: CommentSel, Data: &Data{}, Text: text, HasText: true}
}

func isSVG(sel string) bool {
	return len(sel) >= 3 && sel[:3] == "svg" && (len(sel) == 3 || sel[3] == '.' || sel[3] == '#')
}

func addNS(data *Data, children []*VNode, sel string) {
	data.NS = SVGNamespace
	if sel == "foreignObject" {
		return
	}
	for _, c := range children {
		if c != nil && c.Data != nil {
			addNS(c.Data, c.Children, c.Sel)
		}
	}
}

func primitive(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}
