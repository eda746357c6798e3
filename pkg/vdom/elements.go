package vdom

// Tag helpers for the elements most trees are made of. They accept the same
// arguments as H; the selector is the bare tag, so ids and classes go in
// Data.Attrs/Data.Class or through H directly.

func Div(args ...any) *VNode { return H("div", args...) }
func Span(args ...any) *VNode { return H("span", args...) }
func P(args ...any) *VNode { return H("p", args...) }
func A(args ...any) *VNode { return H("a", args...) }
func Ul(args ...any) *VNode { return H("ul", args...) }
func Ol(args ...any) *VNode { return H("ol", args...) }
func Li(args ...any) *VNode { return H("li", args...) }
func Button(args ...any) *VNode { return H("button", args...) }
func Input(args ...any) *VNode { return H("input", args...) }
func Label(args ...any) *VNode { return H("label", args...) }
func Section(args ...any) *VNode { return H("section", args...) }
func Table(args ...any) *VNode { return H("table", args...) }
func Tr(args ...any) *VNode { return H("tr", args...) }
func Td(args ...any) *VNode { return H("td", args...) }
func Svg(args ...any) *VNode { return H("svg", args...) }

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}
