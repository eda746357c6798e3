package htmldom

import (
	"strings"

	"github.com/vango-dev/vtree/pkg/dom"
)

type declaration struct {
	name, value string
}

func parseStyle(s string) []declaration {
	var out []declaration
	for _, part := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, declaration{name: name, value: strings.TrimSpace(value)})
	}
	return out
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.name+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

func (a Adapter) writeStyle(n dom.Node, decls []declaration) {
	if len(decls) == 0 {
		a.RemoveAttribute(n, "style")
		return
	}
	a.SetAttribute(n, "style", formatStyle(decls))
}

// SetStyle sets one declaration of the style attribute. An empty value
// removes it.
func (a Adapter) SetStyle(n dom.Node, name, value string) {
	if value == "" {
		a.RemoveStyle(n, name)
		return
	}
	decls := parseStyle(a.GetAttribute(n, "style"))
	for i := range decls {
		if decls[i].name == name {
			decls[i].value = value
			a.writeStyle(n, decls)
			return
		}
	}
	a.writeStyle(n, append(decls, declaration{name: name, value: value}))
}

func (a Adapter) RemoveStyle(n dom.Node, name string) {
	decls := parseStyle(a.GetAttribute(n, "style"))
	out := decls[:0]
	for _, d := range decls {
		if d.name != name {
			out = append(out, d)
		}
	}
	a.writeStyle(n, out)
}

func (a Adapter) GetStyle(n dom.Node, name string) string {
	for _, d := range parseStyle(a.GetAttribute(n, "style")) {
		if d.name == name {
			return d.value
		}
	}
	return ""
}
