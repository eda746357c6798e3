package treefile

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-yaml"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// FromVNode converts a VNode tree into its document form. Namespaces that
// Build would infer again are left out, as are nil children.
func FromVNode(v *vdom.VNode) *Node {
	return fromVNode(v, "", "")
}

func fromVNode(v *vdom.VNode, parentNS, parentTag string) *Node {
	if v == nil {
		return nil
	}
	n := &Node{Sel: v.Sel, Key: v.Key}
	if v.HasText {
		text := v.Text
		n.Text = &text
	}
	if v.Sel == "" || v.Sel == vdom.CommentSel {
		return n
	}

	tag := vdom.ParseSelector(v.Sel).Tag
	var ns string
	if d := v.Data; d != nil {
		ns = d.NS
		n.Attrs = d.Attrs
		n.Props = d.Props
		n.Class = d.Class
		n.Dataset = d.Dataset
		if !d.Style.Empty() {
			n.Style = &Style{
				Props:   d.Style.Props,
				Delayed: d.Style.Delayed,
				Remove:  d.Style.Remove,
				Destroy: d.Style.Destroy,
			}
		}
	}
	if ns != inferredNS(tag, parentNS, parentTag) {
		n.NS = ns
	}
	if v.Children != nil && !v.HasText {
		n.Children = make([]*Node, 0, len(v.Children))
		for _, c := range v.Children {
			if c != nil {
				n.Children = append(n.Children, fromVNode(c, ns, tag))
			}
		}
	}
	return n
}

func inferredNS(tag, parentNS, parentTag string) string {
	if tag == "svg" {
		return vdom.SVGNamespace
	}
	if parentNS == vdom.SVGNamespace && parentTag != "foreignObject" {
		return vdom.SVGNamespace
	}
	return ""
}

// Encode writes v as a YAML document.
func Encode(w io.Writer, v *vdom.VNode) error {
	enc := yaml.NewEncoder(w, yaml.Indent(2), yaml.IndentSequence(true))
	if err := enc.Encode(FromVNode(v)); err != nil {
		return errors.Wrap(err, "treefile: encode")
	}
	return errors.Wrap(enc.Close(), "treefile: encode")
}

// Marshal returns v as a YAML document.
func Marshal(v *vdom.VNode) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(FromVNode(v), yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, errors.Wrap(err, "treefile: marshal")
	}
	return data, nil
}
