package treefile

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-yaml"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// ErrSyntax marks documents that are not valid YAML or do not match the
// node schema.
var ErrSyntax = errors.New("treefile: syntax error")

// Decode reads one tree document from r and builds its VNode tree.
func Decode(r io.Reader) (*vdom.VNode, error) {
	n, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if err := Validate(n); err != nil {
		return nil, err
	}
	return Build(n), nil
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(data []byte) (*vdom.VNode, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeFile reads the tree document at path.
func DecodeFile(path string) (*vdom.VNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "treefile: open %s", path)
	}
	defer f.Close()
	v, err := Decode(f)
	return v, errors.Wrapf(err, "%s", path)
}

// Parse reads one document into its Node form without validating it.
// Unknown fields are rejected.
func Parse(r io.Reader) (*Node, error) {
	var n Node
	dec := yaml.NewDecoder(r, yaml.DisallowUnknownField())
	if err := dec.Decode(&n); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Mark(errors.New("treefile: empty document"), ErrSyntax)
		}
		return nil, errors.Mark(errors.Wrap(err, "treefile"), ErrSyntax)
	}
	return &n, nil
}

// Build turns a validated Node into a VNode tree. SVG namespaces are
// filled in the way vdom.H does it.
func Build(n *Node) *vdom.VNode {
	if n == nil {
		return nil
	}
	switch n.Sel {
	case "":
		return vdom.TextNode(deref(n.Text))
	case vdom.CommentSel:
		v := vdom.Comment(deref(n.Text))
		v.Data.Key = n.Key
		v.Key = n.Key
		return v
	}

	data := &vdom.Data{
		Key:     n.Key,
		NS:      n.NS,
		Attrs:   n.Attrs,
		Props:   n.Props,
		Class:   n.Class,
		Dataset: n.Dataset,
	}
	if n.Style != nil {
		data.Style = vdom.Style{
			Props:   n.Style.Props,
			Delayed: n.Style.Delayed,
			Remove:  n.Style.Remove,
			Destroy: n.Style.Destroy,
		}
	}
	if n.Text != nil {
		return vdom.H(n.Sel, data, *n.Text)
	}
	if n.Children == nil {
		return vdom.H(n.Sel, data)
	}
	children := make([]*vdom.VNode, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, Build(c))
	}
	return vdom.H(n.Sel, data, children)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
