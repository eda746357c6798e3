package treefile

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// ErrInvalid marks documents that parse but describe a malformed tree.
var ErrInvalid = errors.New("treefile: invalid tree")

// Validate checks n and its descendants. The error names the offending node
// by its path from the root, e.g. "ul#list/li[2]".
func Validate(n *Node) error {
	if n == nil {
		return errors.Mark(errors.New("treefile: empty document"), ErrInvalid)
	}
	return validate(n, label(n, -1))
}

func validate(n *Node, path string) error {
	invalid := func(format string, args ...any) error {
		return errors.Mark(errors.Newf("%s: "+format, append([]any{errors.Safe(path)}, args...)...), ErrInvalid)
	}

	switch n.Sel {
	case "":
		if n.Text == nil {
			return invalid("text node without text")
		}
		if n.hasData() || n.Children != nil {
			return errors.WithHint(invalid("text node with configuration or children"),
				"give the node a selector to make it an element")
		}
		return nil
	case vdom.CommentSel:
		if n.Children != nil {
			return invalid("comment with children")
		}
		return nil
	}

	if n.Text != nil && n.Children != nil {
		return errors.WithHint(invalid("text and children are exclusive"),
			"move the text into a child text node")
	}
	tag := vdom.ParseSelector(n.Sel).Tag
	if tag == "" || strings.ContainsAny(tag, "#.") {
		return invalid("selector %q has no tag", n.Sel)
	}
	if vdom.IsVoidElement(strings.ToLower(tag)) && (len(n.Children) > 0 || (n.Text != nil && *n.Text != "")) {
		return errors.WithHintf(invalid("<%s> cannot have content", tag),
			"remove the text and children of <%s>", tag)
	}

	keys := make(map[string]int)
	for i, c := range n.Children {
		if c == nil {
			return invalid("child %d is null", i)
		}
		if c.Key != "" {
			if prev, dup := keys[c.Key]; dup {
				return invalid("duplicate key %q on children %d and %d", c.Key, prev, i)
			}
			keys[c.Key] = i
		}
		if err := validate(c, path+"/"+label(c, i)); err != nil {
			return err
		}
	}
	return nil
}

func label(n *Node, i int) string {
	name := n.Sel
	switch n.Sel {
	case "":
		name = "#text"
	case vdom.CommentSel:
		name = "#comment"
	}
	if i < 0 {
		return name
	}
	return fmt.Sprintf("%s[%d]", name, i)
}
