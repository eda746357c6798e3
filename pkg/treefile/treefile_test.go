package treefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vtree/pkg/vdom"
)

const todoDoc = `
sel: ul#todo.list
children:
  - sel: li
    key: a
    class: {done: true}
    text: Buy milk
  - sel: li
    key: b
    attrs: {title: later, tabindex: 2}
    style:
      props: {color: red}
      remove: {opacity: "0"}
    text: Walk dog
  - text: plain
  - sel: "!"
    text: note
`

func TestDecode(t *testing.T) {
	v, err := DecodeBytes([]byte(todoDoc))
	require.NoError(t, err)

	require.Equal(t, "ul#todo.list", v.Sel)
	require.Len(t, v.Children, 4)

	a := v.Children[0]
	require.Equal(t, "a", a.Key)
	require.Equal(t, "Buy milk", a.Text)
	require.True(t, a.HasText)
	require.Equal(t, map[string]bool{"done": true}, a.Data.Class)

	b := v.Children[1]
	require.Equal(t, "later", b.Data.Attrs["title"])
	require.EqualValues(t, 2, b.Data.Attrs["tabindex"])
	require.Equal(t, "red", b.Data.Style.Props["color"])
	require.Equal(t, "0", b.Data.Style.Remove["opacity"])

	require.True(t, v.Children[2].IsText())
	require.Equal(t, "plain", v.Children[2].Text)

	require.True(t, v.Children[3].IsComment())
	require.Equal(t, "note", v.Children[3].Text)
}

func TestDecodeJSON(t *testing.T) {
	v, err := DecodeBytes([]byte(`{"sel": "p", "key": "k", "children": [{"text": "a"}, {"sel": "b", "text": "c"}]}`))
	require.NoError(t, err)
	require.Equal(t, "k", v.Key)
	require.Len(t, v.Children, 2)
	require.Equal(t, "b", v.Children[1].Sel)
}

func TestDecodeSVGNamespace(t *testing.T) {
	v, err := DecodeBytes([]byte(`
sel: svg
children:
  - sel: circle
  - sel: foreignObject
    children:
      - sel: p
`))
	require.NoError(t, err)
	require.Equal(t, vdom.SVGNamespace, v.Data.NS)
	require.Equal(t, vdom.SVGNamespace, v.Children[0].Data.NS)
	require.Equal(t, "", v.Children[1].Children[0].Data.NS)
}

func TestDecodeEmptyChildren(t *testing.T) {
	v, err := DecodeBytes([]byte("sel: div\nchildren: []\n"))
	require.NoError(t, err)
	require.Empty(t, v.Children)
	require.False(t, v.HasText)

	v, err = DecodeBytes([]byte("sel: div\n"))
	require.NoError(t, err)
	require.Nil(t, v.Children)
	require.False(t, v.HasText)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		mark    error
		message string
	}{
		{"empty", "", ErrSyntax, "empty document"},
		{"unknown field", "sel: div\ncolour: red\n", ErrSyntax, "colour"},
		{"bad yaml", "sel: [div\n", ErrSyntax, ""},
		{"text and children", "sel: p\ntext: x\nchildren: [{text: y}]\n", ErrInvalid, "p: text and children are exclusive"},
		{"void children", "sel: div\nchildren: [{sel: br, children: [{text: x}]}]\n", ErrInvalid, "div/br[0]: <br> cannot have content"},
		{"text without text", "sel: div\nchildren: [{key: k}]\n", ErrInvalid, "text node"},
		{"duplicate keys", "sel: ul\nchildren: [{sel: li, key: a}, {sel: li, key: a}]\n", ErrInvalid, `duplicate key "a" on children 0 and 1`},
		{"comment children", "sel: '!'\nchildren: [{text: x}]\n", ErrInvalid, "comment with children"},
		{"no tag", "sel: '#id'\n", ErrInvalid, "has no tag"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBytes([]byte(tc.doc))
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.mark), "err = %v", err)
			require.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestValidateHints(t *testing.T) {
	_, err := DecodeBytes([]byte("sel: p\ntext: x\nchildren: [{text: y}]\n"))
	require.Error(t, err)
	require.Contains(t, errors.GetAllHints(err), "move the text into a child text node")
}

func TestEncodeRoundTrip(t *testing.T) {
	orig := vdom.H("svg#logo", &vdom.Data{Attrs: map[string]any{"viewBox": "0 0 10 10"}},
		vdom.H("circle", &vdom.Data{Key: "c"}),
		vdom.H("foreignObject", vdom.H("p.note", "hi")),
	)

	data, err := Marshal(orig)
	require.NoError(t, err)
	require.NotContains(t, string(data), "ns:")
	require.Contains(t, string(data), "svg#logo")

	v, err := DecodeBytes(data)
	require.NoError(t, err)
	require.Equal(t, orig.Sel, v.Sel)
	require.Equal(t, "0 0 10 10", v.Data.Attrs["viewBox"])
	require.Equal(t, "c", v.Children[0].Key)
	require.Equal(t, vdom.SVGNamespace, v.Children[0].Data.NS)
	p := v.Children[1].Children[0]
	require.Equal(t, "p.note", p.Sel)
	require.Equal(t, "hi", p.Text)
	require.Empty(t, p.Data.NS)
}

func TestEncodeKeepsUnusualNamespace(t *testing.T) {
	v := vdom.H("math", &vdom.Data{NS: "http://www.w3.org/1998/Math/MathML"})

	var sb strings.Builder
	require.NoError(t, Encode(&sb, v))
	require.Contains(t, sb.String(), "ns:")
	require.Contains(t, sb.String(), "http://www.w3.org/1998/Math/MathML")
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(todoDoc), 0o644))

	v, err := DecodeFile(path)
	require.NoError(t, err)
	require.Len(t, v.Children, 4)

	_, err = DecodeFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}
