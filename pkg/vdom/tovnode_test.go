package vdom

import (
	"testing"

	"github.com/vango-dev/vtree/pkg/memdom"
)

func TestToVNode(t *testing.T) {
	root := memdom.NewElement("div")
	root.SetAttr("id", "app")
	root.SetAttr("class", "a b")
	root.SetAttr("title", "t")
	root.AppendChild(memdom.NewText("hi"))
	root.AppendChild(memdom.NewComment("c"))
	span := memdom.NewElement("span")
	root.AppendChild(span)

	v := ToVNode(root, nil)

	if v.Sel != "div#app.a.b" {
		t.Errorf("Sel = %q", v.Sel)
	}
	if v.Elm != root {
		t.Error("Elm should reference the real node")
	}
	if len(v.Data.Attrs) != 1 || v.Data.Attrs["title"] != "t" {
		t.Errorf("Attrs = %v, want only title", v.Data.Attrs)
	}
	if len(v.Children) != 3 {
		t.Fatalf("Children len = %d, want 3", len(v.Children))
	}
	if c := v.Children[0]; !c.IsText() || c.Text != "hi" || c.Data != nil {
		t.Errorf("text child = %+v", c)
	}
	if c := v.Children[1]; !c.IsComment() || c.Text != "c" {
		t.Errorf("comment child = %+v", c)
	}
	if c := v.Children[2]; c.Sel != "span" || c.Children == nil {
		t.Errorf("span child = %+v", c)
	}
}
