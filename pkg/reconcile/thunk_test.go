package reconcile

import (
	"testing"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/memdom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func TestThunkRendersOnlyWhenArgsChange(t *testing.T) {
	renders := 0
	view := func(args ...any) *vdom.VNode {
		renders++
		return vdom.H("p", args[0].(string))
	}
	e, rec, _, mount := newTestEngine()

	v := e.Patch(mount, vdom.H("div", vdom.Thunk("p", "t", view, "a")))
	if renders != 1 {
		t.Fatalf("renders after create = %d, want 1", renders)
	}
	pElm := v.Children[0].Elm
	rec.Reset()

	v = e.Patch(v, vdom.H("div", vdom.Thunk("p", "t", view, "a")))
	if renders != 1 {
		t.Errorf("renders with equal args = %d, want 1", renders)
	}
	if ops := rec.Take(); len(ops) != 0 {
		t.Errorf("ops with equal args = %v, want none", ops)
	}
	if v.Children[0].Elm != pElm {
		t.Error("thunk should keep its real node")
	}

	v = e.Patch(v, vdom.H("div", vdom.Thunk("p", "t", view, "b")))
	if renders != 2 {
		t.Errorf("renders with new args = %d, want 2", renders)
	}
	if got := mount.OuterHTML(); got != "<div><p>b</p></div>" {
		t.Errorf("OuterHTML = %q", got)
	}
	if v.Children[0].Elm != pElm {
		t.Error("re-rendered thunk should patch its real node in place")
	}
}

func TestThunkRerendersOnArgCountChange(t *testing.T) {
	renders := 0
	view := func(args ...any) *vdom.VNode {
		renders++
		return vdom.H("span", len(args))
	}
	e, _, _, mount := newTestEngine()
	v := e.Patch(mount, vdom.H("div", vdom.Thunk("span", "", view, 1)))

	e.Patch(v, vdom.H("div", vdom.Thunk("span", "", view, 1, 2)))

	if renders != 2 {
		t.Errorf("renders = %d, want 2", renders)
	}
	if got := mount.OuterHTML(); got != "<div><span>2</span></div>" {
		t.Errorf("OuterHTML = %q", got)
	}
}

type filter struct {
	Terms any
}

func TestThunkArgsHoldingSlicesRerender(t *testing.T) {
	renders := 0
	view := func(args ...any) *vdom.VNode {
		renders++
		return vdom.H("div", args[0].(filter).Terms.([]string)[0])
	}
	e, _, _, mount := newTestEngine()
	v := e.Patch(mount, vdom.H("div", vdom.Thunk("div", "f", view, filter{Terms: []string{"a"}})))

	e.Patch(v, vdom.H("div", vdom.Thunk("div", "f", view, filter{Terms: []string{"b"}})))

	if renders != 2 {
		t.Errorf("renders = %d, want 2", renders)
	}
	if got := mount.OuterHTML(); got != "<div><div>b</div></div>" {
		t.Errorf("OuterHTML = %q", got)
	}
}

func TestAdoptExistingMarkup(t *testing.T) {
	root := memdom.NewElement("div")
	root.SetAttr("id", "app")
	p := memdom.NewElement("p")
	p.SetAttr("class", "x")
	p.AppendChild(memdom.NewText("hi"))
	root.AppendChild(p)
	root.AppendChild(memdom.NewComment("c"))
	body := memdom.NewElement("body")
	body.AppendChild(root)

	rec := dom.NewRecorder(memdom.API)
	e := New(nil, rec)
	old := vdom.ToVNode(root, rec)

	v := e.Patch(old, vdom.H("div#app", vdom.H("p.x", vdom.TextNode("hi")), vdom.Comment("c")))

	if ops := rec.Ops(); len(ops) != 0 {
		t.Errorf("ops = %v, want none", ops)
	}
	if v.Elm != root || v.Children[0].Elm != p {
		t.Error("existing nodes should be adopted")
	}
}
