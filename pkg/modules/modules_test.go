package modules

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/memdom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// newMount returns an engine over memdom and a mount point attached to a
// body element.
func newMount(api dom.Adapter, mods ...reconcile.Module) (*reconcile.Engine, *memdom.Node) {
	body := memdom.NewElement("body")
	mount := memdom.NewElement("div")
	body.AppendChild(mount)
	return reconcile.New(mods, api), mount
}

func elmOf(v *vdom.VNode) *memdom.Node {
	return v.Elm.(*memdom.Node)
}

func attr(n *memdom.Node, name string) string {
	v, ok := n.Attr(name)
	if !ok {
		return "<unset>"
	}
	return v
}

func TestAttributes(t *testing.T) {
	e, mount := newMount(memdom.API, Attributes(memdom.API))

	v := e.Patch(mount, vdom.H("a", &vdom.Data{Attrs: map[string]any{
		"href":       "/a",
		"disabled":   true,
		"hidden":     false,
		"tabindex":   3,
		"xlink:href": "#icon",
	}}))
	a := elmOf(v)

	tests := []struct{ name, want string }{
		{"href", "/a"},
		{"disabled", ""},
		{"hidden", "<unset>"},
		{"tabindex", "3"},
		{"xlink:href", "#icon"},
	}
	for _, tt := range tests {
		if got := attr(a, tt.name); got != tt.want {
			t.Errorf("attr %s = %q, want %q", tt.name, got, tt.want)
		}
	}

	v = e.Patch(v, vdom.H("a", &vdom.Data{Attrs: map[string]any{"href": "/b", "disabled": false}}))
	for name, want := range map[string]string{
		"href":       "/b",
		"disabled":   "<unset>",
		"tabindex":   "<unset>",
		"xlink:href": "<unset>",
	} {
		if got := attr(a, name); got != want {
			t.Errorf("after update attr %s = %q, want %q", name, got, want)
		}
	}

	// Values that cannot be compared with == must not panic.
	e.Patch(v, vdom.H("a", &vdom.Data{Attrs: map[string]any{"data-list": []int{1, 2}}}))
	if got := attr(a, "data-list"); got != "[1 2]" {
		t.Errorf("slice attr = %q", got)
	}
}

func TestAttributesSameMapIsNoop(t *testing.T) {
	rec := dom.NewRecorder(memdom.API)
	e, mount := newMount(rec, Attributes(rec))
	attrs := map[string]any{"title": "t"}

	v := e.Patch(mount, vdom.H("p", &vdom.Data{Attrs: attrs}))
	rec.Reset()
	e.Patch(v, vdom.H("p", &vdom.Data{Attrs: attrs}))

	if ops := rec.Ops(); len(ops) != 0 {
		t.Errorf("ops = %v, want none", ops)
	}
}

func TestClass(t *testing.T) {
	e, mount := newMount(memdom.API, Class(memdom.API))

	v := e.Patch(mount, vdom.H("div.base", &vdom.Data{Class: map[string]bool{"active": true, "hidden": false}}))
	div := elmOf(v)
	if got := attr(div, "class"); got != "base active" {
		t.Errorf("class = %q, want %q", got, "base active")
	}

	v = e.Patch(v, vdom.H("div.base", &vdom.Data{Class: map[string]bool{"active": false, "hidden": true}}))
	if got := attr(div, "class"); got != "base hidden" {
		t.Errorf("class = %q, want %q", got, "base hidden")
	}

	e.Patch(v, vdom.H("div.base"))
	if got := attr(div, "class"); got != "base" {
		t.Errorf("class = %q, want %q", got, "base")
	}
}

func TestClassRemovesEmptyAttribute(t *testing.T) {
	e, mount := newMount(memdom.API, Class(memdom.API))

	v := e.Patch(mount, vdom.H("span", &vdom.Data{Class: map[string]bool{"on": true}}))
	e.Patch(v, vdom.H("span", &vdom.Data{Class: map[string]bool{"on": false}}))

	if got := attr(elmOf(v), "class"); got != "<unset>" {
		t.Errorf("class = %q, want it removed", got)
	}
}

func TestProps(t *testing.T) {
	e, mount := newMount(memdom.API, Props(memdom.API))

	v := e.Patch(mount, vdom.H("input", &vdom.Data{Props: map[string]any{"value": "x", "checked": true}}))
	input := elmOf(v)
	if input.Prop("value") != "x" || input.Prop("checked") != true {
		t.Fatalf("props = %v, %v", input.Prop("value"), input.Prop("checked"))
	}

	// An unchanged value leaves what the user typed alone.
	input.SetProp("value", "typed")
	v = e.Patch(v, vdom.H("input", &vdom.Data{Props: map[string]any{"value": "x", "checked": true}}))
	if got := input.Prop("value"); got != "typed" {
		t.Errorf("value = %v, want the live value kept", got)
	}

	v = e.Patch(v, vdom.H("input", &vdom.Data{Props: map[string]any{"value": "y"}}))
	if got := input.Prop("value"); got != "y" {
		t.Errorf("value = %v, want y", got)
	}
	if got := input.Prop("checked"); got != nil {
		t.Errorf("checked = %v, want nil after removal", got)
	}
}

func TestPropsNeedsPropAdapter(t *testing.T) {
	bare := struct{ dom.Adapter }{memdom.API}
	m := Props(bare)
	if m.Create != nil || m.Update != nil {
		t.Error("props module should be inert without a PropAdapter")
	}
	if m.Name != "props" {
		t.Errorf("Name = %q", m.Name)
	}
}

func TestDataset(t *testing.T) {
	e, mount := newMount(memdom.API, Dataset(memdom.API))

	v := e.Patch(mount, vdom.H("div", &vdom.Data{Dataset: map[string]string{"userId": "7", "x": "1"}}))
	div := elmOf(v)
	if got := attr(div, "data-user-id"); got != "7" {
		t.Errorf("data-user-id = %q", got)
	}

	e.Patch(v, vdom.H("div", &vdom.Data{Dataset: map[string]string{"x": "2"}}))
	if got := attr(div, "data-user-id"); got != "<unset>" {
		t.Errorf("data-user-id = %q, want removed", got)
	}
	if got := attr(div, "data-x"); got != "2" {
		t.Errorf("data-x = %q, want 2", got)
	}
}

func TestStyle(t *testing.T) {
	e, mount := newMount(memdom.API, Style(memdom.API))

	v := e.Patch(mount, vdom.H("div", &vdom.Data{Style: vdom.Style{
		Props: map[string]string{"color": "red", "margin": "0"},
	}}))
	div := elmOf(v)
	if div.Style("color") != "red" || div.Style("margin") != "0" {
		t.Fatalf("style = %q", div.StyleText())
	}

	e.Patch(v, vdom.H("div", &vdom.Data{Style: vdom.Style{
		Props: map[string]string{"color": "blue"},
	}}))
	if div.Style("color") != "blue" || div.Style("margin") != "" {
		t.Errorf("style = %q, want only color: blue", div.StyleText())
	}
}

func TestStyleDelayedAppliesAfterPatch(t *testing.T) {
	e, mount := newMount(memdom.API, Style(memdom.API))
	var atInsert string
	data := &vdom.Data{
		Style: vdom.Style{
			Props:   map[string]string{"opacity": "0"},
			Delayed: map[string]string{"opacity": "1"},
		},
		Hook: &vdom.Hook{Insert: func(v *vdom.VNode) { atInsert = elmOf(v).Style("opacity") }},
	}

	v := e.Patch(mount, vdom.H("section", vdom.H("p", data)))

	if atInsert != "0" {
		t.Errorf("opacity during insert = %q, want 0", atInsert)
	}
	if got := elmOf(v.Children[0]).Style("opacity"); got != "1" {
		t.Errorf("opacity after patch = %q, want 1", got)
	}
}

func TestStyleRemoveWaitsForTransition(t *testing.T) {
	var done func()
	style := Style(memdom.API, WithTransition(func(_ *vdom.VNode, d func()) { done = d }))
	e, mount := newMount(memdom.API, style)

	v := e.Patch(mount, vdom.H("ul", vdom.H("li", &vdom.Data{Style: vdom.Style{
		Remove:  map[string]string{"opacity": "0"},
		Destroy: map[string]string{"color": "gray"},
	}})))
	ul := elmOf(v)
	li := elmOf(v.Children[0])

	e.Patch(v, vdom.H("ul"))

	if li.Parent != ul {
		t.Fatal("li detached before the transition finished")
	}
	if li.Style("opacity") != "0" || li.Style("color") != "gray" {
		t.Errorf("style = %q, want remove and destroy styles applied", li.StyleText())
	}
	if done == nil {
		t.Fatal("transition hook not called")
	}
	done()
	if li.Parent != nil {
		t.Error("li still attached after the transition")
	}
}

func TestEventListeners(t *testing.T) {
	e, mount := newMount(memdom.API, EventListeners(memdom.API))
	var log []string

	v := e.Patch(mount, vdom.H("button", &vdom.Data{On: map[string]vdom.Handler{
		"click": func(ev *dom.Event) { log = append(log, "first:"+ev.Type) },
	}}))
	btn := elmOf(v)
	btn.Dispatch("click", nil)

	v = e.Patch(v, vdom.H("button", &vdom.Data{On: map[string]vdom.Handler{
		"click": func(_ *dom.Event, vn *vdom.VNode) { log = append(log, "second:"+vn.Sel) },
		"focus": func() { log = append(log, "focus") },
	}}))
	btn.Dispatch("click", nil)
	btn.Dispatch("focus", nil)

	if btn.ListenerCount("click") != 1 {
		t.Errorf("click listeners = %d, want 1 shared listener", btn.ListenerCount("click"))
	}

	e.Patch(v, vdom.H("button", &vdom.Data{On: map[string]vdom.Handler{
		"click": []vdom.Handler{
			func() { log = append(log, "list1") },
			func() { log = append(log, "list2") },
		},
	}}))
	btn.Dispatch("click", nil)
	if btn.ListenerCount("focus") != 0 {
		t.Errorf("focus listener should be removed")
	}

	want := []string{"first:click", "second:button", "focus", "list1", "list2"}
	if strings.Join(log, ",") != strings.Join(want, ",") {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestEventListenersBoundArguments(t *testing.T) {
	e, mount := newMount(memdom.API, EventListeners(memdom.API))
	var got []any
	record := func(args ...any) { got = args }

	v := e.Patch(mount, vdom.H("button", &vdom.Data{On: map[string]vdom.Handler{
		"click": vdom.Bind(record, "row", 3),
	}}))
	btn := elmOf(v)
	btn.Dispatch("click", nil)

	if len(got) != 4 || got[0] != "row" || got[1] != 3 {
		t.Fatalf("args = %v, want [row 3 event vnode]", got)
	}
	if ev, ok := got[2].(*dom.Event); !ok || ev.Type != "click" {
		t.Errorf("third argument = %v, want the click event", got[2])
	}
	if vn, ok := got[3].(*vdom.VNode); !ok || vn != v {
		t.Errorf("fourth argument = %v, want the current vnode", got[3])
	}

	got = nil
	e.Patch(v, vdom.H("button", &vdom.Data{On: map[string]vdom.Handler{
		"click": []vdom.Handler{vdom.Bind(record), func() {}},
	}}))
	btn.Dispatch("click", nil)
	if len(got) != 2 {
		t.Errorf("args without bound values = %v, want [event vnode]", got)
	}
}

func TestEventListenersRemovedOnDestroy(t *testing.T) {
	e, mount := newMount(memdom.API, EventListeners(memdom.API))
	calls := 0
	on := map[string]vdom.Handler{"click": func() { calls++ }}

	v := e.Patch(mount, vdom.H("div", vdom.H("a", &vdom.Data{On: on})))
	a := elmOf(v.Children[0])

	// Same map: the listener is carried over.
	v = e.Patch(v, vdom.H("div", vdom.H("a", &vdom.Data{On: on})))
	a.Dispatch("click", nil)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	e.Patch(v, vdom.H("div"))
	if a.ListenerCount("click") != 0 {
		t.Error("listener should be removed when the node is destroyed")
	}
}

func TestEventBubblesToAncestors(t *testing.T) {
	e, mount := newMount(memdom.API, EventListeners(memdom.API))
	var target dom.Node
	v := e.Patch(mount, vdom.H("form", &vdom.Data{On: map[string]vdom.Handler{
		"submit": func(ev *dom.Event) { target = ev.Target },
	}}, vdom.H("button")))

	btn := elmOf(v.Children[0])
	btn.Dispatch("submit", nil)
	if target != btn {
		t.Error("ancestor listener should see the original target")
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	e, mount := newMount(memdom.API, Metrics(WithRegistry(reg), WithNamespace("test")))

	v := e.Patch(mount, vdom.H("section", vdom.H("p")))
	e.Patch(v, vdom.H("section", vdom.H("p"), vdom.H("p")))

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, lp := range m.GetLabel() {
				name += "/" + lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				values[name] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				values[name] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}

	for name, want := range map[string]float64{
		"test_patches_total":           2,
		"test_patch_duration_seconds":  2,
		"test_hook_calls_total/pre":    2,
		"test_hook_calls_total/post":   2,
		"test_hook_calls_total/create": 3,
	} {
		if got := values[name]; got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}

func TestMetricsDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	Metrics(WithRegistry(reg))
	defer func() {
		if recover() == nil {
			t.Error("second Metrics on one registry should panic")
		}
	}()
	Metrics(WithRegistry(reg))
}

type recordedSpan struct {
	noop.Span
	name  string
	attrs []attribute.KeyValue
	ended bool
}

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) { s.attrs = append(s.attrs, kv...) }
func (s *recordedSpan) End(...trace.SpanEndOption)             { s.ended = true }

type recordingTracer struct {
	noop.Tracer
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	s := &recordedSpan{name: name}
	t.spans = append(t.spans, s)
	return ctx, s
}

type recordingProvider struct {
	noop.TracerProvider
	tracer *recordingTracer
}

func (p recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer { return p.tracer }

func TestTracing(t *testing.T) {
	tracer := &recordingTracer{}
	mod := Tracing(WithTracerProvider(recordingProvider{tracer: tracer}), WithSpanName("render"))
	e, mount := newMount(memdom.API, mod)

	e.Patch(mount, vdom.H("section", vdom.H("p"), vdom.H("p")))

	if len(tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tracer.spans))
	}
	span := tracer.spans[0]
	if span.name != "render" || !span.ended {
		t.Errorf("span %q ended=%v", span.name, span.ended)
	}
	var created int64 = -1
	for _, kv := range span.attrs {
		if kv.Key == "vtree.nodes_created" {
			created = kv.Value.AsInt64()
		}
	}
	if created != 3 {
		t.Errorf("nodes_created = %d, want 3", created)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e, mount := newMount(memdom.API, Logging(logger))

	e.Patch(mount, vdom.H("section", &vdom.Data{Key: "k"}))

	out := buf.String()
	for _, want := range []string{"point=pre", "point=create", "sel=section", "key=k", "point=post"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	quiet := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	e, mount = newMount(memdom.API, Logging(quiet))
	e.Patch(mount, vdom.H("section"))
	if buf.Len() != 0 {
		t.Errorf("debug records written at info level: %s", buf.String())
	}
}

func TestByName(t *testing.T) {
	mods, err := ByName(nil, memdom.API, Env{})
	if err != nil {
		t.Fatal(err)
	}
	if len(mods) != len(DefaultNames) {
		t.Fatalf("modules = %d, want %d", len(mods), len(DefaultNames))
	}
	for i, m := range mods {
		if m.Name != DefaultNames[i] {
			t.Errorf("module %d = %q, want %q", i, m.Name, DefaultNames[i])
		}
	}

	mods, err = ByName([]string{"metrics", "logging"}, memdom.API, Env{Registry: prometheus.NewRegistry(), MetricsNamespace: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if mods[0].Name != "metrics" || mods[1].Name != "logging" {
		t.Errorf("order not kept: %q, %q", mods[0].Name, mods[1].Name)
	}

	_, err = ByName([]string{"class", "sparkles"}, memdom.API, Env{})
	if !errors.Is(err, ErrUnknownModule) {
		t.Errorf("err = %v, want ErrUnknownModule", err)
	}
	if !strings.Contains(err.Error(), "sparkles") {
		t.Errorf("err = %v, want the name", err)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted: %v", names)
		}
	}
	for _, n := range append([]string{"metrics", "tracing", "logging"}, DefaultNames...) {
		if !Known(n) {
			t.Errorf("Known(%q) = false", n)
		}
	}
	if Known("sparkles") {
		t.Error("Known(sparkles) = true")
	}
}

func TestKebab(t *testing.T) {
	tests := map[string]string{
		"x":         "x",
		"userId":    "user-id",
		"someLongK": "some-long-k",
	}
	for in, want := range tests {
		if got := kebab(in); got != want {
			t.Errorf("kebab(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSameMap(t *testing.T) {
	a := map[string]int{"x": 1}
	b := map[string]int{"x": 1}
	if !sameMap(a, a) || sameMap(a, b) {
		t.Error("sameMap should compare identity, not contents")
	}
	if !sameMap[string, int](nil, nil) || sameMap(a, nil) {
		t.Error("sameMap nil handling")
	}
}
