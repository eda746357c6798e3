package dom

import (
	"fmt"
	"strconv"
)

// OpKind is the type of a recorded real-tree operation.
type OpKind uint8

const (
	OpCreateElement OpKind = 0x01 // New element
	OpCreateText    OpKind = 0x02 // New text node
	OpCreateComment OpKind = 0x03 // New comment node
	OpInsertBefore  OpKind = 0x04 // Insert or move before a reference node
	OpAppendChild   OpKind = 0x05 // Append to the end of a parent
	OpRemoveChild   OpKind = 0x06 // Detach from parent
	OpSetText       OpKind = 0x07 // Replace text content
	OpSetAttr       OpKind = 0x08 // Set attribute
	OpRemoveAttr    OpKind = 0x09 // Remove attribute
	OpSetStyle      OpKind = 0x0A // Set inline style property
	OpRemoveStyle   OpKind = 0x0B // Remove inline style property
	OpSetProp       OpKind = 0x0C // Set free-form property
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpCreateComment:
		return "CreateComment"
	case OpInsertBefore:
		return "InsertBefore"
	case OpAppendChild:
		return "AppendChild"
	case OpRemoveChild:
		return "RemoveChild"
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetStyle:
		return "SetStyle"
	case OpRemoveStyle:
		return "RemoveStyle"
	case OpSetProp:
		return "SetProp"
	default:
		return "Unknown"
	}
}

// Op is a single recorded mutation. Node IDs are assigned by the Recorder in
// the order nodes are first seen, starting at 1. Zero means "none".
type Op struct {
	Kind   OpKind
	Node   uint32 // Target or created node
	Parent uint32 // For InsertBefore, AppendChild, RemoveChild
	Ref    uint32 // For InsertBefore; 0 appends
	NS     string // For namespaced CreateElement
	Name   string // Tag, attribute, style or property name
	Value  string // Text, attribute, style or property value
}

// String renders the op in a compact, stable form used by golden tests and
// the CLI.
func (o Op) String() string {
	id := func(v uint32) string {
		if v == 0 {
			return "nil"
		}
		return "#" + strconv.FormatUint(uint64(v), 10)
	}
	switch o.Kind {
	case OpCreateElement:
		if o.NS != "" {
			return fmt.Sprintf("create %s %s ns=%s", id(o.Node), o.Name, o.NS)
		}
		return fmt.Sprintf("create %s %s", id(o.Node), o.Name)
	case OpCreateText:
		return fmt.Sprintf("create %s text %q", id(o.Node), o.Value)
	case OpCreateComment:
		return fmt.Sprintf("create %s comment %q", id(o.Node), o.Value)
	case OpInsertBefore:
		return fmt.Sprintf("insert %s into %s before %s", id(o.Node), id(o.Parent), id(o.Ref))
	case OpAppendChild:
		return fmt.Sprintf("append %s to %s", id(o.Node), id(o.Parent))
	case OpRemoveChild:
		return fmt.Sprintf("remove %s from %s", id(o.Node), id(o.Parent))
	case OpSetText:
		return fmt.Sprintf("text %s %q", id(o.Node), o.Value)
	case OpSetAttr:
		return fmt.Sprintf("attr %s %s=%q", id(o.Node), o.Name, o.Value)
	case OpRemoveAttr:
		return fmt.Sprintf("unattr %s %s", id(o.Node), o.Name)
	case OpSetStyle:
		return fmt.Sprintf("style %s %s=%q", id(o.Node), o.Name, o.Value)
	case OpRemoveStyle:
		return fmt.Sprintf("unstyle %s %s", id(o.Node), o.Name)
	case OpSetProp:
		return fmt.Sprintf("prop %s %s=%q", id(o.Node), o.Name, o.Value)
	default:
		return "unknown"
	}
}

// IsStructural reports whether the op changes the shape of the tree or its
// text, as opposed to decorating an element.
func (o Op) IsStructural() bool {
	switch o.Kind {
	case OpInsertBefore, OpAppendChild, OpRemoveChild, OpSetText:
		return true
	}
	return false
}

// Recorder wraps an Adapter and records every mutation it forwards.
// Optional capabilities are forwarded when the wrapped adapter has them and
// ignored otherwise. Recorder is not safe for concurrent use; the reconciler
// never calls an adapter from more than one goroutine at a time.
//
// A node detached by RemoveChild, or dropped by SetTextContent replacing an
// element's children, loses its ID together with its subtree. IDs are never
// handed out twice.
type Recorder struct {
	inner Adapter
	ids   map[Node]uint32
	nodes map[uint32]Node
	next  uint32
	ops   []Op
}

// NewRecorder creates a Recorder forwarding to inner.
func NewRecorder(inner Adapter) *Recorder {
	return &Recorder{
		inner: inner,
		ids:   make(map[Node]uint32),
		nodes: make(map[uint32]Node),
	}
}

// Unwrap returns the wrapped adapter.
func (r *Recorder) Unwrap() Adapter {
	return r.inner
}

// ID returns the recorder's identifier for n, assigning one on first sight.
func (r *Recorder) ID(n Node) uint32 {
	if n == nil {
		return 0
	}
	if id, ok := r.ids[n]; ok {
		return id
	}
	r.next++
	r.ids[n] = r.next
	r.nodes[r.next] = n
	return r.next
}

// Lookup returns the node with the given recorder ID, or nil once the node
// has been released.
func (r *Recorder) Lookup(id uint32) Node {
	return r.nodes[id]
}

// Len returns the number of nodes currently holding an ID.
func (r *Recorder) Len() int {
	return len(r.ids)
}

// release drops the IDs of n and its descendants. Descendants are only
// reachable when the wrapped adapter implements ChildLister.
func (r *Recorder) release(n Node) {
	if id, ok := r.ids[n]; ok {
		delete(r.ids, n)
		delete(r.nodes, id)
	}
	if c, ok := r.inner.(ChildLister); ok {
		for _, child := range c.ChildNodes(n) {
			r.release(child)
		}
	}
}

// releaseDetached releases every node in ns that no longer has a parent.
func (r *Recorder) releaseDetached(ns []Node) {
	for _, n := range ns {
		if r.inner.ParentNode(n) == nil {
			r.release(n)
		}
	}
}

// Ops returns the ops recorded since the last Take or Reset.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Take returns the recorded ops and starts a new log.
func (r *Recorder) Take() []Op {
	ops := r.ops
	r.ops = nil
	return ops
}

// Reset drops the recorded ops. Node IDs are kept.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

// Count returns how many recorded ops have the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) record(op Op) {
	r.ops = append(r.ops, op)
}

func (r *Recorder) CreateElement(tag string) Node {
	n := r.inner.CreateElement(tag)
	r.record(Op{Kind: OpCreateElement, Node: r.ID(n), Name: tag})
	return n
}

func (r *Recorder) CreateElementNS(ns, tag string) Node {
	n := r.inner.CreateElementNS(ns, tag)
	r.record(Op{Kind: OpCreateElement, Node: r.ID(n), Name: tag, NS: ns})
	return n
}

func (r *Recorder) CreateTextNode(text string) Node {
	n := r.inner.CreateTextNode(text)
	r.record(Op{Kind: OpCreateText, Node: r.ID(n), Value: text})
	return n
}

func (r *Recorder) CreateComment(text string) Node {
	n := r.inner.CreateComment(text)
	r.record(Op{Kind: OpCreateComment, Node: r.ID(n), Value: text})
	return n
}

func (r *Recorder) InsertBefore(parent, node, ref Node) {
	r.inner.InsertBefore(parent, node, ref)
	r.record(Op{Kind: OpInsertBefore, Node: r.ID(node), Parent: r.ID(parent), Ref: r.ID(ref)})
}

func (r *Recorder) RemoveChild(parent, child Node) {
	r.inner.RemoveChild(parent, child)
	r.record(Op{Kind: OpRemoveChild, Node: r.ID(child), Parent: r.ID(parent)})
	r.releaseDetached([]Node{child})
}

func (r *Recorder) AppendChild(parent, child Node) {
	r.inner.AppendChild(parent, child)
	r.record(Op{Kind: OpAppendChild, Node: r.ID(child), Parent: r.ID(parent)})
}

func (r *Recorder) ParentNode(n Node) Node  { return r.inner.ParentNode(n) }
func (r *Recorder) NextSibling(n Node) Node { return r.inner.NextSibling(n) }
func (r *Recorder) TagName(n Node) string   { return r.inner.TagName(n) }

func (r *Recorder) SetTextContent(n Node, text string) {
	var replaced []Node
	if r.inner.IsElement(n) {
		replaced = r.ChildNodes(n)
	}
	r.inner.SetTextContent(n, text)
	r.record(Op{Kind: OpSetText, Node: r.ID(n), Value: text})
	r.releaseDetached(replaced)
}

func (r *Recorder) GetTextContent(n Node) string { return r.inner.GetTextContent(n) }

func (r *Recorder) SetAttribute(n Node, name, value string) {
	r.inner.SetAttribute(n, name, value)
	r.record(Op{Kind: OpSetAttr, Node: r.ID(n), Name: name, Value: value})
}

func (r *Recorder) GetAttribute(n Node, name string) string {
	return r.inner.GetAttribute(n, name)
}

func (r *Recorder) IsElement(n Node) bool { return r.inner.IsElement(n) }
func (r *Recorder) IsText(n Node) bool    { return r.inner.IsText(n) }
func (r *Recorder) IsComment(n Node) bool { return r.inner.IsComment(n) }

func (r *Recorder) RemoveAttribute(n Node, name string) {
	if a, ok := r.inner.(AttrAdapter); ok {
		a.RemoveAttribute(n, name)
		r.record(Op{Kind: OpRemoveAttr, Node: r.ID(n), Name: name})
	}
}

func (r *Recorder) Attributes(n Node) []Attr {
	if a, ok := r.inner.(AttrAdapter); ok {
		return a.Attributes(n)
	}
	return nil
}

func (r *Recorder) ChildNodes(n Node) []Node {
	if c, ok := r.inner.(ChildLister); ok {
		return c.ChildNodes(n)
	}
	return nil
}

func (r *Recorder) AddEventListener(n Node, name string, l EventListener) {
	if t, ok := r.inner.(EventTarget); ok {
		t.AddEventListener(n, name, l)
	}
}

func (r *Recorder) RemoveEventListener(n Node, name string, l EventListener) {
	if t, ok := r.inner.(EventTarget); ok {
		t.RemoveEventListener(n, name, l)
	}
}

func (r *Recorder) SetStyle(n Node, name, value string) {
	if s, ok := r.inner.(StyleAdapter); ok {
		s.SetStyle(n, name, value)
		r.record(Op{Kind: OpSetStyle, Node: r.ID(n), Name: name, Value: value})
	}
}

func (r *Recorder) RemoveStyle(n Node, name string) {
	if s, ok := r.inner.(StyleAdapter); ok {
		s.RemoveStyle(n, name)
		r.record(Op{Kind: OpRemoveStyle, Node: r.ID(n), Name: name})
	}
}

func (r *Recorder) GetStyle(n Node, name string) string {
	if s, ok := r.inner.(StyleAdapter); ok {
		return s.GetStyle(n, name)
	}
	return ""
}

func (r *Recorder) SetProperty(n Node, name string, value any) {
	if p, ok := r.inner.(PropAdapter); ok {
		p.SetProperty(n, name, value)
		r.record(Op{Kind: OpSetProp, Node: r.ID(n), Name: name, Value: fmt.Sprint(value)})
	}
}

func (r *Recorder) GetProperty(n Node, name string) any {
	if p, ok := r.inner.(PropAdapter); ok {
		return p.GetProperty(n, name)
	}
	return nil
}
