package dom

// Node is an opaque handle to a node of the real tree. Adapters decide what
// the handle actually is (a *memdom.Node, an *html.Node, a client-side ID).
// A nil Node means "no node".
type Node = any

// Adapter is the set of primitive operations the reconciler needs over the
// real tree. Implementations must return an untyped nil for "no node", never
// a typed nil pointer wrapped in the interface.
type Adapter interface {
	CreateElement(tag string) Node
	CreateElementNS(ns, tag string) Node
	CreateTextNode(text string) Node
	CreateComment(text string) Node

	// InsertBefore inserts node into parent before ref. A nil ref appends.
	// If node is already attached somewhere it is moved.
	InsertBefore(parent, node, ref Node)
	RemoveChild(parent, child Node)
	AppendChild(parent, child Node)

	ParentNode(n Node) Node
	NextSibling(n Node) Node
	TagName(n Node) string

	SetTextContent(n Node, text string)
	GetTextContent(n Node) string

	// SetAttribute and GetAttribute only apply to elements.
	SetAttribute(n Node, name, value string)
	GetAttribute(n Node, name string) string

	IsElement(n Node) bool
	IsText(n Node) bool
	IsComment(n Node) bool
}

// Attr is a single element attribute as reported by AttrAdapter.Attributes.
type Attr struct {
	Name  string
	Value string
}

// AttrAdapter is implemented by adapters that can remove and enumerate
// attributes.
type AttrAdapter interface {
	RemoveAttribute(n Node, name string)
	Attributes(n Node) []Attr
}

// ChildLister is implemented by adapters that can enumerate a node's children.
type ChildLister interface {
	ChildNodes(n Node) []Node
}

// EventListener receives dispatched events.
type EventListener interface {
	HandleEvent(ev *Event)
}

// EventTarget is implemented by adapters whose nodes accept listeners.
type EventTarget interface {
	AddEventListener(n Node, name string, l EventListener)
	RemoveEventListener(n Node, name string, l EventListener)
}

// StyleAdapter is implemented by adapters that hold inline styles.
type StyleAdapter interface {
	SetStyle(n Node, name, value string)
	RemoveStyle(n Node, name string)
	GetStyle(n Node, name string) string
}

// PropAdapter is implemented by adapters whose nodes carry free-form
// properties in addition to attributes.
type PropAdapter interface {
	SetProperty(n Node, name string, value any)
	GetProperty(n Node, name string) any
}

// Event is an event delivered to listeners.
type Event struct {
	Type   string
	Target Node
	Detail any
}
