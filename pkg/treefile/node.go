package treefile

// Node is the document form of a vdom.VNode. An empty Sel is a text node,
// "!" a comment.
type Node struct {
	Sel      string            `yaml:"sel,omitempty"`
	Key      string            `yaml:"key,omitempty"`
	NS       string            `yaml:"ns,omitempty"`
	Text     *string           `yaml:"text,omitempty"`
	Attrs    map[string]any    `yaml:"attrs,omitempty"`
	Props    map[string]any    `yaml:"props,omitempty"`
	Class    map[string]bool   `yaml:"class,omitempty"`
	Style    *Style            `yaml:"style,omitempty"`
	Dataset  map[string]string `yaml:"dataset,omitempty"`
	Children []*Node           `yaml:"children,omitempty"`
}

// Style mirrors vdom.Style.
type Style struct {
	Props   map[string]string `yaml:"props,omitempty"`
	Delayed map[string]string `yaml:"delayed,omitempty"`
	Remove  map[string]string `yaml:"remove,omitempty"`
	Destroy map[string]string `yaml:"destroy,omitempty"`
}

func (n *Node) hasData() bool {
	return n.Key != "" || n.NS != "" || len(n.Attrs) > 0 || len(n.Props) > 0 ||
		len(n.Class) > 0 || n.Style != nil || len(n.Dataset) > 0
}
