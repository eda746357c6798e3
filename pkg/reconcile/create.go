package reconcile

import (
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// emptyNode is the "old" side handed to create hooks.
var emptyNode = vdom.New("", &vdom.Data{}, []*vdom.VNode{}, "", false, nil)

// createElm materializes v and its subtree, fires creation hooks and queues
// nodes whose insert hook must wait for attachment.
func (e *Engine) createElm(v *vdom.VNode, queue *[]*vdom.VNode) dom.Node {
	if h := v.Hook(); h != nil && h.Init != nil {
		h.Init(v)
	}

	switch {
	case v.Sel == vdom.CommentSel:
		if !v.HasText {
			v.Text = ""
			v.HasText = true
		}
		v.Elm = e.api.CreateComment(v.Text)

	case v.Sel != "":
		s := vdom.ParseSelector(v.Sel)
		var elm dom.Node
		if v.Data != nil && v.Data.NS != "" {
			elm = e.api.CreateElementNS(v.Data.NS, s.Tag)
		} else {
			elm = e.api.CreateElement(s.Tag)
		}
		v.Elm = elm
		if s.HasID {
			e.api.SetAttribute(elm, "id", s.ID)
		}
		if s.Classes != "" {
			e.api.SetAttribute(elm, "class", s.Classes)
		}
		e.hooks.fireCreate(emptyNode, v)
		if v.Children != nil {
			for _, ch := range v.Children {
				if ch != nil {
					e.api.AppendChild(elm, e.createElm(ch, queue))
				}
			}
		} else if v.HasText {
			e.api.AppendChild(elm, e.api.CreateTextNode(v.Text))
		}
		if h := v.Hook(); h != nil {
			if h.Create != nil {
				h.Create(emptyNode, v)
			}
			if h.Insert != nil {
				*queue = append(*queue, v)
			}
		}

	default:
		v.Elm = e.api.CreateTextNode(v.Text)
	}
	return v.Elm
}

// addVnodes materializes vnodes[start..end] and inserts each before ref,
// or at the end of parent when ref is nil.
func (e *Engine) addVnodes(parent, ref dom.Node, vnodes []*vdom.VNode, start, end int, queue *[]*vdom.VNode) {
	for ; start <= end; start++ {
		if ch := vnodes[start]; ch != nil {
			e.api.InsertBefore(parent, e.createElm(ch, queue), ref)
		}
	}
}
