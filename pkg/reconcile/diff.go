package reconcile

import (
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// patchVnode updates old's real node in place so that it represents v.
// SameVNode(old, v) must hold.
func (e *Engine) patchVnode(old, v *vdom.VNode, queue *[]*vdom.VNode) {
	hook := v.Hook()
	if hook != nil && hook.Prepatch != nil {
		hook.Prepatch(old, v)
	}
	if old == v {
		return
	}
	elm := old.Elm
	v.Elm = elm
	if v.Data != nil {
		e.hooks.fireUpdate(old, v)
		if h := v.Data.Hook; h != nil && h.Update != nil {
			h.Update(old, v)
		}
	}

	oldCh, ch := old.Children, v.Children
	switch {
	case !v.HasText:
		switch {
		case oldCh != nil && ch != nil:
			if !sameSlice(oldCh, ch) {
				e.updateChildren(elm, oldCh, ch, queue)
			}
		case ch != nil:
			if old.HasText {
				e.api.SetTextContent(elm, "")
			}
			e.addVnodes(elm, nil, ch, 0, len(ch)-1, queue)
		case oldCh != nil:
			e.removeVnodes(elm, oldCh, 0, len(oldCh)-1)
		case old.HasText:
			e.api.SetTextContent(elm, "")
		}
	case !old.HasText || old.Text != v.Text:
		if oldCh != nil {
			e.removeVnodes(elm, oldCh, 0, len(oldCh)-1)
		}
		e.api.SetTextContent(elm, v.Text)
	}

	if hook != nil && hook.Postpatch != nil {
		hook.Postpatch(old, v)
	}
}

// updateChildren reconciles two child lists under parent with four
// pointers, checking start/start, end/end, start/end and end/start before
// falling back to a key lookup over the unscanned old range.
func (e *Engine) updateChildren(parent dom.Node, oldCh, newCh []*vdom.VNode, queue *[]*vdom.VNode) {
	oldStart, newStart := 0, 0
	oldEnd, newEnd := len(oldCh)-1, len(newCh)-1
	var keyToOld map[string]int

	for oldStart <= oldEnd && newStart <= newEnd {
		oldStartV, oldEndV := oldCh[oldStart], oldCh[oldEnd]
		newStartV, newEndV := newCh[newStart], newCh[newEnd]

		switch {
		case oldStartV == nil:
			// Moved by an earlier key match.
			oldStart++
		case oldEndV == nil:
			oldEnd--
		case newStartV == nil:
			newStart++
		case newEndV == nil:
			newEnd--

		case vdom.SameVNode(oldStartV, newStartV):
			e.patchVnode(oldStartV, newStartV, queue)
			oldStart++
			newStart++

		case vdom.SameVNode(oldEndV, newEndV):
			e.patchVnode(oldEndV, newEndV, queue)
			oldEnd--
			newEnd--

		case vdom.SameVNode(oldStartV, newEndV):
			// Moved right.
			e.patchVnode(oldStartV, newEndV, queue)
			e.api.InsertBefore(parent, oldStartV.Elm, e.api.NextSibling(oldEndV.Elm))
			oldStart++
			newEnd--

		case vdom.SameVNode(oldEndV, newStartV):
			// Moved left.
			e.patchVnode(oldEndV, newStartV, queue)
			e.api.InsertBefore(parent, oldEndV.Elm, oldStartV.Elm)
			oldEnd--
			newStart++

		default:
			if keyToOld == nil {
				keyToOld = keyIndex(oldCh, oldStart, oldEnd)
			}
			idx, ok := keyToOld[newStartV.Key]
			if !ok {
				e.api.InsertBefore(parent, e.createElm(newStartV, queue), oldStartV.Elm)
			} else if move := oldCh[idx]; move == nil || move.Sel != newStartV.Sel {
				e.api.InsertBefore(parent, e.createElm(newStartV, queue), oldStartV.Elm)
			} else {
				e.patchVnode(move, newStartV, queue)
				oldCh[idx] = nil
				e.api.InsertBefore(parent, move.Elm, oldStartV.Elm)
			}
			newStart++
		}
	}

	if oldStart > oldEnd {
		var ref dom.Node
		if newEnd+1 < len(newCh) && newCh[newEnd+1] != nil {
			ref = newCh[newEnd+1].Elm
		}
		e.addVnodes(parent, ref, newCh, newStart, newEnd, queue)
	} else if newStart > newEnd {
		e.removeVnodes(parent, oldCh, oldStart, oldEnd)
	}
}

// keyIndex maps each key in children[start..end] to its index. Duplicate
// keys resolve to the first occurrence.
func keyIndex(children []*vdom.VNode, start, end int) map[string]int {
	m := make(map[string]int, end-start+1)
	for i := start; i <= end; i++ {
		ch := children[i]
		if ch == nil || ch.Key == "" {
			continue
		}
		if _, dup := m[ch.Key]; !dup {
			m[ch.Key] = i
		}
	}
	return m
}

// sameSlice reports whether a and b share the same backing array window.
func sameSlice(a, b []*vdom.VNode) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
