// Package reconcile renders vdom trees into a real tree and keeps the real
// tree in sync with successive trees through minimal, ordered mutations.
//
// # Usage
//
//	patch := reconcile.Init([]reconcile.Module{
//	    modules.Class(api),
//	    modules.Attributes(api),
//	    modules.EventListeners(api),
//	}, api)
//
//	vnode := patch(mountPoint, render(state))
//	// later
//	vnode = patch(vnode, render(newState))
//
// # Reuse
//
// Two nodes are the same logical node when their keys and selectors are
// equal. Same nodes are patched in place and keep their real node; anything
// else is created fresh. Child lists are reconciled with a four-pointer
// scan that handles appends, prepends, removals and end swaps without a
// lookup, and only builds a key map for genuine reorders. When sibling keys
// collide, the first occurrence in the unscanned old range wins.
//
// # Hooks
//
// Modules plug into six points (pre, create, update, destroy, remove,
// post) and fire in registration order. Nodes carry their own hooks in
// Data.Hook (init, create, insert, prepatch, update, postpatch, destroy,
// remove). Insert hooks fire only after the whole new subtree is attached.
// Destroy hooks fire depth-first before anything is detached, and a node
// is detached only after every remove hook has called its completion
// callback, which is how exit transitions delay removal.
//
// # Validation
//
// None. Malformed trees (text and children both set, duplicate keys, a
// thunk rendering a different selector) give undefined results instead of
// errors; the engine runs on every update. Panics from hooks or adapters
// reach the caller of Patch unchanged.
package reconcile
