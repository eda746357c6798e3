package vdom

import "reflect"

// Thunk returns a node whose subtree is produced by fn(args...) and only
// re-rendered when fn or any argument changes. fn is compared by code
// pointer, so two closures from the same literal count as the same function.
// Arguments are compared by identity: == for comparable values, pointer
// identity for slices, maps and funcs. The rendered node must have the same
// selector as the thunk.
//
// Thunks are an ordinary init/prepatch hook pair; the reconciler has no
// special knowledge of them.
func Thunk(sel, key string, fn ThunkFn, args ...any) *VNode {
	return H(sel, &Data{
		Key:  key,
		Hook: &Hook{Init: thunkInit, Prepatch: thunkPrepatch},
		Fn:   fn,
		Args: args,
	})
}

func copyToThunk(v, thunk *VNode) {
	if v.Data == nil {
		v.Data = &Data{}
	}
	v.Data.Fn = thunk.Data.Fn
	v.Data.Args = thunk.Data.Args
	thunk.Data = v.Data
	thunk.Children = v.Children
	thunk.Text = v.Text
	thunk.HasText = v.HasText
	thunk.Elm = v.Elm
}

func thunkInit(thunk *VNode) {
	cur := thunk.Data
	copyToThunk(cur.Fn(cur.Args...), thunk)
}

func thunkPrepatch(old, thunk *VNode) {
	prev, cur := old.Data, thunk.Data
	if prev == nil || !sameFunc(prev.Fn, cur.Fn) || len(prev.Args) != len(cur.Args) {
		copyToThunk(cur.Fn(cur.Args...), thunk)
		return
	}
	for i := range cur.Args {
		if !sameArg(prev.Args[i], cur.Args[i]) {
			copyToThunk(cur.Fn(cur.Args...), thunk)
			return
		}
	}
	copyToThunk(old, thunk)
}

func sameFunc(a, b ThunkFn) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func sameArg(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	// Value.Comparable checks dynamic values, including interface fields.
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Len() == vb.Len() && va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	}
	return false
}
