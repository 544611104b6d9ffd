// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

// Callable is anything the machine can invoke.
//
// Invoke runs the callable's first step inside frame f. It reads its
// arguments from f, then either sets a result with [Frame.Return], or
// requests exactly one nested call with [Frame.Call] or [Frame.Eval] and
// registers a [Continuation] with [Frame.Then] to receive that call's
// result. Invoke must not block waiting for the nested call: it returns
// and the machine runs the call.
//
// A callable that neither returns nor calls completes with Nil.
type Callable interface {
	Name() string
	Invoke(f *Frame) error
}

// Native is a Callable backed by a Go function.
type Native struct {
	name string
	fn   func(f *Frame) error
	eta  bool
}

var _ Callable = (*Native)(nil)

// NewNative returns a callable whose arguments are evaluated before the
// call when it heads a sigma.
func NewNative(name string, fn func(f *Frame) error) *Native {
	return &Native{name: name, fn: fn}
}

// NewEta returns a special-construct callable. When it heads a sigma, its
// arguments are passed unevaluated and the callable decides what to
// evaluate, as [Iff] and [Evaluate] do.
func NewEta(name string, fn func(f *Frame) error) *Native {
	return &Native{name: name, fn: fn, eta: true}
}

func (n *Native) Name() string { return n.name }

// Eta reports whether n receives its sigma arguments unevaluated.
func (n *Native) Eta() bool { return n.eta }

func (n *Native) Invoke(f *Frame) error { return n.fn(f) }

// Item wraps n as a function item.
func (n *Native) Item() Item { return FuncOf(n) }

// Func adapts a plain Go function that needs no nested calls.
// The returned item can be placed in sequences and sigmas directly.
func Func(name string, fn func(args []Item) (Item, error)) Item {
	return FuncOf(NewNative(name, func(f *Frame) error {
		v, err := fn(f.Params())
		if err != nil {
			return err
		}
		f.Return(v)
		return nil
	}))
}

// isEta reports whether v is a special construct.
func isEta(v Item) bool {
	e, ok := v.p.(interface{ Eta() bool })
	return ok && v.kind == KindFunc && e.Eta()
}

// resolveCall unfolds a callable item into the callee and the complete
// argument list. Calling an array [g, a1, a2] with args invokes g with
// a1, a2 followed by args. A fresh slice is always returned.
func resolveCall(fn Item, args []Item) (Callable, []Item, bool) {
	if _, ok := headOf(fn); !ok {
		return nil, nil, false
	}
	var prefix [][]Item
	for fn.kind == KindArray {
		a := fn.AsArray()
		if a.Len() == 0 {
			return nil, nil, false
		}
		prefix = append(prefix, a.Items()[1:])
		fn = a.At(0)
	}
	c := fn.AsFunc()
	if fn.kind != KindFunc || c == nil {
		return nil, nil, false
	}
	n := len(args)
	for _, p := range prefix {
		n += len(p)
	}
	if n == 0 {
		return c, nil, true
	}
	out := make([]Item, 0, n)
	// The innermost array supplies the leading arguments.
	for i := len(prefix) - 1; i >= 0; i-- {
		out = append(out, prefix[i]...)
	}
	out = append(out, args...)
	return c, out, true
}
