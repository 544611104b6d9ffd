// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

// isSigma reports whether v is a non-empty array whose head is callable.
func isSigma(v Item) bool {
	return v.kind == KindArray && v.IsCallable()
}

// Eval performs sigma reduction on v in functional context.
//
// Atoms, including arrays that are not sigmas, are returned as (v, true)
// without suspending. A sigma [g, a1, ..., an] is reduced innermost
// first: every ai is itself reduced, then g is called with the results.
// Eval then returns (Nil, false) and the reduced value arrives at the
// registered continuation; with none registered it becomes the frame's
// result.
//
// When g is a special construct its arguments are passed unevaluated.
func (f *Frame) Eval(v Item) (Item, bool) {
	if !isSigma(v) {
		return v, true
	}
	f.CallFunc(reducer, v)
	return Nil, false
}

// sigmaReducer is the internal callable that reduces one sigma.
type sigmaReducer struct{}

func (sigmaReducer) Name() string          { return "sigma" }
func (sigmaReducer) Invoke(f *Frame) error { return reduceInit(f) }

var (
	reducer     Callable = sigmaReducer{}
	reducerItem          = FuncOf(reducer)
)

// Locals of the reducer frame.
const (
	reduceNextArg = iota
	reduceArgs
)

func reduceInit(f *Frame) error {
	sigma := f.Param(0).AsArray()
	head := sigma.At(0)
	if isEta(head) {
		return f.Call(ArrayOf(sigma))
	}
	loc := f.Locals(2)
	loc[reduceArgs] = ArrayOf(NewArray(sigma.Len() - 1))
	f.Then(reduceNext)
	return reduceFrom(f, sigma, 1)
}

func reduceNext(f *Frame, r Item) error {
	f.Local(reduceArgs).AsArray().Append(r)
	return reduceFrom(f, f.Param(0).AsArray(), int(f.Local(reduceNextArg).AsInt()))
}

// reduceFrom evaluates the arguments of sigma from position i, suspending
// on the first one that needs a nested call, then calls the head.
func reduceFrom(f *Frame, sigma *Array, i int) error {
	args := f.Local(reduceArgs).AsArray()
	for ; i < sigma.Len(); i++ {
		v, ok := f.Eval(sigma.At(i))
		if !ok {
			*f.Local(reduceNextArg) = Int(int64(i + 1))
			return nil
		}
		args.Append(v)
	}
	f.Then(nil)
	return f.Call(sigma.At(0), args.Items()...)
}
