// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import (
	"math"
	"slices"
	"sync"
)

// Library maps names to function items. Program loaders resolve symbolic
// references through it.
type Library map[string]Item

// Lookup returns the function registered under name.
func (l Library) Lookup(name string) (Item, bool) {
	v, ok := l[name]
	return v, ok
}

// Register adds c under its own name, replacing any previous entry.
func (l Library) Register(c Callable) {
	l[c.Name()] = FuncOf(c)
}

// Names returns the registered names in sorted order.
func (l Library) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Core returns a fresh library holding the combinators and the helper
// functions, and initializes the process-wide tables they use.
func Core() Library {
	InitTables()
	l := make(Library, 40)
	for _, c := range []Callable{
		Any, All, AnyP, AllP, Evaluate, Lit, Eq, FirstOf, Choice, Iff, Min, Max,
		Map, XMap, Filter, Reduce, Dolist, Cascade, Floop, Times,
		oobFn, deoobFn, isoobFn,
		addFn, subFn, mulFn, divFn, negFn, sqrtFn, squareFn, crc32Fn,
	} {
		l.Register(c)
	}
	return l
}

var core = sync.OnceValue(Core)

// Builtin returns the core function registered under name.
// It panics if there is none.
func Builtin(name string) Item {
	v, ok := core()[name]
	if !ok {
		panic("sigma: no builtin named " + name)
	}
	return v
}

// simple adapts a fixed-arity function of its arguments.
func simple(name, signature string, arity int, fn func(args []Item) (Item, error)) *Native {
	return NewNative(name, func(f *Frame) error {
		if f.ParamCount() < arity {
			return ParamError(name, signature)
		}
		v, err := fn(f.Params())
		if err != nil {
			return err
		}
		f.Return(v)
		return nil
	})
}

var (
	oobFn = simple("oob", "X", 1, func(a []Item) (Item, error) {
		return a[0].SetOob(), nil
	})
	deoobFn = simple("deoob", "X", 1, func(a []Item) (Item, error) {
		return a[0].ResetOob(), nil
	})
	isoobFn = simple("isoob", "X", 1, func(a []Item) (Item, error) {
		return Bool(a[0].IsOob()), nil
	})

	addFn = simple("add", "N,N", 2, func(a []Item) (Item, error) {
		if a[0].IsString() && a[1].IsString() {
			return Str(a[0].AsString() + a[1].AsString()), nil
		}
		return arith("add", a[0], a[1],
			func(x, y int64) int64 { return x + y },
			func(x, y float64) float64 { return x + y })
	})
	subFn = simple("sub", "N,N", 2, func(a []Item) (Item, error) {
		return arith("sub", a[0], a[1],
			func(x, y int64) int64 { return x - y },
			func(x, y float64) float64 { return x - y })
	})
	mulFn = simple("mul", "N,N", 2, func(a []Item) (Item, error) {
		return arith("mul", a[0], a[1],
			func(x, y int64) int64 { return x * y },
			func(x, y float64) float64 { return x * y })
	})
	divFn = simple("div", "N,N", 2, func(a []Item) (Item, error) {
		x, y := a[0], a[1]
		if !x.IsNumeric() || !y.IsNumeric() {
			return Nil, ParamError("div", "N,N")
		}
		if y.ForceFloat() == 0 {
			return Nil, &Error{Kind: InvalidArgument, Op: "div", Detail: "division by zero"}
		}
		if x.IsInt() && y.IsInt() && x.AsInt()%y.AsInt() == 0 {
			return Int(x.AsInt() / y.AsInt()), nil
		}
		return Float(x.ForceFloat() / y.ForceFloat()), nil
	})
	negFn = simple("neg", "N", 1, func(a []Item) (Item, error) {
		switch {
		case a[0].IsInt():
			return Int(-a[0].AsInt()), nil
		case a[0].IsFloat():
			return Float(-a[0].AsFloat()), nil
		}
		return Nil, ParamError("neg", "N")
	})
	sqrtFn = simple("sqrt", "N", 1, func(a []Item) (Item, error) {
		if !a[0].IsNumeric() || a[0].ForceFloat() < 0 {
			return Nil, ParamError("sqrt", "N >= 0")
		}
		return Float(math.Sqrt(a[0].ForceFloat())), nil
	})
	squareFn = simple("square", "N", 1, func(a []Item) (Item, error) {
		return arith("square", a[0], a[0],
			func(x, y int64) int64 { return x * y },
			func(x, y float64) float64 { return x * y })
	})
	crc32Fn = simple("crc32", "S", 1, func(a []Item) (Item, error) {
		if !a[0].IsString() {
			return Nil, ParamError("crc32", "S")
		}
		return Int(int64(CRC32([]byte(a[0].AsString())))), nil
	})
)

// arith applies an integer operation when both operands are integers and
// a float operation otherwise.
func arith(op string, x, y Item, ints func(int64, int64) int64, floats func(float64, float64) float64) (Item, error) {
	if !x.IsNumeric() || !y.IsNumeric() {
		return Nil, ParamError(op, "N,N")
	}
	if x.IsInt() && y.IsInt() {
		return Int(ints(x.AsInt(), y.AsInt())), nil
	}
	return Float(floats(x.ForceFloat(), y.ForceFloat())), nil
}
