// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

// cursor reads a sequence argument one element at a time: an Array by
// index, a List through a registered iterator, so callables may erase
// list nodes while the walk is in progress.
type cursor struct {
	arr  *Array
	list *List
	it   *ListIterator
	pos  int
}

// openCursor opens a cursor over an array or list item. List iterators
// are closed when f leaves the stack.
func openCursor(f *Frame, v Item) (*cursor, bool) {
	switch v.kind {
	case KindArray:
		return &cursor{arr: v.AsArray()}, true
	case KindList:
		l := v.AsList()
		c := &cursor{list: l, it: l.Iterator(false)}
		f.Defer(c.it.Close)
		return c, true
	}
	return nil, false
}

// paramCursor walks the frame's own parameters.
func paramCursor(f *Frame) *cursor {
	return &cursor{arr: NewArrayFrom(f.Params()...)}
}

func cursorAt(f *Frame, i int) *cursor {
	return f.Local(i).AsObject().(*cursor)
}

func (c *cursor) len() int {
	if c.arr != nil {
		return c.arr.Len()
	}
	return c.list.Len()
}

// next returns the next element. Array length is re-read on every call.
func (c *cursor) next() (Item, bool) {
	if c.arr != nil {
		if c.pos >= c.arr.Len() {
			return Nil, false
		}
		v := c.arr.At(c.pos)
		c.pos++
		return v, true
	}
	if !c.it.Valid() {
		return Nil, false
	}
	v := c.it.Value()
	c.it.Next()
	c.pos++
	return v, true
}

var (
	// Map calls fn on every element of a sequence and returns the array of
	// results. Out-of-band results are dropped.
	Map = NewNative("map", func(f *Frame) error {
		fn, c, err := callableAndSequence(f, "map")
		if err != nil {
			return err
		}
		out := NewArray(c.len())
		v, ok := c.next()
		if !ok {
			f.Return(ArrayOf(out))
			return nil
		}
		loc := f.Locals(2)
		loc[mapCursor] = ObjectOf(c)
		loc[mapOut] = ArrayOf(out)
		f.Then(mapNext)
		return f.Call(fn, v)
	})

	// XMap is [Map] where every element is sigma-reduced before being
	// passed to fn.
	XMap = NewEta("xmap", func(f *Frame) error {
		_, c, err := callableAndSequence(f, "xmap")
		if err != nil {
			return err
		}
		loc := f.Locals(3)
		loc[mapCursor] = ObjectOf(c)
		loc[mapOut] = ArrayOf(NewArray(c.len()))
		f.Then(xmapNext)
		return xmapFrom(f)
	})

	// Filter returns the elements of a sequence for which fn returns a
	// truthy value.
	Filter = NewNative("filter", func(f *Frame) error {
		fn, c, err := callableAndSequence(f, "filter")
		if err != nil {
			return err
		}
		out := NewArray(0)
		v, ok := c.next()
		if !ok {
			f.Return(ArrayOf(out))
			return nil
		}
		loc := f.Locals(3)
		loc[mapCursor] = ObjectOf(c)
		loc[mapOut] = ArrayOf(out)
		loc[filterCurrent] = v
		f.Then(filterNext)
		return f.Call(fn, v)
	})

	// Reduce folds a sequence with fn(acc, elem). With an initial value
	// the fold starts from it; without, from the first element. An empty
	// sequence yields the initial value or nil; a single element without
	// initial value is returned without calling fn.
	Reduce = NewNative("reduce", func(f *Frame) error {
		fn, c, err := callableAndSequence(f, "reduce")
		if err != nil {
			return err
		}
		acc, ok := f.Param(2), f.HasParam(2)
		if !ok {
			if acc, ok = c.next(); !ok {
				f.Return(Nil)
				return nil
			}
		}
		v, ok := c.next()
		if !ok {
			f.Return(acc)
			return nil
		}
		f.Locals(1)[mapCursor] = ObjectOf(c)
		f.Then(reduceStep)
		return f.Call(fn, acc, v)
	})

	// Dolist sigma-reduces every element of a sequence and calls fn with
	// it, followed by any extra arguments. It returns the last result.
	Dolist = NewEta("dolist", func(f *Frame) error {
		_, c, err := callableAndSequence(f, "dolist")
		if err != nil {
			return err
		}
		loc := f.Locals(2)
		loc[mapCursor] = ObjectOf(c)
		loc[dolistCalled] = Nil
		f.Then(dolistNext)
		return dolistFrom(f)
	})

	// Cascade calls a sequence of callables in order, feeding each result
	// to the next one. The first callable receives the extra arguments.
	// A callable that returns an out-of-band value declines: the next one
	// receives the last accepted value instead, or the original arguments
	// when nothing has been accepted yet. The result is the last accepted
	// value.
	Cascade = NewEta("cascade", func(f *Frame) error {
		c, ok := openCursor(f, f.Param(0))
		if !ok {
			return ParamError("cascade", "A|L,...")
		}
		first, ok := c.next()
		if !ok {
			f.Return(Nil)
			return nil
		}
		loc := f.Locals(2)
		loc[cascadeCursor] = ObjectOf(c)
		loc[cascadeAccepted] = Oob(Nil)
		f.Then(cascadeNext)
		return f.Call(first, f.Params()[1:]...)
	})
)

// Locals of the mapping combinators.
const (
	mapCursor = iota
	mapOut
	filterCurrent
)

// xmap reuses filterCurrent as its phase slot.
const xmapPhase = filterCurrent

const dolistCalled = mapOut

const (
	cascadeCursor = iota
	cascadeAccepted
)

func callableAndSequence(f *Frame, op string) (Item, *cursor, error) {
	fn := f.Param(0)
	if !fn.IsCallable() {
		return Nil, nil, ParamError(op, "C,A|L")
	}
	c, ok := openCursor(f, f.Param(1))
	if !ok {
		return Nil, nil, ParamError(op, "C,A|L")
	}
	return fn, c, nil
}

func mapNext(f *Frame, r Item) error {
	if !r.IsOob() {
		f.Local(mapOut).AsArray().Append(r)
	}
	if v, ok := cursorAt(f, mapCursor).next(); ok {
		return f.Call(f.Param(0), v)
	}
	f.Return(*f.Local(mapOut))
	return nil
}

// xmapFrom reduces the next element and calls fn with it. Phase true
// means the pending result comes from fn, false from the reduction.
func xmapFrom(f *Frame) error {
	v, ok := cursorAt(f, mapCursor).next()
	if !ok {
		f.Return(*f.Local(mapOut))
		return nil
	}
	ev, done := f.Eval(v)
	if !done {
		*f.Local(xmapPhase) = False
		return nil
	}
	*f.Local(xmapPhase) = True
	return f.Call(f.Param(0), ev)
}

func xmapNext(f *Frame, r Item) error {
	if !f.Local(xmapPhase).AsBool() {
		*f.Local(xmapPhase) = True
		return f.Call(f.Param(0), r)
	}
	if !r.IsOob() {
		f.Local(mapOut).AsArray().Append(r)
	}
	return xmapFrom(f)
}

func filterNext(f *Frame, r Item) error {
	if r.IsTrue() {
		f.Local(mapOut).AsArray().Append(*f.Local(filterCurrent))
	}
	v, ok := cursorAt(f, mapCursor).next()
	if !ok {
		f.Return(*f.Local(mapOut))
		return nil
	}
	*f.Local(filterCurrent) = v
	return f.Call(f.Param(0), v)
}

func reduceStep(f *Frame, acc Item) error {
	v, ok := cursorAt(f, mapCursor).next()
	if !ok {
		f.Return(acc)
		return nil
	}
	return f.Call(f.Param(0), acc, v)
}

// dolistFrom reduces the next element and calls fn with it. Once the
// sequence is exhausted the last result stands.
func dolistFrom(f *Frame) error {
	v, ok := cursorAt(f, mapCursor).next()
	if !ok {
		return nil
	}
	ev, done := f.Eval(v)
	if !done {
		*f.Local(dolistCalled) = False
		return nil
	}
	return dolistCall(f, ev)
}

func dolistCall(f *Frame, v Item) error {
	*f.Local(dolistCalled) = True
	args := make([]Item, 0, f.ParamCount()-1)
	args = append(args, v)
	args = append(args, f.Params()[2:]...)
	return f.Call(f.Param(0), args...)
}

func dolistNext(f *Frame, r Item) error {
	if !f.Local(dolistCalled).AsBool() {
		return dolistCall(f, r)
	}
	f.Return(r)
	return dolistFrom(f)
}

func cascadeNext(f *Frame, r Item) error {
	c := cursorAt(f, cascadeCursor)
	accepted := f.Local(cascadeAccepted)
	fn, more := c.next()
	if !more {
		if r.IsOob() {
			f.Return(accepted.ResetOob())
		} else {
			f.Return(r)
		}
		return nil
	}
	if !r.IsOob() {
		*accepted = r
		return f.Call(fn, r)
	}
	if accepted.IsOob() {
		return f.Call(fn, f.Params()[1:]...)
	}
	return f.Call(fn, *accepted)
}
