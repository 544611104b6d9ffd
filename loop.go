// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

// Loop combinators. Callables steer them with out-of-band integers:
// oob 0 breaks the loop, oob 1 skips the rest of the current pass.

var (
	// Floop calls the callables of a sequence one after another, starting
	// over after the last one, until one of them returns oob 0; floop
	// then returns nil. Elements that are not callable count as their own
	// result. An empty sequence returns nil at once.
	Floop = NewEta("floop", func(f *Frame) error {
		seq := f.Param(0)
		if !seq.IsArray() {
			return ParamError("floop", "A")
		}
		n := seq.AsArray().Len()
		if n == 0 {
			f.Return(Nil)
			return nil
		}
		// The first pass increments the counter to 0.
		f.Locals(1)[floopCounter] = Int(int64(n))
		f.Then(floopNext)
		return floopNext(f, Nil)
	})

	// Times runs the callables of a sequence once per step of a count or
	// a closed range, and returns the index at which it stopped.
	//
	// A count n steps from 0 towards n. Upward loops exclude their end and
	// downward loops include it, so times(3) visits 0, 1, 2 and the range
	// [3:0] visits 3, 2, 1, 0. A range step of 0 means one unit in the
	// direction of the end.
	//
	// var selects how callables see the index. A reference receives the
	// index before each pass and callables are called without arguments.
	// Otherwise var is nil or an integer i: plain callables get the index
	// as their only argument, and sigmas get it appended when i <= 0 or
	// written into their element i when i > 0.
	Times = NewEta("times", func(f *Frame) error {
		count, v, seq := f.Param(0), f.Param(1), f.Param(2)
		if f.ParamCount() < 3 || !(count.IsRange() || count.IsOrdinal()) ||
			!(v.IsRef() || v.IsNil() || v.IsOrdinal()) || !seq.IsArray() {
			return ParamError("times", "N|R,$|Nil|N,A")
		}
		var start, end, step int64
		if count.IsRange() {
			r := count.AsRange()
			if r.Open {
				return ParamError("times", "open range")
			}
			start, end, step = r.Start, r.End, r.Step
			if step == 0 {
				step = 1
				if start > end {
					step = -1
				}
			}
		} else {
			end = count.ForceInt()
			step = 1
			if end < 0 {
				step = -1
			}
		}

		if start == end || (start < end && step < 0) || (start > end && step > 0) ||
			seq.AsArray().Len() == 0 {
			f.Return(Int(start))
			return nil
		}

		loc := f.Locals(2)
		loc[timesRange] = RangeOf(start, end, step)
		loc[timesItem] = Int(0)
		if v.IsRef() {
			v.AsRef().Value = Int(start)
		}
		f.Then(timesNext)
		return timesNext(f, Nil)
	})
)

const floopCounter = 0

const (
	timesRange = iota
	timesItem
)

func floopNext(f *Frame, r Item) error {
	seq := f.Param(0).AsArray()
	count := f.Local(floopCounter).AsInt() + 1
	switch {
	case r.IsOobInt(0):
		f.Then(nil)
		f.Return(Nil)
		return nil
	case r.IsOobInt(1):
		count = 0
	}
	if count >= int64(seq.Len()) {
		count = 0
	}
	*f.Local(floopCounter) = Int(count)
	item := seq.At(int(count))
	if item.IsCallable() {
		return f.Call(item)
	}
	// A literal passes through lit, so that every element costs one step
	// and a loop without callables still yields to the trampoline.
	f.CallFunc(Lit, item)
	return nil
}

func timesNext(f *Frame, r Item) error {
	if r.IsOobInt(0) {
		f.Return(Int(f.Local(timesRange).AsRange().Start))
		return nil
	}
	seq := f.Param(2).AsArray()
	rng := f.Local(timesRange).AsRange()
	id := int(f.Local(timesItem).AsInt())

	if id >= seq.Len() || r.IsOobInt(1) {
		id = 0
		rng.Start += rng.Step
		if ref := f.Param(1).AsRef(); ref != nil {
			ref.Value = Int(rng.Start)
		}
		*f.Local(timesRange) = RangeOf(rng.Start, rng.End, rng.Step)
	}
	if (rng.Step > 0 && rng.Start >= rng.End) || (rng.Step < 0 && rng.Start < rng.End) {
		f.Return(Int(rng.Start))
		return nil
	}

	item := seq.At(id)
	*f.Local(timesItem) = Int(int64(id + 1))
	if !item.IsCallable() {
		return ParamError("times", "uncallable")
	}
	index := Int(rng.Start)
	v := f.Param(1)
	switch {
	case v.IsRef():
		return f.Call(item)
	case item.IsArray():
		a := item.AsArray()
		slot := v.ForceInt()
		if slot <= 0 {
			return f.Call(item, index)
		}
		if int(slot) < a.Len() {
			_ = a.Set(int(slot), index)
		}
		return f.Call(item)
	default:
		return f.Call(item, index)
	}
}
