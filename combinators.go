// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

// Truth and selection combinators. All of them are special constructs:
// heading a sigma, they receive their arguments unevaluated and decide
// what to evaluate themselves.

var (
	// Any evaluates the elements of a sequence in order and returns true
	// on the first truthy result, without evaluating the rest. It returns
	// false when none is truthy, including for an empty sequence.
	Any = NewEta("any", func(f *Frame) error {
		c, ok := openCursor(f, f.Param(0))
		if !ok {
			return ParamError("any", "A|L")
		}
		return startTruth(f, c, true)
	})

	// All evaluates the elements of a sequence in order and returns false
	// on the first falsy result, without evaluating the rest. An empty
	// sequence yields false.
	All = NewEta("all", func(f *Frame) error {
		c, ok := openCursor(f, f.Param(0))
		if !ok {
			return ParamError("all", "A|L")
		}
		if c.len() == 0 {
			f.Return(False)
			return nil
		}
		return startTruth(f, c, false)
	})

	// AnyP is [Any] over its own parameters.
	AnyP = NewEta("anyp", func(f *Frame) error {
		return startTruth(f, paramCursor(f), true)
	})

	// AllP is [All] over its own parameters.
	AllP = NewEta("allp", func(f *Frame) error {
		if f.ParamCount() == 0 {
			f.Return(False)
			return nil
		}
		return startTruth(f, paramCursor(f), false)
	})

	// Evaluate performs sigma reduction on its argument.
	Evaluate = NewEta("eval", func(f *Frame) error {
		if !f.HasParam(0) {
			return ParamError("eval", "X")
		}
		if v, ok := f.Eval(f.Param(0)); ok {
			f.Return(v)
		}
		return nil
	})

	// Lit returns its argument unevaluated, stopping sigma reduction.
	Lit = NewEta("lit", func(f *Frame) error {
		if !f.HasParam(0) {
			return ParamError("lit", "X")
		}
		f.Return(f.Param(0))
		return nil
	})

	// Eq reports structural equality of its two arguments.
	Eq = NewNative("eq", func(f *Frame) error {
		if f.ParamCount() < 2 {
			return ParamError("eq", "X,X")
		}
		f.Return(Bool(DeepEqual(f.Param(0), f.Param(1))))
		return nil
	})

	// FirstOf returns the first truthy argument as is, or nil.
	FirstOf = NewEta("firstOf", func(f *Frame) error {
		for _, v := range f.Params() {
			if v.IsTrue() {
				f.Return(v)
				return nil
			}
		}
		f.Return(Nil)
		return nil
	})

	// Choice evaluates a condition and returns the second argument when
	// it holds, else the optional third argument or nil. The chosen
	// branch is returned as is.
	Choice = NewEta("choice", func(f *Frame) error {
		return startBranch(f, "choice", false)
	})

	// Iff evaluates a condition, then evaluates and returns the second
	// argument when it holds, else the optional third argument or nil.
	Iff = NewEta("iff", func(f *Frame) error {
		return startBranch(f, "iff", true)
	})

	// Min returns the smallest argument by [Compare], or nil with none.
	Min = NewNative("min", func(f *Frame) error {
		f.Return(extremum(f.Params(), -1))
		return nil
	})

	// Max returns the largest argument by [Compare], or nil with none.
	Max = NewNative("max", func(f *Frame) error {
		f.Return(extremum(f.Params(), 1))
		return nil
	})
)

// Locals of the truth combinators.
const (
	truthCursor = iota
	truthStopOn
)

// startTruth walks c evaluating each element; the walk stops at the first
// result whose truth equals stopOn and returns stopOn, else !stopOn.
func startTruth(f *Frame, c *cursor, stopOn bool) error {
	loc := f.Locals(2)
	loc[truthCursor] = ObjectOf(c)
	loc[truthStopOn] = Bool(stopOn)
	f.Then(truthNext)
	return truthFrom(f, c, stopOn)
}

func truthFrom(f *Frame, c *cursor, stopOn bool) error {
	for {
		v, ok := c.next()
		if !ok {
			f.Return(Bool(!stopOn))
			return nil
		}
		r, done := f.Eval(v)
		if !done {
			return nil
		}
		if r.IsTrue() == stopOn {
			f.Return(Bool(stopOn))
			return nil
		}
	}
}

func truthNext(f *Frame, r Item) error {
	stopOn := f.Local(truthStopOn).AsBool()
	if r.IsTrue() == stopOn {
		f.Return(Bool(stopOn))
		return nil
	}
	return truthFrom(f, cursorAt(f, truthCursor), stopOn)
}

// startBranch evaluates the condition of iff or choice; evalBranch
// selects iff's behavior of evaluating the chosen branch.
func startBranch(f *Frame, op string, evalBranch bool) error {
	if f.ParamCount() < 2 {
		return ParamError(op, "X,X,[X]")
	}
	if evalBranch {
		f.Then(iffNext)
	} else {
		f.Then(choiceNext)
	}
	cond, ok := f.Eval(f.Param(0))
	if !ok {
		return nil
	}
	if evalBranch {
		return iffNext(f, cond)
	}
	return choiceNext(f, cond)
}

func choiceNext(f *Frame, cond Item) error {
	f.Then(nil)
	f.Return(pickBranch(f, cond))
	return nil
}

func iffNext(f *Frame, cond Item) error {
	f.Then(nil)
	branch := pickBranch(f, cond)
	if v, ok := f.Eval(branch); ok {
		f.Return(v)
	}
	return nil
}

func pickBranch(f *Frame, cond Item) Item {
	if cond.IsTrue() {
		return f.Param(1)
	}
	return f.Param(2)
}

func extremum(args []Item, sign int) Item {
	if len(args) == 0 {
		return Nil
	}
	best := args[0]
	for _, v := range args[1:] {
		if Compare(v, best)*sign > 0 {
			best = v
		}
	}
	return best
}
