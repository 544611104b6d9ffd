// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

// FrameState is the lifecycle position of a [Frame].
type FrameState uint8

const (
	// FrameInit: pushed, Invoke not yet run.
	FrameInit FrameState = iota
	// FrameAwaiting: a nested call is running above this frame.
	FrameAwaiting
	// FrameResumed: the nested call finished; the continuation runs next.
	FrameResumed
	// FrameDone: the frame produced its result and left the stack.
	FrameDone
)

func (s FrameState) String() string {
	switch s {
	case FrameInit:
		return "init"
	case FrameAwaiting:
		return "awaiting"
	case FrameResumed:
		return "resumed"
	case FrameDone:
		return "done"
	}
	return "invalid"
}

// Continuation receives the result r of the nested call its frame
// requested. Like Invoke, it either returns a value, requests another
// call, or does neither, in which case the frame completes with r.
//
// The continuation stays registered across calls until replaced with
// [Frame.Then]; Then(nil) makes the next nested result pass straight
// through as the frame's own result.
type Continuation func(f *Frame, r Item) error

// Frame is the activation record of one callable invocation on a
// [Machine]. It holds the parameters, local slots that survive across
// suspensions, the registered continuation and the pending call.
//
// Frames are owned by the machine and recycled once they complete:
// a callable must not retain its *Frame beyond its own callbacks.
type Frame struct {
	m      *Machine
	task   *Task
	callee Callable
	params []Item
	locals []Item
	cont   Continuation
	state  FrameState
	ret    Item

	pending     bool
	pendingFn   Callable
	pendingArgs []Item

	cleanup []func()
}

// Machine returns the machine running f.
func (f *Frame) Machine() *Machine { return f.m }

// Callee returns the callable this frame activates.
func (f *Frame) Callee() Callable { return f.callee }

// State returns the lifecycle state of f.
func (f *Frame) State() FrameState { return f.state }

// ParamCount returns the number of parameters.
func (f *Frame) ParamCount() int { return len(f.params) }

// HasParam reports whether parameter i was supplied.
func (f *Frame) HasParam(i int) bool { return i >= 0 && i < len(f.params) }

// Param returns parameter i, or Nil if it was not supplied.
func (f *Frame) Param(i int) Item {
	if i < 0 || i >= len(f.params) {
		return Nil
	}
	return f.params[i]
}

// Params returns the parameter slice. It must not be retained.
func (f *Frame) Params() []Item { return f.params }

// Locals reserves n more local slots, initialized to Nil, and returns the
// frame's whole local area. Indices of earlier slots stay valid.
func (f *Frame) Locals(n int) []Item {
	if cap(f.locals) == 0 && f.m != nil {
		f.locals = make([]Item, 0, max(n, f.m.cfg.LocalsHint))
	}
	for range n {
		f.locals = append(f.locals, Nil)
	}
	return f.locals
}

// Local returns a pointer to local slot i. The pointer is valid until the
// next call to Locals.
func (f *Frame) Local(i int) *Item { return &f.locals[i] }

// Then registers k as the continuation for subsequent nested results.
func (f *Frame) Then(k Continuation) { f.cont = k }

// Return sets the frame's result.
func (f *Frame) Return(v Item) { f.ret = v }

// Call requests a nested call of fn with args. The call runs after the
// current callback returns; its result reaches the registered
// continuation, or becomes this frame's result when none is registered.
//
// A non-callable fn yields an error of kind NotCallable. Requesting two
// calls from one callback is a programming error and panics.
func (f *Frame) Call(fn Item, args ...Item) error {
	c, full, ok := resolveCall(fn, args)
	if !ok {
		return newError(NotCallable, f.opName(), fn.TypeName())
	}
	f.push(c, full)
	return nil
}

// CallFunc requests a nested call of c with args, like [Frame.Call].
func (f *Frame) CallFunc(c Callable, args ...Item) {
	f.push(c, append([]Item(nil), args...))
}

func (f *Frame) push(c Callable, args []Item) {
	if f.pending {
		panic("sigma: frame requested two nested calls in one step")
	}
	f.pending = true
	f.pendingFn = c
	f.pendingArgs = args
}

// Defer registers fn to run when the frame leaves the stack, whether it
// completed or was abandoned after an error or a discard.
func (f *Frame) Defer(fn func()) { f.cleanup = append(f.cleanup, fn) }

func (f *Frame) opName() string {
	if f.callee == nil {
		return ""
	}
	return f.callee.Name()
}

// reset clears f for reuse, running any deferred cleanups.
func (f *Frame) reset() {
	for i := len(f.cleanup) - 1; i >= 0; i-- {
		f.cleanup[i]()
	}
	clear(f.cleanup)
	clear(f.locals)
	*f = Frame{locals: f.locals[:0], cleanup: f.cleanup[:0]}
}
