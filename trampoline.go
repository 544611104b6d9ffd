// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import "strconv"

// pushFrame activates c on top of the stack on behalf of t.
func (m *Machine) pushFrame(t *Task, c Callable, args []Item) error {
	if len(m.frames) >= m.cfg.MaxDepth {
		return newError(DepthExceeded, c.Name(), strconv.Itoa(m.cfg.MaxDepth))
	}
	m.frames = append(m.frames, acquireFrame(m, t, c, args))
	return nil
}

// step runs one callback of t's top frame: Invoke for a fresh frame, the
// continuation for a resumed one. It then either pushes the requested
// nested call or completes the frame, delivering its result to the first
// ancestor with a registered continuation. Ancestors without one complete
// with the same result (tail pass-through).
//
// step reports true when t's root frame has completed or an error
// aborted the task.
func (m *Machine) step(t *Task) (bool, error) {
	if len(m.frames) <= t.base {
		panic("sigma: task has no frame to step")
	}
	f := m.frames[len(m.frames)-1]
	if f.task != t {
		panic("sigma: task stepped while a nested task is running")
	}
	m.steps++

	var err error
	switch f.state {
	case FrameInit:
		err = f.callee.Invoke(f)
	case FrameResumed:
		r := m.result
		f.ret = r
		err = f.cont(f, r)
	default:
		panic("sigma: frame stepped in state " + f.state.String())
	}
	if err != nil {
		log.Debugf("machine %s: %s failed: %s", m.id, f.opName(), err)
		m.unwind(t)
		return true, err
	}

	if f.pending {
		c, args := f.pendingFn, f.pendingArgs
		f.pending, f.pendingFn, f.pendingArgs = false, nil, nil
		f.state = FrameAwaiting
		if err := m.pushFrame(t, c, args); err != nil {
			m.unwind(t)
			return true, err
		}
		return false, nil
	}
	return m.complete(t, f.ret), nil
}

// complete pops the top frame with result v and resumes the nearest
// ancestor that registered a continuation.
func (m *Machine) complete(t *Task, v Item) bool {
	for {
		m.pop()
		m.result = v
		if len(m.frames) == t.base {
			return true
		}
		parent := m.frames[len(m.frames)-1]
		if parent.cont != nil {
			parent.state = FrameResumed
			return false
		}
	}
}

func (m *Machine) pop() {
	n := len(m.frames) - 1
	f := m.frames[n]
	m.frames[n] = nil
	m.frames = m.frames[:n]
	f.state = FrameDone
	releaseFrame(f)
}

// unwind abandons every frame above t's base. Partial results held in
// their locals are dropped with them.
func (m *Machine) unwind(t *Task) {
	for len(m.frames) > t.base {
		m.pop()
	}
}
