// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import (
	"context"
	"errors"
	"sync/atomic"
)

// Stepping boundary for embedders.
// Task.Step runs one trampoline step at a time, unlike Machine.Call which
// runs to completion. A host can interleave steps of its own work, or
// budget evaluation by steps.

// ErrDiscarded is the error of a task abandoned with [Task.Discard].
var ErrDiscarded = errors.New("sigma: task discarded")

// Task is one call running on a [Machine].
//
// A Task is one-shot: once it has completed or been discarded, stepping
// it again panics. Tasks nest: a task started while another is running
// sits above it on the same stack and must finish before the outer task
// is stepped again.
type Task struct {
	used   atomic.Uint32
	m      *Machine
	base   int
	result Item
	err    error
}

// Step runs one trampoline step and reports whether the task finished.
// A non-nil error means the task was aborted; its frames are gone.
// Panics if the task has already finished or been discarded.
//
// Example:
//
//	t, _ := m.Start(fn, args...)
//	for {
//	    done, err := t.Step()
//	    if done {
//	        ...
//	    }
//	    doOtherWork()
//	}
func (t *Task) Step() (bool, error) {
	if t.used.Load() != 0 {
		panic("sigma: task stepped after completion")
	}
	done, err := t.m.step(t)
	if done {
		t.finish(err)
	}
	return done, err
}

// Run steps the task to completion. ctx is checked every
// MachineConfig.CheckEvery steps; on cancellation the task is discarded
// and ctx's error returned.
func (t *Task) Run(ctx context.Context) (Item, error) {
	every := t.m.cfg.CheckEvery
	for n := 0; ; n++ {
		if n%every == 0 {
			if err := ctx.Err(); err != nil {
				t.discard(err)
				return Nil, err
			}
		}
		done, err := t.Step()
		if done {
			if err != nil {
				return Nil, err
			}
			return t.result, nil
		}
	}
}

// Done reports whether the task finished or was discarded.
func (t *Task) Done() bool { return t.used.Load() != 0 }

// Result returns the task's result and error once it is done.
func (t *Task) Result() (Item, error) { return t.result, t.err }

// Depth returns the number of frames the task has on the stack.
func (t *Task) Depth() int {
	if t.Done() {
		return 0
	}
	return len(t.m.frames) - t.base
}

// Discard abandons the task and its frames. Discarding a finished task
// has no effect.
func (t *Task) Discard() { t.discard(ErrDiscarded) }

func (t *Task) discard(err error) {
	if t.used.Swap(1) != 0 {
		return
	}
	t.m.unwind(t)
	t.err = err
	log.Debugf("machine %s: task discarded: %s", t.m.id, err)
}

func (t *Task) finish(err error) {
	t.used.Store(1)
	t.err = err
	if err == nil {
		t.result = t.m.result
	}
}
