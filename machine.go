// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import (
	"context"

	"github.com/google/uuid"
)

// Machine is a single-threaded cooperative evaluator. It owns a stack of
// [Frame]s and runs them with a trampoline: callables never call each
// other on the host stack, so nesting depth is bounded by
// MachineConfig.MaxDepth rather than by the goroutine stack.
//
// A Machine is not safe for concurrent use. Independent machines may run
// on separate goroutines.
type Machine struct {
	id     uuid.UUID
	cfg    MachineConfig
	frames []*Frame
	result Item
	steps  uint64
}

// NewMachine returns an idle machine. Zero fields of cfg take their
// defaults.
func NewMachine(cfg MachineConfig) *Machine {
	m := &Machine{
		id:  uuid.New(),
		cfg: cfg.withDefaults(),
	}
	log.Debugf("machine %s: created (max depth %d)", m.id, m.cfg.MaxDepth)
	return m
}

// ID identifies the machine in log output.
func (m *Machine) ID() uuid.UUID { return m.id }

// Config returns the effective configuration.
func (m *Machine) Config() MachineConfig { return m.cfg }

// Depth returns the number of frames on the stack.
func (m *Machine) Depth() int { return len(m.frames) }

// Steps returns the number of trampoline steps run so far.
func (m *Machine) Steps() uint64 { return m.steps }

// Result returns the result of the most recently completed frame.
func (m *Machine) Result() Item { return m.result }

// Start pushes a call of fn with args and returns the task driving it.
// Nothing runs until the task is stepped.
func (m *Machine) Start(fn Item, args ...Item) (*Task, error) {
	c, full, ok := resolveCall(fn, args)
	if !ok {
		return nil, newError(NotCallable, "Machine.Start", fn.TypeName())
	}
	t := &Task{m: m, base: len(m.frames)}
	if err := m.pushFrame(t, c, full); err != nil {
		return nil, err
	}
	log.Debugf("machine %s: task started on %s at depth %d", m.id, c.Name(), t.base)
	return t, nil
}

// Call runs fn with args to completion and returns its result.
// ctx is checked between steps; on cancellation the call is abandoned and
// ctx's error returned.
//
// Call may be used from inside a callable to evaluate synchronously on
// the same machine. Such a nested Call runs on the host stack of its
// caller.
func (m *Machine) Call(ctx context.Context, fn Item, args ...Item) (Item, error) {
	t, err := m.Start(fn, args...)
	if err != nil {
		return Nil, err
	}
	return t.Run(ctx)
}

// Eval performs sigma reduction on v: atoms are returned unchanged and a
// sigma is evaluated innermost first. See [Frame.Eval].
func (m *Machine) Eval(ctx context.Context, v Item) (Item, error) {
	if !isSigma(v) {
		return v, nil
	}
	return m.Call(ctx, reducerItem, v)
}
