// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma_test

import (
	"context"
	"errors"
	"testing"

	"code.hybscloud.com/sigma"
)

// nestedAdd builds [add, [add, ... [add, 1, 1] ..., 1], 1] with n adds.
func nestedAdd(n int) sigma.Item {
	e := sigma.Int(1)
	for range n {
		e = sigma.Arr(add, e, sigma.Int(1))
	}
	return e
}

func TestTrampolineDeepSigma(t *testing.T) {
	const depth = 10000
	m := sigma.NewMachine(sigma.MachineConfig{})
	got, err := m.Eval(context.Background(), nestedAdd(depth))
	if err != nil {
		t.Fatal(err)
	}
	if got.AsInt() != depth+1 {
		t.Errorf("Eval = %v, want %d", got, depth+1)
	}
	if m.Depth() != 0 {
		t.Errorf("Depth() = %d after completion, want 0", m.Depth())
	}
}

func TestTrampolineDepthExceeded(t *testing.T) {
	m := sigma.NewMachine(sigma.MachineConfig{MaxDepth: 100})
	_, err := m.Eval(context.Background(), nestedAdd(200))
	if !errors.Is(err, sigma.ErrDepthExceeded) {
		t.Fatalf("error = %v, want ErrDepthExceeded", err)
	}
	if m.Depth() != 0 {
		t.Fatalf("Depth() = %d after abort, want 0", m.Depth())
	}
	got, err := m.Eval(context.Background(), nestedAdd(50))
	if err != nil || got.AsInt() != 51 {
		t.Errorf("Eval after abort = %v, %v; want 51", got, err)
	}
}

func TestTrampolineLongReduce(t *testing.T) {
	const n = 100000
	xs := sigma.NewArray(n)
	for i := range n {
		xs.Append(sigma.Int(int64(i)))
	}
	m := sigma.NewMachine(sigma.MachineConfig{MaxDepth: 8})
	got, err := m.Call(context.Background(), sigma.Reduce.Item(), add, sigma.ArrayOf(xs), sigma.Int(0))
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(n) * (n - 1) / 2; got.AsInt() != want {
		t.Errorf("reduce = %v, want %d", got, want)
	}
}

func TestTrampolineErrorAborts(t *testing.T) {
	m := sigma.NewMachine(sigma.MachineConfig{})
	expr := sigma.Arr(add, sigma.Int(1), sigma.Arr(sigma.Builtin("div"), sigma.Int(1), sigma.Int(0)))
	_, err := m.Eval(context.Background(), expr)
	if !errors.Is(err, sigma.ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument", err)
	}
	var e *sigma.Error
	if !errors.As(err, &e) || e.Op != "div" {
		t.Errorf("error = %#v, want op div", err)
	}
	if m.Depth() != 0 {
		t.Errorf("Depth() = %d after abort, want 0", m.Depth())
	}
}

func TestTrampolineContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := 0
	stopper := sigma.Func("stopper", func([]sigma.Item) (sigma.Item, error) {
		calls++
		if calls == 10 {
			cancel()
		}
		return sigma.Nil, nil
	})
	m := sigma.NewMachine(sigma.MachineConfig{CheckEvery: 4})
	_, err := m.Call(ctx, sigma.Floop.Item(), sigma.Arr(stopper))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if m.Depth() != 0 {
		t.Errorf("Depth() = %d after cancel, want 0", m.Depth())
	}
	if calls < 10 || calls > 20 {
		t.Errorf("stopper ran %d times, want cancellation soon after 10", calls)
	}
}

func TestTrampolineNotCallable(t *testing.T) {
	m := sigma.NewMachine(sigma.MachineConfig{})
	if _, err := m.Call(context.Background(), sigma.Int(3)); !errors.Is(err, sigma.ErrNotCallable) {
		t.Errorf("Call(3) error = %v, want ErrNotCallable", err)
	}
	if _, err := m.Call(context.Background(), sigma.Arr()); !errors.Is(err, sigma.ErrNotCallable) {
		t.Errorf("Call([]) error = %v, want ErrNotCallable", err)
	}
}

func TestTrampolineEvalAtom(t *testing.T) {
	m := sigma.NewMachine(sigma.MachineConfig{})
	data := sigma.Arr(sigma.Int(1), add)
	got, err := m.Eval(context.Background(), data)
	if err != nil {
		t.Fatal(err)
	}
	if !sigma.Same(got, data) {
		t.Errorf("Eval(data array) = %v, want the same array", got)
	}
	if m.Steps() != 0 {
		t.Errorf("Steps() = %d, want 0 for an atom", m.Steps())
	}
}

func TestTrampolineNestedMachineCall(t *testing.T) {
	m := sigma.NewMachine(sigma.MachineConfig{})
	host := sigma.NewNative("host", func(f *sigma.Frame) error {
		v, err := f.Machine().Call(context.Background(), square, f.Param(0))
		if err != nil {
			return err
		}
		f.Return(v)
		return nil
	}).Item()
	got, err := m.Eval(context.Background(), sigma.Arr(add, sigma.Arr(host, sigma.Int(3)), sigma.Int(1)))
	if err != nil {
		t.Fatal(err)
	}
	if got.AsInt() != 10 {
		t.Errorf("add(host(3), 1) = %v, want 10", got)
	}
}
