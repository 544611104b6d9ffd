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

func eval(t *testing.T, v sigma.Item) sigma.Item {
	t.Helper()
	got, err := sigma.EvalItem(context.Background(), v)
	if err != nil {
		t.Fatalf("eval %v: %v", v, err)
	}
	return got
}

// counter returns a function that counts its calls and returns result.
func counter(n *int, result sigma.Item) sigma.Item {
	return sigma.Func("counter", func([]sigma.Item) (sigma.Item, error) {
		*n++
		return result, nil
	})
}

func fn(name string) sigma.Item { return sigma.Builtin(name) }

func TestAnyAll(t *testing.T) {
	tests := []struct {
		name string
		expr sigma.Item
		want sigma.Item
	}{
		{"any hit", sigma.Arr(fn("any"), sigma.Arr(sigma.Int(0), sigma.Arr(square, sigma.Int(2)))), sigma.True},
		{"any miss", sigma.Arr(fn("any"), sigma.Arr(sigma.Int(0), sigma.Str(""))), sigma.False},
		{"any empty", sigma.Arr(fn("any"), sigma.Arr()), sigma.False},
		{"all hit", sigma.Arr(fn("all"), sigma.Arr(sigma.Int(1), sigma.Arr(square, sigma.Int(2)))), sigma.True},
		{"all miss", sigma.Arr(fn("all"), sigma.Arr(sigma.Int(1), sigma.Arr(square, sigma.Int(0)))), sigma.False},
		{"all empty", sigma.Arr(fn("all"), sigma.Arr()), sigma.False},
		{"anyp", sigma.Arr(fn("anyp"), sigma.Int(0), sigma.Arr(square, sigma.Int(1))), sigma.True},
		{"allp", sigma.Arr(fn("allp"), sigma.Int(1), sigma.Nil), sigma.False},
		{"allp empty", sigma.Arr(fn("allp")), sigma.False},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eval(t, tt.expr); !sigma.Same(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllShortCircuits(t *testing.T) {
	var calls int
	count := counter(&calls, sigma.Int(1))
	seq := sigma.Arr(sigma.Int(1), sigma.Arr(count), sigma.Int(0), sigma.Arr(count))
	if got := eval(t, sigma.Arr(fn("all"), seq)); !sigma.Same(got, sigma.False) {
		t.Fatalf("all = %v, want false", got)
	}
	if calls != 1 {
		t.Errorf("counter called %d times, want 1", calls)
	}

	calls = 0
	seq = sigma.Arr(sigma.Arr(count), sigma.Arr(count))
	if got := eval(t, sigma.Arr(fn("any"), seq)); !sigma.Same(got, sigma.True) {
		t.Fatalf("any = %v, want true", got)
	}
	if calls != 1 {
		t.Errorf("counter called %d times, want 1", calls)
	}
}

func TestAnyOverList(t *testing.T) {
	l := sigma.NewList(sigma.Int(0), sigma.Arr(square, sigma.Int(3)))
	got, err := sigma.Run(context.Background(), sigma.Any.Item(), sigma.ListOf(l))
	if err != nil {
		t.Fatal(err)
	}
	if !got.AsBool() {
		t.Errorf("any over list = %v, want true", got)
	}
	if l.Iterators() != 0 {
		t.Errorf("any leaked %d list iterators", l.Iterators())
	}
}

func TestIffChoice(t *testing.T) {
	var calls int
	count := counter(&calls, sigma.Int(0))
	cond := sigma.Arr(sigma.Eq.Item(), sigma.Int(1), sigma.Float(1))

	if got := eval(t, sigma.Arr(fn("iff"), cond, sigma.Arr(square, sigma.Int(3)), sigma.Arr(count))); got.AsInt() != 9 {
		t.Errorf("iff true = %v, want 9", got)
	}
	if got := eval(t, sigma.Arr(fn("iff"), sigma.Int(0), sigma.Arr(count), sigma.Arr(square, sigma.Int(4)))); got.AsInt() != 16 {
		t.Errorf("iff false = %v, want 16", got)
	}
	if got := eval(t, sigma.Arr(fn("iff"), sigma.False, sigma.Arr(count))); !got.IsNil() {
		t.Errorf("iff false without else = %v, want nil", got)
	}
	if calls != 0 {
		t.Errorf("untaken branch evaluated %d times", calls)
	}

	branch := sigma.Arr(square, sigma.Int(3))
	if got := eval(t, sigma.Arr(fn("choice"), cond, branch)); !sigma.Same(got, branch) {
		t.Errorf("choice = %v, want the branch unevaluated", got)
	}
	if got := eval(t, sigma.Arr(fn("choice"), sigma.Nil, branch, sigma.Str("no"))); got.AsString() != "no" {
		t.Errorf("choice false = %v, want no", got)
	}

	if _, err := sigma.EvalItem(context.Background(), sigma.Arr(fn("iff"), sigma.True)); !errors.Is(err, sigma.ErrInvalidArgument) {
		t.Errorf("iff with one argument error = %v, want ErrInvalidArgument", err)
	}
}

func TestEvalLit(t *testing.T) {
	inner := sigma.Arr(square, sigma.Int(3))
	if got := eval(t, sigma.Arr(fn("lit"), inner)); !sigma.Same(got, inner) {
		t.Errorf("lit = %v, want its argument", got)
	}
	if got := eval(t, sigma.Arr(fn("eval"), inner)); got.AsInt() != 9 {
		t.Errorf("eval = %v, want 9", got)
	}
	if got := eval(t, sigma.Arr(fn("eval"), sigma.Str("atom"))); got.AsString() != "atom" {
		t.Errorf("eval atom = %v", got)
	}
}

func TestFirstOf(t *testing.T) {
	got := eval(t, sigma.Arr(fn("firstOf"), sigma.Int(0), sigma.Str(""), sigma.Str("x"), sigma.Int(1)))
	if got.AsString() != "x" {
		t.Errorf("firstOf = %v, want x", got)
	}
	if got := eval(t, sigma.Arr(fn("firstOf"), sigma.Nil)); !got.IsNil() {
		t.Errorf("firstOf(nil) = %v", got)
	}
}

func TestMinMaxEq(t *testing.T) {
	if got := eval(t, sigma.Arr(fn("max"), sigma.Int(3), sigma.Arr(square, sigma.Int(2)), sigma.Float(1.5))); got.AsInt() != 4 {
		t.Errorf("max = %v, want 4", got)
	}
	if got := eval(t, sigma.Arr(fn("min"), sigma.Int(3), sigma.Float(1.5))); got.AsFloat() != 1.5 {
		t.Errorf("min = %v, want 1.5", got)
	}
	if got := eval(t, sigma.Arr(fn("min"))); !got.IsNil() {
		t.Errorf("min() = %v, want nil", got)
	}
	x := sigma.Arr(sigma.Int(1), sigma.Arr(sigma.Str("a")))
	y := sigma.Arr(sigma.Int(1), sigma.Arr(sigma.Str("a")))
	if got := eval(t, sigma.Arr(fn("eq"), sigma.Arr(fn("lit"), x), sigma.Arr(fn("lit"), y))); !got.AsBool() {
		t.Errorf("eq = %v, want true", got)
	}
}

func TestEtaReceivesUnevaluated(t *testing.T) {
	var seen []sigma.Item
	probe := sigma.NewEta("probe", func(f *sigma.Frame) error {
		seen = append(seen, f.Params()...)
		return nil
	}).Item()
	arg := sigma.Arr(square, sigma.Int(5))
	eval(t, sigma.Arr(probe, arg))
	if len(seen) != 1 || !sigma.Same(seen[0], arg) {
		t.Errorf("eta saw %v, want the sigma itself", seen)
	}

	seen = nil
	plain := sigma.NewNative("plain", func(f *sigma.Frame) error {
		seen = append(seen, f.Params()...)
		return nil
	}).Item()
	eval(t, sigma.Arr(plain, arg))
	if len(seen) != 1 || seen[0].AsInt() != 25 {
		t.Errorf("native saw %v, want [25]", seen)
	}
}
