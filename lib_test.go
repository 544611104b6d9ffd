// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma_test

import (
	"context"
	"errors"
	"hash/crc32"
	"slices"
	"testing"

	"code.hybscloud.com/sigma"
)

func TestCRC32(t *testing.T) {
	sigma.InitTables()
	if got := sigma.CRC32([]byte("abc")); got != 0x352441c2 {
		t.Errorf("CRC32(abc) = %#x, want 0x352441c2", got)
	}
	for _, s := range []string{"", "a", "The quick brown fox jumps over the lazy dog"} {
		if got, want := sigma.CRC32([]byte(s)), crc32.ChecksumIEEE([]byte(s)); got != want {
			t.Errorf("CRC32(%q) = %#x, want %#x", s, got, want)
		}
	}
	if got := call(t, fn("crc32"), sigma.Str("abc")); got.AsInt() != 0x352441c2 {
		t.Errorf("crc32(abc) = %v", got)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		op   string
		args []sigma.Item
		want sigma.Item
	}{
		{"add", []sigma.Item{sigma.Int(2), sigma.Int(3)}, sigma.Int(5)},
		{"add", []sigma.Item{sigma.Int(2), sigma.Float(0.5)}, sigma.Float(2.5)},
		{"add", []sigma.Item{sigma.Str("a"), sigma.Str("b")}, sigma.Str("ab")},
		{"sub", []sigma.Item{sigma.Int(2), sigma.Int(3)}, sigma.Int(-1)},
		{"mul", []sigma.Item{sigma.Int(4), sigma.Int(3)}, sigma.Int(12)},
		{"div", []sigma.Item{sigma.Int(6), sigma.Int(3)}, sigma.Int(2)},
		{"div", []sigma.Item{sigma.Int(7), sigma.Int(2)}, sigma.Float(3.5)},
		{"neg", []sigma.Item{sigma.Int(4)}, sigma.Int(-4)},
		{"neg", []sigma.Item{sigma.Float(1.5)}, sigma.Float(-1.5)},
		{"sqrt", []sigma.Item{sigma.Int(16)}, sigma.Float(4)},
		{"square", []sigma.Item{sigma.Int(-4)}, sigma.Int(16)},
		{"square", []sigma.Item{sigma.Float(0.5)}, sigma.Float(0.25)},
	}
	for _, tt := range tests {
		got := call(t, fn(tt.op), tt.args...)
		if got.Kind() != tt.want.Kind() || !sigma.Same(got, tt.want) {
			t.Errorf("%s%v = %v, want %v", tt.op, tt.args, got, tt.want)
		}
	}
}

func TestArithmeticErrors(t *testing.T) {
	tests := []struct {
		op   string
		args []sigma.Item
	}{
		{"div", []sigma.Item{sigma.Int(1), sigma.Int(0)}},
		{"sqrt", []sigma.Item{sigma.Int(-1)}},
		{"add", []sigma.Item{sigma.Int(1)}},
		{"mul", []sigma.Item{sigma.Int(1), sigma.Str("x")}},
		{"crc32", []sigma.Item{sigma.Int(1)}},
	}
	for _, tt := range tests {
		_, err := sigma.Run(context.Background(), fn(tt.op), tt.args...)
		if !errors.Is(err, sigma.ErrInvalidArgument) {
			t.Errorf("%s%v error = %v, want ErrInvalidArgument", tt.op, tt.args, err)
		}
	}
}

func TestOobHelpers(t *testing.T) {
	v := call(t, fn("oob"), sigma.Int(1))
	if !v.IsOobInt(1) {
		t.Fatalf("oob(1) = %v", v)
	}
	if got := call(t, fn("isoob"), v); !got.AsBool() {
		t.Error("isoob(oob(1)) = false")
	}
	if got := call(t, fn("deoob"), v); got.IsOob() || got.AsInt() != 1 {
		t.Errorf("deoob = %v", got)
	}
}

func TestLibrary(t *testing.T) {
	lib := sigma.Core()
	names := lib.Names()
	if !slices.IsSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	for _, name := range []string{"any", "cascade", "floop", "times", "map", "reduce", "crc32"} {
		if _, ok := lib.Lookup(name); !ok {
			t.Errorf("core library lacks %s", name)
		}
	}
	double := sigma.NewNative("double", func(f *sigma.Frame) error {
		f.Return(sigma.Int(f.Param(0).AsInt() * 2))
		return nil
	})
	lib.Register(double)
	v, ok := lib.Lookup("double")
	if !ok || v.AsFunc() != sigma.Callable(double) {
		t.Errorf("Lookup(double) = %v, %v", v, ok)
	}
	if _, ok := sigma.Core().Lookup("double"); ok {
		t.Error("Core() shares registrations between calls")
	}
}

func TestBuiltinUnknownPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for an unknown builtin")
		}
	}()
	sigma.Builtin("no-such-function")
}
