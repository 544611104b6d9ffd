// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma_test

import (
	"bytes"
	"errors"
	"testing"

	"code.hybscloud.com/sigma"
)

func TestCodecRoundTrip(t *testing.T) {
	d := sigma.NewDict()
	d.Set(sigma.Str("k"), sigma.Float(1.5))
	d.Set(sigma.Int(2), sigma.Oob(sigma.Str("v")))
	v := sigma.Arr(
		sigma.Nil, sigma.True, sigma.Int(-7), sigma.Oob(sigma.Int(0)),
		sigma.RangeOf(0, 10, 2), sigma.OpenRange(3),
		sigma.DictOf(d), sigma.Arr(square, sigma.Int(3)),
	)
	data, err := sigma.MarshalItem(v)
	if err != nil {
		t.Fatal(err)
	}
	got, err := sigma.UnmarshalItem(data, sigma.Core())
	if err != nil {
		t.Fatal(err)
	}
	if !sigma.DeepEqual(got, v) {
		t.Fatalf("round trip = %v, want %v", got, v)
	}
	a := got.AsArray()
	if !a.At(3).IsOobInt(0) {
		t.Errorf("element 3 = %v, want oob 0", a.At(3))
	}
	if r := a.At(5).AsRange(); !r.Open || r.Start != 3 {
		t.Errorf("element 5 = %v, want open range from 3", a.At(5))
	}
	if w, _ := a.At(6).AsDict().Get(sigma.Int(2)); !w.IsOob() {
		t.Errorf("dict value lost its oob flag: %v", w)
	}
	if n := call(t, a.At(7)); n.AsInt() != 9 {
		t.Errorf("decoded sigma evaluates to %v, want 9", n)
	}
}

func TestCodecListAndRef(t *testing.T) {
	v := sigma.Arr(sigma.ListOf(sigma.NewList(sigma.Int(1), sigma.Int(2))), sigma.NewRef(sigma.Str("x")))
	data, err := sigma.MarshalItem(v)
	if err != nil {
		t.Fatal(err)
	}
	got, err := sigma.UnmarshalItem(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	l := got.AsArray().At(0).AsList()
	if l == nil || !equalInts(listInts(t, l), []int64{1, 2}) {
		t.Errorf("list = %v", got.AsArray().At(0))
	}
	if r := got.AsArray().At(1).AsRef(); r == nil || r.Value.AsString() != "x" {
		t.Errorf("ref = %v", got.AsArray().At(1))
	}
}

func TestCodecCanonical(t *testing.T) {
	x, err := sigma.MarshalItem(sigma.Arr(sigma.Int(1), sigma.Str("a")))
	if err != nil {
		t.Fatal(err)
	}
	y, err := sigma.MarshalItem(sigma.Arr(sigma.Int(1), sigma.Str("a")))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(x, y) {
		t.Error("equal items encode to different bytes")
	}
}

func TestCodecRejects(t *testing.T) {
	a := sigma.NewArrayFrom(sigma.Int(1))
	a.Append(sigma.ArrayOf(a))
	if _, err := sigma.MarshalItem(sigma.ArrayOf(a)); !errors.Is(err, sigma.ErrUnsupported) {
		t.Errorf("cyclic array error = %v, want ErrUnsupported", err)
	}
	if _, err := sigma.MarshalItem(sigma.ObjectOf(42)); !errors.Is(err, sigma.ErrUnsupported) {
		t.Errorf("object error = %v, want ErrUnsupported", err)
	}

	shared := sigma.Arr(sigma.Int(1))
	if _, err := sigma.MarshalItem(sigma.Arr(shared, shared)); err != nil {
		t.Errorf("shared acyclic array: %v", err)
	}

	data, err := sigma.MarshalItem(square)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sigma.UnmarshalItem(data, sigma.Library{}); !errors.Is(err, sigma.ErrUnsupported) {
		t.Errorf("unknown function error = %v, want ErrUnsupported", err)
	}
	if _, err := sigma.UnmarshalItem([]byte{0xff}, nil); err == nil {
		t.Error("garbage decoded without error")
	}
}
