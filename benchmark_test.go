// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma_test

import (
	"context"
	"testing"

	"code.hybscloud.com/sigma"
)

// BenchmarkCallNative measures one call of a builtin on a reused machine.
func BenchmarkCallNative(b *testing.B) {
	m := sigma.NewMachine(sigma.MachineConfig{})
	ctx := context.Background()
	for b.Loop() {
		_, _ = m.Call(ctx, square, sigma.Int(3))
	}
}

// BenchmarkDeepSigma measures reduction of a 1000-level nested sigma.
func BenchmarkDeepSigma(b *testing.B) {
	m := sigma.NewMachine(sigma.MachineConfig{})
	ctx := context.Background()
	expr := nestedAdd(1000)
	for b.Loop() {
		_, _ = m.Eval(ctx, expr)
	}
}

// BenchmarkReduce measures a fold over 1000 elements.
func BenchmarkReduce(b *testing.B) {
	m := sigma.NewMachine(sigma.MachineConfig{})
	ctx := context.Background()
	xs := sigma.NewArray(1000)
	for i := range 1000 {
		xs.Append(sigma.Int(int64(i)))
	}
	for b.Loop() {
		_, _ = m.Call(ctx, sigma.Reduce.Item(), add, sigma.ArrayOf(xs), sigma.Int(0))
	}
}

// BenchmarkMap measures map over 1000 elements.
func BenchmarkMap(b *testing.B) {
	m := sigma.NewMachine(sigma.MachineConfig{})
	ctx := context.Background()
	xs := sigma.NewArray(1000)
	for i := range 1000 {
		xs.Append(sigma.Int(int64(i)))
	}
	for b.Loop() {
		_, _ = m.Call(ctx, sigma.Map.Item(), square, sigma.ArrayOf(xs))
	}
}

// BenchmarkTimes measures a 1000-pass loop with a single body.
func BenchmarkTimes(b *testing.B) {
	m := sigma.NewMachine(sigma.MachineConfig{})
	ctx := context.Background()
	body := sigma.Arr(square)
	for b.Loop() {
		_, _ = m.Call(ctx, sigma.Times.Item(), sigma.Int(1000), sigma.Nil, body)
	}
}

// BenchmarkListWalk measures any over a list through a registered iterator.
func BenchmarkListWalk(b *testing.B) {
	m := sigma.NewMachine(sigma.MachineConfig{})
	ctx := context.Background()
	l := sigma.NewList()
	for range 1000 {
		l.PushBack(sigma.Int(0))
	}
	for b.Loop() {
		_, _ = m.Call(ctx, sigma.Any.Item(), sigma.ListOf(l))
	}
}

// BenchmarkCRC32 measures the table-driven checksum over 4 KiB.
func BenchmarkCRC32(b *testing.B) {
	sigma.InitTables()
	data := make([]byte, 4096)
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		_ = sigma.CRC32(data)
	}
}

// BenchmarkMarshalItem measures canonical CBOR encoding of a nested array.
func BenchmarkMarshalItem(b *testing.B) {
	v := sigma.Arr(sigma.Int(1), sigma.Str("two"), sigma.Arr(sigma.Float(3), sigma.Oob(sigma.Int(4))))
	for b.Loop() {
		_, _ = sigma.MarshalItem(v)
	}
}
