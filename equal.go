// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import (
	"cmp"
	"strings"
)

// maxCompareDepth bounds the recursion of [Compare] on nested arrays.
const maxCompareDepth = 64

// Same reports scalar equality or aggregate identity. Integers and floats
// compare numerically; strings by content; containers, functions and
// objects by identity. The out-of-band flag is ignored.
func Same(a, b Item) bool {
	if a.IsNumeric() && b.IsNumeric() {
		if a.kind == KindInt && b.kind == KindInt {
			return a.n == b.n
		}
		return a.ForceFloat() == b.ForceFloat()
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.n == b.n
	case KindString:
		return a.AsString() == b.AsString()
	case KindRange:
		return a.AsRange() == b.AsRange()
	}
	return identical(a.p, b.p)
}

// identical compares two payloads by identity. Host values of
// non-comparable dynamic type are never identical.
func identical(x, y any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return x == y
}

// Compare orders two items: numbers numerically, strings lexically,
// booleans false before true, arrays element by element. Items of
// different kinds order by kind. Functions order by name. Lists and
// dictionaries order by length. Items that none of these rules separate
// compare equal, so Compare(a, b) == -Compare(b, a) always holds.
func Compare(a, b Item) int {
	return compareDepth(a, b, maxCompareDepth)
}

func compareDepth(a, b Item, depth int) int {
	if a.IsNumeric() && b.IsNumeric() {
		if a.kind == KindInt && b.kind == KindInt {
			return cmp.Compare(a.n, b.n)
		}
		return cmp.Compare(a.ForceFloat(), b.ForceFloat())
	}
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}
	switch a.kind {
	case KindNil:
		return 0
	case KindBool:
		return cmp.Compare(a.n, b.n)
	case KindString:
		return strings.Compare(a.AsString(), b.AsString())
	case KindRange:
		x, y := a.AsRange(), b.AsRange()
		if c := cmp.Compare(x.Start, y.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(x.End, y.End); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Step, y.Step); c != 0 {
			return c
		}
		switch {
		case x.Open == y.Open:
			return 0
		case y.Open:
			return -1
		}
		return 1
	case KindArray:
		x, y := a.AsArray(), b.AsArray()
		if x == y || depth == 0 {
			return 0
		}
		for i := range min(x.Len(), y.Len()) {
			if c := compareDepth(x.At(i), y.At(i), depth-1); c != 0 {
				return c
			}
		}
		return cmp.Compare(x.Len(), y.Len())
	case KindList:
		return cmp.Compare(a.AsList().Len(), b.AsList().Len())
	case KindDict:
		return cmp.Compare(a.AsDict().Len(), b.AsDict().Len())
	case KindFunc:
		return strings.Compare(funcName(a), funcName(b))
	}
	return 0
}

func funcName(v Item) string {
	if c := v.AsFunc(); c != nil {
		return c.Name()
	}
	return ""
}

type visitPair struct {
	x, y any
}

// DeepEqual reports structural equality. Arrays compare element by
// element; dictionaries compare key by key; everything else falls back to
// [Same].
//
// Cyclic structures are supported: a pair of containers already under
// comparison is assumed equal when reached again.
func DeepEqual(a, b Item) bool {
	return deepEqual(a, b, nil)
}

func deepEqual(a, b Item, seen map[visitPair]bool) bool {
	if Same(a, b) {
		return true
	}
	switch {
	case a.kind == KindArray && b.kind == KindArray:
		x, y := a.AsArray(), b.AsArray()
		if x.Len() != y.Len() {
			return false
		}
		pair := visitPair{x, y}
		if seen[pair] {
			return true
		}
		if seen == nil {
			seen = make(map[visitPair]bool)
		}
		seen[pair] = true
		for i := range x.Len() {
			if !deepEqual(x.At(i), y.At(i), seen) {
				return false
			}
		}
		return true
	case a.kind == KindDict && b.kind == KindDict:
		x, y := a.AsDict(), b.AsDict()
		if x.Len() != y.Len() {
			return false
		}
		pair := visitPair{x, y}
		if seen[pair] {
			return true
		}
		if seen == nil {
			seen = make(map[visitPair]bool)
		}
		seen[pair] = true
		for i := range x.Len() {
			k, v := x.EntryAt(i)
			w, ok := y.Get(k)
			if !ok || !deepEqual(v, w, seen) {
				return false
			}
		}
		return true
	}
	return false
}
