// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import "math"

// Dict is a minimal insertion-ordered dictionary. It covers what the
// engine needs from dictionaries: lookup, ordered traversal for structural
// equality, and reachability marking.
type Dict struct {
	keys  []Item
	vals  []Item
	index map[dictKey]int
	// Keys whose payload cannot be hashed (host objects, host callables)
	// are found by linear scan.
	opaque []int
}

type dictKey struct {
	kind Kind
	n    int64
	f    float64
	s    string
	r    Range
	p    any
}

func NewDict() *Dict {
	return &Dict{index: make(map[dictKey]int)}
}

func keyOf(k Item) (dictKey, bool) {
	switch k.kind {
	case KindNil:
		return dictKey{kind: KindNil}, true
	case KindBool, KindInt:
		return dictKey{kind: k.kind, n: k.n}, true
	case KindFloat:
		if k.f == math.Trunc(k.f) && math.Abs(k.f) < 1<<62 {
			return dictKey{kind: KindInt, n: int64(k.f)}, true
		}
		return dictKey{kind: KindFloat, f: k.f}, true
	case KindString:
		return dictKey{kind: KindString, s: k.AsString()}, true
	case KindRange:
		return dictKey{kind: KindRange, r: k.AsRange()}, true
	case KindArray:
		return dictKey{kind: KindArray, p: k.AsArray()}, true
	case KindList:
		return dictKey{kind: KindList, p: k.AsList()}, true
	case KindDict:
		return dictKey{kind: KindDict, p: k.AsDict()}, true
	case KindRef:
		return dictKey{kind: KindRef, p: k.AsRef()}, true
	}
	return dictKey{}, false
}

func (d *Dict) Len() int { return len(d.keys) }

func (d *Dict) find(k Item) int {
	if key, ok := keyOf(k); ok {
		if i, found := d.index[key]; found {
			return i
		}
		return -1
	}
	for _, i := range d.opaque {
		if Same(d.keys[i], k) {
			return i
		}
	}
	return -1
}

// Get returns the value stored under k.
func (d *Dict) Get(k Item) (Item, bool) {
	if i := d.find(k); i >= 0 {
		return d.vals[i], true
	}
	return Nil, false
}

// Set stores v under k, keeping the original position of an existing key.
func (d *Dict) Set(k, v Item) {
	k = k.ResetOob()
	if i := d.find(k); i >= 0 {
		d.vals[i] = v
		return
	}
	i := len(d.keys)
	d.keys = append(d.keys, k)
	d.vals = append(d.vals, v)
	if key, ok := keyOf(k); ok {
		d.index[key] = i
	} else {
		d.opaque = append(d.opaque, i)
	}
}

// Delete removes k and reports whether it was present.
func (d *Dict) Delete(k Item) bool {
	i := d.find(k)
	if i < 0 {
		return false
	}
	d.keys = append(d.keys[:i], d.keys[i+1:]...)
	d.vals = append(d.vals[:i], d.vals[i+1:]...)
	d.reindex()
	return true
}

func (d *Dict) reindex() {
	clear(d.index)
	d.opaque = d.opaque[:0]
	for i, k := range d.keys {
		if key, ok := keyOf(k); ok {
			d.index[key] = i
		} else {
			d.opaque = append(d.opaque, i)
		}
	}
}

// EntryAt returns the i-th entry in insertion order.
func (d *Dict) EntryAt(i int) (key, value Item) {
	return d.keys[i], d.vals[i]
}

// Mark reports every key and value to visit.
func (d *Dict) Mark(visit func(Item)) {
	for i := range d.keys {
		visit(d.keys[i])
		visit(d.vals[i])
	}
}
