// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Item snapshots in CBOR. Canonical encoding makes equal data encode to
// equal bytes, so snapshots can be compared and hashed.
//
// Functions are stored by name and resolved through a Library when
// decoding. Host objects and cyclic data cannot be encoded.

// maxWireDepth bounds the nesting accepted by the decoder. Each item
// level costs two CBOR levels.
const maxWireDepth = 4096

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("sigma: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
	dm, err := cbor.DecOptions{MaxNestedLevels: 2 * maxWireDepth}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("sigma: failed to create CBOR dec mode: %v", err))
	}
	cborDecMode = dm
}

type wireItem struct {
	Kind  Kind       `cbor:"k"`
	Oob   bool       `cbor:"o,omitempty"`
	Int   int64      `cbor:"i,omitempty"`
	Float float64    `cbor:"f,omitempty"`
	Str   string     `cbor:"s,omitempty"`
	Range *wireRange `cbor:"r,omitempty"`
	Items []wireItem `cbor:"a,omitempty"`
	Keys  []wireItem `cbor:"d,omitempty"`
}

type wireRange struct {
	Start int64 `cbor:"s"`
	End   int64 `cbor:"e,omitempty"`
	Step  int64 `cbor:"t,omitempty"`
	Open  bool  `cbor:"o,omitempty"`
}

// MarshalItem serializes v to canonical CBOR.
func MarshalItem(v Item) ([]byte, error) {
	w, err := toWire(v, make(map[any]bool))
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(w)
}

// UnmarshalItem deserializes an item. Function names are looked up in
// lib; a nil lib rejects functions.
func UnmarshalItem(data []byte, lib Library) (Item, error) {
	var w wireItem
	if err := cborDecMode.Unmarshal(data, &w); err != nil {
		return Nil, fmt.Errorf("sigma: unmarshal item: %w", err)
	}
	return fromWire(&w, lib)
}

func unsupported(op string, v Item) error {
	return newError(Unsupported, op, v.TypeName())
}

func toWire(v Item, open map[any]bool) (wireItem, error) {
	w := wireItem{Kind: v.kind, Oob: v.oob}
	switch v.kind {
	case KindNil:
	case KindBool, KindInt:
		w.Int = v.n
	case KindFloat:
		w.Float = v.f
	case KindString:
		w.Str = v.AsString()
	case KindRange:
		r := v.AsRange()
		w.Range = &wireRange{Start: r.Start, End: r.End, Step: r.Step, Open: r.Open}
	case KindFunc:
		w.Str = v.AsFunc().Name()
	case KindArray, KindList, KindDict, KindRef:
		if open[v.p] {
			return w, newError(Unsupported, "MarshalItem", "cyclic "+v.TypeName())
		}
		open[v.p] = true
		defer delete(open, v.p)
		var err error
		switch v.kind {
		case KindArray:
			w.Items, err = toWireSlice(v.AsArray().Items(), open)
		case KindList:
			var items []Item
			for n := v.AsList().First(); n != nil; n = n.Next() {
				items = append(items, n.Value)
			}
			w.Items, err = toWireSlice(items, open)
		case KindDict:
			d := v.AsDict()
			w.Keys, err = toWireSlice(d.keys, open)
			if err == nil {
				w.Items, err = toWireSlice(d.vals, open)
			}
		case KindRef:
			w.Items, err = toWireSlice([]Item{v.AsRef().Value}, open)
		}
		if err != nil {
			return w, err
		}
	default:
		return w, unsupported("MarshalItem", v)
	}
	return w, nil
}

func toWireSlice(items []Item, open map[any]bool) ([]wireItem, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]wireItem, len(items))
	for i, v := range items {
		w, err := toWire(v, open)
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

func fromWire(w *wireItem, lib Library) (Item, error) {
	var v Item
	switch w.Kind {
	case KindNil:
	case KindBool:
		v = Bool(w.Int != 0)
	case KindInt:
		v = Int(w.Int)
	case KindFloat:
		v = Float(w.Float)
	case KindString:
		v = Str(w.Str)
	case KindRange:
		if w.Range == nil {
			return Nil, newError(StructuralMismatch, "UnmarshalItem", "range without bounds")
		}
		v = Item{kind: KindRange, p: Range{Start: w.Range.Start, End: w.Range.End, Step: w.Range.Step, Open: w.Range.Open}}
	case KindFunc:
		fn, ok := lib.Lookup(w.Str)
		if !ok {
			return Nil, newError(Unsupported, "UnmarshalItem", "unknown function "+w.Str)
		}
		v = fn
	case KindArray:
		items, err := fromWireSlice(w.Items, lib)
		if err != nil {
			return Nil, err
		}
		v = ArrayOf(NewArrayFrom(items...))
	case KindList:
		items, err := fromWireSlice(w.Items, lib)
		if err != nil {
			return Nil, err
		}
		v = ListOf(NewList(items...))
	case KindDict:
		if len(w.Keys) != len(w.Items) {
			return Nil, newError(StructuralMismatch, "UnmarshalItem", "dictionary keys and values differ in length")
		}
		keys, err := fromWireSlice(w.Keys, lib)
		if err != nil {
			return Nil, err
		}
		vals, err := fromWireSlice(w.Items, lib)
		if err != nil {
			return Nil, err
		}
		d := NewDict()
		for i := range keys {
			d.Set(keys[i], vals[i])
		}
		v = DictOf(d)
	case KindRef:
		if len(w.Items) != 1 {
			return Nil, newError(StructuralMismatch, "UnmarshalItem", "reference without target")
		}
		inner, err := fromWire(&w.Items[0], lib)
		if err != nil {
			return Nil, err
		}
		v = NewRef(inner)
	default:
		return Nil, newError(Unsupported, "UnmarshalItem", w.Kind.String())
	}
	return v.WithOob(w.Oob), nil
}

func fromWireSlice(ws []wireItem, lib Library) ([]Item, error) {
	out := make([]Item, len(ws))
	for i := range ws {
		v, err := fromWire(&ws[i], lib)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
