// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import (
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the payload carried by an [Item].
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindRange
	KindArray
	KindList
	KindDict
	KindObject
	KindFunc
	KindRef
)

var kindNames = [...]string{
	KindNil:    "Nil",
	KindBool:   "Boolean",
	KindInt:    "Integer",
	KindFloat:  "Numeric",
	KindString: "String",
	KindRange:  "Range",
	KindArray:  "Array",
	KindList:   "List",
	KindDict:   "Dictionary",
	KindObject: "Object",
	KindFunc:   "Function",
	KindRef:    "Reference",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Item is a tagged runtime value.
//
// The out-of-band flag is carried beside the payload, never inside it:
// any kind of value can be marked as a control signal and unmarked again
// without changing what it carries.
//
// Aggregates (arrays, lists, dictionaries, references) are held by
// pointer. Copying an Item shares the aggregate; it never clones it.
type Item struct {
	kind Kind
	oob  bool
	n    int64
	f    float64
	p    any
}

// Range is a numeric interval used by [Times].
// Step 0 means "natural direction" and is resolved by the consumer.
type Range struct {
	Start int64
	End   int64
	Step  int64
	Open  bool
}

// Ref is a mutable cell. Passing a Ref lets a callee write back into the
// caller's variable, which is how by-reference parameters are expressed.
type Ref struct {
	Value Item
}

// Object is an opaque host value. Objects are always true.
type Object = any

// Nil is the nil item.
var Nil = Item{}

var (
	True  = Item{kind: KindBool, n: 1}
	False = Item{kind: KindBool}
)

func Bool(b bool) Item {
	if b {
		return True
	}
	return False
}

func Int(i int64) Item     { return Item{kind: KindInt, n: i} }
func Float(f float64) Item { return Item{kind: KindFloat, f: f} }
func Str(s string) Item    { return Item{kind: KindString, p: s} }

// RangeOf returns a closed range item.
func RangeOf(start, end, step int64) Item {
	return Item{kind: KindRange, p: Range{Start: start, End: end, Step: step}}
}

// OpenRange returns a range with no upper bound.
func OpenRange(start int64) Item {
	return Item{kind: KindRange, p: Range{Start: start, Open: true}}
}

func ArrayOf(a *Array) Item     { return Item{kind: KindArray, p: a} }
func ListOf(l *List) Item       { return Item{kind: KindList, p: l} }
func DictOf(d *Dict) Item       { return Item{kind: KindDict, p: d} }
func ObjectOf(o Object) Item    { return Item{kind: KindObject, p: o} }
func FuncOf(c Callable) Item    { return Item{kind: KindFunc, p: c} }
func RefOf(r *Ref) Item         { return Item{kind: KindRef, p: r} }
func NewRef(v Item) Item        { return RefOf(&Ref{Value: v}) }
func Arr(items ...Item) Item    { return ArrayOf(NewArrayFrom(items...)) }
func Oob(v Item) Item           { return v.SetOob() }
func (v Item) Kind() Kind       { return v.kind }
func (v Item) TypeName() string { return v.kind.String() }

func (v Item) IsNil() bool     { return v.kind == KindNil }
func (v Item) IsBool() bool    { return v.kind == KindBool }
func (v Item) IsInt() bool     { return v.kind == KindInt }
func (v Item) IsFloat() bool   { return v.kind == KindFloat }
func (v Item) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }
func (v Item) IsString() bool  { return v.kind == KindString }
func (v Item) IsRange() bool   { return v.kind == KindRange }
func (v Item) IsArray() bool   { return v.kind == KindArray }
func (v Item) IsList() bool    { return v.kind == KindList }
func (v Item) IsDict() bool    { return v.kind == KindDict }
func (v Item) IsObject() bool  { return v.kind == KindObject }
func (v Item) IsFunc() bool    { return v.kind == KindFunc }
func (v Item) IsRef() bool     { return v.kind == KindRef }

// IsOrdinal reports whether v is an integer or a float.
func (v Item) IsOrdinal() bool { return v.IsNumeric() }

// IsAggregate reports whether v refers to a heap container.
func (v Item) IsAggregate() bool {
	switch v.kind {
	case KindArray, KindList, KindDict, KindRef:
		return true
	}
	return false
}

func (v Item) AsBool() bool     { return v.n != 0 }
func (v Item) AsInt() int64     { return v.n }
func (v Item) AsFloat() float64 { return v.f }
func (v Item) AsString() string { s, _ := v.p.(string); return s }
func (v Item) AsRange() Range   { r, _ := v.p.(Range); return r }
func (v Item) AsArray() *Array  { a, _ := v.p.(*Array); return a }
func (v Item) AsList() *List    { l, _ := v.p.(*List); return l }
func (v Item) AsDict() *Dict    { d, _ := v.p.(*Dict); return d }
func (v Item) AsObject() Object { return v.p }
func (v Item) AsFunc() Callable { c, _ := v.p.(Callable); return c }
func (v Item) AsRef() *Ref      { r, _ := v.p.(*Ref); return r }

// ForceInt converts numeric items to int64, truncating floats.
// Other kinds yield 0.
func (v Item) ForceInt() int64 {
	switch v.kind {
	case KindInt, KindBool:
		return v.n
	case KindFloat:
		return int64(v.f)
	}
	return 0
}

// ForceFloat converts numeric items to float64. Other kinds yield 0.
func (v Item) ForceFloat() float64 {
	switch v.kind {
	case KindInt, KindBool:
		return float64(v.n)
	case KindFloat:
		return v.f
	}
	return 0
}

// Deref follows a reference; other items are returned unchanged.
func (v Item) Deref() Item {
	if r := v.AsRef(); r != nil {
		return r.Value
	}
	return v
}

// IsTrue applies the truth check: nil, false, numeric zero, the empty
// string and empty containers are false; everything else is true.
func (v Item) IsTrue() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool, KindInt:
		return v.n != 0
	case KindFloat:
		return v.f != 0
	case KindString:
		return v.AsString() != ""
	case KindArray:
		return v.AsArray().Len() > 0
	case KindList:
		return !v.AsList().Empty()
	case KindDict:
		return v.AsDict().Len() > 0
	}
	return true
}

// IsCallable reports whether v can be invoked: a function, or an array
// whose first element is callable (a sigma). An array whose chain of
// first elements loops back on itself is not callable.
func (v Item) IsCallable() bool {
	h, ok := headOf(v)
	return ok && h.kind == KindFunc && h.AsFunc() != nil
}

// headOf follows first elements through nested arrays and returns the
// first non-array item. It reports false for an empty array on the way
// or for a head chain that forms a cycle.
func headOf(v Item) (Item, bool) {
	slow := v
	for i := 0; v.kind == KindArray; i++ {
		a := v.AsArray()
		if a.Len() == 0 {
			return Nil, false
		}
		v = a.At(0)
		if i%2 == 1 {
			slow = slow.AsArray().At(0)
		}
		if v.kind == KindArray && v.AsArray() == slow.AsArray() {
			return Nil, false
		}
	}
	return v, true
}

// IsOob reports whether v carries the out-of-band marker.
func (v Item) IsOob() bool { return v.oob }

// SetOob returns v marked as out-of-band.
func (v Item) SetOob() Item { v.oob = true; return v }

// ResetOob returns v with the out-of-band marker cleared.
func (v Item) ResetOob() Item { v.oob = false; return v }

// WithOob returns v with the out-of-band marker set to b.
func (v Item) WithOob(b bool) Item { v.oob = b; return v }

// IsOobInt reports whether v is an out-of-band integer equal to n.
// Loop combinators use oob 0 and oob 1 as break and continue signals.
func (v Item) IsOobInt(n int64) bool {
	return v.oob && v.kind == KindInt && v.n == n
}

// String renders v for diagnostics. Cycles print as "...".
func (v Item) String() string {
	var b strings.Builder
	formatItem(&b, v, make(map[any]bool))
	return b.String()
}

func formatItem(b *strings.Builder, v Item, seen map[any]bool) {
	if v.oob {
		b.WriteString("oob(")
		defer b.WriteByte(')')
	}
	switch v.kind {
	case KindNil:
		b.WriteString("Nil")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.n != 0))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.n, 10))
	case KindFloat:
		if v.f == math.Trunc(v.f) && !math.IsInf(v.f, 0) && math.Abs(v.f) < 1e15 {
			b.WriteString(strconv.FormatFloat(v.f, 'f', 1, 64))
		} else {
			b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
		}
	case KindString:
		b.WriteString(strconv.Quote(v.AsString()))
	case KindRange:
		r := v.AsRange()
		b.WriteByte('[')
		b.WriteString(strconv.FormatInt(r.Start, 10))
		b.WriteByte(':')
		if !r.Open {
			b.WriteString(strconv.FormatInt(r.End, 10))
			if r.Step != 0 {
				b.WriteByte(':')
				b.WriteString(strconv.FormatInt(r.Step, 10))
			}
		}
		b.WriteByte(']')
	case KindArray:
		a := v.AsArray()
		if seen[a] {
			b.WriteString("[...]")
			return
		}
		seen[a] = true
		b.WriteByte('[')
		for i, e := range a.Items() {
			if i > 0 {
				b.WriteString(", ")
			}
			formatItem(b, e, seen)
		}
		b.WriteByte(']')
		delete(seen, a)
	case KindList:
		l := v.AsList()
		if seen[l] {
			b.WriteString("List(...)")
			return
		}
		seen[l] = true
		b.WriteString("List(")
		i := 0
		for n := l.First(); n != nil; n = n.Next() {
			if i > 0 {
				b.WriteString(", ")
			}
			formatItem(b, n.Value, seen)
			i++
		}
		b.WriteByte(')')
		delete(seen, l)
	case KindDict:
		d := v.AsDict()
		if seen[d] {
			b.WriteString("[...=>...]")
			return
		}
		seen[d] = true
		b.WriteByte('[')
		if d.Len() == 0 {
			b.WriteString("=>")
		}
		for i := range d.Len() {
			if i > 0 {
				b.WriteString(", ")
			}
			k, val := d.EntryAt(i)
			formatItem(b, k, seen)
			b.WriteString(" => ")
			formatItem(b, val, seen)
		}
		b.WriteByte(']')
		delete(seen, d)
	case KindFunc:
		b.WriteString("Function ")
		if c := v.AsFunc(); c != nil {
			b.WriteString(c.Name())
		}
	case KindRef:
		r := v.AsRef()
		b.WriteString("$")
		if seen[r] {
			b.WriteString("...")
			return
		}
		seen[r] = true
		formatItem(b, r.Value, seen)
		delete(seen, r)
	default:
		b.WriteString("Object")
	}
}
