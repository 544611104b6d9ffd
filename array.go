// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

// ArrayGrowth is the allocation block of [Array]. Capacity always grows to
// a multiple of this block.
const ArrayGrowth = 16

// Array is a contiguous growable vector of items. It is the base sequence
// type consumed by every combinator.
//
// All index-taking methods accept negative indices counting from the end
// (-1 is the last element). Range methods validate their arguments first
// and leave the array untouched on failure.
//
// An Array is not safe for concurrent use. A caller must not mutate an
// array from elsewhere while a combinator is iterating it.
type Array struct {
	data []Item
}

// NewArray returns an empty array with room for prealloc items.
func NewArray(prealloc int) *Array {
	if prealloc <= 0 {
		return &Array{}
	}
	return &Array{data: make([]Item, 0, prealloc)}
}

// NewArrayFrom returns an array holding a copy of items.
func NewArrayFrom(items ...Item) *Array {
	a := NewArray(len(items))
	a.data = append(a.data, items...)
	return a
}

// normIndex maps a negative index to its position from the end.
func normIndex(i, n int) int {
	if i < 0 {
		return n + i
	}
	return i
}

// blockSize rounds n up to the next growth block.
func blockSize(n int) int {
	return (n/ArrayGrowth + 1) * ArrayGrowth
}

// grow ensures capacity for need items. Capacity at least doubles so that
// appends are amortized O(1).
func (a *Array) grow(need int) {
	if need <= cap(a.data) {
		return
	}
	c := max(need, 2*cap(a.data))
	if c%ArrayGrowth != 0 {
		c = blockSize(c)
	}
	mem := make([]Item, len(a.data), c)
	copy(mem, a.data)
	a.data = mem
}

func (a *Array) Len() int { return len(a.data) }
func (a *Array) Cap() int { return cap(a.data) }

// Items returns the live backing slice. Callers must treat it as read-only
// and must not retain it across mutations.
func (a *Array) Items() []Item { return a.data }

// At returns the element at a non-negative index i.
// It panics if i is out of range, like a slice index.
func (a *Array) At(i int) Item { return a.data[i] }

// Get returns the element at i, which may be negative.
func (a *Array) Get(i int) (Item, error) {
	i = normIndex(i, len(a.data))
	if i < 0 || i >= len(a.data) {
		return Nil, newError(OutOfRange, "Array.Get", "")
	}
	return a.data[i], nil
}

// Set replaces the element at i, which may be negative.
func (a *Array) Set(i int, v Item) error {
	i = normIndex(i, len(a.data))
	if i < 0 || i >= len(a.data) {
		return newError(OutOfRange, "Array.Set", "")
	}
	a.data[i] = v
	return nil
}

// Front returns the first element. An empty array yields [ErrEmpty].
func (a *Array) Front() (Item, error) {
	if len(a.data) == 0 {
		return Nil, newError(EmptyPrecondition, "Array.Front", "")
	}
	return a.data[0], nil
}

// Back returns the last element. An empty array yields [ErrEmpty].
func (a *Array) Back() (Item, error) {
	if len(a.data) == 0 {
		return Nil, newError(EmptyPrecondition, "Array.Back", "")
	}
	return a.data[len(a.data)-1], nil
}

func (a *Array) Append(v Item) {
	a.grow(len(a.data) + 1)
	a.data = append(a.data, v)
}

func (a *Array) Prepend(v Item) {
	a.grow(len(a.data) + 1)
	a.data = append(a.data, Nil)
	copy(a.data[1:], a.data)
	a.data[0] = v
}

// Merge appends the contents of other.
func (a *Array) Merge(other *Array) {
	if other.Len() == 0 {
		return
	}
	a.grow(len(a.data) + other.Len())
	a.data = append(a.data, other.data...)
}

// MergeFront inserts the contents of other at the start.
func (a *Array) MergeFront(other *Array) {
	if other.Len() == 0 {
		return
	}
	_ = a.InsertArray(other, 0)
}

// Insert places v at pos, shifting later elements. pos must fall in
// [0, Len()] after normalization.
func (a *Array) Insert(v Item, pos int) error {
	pos = normIndex(pos, len(a.data))
	if pos < 0 || pos > len(a.data) {
		return newError(OutOfRange, "Array.Insert", "")
	}
	a.grow(len(a.data) + 1)
	a.data = append(a.data, Nil)
	copy(a.data[pos+1:], a.data[pos:])
	a.data[pos] = v
	return nil
}

// InsertArray places the whole of other at pos.
func (a *Array) InsertArray(other *Array, pos int) error {
	pos = normIndex(pos, len(a.data))
	if pos < 0 || pos > len(a.data) {
		return newError(OutOfRange, "Array.InsertArray", "")
	}
	n := other.Len()
	if n == 0 {
		return nil
	}
	src := other.data
	if other == a {
		src = append([]Item(nil), other.data...)
	}
	size := len(a.data)
	a.grow(size + n)
	a.data = a.data[:size+n]
	copy(a.data[pos+n:], a.data[pos:size])
	copy(a.data[pos:], src)
	return nil
}

// InsertSpace opens n nil slots at pos.
func (a *Array) InsertSpace(pos, n int) error {
	if n < 0 {
		return newError(StructuralMismatch, "Array.InsertSpace", "")
	}
	pos = normIndex(pos, len(a.data))
	if pos < 0 || pos > len(a.data) {
		return newError(OutOfRange, "Array.InsertSpace", "")
	}
	if n == 0 {
		return nil
	}
	size := len(a.data)
	a.grow(size + n)
	a.data = a.data[:size+n]
	copy(a.data[pos+n:], a.data[pos:size])
	clear(a.data[pos : pos+n])
	return nil
}

// Remove deletes the elements in [first, last). When first > last the
// range is read backwards and covers [last, first] inclusive.
func (a *Array) Remove(first, last int) error {
	size := len(a.data)
	first = normIndex(first, size)
	if first < 0 || first >= size {
		return newError(OutOfRange, "Array.Remove", "")
	}
	last = normIndex(last, size)
	if last < 0 || last > size {
		return newError(StructuralMismatch, "Array.Remove", "")
	}
	if first > last {
		first, last = last, first+1
	}
	n := copy(a.data[first:], a.data[last:])
	clear(a.data[first+n:])
	a.data = a.data[:first+n]
	return nil
}

// RemoveAt deletes the single element at i.
func (a *Array) RemoveAt(i int) error {
	size := len(a.data)
	i = normIndex(i, size)
	if i < 0 || i >= size {
		return newError(OutOfRange, "Array.RemoveAt", "")
	}
	copy(a.data[i:], a.data[i+1:])
	a.data[size-1] = Nil
	a.data = a.data[:size-1]
	return nil
}

// Find returns the index of the first element identical to v, or -1.
// Equality is scalar equality or aggregate identity; see [Same].
func (a *Array) Find(v Item) int {
	for i, e := range a.data {
		if Same(v, e) {
			return i
		}
	}
	return -1
}

// Change replaces [begin, end) with the contents of other (slice
// assignment). A reversed range begin > end replaces [end, begin].
func (a *Array) Change(other *Array, begin, end int) error {
	size := len(a.data)
	begin = normIndex(begin, size)
	if begin < 0 || begin > size {
		return newError(OutOfRange, "Array.Change", "")
	}
	end = normIndex(end, size)
	if end < 0 || end > size {
		return newError(StructuralMismatch, "Array.Change", "")
	}
	if begin > end {
		begin, end = end, begin+1
	}
	src := other.data
	if other == a {
		src = append([]Item(nil), other.data...)
	}
	tail := append([]Item(nil), a.data[end:]...)
	newSize := size - (end - begin) + len(src)
	if newSize > size {
		a.grow(newSize)
	}
	a.data = a.data[:begin]
	a.data = append(a.data, src...)
	a.data = append(a.data, tail...)
	if newSize < size {
		clear(a.data[newSize:size])
	}
	return nil
}

// Partition returns a fresh array holding [start, end). When end < start
// the result is the reversed run from start down to end inclusive.
func (a *Array) Partition(start, end int) (*Array, error) {
	size := len(a.data)
	start = normIndex(start, size)
	end = normIndex(end, size)
	if start == end && start >= 0 && start <= size {
		return NewArray(0), nil
	}
	if start < 0 || start >= size {
		return nil, newError(OutOfRange, "Array.Partition", "")
	}
	if end < 0 || end > size {
		return nil, newError(StructuralMismatch, "Array.Partition", "")
	}
	if end < start {
		out := NewArray(start - end + 1)
		for i := start; i >= end; i-- {
			out.data = append(out.data, a.data[i])
		}
		return out, nil
	}
	return NewArrayFrom(a.data[start:end]...), nil
}

// Resize sets the length to n. Grown slots are nil; a size of zero
// releases the buffer.
func (a *Array) Resize(n int) {
	switch {
	case n <= 0:
		a.data = nil
	case n > cap(a.data):
		mem := make([]Item, n, blockSize(n))
		copy(mem, a.data)
		a.data = mem
	case n > len(a.data):
		size := len(a.data)
		a.data = a.data[:n]
		clear(a.data[size:])
	default:
		clear(a.data[n:])
		a.data = a.data[:n]
	}
}

// Reserve makes room for at least n items without changing the length.
func (a *Array) Reserve(n int) {
	if n > cap(a.data) {
		mem := make([]Item, len(a.data), n)
		copy(mem, a.data)
		a.data = mem
	}
}

// Compact drops unused capacity.
func (a *Array) Compact() {
	if len(a.data) == 0 {
		a.data = nil
		return
	}
	if len(a.data) < cap(a.data) {
		a.data = append([]Item(nil), a.data...)
	}
}

// CopyOnto copies up to amount items of src starting at first onto a
// starting at from, growing a when needed. amount is clamped to the end
// of src.
func (a *Array) CopyOnto(from int, src *Array, first, amount int) error {
	if first < 0 || first > src.Len() || amount < 0 {
		return newError(StructuralMismatch, "Array.CopyOnto", "")
	}
	if from < 0 || from > len(a.data) {
		return newError(OutOfRange, "Array.CopyOnto", "")
	}
	amount = min(amount, src.Len()-first)
	chunk := src.data[first : first+amount]
	if src == a {
		chunk = append([]Item(nil), chunk...)
	}
	if from+amount > len(a.data) {
		a.Resize(from + amount)
	}
	copy(a.data[from:], chunk)
	return nil
}

// Clone returns a shallow copy.
func (a *Array) Clone() *Array {
	return NewArrayFrom(a.data...)
}

// Mark reports every element to visit.
func (a *Array) Mark(visit func(Item)) {
	for _, v := range a.data {
		visit(v)
	}
}
