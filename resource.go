// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

// Bracketed iterator handling: acquire → use → release, where release
// runs even if use returns an error or panics.

// WithIterator acquires an iterator on l, passes it to use and closes it
// afterwards.
func WithIterator(l *List, atTail bool, use func(*ListIterator) error) error {
	it := l.Iterator(atTail)
	defer it.Close()
	return use(it)
}

// Walk visits the nodes of l front to back. fn may erase the current node
// through the iterator; the walk then continues from the successor the
// iterator was moved to. A non-nil error from fn stops the walk.
func (l *List) Walk(fn func(it *ListIterator) error) error {
	return WithIterator(l, false, func(it *ListIterator) error {
		for it.Valid() {
			at := it.Node()
			if err := fn(it); err != nil {
				return err
			}
			if it.Node() == at {
				it.Next()
			}
		}
		return nil
	})
}

// RemoveIf erases every node whose value satisfies pred and returns the
// number of erased nodes. Other live iterators are repositioned as usual.
func (l *List) RemoveIf(pred func(Item) bool) int {
	n := 0
	_ = l.Walk(func(it *ListIterator) error {
		if pred(it.Value()) {
			it.Erase()
			n++
		}
		return nil
	})
	return n
}
