// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import (
	"weak"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// ListNode is one link of a [List].
type ListNode struct {
	Value Item

	next *ListNode
	prev *ListNode
	list *List
}

func (n *ListNode) Next() *ListNode { return n.next }
func (n *ListNode) Prev() *ListNode { return n.prev }

// List is a doubly linked list of items with a registry of live
// iterators.
//
// Erasing a node repositions every registered iterator standing on it to
// the node's successor, or invalidates it when the node was the tail. The
// repositioning happens inside Erase, so no iterator can observe the
// erased node.
//
// The registry holds weak references: it never keeps an iterator alive.
// Iterators should still be closed when done so the registry stays small.
//
// A List is not safe for concurrent use.
type List struct {
	head *ListNode
	tail *ListNode
	size int

	iters *linkedhashset.Set // of weak.Pointer[ListIterator]
}

func NewList(items ...Item) *List {
	l := &List{}
	for _, v := range items {
		l.PushBack(v)
	}
	return l
}

func (l *List) Len() int    { return l.size }
func (l *List) Empty() bool { return l.size == 0 }

// First returns the head node, or nil for an empty list.
func (l *List) First() *ListNode { return l.head }

// Last returns the tail node, or nil for an empty list.
func (l *List) Last() *ListNode { return l.tail }

// Front returns the first value. An empty list yields [ErrEmpty].
func (l *List) Front() (Item, error) {
	if l.head == nil {
		return Nil, newError(EmptyPrecondition, "List.Front", "")
	}
	return l.head.Value, nil
}

// Back returns the last value. An empty list yields [ErrEmpty].
func (l *List) Back() (Item, error) {
	if l.tail == nil {
		return Nil, newError(EmptyPrecondition, "List.Back", "")
	}
	return l.tail.Value, nil
}

func (l *List) PushBack(v Item) *ListNode  { return l.Insert(nil, v) }
func (l *List) PushFront(v Item) *ListNode { return l.Insert(l.head, v) }

// PopBack removes and returns the last value.
func (l *List) PopBack() (Item, error) {
	if l.tail == nil {
		return Nil, newError(EmptyPrecondition, "List.PopBack", "")
	}
	v := l.tail.Value
	l.Erase(l.tail)
	return v, nil
}

// PopFront removes and returns the first value.
func (l *List) PopFront() (Item, error) {
	if l.head == nil {
		return Nil, newError(EmptyPrecondition, "List.PopFront", "")
	}
	v := l.head.Value
	l.Erase(l.head)
	return v, nil
}

// Insert places v before the node before; a nil node appends at the tail.
// It returns the new node.
func (l *List) Insert(before *ListNode, v Item) *ListNode {
	if before != nil && before.list != l {
		panic("sigma: list insert before a foreign node")
	}
	n := &ListNode{Value: v, list: l}
	if before == nil {
		n.prev = l.tail
		if l.tail != nil {
			l.tail.next = n
		} else {
			l.head = n
		}
		l.tail = n
	} else {
		n.next = before
		n.prev = before.prev
		if before.prev != nil {
			before.prev.next = n
		} else {
			l.head = n
		}
		before.prev = n
	}
	l.size++
	return n
}

// Erase unlinks node and returns the node now occupying its position, or
// nil if node was the tail. Iterators on node move to that successor.
// It panics if node does not belong to l.
func (l *List) Erase(node *ListNode) *ListNode {
	if node == nil || node.list != l {
		panic("sigma: list erase of a foreign node")
	}
	next := node.next
	if node.prev != nil {
		node.prev.next = next
	} else {
		l.head = next
	}
	if next != nil {
		next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	l.size--
	l.notifyErase(node, next)
	node.next, node.prev, node.list = nil, nil, nil
	return next
}

// Clear removes every node and invalidates every live iterator.
func (l *List) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		n.next, n.prev, n.list = nil, nil, nil
		n = next
	}
	l.head, l.tail, l.size = nil, nil, 0
	l.eachIterator(func(it *ListIterator) { it.Invalidate() })
}

// Clone returns a shallow copy: new nodes holding the same items.
func (l *List) Clone() *List {
	c := &List{}
	for n := l.head; n != nil; n = n.next {
		c.PushBack(n.Value)
	}
	return c
}

// Mark reports every value to visit.
func (l *List) Mark(visit func(Item)) {
	for n := l.head; n != nil; n = n.next {
		visit(n.Value)
	}
}

// Iterator returns a registered iterator on the head, or on the tail when
// atTail is set. On an empty list the iterator starts invalid.
func (l *List) Iterator(atTail bool) *ListIterator {
	it := &ListIterator{owner: l, node: l.head}
	if atTail {
		it.node = l.tail
	}
	l.register(it)
	return it
}

// Iterators returns the number of live registered iterators.
func (l *List) Iterators() int {
	n := 0
	l.eachIterator(func(*ListIterator) { n++ })
	return n
}

func (l *List) register(it *ListIterator) {
	if l.iters == nil {
		l.iters = linkedhashset.New()
	}
	it.self = weak.Make(it)
	l.iters.Add(it.self)
}

func (l *List) unregister(it *ListIterator) {
	if l.iters != nil {
		l.iters.Remove(it.self)
	}
}

// eachIterator visits live iterators in registration order and prunes
// entries whose iterator was collected without being closed.
func (l *List) eachIterator(fn func(*ListIterator)) {
	if l.iters == nil || l.iters.Empty() {
		return
	}
	for _, v := range l.iters.Values() {
		wp := v.(weak.Pointer[ListIterator])
		it := wp.Value()
		if it == nil {
			l.iters.Remove(wp)
			continue
		}
		fn(it)
	}
}

func (l *List) notifyErase(node, next *ListNode) {
	l.eachIterator(func(it *ListIterator) {
		if it.node == node {
			it.node = next
		}
	})
}

// ListIterator walks a [List] and survives erasure of the node it stands
// on. Close deregisters it from its list.
type ListIterator struct {
	owner *List
	node  *ListNode
	self  weak.Pointer[ListIterator]
}

// Valid reports whether the iterator stands on a node.
func (it *ListIterator) Valid() bool { return it.node != nil }

// Node returns the current node, or nil when invalid.
func (it *ListIterator) Node() *ListNode { return it.node }

// Owner returns the list the iterator was created on.
func (it *ListIterator) Owner() *List { return it.owner }

// Value returns the current item, or Nil when invalid.
func (it *ListIterator) Value() Item {
	if it.node == nil {
		return Nil
	}
	return it.node.Value
}

// Set replaces the current item.
func (it *ListIterator) Set(v Item) bool {
	if it.node == nil {
		return false
	}
	it.node.Value = v
	return true
}

// Next advances and reports whether the iterator is still valid.
func (it *ListIterator) Next() bool {
	if it.node == nil {
		return false
	}
	it.node = it.node.next
	return it.node != nil
}

// Prev steps back and reports whether the iterator is still valid.
func (it *ListIterator) Prev() bool {
	if it.node == nil {
		return false
	}
	it.node = it.node.prev
	return it.node != nil
}

func (it *ListIterator) HasNext() bool { return it.node != nil && it.node.next != nil }
func (it *ListIterator) HasPrev() bool { return it.node != nil && it.node.prev != nil }

// Erase removes the current node. This iterator, and every other one on
// the same node, moves to the successor.
func (it *ListIterator) Erase() bool {
	if it.node == nil || it.owner == nil {
		return false
	}
	it.owner.Erase(it.node)
	return true
}

// Insert places v before the current node, or at the tail when the
// iterator is invalid.
func (it *ListIterator) Insert(v Item) bool {
	if it.owner == nil {
		return false
	}
	it.owner.Insert(it.node, v)
	return true
}

// Invalidate detaches the iterator from its node.
func (it *ListIterator) Invalidate() { it.node = nil }

// Equal reports whether both iterators stand on the same node of the same
// list.
func (it *ListIterator) Equal(other *ListIterator) bool {
	return it.owner == other.owner && it.node == other.node
}

// Clone returns a new registered iterator at the same position.
func (it *ListIterator) Clone() *ListIterator {
	c := &ListIterator{owner: it.owner, node: it.node}
	if it.owner != nil {
		it.owner.register(c)
	}
	return c
}

// Close deregisters the iterator and invalidates it.
func (it *ListIterator) Close() {
	if it.owner != nil {
		it.owner.unregister(it)
		it.owner = nil
	}
	it.node = nil
}
