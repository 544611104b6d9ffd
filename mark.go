// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

// Marker is implemented by containers so that an external tracing
// collector can discover the items they hold. Mark calls visit once for
// every directly held item; transitive propagation is the collector's job
// (see [Reachable]).
type Marker interface {
	Mark(visit func(Item))
}

var (
	_ Marker = (*Array)(nil)
	_ Marker = (*List)(nil)
	_ Marker = (*Dict)(nil)
	_ Marker = (*Ref)(nil)
)

// Mark reports the referenced item.
func (r *Ref) Mark(visit func(Item)) { visit(r.Value) }

// markerOf returns the Marker behind an aggregate item, including host
// callables and objects that choose to implement it.
func markerOf(v Item) Marker {
	switch v.kind {
	case KindArray:
		return v.AsArray()
	case KindList:
		return v.AsList()
	case KindDict:
		return v.AsDict()
	case KindRef:
		return v.AsRef()
	case KindFunc, KindObject:
		m, _ := v.p.(Marker)
		return m
	}
	return nil
}

// Reachable visits every aggregate transitively reachable from root,
// root included, exactly once. Traversal is iterative, so arbitrarily deep
// or cyclic structures are safe.
func Reachable(root Item, visit func(Item)) {
	seen := make(map[Marker]bool)
	stack := []Item{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		m := markerOf(v)
		if m == nil || seen[m] {
			continue
		}
		seen[m] = true
		visit(v)
		m.Mark(func(child Item) {
			if markerOf(child) != nil {
				stack = append(stack, child)
			}
		})
	}
}
