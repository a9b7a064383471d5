package store

import (
	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
)

// Snapshot is an immutable view of the scene graph: the id -> element map
// plus the back-to-front paint order. Mutating operations return a fresh
// Snapshot and never touch a previously returned one, so undo/redo can
// retain old snapshots without deep-cloning the world on every edit.
type Snapshot struct {
	elements map[string]element.Element
	order    []string
}

// EmptySnapshot returns a snapshot with no elements.
func EmptySnapshot() Snapshot {
	return Snapshot{
		elements: map[string]element.Element{},
		order:    nil,
	}
}

// NewSnapshot builds a snapshot from an element map and an explicit paint
// order. Ids in order without a map entry are dropped; map entries missing
// from order are appended at the top, so the order/map pairing invariant
// holds for any input.
func NewSnapshot(elements map[string]element.Element, order []string) Snapshot {
	m := make(map[string]element.Element, len(elements))
	for id, el := range elements {
		m[id] = el
	}

	out := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, id := range order {
		if _, ok := m[id]; ok && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	for id := range m {
		if !seen[id] {
			out = append(out, id)
		}
	}

	return Snapshot{elements: m, order: out}
}

// Len returns the number of elements.
func (s Snapshot) Len() int { return len(s.elements) }

// Get returns the element for id.
func (s Snapshot) Get(id string) (element.Element, bool) {
	el, ok := s.elements[id]
	return el, ok
}

// Has reports whether id is present.
func (s Snapshot) Has(id string) bool {
	_, ok := s.elements[id]
	return ok
}

// Order returns the paint order, back to front. The caller must not mutate
// the returned slice.
func (s Snapshot) Order() []string { return s.order }

// IndexOf returns the paint-order index of id, or -1.
func (s Snapshot) IndexOf(id string) int {
	for i, oid := range s.order {
		if oid == id {
			return i
		}
	}
	return -1
}

// All returns the elements in paint order.
func (s Snapshot) All() []element.Element {
	out := make([]element.Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.elements[id])
	}
	return out
}

// Elements returns a copy of the id -> element map.
func (s Snapshot) Elements() map[string]element.Element {
	out := make(map[string]element.Element, len(s.elements))
	for id, el := range s.elements {
		out[id] = el
	}
	return out
}

// clone copies map and order so the receiver stays untouched.
func (s Snapshot) clone() Snapshot {
	m := make(map[string]element.Element, len(s.elements)+1)
	for id, el := range s.elements {
		m[id] = el
	}
	return Snapshot{
		elements: m,
		order:    append([]string(nil), s.order...),
	}
}

// withAdded inserts el at clamp(index, 0, len). A negative index means end
// (top of paint order).
func (s Snapshot) withAdded(el element.Element, index int) Snapshot {
	n := s.clone()
	if _, exists := n.elements[el.ID]; exists {
		// Re-adding an existing id replaces the element in place.
		n.elements[el.ID] = el
		return n
	}
	n.elements[el.ID] = el

	if index < 0 || index > len(n.order) {
		index = len(n.order)
	}
	n.order = append(n.order, "")
	copy(n.order[index+1:], n.order[index:])
	n.order[index] = el.ID
	return n
}

// withRemoved excises id from both structures.
func (s Snapshot) withRemoved(id string) Snapshot {
	n := s.clone()
	delete(n.elements, id)
	for i, oid := range n.order {
		if oid == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	return n
}

// withUpdated replaces the element for id.
func (s Snapshot) withUpdated(el element.Element) Snapshot {
	n := s.clone()
	n.elements[el.ID] = el
	return n
}

// withMoved reorders id to clamp(index, 0, len-1) without touching the map.
func (s Snapshot) withMoved(id string, index int) Snapshot {
	cur := s.IndexOf(id)
	if cur < 0 {
		return s
	}
	n := s.clone()
	n.order = append(n.order[:cur], n.order[cur+1:]...)
	if index < 0 {
		index = 0
	}
	if index > len(n.order) {
		index = len(n.order)
	}
	n.order = append(n.order, "")
	copy(n.order[index+1:], n.order[index:])
	n.order[index] = id
	return n
}
