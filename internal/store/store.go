package store

import (
	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
	"github.com/driftdesk/driftdesk/canvas-go/internal/typeid"
)

// DuplicateOffset is the world-unit offset applied to duplicated elements.
const DuplicateOffset = 12.0

// ChangeKind tags a change notification.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeUpdated
	ChangeRemoved
	ChangeReordered
	ChangeReplaced
)

// Change describes one committed store mutation. IDs lists the affected
// elements; it is nil for ChangeReplaced (everything changed).
type Change struct {
	Kind ChangeKind
	IDs  []string
}

// Listener observes committed mutations. Listeners fire synchronously after
// the mutation completes, never interleaved mid-mutation.
type Listener func(Change)

// Store is the canonical scene graph: single source of truth for the spatial
// index and all render nodes. All methods are single-goroutine by contract
// (the canvas event loop); the store does no locking of its own.
type Store struct {
	snap      Snapshot
	version   uint64
	listeners map[int]Listener
	nextSub   int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		snap:      EmptySnapshot(),
		listeners: map[int]Listener{},
	}
}

// Subscribe registers a listener and returns an unsubscribe function. The
// unsubscribe is idempotent.
func (s *Store) Subscribe(fn Listener) func() {
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		delete(s.listeners, id)
	}
}

func (s *Store) notify(c Change) {
	s.version++
	for _, fn := range s.listeners {
		fn(c)
	}
}

// Snapshot returns the current immutable snapshot.
func (s *Store) Snapshot() Snapshot { return s.snap }

// Version counts committed mutations. Equal values observed at two points
// in time mean no mutation landed in between.
func (s *Store) Version() uint64 { return s.version }

// Restore swaps in a previously captured snapshot (undo/redo).
func (s *Store) Restore(snap Snapshot) {
	s.snap = snap
	s.notify(Change{Kind: ChangeReplaced})
}

// Get returns the element for id.
func (s *Store) Get(id string) (element.Element, bool) { return s.snap.Get(id) }

// Has reports whether id is present.
func (s *Store) Has(id string) bool { return s.snap.Has(id) }

// Len returns the element count.
func (s *Store) Len() int { return s.snap.Len() }

// Order returns the paint order, back to front.
func (s *Store) Order() []string { return s.snap.Order() }

// All returns the elements in paint order.
func (s *Store) All() []element.Element { return s.snap.All() }

// GetMany resolves ids to elements, silently skipping stale ids.
func (s *Store) GetMany(ids []string) []element.Element {
	out := make([]element.Element, 0, len(ids))
	for _, id := range ids {
		if el, ok := s.snap.Get(id); ok {
			out = append(out, el)
		}
	}
	return out
}

// Add inserts el into the scene, by default at the top of the paint order.
// An empty id gets a fresh one assigned. Returns the stored element.
func (s *Store) Add(el element.Element) element.Element {
	return s.AddAt(el, -1)
}

// newID assigns the id family matching the element type.
func newID(t element.Type) string {
	if t == element.TypeConnector || t == element.TypeMindmapEdge {
		return typeid.NewConnectorID()
	}
	return typeid.NewElementID()
}

// AddAt inserts el at the given paint-order index (clamped; negative = end).
func (s *Store) AddAt(el element.Element, index int) element.Element {
	if el.ID == "" {
		el.ID = newID(el.Type)
	}
	if el.CreatedAt == 0 {
		el.CreatedAt = element.Now()
	}
	el.UpdatedAt = element.Now()

	s.snap = s.snap.withAdded(el, index)
	s.notify(Change{Kind: ChangeAdded, IDs: []string{el.ID}})
	return el
}

// AddMany inserts elements at the top of the paint order in slice order.
func (s *Store) AddMany(els []element.Element) []element.Element {
	if len(els) == 0 {
		return nil
	}
	out := make([]element.Element, 0, len(els))
	ids := make([]string, 0, len(els))
	for _, el := range els {
		if el.ID == "" {
			el.ID = newID(el.Type)
		}
		if el.CreatedAt == 0 {
			el.CreatedAt = element.Now()
		}
		el.UpdatedAt = element.Now()
		s.snap = s.snap.withAdded(el, -1)
		out = append(out, el)
		ids = append(ids, el.ID)
	}
	s.notify(Change{Kind: ChangeAdded, IDs: ids})
	return out
}

// Update applies a functional patch to the element for id. A missing id is
// a silent no-op: concurrent deletion during a gesture is expected and must
// not fail the gesture.
func (s *Store) Update(id string, patch func(*element.Element)) {
	el, ok := s.snap.Get(id)
	if !ok {
		return
	}
	next := el.Clone()
	patch(&next)
	next.ID = el.ID // id is immutable
	next.UpdatedAt = element.Now()
	s.snap = s.snap.withUpdated(next)
	s.notify(Change{Kind: ChangeUpdated, IDs: []string{id}})
}

// UpdateMany applies patches to several elements as one change notification.
// Stale ids are skipped.
func (s *Store) UpdateMany(patches map[string]func(*element.Element)) {
	if len(patches) == 0 {
		return
	}
	ids := make([]string, 0, len(patches))
	for id, patch := range patches {
		el, ok := s.snap.Get(id)
		if !ok {
			continue
		}
		next := el.Clone()
		patch(&next)
		next.ID = el.ID
		next.UpdatedAt = element.Now()
		s.snap = s.snap.withUpdated(next)
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return
	}
	s.notify(Change{Kind: ChangeUpdated, IDs: ids})
}

// Remove deletes the element and returns it. Removing a nonexistent id
// returns ok=false and leaves state unchanged.
func (s *Store) Remove(id string) (element.Element, bool) {
	el, ok := s.snap.Get(id)
	if !ok {
		return element.Element{}, false
	}
	s.snap = s.snap.withRemoved(id)
	s.notify(Change{Kind: ChangeRemoved, IDs: []string{id}})
	return el, true
}

// RemoveMany deletes the given ids, skipping stale ones, as one change.
func (s *Store) RemoveMany(ids []string) []element.Element {
	removed := make([]element.Element, 0, len(ids))
	removedIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		el, ok := s.snap.Get(id)
		if !ok {
			continue
		}
		s.snap = s.snap.withRemoved(id)
		removed = append(removed, el)
		removedIDs = append(removedIDs, id)
	}
	if len(removedIDs) > 0 {
		s.notify(Change{Kind: ChangeRemoved, IDs: removedIDs})
	}
	return removed
}

// Move reorders id to the given paint-order index without touching the map.
func (s *Store) Move(id string, index int) {
	if !s.snap.Has(id) {
		return
	}
	s.snap = s.snap.withMoved(id, index)
	s.notify(Change{Kind: ChangeReordered, IDs: []string{id}})
}

// BringToFront moves id to the top of the paint order.
func (s *Store) BringToFront(id string) {
	s.Move(id, s.snap.Len()-1)
}

// SendToBack moves id to the bottom of the paint order.
func (s *Store) SendToBack(id string) {
	s.Move(id, 0)
}

// Duplicate clones the element with a fresh id, offset by (dx, dy) in world
// units (position and any point-list geometry), and inserts it at the top.
// Returns the clone, or ok=false for a stale id.
func (s *Store) Duplicate(id string, dx, dy float64) (element.Element, bool) {
	el, ok := s.snap.Get(id)
	if !ok {
		return element.Element{}, false
	}
	clone := el.Clone()
	clone.ID = newID(clone.Type)
	if clone.Connector != nil {
		// A duplicated connector is detached from its anchors: it keeps
		// the resolved geometry but moves independently.
		clone.Connector.From.AnchorID = ""
		clone.Connector.To.AnchorID = ""
	}
	clone.Translate(dx, dy)
	clone.CreatedAt = element.Now()
	return s.Add(clone), true
}

// ReplaceAll atomically swaps the entire map and order. This is the only
// operation allowed to do so; it backs file load and undo-to-snapshot.
func (s *Store) ReplaceAll(elements map[string]element.Element, order []string) {
	s.snap = NewSnapshot(elements, order)
	s.notify(Change{Kind: ChangeReplaced})
}

// ContentBounds returns the union of all element bounds, for fit-to-content.
// Degenerate bounds (a horizontal connector has zero height) still count.
func (s *Store) ContentBounds() geom.Rect {
	var out geom.Rect
	for i, id := range s.snap.order {
		b := s.snap.elements[id].Bounds()
		if i == 0 {
			out = b
			continue
		}
		out = out.Union(b)
	}
	return out
}

// Descendants returns the transitive mindmap descendants of rootID, found
// by walking parent-id references across the whole map. The visited set
// guards against parent cycles, which the data model does not prevent.
func (s *Store) Descendants(rootID string) []string {
	childrenOf := map[string][]string{}
	for _, id := range s.snap.order {
		el := s.snap.elements[id]
		if el.Type == element.TypeMindmapNode && el.Mindmap != nil && el.Mindmap.ParentID != "" {
			childrenOf[el.Mindmap.ParentID] = append(childrenOf[el.Mindmap.ParentID], id)
		}
	}

	var out []string
	visited := map[string]bool{rootID: true}
	queue := append([]string(nil), childrenOf[rootID]...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		out = append(out, id)
		queue = append(queue, childrenOf[id]...)
	}
	return out
}
