// Package selection tracks the set of selected element ids. The version
// counter lets dependents detect staleness without deep comparison.
package selection

import "github.com/driftdesk/driftdesk/canvas-go/internal/store"

type Selection struct {
	ids          map[string]bool
	lastSelected string
	version      uint64
}

func New() *Selection {
	return &Selection{ids: map[string]bool{}}
}

// Version returns the monotonic change counter.
func (s *Selection) Version() uint64 { return s.version }

// Count returns the number of selected ids.
func (s *Selection) Count() int { return len(s.ids) }

// IsSelected reports whether id is in the set.
func (s *Selection) IsSelected(id string) bool { return s.ids[id] }

// LastSelected returns the most recently selected id, or "".
func (s *Selection) LastSelected() string { return s.lastSelected }

// IDs returns the selected ids. Order is unspecified.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// Set replaces the set wholesale.
func (s *Selection) Set(ids []string) {
	s.ids = make(map[string]bool, len(ids))
	for _, id := range ids {
		s.ids[id] = true
	}
	if len(ids) > 0 {
		s.lastSelected = ids[len(ids)-1]
	} else {
		s.lastSelected = ""
	}
	s.version++
}

// Add inserts id into the set.
func (s *Selection) Add(id string) {
	if s.ids[id] {
		return
	}
	s.ids[id] = true
	s.lastSelected = id
	s.version++
}

// Remove drops id from the set. lastSelected falls back to the max of the
// remaining ids so dependents keep a stable reference element.
func (s *Selection) Remove(id string) {
	if !s.ids[id] {
		return
	}
	delete(s.ids, id)
	if s.lastSelected == id {
		s.lastSelected = maxID(s.ids)
	}
	s.version++
}

// Toggle flips membership of id.
func (s *Selection) Toggle(id string) {
	if s.ids[id] {
		s.Remove(id)
	} else {
		s.Add(id)
	}
}

// Clear empties the set and resets lastSelected to "". There is no
// fallback to the first element in paint order.
func (s *Selection) Clear() {
	if len(s.ids) == 0 && s.lastSelected == "" {
		return
	}
	s.ids = map[string]bool{}
	s.lastSelected = ""
	s.version++
}

// Prune removes ids no longer present in the store. Must be called after
// any bulk deletion.
func (s *Selection) Prune(st *store.Store) {
	changed := false
	for id := range s.ids {
		if !st.Has(id) {
			delete(s.ids, id)
			changed = true
		}
	}
	if s.lastSelected != "" && !st.Has(s.lastSelected) {
		s.lastSelected = maxID(s.ids)
		changed = true
	}
	if changed {
		s.version++
	}
}

func maxID(ids map[string]bool) string {
	out := ""
	for id := range ids {
		if id > out {
			out = id
		}
	}
	return out
}
