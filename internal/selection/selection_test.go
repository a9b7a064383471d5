package selection

import (
	"testing"

	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
	"github.com/driftdesk/driftdesk/canvas-go/internal/store"
)

func TestSetAndLastSelected(t *testing.T) {
	s := New()
	s.Set([]string{"el_a", "el_b", "el_c"})
	if s.Count() != 3 || !s.IsSelected("el_b") {
		t.Errorf("count=%d", s.Count())
	}
	if s.LastSelected() != "el_c" {
		t.Errorf("lastSelected = %q", s.LastSelected())
	}

	s.Set(nil)
	if s.Count() != 0 || s.LastSelected() != "" {
		t.Error("empty set should clear lastSelected")
	}
}

func TestToggle(t *testing.T) {
	s := New()
	s.Toggle("el_a")
	if !s.IsSelected("el_a") || s.LastSelected() != "el_a" {
		t.Error("toggle should add")
	}
	s.Toggle("el_a")
	if s.IsSelected("el_a") {
		t.Error("second toggle should remove")
	}
}

func TestRemoveFallsBackToMaxID(t *testing.T) {
	s := New()
	s.Set([]string{"el_a", "el_c", "el_b"})
	// lastSelected is el_b (last in the Set slice); removing it falls back
	// to the max remaining id.
	s.Remove("el_b")
	if s.LastSelected() != "el_c" {
		t.Errorf("lastSelected = %q, want el_c", s.LastSelected())
	}
}

func TestClearDropsLastSelected(t *testing.T) {
	s := New()
	s.Set([]string{"el_a"})
	s.Clear()
	if s.Count() != 0 {
		t.Error("clear should empty the set")
	}
	if s.LastSelected() != "" {
		t.Errorf("lastSelected after clear = %q, want empty", s.LastSelected())
	}
}

func TestVersionBumpsOnlyOnChange(t *testing.T) {
	s := New()
	v0 := s.Version()

	s.Add("el_a")
	v1 := s.Version()
	if v1 == v0 {
		t.Error("add should bump version")
	}

	s.Add("el_a")
	if s.Version() != v1 {
		t.Error("re-adding a selected id should not bump version")
	}
	s.Remove("el_missing")
	if s.Version() != v1 {
		t.Error("removing an unselected id should not bump version")
	}

	s.Clear()
	v2 := s.Version()
	if v2 == v1 {
		t.Error("clear should bump version")
	}
	s.Clear()
	if s.Version() != v2 {
		t.Error("clearing an empty selection should not bump version")
	}
}

func TestPrune(t *testing.T) {
	st := store.New()
	st.Add(element.Element{ID: "el_a", Type: element.TypeRectangle, Width: 10, Height: 10})

	s := New()
	s.Set([]string{"el_a", "el_gone", "el_also_gone"})

	v := s.Version()
	s.Prune(st)
	if s.Count() != 1 || !s.IsSelected("el_a") {
		t.Errorf("pruned selection: count=%d", s.Count())
	}
	if s.LastSelected() != "el_a" {
		t.Errorf("lastSelected = %q", s.LastSelected())
	}
	if s.Version() == v {
		t.Error("prune that removed ids should bump version")
	}

	v = s.Version()
	s.Prune(st)
	if s.Version() != v {
		t.Error("no-op prune should not bump version")
	}
}
