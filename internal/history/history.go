// Package history records undoable transactions against the element store.
// Each entry is a pair of store snapshots (before/after); snapshots share
// element values so retaining them is cheap.
package history

import (
	"github.com/driftdesk/driftdesk/canvas-go/internal/store"
)

type entry struct {
	label  string
	before store.Snapshot
	after  store.Snapshot
}

// History wraps a store with undo/redo bookkeeping. BeginBatch/EndBatch
// define transaction boundaries: everything mutated between them is one
// undo step, and nested batches collapse to the outermost boundary.
type History struct {
	store *store.Store
	limit int

	undo []entry
	redo []entry

	// active batch
	depth        int
	batchLabel   string
	batchStart   store.Snapshot
	batchVersion uint64
}

// New creates a history bound to st. limit caps retained undo entries;
// values <= 0 fall back to 100.
func New(st *store.Store, limit int) *History {
	if limit <= 0 {
		limit = 100
	}
	return &History{store: st, limit: limit}
}

// BeginBatch opens a transaction. Reentrant: nested calls only bump the
// depth counter and keep the outermost label and starting snapshot.
func (h *History) BeginBatch(label string) {
	if h.depth == 0 {
		h.batchLabel = label
		h.batchStart = h.store.Snapshot()
		h.batchVersion = h.store.Version()
	}
	h.depth++
}

// EndBatch closes the innermost open batch. Closing the outermost batch
// with commit=true records one undo entry; commit=false rolls the store
// back to the batch start. A batch in which nothing mutated closes
// silently: no entry, no rollback, no change notification. Calling with
// no open batch is a no-op; the depth counter cannot go negative.
func (h *History) EndBatch(commit bool) {
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}

	if h.store.Version() == h.batchVersion {
		return
	}
	if !commit {
		h.store.Restore(h.batchStart)
		return
	}
	h.push(entry{label: h.batchLabel, before: h.batchStart, after: h.store.Snapshot()})
}

// WithUndo runs fn inside a single-step batch.
func (h *History) WithUndo(label string, fn func()) {
	h.BeginBatch(label)
	fn()
	h.EndBatch(true)
}

// InBatch reports whether a batch is currently open.
func (h *History) InBatch() bool { return h.depth > 0 }

func (h *History) push(e entry) {
	// Recording a new step invalidates the redo chain.
	h.redo = h.redo[:0]
	h.undo = append(h.undo, e)
	if len(h.undo) > h.limit {
		h.undo = h.undo[1:]
	}
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 && h.depth == 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 && h.depth == 0 }

// Undo restores the snapshot preceding the most recent step. Returns the
// step label, or "" if nothing was undone.
func (h *History) Undo() string {
	if !h.CanUndo() {
		return ""
	}
	e := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, e)
	h.store.Restore(e.before)
	return e.label
}

// Redo re-applies the most recently undone step.
func (h *History) Redo() string {
	if !h.CanRedo() {
		return ""
	}
	e := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, e)
	h.store.Restore(e.after)
	return e.label
}

// Clear drops all recorded steps.
func (h *History) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
	h.depth = 0
}

// Stats returns the undo and redo depths.
func (h *History) Stats() (undo, redo int) {
	return len(h.undo), len(h.redo)
}
