// Package engine is the canvas core facade: it owns the element store,
// selection, viewport, spatial index, history and render reconciler, and
// exposes the API the host UI drives. The store is the single source of
// truth; the spatial index and render nodes are derived caches rebuilt
// only in response to store changes.
package engine

import (
	"github.com/driftdesk/driftdesk/canvas-go/internal/document"
	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
	"github.com/driftdesk/driftdesk/canvas-go/internal/history"
	"github.com/driftdesk/driftdesk/canvas-go/internal/interact"
	"github.com/driftdesk/driftdesk/canvas-go/internal/render"
	"github.com/driftdesk/driftdesk/canvas-go/internal/selection"
	"github.com/driftdesk/driftdesk/canvas-go/internal/snap"
	"github.com/driftdesk/driftdesk/canvas-go/internal/spatial"
	"github.com/driftdesk/driftdesk/canvas-go/internal/store"
	"github.com/driftdesk/driftdesk/canvas-go/internal/viewport"
)

// Options tunes the engine. Zero values fall back to the defaults each
// subsystem documents.
type Options struct {
	StageWidth  float64
	StageHeight float64

	MinScale float64
	MaxScale float64

	GridSize       float64
	SnapThreshold  float64
	SnapToGrid     bool
	SnapToElements bool

	QuadTreeCapacity int
	QuadTreeMaxDepth int
	PoolMaxPerKey    int
	HistoryLimit     int
}

// Engine wires the canvas core together.
type Engine struct {
	store    *store.Store
	sel      *selection.Selection
	view     *viewport.Viewport
	index    *spatial.Index
	hist     *history.History
	gestures *interact.Engine

	pool       *render.Pool
	reconciler *render.Reconciler
	unmount    func()

	boardID string
	name    string

	// dirty marks unsaved store changes for the autosaver.
	dirty bool

	// resolvingAnchors breaks the change -> anchor-fixup -> change loop.
	resolvingAnchors bool
}

// New builds a fully wired engine.
func New(opts Options) *Engine {
	st := store.New()
	sel := selection.New()
	view := viewport.New(opts.StageWidth, opts.StageHeight, opts.MinScale, opts.MaxScale)
	index := spatial.NewIndex(opts.QuadTreeCapacity, opts.QuadTreeMaxDepth)
	hist := history.New(st, opts.HistoryLimit)

	snapOpts := snap.Options{
		Threshold:      opts.SnapThreshold,
		GridSize:       opts.GridSize,
		SnapToGrid:     opts.SnapToGrid,
		SnapToElements: opts.SnapToElements,
	}

	e := &Engine{
		store:    st,
		sel:      sel,
		view:     view,
		index:    index,
		hist:     hist,
		gestures: interact.New(st, sel, index, view, hist, snapOpts),
		pool:     render.NewPool(opts.PoolMaxPerKey),
	}

	e.reconciler = render.NewReconciler(st, e.pool)
	e.unmount = e.reconciler.Mount()

	st.Subscribe(e.onStoreChange)
	return e
}

// Close unmounts the reconciler; further store mutations produce no nodes.
func (e *Engine) Close() {
	if e.unmount != nil {
		e.unmount()
	}
}

// Store exposes the element store for hosts and tests.
func (e *Engine) Store() *store.Store { return e.store }

// Selection exposes the selection set.
func (e *Engine) Selection() *selection.Selection { return e.sel }

// Viewport exposes the viewport transform.
func (e *Engine) Viewport() *viewport.Viewport { return e.view }

// Index exposes the spatial index.
func (e *Engine) Index() *spatial.Index { return e.index }

// History exposes undo/redo.
func (e *Engine) History() *history.History { return e.hist }

// Gestures exposes the pointer-gesture engine.
func (e *Engine) Gestures() *interact.Engine { return e.gestures }

// Reconciler exposes the render reconciliation layer.
func (e *Engine) Reconciler() *render.Reconciler { return e.reconciler }

// onStoreChange keeps the derived structures in line with the store: the
// spatial index is re-dirtied, dangling selection ids pruned on deletions,
// and anchored connector endpoints follow their targets.
func (e *Engine) onStoreChange(c store.Change) {
	e.dirty = true
	e.index.MarkDirty(e.boundsSource)

	switch c.Kind {
	case store.ChangeRemoved, store.ChangeReplaced:
		e.sel.Prune(e.store)
	}

	if !e.resolvingAnchors {
		switch c.Kind {
		case store.ChangeUpdated, store.ChangeRemoved, store.ChangeReplaced:
			e.resolveAnchors(c.IDs)
		}
	}
}

// boundsSource feeds the spatial index from the current snapshot.
func (e *Engine) boundsSource() []spatial.Entry {
	els := e.store.All()
	out := make([]spatial.Entry, 0, len(els))
	for _, el := range els {
		out = append(out, spatial.Entry{ID: el.ID, Bounds: el.Bounds()})
	}
	return out
}

// resolveAnchors refreshes the resolved endpoint positions of connectors
// anchored to the changed elements; endpoints whose target is gone become
// free. movedIDs nil means check everything.
func (e *Engine) resolveAnchors(movedIDs []string) {
	moved := map[string]bool{}
	for _, id := range movedIDs {
		moved[id] = true
	}
	all := movedIDs == nil

	patches := map[string]func(*element.Element){}
	for _, el := range e.store.All() {
		if el.Connector == nil {
			continue
		}
		fromHit := el.Connector.From.Anchored() && (all || moved[el.Connector.From.AnchorID])
		toHit := el.Connector.To.Anchored() && (all || moved[el.Connector.To.AnchorID])
		if !fromHit && !toHit {
			continue
		}
		patches[el.ID] = func(c *element.Element) {
			if c.Connector == nil {
				return
			}
			e.resolveEndpoint(&c.Connector.From)
			e.resolveEndpoint(&c.Connector.To)
		}
	}
	if len(patches) == 0 {
		return
	}

	e.resolvingAnchors = true
	e.store.UpdateMany(patches)
	e.resolvingAnchors = false
}

func (e *Engine) resolveEndpoint(ep *element.Endpoint) {
	if !ep.Anchored() {
		return
	}
	target, ok := e.store.Get(ep.AnchorID)
	if !ok {
		// Anchor target deleted: the endpoint becomes free at its last
		// resolved position.
		ep.AnchorID = ""
		return
	}
	cx, cy := target.Bounds().Center()
	ep.X = cx + ep.OffsetX
	ep.Y = cy + ep.OffsetY
}

// --- Pointer entry points (stage coordinates) ---

func (e *Engine) PointerDown(x, y float64, additive bool) { e.gestures.PointerDown(x, y, additive) }
func (e *Engine) PointerMove(x, y float64) { e.gestures.PointerMove(x, y) }
func (e *Engine) PointerUp(x, y float64) { e.gestures.PointerUp(x, y) }

// CancelGesture aborts the active gesture (Escape / pointer-cancel).
func (e *Engine) CancelGesture() { e.gestures.Cancel() }

// HitTest returns the topmost element id at a stage point, or "".
func (e *Engine) HitTest(x, y float64) string { return e.gestures.HitTest(x, y) }

// --- Frame ---

// Tick runs one animation frame: refresh overlay chrome and compile the
// retained layers into a draw command buffer. Mutations are coalesced:
// one compile per tick no matter how many landed since the last one.
func (e *Engine) Tick() []render.DrawCommand {
	var selBounds []geom.Rect
	for _, id := range e.sel.IDs() {
		if el, ok := e.store.Get(id); ok {
			selBounds = append(selBounds, el.Bounds())
		}
	}

	var marquee *geom.Rect
	if r, active := e.gestures.MarqueeRect(); active {
		m := r
		marquee = &m
	}

	e.reconciler.SyncOverlay(selBounds, marquee, e.gestures.Guides())
	e.reconciler.TakeDirty()
	return e.reconciler.Compile()
}

// TickJSON is Tick serialized for the wasm boundary.
func (e *Engine) TickJSON() string {
	out, _ := render.CommandsToJSON(e.Tick())
	return out
}

// --- Selection API ---

func (e *Engine) SetSelection(ids []string) { e.sel.Set(ids) }
func (e *Engine) ToggleSelection(id string) { e.sel.Toggle(id) }
func (e *Engine) AddToSelection(id string) { e.sel.Add(id) }
func (e *Engine) RemoveSelection(id string) { e.sel.Remove(id) }
func (e *Engine) ClearSelection() { e.sel.Clear() }
func (e *Engine) SelectedIDs() []string     { return e.sel.IDs() }
func (e *Engine) IsSelected(id string) bool { return e.sel.IsSelected(id) }
func (e *Engine) SelectionCount() int       { return e.sel.Count() }

// SelectionBounds returns the union of the selected elements' world
// bounds, for transform-handle placement. A selected connector line
// counts even when its bounds have zero height or width.
func (e *Engine) SelectionBounds() geom.Rect {
	var out geom.Rect
	found := false
	for _, id := range e.sel.IDs() {
		el, ok := e.store.Get(id)
		if !ok {
			continue
		}
		if !found {
			out, found = el.Bounds(), true
			continue
		}
		out = out.Union(el.Bounds())
	}
	return out
}

// --- Element operations (each one undo step) ---

// AddElement inserts el as one undo step and returns the stored element.
func (e *Engine) AddElement(el element.Element) element.Element {
	var added element.Element
	e.hist.WithUndo("add", func() {
		added = e.store.Add(el)
	})
	return added
}

// DeleteSelection removes every selected element plus connectors left
// fully dangling, as one undo step.
func (e *Engine) DeleteSelection() {
	ids := e.sel.IDs()
	if len(ids) == 0 {
		return
	}
	e.hist.WithUndo("delete", func() {
		e.store.RemoveMany(ids)
	})
	e.sel.Prune(e.store)
}

// DuplicateSelection clones every selected element with the default
// (+12,+12) offset and selects the clones.
func (e *Engine) DuplicateSelection() {
	ids := e.sel.IDs()
	if len(ids) == 0 {
		return
	}
	var clones []string
	e.hist.WithUndo("duplicate", func() {
		for _, id := range ids {
			if clone, ok := e.store.Duplicate(id, store.DuplicateOffset, store.DuplicateOffset); ok {
				clones = append(clones, clone.ID)
			}
		}
	})
	if len(clones) > 0 {
		e.sel.Set(clones)
	}
}

// Nudge shifts the selection by (dx, dy) world units as one undo step
// (arrow-key movement).
func (e *Engine) Nudge(dx, dy float64) {
	ids := e.sel.IDs()
	if len(ids) == 0 {
		return
	}
	e.hist.WithUndo("nudge", func() {
		patches := make(map[string]func(*element.Element), len(ids))
		for _, id := range ids {
			patches[id] = func(el *element.Element) {
				el.Translate(dx, dy)
			}
		}
		e.store.UpdateMany(patches)
	})
}

// BringToFront raises the selected elements to the top of the paint order.
func (e *Engine) BringToFront() {
	e.hist.WithUndo("bring to front", func() {
		for _, id := range e.sel.IDs() {
			e.store.BringToFront(id)
		}
	})
}

// SendToBack lowers the selected elements to the bottom of the paint order.
func (e *Engine) SendToBack() {
	e.hist.WithUndo("send to back", func() {
		for _, id := range e.sel.IDs() {
			e.store.SendToBack(id)
		}
	})
}

// Undo reverts the most recent step; returns its label or "".
func (e *Engine) Undo() string { return e.hist.Undo() }

// Redo re-applies the most recently undone step; returns its label or "".
func (e *Engine) Redo() string { return e.hist.Redo() }

// --- Viewport API ---

func (e *Engine) SetPan(x, y float64) { e.view.SetPan(x, y) }
func (e *Engine) SetScale(s float64) { e.view.SetScale(s) }
func (e *Engine) ZoomAt(x, y, f float64) { e.view.ZoomAt(x, y, f) }
func (e *Engine) ZoomIn() { e.view.ZoomInCenter() }
func (e *Engine) ZoomOut() { e.view.ZoomOutCenter() }
func (e *Engine) ResetView() { e.view.Reset() }
func (e *Engine) Resize(w, h float64) { e.view.Resize(w, h) }

// FitToContent frames all content with the given padding.
func (e *Engine) FitToContent(padding float64) {
	e.view.FitToContent(e.store.ContentBounds(), padding)
}

// --- Persistence round trip ---

// LoadDocument replaces the whole scene from a board snapshot: replaceAll
// plus a viewport restore fully reconstructs prior state. History and
// selection reset; a fresh load is not undoable.
func (e *Engine) LoadDocument(doc *document.BoardDocument) {
	e.boardID = doc.BoardID
	e.name = doc.Name
	e.store.ReplaceAll(doc.Elements, doc.Order)
	e.view.SetScale(doc.Viewport.Scale)
	e.view.SetPan(doc.Viewport.PanX, doc.Viewport.PanY)
	e.sel.Clear()
	e.hist.Clear()
	e.dirty = false
}

// LoadDocumentJSON parses and loads a serialized board snapshot.
func (e *Engine) LoadDocumentJSON(data []byte) error {
	doc, err := document.Unmarshal(data)
	if err != nil {
		return err
	}
	e.LoadDocument(doc)
	return nil
}

// LoadSampleDocument loads the built-in demo board.
func (e *Engine) LoadSampleDocument(boardID string) {
	e.LoadDocument(document.NewSampleDocument(boardID))
}

// SaveDocument captures the current scene as a board snapshot.
func (e *Engine) SaveDocument() *document.BoardDocument {
	panX, panY := e.view.Pan()
	return &document.BoardDocument{
		BoardID:  e.boardID,
		Name:     e.name,
		Elements: e.store.Snapshot().Elements(),
		Order:    append([]string(nil), e.store.Order()...),
		Viewport: document.ViewportState{
			Scale: e.view.Scale(),
			PanX:  panX,
			PanY:  panY,
		},
	}
}

// BoardID returns the loaded board's id.
func (e *Engine) BoardID() string { return e.boardID }

// Dirty reports unsaved changes since the last load/markClean.
func (e *Engine) Dirty() bool { return e.dirty }

// MarkClean clears the dirty flag after a successful save.
func (e *Engine) MarkClean() { e.dirty = false }

// SpatialStats returns spatial index diagnostics.
func (e *Engine) SpatialStats() spatial.Stats { return e.index.Stats() }
