// Package interact implements the pointer-gesture state machine for the
// canvas: marquee selection, multi-element drag with baseline capture, and
// resize transforms. It reads the spatial index and viewport, and commits
// to the element store in undoable batches. Mid-gesture it never fails on
// stale ids; concurrent deletion while dragging is expected.
package interact

import (
	"math"

	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
	"github.com/driftdesk/driftdesk/canvas-go/internal/history"
	"github.com/driftdesk/driftdesk/canvas-go/internal/selection"
	"github.com/driftdesk/driftdesk/canvas-go/internal/snap"
	"github.com/driftdesk/driftdesk/canvas-go/internal/spatial"
	"github.com/driftdesk/driftdesk/canvas-go/internal/store"
	"github.com/driftdesk/driftdesk/canvas-go/internal/viewport"
)

const (
	// MarqueeThreshold is the minimum width and height (world units) for a
	// marquee to count as an area selection rather than a click.
	MarqueeThreshold = 5.0

	// DragNoiseThreshold guards history against accidental micro-drags.
	DragNoiseThreshold = 1.0
)

// State enumerates the gesture machine states.
type State int

const (
	StateIdle State = iota
	StateMarquee
	StateDragging
)

// baseline is the captured starting geometry of one entity at drag start.
type baseline struct {
	isConnector bool
	pos         geom.Point
	from        geom.Point
	to          geom.Point
}

// Engine is the selection/marquee/drag gesture engine. All entry points
// take stage (pixel) coordinates and convert through the viewport.
type Engine struct {
	store *store.Store
	sel   *selection.Selection
	index *spatial.Index
	view  *viewport.Viewport
	hist  *history.History

	snapOpts snap.Options

	state State

	// marquee session
	marqueeStart geom.Point
	marqueeRect  geom.Rect

	// drag session
	dragStart  geom.Point
	baselines  map[string]baseline
	lastGuides []snap.Guide
}

// New wires the gesture engine to its collaborators. Nothing here is a
// process-wide singleton; consumers receive the instance explicitly.
func New(st *store.Store, sel *selection.Selection, index *spatial.Index, view *viewport.Viewport, hist *history.History, snapOpts snap.Options) *Engine {
	return &Engine{
		store:    st,
		sel:      sel,
		index:    index,
		view:     view,
		hist:     hist,
		snapOpts: snapOpts,
	}
}

// State returns the current gesture state.
func (e *Engine) State() State { return e.state }

// MarqueeRect returns the in-progress marquee rectangle in world units.
// The rect is a non-interactive visual guide owned by the overlay layer.
func (e *Engine) MarqueeRect() (geom.Rect, bool) {
	return e.marqueeRect, e.state == StateMarquee
}

// Guides returns the alignment guides produced by the latest drag move.
func (e *Engine) Guides() []snap.Guide { return e.lastGuides }

// HitTest returns the topmost element id at the given stage point, or "".
// Candidates come from the spatial index; paint order decides among
// overlapping hits (front wins).
func (e *Engine) HitTest(stageX, stageY float64) string {
	wx, wy := e.view.StageToWorld(stageX, stageY)
	candidates := e.index.QueryPoint(wx, wy, spatial.DefaultQueryPadding)
	if len(candidates) == 0 {
		return ""
	}
	inSet := make(map[string]bool, len(candidates))
	for _, id := range candidates {
		inSet[id] = true
	}
	order := e.store.Order()
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		if !inSet[id] {
			continue
		}
		el, ok := e.store.Get(id)
		if !ok {
			continue
		}
		if el.Bounds().Pad(spatial.DefaultQueryPadding).Contains(wx, wy) {
			return id
		}
	}
	return ""
}

// PointerDown starts a gesture. On empty canvas it clears the selection and
// opens a marquee; on an element it (re)selects and opens a drag session.
// additive preserves the existing selection (shift-click semantics).
func (e *Engine) PointerDown(stageX, stageY float64, additive bool) {
	if e.state != StateIdle {
		// A stray down mid-gesture resets cleanly.
		e.Cancel()
	}

	wx, wy := e.view.StageToWorld(stageX, stageY)
	hit := e.HitTest(stageX, stageY)

	if hit == "" {
		e.sel.Clear()
		e.state = StateMarquee
		e.marqueeStart = geom.Point{X: wx, Y: wy}
		e.marqueeRect = geom.Rect{X: wx, Y: wy}
		return
	}

	if additive {
		e.sel.Toggle(hit)
	} else if !e.sel.IsSelected(hit) {
		e.sel.Set([]string{hit})
	}
	if !e.sel.IsSelected(hit) {
		// Additive toggle removed the element; no drag to start.
		return
	}

	e.beginDrag(geom.Point{X: wx, Y: wy})
}

// beginDrag captures baselines for every selected entity, plus mindmap
// descendants so subtrees move rigidly, and opens the deferred-index and
// history windows.
func (e *Engine) beginDrag(start geom.Point) {
	e.state = StateDragging
	e.dragStart = start
	e.baselines = map[string]baseline{}

	capture := func(id string) {
		if _, done := e.baselines[id]; done {
			return
		}
		el, ok := e.store.Get(id)
		if !ok {
			return
		}
		switch el.Type {
		case element.TypeConnector, element.TypeMindmapEdge:
			// A fully anchored connector is positioned solely by its anchor
			// targets; it gets no independent baseline.
			if el.Connector == nil || !el.HasFreeEndpoint() {
				return
			}
			e.baselines[id] = baseline{
				isConnector: true,
				pos:         el.Position(),
				from:        geom.Point{X: el.Connector.From.X, Y: el.Connector.From.Y},
				to:          geom.Point{X: el.Connector.To.X, Y: el.Connector.To.Y},
			}
		default:
			e.baselines[id] = baseline{pos: geom.Point{X: el.X, Y: el.Y}}
		}
	}

	for _, id := range e.sel.IDs() {
		capture(id)
		if el, ok := e.store.Get(id); ok && el.Type == element.TypeMindmapNode {
			for _, desc := range e.store.Descendants(id) {
				capture(desc)
			}
		}
	}

	e.index.BeginDeferred()
	e.hist.BeginBatch("move")
}

// PointerMove advances the active gesture.
func (e *Engine) PointerMove(stageX, stageY float64) {
	wx, wy := e.view.StageToWorld(stageX, stageY)

	switch e.state {
	case StateMarquee:
		e.marqueeRect = geom.FromPoints(e.marqueeStart, geom.Point{X: wx, Y: wy})

	case StateDragging:
		dx := wx - e.dragStart.X
		dy := wy - e.dragStart.Y
		dx, dy = e.applySnap(dx, dy)
		e.applyDelta(dx, dy)
	}
}

// applySnap adjusts the raw drag delta by the snap engine, using the
// primary element's moved bounds against nearby non-selected candidates.
func (e *Engine) applySnap(dx, dy float64) (float64, float64) {
	e.lastGuides = nil
	if !e.snapOpts.SnapToGrid && !e.snapOpts.SnapToElements {
		return dx, dy
	}
	primary := e.sel.LastSelected()
	base, ok := e.baselines[primary]
	if !ok || base.isConnector {
		return dx, dy
	}
	el, ok := e.store.Get(primary)
	if !ok {
		return dx, dy
	}

	moving := el.Bounds()
	moving.X = base.pos.X + dx
	moving.Y = base.pos.Y + dy

	var candidates []geom.Rect
	for _, id := range e.index.QueryPadded(moving, 200) {
		if id == primary {
			continue
		}
		if _, co := e.baselines[id]; co {
			continue
		}
		if cel, ok := e.store.Get(id); ok {
			candidates = append(candidates, cel.Bounds())
		}
	}

	res := snap.Resolve(moving, candidates, e.snapOpts)
	e.lastGuides = res.Guides
	return dx + res.DX, dy + res.DY
}

// applyDelta writes baseline+delta for every captured entity as one store
// update. Connector endpoints are both shifted by the delta; the midpoint
// is never an update target. Stale ids are silently skipped.
func (e *Engine) applyDelta(dx, dy float64) {
	patches := make(map[string]func(*element.Element), len(e.baselines))
	for id, base := range e.baselines {
		b := base
		patches[id] = func(el *element.Element) {
			if b.isConnector {
				if el.Connector == nil {
					return
				}
				el.Connector.From.X = b.from.X + dx
				el.Connector.From.Y = b.from.Y + dy
				el.Connector.To.X = b.to.X + dx
				el.Connector.To.Y = b.to.Y + dy
				return
			}
			shiftX := b.pos.X + dx - el.X
			shiftY := b.pos.Y + dy - el.Y
			el.Translate(shiftX, shiftY)
		}
	}
	e.store.UpdateMany(patches)
}

// PointerUp completes the active gesture. A marquee below the size
// threshold is a no-op click; a drag whose net displacement ends up below
// the noise threshold is discarded rather than committed to history, even
// when the pointer wandered further mid-gesture.
func (e *Engine) PointerUp(stageX, stageY float64) {
	switch e.state {
	case StateMarquee:
		wx, wy := e.view.StageToWorld(stageX, stageY)
		rect := geom.FromPoints(e.marqueeStart, geom.Point{X: wx, Y: wy})
		e.endMarquee(rect)

	case StateDragging:
		wx, wy := e.view.StageToWorld(stageX, stageY)
		moved := math.Hypot(wx-e.dragStart.X, wy-e.dragStart.Y)
		e.endDrag(moved > DragNoiseThreshold)

	default:
		// Pointer-up with no active gesture is a no-op.
	}
}

func (e *Engine) endMarquee(rect geom.Rect) {
	e.state = StateIdle
	e.marqueeRect = geom.Rect{}

	if rect.Width <= MarqueeThreshold || rect.Height <= MarqueeThreshold {
		return
	}

	ids := e.index.QueryPadded(rect, 0)
	if len(ids) == 0 && e.store.Len() > 0 {
		// Full-scan fallback when the index has no tree yet.
		for _, el := range e.store.All() {
			if el.Bounds().Intersects(rect) {
				ids = append(ids, el.ID)
			}
		}
	}

	hits := make([]string, 0, len(ids))
	for _, id := range ids {
		el, ok := e.store.Get(id)
		if !ok {
			continue
		}
		if el.Bounds().Intersects(rect) {
			hits = append(hits, id)
		}
	}
	if len(hits) > 0 {
		e.sel.Set(hits)
	}
}

func (e *Engine) endDrag(commit bool) {
	e.state = StateIdle
	e.baselines = nil
	e.lastGuides = nil
	e.hist.EndBatch(commit)
	e.index.EndDeferred()
}

// Cancel aborts the active gesture (Escape or pointer-cancel), discarding
// all ephemeral session state without touching selection. Safe to call
// repeatedly.
func (e *Engine) Cancel() {
	switch e.state {
	case StateMarquee:
		e.state = StateIdle
		e.marqueeRect = geom.Rect{}

	case StateDragging:
		e.endDrag(false)
	}
}
