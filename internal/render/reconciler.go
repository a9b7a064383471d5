package render

import (
	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
	"github.com/driftdesk/driftdesk/canvas-go/internal/snap"
	"github.com/driftdesk/driftdesk/canvas-go/internal/store"
)

// Reconciler subscribes to element store changes and incrementally
// creates, updates and destroys the retained render nodes mirroring them.
// Scene elements live in the main layer; selection chrome, marquee and
// guides are rebuilt into the overlay layer each frame.
type Reconciler struct {
	store *store.Store
	pool  *Pool

	nodes   map[string]*Node // element id -> main-layer node
	layers  [layerCount][]*Node
	dirty   [layerCount]bool
	dispose func()
}

// NewReconciler creates a reconciler over st using pool for node reuse.
func NewReconciler(st *store.Store, pool *Pool) *Reconciler {
	return &Reconciler{
		store: st,
		pool:  pool,
		nodes: map[string]*Node{},
	}
}

// Mount subscribes to the store, builds nodes for its current content, and
// returns a disposer. After the disposer runs, further store mutations
// produce no new nodes and no dangling listeners remain.
func (r *Reconciler) Mount() func() {
	unsubscribe := r.store.Subscribe(r.onChange)
	r.resyncAll()

	disposed := false
	r.dispose = func() {
		if disposed {
			return
		}
		disposed = true
		unsubscribe()
		for id, n := range r.nodes {
			r.pool.Release(n)
			delete(r.nodes, id)
		}
		for l := range r.layers {
			r.layers[l] = nil
		}
	}
	return r.dispose
}

func (r *Reconciler) onChange(c store.Change) {
	switch c.Kind {
	case store.ChangeAdded, store.ChangeUpdated:
		for _, id := range c.IDs {
			if el, ok := r.store.Get(id); ok {
				r.syncNode(el)
			}
		}
		r.rebuildMainOrder()

	case store.ChangeRemoved:
		for _, id := range c.IDs {
			r.destroyNode(id)
		}
		r.rebuildMainOrder()

	case store.ChangeReordered, store.ChangeReplaced:
		r.resyncAll()
	}
}

// syncNode locates (or lazily creates) the node for el and applies the
// attribute diff.
func (r *Reconciler) syncNode(el element.Element) {
	n, ok := r.nodes[el.ID]
	if !ok {
		n = r.pool.Acquire(string(el.Type))
		n.ID = el.ID
		n.Layer = LayerMain
		r.nodes[el.ID] = n
	}

	n.Rotation = el.Rotation
	n.Fill = el.Style.Fill
	n.Stroke = el.Style.Stroke
	n.StrokeWidth = el.Style.StrokeWidth
	n.Opacity = el.Style.Opacity
	if n.Opacity == 0 {
		n.Opacity = 1
	}
	n.Text = el.Text
	n.Visible = true

	// Committing geometry resets any transient transform preview.
	n.ScaleX = 1
	n.ScaleY = 1

	switch el.Type {
	case element.TypeConnector, element.TypeMindmapEdge:
		if el.Connector != nil {
			n.Points = []geom.Point{
				{X: el.Connector.From.X, Y: el.Connector.From.Y},
				{X: el.Connector.To.X, Y: el.Connector.To.Y},
			}
		}
		b := el.Bounds()
		n.X, n.Y, n.Width, n.Height = b.X, b.Y, b.Width, b.Height

	case element.TypeDrawingStroke:
		if el.Stroke != nil {
			n.Points = append(n.Points[:0], el.Stroke.Points...)
		}
		b := el.Bounds()
		n.X, n.Y, n.Width, n.Height = b.X, b.Y, b.Width, b.Height

	default:
		n.X, n.Y = el.X, el.Y
		n.Width, n.Height = el.Width, el.Height
		n.Points = nil
	}

	r.dirty[LayerMain] = true
}

func (r *Reconciler) destroyNode(id string) {
	n, ok := r.nodes[id]
	if !ok {
		return
	}
	delete(r.nodes, id)
	r.pool.Release(n)
	r.dirty[LayerMain] = true
}

// rebuildMainOrder re-derives the main layer's node list from the store's
// paint order.
func (r *Reconciler) rebuildMainOrder() {
	order := r.store.Order()
	list := make([]*Node, 0, len(order))
	for _, id := range order {
		if n, ok := r.nodes[id]; ok {
			list = append(list, n)
		}
	}
	r.layers[LayerMain] = list
	r.dirty[LayerMain] = true
}

// resyncAll diffs the node map against the store wholesale: used for
// replaceAll, undo restores and reorders.
func (r *Reconciler) resyncAll() {
	live := map[string]bool{}
	for _, el := range r.store.All() {
		live[el.ID] = true
		r.syncNode(el)
	}
	for id := range r.nodes {
		if !live[id] {
			r.destroyNode(id)
		}
	}
	r.rebuildMainOrder()
}

// NodeFor returns the main-layer node for an element id.
func (r *Reconciler) NodeFor(id string) (*Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// NodeCount returns the number of live scene nodes.
func (r *Reconciler) NodeCount() int { return len(r.nodes) }

// Layer returns the ordered node list for a layer.
func (r *Reconciler) Layer(l Layer) []*Node { return r.layers[l] }

// SyncOverlay rebuilds the overlay layer from the current interaction
// state: selection outlines, the marquee guide rectangle (dashed,
// non-interactive) and alignment guide lines.
func (r *Reconciler) SyncOverlay(selectionBounds []geom.Rect, marquee *geom.Rect, guides []snap.Guide) {
	for _, n := range r.layers[LayerOverlay] {
		r.pool.Release(n)
	}
	r.layers[LayerOverlay] = nil

	for _, b := range selectionBounds {
		n := r.pool.Acquire("selection-outline")
		n.Layer = LayerOverlay
		n.X, n.Y, n.Width, n.Height = b.X, b.Y, b.Width, b.Height
		n.Stroke = "#4f8ef7"
		n.StrokeWidth = 1
		r.layers[LayerOverlay] = append(r.layers[LayerOverlay], n)
	}

	if marquee != nil {
		n := r.pool.Acquire("marquee")
		n.Layer = LayerOverlay
		n.X, n.Y, n.Width, n.Height = marquee.X, marquee.Y, marquee.Width, marquee.Height
		n.Stroke = "#4f8ef7"
		n.StrokeWidth = 1
		n.Dashed = true
		r.layers[LayerOverlay] = append(r.layers[LayerOverlay], n)
	}

	for _, g := range guides {
		n := r.pool.Acquire("guide")
		n.Layer = LayerOverlay
		n.Points = []geom.Point{g.From, g.To}
		n.Stroke = "#f74f8e"
		n.StrokeWidth = 1
		n.Dashed = true
		r.layers[LayerOverlay] = append(r.layers[LayerOverlay], n)
	}

	r.dirty[LayerOverlay] = true
}

// DirtyLayers returns which layers changed since the last TakeDirty.
func (r *Reconciler) DirtyLayers() []Layer {
	var out []Layer
	for l := Layer(0); l < layerCount; l++ {
		if r.dirty[l] {
			out = append(out, l)
		}
	}
	return out
}

// TakeDirty clears and returns the dirty flags. Draw coalescing: however
// many mutations landed since the last frame, each layer paints at most
// once.
func (r *Reconciler) TakeDirty() []Layer {
	out := r.DirtyLayers()
	for l := range r.dirty {
		r.dirty[l] = false
	}
	return out
}
