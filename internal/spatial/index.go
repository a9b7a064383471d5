// Package spatial maintains a quad-tree over element bounds for region
// queries and hit-testing. The index is a disposable cache: it is rebuilt
// from the element store whenever dirtied, and rebuilds can be deferred
// during interactive sessions so queries return a stable snapshot instead
// of thrashing the tree every frame.
package spatial

import (
	"time"

	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
)

// DefaultQueryPadding makes hit-testing forgiving around element edges.
const DefaultQueryPadding = 8.0

// BoundsSource produces the current entry set for a rebuild.
type BoundsSource func() []Entry

// Stats reports diagnostics about the last rebuild.
type Stats struct {
	Entries        int
	Builds         int
	LastBuild      time.Duration
	LastBuildAt    time.Time
	PendingRebuild bool
	DeferredDepth  int
}

// Index is the deferred-rebuild spatial index.
type Index struct {
	capacity int
	maxDepth int

	source  BoundsSource
	root    *quadNode
	entries []Entry

	deferDepth     int
	pendingRebuild bool

	builds      int
	lastBuild   time.Duration
	lastBuildAt time.Time
}

// NewIndex creates an index. capacity is entries per node before a split,
// maxDepth bounds tree depth; non-positive values fall back to 8.
func NewIndex(capacity, maxDepth int) *Index {
	if capacity <= 0 {
		capacity = 8
	}
	if maxDepth <= 0 {
		maxDepth = 8
	}
	return &Index{capacity: capacity, maxDepth: maxDepth}
}

// MarkDirty records the latest bounds source and rebuilds immediately,
// unless a deferred session is active, in which case the rebuild is
// flagged and runs when the last deferral ends.
func (ix *Index) MarkDirty(source BoundsSource) {
	ix.source = source
	if ix.deferDepth > 0 {
		ix.pendingRebuild = true
		return
	}
	ix.rebuild()
}

// BeginDeferred suppresses rebuilds until the matching EndDeferred.
// Reentrant: sessions nest by depth count.
func (ix *Index) BeginDeferred() {
	ix.deferDepth++
}

// EndDeferred closes one deferral level. Ending the last level runs a
// pending rebuild. Unbalanced calls are guarded; depth never goes
// negative.
func (ix *Index) EndDeferred() {
	if ix.deferDepth == 0 {
		return
	}
	ix.deferDepth--
	if ix.deferDepth == 0 && ix.pendingRebuild {
		ix.rebuild()
	}
}

// Query returns ids whose bounds intersect rect padded by
// DefaultQueryPadding.
func (ix *Index) Query(rect geom.Rect) []string {
	return ix.QueryPadded(rect, DefaultQueryPadding)
}

// QueryPadded returns ids whose bounds intersect the rect expanded by pad
// on every side.
func (ix *Index) QueryPadded(rect geom.Rect, pad float64) []string {
	if ix.pendingRebuild && ix.deferDepth == 0 {
		ix.rebuild()
	}
	if ix.root == nil {
		return nil
	}
	var out []string
	ix.root.query(rect.Pad(pad), &out)
	return out
}

// QueryPoint returns ids whose bounds come within radius of (x, y).
func (ix *Index) QueryPoint(x, y, radius float64) []string {
	return ix.QueryPadded(geom.Rect{X: x, Y: y}, radius)
}

// Stats returns rebuild diagnostics.
func (ix *Index) Stats() Stats {
	return Stats{
		Entries:        len(ix.entries),
		Builds:         ix.builds,
		LastBuild:      ix.lastBuild,
		LastBuildAt:    ix.lastBuildAt,
		PendingRebuild: ix.pendingRebuild,
		DeferredDepth:  ix.deferDepth,
	}
}

// rebuild constructs a fresh tree from the recorded source. An empty or
// degenerate bounds set yields a nil tree; queries then return empty.
func (ix *Index) rebuild() {
	ix.pendingRebuild = false
	start := time.Now()

	if ix.source == nil {
		ix.root = nil
		ix.entries = nil
		return
	}
	entries := ix.source()
	ix.entries = entries
	if len(entries) == 0 {
		ix.root = nil
		ix.finishBuild(start)
		return
	}

	// World box from raw min/max so degenerate bounds (zero-height
	// connector lines, point strokes) still count.
	minX, minY := entries[0].Bounds.X, entries[0].Bounds.Y
	maxX, maxY := entries[0].Bounds.Right(), entries[0].Bounds.Bottom()
	for _, e := range entries[1:] {
		minX = min(minX, e.Bounds.X)
		minY = min(minY, e.Bounds.Y)
		maxX = max(maxX, e.Bounds.Right())
		maxY = max(maxY, e.Bounds.Bottom())
	}
	world := geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}

	// A touch of slack so edge-exact entries land inside the root.
	root := newQuadNode(world.Pad(1), 0)
	for _, e := range entries {
		root.insert(e, ix.capacity, ix.maxDepth)
	}
	ix.root = root
	ix.finishBuild(start)
}

func (ix *Index) finishBuild(start time.Time) {
	ix.builds++
	ix.lastBuild = time.Since(start)
	ix.lastBuildAt = time.Now()
}
