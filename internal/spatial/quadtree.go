package spatial

import "github.com/driftdesk/driftdesk/canvas-go/internal/geom"

// Entry associates an element id with its world-space bounding box.
type Entry struct {
	ID     string
	Bounds geom.Rect
}

// quadNode is one node of the region-partitioning tree. Entries live in the
// deepest node that fully contains them; entries straddling a split line
// stay in the parent.
type quadNode struct {
	bounds   geom.Rect
	depth    int
	entries  []Entry
	children *[4]*quadNode
}

func newQuadNode(bounds geom.Rect, depth int) *quadNode {
	return &quadNode{bounds: bounds, depth: depth}
}

func (n *quadNode) insert(e Entry, capacity, maxDepth int) {
	if n.children == nil {
		if len(n.entries) < capacity || n.depth >= maxDepth {
			n.entries = append(n.entries, e)
			return
		}
		n.split(capacity, maxDepth)
	}

	if child := n.childFor(e.Bounds); child != nil {
		child.insert(e, capacity, maxDepth)
		return
	}
	n.entries = append(n.entries, e)
}

func (n *quadNode) split(capacity, maxDepth int) {
	hw := n.bounds.Width / 2
	hh := n.bounds.Height / 2
	x, y := n.bounds.X, n.bounds.Y
	d := n.depth + 1

	n.children = &[4]*quadNode{
		newQuadNode(geom.Rect{X: x, Y: y, Width: hw, Height: hh}, d),
		newQuadNode(geom.Rect{X: x + hw, Y: y, Width: hw, Height: hh}, d),
		newQuadNode(geom.Rect{X: x, Y: y + hh, Width: hw, Height: hh}, d),
		newQuadNode(geom.Rect{X: x + hw, Y: y + hh, Width: hw, Height: hh}, d),
	}

	kept := n.entries[:0]
	for _, e := range n.entries {
		if child := n.childFor(e.Bounds); child != nil {
			child.insert(e, capacity, maxDepth)
		} else {
			kept = append(kept, e)
		}
	}
	n.entries = kept
}

// childFor returns the child quadrant fully containing r, or nil.
func (n *quadNode) childFor(r geom.Rect) *quadNode {
	if n.children == nil {
		return nil
	}
	for _, c := range n.children {
		if r.X >= c.bounds.X && r.Y >= c.bounds.Y &&
			r.Right() <= c.bounds.Right() && r.Bottom() <= c.bounds.Bottom() {
			return c
		}
	}
	return nil
}

func (n *quadNode) query(r geom.Rect, out *[]string) {
	if !n.bounds.Intersects(r) {
		return
	}
	for _, e := range n.entries {
		if e.Bounds.Intersects(r) {
			*out = append(*out, e.ID)
		}
	}
	if n.children != nil {
		for _, c := range n.children {
			c.query(r, out)
		}
	}
}
