package geom

// Point is a position in world or stage coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect represents an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FromPoints returns the axis-aligned rect spanning two arbitrary corners.
// The corners may be given in any order (drag in any of the four directions).
func FromPoints(a, b Point) Rect {
	minX := min(a.X, b.X)
	minY := min(a.Y, b.Y)
	return Rect{
		X:      minX,
		Y:      minY,
		Width:  max(a.X, b.X) - minX,
		Height: max(a.Y, b.Y) - minY,
	}
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether two rects overlap, using the standard
// AABB test. Rects that merely touch at an edge count as overlapping.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X > other.X+other.Width ||
		r.X+r.Width < other.X ||
		r.Y > other.Y+other.Height ||
		r.Y+r.Height < other.Y)
}

// Pad returns the rect expanded by p on every side.
func (r Rect) Pad(p float64) Rect {
	return Rect{
		X:      r.X - p,
		Y:      r.Y - p,
		Width:  r.Width + 2*p,
		Height: r.Height + 2*p,
	}
}

// Union returns the smallest rect containing both rects. A degenerate
// operand (zero width or height, a horizontal or vertical line) still
// extends the union from its position and extents.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Center returns the center point of the rect.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Right returns the maximum X edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the maximum Y edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }
