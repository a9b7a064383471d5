package element

import "github.com/driftdesk/driftdesk/canvas-go/internal/geom"

// Bounds returns the element's axis-aligned bounding box in world space.
// Connectors derive it from their endpoint extents, strokes from their point
// list; rotated shapes return the AABB of the rotated rect.
func (el Element) Bounds() geom.Rect {
	switch el.Type {
	case TypeConnector, TypeMindmapEdge:
		if el.Connector == nil {
			return geom.Rect{X: el.X, Y: el.Y}
		}
		return geom.FromPoints(
			geom.Point{X: el.Connector.From.X, Y: el.Connector.From.Y},
			geom.Point{X: el.Connector.To.X, Y: el.Connector.To.Y},
		)

	case TypeDrawingStroke:
		if el.Stroke == nil || len(el.Stroke.Points) == 0 {
			return geom.Rect{X: el.X, Y: el.Y}
		}
		minX, minY := el.Stroke.Points[0].X, el.Stroke.Points[0].Y
		maxX, maxY := minX, minY
		for _, p := range el.Stroke.Points[1:] {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
		return geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}

	case TypeRectangle, TypeCircle, TypeEllipse, TypeTriangle,
		TypeText, TypeStickyNote, TypeTable, TypeImage, TypeMindmapNode:
		r := geom.Rect{X: el.X, Y: el.Y, Width: el.Width, Height: el.Height}
		if el.Rotation != 0 {
			m := geom.FromRotation(el.X, el.Y, el.Rotation, el.Width/2, el.Height/2)
			return m.TransformRect(geom.Rect{Width: el.Width, Height: el.Height})
		}
		return r

	default:
		return geom.Rect{X: el.X, Y: el.Y, Width: el.Width, Height: el.Height}
	}
}
