package element

import (
	"time"

	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
)

// Type discriminates the element union. Every consumer that branches on
// element kind must switch on this tag exhaustively rather than sniffing
// payload field presence.
type Type string

const (
	TypeRectangle     Type = "rectangle"
	TypeCircle        Type = "circle"
	TypeEllipse       Type = "ellipse"
	TypeTriangle      Type = "triangle"
	TypeText          Type = "text"
	TypeStickyNote    Type = "sticky-note"
	TypeTable         Type = "table"
	TypeImage         Type = "image"
	TypeConnector     Type = "connector"
	TypeMindmapNode   Type = "mindmap-node"
	TypeMindmapEdge   Type = "mindmap-edge"
	TypeDrawingStroke Type = "drawing-stroke"
)

// Style holds the visual attributes shared by all element kinds.
type Style struct {
	Fill         string  `json:"fill,omitempty"`
	Stroke       string  `json:"stroke,omitempty"`
	StrokeWidth  float64 `json:"strokeWidth,omitempty"`
	Opacity      float64 `json:"opacity,omitempty"`
	FontFamily   string  `json:"fontFamily,omitempty"`
	FontSize     float64 `json:"fontSize,omitempty"`
	CornerRadius float64 `json:"cornerRadius,omitempty"`
}

// Endpoint is one end of a connector: either a free world point, or an
// anchor bound to another element by id. For anchored endpoints X/Y hold the
// last resolved world position so geometry stays usable without a store
// lookup; the resolver refreshes them whenever the anchor target moves.
type Endpoint struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	AnchorID string  `json:"anchorId,omitempty"`
	OffsetX  float64 `json:"offsetX,omitempty"`
	OffsetY  float64 `json:"offsetY,omitempty"`
}

// Anchored reports whether the endpoint is bound to another element.
func (e Endpoint) Anchored() bool { return e.AnchorID != "" }

// ConnectorData is the payload for TypeConnector and TypeMindmapEdge.
type ConnectorData struct {
	From Endpoint `json:"from"`
	To   Endpoint `json:"to"`
	// Routing is "straight", "orthogonal" or "curved".
	Routing string `json:"routing,omitempty"`
}

// TableData is the payload for TypeTable.
type TableData struct {
	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	Cells      [][]string `json:"cells"`
	RowHeights []float64  `json:"rowHeights,omitempty"`
	ColWidths  []float64  `json:"colWidths,omitempty"`
}

// MindmapData is the payload for TypeMindmapNode. ParentID embeds a rooted
// forest in the flat element map; parent/child is resolved at query time.
type MindmapData struct {
	ParentID  string `json:"parentId,omitempty"`
	Collapsed bool   `json:"collapsed,omitempty"`
}

// StrokeData is the payload for TypeDrawingStroke: a freehand polyline in
// world coordinates.
type StrokeData struct {
	Points []geom.Point `json:"points"`
	Closed bool         `json:"closed,omitempty"`
}

// ImageData is the payload for TypeImage.
type ImageData struct {
	AssetID       string  `json:"assetId"`
	NaturalWidth  float64 `json:"naturalWidth,omitempty"`
	NaturalHeight float64 `json:"naturalHeight,omitempty"`
}

// Element is the atomic scene-graph unit. ID is immutable and globally
// unique. Position and size are always finite. A connector's raw X/Y are
// conventionally 0,0; its effective position is derived from its endpoints.
type Element struct {
	ID       string  `json:"id"`
	Type     Type    `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
	Style    Style   `json:"style"`
	Text     string  `json:"text,omitempty"`

	Connector *ConnectorData `json:"connector,omitempty"`
	Table     *TableData     `json:"table,omitempty"`
	Mindmap   *MindmapData   `json:"mindmap,omitempty"`
	Stroke    *StrokeData    `json:"stroke,omitempty"`
	Image     *ImageData     `json:"image,omitempty"`

	CreatedAt int64 `json:"createdAt,omitempty"`
	UpdatedAt int64 `json:"updatedAt,omitempty"`
}

// Now returns the timestamp format elements carry (unix milliseconds).
func Now() int64 {
	return time.Now().UnixMilli()
}

// Clone returns a deep copy. Payload pointers are duplicated so patched
// copies never alias a previously returned snapshot.
func (el Element) Clone() Element {
	out := el
	if el.Connector != nil {
		c := *el.Connector
		out.Connector = &c
	}
	if el.Table != nil {
		t := *el.Table
		t.Cells = make([][]string, len(el.Table.Cells))
		for i, row := range el.Table.Cells {
			t.Cells[i] = append([]string(nil), row...)
		}
		t.RowHeights = append([]float64(nil), el.Table.RowHeights...)
		t.ColWidths = append([]float64(nil), el.Table.ColWidths...)
		out.Table = &t
	}
	if el.Mindmap != nil {
		m := *el.Mindmap
		out.Mindmap = &m
	}
	if el.Stroke != nil {
		s := *el.Stroke
		s.Points = append([]geom.Point(nil), el.Stroke.Points...)
		out.Stroke = &s
	}
	if el.Image != nil {
		img := *el.Image
		out.Image = &img
	}
	return out
}

// Position returns the element's effective position for selection and drag.
// Connectors and mindmap edges derive it from the midpoint of their two
// endpoints; everything else uses the raw x/y.
func (el Element) Position() geom.Point {
	switch el.Type {
	case TypeConnector, TypeMindmapEdge:
		if el.Connector != nil {
			return geom.Point{
				X: (el.Connector.From.X + el.Connector.To.X) / 2,
				Y: (el.Connector.From.Y + el.Connector.To.Y) / 2,
			}
		}
		return geom.Point{X: el.X, Y: el.Y}
	default:
		return geom.Point{X: el.X, Y: el.Y}
	}
}

// HasFreeEndpoint reports whether the connector has at least one endpoint
// not anchored to another element. Only such connectors are eligible for
// independent repositioning; a fully anchored connector follows its targets.
func (el Element) HasFreeEndpoint() bool {
	if el.Connector == nil {
		return false
	}
	return !el.Connector.From.Anchored() || !el.Connector.To.Anchored()
}

// Translate shifts the element by (dx, dy), covering position and any
// point-list geometry. Connector endpoints are both shifted by the same
// delta; the midpoint is never used as an update target.
func (el *Element) Translate(dx, dy float64) {
	switch el.Type {
	case TypeConnector, TypeMindmapEdge:
		if el.Connector != nil {
			el.Connector.From.X += dx
			el.Connector.From.Y += dy
			el.Connector.To.X += dx
			el.Connector.To.Y += dy
		}
	case TypeDrawingStroke:
		el.X += dx
		el.Y += dy
		if el.Stroke != nil {
			for i := range el.Stroke.Points {
				el.Stroke.Points[i].X += dx
				el.Stroke.Points[i].Y += dy
			}
		}
	default:
		el.X += dx
		el.Y += dy
	}
}
