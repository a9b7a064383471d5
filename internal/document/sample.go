package document

import (
	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
)

// NewSampleDocument builds the built-in demo board: a couple of shapes, a
// sticky note, a connector between the shapes and a small mindmap. Used by
// the playground and by the wasm host before any board is loaded.
func NewSampleDocument(boardID string) *BoardDocument {
	d := NewEmptyDocument(boardID, "Welcome board")

	add := func(el element.Element) {
		d.Elements[el.ID] = el
		d.Order = append(d.Order, el.ID)
	}

	add(element.Element{
		ID: "el_sample_rect", Type: element.TypeRectangle,
		X: 120, Y: 140, Width: 220, Height: 140,
		Style: element.Style{Fill: "#ffd966", Stroke: "#b38f00", StrokeWidth: 2},
	})
	add(element.Element{
		ID: "el_sample_circle", Type: element.TypeCircle,
		X: 520, Y: 160, Width: 120, Height: 120,
		Style: element.Style{Fill: "#9fc5e8", Stroke: "#2a6099", StrokeWidth: 2},
	})
	add(element.Element{
		ID: "el_sample_note", Type: element.TypeStickyNote,
		X: 160, Y: 380, Width: 180, Height: 180,
		Text:  "Drag me around",
		Style: element.Style{Fill: "#fff2a8", FontFamily: "sans-serif", FontSize: 16},
	})
	add(element.Element{
		ID: "conn_sample", Type: element.TypeConnector,
		Connector: &element.ConnectorData{
			From:    element.Endpoint{X: 340, Y: 210, AnchorID: "el_sample_rect"},
			To:      element.Endpoint{X: 520, Y: 220, AnchorID: "el_sample_circle"},
			Routing: "straight",
		},
		Style: element.Style{Stroke: "#555555", StrokeWidth: 2},
	})

	add(element.Element{
		ID: "el_sample_mm_root", Type: element.TypeMindmapNode,
		X: 760, Y: 420, Width: 160, Height: 56,
		Text:    "Ideas",
		Mindmap: &element.MindmapData{},
		Style:   element.Style{Fill: "#d9ead3", Stroke: "#5a8f52", StrokeWidth: 1.5},
	})
	add(element.Element{
		ID: "el_sample_mm_child", Type: element.TypeMindmapNode,
		X: 980, Y: 500, Width: 140, Height: 48,
		Text:    "First one",
		Mindmap: &element.MindmapData{ParentID: "el_sample_mm_root"},
		Style:   element.Style{Fill: "#d9ead3", Stroke: "#5a8f52", StrokeWidth: 1.5},
	})
	add(element.Element{
		ID: "conn_sample_mm", Type: element.TypeMindmapEdge,
		Connector: &element.ConnectorData{
			From: element.Endpoint{X: 920, Y: 448, AnchorID: "el_sample_mm_root"},
			To:   element.Endpoint{X: 980, Y: 524, AnchorID: "el_sample_mm_child"},
		},
		Style: element.Style{Stroke: "#5a8f52", StrokeWidth: 1.5},
	})

	return d
}
