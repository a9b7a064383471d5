package export

import (
	"strings"
	"testing"

	"github.com/driftdesk/driftdesk/canvas-go/internal/document"
	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
)

func doc(els ...element.Element) *document.BoardDocument {
	d := document.NewEmptyDocument("board_x", "Test board")
	for _, el := range els {
		d.Elements[el.ID] = el
		d.Order = append(d.Order, el.ID)
	}
	return d
}

func TestEmptyBoard(t *testing.T) {
	out := SVG(doc())
	if !strings.Contains(out, `viewBox="-20 -20 140 140"`) {
		t.Errorf("empty board viewBox wrong:\n%s", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("missing closing tag")
	}
}

func TestViewBoxWrapsContent(t *testing.T) {
	out := SVG(doc(element.Element{
		ID: "el_a", Type: element.TypeRectangle,
		X: 10, Y: 10, Width: 100, Height: 50,
	}))
	if !strings.Contains(out, `viewBox="-10 -10 140 90"`) {
		t.Errorf("viewBox wrong:\n%s", out)
	}
}

func TestViewBoxIncludesConnectorLine(t *testing.T) {
	// A perfectly horizontal connector has zero-height bounds; the export
	// must still frame it instead of falling back to the blank canvas.
	out := SVG(doc(element.Element{
		ID: "conn_a", Type: element.TypeConnector,
		Connector: &element.ConnectorData{
			From: element.Endpoint{X: 10, Y: 50},
			To:   element.Endpoint{X: 210, Y: 50},
		},
	}))
	if !strings.Contains(out, `viewBox="-10 30 240 40"`) {
		t.Errorf("horizontal connector viewBox wrong:\n%s", out)
	}
}

func TestShapeMapping(t *testing.T) {
	out := SVG(doc(
		element.Element{
			ID: "el_r", Type: element.TypeRectangle,
			X: 0, Y: 0, Width: 100, Height: 50,
			Style: element.Style{Fill: "#ffcc00", Stroke: "#333333", StrokeWidth: 2},
		},
		element.Element{
			ID: "el_c", Type: element.TypeCircle,
			X: 200, Y: 0, Width: 60, Height: 60,
		},
		element.Element{
			ID: "conn_a", Type: element.TypeConnector,
			Connector: &element.ConnectorData{
				From: element.Endpoint{X: 100, Y: 25},
				To:   element.Endpoint{X: 200, Y: 30},
			},
			Style: element.Style{Stroke: "#555555", StrokeWidth: 2},
		},
	))

	if !strings.Contains(out, `<rect x="0" y="0" width="100" height="50" fill="#ffcc00" stroke="#333333" stroke-width="2"/>`) {
		t.Errorf("rect missing:\n%s", out)
	}
	if !strings.Contains(out, `<ellipse cx="230" cy="30" rx="30" ry="30"`) {
		t.Errorf("ellipse missing:\n%s", out)
	}
	if !strings.Contains(out, `<line x1="100" y1="25" x2="200" y2="30"`) {
		t.Errorf("line missing:\n%s", out)
	}
}

func TestPaintOrderPreserved(t *testing.T) {
	out := SVG(doc(
		element.Element{ID: "el_back", Type: element.TypeRectangle, Width: 50, Height: 50},
		element.Element{ID: "el_front", Type: element.TypeCircle, Width: 50, Height: 50},
	))
	rectAt := strings.Index(out, "<rect")
	ellipseAt := strings.Index(out, "<ellipse")
	if rectAt < 0 || ellipseAt < 0 || rectAt > ellipseAt {
		t.Errorf("paint order not preserved (rect at %d, ellipse at %d)", rectAt, ellipseAt)
	}
}

func TestTextEscaped(t *testing.T) {
	out := SVG(doc(element.Element{
		ID: "el_t", Type: element.TypeText,
		X: 0, Y: 0, Width: 200, Height: 40,
		Text: `<script>&"hi"`,
	}))
	if strings.Contains(out, "<script>") {
		t.Fatal("text not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;&amp;&#34;hi&#34;") {
		t.Errorf("escaped text missing:\n%s", out)
	}
}

func TestOpenStrokeHasNoFill(t *testing.T) {
	out := SVG(doc(element.Element{
		ID: "el_s", Type: element.TypeDrawingStroke,
		Stroke: &element.StrokeData{Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 0}}},
		Style:  element.Style{Stroke: "#000000", StrokeWidth: 3},
	}))
	if !strings.Contains(out, `<polyline points="0,0 10,5 20,0" fill="none" stroke="#000000" stroke-width="3"/>`) {
		t.Errorf("polyline wrong:\n%s", out)
	}
}

func TestClosedStrokeIsPolygon(t *testing.T) {
	out := SVG(doc(element.Element{
		ID: "el_s", Type: element.TypeDrawingStroke,
		Stroke: &element.StrokeData{
			Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}},
			Closed: true,
		},
		Style: element.Style{Fill: "#eeeeee"},
	}))
	if !strings.Contains(out, `<polygon points="0,0 10,0 5,10" fill="#eeeeee"/>`) {
		t.Errorf("polygon wrong:\n%s", out)
	}
}

func TestRotationTransform(t *testing.T) {
	out := SVG(doc(element.Element{
		ID: "el_r", Type: element.TypeRectangle,
		X: 0, Y: 0, Width: 100, Height: 50, Rotation: 45,
	}))
	if !strings.Contains(out, `transform="rotate(45 50 25)"`) {
		t.Errorf("rotation transform missing:\n%s", out)
	}
}

func TestFractionalCoordinatesTrimmed(t *testing.T) {
	out := SVG(doc(element.Element{
		ID: "el_r", Type: element.TypeRectangle,
		X: 10.5, Y: 0.125, Width: 50, Height: 50,
	}))
	if !strings.Contains(out, `x="10.5"`) || !strings.Contains(out, `y="0.125"`) {
		t.Errorf("fractional trim wrong:\n%s", out)
	}
}
