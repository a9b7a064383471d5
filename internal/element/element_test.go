package element

import (
	"math"
	"testing"

	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBoundsPlainShape(t *testing.T) {
	el := Element{Type: TypeRectangle, X: 10, Y: 20, Width: 100, Height: 50}
	b := el.Bounds()
	if b != (geom.Rect{X: 10, Y: 20, Width: 100, Height: 50}) {
		t.Errorf("bounds = %+v", b)
	}
}

func TestBoundsRotated(t *testing.T) {
	// 100x50 at origin, rotated a quarter turn around its center: the AABB
	// swaps extents and stays centered.
	el := Element{Type: TypeRectangle, Width: 100, Height: 50, Rotation: 90}
	b := el.Bounds()
	if !approx(b.X, 25) || !approx(b.Y, -25) || !approx(b.Width, 50) || !approx(b.Height, 100) {
		t.Errorf("rotated bounds = %+v, want {25 -25 50 100}", b)
	}
}

func TestBoundsConnector(t *testing.T) {
	el := Element{
		Type: TypeConnector,
		Connector: &ConnectorData{
			From: Endpoint{X: 925.5, Y: 319.5},
			To:   Endpoint{X: 840, Y: 346.5},
		},
	}
	b := el.Bounds()
	if b.X != 840 || b.Y != 319.5 || b.Width != 85.5 || b.Height != 27 {
		t.Errorf("connector bounds = %+v", b)
	}
}

func TestBoundsStroke(t *testing.T) {
	el := Element{
		Type: TypeDrawingStroke,
		Stroke: &StrokeData{Points: []geom.Point{
			{X: 5, Y: 40}, {X: -10, Y: 12}, {X: 30, Y: 25},
		}},
	}
	b := el.Bounds()
	if b.X != -10 || b.Y != 12 || b.Width != 40 || b.Height != 28 {
		t.Errorf("stroke bounds = %+v", b)
	}
}

func TestPositionConnectorMidpoint(t *testing.T) {
	el := Element{
		Type: TypeConnector,
		Connector: &ConnectorData{
			From: Endpoint{X: 100, Y: 200},
			To:   Endpoint{X: 300, Y: 400},
		},
	}
	p := el.Position()
	if p.X != 200 || p.Y != 300 {
		t.Errorf("position = %+v, want midpoint (200, 300)", p)
	}
}

func TestTranslateConnectorShiftsBothEndpoints(t *testing.T) {
	el := Element{
		Type: TypeConnector,
		Connector: &ConnectorData{
			From: Endpoint{X: 840, Y: 319.5},
			To:   Endpoint{X: 925.5, Y: 346.5},
		},
	}
	el.Translate(100, 50)
	if el.Connector.From.X != 940 || el.Connector.From.Y != 369.5 {
		t.Errorf("from = %+v", el.Connector.From)
	}
	if el.Connector.To.X != 1025.5 || el.Connector.To.Y != 396.5 {
		t.Errorf("to = %+v", el.Connector.To)
	}
}

func TestTranslateStrokeShiftsPoints(t *testing.T) {
	el := Element{
		Type:   TypeDrawingStroke,
		X:      10,
		Y:      10,
		Stroke: &StrokeData{Points: []geom.Point{{X: 10, Y: 10}, {X: 20, Y: 30}}},
	}
	el.Translate(5, -5)
	if el.X != 15 || el.Y != 5 {
		t.Errorf("position = (%v, %v)", el.X, el.Y)
	}
	if el.Stroke.Points[0] != (geom.Point{X: 15, Y: 5}) || el.Stroke.Points[1] != (geom.Point{X: 25, Y: 25}) {
		t.Errorf("points = %+v", el.Stroke.Points)
	}
}

func TestCloneIsDeep(t *testing.T) {
	el := Element{
		Type:      TypeConnector,
		Connector: &ConnectorData{From: Endpoint{X: 1}, To: Endpoint{X: 2}},
	}
	c := el.Clone()
	c.Connector.From.X = 99
	if el.Connector.From.X != 1 {
		t.Error("clone shares connector payload with original")
	}

	tbl := Element{
		Type:  TypeTable,
		Table: &TableData{Rows: 1, Cols: 2, Cells: [][]string{{"a", "b"}}},
	}
	tc := tbl.Clone()
	tc.Table.Cells[0][0] = "mutated"
	if tbl.Table.Cells[0][0] != "a" {
		t.Error("clone shares table cells with original")
	}

	st := Element{Type: TypeDrawingStroke, Stroke: &StrokeData{Points: []geom.Point{{X: 1}}}}
	sc := st.Clone()
	sc.Stroke.Points[0].X = 99
	if st.Stroke.Points[0].X != 1 {
		t.Error("clone shares stroke points with original")
	}
}

func TestHasFreeEndpoint(t *testing.T) {
	free := Element{Type: TypeConnector, Connector: &ConnectorData{
		From: Endpoint{AnchorID: "el_a"},
		To:   Endpoint{X: 10, Y: 10},
	}}
	if !free.HasFreeEndpoint() {
		t.Error("one anchored endpoint should leave the connector free")
	}

	bound := Element{Type: TypeConnector, Connector: &ConnectorData{
		From: Endpoint{AnchorID: "el_a"},
		To:   Endpoint{AnchorID: "el_b"},
	}}
	if bound.HasFreeEndpoint() {
		t.Error("fully anchored connector should not be free")
	}

	if (Element{Type: TypeRectangle}).HasFreeEndpoint() {
		t.Error("non-connector should report no free endpoint")
	}
}
