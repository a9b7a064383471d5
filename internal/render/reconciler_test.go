package render

import (
	"strings"
	"testing"

	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
	"github.com/driftdesk/driftdesk/canvas-go/internal/snap"
	"github.com/driftdesk/driftdesk/canvas-go/internal/store"
)

func newMounted(t *testing.T) (*store.Store, *Reconciler, func()) {
	t.Helper()
	st := store.New()
	r := NewReconciler(st, NewPool(0))
	dispose := r.Mount()
	return st, r, dispose
}

func rect(id string, x, y float64) element.Element {
	return element.Element{
		ID: id, Type: element.TypeRectangle,
		X: x, Y: y, Width: 50, Height: 50,
		Style: element.Style{Fill: "#ffcc00", Stroke: "#333333", StrokeWidth: 2},
	}
}

func TestMountBuildsExistingNodes(t *testing.T) {
	st := store.New()
	st.Add(rect("el_a", 10, 20))
	st.Add(rect("el_b", 100, 100))

	r := NewReconciler(st, NewPool(0))
	r.Mount()

	if r.NodeCount() != 2 {
		t.Fatalf("node count = %d, want 2", r.NodeCount())
	}
	n, ok := r.NodeFor("el_a")
	if !ok {
		t.Fatal("no node for el_a")
	}
	if n.X != 10 || n.Y != 20 || n.Width != 50 || n.Height != 50 {
		t.Errorf("node geometry = %+v", n)
	}
	if n.Fill != "#ffcc00" || n.Layer != LayerMain {
		t.Errorf("node attrs = %+v", n)
	}
	if n.Opacity != 1 {
		t.Errorf("unset style opacity should default to 1, got %v", n.Opacity)
	}
}

func TestStoreChangesFlowToNodes(t *testing.T) {
	st, r, _ := newMounted(t)

	st.Add(rect("el_a", 0, 0))
	if r.NodeCount() != 1 {
		t.Fatalf("add did not create a node")
	}

	st.Update("el_a", func(el *element.Element) { el.X = 77 })
	if n, _ := r.NodeFor("el_a"); n.X != 77 {
		t.Errorf("update not mirrored: X = %v", n.X)
	}

	st.Remove("el_a")
	if r.NodeCount() != 0 {
		t.Errorf("remove left %d nodes", r.NodeCount())
	}
	if got := r.Layer(LayerMain); len(got) != 0 {
		t.Errorf("main layer still has %d nodes", len(got))
	}
}

func TestMainLayerFollowsPaintOrder(t *testing.T) {
	st, r, _ := newMounted(t)
	st.Add(rect("el_a", 0, 0))
	st.Add(rect("el_b", 0, 0))
	st.Add(rect("el_c", 0, 0))

	st.BringToFront("el_a")

	layer := r.Layer(LayerMain)
	if len(layer) != 3 || layer[2].ID != "el_a" {
		ids := make([]string, len(layer))
		for i, n := range layer {
			ids[i] = n.ID
		}
		t.Errorf("main layer order = %v, want el_a last", ids)
	}
}

func TestGeometryCommitResetsScale(t *testing.T) {
	st, r, _ := newMounted(t)
	st.Add(rect("el_a", 0, 0))

	n, _ := r.NodeFor("el_a")
	n.ScaleX, n.ScaleY = 1.4, 1.4 // transform preview in flight

	st.Update("el_a", func(el *element.Element) { el.Width = 70 })
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("scale = (%v, %v), want reset to 1", n.ScaleX, n.ScaleY)
	}
	if n.Width != 70 {
		t.Errorf("width = %v", n.Width)
	}
}

func TestConnectorNodeCarriesEndpoints(t *testing.T) {
	st, r, _ := newMounted(t)
	st.Add(element.Element{
		ID: "conn_a", Type: element.TypeConnector,
		Connector: &element.ConnectorData{
			From: element.Endpoint{X: 10, Y: 20},
			To:   element.Endpoint{X: 110, Y: 40},
		},
	})

	n, ok := r.NodeFor("conn_a")
	if !ok {
		t.Fatal("no node for connector")
	}
	if len(n.Points) != 2 || n.Points[0] != (geom.Point{X: 10, Y: 20}) || n.Points[1] != (geom.Point{X: 110, Y: 40}) {
		t.Errorf("points = %v", n.Points)
	}
	if n.X != 10 || n.Y != 20 || n.Width != 100 || n.Height != 20 {
		t.Errorf("connector bounds = %+v", n)
	}
}

func TestDisposeStopsReconciliation(t *testing.T) {
	st, r, dispose := newMounted(t)
	st.Add(rect("el_a", 0, 0))

	dispose()
	if r.NodeCount() != 0 {
		t.Fatalf("dispose left %d nodes", r.NodeCount())
	}

	st.Add(rect("el_b", 0, 0))
	if r.NodeCount() != 0 {
		t.Error("mutation after dispose created nodes")
	}

	dispose()
}

func TestSyncOverlay(t *testing.T) {
	_, r, _ := newMounted(t)

	marquee := &geom.Rect{X: 5, Y: 5, Width: 40, Height: 30}
	r.SyncOverlay(
		[]geom.Rect{{X: 0, Y: 0, Width: 50, Height: 50}},
		marquee,
		[]snap.Guide{{From: geom.Point{X: 100, Y: 0}, To: geom.Point{X: 100, Y: 300}}},
	)

	overlay := r.Layer(LayerOverlay)
	if len(overlay) != 3 {
		t.Fatalf("overlay has %d nodes, want 3", len(overlay))
	}
	if overlay[0].Key != "selection-outline" || overlay[0].Dashed {
		t.Errorf("selection node = %+v", overlay[0])
	}
	if overlay[1].Key != "marquee" || !overlay[1].Dashed || overlay[1].Width != 40 {
		t.Errorf("marquee node = %+v", overlay[1])
	}
	if overlay[2].Key != "guide" || len(overlay[2].Points) != 2 {
		t.Errorf("guide node = %+v", overlay[2])
	}

	// Clearing the interaction state empties the layer.
	r.SyncOverlay(nil, nil, nil)
	if got := r.Layer(LayerOverlay); len(got) != 0 {
		t.Errorf("overlay not cleared: %d nodes", len(got))
	}
}

func TestTakeDirtyCoalesces(t *testing.T) {
	st, r, _ := newMounted(t)
	r.TakeDirty()

	st.Add(rect("el_a", 0, 0))
	st.Add(rect("el_b", 0, 0))
	st.Update("el_a", func(el *element.Element) { el.X = 1 })

	dirty := r.TakeDirty()
	if len(dirty) != 1 || dirty[0] != LayerMain {
		t.Errorf("dirty = %v, want [main]", dirty)
	}
	if got := r.TakeDirty(); len(got) != 0 {
		t.Errorf("second take = %v, want none", got)
	}
}

func TestCompile(t *testing.T) {
	st, r, _ := newMounted(t)
	st.Add(rect("el_a", 0, 0))
	st.Add(element.Element{
		ID: "el_c", Type: element.TypeCircle,
		X: 200, Y: 0, Width: 60, Height: 60,
	})
	r.SyncOverlay([]geom.Rect{{X: 0, Y: 0, Width: 50, Height: 50}}, nil, nil)

	cmds := r.Compile()
	if len(cmds) != 3 {
		t.Fatalf("compiled %d commands, want 3", len(cmds))
	}
	if cmds[0].Op != "rect" || cmds[0].Layer != "main" {
		t.Errorf("first command = %+v", cmds[0])
	}
	if cmds[1].Op != "ellipse" {
		t.Errorf("circle op = %q", cmds[1].Op)
	}
	// Overlay paints last.
	if cmds[2].Layer != "overlay" {
		t.Errorf("last command layer = %q", cmds[2].Layer)
	}

	// Preview scale multiplies into the emitted size.
	n, _ := r.NodeFor("el_a")
	n.ScaleX = 2
	cmds = r.Compile()
	if cmds[0].Width != 100 {
		t.Errorf("scaled width = %v, want 100", cmds[0].Width)
	}

	// Hidden nodes are skipped.
	n.Visible = false
	if got := r.Compile(); len(got) != 2 {
		t.Errorf("compile with hidden node = %d commands", len(got))
	}
}

func TestCommandsToJSON(t *testing.T) {
	if got, err := CommandsToJSON(nil); err != nil || got != "[]" {
		t.Errorf("empty = %q err=%v", got, err)
	}
	out, err := CommandsToJSON([]DrawCommand{{Op: "rect", Layer: "main", Width: 50}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"op":"rect"`) || !strings.Contains(out, `"width":50`) {
		t.Errorf("json = %s", out)
	}
}
