package viewport

import (
	"math"
	"testing"

	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func TestRoundTrip(t *testing.T) {
	v := New(800, 600, 0, 0)
	v.SetScale(1.7)
	v.SetPan(-340, 125)

	for _, p := range []geom.Point{{X: 0, Y: 0}, {X: 123.4, Y: -567.8}, {X: 1e6, Y: 1e6}} {
		sx, sy := v.WorldToStage(p.X, p.Y)
		wx, wy := v.StageToWorld(sx, sy)
		if math.Abs(wx-p.X) > 1e-6 || math.Abs(wy-p.Y) > 1e-6 {
			t.Errorf("round trip of (%v, %v) gave (%v, %v)", p.X, p.Y, wx, wy)
		}
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	v := New(800, 600, 0, 0)
	v.SetPan(37, -12)

	wx, wy := v.StageToWorld(400, 300)
	v.ZoomAt(400, 300, 1.5)
	sx, sy := v.WorldToStage(wx, wy)
	if !approx(sx, 400) || !approx(sy, 300) {
		t.Errorf("fixed point drifted to (%v, %v)", sx, sy)
	}

	// Holds even when the zoom clamps at the scale ceiling.
	v.ZoomAt(100, 100, 100)
	if v.Scale() != DefaultMaxScale {
		t.Fatalf("scale = %v, want clamp at %v", v.Scale(), DefaultMaxScale)
	}
	wx, wy = v.StageToWorld(250, 250)
	v.ZoomAt(250, 250, 2)
	sx, sy = v.WorldToStage(wx, wy)
	if !approx(sx, 250) || !approx(sy, 250) {
		t.Errorf("fixed point drifted under clamped zoom: (%v, %v)", sx, sy)
	}
}

func TestScaleClamping(t *testing.T) {
	v := New(800, 600, 0.1, 4.0)

	v.SetScale(0.001)
	if v.Scale() != 0.1 {
		t.Errorf("scale = %v, want floor 0.1", v.Scale())
	}
	v.SetScale(99)
	if v.Scale() != 4.0 {
		t.Errorf("scale = %v, want ceiling 4.0", v.Scale())
	}
}

func TestNonFiniteInputsIgnored(t *testing.T) {
	v := New(800, 600, 0, 0)
	v.SetPan(10, 20)
	v.SetScale(2)

	v.SetPan(math.NaN(), 5)
	v.SetPan(5, math.Inf(1))
	v.SetScale(math.NaN())
	v.ZoomAt(400, 300, math.Inf(1))
	v.ZoomAt(400, 300, -1)

	if x, y := v.Pan(); x != 10 || y != 20 {
		t.Errorf("pan changed to (%v, %v)", x, y)
	}
	if v.Scale() != 2 {
		t.Errorf("scale changed to %v", v.Scale())
	}
}

func TestZoomSteps(t *testing.T) {
	v := New(800, 600, 0, 0)
	v.ZoomInCenter()
	if !approx(v.Scale(), ZoomStep) {
		t.Errorf("scale after zoom in = %v", v.Scale())
	}
	v.ZoomOutCenter()
	if !approx(v.Scale(), 1) {
		t.Errorf("scale after zoom out = %v", v.Scale())
	}
}

func TestFitToContent(t *testing.T) {
	v := New(800, 600, 0, 0)
	v.FitToContent(geom.Rect{X: 0, Y: 0, Width: 400, Height: 300}, 0)
	if !approx(v.Scale(), 2) {
		t.Fatalf("scale = %v, want 2", v.Scale())
	}
	// Content center lands on the stage center.
	sx, sy := v.WorldToStage(200, 150)
	if !approx(sx, 400) || !approx(sy, 300) {
		t.Errorf("content center at (%v, %v), want (400, 300)", sx, sy)
	}
}

func TestFitToContentDegenerateResets(t *testing.T) {
	v := New(800, 600, 0, 0)
	v.SetScale(3)
	v.SetPan(50, 50)

	v.FitToContent(geom.Rect{}, 0)
	if v.Scale() != 1 {
		t.Errorf("scale = %v, want reset to 1", v.Scale())
	}
	if x, y := v.Pan(); x != 0 || y != 0 {
		t.Errorf("pan = (%v, %v), want (0, 0)", x, y)
	}
}

func TestMatrixComposition(t *testing.T) {
	v := New(800, 600, 0, 0)
	v.SetScale(2)
	v.SetPan(100, 50)

	got := v.Matrix().ToSlice()
	want := []float64{2, 0, 0, 2, 100, 50}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("matrix = %v, want %v", got, want)
		}
	}
}

func TestRectMapping(t *testing.T) {
	v := New(800, 600, 0, 0)
	v.SetScale(2)
	v.SetPan(100, 50)

	r := geom.Rect{X: 10, Y: 20, Width: 30, Height: 40}
	s := v.WorldRectToStage(r)
	if s.X != 120 || s.Y != 90 || s.Width != 60 || s.Height != 80 {
		t.Errorf("stage rect = %+v", s)
	}
	back := v.StageRectToWorld(s)
	if back != r {
		t.Errorf("round trip rect = %+v, want %+v", back, r)
	}
}
