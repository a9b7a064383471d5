package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func TestTranslateThenScale(t *testing.T) {
	m := Scale(2, 2).Multiply(Translate(10, 5))
	x, y := m.TransformPoint(1, 1)
	if !approx(x, 22) || !approx(y, 12) {
		t.Errorf("got (%v, %v), want (22, 12)", x, y)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := FromRotation(30, -12, 37, 0, 0).Multiply(Scale(1.5, 0.75))
	inv := m.Invert()
	x, y := inv.TransformPoint(m.TransformPoint(42, -7))
	if !approx(x, 42) || !approx(y, -7) {
		t.Errorf("round trip gave (%v, %v)", x, y)
	}
	if x, y := m.Multiply(inv).TransformPoint(5, 9); !approx(x, 5) || !approx(y, 9) {
		t.Errorf("m * inverse moved the point to (%v, %v)", x, y)
	}
}

func TestInvertSingular(t *testing.T) {
	if got := Scale(0, 0).Invert(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestFromRotationKeepsAnchorFixed(t *testing.T) {
	// Anchor at the rect center; the center must map to (x+ax, y+ay)
	// regardless of angle.
	for _, deg := range []float64{0, 30, 90, 180, 270, -45} {
		m := FromRotation(100, 200, deg, 25, 10)
		x, y := m.TransformPoint(25, 10)
		if !approx(x, 125) || !approx(y, 210) {
			t.Errorf("deg=%v: anchor mapped to (%v, %v), want (125, 210)", deg, x, y)
		}
	}
}

func TestFromRotationQuarterTurnBounds(t *testing.T) {
	// A 100x50 rect rotated 90° around its center swaps its extents.
	m := FromRotation(0, 0, 90, 50, 25)
	b := m.TransformRect(Rect{Width: 100, Height: 50})
	if !approx(b.X, 25) || !approx(b.Y, -25) || !approx(b.Width, 50) || !approx(b.Height, 100) {
		t.Errorf("bounds = %+v, want {25 -25 50 100}", b)
	}
}

func TestToSlice(t *testing.T) {
	got := Translate(3, 4).ToSlice()
	want := []float64{1, 0, 0, 1, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slice = %v, want %v", got, want)
		}
	}
}
