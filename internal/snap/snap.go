// Package snap computes grid and smart-alignment snapping for a moving
// element against candidate bounds. Resolution is deterministic and
// UI-agnostic; X and Y snap independently, so a result may snap to the grid
// on one axis and to an element edge on the other.
package snap

import (
	"math"

	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
)

// DefaultThreshold is the snap acceptance distance in world units.
const DefaultThreshold = 6.0

type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

type Kind string

const (
	KindEdge   Kind = "edge"
	KindCenter Kind = "center"
	KindGrid   Kind = "grid"
)

// Guide is one alignment line to render: a vertical line at Value for
// AxisX, horizontal for AxisY.
type Guide struct {
	Axis  Axis
	Kind  Kind
	Value float64
	From  geom.Point
	To    geom.Point
}

// Options controls which snap sources apply and the acceptance threshold.
type Options struct {
	Threshold      float64
	GridSize       float64
	SnapToGrid     bool
	SnapToElements bool
}

// Result carries the resolved per-axis delta and the guides to render.
type Result struct {
	DX       float64
	DY       float64
	SnappedX bool
	SnappedY bool
	Guides   []Guide
}

type axisBest struct {
	delta float64
	dist  float64
	guide Guide
	hit   bool
}

func (b *axisBest) consider(delta, threshold float64, g Guide) {
	dist := math.Abs(delta)
	if dist > threshold {
		return
	}
	if !b.hit || dist < b.dist {
		b.hit = true
		b.dist = dist
		b.delta = delta
		b.guide = g
	}
}

// Resolve computes the minimal-distance snap delta per axis for moving
// against candidates. Grid snapping is evaluated first; an element
// alignment match overrides it per axis when closer.
func Resolve(moving geom.Rect, candidates []geom.Rect, opts Options) Result {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}

	var bestX, bestY axisBest

	if opts.SnapToGrid && opts.GridSize > 0 {
		considerGrid(&bestX, &bestY, moving, opts)
	}
	if opts.SnapToElements {
		for _, c := range candidates {
			considerElement(&bestX, &bestY, moving, c, opts.Threshold)
		}
	}

	var res Result
	if bestX.hit {
		res.DX = -bestX.delta
		res.SnappedX = true
		res.Guides = append(res.Guides, bestX.guide)
	}
	if bestY.hit {
		res.DY = -bestY.delta
		res.SnappedY = true
		res.Guides = append(res.Guides, bestY.guide)
	}
	res.Guides = dedupe(res.Guides)
	return res
}

// considerGrid tests the three representative points per axis (leading
// edge, center, trailing edge) against the nearest grid multiple.
func considerGrid(bestX, bestY *axisBest, moving geom.Rect, opts Options) {
	grid := opts.GridSize
	for _, x := range []float64{moving.X, moving.X + moving.Width/2, moving.Right()} {
		target := math.Round(x/grid) * grid
		bestX.consider(x-target, opts.Threshold, verticalGuide(target, moving, moving, KindGrid))
	}
	for _, y := range []float64{moving.Y, moving.Y + moving.Height/2, moving.Bottom()} {
		target := math.Round(y/grid) * grid
		bestY.consider(y-target, opts.Threshold, horizontalGuide(target, moving, moving, KindGrid))
	}
}

// considerElement tests edge and center pairs between the moving rect and
// one candidate: like-to-like edges, abutting edges, and center-to-center.
func considerElement(bestX, bestY *axisBest, m, c geom.Rect, threshold float64) {
	mL, mR, mCX := m.X, m.Right(), m.X+m.Width/2
	cL, cR, cCX := c.X, c.Right(), c.X+c.Width/2

	bestX.consider(mL-cL, threshold, verticalGuide(cL, m, c, KindEdge))
	bestX.consider(mR-cR, threshold, verticalGuide(cR, m, c, KindEdge))
	bestX.consider(mL-cR, threshold, verticalGuide(cR, m, c, KindEdge))
	bestX.consider(mR-cL, threshold, verticalGuide(cL, m, c, KindEdge))
	bestX.consider(mCX-cCX, threshold, verticalGuide(cCX, m, c, KindCenter))

	mT, mB, mCY := m.Y, m.Bottom(), m.Y+m.Height/2
	cT, cB, cCY := c.Y, c.Bottom(), c.Y+c.Height/2

	bestY.consider(mT-cT, threshold, horizontalGuide(cT, m, c, KindEdge))
	bestY.consider(mB-cB, threshold, horizontalGuide(cB, m, c, KindEdge))
	bestY.consider(mT-cB, threshold, horizontalGuide(cB, m, c, KindEdge))
	bestY.consider(mB-cT, threshold, horizontalGuide(cT, m, c, KindEdge))
	bestY.consider(mCY-cCY, threshold, horizontalGuide(cCY, m, c, KindCenter))
}

func verticalGuide(x float64, a, b geom.Rect, kind Kind) Guide {
	minY := min(a.Y, b.Y)
	maxY := max(a.Bottom(), b.Bottom())
	x = round3(x)
	return Guide{
		Axis:  AxisX,
		Kind:  kind,
		Value: x,
		From:  geom.Point{X: x, Y: minY},
		To:    geom.Point{X: x, Y: maxY},
	}
}

func horizontalGuide(y float64, a, b geom.Rect, kind Kind) Guide {
	minX := min(a.X, b.X)
	maxX := max(a.Right(), b.Right())
	y = round3(y)
	return Guide{
		Axis:  AxisY,
		Kind:  kind,
		Value: y,
		From:  geom.Point{X: minX, Y: y},
		To:    geom.Point{X: maxX, Y: y},
	}
}

// dedupe drops guides with identical axis, value and kind.
func dedupe(guides []Guide) []Guide {
	if len(guides) < 2 {
		return guides
	}
	type key struct {
		axis  Axis
		kind  Kind
		value float64
	}
	seen := make(map[key]bool, len(guides))
	out := guides[:0]
	for _, g := range guides {
		k := key{g.Axis, g.Kind, g.Value}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, g)
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
