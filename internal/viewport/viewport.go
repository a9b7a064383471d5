// Package viewport maintains pan/zoom state and the world <-> stage
// coordinate mapping: stage = world*scale + pan.
package viewport

import (
	"math"

	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
)

const (
	DefaultMinScale = 0.1
	DefaultMaxScale = 4.0

	// ZoomStep is the multiplicative step for ZoomIn/ZoomOut.
	ZoomStep = 1.2
)

type Viewport struct {
	scale float64
	panX  float64
	panY  float64

	minScale float64
	maxScale float64

	// stage size in pixels, for centering operations
	width  float64
	height float64
}

// New creates a viewport at identity (scale 1, pan 0,0) with the given
// stage size. Non-positive scale bounds fall back to the defaults.
func New(width, height, minScale, maxScale float64) *Viewport {
	if minScale <= 0 {
		minScale = DefaultMinScale
	}
	if maxScale <= 0 || maxScale < minScale {
		maxScale = DefaultMaxScale
	}
	return &Viewport{
		scale:    1,
		minScale: minScale,
		maxScale: maxScale,
		width:    width,
		height:   height,
	}
}

// Scale returns the current zoom factor.
func (v *Viewport) Scale() float64 { return v.scale }

// Pan returns the current pan offset in stage pixels.
func (v *Viewport) Pan() (x, y float64) { return v.panX, v.panY }

// Size returns the stage size in pixels.
func (v *Viewport) Size() (w, h float64) { return v.width, v.height }

// Resize updates the stage size (window resize); pan and scale are kept.
func (v *Viewport) Resize(width, height float64) {
	v.width = width
	v.height = height
}

// SetPan sets the pan offset. Non-finite inputs are ignored.
func (v *Viewport) SetPan(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	v.panX = x
	v.panY = y
}

// SetScale sets the zoom factor, clamped to [minScale, maxScale].
// Non-finite input is ignored.
func (v *Viewport) SetScale(s float64) {
	if !finite(s) {
		return
	}
	v.scale = clamp(s, v.minScale, v.maxScale)
}

// matrix composes the world -> stage affine transform: translate by the
// pan offset after scaling.
func (v *Viewport) matrix() geom.Matrix2D {
	return geom.Translate(v.panX, v.panY).Multiply(geom.Scale(v.scale, v.scale))
}

// Matrix returns the world -> stage transform, for hosts that apply it to
// the stage container wholesale instead of mapping individual points.
func (v *Viewport) Matrix() geom.Matrix2D { return v.matrix() }

// WorldToStage maps a world point to stage pixels.
func (v *Viewport) WorldToStage(x, y float64) (float64, float64) {
	return v.matrix().TransformPoint(x, y)
}

// StageToWorld is the inverse mapping. Scale is clamped away from zero by
// construction, so the matrix always inverts.
func (v *Viewport) StageToWorld(x, y float64) (float64, float64) {
	return v.matrix().Invert().TransformPoint(x, y)
}

// WorldRectToStage maps a world rect to stage pixels.
func (v *Viewport) WorldRectToStage(r geom.Rect) geom.Rect {
	return v.matrix().TransformRect(r)
}

// StageRectToWorld maps a stage rect to world units.
func (v *Viewport) StageRectToWorld(r geom.Rect) geom.Rect {
	return v.matrix().Invert().TransformRect(r)
}

// ZoomAt zooms by factor keeping the world point under the given stage
// point fixed: the pre-zoom world point at (stageX, stageY) maps back to
// (stageX, stageY) after the zoom.
func (v *Viewport) ZoomAt(stageX, stageY, factor float64) {
	if !finite(factor) || factor <= 0 {
		return
	}
	wx, wy := v.StageToWorld(stageX, stageY)
	v.scale = clamp(v.scale*factor, v.minScale, v.maxScale)
	// Solve pan so (wx, wy) maps back to (stageX, stageY).
	v.panX = stageX - wx*v.scale
	v.panY = stageY - wy*v.scale
}

// ZoomIn zooms one step around the given stage point.
func (v *Viewport) ZoomIn(stageX, stageY float64) {
	v.ZoomAt(stageX, stageY, ZoomStep)
}

// ZoomOut zooms one step out around the given stage point.
func (v *Viewport) ZoomOut(stageX, stageY float64) {
	v.ZoomAt(stageX, stageY, 1/ZoomStep)
}

// ZoomInCenter zooms one step around the viewport center.
func (v *Viewport) ZoomInCenter() { v.ZoomIn(v.width/2, v.height/2) }

// ZoomOutCenter zooms one step out around the viewport center.
func (v *Viewport) ZoomOutCenter() { v.ZoomOut(v.width/2, v.height/2) }

// FitToContent sets scale and pan so bounds (expanded by padding) fills the
// stage, centered. Degenerate bounds or a zero-size stage reset to
// identity.
func (v *Viewport) FitToContent(bounds geom.Rect, padding float64) {
	b := bounds.Pad(padding)
	if b.IsEmpty() || v.width <= 0 || v.height <= 0 {
		v.Reset()
		return
	}

	s := min(v.width/b.Width, v.height/b.Height)
	v.scale = clamp(s, v.minScale, v.maxScale)

	cx, cy := b.Center()
	v.panX = v.width/2 - cx*v.scale
	v.panY = v.height/2 - cy*v.scale
}

// Reset returns to identity: scale 1, pan (0,0).
func (v *Viewport) Reset() {
	v.scale = 1
	v.panX = 0
	v.panY = 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
