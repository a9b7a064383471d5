package interact

import (
	"math"

	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
)

// MinElementSize is the floor for resize commits, in world units.
const MinElementSize = 50.0

// TransformSession captures one element's geometry at transform start and
// commits the accumulated scale at transform end. The committed element
// always carries plain width/height; scale factors never persist as a
// multiplier across commits.
type TransformSession struct {
	engine *Engine

	id       string
	width    float64
	height   float64
	aspect   float64
	active   bool
	rotation float64
}

// BeginTransform opens a resize/rotate session for id. Returns nil for a
// stale id.
func (e *Engine) BeginTransform(id string) *TransformSession {
	el, ok := e.store.Get(id)
	if !ok {
		return nil
	}
	aspect := 1.0
	if el.Height != 0 {
		aspect = el.Width / el.Height
	}
	e.index.BeginDeferred()
	return &TransformSession{
		engine:   e,
		id:       id,
		width:    el.Width,
		height:   el.Height,
		aspect:   aspect,
		rotation: el.Rotation,
		active:   true,
	}
}

// End commits the accumulated scale factors as new width/height, enforcing
// the minimum size floor. With lockAspect, the dimension with the larger
// relative delta drives and the other is re-derived from the captured
// aspect ratio. rotation is the absolute final rotation in degrees.
// Idempotent: a second End is a no-op.
func (t *TransformSession) End(scaleX, scaleY, rotation float64, lockAspect bool) {
	if t == nil || !t.active {
		return
	}
	t.active = false
	defer t.engine.index.EndDeferred()

	if !finiteF(scaleX) || scaleX <= 0 {
		scaleX = 1
	}
	if !finiteF(scaleY) || scaleY <= 0 {
		scaleY = 1
	}

	newW := t.width * scaleX
	newH := t.height * scaleY

	if lockAspect && t.aspect > 0 {
		// The axis the user pulled harder wins; the other follows.
		if math.Abs(scaleX-1) >= math.Abs(scaleY-1) {
			newH = newW / t.aspect
		} else {
			newW = newH * t.aspect
		}
	}

	newW = max(newW, MinElementSize)
	newH = max(newH, MinElementSize)

	t.engine.hist.WithUndo("resize", func() {
		t.engine.store.Update(t.id, func(el *element.Element) {
			el.Width = newW
			el.Height = newH
			if finiteF(rotation) {
				el.Rotation = rotation
			}
		})
	})
}

// Abort discards the session without committing.
func (t *TransformSession) Abort() {
	if t == nil || !t.active {
		return
	}
	t.active = false
	t.engine.index.EndDeferred()
}

func finiteF(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
