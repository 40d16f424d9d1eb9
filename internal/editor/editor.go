package editor

import (
	"github.com/papercrane/docscan/internal/geometry"
)

// DefaultTouchRadius is the default grab distance, in view pixels, within
// which a touch-down captures a corner.
const DefaultTouchRadius = 70.0

// Action identifies the phase of a touch event.
type Action int

const (
	ActionDown Action = iota
	ActionMove
	ActionUp
	ActionCancel
)

// TouchEvent is a raw pointer event in view coordinates.
type TouchEvent struct {
	X, Y   float64
	Action Action
}

// Editor maintains an editable quadrilateral over a viewport.
type Editor struct {
	quad         geometry.Quadrilateral
	viewW, viewH float64

	touchRadius float64
	dragging    int // corner index, or -1 when idle

	anim      *animation
	magnifier MagnifierHost
}

// Option configures an Editor.
type Option func(*Editor)

// WithTouchRadius overrides the corner grab radius.
func WithTouchRadius(r float64) Option {
	return func(e *Editor) {
		if r > 0 {
			e.touchRadius = r
		}
	}
}

// WithMagnifier attaches a magnifier host. A nil host is valid and leaves
// magnification disabled.
func WithMagnifier(m MagnifierHost) Option {
	return func(e *Editor) { e.magnifier = m }
}

// New creates an editor over a viewport of the given size, showing quad.
func New(quad geometry.Quadrilateral, viewW, viewH float64, opts ...Option) *Editor {
	e := &Editor{
		quad:        quad,
		viewW:       viewW,
		viewH:       viewH,
		touchRadius: DefaultTouchRadius,
		dragging:    -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Quadrilateral returns the current corners, reflecting any in-flight
// animation.
func (e *Editor) Quadrilateral() geometry.Quadrilateral {
	return e.quad
}

// Dragging returns the index of the corner being dragged, or -1 when idle.
func (e *Editor) Dragging() int {
	return e.dragging
}

// HandleTouch feeds one pointer event into the editor and reports whether
// the event changed editor state (so the host knows to redraw). Events that
// arrive in unexpected order, such as a move with no preceding down, are
// ignored rather than treated as errors.
func (e *Editor) HandleTouch(ev TouchEvent) bool {
	switch ev.Action {
	case ActionDown:
		return e.touchDown(ev.X, ev.Y)
	case ActionMove:
		return e.touchMove(ev.X, ev.Y)
	case ActionUp, ActionCancel:
		return e.touchEnd()
	}
	return false
}

func (e *Editor) touchDown(x, y float64) bool {
	if e.dragging >= 0 {
		return false
	}
	p := geometry.Point{X: x, Y: y}
	// First corner within radius wins, in index order. The corner does not
	// snap to the touch point on capture; it follows subsequent moves.
	for i, c := range e.quad {
		if c.Dist(p) <= e.touchRadius {
			e.dragging = i
			if e.magnifier != nil {
				e.magnifier.Show(c.X, c.Y)
			}
			return true
		}
	}
	return false
}

func (e *Editor) touchMove(x, y float64) bool {
	if e.dragging < 0 || e.dragging > 3 {
		return false
	}
	e.moveCorner(e.dragging, x, y)
	return true
}

func (e *Editor) touchEnd() bool {
	if e.dragging < 0 {
		return false
	}
	e.dragging = -1
	if e.magnifier != nil {
		e.magnifier.Dismiss()
	}
	return true
}

func (e *Editor) moveCorner(i int, x, y float64) {
	e.quad[i] = geometry.Point{X: x, Y: y}
	if e.magnifier != nil {
		e.magnifier.Show(x, y)
	}
}

// SetViewport records new viewport dimensions and rescales every corner
// from its fraction of the previous viewport. A resize mid-drag ends the
// drag first so the grabbed corner cannot jump under the pointer.
func (e *Editor) SetViewport(viewW, viewH float64) {
	if viewW <= 0 || viewH <= 0 {
		return
	}
	e.touchEnd()

	if rel, ok := e.quad.Relative(e.viewW, e.viewH); ok {
		e.quad = geometry.FromRelative(rel, viewW, viewH)
		if e.anim != nil {
			e.anim.rescale(e.viewW, e.viewH, viewW, viewH)
		}
	}
	e.viewW = viewW
	e.viewH = viewH
}

// SetQuadrilateral replaces the selection. With animate set, the corners
// interpolate from their current positions over the default duration;
// otherwise the change is immediate.
func (e *Editor) SetQuadrilateral(q geometry.Quadrilateral, animate bool) {
	if !animate {
		e.anim = nil
		e.quad = q
		return
	}
	e.anim = newAnimation(e.quad, q)
}

// Animating reports whether a corner transition is in flight.
func (e *Editor) Animating() bool {
	return e.anim != nil
}

// Tick advances any in-flight animation by dt seconds and returns true
// while a redraw is still needed. The host calls this once per frame.
func (e *Editor) Tick(dt float64) bool {
	if e.anim == nil {
		return false
	}
	quad, done := e.anim.advance(dt)
	e.quad = quad
	if done {
		e.anim = nil
		return false
	}
	return true
}
