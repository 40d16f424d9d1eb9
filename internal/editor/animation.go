package editor

import "github.com/papercrane/docscan/internal/geometry"

// DefaultAnimationDuration is the corner transition length in seconds.
const DefaultAnimationDuration = 0.3

// animation interpolates all four corners simultaneously with a smoothstep
// ease-in-out curve.
type animation struct {
	from, to geometry.Quadrilateral
	elapsed  float64
	duration float64
}

func newAnimation(from, to geometry.Quadrilateral) *animation {
	return &animation{from: from, to: to, duration: DefaultAnimationDuration}
}

// advance moves the animation forward by dt seconds and returns the
// interpolated quadrilateral plus whether the animation has finished.
func (a *animation) advance(dt float64) (geometry.Quadrilateral, bool) {
	a.elapsed += dt
	t := a.elapsed / a.duration
	if t >= 1 {
		return a.to, true
	}
	if t < 0 {
		t = 0
	}
	f := t * t * (3 - 2*t)

	var q geometry.Quadrilateral
	for i := range q {
		q[i].X = a.from[i].X + (a.to[i].X-a.from[i].X)*f
		q[i].Y = a.from[i].Y + (a.to[i].Y-a.from[i].Y)*f
	}
	return q, false
}

// rescale remaps the animation endpoints from an old viewport to a new one
// so a resize mid-animation keeps the transition proportional.
func (a *animation) rescale(oldW, oldH, newW, newH float64) {
	if oldW <= 0 || oldH <= 0 {
		return
	}
	sx, sy := newW/oldW, newH/oldH
	for i := range a.from {
		a.from[i].X *= sx
		a.from[i].Y *= sy
		a.to[i].X *= sx
		a.to[i].Y *= sy
	}
}
