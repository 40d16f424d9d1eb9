package geometry

import "math"

// FitCenter describes how a source bitmap is laid out inside a view under
// fit-center scaling: a uniform scale factor plus centering offsets. A wider-
// than-view bitmap is letterboxed (vertical padding), a taller one is
// pillarboxed (horizontal padding).
type FitCenter struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// NewFitCenter computes the fit-center layout for a source of srcW x srcH
// displayed in a view of viewW x viewH. It returns false when any dimension
// is non-positive; the zero FitCenter it returns then must not be used.
func NewFitCenter(srcW, srcH, viewW, viewH float64) (FitCenter, bool) {
	if srcW <= 0 || srcH <= 0 || viewW <= 0 || viewH <= 0 {
		return FitCenter{}, false
	}

	srcAspect := srcW / srcH
	viewAspect := viewW / viewH

	var fc FitCenter
	if srcAspect > viewAspect {
		// Source is wider than the view: letterboxed.
		fc.Scale = viewW / srcW
		fc.OffsetY = (viewH - srcH*fc.Scale) / 2
	} else {
		// Source is taller than the view: pillarboxed.
		fc.Scale = viewH / srcH
		fc.OffsetX = (viewW - srcW*fc.Scale) / 2
	}
	return fc, true
}

// Apply maps a point from source space into view space.
func (fc FitCenter) Apply(p Point) Point {
	return Point{X: p.X*fc.Scale + fc.OffsetX, Y: p.Y*fc.Scale + fc.OffsetY}
}

// Invert maps a point from view space back into source space. It is the
// algebraic inverse of Apply, derived from the same scale and offsets, so a
// round trip is exact up to floating-point epsilon.
func (fc FitCenter) Invert(p Point) Point {
	return Point{X: (p.X - fc.OffsetX) / fc.Scale, Y: (p.Y - fc.OffsetY) / fc.Scale}
}

// ImageToView projects a quadrilateral from source space into view space.
// Returns false (and the input unchanged) when any dimension is non-positive.
func ImageToView(q Quadrilateral, srcW, srcH, viewW, viewH float64) (Quadrilateral, bool) {
	fc, ok := NewFitCenter(srcW, srcH, viewW, viewH)
	if !ok {
		return q, false
	}
	var out Quadrilateral
	for i, p := range q {
		out[i] = fc.Apply(p)
	}
	return out, true
}

// ViewToImage projects a quadrilateral from view space back into source
// space, clamping each corner into the source bounds [0, srcW] x [0, srcH].
// The inverse mapping is derived from the same FitCenter as ImageToView, so
// for points that land inside the source bounds the round trip is exact up to
// floating-point epsilon. Returns false when any dimension is non-positive.
func ViewToImage(q Quadrilateral, srcW, srcH, viewW, viewH float64) (Quadrilateral, bool) {
	fc, ok := NewFitCenter(srcW, srcH, viewW, viewH)
	if !ok {
		return q, false
	}
	var out Quadrilateral
	for i, p := range q {
		s := fc.Invert(p)
		s.X = math.Max(0, math.Min(s.X, srcW))
		s.Y = math.Max(0, math.Min(s.Y, srcH))
		out[i] = s
	}
	return out, true
}

// DefaultInsetFactor is the boundary inset applied to projected corners so
// they never sit exactly on a view edge. Edge-touching points collapse the
// convex-shape assumptions of downstream consumers.
const DefaultInsetFactor = 0.01

// ClampInset clamps every corner into [inset*dim, (1-inset)*dim] for each
// axis. Dimensions must be positive; otherwise the input is returned
// unchanged.
func ClampInset(q Quadrilateral, w, h, insetFactor float64) Quadrilateral {
	if w <= 0 || h <= 0 {
		return q
	}
	var out Quadrilateral
	for i, p := range q {
		out[i] = Point{
			X: math.Max(insetFactor*w, math.Min(p.X, (1-insetFactor)*w)),
			Y: math.Max(insetFactor*h, math.Min(p.Y, (1-insetFactor)*h)),
		}
	}
	return out
}

// MinAreaRatio is the smallest fraction of the viewport a quadrilateral may
// cover and still count as a plausible document selection.
const MinAreaRatio = 0.10

// IsValidQuadrilateral reports whether a view-space quadrilateral is usable:
// all corners finite and inside [0, viewW] x [0, viewH], and the enclosed
// area at least MinAreaRatio of the viewport area.
func IsValidQuadrilateral(q Quadrilateral, viewW, viewH float64) bool {
	if viewW <= 0 || viewH <= 0 || !q.IsFinite() {
		return false
	}
	for _, p := range q {
		if p.X < 0 || p.X > viewW || p.Y < 0 || p.Y > viewH {
			return false
		}
	}
	return q.Area() >= MinAreaRatio*viewW*viewH
}

// AdjustToValidQuadrilateral forces a quadrilateral into a usable shape by
// constraining each corner to its own quadrant around the view center, with
// an inset of 15% of the smaller view dimension. The corner positions are
// preserved as far as the quadrant bounds allow, so a slightly-off
// quadrilateral keeps its character while a collapsed one is re-opened.
func AdjustToValidQuadrilateral(q Quadrilateral, viewW, viewH float64) Quadrilateral {
	if viewW <= 0 || viewH <= 0 {
		return q
	}
	centerX := viewW / 2
	centerY := viewH / 2
	inset := math.Min(viewW, viewH) * 0.15

	clampRange := func(v, lo, hi float64) float64 {
		return math.Max(lo, math.Min(hi, v))
	}

	var out Quadrilateral
	out[TopLeft] = Point{
		X: clampRange(q[TopLeft].X, inset, centerX-inset),
		Y: clampRange(q[TopLeft].Y, inset, centerY-inset),
	}
	out[TopRight] = Point{
		X: clampRange(q[TopRight].X, centerX+inset, viewW-inset),
		Y: clampRange(q[TopRight].Y, inset, centerY-inset),
	}
	out[BottomRight] = Point{
		X: clampRange(q[BottomRight].X, centerX+inset, viewW-inset),
		Y: clampRange(q[BottomRight].Y, centerY+inset, viewH-inset),
	}
	out[BottomLeft] = Point{
		X: clampRange(q[BottomLeft].X, inset, centerX-inset),
		Y: clampRange(q[BottomLeft].Y, centerY+inset, viewH-inset),
	}
	return out
}
