package geometry

import (
	"math"
	"sort"
)

// Point represents a 2D coordinate with sub-pixel precision.
type Point struct {
	X float64 `json:"x"` // Horizontal position (0 = leftmost)
	Y float64 `json:"y"` // Vertical position (0 = topmost)
}

// Dist returns the Euclidean distance to another point.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IsFinite reports whether both coordinates are finite (not NaN or ±Inf).
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Corner indices of a Quadrilateral. The order is fixed; every consumer of a
// Quadrilateral relies on it.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// Quadrilateral is an ordered 4-corner polygon: top-left, top-right,
// bottom-right, bottom-left. It is a value type; edits replace the whole
// quadrilateral rather than mutating shared state.
type Quadrilateral [4]Point

// IsFinite reports whether all four corners have finite coordinates.
// A quadrilateral with a NaN or infinite coordinate is unusable as a crop
// region and must be discarded.
func (q Quadrilateral) IsFinite() bool {
	for _, p := range q {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}

// Area returns the absolute polygon area computed with the shoelace formula.
func (q Quadrilateral) Area() float64 {
	var sum float64
	for i := 0; i < 4; i++ {
		a, b := q[i], q[(i+1)%4]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// Width returns the horizontal extent as the longer of the top and bottom
// edge lengths. This is the width a rectified output of this quadrilateral
// should have.
func (q Quadrilateral) Width() float64 {
	return math.Max(q[TopLeft].Dist(q[TopRight]), q[BottomLeft].Dist(q[BottomRight]))
}

// Height returns the vertical extent as the longer of the left and right
// edge lengths.
func (q Quadrilateral) Height() float64 {
	return math.Max(q[TopLeft].Dist(q[BottomLeft]), q[TopRight].Dist(q[BottomRight]))
}

// slopeEpsilon keeps edge-slope denominators away from zero for vertical
// edges.
const slopeEpsilon = 1e-4

// EdgeSlopes returns the absolute slopes |dy/dx| of the top, bottom, left and
// right edges. A small epsilon is added to each denominator so vertical edges
// produce large finite values instead of dividing by zero.
func (q Quadrilateral) EdgeSlopes() (top, bottom, left, right float64) {
	top = math.Abs((q[TopRight].Y - q[TopLeft].Y) / (q[TopRight].X - q[TopLeft].X + slopeEpsilon))
	bottom = math.Abs((q[BottomRight].Y - q[BottomLeft].Y) / (q[BottomRight].X - q[BottomLeft].X + slopeEpsilon))
	left = math.Abs((q[BottomLeft].Y - q[TopLeft].Y) / (q[BottomLeft].X - q[TopLeft].X + slopeEpsilon))
	right = math.Abs((q[BottomRight].Y - q[TopRight].Y) / (q[BottomRight].X - q[TopRight].X + slopeEpsilon))
	return top, bottom, left, right
}

// IsNearlyRectangular reports whether the quadrilateral is close to an
// axis-aligned rectangle: the top/bottom and left/right edge slopes each
// differ by less than 0.1. On a flat, low-contrast background a perfectly
// rectangular auto-detection is usually a detector failure mode, so callers
// use this to decide whether to perturb the shape.
func (q Quadrilateral) IsNearlyRectangular() bool {
	top, bottom, left, right := q.EdgeSlopes()
	return math.Abs(top-bottom) < 0.1 && math.Abs(left-right) < 0.1
}

// IsDegenerate reports whether the quadrilateral is unusable as a crop
// region: non-finite coordinates or a near-zero computed width or height.
func (q Quadrilateral) IsDegenerate() bool {
	if !q.IsFinite() {
		return true
	}
	return q.Width() < 1 || q.Height() < 1
}

// OrderCorners arranges four arbitrary points into top-left, top-right,
// bottom-right, bottom-left order. The top-left corner minimizes x+y, the
// bottom-right maximizes it; the top-right minimizes y-x and the bottom-left
// maximizes it.
func OrderCorners(pts [4]Point) Quadrilateral {
	tmp := make([]Point, 4)
	copy(tmp, pts[:])

	sort.Slice(tmp, func(i, j int) bool { return tmp[i].X+tmp[i].Y < tmp[j].X+tmp[j].Y })
	topLeft, bottomRight := tmp[0], tmp[3]

	sort.Slice(tmp, func(i, j int) bool { return tmp[i].Y-tmp[i].X < tmp[j].Y-tmp[j].X })
	topRight, bottomLeft := tmp[0], tmp[3]

	return Quadrilateral{topLeft, topRight, bottomRight, bottomLeft}
}
