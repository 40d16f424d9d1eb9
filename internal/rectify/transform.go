package rectify

import (
	"math"

	"github.com/papercrane/docscan/internal/geometry"
)

// PerspectiveTransform is a 2D plane homography in homogeneous coordinates.
type PerspectiveTransform struct {
	a11, a12, a13 float64
	a21, a22, a23 float64
	a31, a32, a33 float64
}

// SquareToQuad computes the transform mapping the unit square onto q, with
// (0,0) going to the top-left corner, (1,0) to the top-right, (1,1) to the
// bottom-right and (0,1) to the bottom-left.
func SquareToQuad(q geometry.Quadrilateral) *PerspectiveTransform {
	x0, y0 := q[geometry.TopLeft].X, q[geometry.TopLeft].Y
	x1, y1 := q[geometry.TopRight].X, q[geometry.TopRight].Y
	x2, y2 := q[geometry.BottomRight].X, q[geometry.BottomRight].Y
	x3, y3 := q[geometry.BottomLeft].X, q[geometry.BottomLeft].Y

	dx3 := x0 - x1 + x2 - x3
	dy3 := y0 - y1 + y2 - y3
	if dx3 == 0 && dy3 == 0 {
		// Parallelogram: the mapping is affine.
		return &PerspectiveTransform{
			a11: x1 - x0, a21: x2 - x1, a31: x0,
			a12: y1 - y0, a22: y2 - y1, a32: y0,
			a13: 0, a23: 0, a33: 1,
		}
	}
	dx1 := x1 - x2
	dx2 := x3 - x2
	dy1 := y1 - y2
	dy2 := y3 - y2
	denominator := dx1*dy2 - dx2*dy1
	a13 := (dx3*dy2 - dx2*dy3) / denominator
	a23 := (dx1*dy3 - dx3*dy1) / denominator
	return &PerspectiveTransform{
		a11: x1 - x0 + a13*x1, a21: x3 - x0 + a23*x3, a31: x0,
		a12: y1 - y0 + a13*y1, a22: y3 - y0 + a23*y3, a32: y0,
		a13: a13, a23: a23, a33: 1,
	}
}

// QuadToSquare computes the inverse of SquareToQuad via the adjoint matrix.
// Homogeneous coordinates make the adjoint an exact inverse up to scale.
func QuadToSquare(q geometry.Quadrilateral) *PerspectiveTransform {
	return SquareToQuad(q).adjoint()
}

// QuadToQuad computes the transform mapping from onto to.
func QuadToQuad(from, to geometry.Quadrilateral) *PerspectiveTransform {
	return SquareToQuad(to).Times(QuadToSquare(from))
}

func (pt *PerspectiveTransform) adjoint() *PerspectiveTransform {
	return &PerspectiveTransform{
		a11: pt.a22*pt.a33 - pt.a23*pt.a32,
		a21: pt.a23*pt.a31 - pt.a21*pt.a33,
		a31: pt.a21*pt.a32 - pt.a22*pt.a31,
		a12: pt.a13*pt.a32 - pt.a12*pt.a33,
		a22: pt.a11*pt.a33 - pt.a13*pt.a31,
		a32: pt.a12*pt.a31 - pt.a11*pt.a32,
		a13: pt.a12*pt.a23 - pt.a13*pt.a22,
		a23: pt.a13*pt.a21 - pt.a11*pt.a23,
		a33: pt.a11*pt.a22 - pt.a12*pt.a21,
	}
}

// Times returns the composition pt * other (other applied first).
func (pt *PerspectiveTransform) Times(other *PerspectiveTransform) *PerspectiveTransform {
	return &PerspectiveTransform{
		a11: pt.a11*other.a11 + pt.a21*other.a12 + pt.a31*other.a13,
		a21: pt.a11*other.a21 + pt.a21*other.a22 + pt.a31*other.a23,
		a31: pt.a11*other.a31 + pt.a21*other.a32 + pt.a31*other.a33,
		a12: pt.a12*other.a11 + pt.a22*other.a12 + pt.a32*other.a13,
		a22: pt.a12*other.a21 + pt.a22*other.a22 + pt.a32*other.a23,
		a32: pt.a12*other.a31 + pt.a22*other.a32 + pt.a32*other.a33,
		a13: pt.a13*other.a11 + pt.a23*other.a12 + pt.a33*other.a13,
		a23: pt.a13*other.a21 + pt.a23*other.a22 + pt.a33*other.a23,
		a33: pt.a13*other.a31 + pt.a23*other.a32 + pt.a33*other.a33,
	}
}

// Apply maps the point (x, y) through the transform. ok is false when the
// homogeneous denominator vanishes or the result is not finite.
func (pt *PerspectiveTransform) Apply(x, y float64) (tx, ty float64, ok bool) {
	denominator := pt.a13*x + pt.a23*y + pt.a33
	if denominator == 0 {
		return 0, 0, false
	}
	tx = (pt.a11*x + pt.a21*y + pt.a31) / denominator
	ty = (pt.a12*x + pt.a22*y + pt.a32) / denominator
	if math.IsNaN(tx) || math.IsInf(tx, 0) || math.IsNaN(ty) || math.IsInf(ty, 0) {
		return 0, 0, false
	}
	return tx, ty, true
}

// Singular reports whether the transform has (numerically) no inverse.
func (pt *PerspectiveTransform) Singular() bool {
	det := pt.a11*(pt.a22*pt.a33-pt.a23*pt.a32) -
		pt.a21*(pt.a12*pt.a33-pt.a13*pt.a32) +
		pt.a31*(pt.a12*pt.a23-pt.a13*pt.a22)
	return math.Abs(det) < 1e-9 || math.IsNaN(det)
}
