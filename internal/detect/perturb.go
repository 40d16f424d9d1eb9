package detect

import (
	"math"

	"github.com/papercrane/docscan/internal/geometry"
)

// Perturbation magnitudes relative to the quadrilateral's extents.
const (
	horizontalInsetRatio = 0.12
	verticalInsetRatio   = 0.08
)

// MakeNonRectangular nudges the corners of a (nearly) rectangular
// quadrilateral asymmetrically to simulate natural perspective. A random
// "closer side" is chosen; corners on the far side move inward more than
// corners on the near side, as if the document were photographed from a
// slight angle. For wide shapes (aspect ratio above 1.5, e.g. receipts
// photographed sideways) the vertical perspective is exaggerated further.
//
// boundsW and boundsH give the space the corners must stay within (view or
// image dimensions); the result is clamped into [0, boundsW] x [0, boundsH].
// The input is not modified.
func MakeNonRectangular(q geometry.Quadrilateral, boundsW, boundsH float64, rng RandSource) geometry.Quadrilateral {
	rectWidth := math.Max(math.Abs(q[geometry.TopRight].X-q[geometry.TopLeft].X),
		math.Abs(q[geometry.BottomRight].X-q[geometry.BottomLeft].X))
	rectHeight := math.Max(math.Abs(q[geometry.BottomLeft].Y-q[geometry.TopLeft].Y),
		math.Abs(q[geometry.BottomRight].Y-q[geometry.TopRight].Y))
	aspectRatio := rectWidth / math.Max(rectHeight, 1)

	baseH := rectWidth * horizontalInsetRatio
	baseV := rectHeight * verticalInsetRatio

	leftSideCloser := rng.Bool()
	f1 := rng.Float64() * 0.3
	f2 := rng.Float64()
	f3 := rng.Float64()
	f4 := rng.Float64()
	f5 := rng.Float64()
	f6 := rng.Float64()

	out := q
	if leftSideCloser {
		// Left side appears closer, so the right side recedes harder.
		out[geometry.TopLeft].X += baseH * 0.7 * (1 + f1)
		out[geometry.TopLeft].Y += baseV * 0.5 * f2
		out[geometry.TopRight].X -= baseH * 1.2 * (1 + f3)
		out[geometry.TopRight].Y += baseV * 0.8 * f4
		out[geometry.BottomRight].X -= baseH * 0.3 * f5
		out[geometry.BottomLeft].X += baseH * 0.2 * f6
	} else {
		out[geometry.TopLeft].X += baseH * 1.2 * (1 + f1)
		out[geometry.TopLeft].Y += baseV * 0.8 * f2
		out[geometry.TopRight].X -= baseH * 0.7 * (1 + f3)
		out[geometry.TopRight].Y += baseV * 0.5 * f4
		out[geometry.BottomRight].X -= baseH * 0.2 * f5
		out[geometry.BottomLeft].X += baseH * 0.3 * f6
	}

	if aspectRatio > 1.5 {
		// Wide documents get extra vertical perspective: the top edge reads
		// shorter than the bottom edge.
		adjustment := baseV * 0.5 * (aspectRatio - 1)
		if leftSideCloser {
			out[geometry.TopRight].Y += adjustment
		} else {
			out[geometry.TopLeft].Y += adjustment
		}
	}

	for i := range out {
		out[i].X = math.Max(0, math.Min(out[i].X, boundsW))
		out[i].Y = math.Max(0, math.Min(out[i].Y, boundsH))
	}
	return out
}

// Naturalize applies MakeNonRectangular only when the quadrilateral is
// classified nearly rectangular; otherwise it returns the input unchanged.
func Naturalize(q geometry.Quadrilateral, boundsW, boundsH float64, rng RandSource) geometry.Quadrilateral {
	if !q.IsNearlyRectangular() {
		return q
	}
	return MakeNonRectangular(q, boundsW, boundsH, rng)
}
