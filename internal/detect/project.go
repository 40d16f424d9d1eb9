package detect

import "github.com/papercrane/docscan/internal/geometry"

// ViewCorners projects a detection result into view space, ready to hand to
// the corner editor. Template results are already in view space and pass
// through the same clamping.
//
// The projected corners are clamped a small inset away from the view edges,
// then validated: a quadrilateral that is out of bounds or covers less than
// the minimum viewport fraction is reshaped into its valid quadrant form so
// the editor always starts from something draggable. When the image-to-view
// transform cannot be built (non-positive source dimensions), the template
// tier synthesizes corners for the viewport instead. Returns false only for
// a nil result or non-positive view dimensions.
func ViewCorners(res *Result, srcW, srcH, viewW, viewH float64) (geometry.Quadrilateral, bool) {
	if res == nil || viewW <= 0 || viewH <= 0 {
		return geometry.Quadrilateral{}, false
	}

	q := res.Corners
	if res.Tier != TierTemplate {
		proj, ok := geometry.ImageToView(q, srcW, srcH, viewW, viewH)
		if !ok {
			proj = TemplateQuadrilateral(viewW, viewH).Corners
		}
		q = proj
	}

	q = geometry.ClampInset(q, viewW, viewH, geometry.DefaultInsetFactor)
	if !geometry.IsValidQuadrilateral(q, viewW, viewH) {
		q = geometry.AdjustToValidQuadrilateral(q, viewW, viewH)
	}
	return q, true
}
