package detect

import (
	"math"
	"math/rand"

	"github.com/papercrane/docscan/internal/geometry"
)

// TemplateKind names the hand-tuned default shapes used when no source image
// (or no usable transform) is available. Selection depends only on the
// viewport's orientation and aspect ratio.
type TemplateKind string

const (
	TemplateReceipt           TemplateKind = "RECEIPT"
	TemplatePortraitDocument  TemplateKind = "PORTRAIT_DOCUMENT"
	TemplateSquareDocument    TemplateKind = "SQUARE_DOCUMENT"
	TemplateLandscapeDocument TemplateKind = "LANDSCAPE_DOCUMENT"
	TemplateWideDocument      TemplateKind = "WIDE_DOCUMENT"
)

// Relative corner tables, TL TR BR BL, as fractions of the view dimensions.
// Each is slightly trapezoidal so the default already reads as an adjustable
// perspective selection.
var templateCorners = map[TemplateKind][4]geometry.RelativeCorner{
	TemplateReceipt: {
		{RelX: 0.30, RelY: 0.10}, {RelX: 0.70, RelY: 0.10},
		{RelX: 0.80, RelY: 0.90}, {RelX: 0.20, RelY: 0.90},
	},
	TemplatePortraitDocument: {
		{RelX: 0.20, RelY: 0.15}, {RelX: 0.80, RelY: 0.10},
		{RelX: 0.85, RelY: 0.90}, {RelX: 0.15, RelY: 0.85},
	},
	TemplateLandscapeDocument: {
		{RelX: 0.15, RelY: 0.20}, {RelX: 0.90, RelY: 0.15},
		{RelX: 0.85, RelY: 0.85}, {RelX: 0.10, RelY: 0.80},
	},
	TemplateWideDocument: {
		{RelX: 0.10, RelY: 0.25}, {RelX: 0.90, RelY: 0.20},
		{RelX: 0.95, RelY: 0.80}, {RelX: 0.05, RelY: 0.75},
	},
	TemplateSquareDocument: {
		{RelX: 0.20, RelY: 0.20}, {RelX: 0.80, RelY: 0.15},
		{RelX: 0.85, RelY: 0.85}, {RelX: 0.15, RelY: 0.80},
	},
}

// ChooseTemplate picks a template from the viewport shape. Portrait
// viewports split on narrowness (receipt vs. portrait document), landscape
// viewports on wideness; anything near square falls back to the square
// document template.
func ChooseTemplate(viewW, viewH float64) TemplateKind {
	aspect := viewW / viewH
	if viewH >= viewW { // portrait
		switch {
		case aspect < 0.7:
			return TemplateReceipt
		case aspect < 0.9:
			return TemplatePortraitDocument
		default:
			return TemplateSquareDocument
		}
	}
	switch {
	case aspect > 1.8:
		return TemplateWideDocument
	case aspect > 1.3:
		return TemplateLandscapeDocument
	default:
		return TemplateSquareDocument
	}
}

// TemplateQuadrilateral synthesizes a default view-space quadrilateral for a
// viewport of the given size. The jitter applied for visual naturalness is
// seeded from the view dimensions, so repeated calls for the same viewport
// return the same corners. Dimensions that are non-positive are substituted
// with 1000 so the final fallback can never fail.
func TemplateQuadrilateral(viewW, viewH float64) *Result {
	if viewW <= 0 {
		viewW = 1000
	}
	if viewH <= 0 {
		viewH = 1000
	}

	kind := ChooseTemplate(viewW, viewH)
	rel := templateCorners[kind]
	q := geometry.FromRelative(rel, viewW, viewH)

	// Deterministic per-viewport jitter of +-5%, clamped into [5%, 95%].
	rng := rand.New(rand.NewSource(int64(viewW)*31 + int64(viewH)))
	for i := range q {
		fx := 1.0 + (rng.Float64()-0.5)*0.1
		fy := 1.0 + (rng.Float64()-0.5)*0.1
		q[i].X = math.Max(viewW*0.05, math.Min(viewW*0.95, q[i].X*fx))
		q[i].Y = math.Max(viewH*0.05, math.Min(viewH*0.95, q[i].Y*fy))
	}

	return &Result{Corners: q, Confidence: 0.1, Tier: TierTemplate}
}
