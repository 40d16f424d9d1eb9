package detect

import (
	"math"
	"testing"

	"github.com/papercrane/docscan/internal/geometry"
)

func TestViewCornersHalfScale(t *testing.T) {
	res := &Result{
		Corners: geometry.Quadrilateral{
			{X: 100, Y: 100}, {X: 1100, Y: 100}, {X: 1100, Y: 1500}, {X: 100, Y: 1500},
		},
		Confidence: 0.9,
		Tier:       TierContour,
	}

	q, ok := ViewCorners(res, 1200, 1600, 600, 800)
	if !ok {
		t.Fatal("ViewCorners failed")
	}

	want := geometry.Quadrilateral{
		{X: 50, Y: 50}, {X: 550, Y: 50}, {X: 550, Y: 750}, {X: 50, Y: 750},
	}
	for i := range want {
		if math.Abs(q[i].X-want[i].X) > 1e-9 || math.Abs(q[i].Y-want[i].Y) > 1e-9 {
			t.Errorf("corner %d = %+v, want %+v", i, q[i], want[i])
		}
	}
}

func TestViewCornersClampsToInset(t *testing.T) {
	// Corners on the exact image boundary project onto the view edge and
	// must be pulled inside by the inset.
	res := &Result{
		Corners: geometry.Quadrilateral{
			{X: 0, Y: 0}, {X: 1200, Y: 0}, {X: 1200, Y: 1600}, {X: 0, Y: 1600},
		},
		Tier: TierContour,
	}

	q, ok := ViewCorners(res, 1200, 1600, 600, 800)
	if !ok {
		t.Fatal("ViewCorners failed")
	}
	for i, p := range q {
		if p.X < 6 || p.X > 594 || p.Y < 8 || p.Y > 792 {
			t.Errorf("corner %d = %+v touches the view edge", i, p)
		}
	}
}

func TestViewCornersAdjustsTinySelection(t *testing.T) {
	// A selection covering well under 10% of the viewport is invalid and
	// must be reshaped into a draggable quadrant form.
	res := &Result{
		Corners: geometry.Quadrilateral{
			{X: 500, Y: 700}, {X: 560, Y: 700}, {X: 560, Y: 760}, {X: 500, Y: 760},
		},
		Tier: TierContour,
	}

	q, ok := ViewCorners(res, 1000, 1500, 1000, 1500)
	if !ok {
		t.Fatal("ViewCorners failed")
	}

	// Each corner must land in its own quadrant around the view center and
	// the selection must open up from the collapsed input.
	cx, cy := 500.0, 750.0
	if q[geometry.TopLeft].X >= cx || q[geometry.TopLeft].Y >= cy {
		t.Errorf("top-left corner %+v not in its quadrant", q[geometry.TopLeft])
	}
	if q[geometry.TopRight].X <= cx || q[geometry.TopRight].Y >= cy {
		t.Errorf("top-right corner %+v not in its quadrant", q[geometry.TopRight])
	}
	if q[geometry.BottomRight].X <= cx || q[geometry.BottomRight].Y <= cy {
		t.Errorf("bottom-right corner %+v not in its quadrant", q[geometry.BottomRight])
	}
	if q[geometry.BottomLeft].X >= cx || q[geometry.BottomLeft].Y <= cy {
		t.Errorf("bottom-left corner %+v not in its quadrant", q[geometry.BottomLeft])
	}
	if q.Area() <= res.Corners.Area() {
		t.Errorf("adjusted area %v did not grow from %v", q.Area(), res.Corners.Area())
	}
}

func TestViewCornersTemplatePassThrough(t *testing.T) {
	// Template corners are already view-space; they must not be projected
	// through the image transform.
	res := TemplateQuadrilateral(600, 800)

	q, ok := ViewCorners(res, 1200, 1600, 600, 800)
	if !ok {
		t.Fatal("ViewCorners failed")
	}
	for i, p := range q {
		if p.X < 0 || p.X > 600 || p.Y < 0 || p.Y > 800 {
			t.Errorf("corner %d = %+v outside viewport", i, p)
		}
	}
}

func TestViewCornersDegenerateDimensions(t *testing.T) {
	res := &Result{Tier: TierContour}
	if _, ok := ViewCorners(res, 1200, 1600, 0, 800); ok {
		t.Error("ViewCorners accepted zero view width")
	}
	if _, ok := ViewCorners(nil, 1200, 1600, 600, 800); ok {
		t.Error("ViewCorners accepted nil result")
	}
}

func TestViewCornersTemplateFallbackOnTransformFailure(t *testing.T) {
	// A result carrying source dimensions the transform cannot use still
	// yields editable corners, synthesized by the template tier for the
	// viewport.
	res := &Result{
		Corners: geometry.Quadrilateral{
			{X: 100, Y: 100}, {X: 1100, Y: 100}, {X: 1100, Y: 1500}, {X: 100, Y: 1500},
		},
		Tier: TierContour,
	}

	q, ok := ViewCorners(res, 0, 1600, 600, 800)
	if !ok {
		t.Fatal("ViewCorners failed instead of falling back to a template")
	}
	for i, p := range q {
		if p.X < 0 || p.X > 600 || p.Y < 0 || p.Y > 800 {
			t.Errorf("corner %d = %+v outside viewport", i, p)
		}
	}
	if q.IsDegenerate() {
		t.Error("template fallback produced a degenerate quadrilateral")
	}
}
