package detect

import "testing"

func TestChooseTemplate(t *testing.T) {
	cases := []struct {
		name string
		w, h float64
		want TemplateKind
	}{
		{"narrow portrait", 400, 1200, TemplateReceipt},
		{"regular portrait", 800, 1000, TemplatePortraitDocument},
		{"near-square portrait", 950, 1000, TemplateSquareDocument},
		{"square", 1000, 1000, TemplateSquareDocument},
		{"near-square landscape", 1100, 1000, TemplateSquareDocument},
		{"regular landscape", 1400, 1000, TemplateLandscapeDocument},
		{"wide landscape", 2000, 1000, TemplateWideDocument},
	}
	for _, tc := range cases {
		if got := ChooseTemplate(tc.w, tc.h); got != tc.want {
			t.Errorf("%s: ChooseTemplate(%v, %v) = %v, want %v", tc.name, tc.w, tc.h, got, tc.want)
		}
	}
}

func TestTemplateQuadrilateralDeterministic(t *testing.T) {
	a := TemplateQuadrilateral(1080, 1920)
	b := TemplateQuadrilateral(1080, 1920)
	if a.Corners != b.Corners {
		t.Errorf("same viewport produced different corners:\n%+v\n%+v", a.Corners, b.Corners)
	}
	if a.Tier != TierTemplate {
		t.Errorf("Tier = %v, want template", a.Tier)
	}
	if a.Confidence != 0.1 {
		t.Errorf("Confidence = %v, want 0.1", a.Confidence)
	}
}

func TestTemplateQuadrilateralBounds(t *testing.T) {
	viewports := [][2]float64{
		{1080, 1920}, {1920, 1080}, {500, 1500}, {3000, 1000}, {777, 777},
	}
	for _, vp := range viewports {
		res := TemplateQuadrilateral(vp[0], vp[1])
		for i, p := range res.Corners {
			if p.X < vp[0]*0.05 || p.X > vp[0]*0.95 ||
				p.Y < vp[1]*0.05 || p.Y > vp[1]*0.95 {
				t.Errorf("viewport %v: corner %d = %+v outside [5%%, 95%%] band", vp, i, p)
			}
		}
		if res.Corners.IsDegenerate() {
			t.Errorf("viewport %v: degenerate template quadrilateral", vp)
		}
	}
}

func TestTemplateQuadrilateralInvalidDimensions(t *testing.T) {
	res := TemplateQuadrilateral(0, -5)
	if res == nil {
		t.Fatal("TemplateQuadrilateral returned nil for non-positive dimensions")
	}
	for i, p := range res.Corners {
		if p.X < 0 || p.X > 1000 || p.Y < 0 || p.Y > 1000 {
			t.Errorf("corner %d = %+v outside substituted 1000x1000 viewport", i, p)
		}
	}
}
