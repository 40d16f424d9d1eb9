package rectify

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/papercrane/docscan/internal/geometry"
)

func TestOutputSizeUsesLongerEdges(t *testing.T) {
	q := geometry.Quadrilateral{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 120, Y: 80}, {X: 0, Y: 80},
	}
	w, h := OutputSize(q)
	if w != 120 {
		t.Errorf("width = %d, want 120 (longer of the two horizontal edges)", w)
	}
	if h != 80 {
		t.Errorf("height = %d, want 80", h)
	}
}

func TestSquareToQuadIdentityOnUnitSquare(t *testing.T) {
	unit := geometry.Quadrilateral{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	pt := SquareToQuad(unit)
	for _, p := range []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 0.5}, {X: 0.25, Y: 0.75}} {
		x, y, ok := pt.Apply(p.X, p.Y)
		if !ok {
			t.Fatalf("Apply(%v) not ok", p)
		}
		if math.Abs(x-p.X) > 1e-9 || math.Abs(y-p.Y) > 1e-9 {
			t.Errorf("Apply(%v) = (%v, %v), want identity", p, x, y)
		}
	}
}

func TestQuadToQuadRoundTrip(t *testing.T) {
	from := geometry.Quadrilateral{{X: 10, Y: 20}, {X: 200, Y: 30}, {X: 190, Y: 240}, {X: 15, Y: 230}}
	to := geometry.Quadrilateral{{X: 0, Y: 0}, {X: 180, Y: 0}, {X: 180, Y: 210}, {X: 0, Y: 210}}

	forward := QuadToQuad(from, to)
	back := QuadToQuad(to, from)

	for _, p := range []geometry.Point{{X: 50, Y: 60}, {X: 120, Y: 100}, {X: 30, Y: 200}} {
		fx, fy, ok := forward.Apply(p.X, p.Y)
		if !ok {
			t.Fatalf("forward Apply(%v) not ok", p)
		}
		bx, by, ok := back.Apply(fx, fy)
		if !ok {
			t.Fatalf("back Apply not ok")
		}
		if math.Abs(bx-p.X) > 1e-6 || math.Abs(by-p.Y) > 1e-6 {
			t.Errorf("round trip of %v = (%v, %v)", p, bx, by)
		}
	}
}

func TestRectifyAxisAlignedCrop(t *testing.T) {
	// An axis-aligned quadrilateral reduces rectification to a crop, which
	// pins the sampling math exactly.
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	red := color.RGBA{200, 30, 30, 255}
	blue := color.RGBA{30, 30, 200, 255}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x >= 20 && x < 80 && y >= 30 && y < 70 {
				src.SetRGBA(x, y, red)
			} else {
				src.SetRGBA(x, y, blue)
			}
		}
	}

	q := geometry.Quadrilateral{{X: 20, Y: 30}, {X: 79, Y: 30}, {X: 79, Y: 69}, {X: 20, Y: 69}}
	out, err := Rectify(src, q)
	if err != nil {
		t.Fatalf("Rectify failed: %v", err)
	}
	if got := out.Bounds(); got.Dx() != 59 || got.Dy() != 39 {
		t.Fatalf("output bounds = %v, want 59x39", got)
	}
	for _, p := range []image.Point{{0, 0}, {29, 19}, {58, 38}} {
		if c := out.RGBAAt(p.X, p.Y); c != red {
			t.Errorf("pixel %v = %v, want interior red", p, c)
		}
	}
}

func TestRectifyPerspective(t *testing.T) {
	// A white trapezoidal page on black should come out as an almost fully
	// white rectangle.
	src := image.NewRGBA(image.Rect(0, 0, 200, 200))
	quad := geometry.Quadrilateral{{X: 40, Y: 30}, {X: 170, Y: 50}, {X: 160, Y: 180}, {X: 30, Y: 160}}
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			src.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
		}
	}
	// Fill the page via the forward transform from the unit square.
	pt := SquareToQuad(quad)
	for v := 0.0; v <= 1.0; v += 0.002 {
		for u := 0.0; u <= 1.0; u += 0.002 {
			x, y, _ := pt.Apply(u, v)
			src.SetRGBA(int(x), int(y), color.RGBA{255, 255, 255, 255})
		}
	}

	out, err := Rectify(src, quad)
	if err != nil {
		t.Fatalf("Rectify failed: %v", err)
	}

	b := out.Bounds()
	white := 0
	// Inspect the interior; edge pixels blend with the background.
	for y := b.Min.Y + 5; y < b.Max.Y-5; y++ {
		for x := b.Min.X + 5; x < b.Max.X-5; x++ {
			if c := out.RGBAAt(x, y); c.R > 200 && c.G > 200 && c.B > 200 {
				white++
			}
		}
	}
	total := (b.Dx() - 10) * (b.Dy() - 10)
	if float64(white)/float64(total) < 0.95 {
		t.Errorf("only %d/%d interior pixels white after rectification", white, total)
	}
}

func TestRectifyErrors(t *testing.T) {
	q := geometry.Quadrilateral{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	if _, err := Rectify(nil, q); err == nil {
		t.Error("Rectify(nil, q) succeeded")
	}

	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	collapsed := geometry.Quadrilateral{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}
	if _, err := Rectify(src, collapsed); err == nil {
		t.Error("Rectify with collapsed quadrilateral succeeded")
	}

	nan := geometry.Quadrilateral{{X: math.NaN(), Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	if _, err := Rectify(src, nan); err == nil {
		t.Error("Rectify with NaN corner succeeded")
	}
}
