package rectify

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/papercrane/docscan/internal/geometry"
)

// OutputSize computes the rectified dimensions for a quadrilateral: the
// longer of the two horizontal edges by the longer of the two vertical
// edges, rounded to whole pixels.
func OutputSize(q geometry.Quadrilateral) (w, h int) {
	return int(math.Round(q.Width())), int(math.Round(q.Height()))
}

// Rectify warps the region of src bounded by q (in source pixel space) into
// a flat, axis-aligned image. It returns an error for a nil image, a
// degenerate quadrilateral, or a singular transform; it never panics.
func Rectify(src image.Image, q geometry.Quadrilateral) (*image.RGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("rectify: nil source image")
	}
	if q.IsDegenerate() {
		return nil, fmt.Errorf("rectify: degenerate quadrilateral %v", q)
	}

	dstW, dstH := OutputSize(q)
	if dstW < 1 || dstH < 1 {
		return nil, fmt.Errorf("rectify: output size %dx%d too small", dstW, dstH)
	}

	// Map destination rectangle corners onto the source quadrilateral. The
	// warp loop then only needs the forward direction of this transform.
	dst := geometry.Quadrilateral{
		{X: 0, Y: 0},
		{X: float64(dstW - 1), Y: 0},
		{X: float64(dstW - 1), Y: float64(dstH - 1)},
		{X: 0, Y: float64(dstH - 1)},
	}
	pt := QuadToQuad(dst, q)
	if pt.Singular() {
		return nil, fmt.Errorf("rectify: singular transform for quadrilateral %v", q)
	}

	sb := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			sx, sy, ok := pt.Apply(float64(x), float64(y))
			if !ok {
				out.SetRGBA(x, y, color.RGBA{A: 255})
				continue
			}
			out.SetRGBA(x, y, bilinearSample(src, sx+float64(sb.Min.X), sy+float64(sb.Min.Y)))
		}
	}
	return out, nil
}

// bilinearSample interpolates the color at a fractional source position.
// Positions outside the image sample as black.
func bilinearSample(src image.Image, x, y float64) color.RGBA {
	b := src.Bounds()
	if x < float64(b.Min.X) || y < float64(b.Min.Y) ||
		x > float64(b.Max.X-1) || y > float64(b.Max.Y-1) {
		return color.RGBA{A: 255}
	}
	x0, y0 := int(x), int(y)
	x1, y1 := x0+1, y0+1
	if x1 >= b.Max.X {
		x1 = b.Max.X - 1
	}
	if y1 >= b.Max.Y {
		y1 = b.Max.Y - 1
	}
	fx, fy := x-float64(x0), y-float64(y0)

	c00 := channels(src.At(x0, y0))
	c10 := channels(src.At(x1, y0))
	c01 := channels(src.At(x0, y1))
	c11 := channels(src.At(x1, y1))

	var c color.RGBA
	c.R = uint8(lerp(lerp(c00[0], c10[0], fx), lerp(c01[0], c11[0], fx), fy) + 0.5)
	c.G = uint8(lerp(lerp(c00[1], c10[1], fx), lerp(c01[1], c11[1], fx), fy) + 0.5)
	c.B = uint8(lerp(lerp(c00[2], c10[2], fx), lerp(c01[2], c11[2], fx), fy) + 0.5)
	c.A = uint8(lerp(lerp(c00[3], c10[3], fx), lerp(c01[3], c11[3], fx), fy) + 0.5)
	return c
}

func channels(c color.Color) [4]float64 {
	r, g, b, a := c.RGBA()
	return [4]float64{float64(r >> 8), float64(g >> 8), float64(b >> 8), float64(a >> 8)}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
