// Package render draws crop-selection overlays onto images for preview
// surfaces and debugging output.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/papercrane/docscan/internal/geometry"
)

// OverlayResult contains the rendered overlay image.
type OverlayResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
	Confidence  float64 `json:"confidence"`
}

// Overlay options.
type Options struct {
	// HandleRadius is the radius of the corner handle circles in pixels.
	HandleRadius int
	// ShowLabels draws the corner index next to each handle.
	ShowLabels bool
	// Confidence, when non-negative, is rendered as a percentage badge in
	// the top-left corner.
	Confidence float64
}

// DefaultOptions returns the options used by the preview surface.
func DefaultOptions() Options {
	return Options{HandleRadius: 12, ShowLabels: true, Confidence: -1}
}

// cornerColor assigns each corner a distinct hue, evenly spaced around the
// color wheel so adjacent handles never look alike.
func cornerColor(i int) color.RGBA {
	c := colorful.Hsv(float64(i)*90, 0.85, 0.95)
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}
}

var outlineColor = color.RGBA{0, 200, 120, 255}

// Draw composites the quadrilateral outline, per-corner handles and the
// optional labels and confidence badge over img.
func Draw(img image.Image, q geometry.Quadrilateral, opts Options) (*image.RGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("render: nil image")
	}
	if !q.IsFinite() {
		return nil, fmt.Errorf("render: non-finite quadrilateral %v", q)
	}

	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	for i := 0; i < 4; i++ {
		a, b := q[i], q[(i+1)%4]
		drawLine(out, a, b, outlineColor)
	}

	radius := opts.HandleRadius
	if radius <= 0 {
		radius = DefaultOptions().HandleRadius
	}
	for i, p := range q {
		drawHandle(out, p, radius, cornerColor(i))
		if opts.ShowLabels {
			drawLabel(out, int(p.X)+radius+2, int(p.Y)-radius, fmt.Sprintf("%d", i),
				color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 180})
		}
	}

	if opts.Confidence >= 0 {
		pct := int(math.Round(opts.Confidence * 100))
		drawLabel(out, bounds.Min.X+4, bounds.Min.Y+4, fmt.Sprintf("%d", pct),
			color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 180})
	}

	return out, nil
}

// Overlay renders the composite with Draw and packages it as a
// base64-encoded PNG for JSON transport.
func Overlay(img image.Image, q geometry.Quadrilateral, opts Options) (*OverlayResult, error) {
	out, err := Draw(img, q, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	b := out.Bounds()
	return &OverlayResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Confidence:  opts.Confidence,
	}, nil
}

// drawLine rasterizes the segment from a to b by stepping one pixel at a
// time along the longer axis.
func drawLine(img *image.RGBA, a, b geometry.Point, c color.RGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		setClamped(img, int(a.X), int(a.Y), c)
		return
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		setClamped(img, int(a.X+dx*t+0.5), int(a.Y+dy*t+0.5), c)
	}
}

// drawHandle fills a disc of the given radius centered on p.
func drawHandle(img *image.RGBA, p geometry.Point, radius int, c color.RGBA) {
	cx, cy := int(p.X), int(p.Y)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				setClamped(img, cx+dx, cy+dy, c)
			}
		}
	}
}

func setClamped(img *image.RGBA, x, y int, c color.RGBA) {
	b := img.Bounds()
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		img.SetRGBA(x, y, c)
	}
}

// drawLabel draws a short numeric label with a 3x5 pixel font.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.Set(px, py, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
						img.Set(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}
