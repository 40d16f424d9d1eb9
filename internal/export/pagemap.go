// Package export produces the final scan artifacts: searchable PDFs and
// processed image files.
package export

import (
	"fmt"

	"github.com/papercrane/docscan/internal/geometry"
	"github.com/papercrane/docscan/internal/ocr"
)

// PlacedWord is an OCR word positioned in PDF page coordinates (points,
// origin top-left).
type PlacedWord struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// PageLayout describes how a rectified image and its OCR words land on a
// PDF page: the image is fit-center scaled into the page rectangle and each
// word box is carried through the same transform.
type PageLayout struct {
	// PageWidth and PageHeight are the page dimensions in points.
	PageWidth  float64 `json:"page_width"`
	PageHeight float64 `json:"page_height"`

	// ImageX, ImageY, ImageWidth, ImageHeight give the placed image
	// rectangle on the page.
	ImageX      float64 `json:"image_x"`
	ImageY      float64 `json:"image_y"`
	ImageWidth  float64 `json:"image_width"`
	ImageHeight float64 `json:"image_height"`

	// Words are the OCR words in page coordinates.
	Words []PlacedWord `json:"words"`
}

// LayoutPage maps a rectified image of imgW x imgH pixels and its OCR
// result onto a page of pageW x pageH points. The mapping is the same
// fit-center transform used for view display, applied against the page
// rectangle, so word positions cannot drift from the image placement.
func LayoutPage(imgW, imgH int, res *ocr.Result, pageW, pageH float64) (*PageLayout, error) {
	fc, ok := geometry.NewFitCenter(float64(imgW), float64(imgH), pageW, pageH)
	if !ok {
		return nil, fmt.Errorf("export: cannot fit %dx%d image onto %gx%g page", imgW, imgH, pageW, pageH)
	}

	layout := &PageLayout{
		PageWidth:   pageW,
		PageHeight:  pageH,
		ImageX:      fc.OffsetX,
		ImageY:      fc.OffsetY,
		ImageWidth:  float64(imgW) * fc.Scale,
		ImageHeight: float64(imgH) * fc.Scale,
	}

	if res == nil {
		return layout, nil
	}

	layout.Words = make([]PlacedWord, 0, len(res.Words))
	for _, w := range res.Words {
		tl := fc.Apply(geometry.Point{X: float64(w.Bounds.X1), Y: float64(w.Bounds.Y1)})
		br := fc.Apply(geometry.Point{X: float64(w.Bounds.X2), Y: float64(w.Bounds.Y2)})
		layout.Words = append(layout.Words, PlacedWord{
			Text:       w.Text,
			Confidence: w.Confidence,
			X:          tl.X,
			Y:          tl.Y,
			Width:      br.X - tl.X,
			Height:     br.Y - tl.Y,
		})
	}
	return layout, nil
}
