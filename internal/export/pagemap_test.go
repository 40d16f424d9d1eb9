package export

import (
	"math"
	"testing"

	"github.com/papercrane/docscan/internal/ocr"
)

func TestLayoutPageHalfScale(t *testing.T) {
	// 1200x1600 image onto a 600x800 page: exact half scale, no margins.
	res := &ocr.Result{
		Words: []ocr.Word{
			{Text: "invoice", Confidence: 0.9, Bounds: ocr.Bounds{X1: 100, Y1: 100, X2: 300, Y2: 140}},
		},
	}
	layout, err := LayoutPage(1200, 1600, res, 600, 800)
	if err != nil {
		t.Fatalf("LayoutPage failed: %v", err)
	}

	if layout.ImageX != 0 || layout.ImageY != 0 {
		t.Errorf("image offset (%v, %v), want (0, 0)", layout.ImageX, layout.ImageY)
	}
	if layout.ImageWidth != 600 || layout.ImageHeight != 800 {
		t.Errorf("image size %vx%v, want 600x800", layout.ImageWidth, layout.ImageHeight)
	}

	w := layout.Words[0]
	if w.X != 50 || w.Y != 50 {
		t.Errorf("word position (%v, %v), want (50, 50)", w.X, w.Y)
	}
	if w.Width != 100 || w.Height != 20 {
		t.Errorf("word size %vx%v, want 100x20", w.Width, w.Height)
	}
}

func TestLayoutPageLetterboxOffsets(t *testing.T) {
	// A wide image on a portrait page: scaled by width, vertically centered.
	layout, err := LayoutPage(2000, 1000, nil, 500, 700)
	if err != nil {
		t.Fatalf("LayoutPage failed: %v", err)
	}
	if layout.ImageWidth != 500 {
		t.Errorf("ImageWidth = %v, want 500", layout.ImageWidth)
	}
	if layout.ImageHeight != 250 {
		t.Errorf("ImageHeight = %v, want 250", layout.ImageHeight)
	}
	if layout.ImageX != 0 {
		t.Errorf("ImageX = %v, want 0", layout.ImageX)
	}
	if want := (700.0 - 250.0) / 2; math.Abs(layout.ImageY-want) > 1e-9 {
		t.Errorf("ImageY = %v, want %v (vertically centered)", layout.ImageY, want)
	}
}

func TestLayoutPageWordsStayOnImage(t *testing.T) {
	res := &ocr.Result{
		Words: []ocr.Word{
			{Text: "a", Bounds: ocr.Bounds{X1: 0, Y1: 0, X2: 50, Y2: 20}},
			{Text: "b", Bounds: ocr.Bounds{X1: 950, Y1: 1180, X2: 1000, Y2: 1200}},
		},
	}
	layout, err := LayoutPage(1000, 1200, res, 595.28, 841.89)
	if err != nil {
		t.Fatalf("LayoutPage failed: %v", err)
	}

	for _, w := range layout.Words {
		if w.X < layout.ImageX-1e-9 || w.Y < layout.ImageY-1e-9 ||
			w.X+w.Width > layout.ImageX+layout.ImageWidth+1e-9 ||
			w.Y+w.Height > layout.ImageY+layout.ImageHeight+1e-9 {
			t.Errorf("word %q at (%v, %v) %vx%v escapes image rect", w.Text, w.X, w.Y, w.Width, w.Height)
		}
	}
}

func TestLayoutPageNilResult(t *testing.T) {
	layout, err := LayoutPage(800, 600, nil, 612, 792)
	if err != nil {
		t.Fatalf("LayoutPage failed: %v", err)
	}
	if len(layout.Words) != 0 {
		t.Errorf("expected no words, got %d", len(layout.Words))
	}
}

func TestLayoutPageDegenerateDimensions(t *testing.T) {
	if _, err := LayoutPage(0, 600, nil, 612, 792); err == nil {
		t.Error("LayoutPage with zero image width succeeded")
	}
	if _, err := LayoutPage(800, 600, nil, 0, 792); err == nil {
		t.Error("LayoutPage with zero page width succeeded")
	}
}

func TestPageDimensionsOrientation(t *testing.T) {
	w, h, err := pageDimensions(PDFOptions{PageSize: "a4"}, 1000, 2000)
	if err != nil {
		t.Fatalf("pageDimensions failed: %v", err)
	}
	if w >= h {
		t.Errorf("portrait image got page %vx%v, want portrait", w, h)
	}

	w, h, err = pageDimensions(PDFOptions{}, 2000, 1000)
	if err != nil {
		t.Fatalf("pageDimensions failed: %v", err)
	}
	if w <= h {
		t.Errorf("landscape image got page %vx%v, want landscape", w, h)
	}

	if _, _, err := pageDimensions(PDFOptions{PageSize: "tabloid"}, 100, 100); err == nil {
		t.Error("unknown page size accepted")
	}
}
