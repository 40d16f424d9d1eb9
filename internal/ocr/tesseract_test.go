package ocr

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawText draws text on an image using basicfont
func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	point := fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  point,
	}
	d.DrawString(text)
}

// createImageWithText creates an image with actual rendered text for OCR testing
func createImageWithText(t *testing.T, text string, scale int) *image.RGBA {
	t.Helper()

	// basicfont.Face7x13 is 7 pixels wide, 13 pixels tall per character
	width := len(text)*7*scale + 40*scale
	height := 40 * scale

	smallImg := image.NewRGBA(image.Rect(0, 0, width/scale, height/scale))
	draw.Draw(smallImg, smallImg.Bounds(), image.White, image.Point{}, draw.Src)
	drawText(smallImg, 20, 25, text, color.Black)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height/scale; y++ {
		for x := 0; x < width/scale; x++ {
			c := smallImg.At(x, y)
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.Set(x*scale+dx, y*scale+dy, c)
				}
			}
		}
	}
	return img
}

func skipIfNoTesseract(t *testing.T, err error) {
	t.Helper()
	if err != nil && (strings.Contains(err.Error(), "tesseract") ||
		strings.Contains(err.Error(), "library")) {
		t.Skip("Tesseract not available")
	}
}

func TestRecognizeNilImage(t *testing.T) {
	if _, err := Recognize(nil, "eng"); err == nil {
		t.Error("Recognize(nil) should fail")
	}
}

func TestRecognizeFile_NonExistent(t *testing.T) {
	_, err := RecognizeFile("/nonexistent/path/image.png", "eng")
	if err == nil {
		t.Error("RecognizeFile should fail for non-existent file")
	}
}

func TestRecognizeBlankImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	result, err := Recognize(img, "eng")
	if err != nil {
		skipIfNoTesseract(t, err)
		t.Fatalf("Recognize failed: %v", err)
	}
	if result == nil {
		t.Fatal("Recognize returned nil result")
	}
	if result.Width != 200 || result.Height != 100 {
		t.Errorf("result dimensions %dx%d, want 200x100", result.Width, result.Height)
	}
}

func TestRecognizeRealText(t *testing.T) {
	img := createImageWithText(t, "HELLO WORLD", 3)

	result, err := Recognize(img, "eng")
	if err != nil {
		skipIfNoTesseract(t, err)
		t.Fatalf("Recognize failed: %v", err)
	}

	t.Logf("Extracted text: %q", result.FullText)
	t.Logf("Number of words: %d", len(result.Words))

	// Word boxes must lie inside the recognized image.
	for _, w := range result.Words {
		if w.Bounds.X1 < 0 || w.Bounds.Y1 < 0 ||
			w.Bounds.X2 > result.Width || w.Bounds.Y2 > result.Height {
			t.Errorf("word %q box %+v outside image %dx%d",
				w.Text, w.Bounds, result.Width, result.Height)
		}
		if w.Confidence < 0 || w.Confidence > 1 {
			t.Errorf("word %q confidence %v outside [0, 1]", w.Text, w.Confidence)
		}
	}
}

func TestRecognizeFile_RealText(t *testing.T) {
	img := createImageWithText(t, "DETECT THIS TEXT", 3)

	tmpFile, err := os.CreateTemp("", "ocr-file-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())
	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	tmpFile.Close()

	result, err := RecognizeFile(tmpFile.Name(), "eng")
	if err != nil {
		skipIfNoTesseract(t, err)
		t.Fatalf("RecognizeFile failed: %v", err)
	}

	t.Logf("Extracted: %q", strings.TrimSpace(result.FullText))
	for i, w := range result.Words {
		t.Logf("  word %d: %q (%d,%d)-(%d,%d) conf=%.2f",
			i, w.Text, w.Bounds.X1, w.Bounds.Y1, w.Bounds.X2, w.Bounds.Y2, w.Confidence)
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if info.Backend != "gosseract" {
		t.Errorf("Backend = %q, want gosseract", info.Backend)
	}
	t.Logf("OCR available=%v version=%q", info.Available, info.Version)
}
