package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Word is a single recognized word with its location and OCR confidence.
// Coordinates are in the pixel space of the image given to Recognize; for
// scan output that is the rectified document image.
type Word struct {
	// Text is the recognized word.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this word.
	Bounds Bounds `json:"bounds"`
}

// Result contains the complete results of text recognition on one image.
type Result struct {
	// FullText is all recognized text as a single string with original
	// spacing and newlines.
	FullText string `json:"full_text"`

	// Words contains individual words with bounding boxes and confidence
	// scores. May be empty if box extraction fails; FullText is still set.
	Words []Word `json:"words"`

	// Width and Height record the dimensions of the recognized image, so
	// downstream consumers can remap the word boxes into their own
	// coordinate space.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Recognize performs OCR on an in-memory image.
//
// language is a Tesseract language code (e.g., "eng" for English); the
// corresponding language data must be installed on the system. The image is
// written to a temporary PNG because Tesseract consumes file paths; the
// file is removed before returning.
//
// Word-level boxes use Tesseract's RIL_WORD iterator. Empty words are
// filtered out. If box extraction fails, the full text is still returned
// with an empty Words slice.
func Recognize(img image.Image, language string) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("ocr: nil image")
	}

	tmpFile, err := os.CreateTemp("", "ocr-page-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	res, err := RecognizeFile(tmpPath, language)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	res.Width = bounds.Dx()
	res.Height = bounds.Dy()
	return res, nil
}

// RecognizeFile performs OCR on an image file on disk.
func RecognizeFile(imagePath string, language string) (*Result, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Return just the text if boxes fail.
		return &Result{FullText: text, Words: []Word{}}, nil
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &Result{FullText: text, Words: words}, nil
}

// Version returns the Tesseract library version string.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}

// Info describes OCR availability for diagnostics output.
type Info struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Backend   string `json:"backend"`
}

// GetInfo reports whether Tesseract is usable in this process.
func GetInfo() Info {
	v := Version()
	return Info{
		Available: v != "",
		Version:   v,
		Backend:   "gosseract",
	}
}
