// Package scan orchestrates the full document-scanning pipeline: boundary
// detection, perspective rectification, OCR and export.
package scan

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"

	"github.com/papercrane/docscan/internal/detect"
	"github.com/papercrane/docscan/internal/export"
	"github.com/papercrane/docscan/internal/geometry"
	"github.com/papercrane/docscan/internal/imaging"
	"github.com/papercrane/docscan/internal/ocr"
	"github.com/papercrane/docscan/internal/rectify"
	"github.com/papercrane/docscan/internal/render"
)

// Pipeline wires the scan stages together around a shared image cache and
// detector.
type Pipeline struct {
	cache    *imaging.ImageCache
	detector *detect.Detector
	debug    bool
}

// Options configures a Pipeline.
type Options struct {
	// Seed fixes the detector's random source; zero uses ambient
	// randomness.
	Seed int64
}

// New builds a ready-to-use pipeline. The contour tier is initialized
// immediately; if that ever grows a real failure mode the pipeline still
// works through its fallback tiers.
func New(opts Options) *Pipeline {
	handle := detect.NewHandle()
	if err := handle.Init(); err != nil {
		log.Printf("detector init failed, falling back to heuristics: %v", err)
	}
	var rng detect.RandSource
	if opts.Seed != 0 {
		rng = detect.NewRandSource(opts.Seed)
	}
	return &Pipeline{
		cache:    imaging.NewImageCache(),
		detector: detect.NewDetector(handle, rng),
		debug:    os.Getenv("DOCSCAN_LOG_LEVEL") == "debug",
	}
}

// LoadImage decodes the image at path through the pipeline's cache.
func (p *Pipeline) LoadImage(path string) (image.Image, error) {
	return p.cache.Load(path)
}

// Detect finds the document boundary in the image at path. Detection itself
// always succeeds through the tier chain; only a load failure is an error.
func (p *Pipeline) Detect(path string) (*detect.Result, error) {
	img, err := p.cache.Load(path)
	if err != nil {
		return nil, err
	}
	res := p.detector.Detect(img)
	if p.debug {
		log.Printf("detected corners via %s tier (confidence %.2f): %v", res.Tier, res.Confidence, res.Corners)
	}
	return res, nil
}

// DetectAsync runs Detect off the calling goroutine and delivers the single
// outcome on the returned channel. The channel is buffered so the worker
// never blocks if the caller has moved on; callers that switched images
// mid-detection simply discard the stale result.
func (p *Pipeline) DetectAsync(path string) <-chan DetectOutcome {
	out := make(chan DetectOutcome, 1)
	go func() {
		res, err := p.Detect(path)
		out <- DetectOutcome{Result: res, Err: err}
		close(out)
	}()
	return out
}

// DetectOutcome is the handoff payload from DetectAsync.
type DetectOutcome struct {
	Result *detect.Result
	Err    error
}

// Preview renders the detection overlay the way a display surface would
// show it: the source image fit into a viewport of viewW x viewH, corners
// projected into view space, with handles and a confidence badge.
func (p *Pipeline) Preview(path string, viewW, viewH int) (*image.RGBA, error) {
	view, corners, opts, err := p.previewParts(path, viewW, viewH)
	if err != nil {
		return nil, err
	}
	return render.Draw(view, corners, opts)
}

// PreviewOverlay is Preview packaged as a base64-PNG JSON result for
// machine consumers of the CLI.
func (p *Pipeline) PreviewOverlay(path string, viewW, viewH int) (*render.OverlayResult, error) {
	view, corners, opts, err := p.previewParts(path, viewW, viewH)
	if err != nil {
		return nil, err
	}
	return render.Overlay(view, corners, opts)
}

// previewParts assembles the letterboxed view canvas, view-space corners and
// render options shared by the preview outputs.
func (p *Pipeline) previewParts(path string, viewW, viewH int) (*image.RGBA, geometry.Quadrilateral, render.Options, error) {
	img, err := p.cache.Load(path)
	if err != nil {
		return nil, geometry.Quadrilateral{}, render.Options{}, err
	}
	det, err := p.Detect(path)
	if err != nil {
		return nil, geometry.Quadrilateral{}, render.Options{}, err
	}

	bounds := img.Bounds()
	srcW, srcH := float64(bounds.Dx()), float64(bounds.Dy())
	corners, ok := detect.ViewCorners(det, srcW, srcH, float64(viewW), float64(viewH))
	if !ok {
		return nil, geometry.Quadrilateral{}, render.Options{}, fmt.Errorf("scan: invalid viewport %dx%d", viewW, viewH)
	}

	view := imagingResizeToView(img, viewW, viewH)
	opts := render.DefaultOptions()
	opts.Confidence = det.Confidence
	return view, corners, opts, nil
}

// imagingResizeToView letterboxes the source into a viewport canvas using
// the same fit-center layout the corner projection uses.
func imagingResizeToView(img image.Image, viewW, viewH int) *image.RGBA {
	bounds := img.Bounds()
	fc, ok := geometry.NewFitCenter(float64(bounds.Dx()), float64(bounds.Dy()), float64(viewW), float64(viewH))
	canvas := image.NewRGBA(image.Rect(0, 0, viewW, viewH))
	if !ok {
		return canvas
	}
	scaledW := int(float64(bounds.Dx()) * fc.Scale)
	scaledH := int(float64(bounds.Dy()) * fc.Scale)
	scaled, err := imaging.Resize(img, scaledW, scaledH)
	if err != nil {
		return canvas
	}
	target := image.Rect(0, 0, scaledW, scaledH).Add(image.Pt(int(fc.OffsetX), int(fc.OffsetY)))
	draw.Draw(canvas, target, scaled, scaled.Bounds().Min, draw.Src)
	return canvas
}

// Rectify warps the document bounded by corners (in source pixel space) out
// of the image at path.
func (p *Pipeline) Rectify(path string, corners geometry.Quadrilateral) (*image.RGBA, error) {
	img, err := p.cache.Load(path)
	if err != nil {
		return nil, err
	}
	return rectify.Rectify(img, corners)
}

// ScanOptions configures a full end-to-end scan.
type ScanOptions struct {
	// Language is the Tesseract language code for OCR; empty skips OCR.
	Language string

	// PDF selects the output: a searchable PDF when true, an image file
	// otherwise.
	PDF bool

	// PageSize names the PDF page size ("a4", "letter", "legal").
	PageSize string

	// MaxEdge, when positive, downscales image output so its longest edge
	// does not exceed this many pixels. Ignored for PDF output.
	MaxEdge int

	// Quality is the JPEG quality (1-100) for image output; non-positive
	// uses the default. Ignored for PDF and PNG output.
	Quality int
}

// Scan runs the complete pipeline on the image at inPath and writes the
// result to outPath: detect the boundary, rectify, optionally OCR, then
// export as PDF or image.
func (p *Pipeline) Scan(inPath, outPath string, opts ScanOptions) error {
	det, err := p.Detect(inPath)
	if err != nil {
		return err
	}

	rectified, err := p.Rectify(inPath, det.Corners)
	if err != nil {
		return err
	}
	if p.debug {
		b := rectified.Bounds()
		log.Printf("rectified to %dx%d", b.Dx(), b.Dy())
	}

	var ocrRes *ocr.Result
	if opts.Language != "" {
		ocrRes, err = ocr.Recognize(rectified, opts.Language)
		if err != nil {
			return fmt.Errorf("scan: ocr: %w", err)
		}
		if p.debug {
			log.Printf("recognized %d words", len(ocrRes.Words))
		}
	}

	if opts.PDF {
		return export.WritePDF(rectified, ocrRes, export.PDFOptions{
			PageSize:  opts.PageSize,
			TextLayer: ocrRes != nil,
		}, outPath)
	}

	out := image.Image(rectified)
	if opts.MaxEdge > 0 {
		out, err = imaging.Downscale(out, opts.MaxEdge)
		if err != nil {
			return err
		}
	}
	return imaging.SaveJPEGQuality(out, outPath, opts.Quality)
}
