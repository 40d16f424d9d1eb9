package detect

import (
	"image"
	"math/rand"
	"sync"

	"github.com/papercrane/docscan/internal/geometry"
)

// Tier identifies which detection tier produced a result.
type Tier int

const (
	// TierContour is the primary contour-analysis pipeline.
	TierContour Tier = iota
	// TierInset is the heuristic fallback: corners inset from the image
	// edges and perturbed into a natural-looking trapezoid.
	TierInset
	// TierTemplate is the final fallback: a named template chosen from the
	// viewport shape alone.
	TierTemplate
)

// String returns a short name for the tier.
func (t Tier) String() string {
	switch t {
	case TierContour:
		return "contour"
	case TierInset:
		return "inset"
	case TierTemplate:
		return "template"
	}
	return "unknown"
}

// Result is a detected document boundary.
type Result struct {
	// Corners is the detected quadrilateral in source-image pixel space
	// (view space for template results, which have no source image).
	Corners geometry.Quadrilateral `json:"corners"`

	// Confidence indicates detection quality (0.0 to 1.0). Fallback tiers
	// report fixed, lower confidences than the contour tier.
	Confidence float64 `json:"confidence"`

	// Tier records which tier produced the result.
	Tier Tier `json:"tier"`
}

// Handle gates the availability of the contour tier. It replaces a hidden
// process-wide "is the vision pipeline initialized" flag with an explicit
// lifecycle the caller owns.
type Handle struct {
	mu    sync.Mutex
	ready bool
}

// NewHandle returns an uninitialized handle. Detection through an
// uninitialized handle skips the contour tier.
func NewHandle() *Handle {
	return &Handle{}
}

// Init marks the contour pipeline available. Safe to call repeatedly.
func (h *Handle) Init() error {
	h.mu.Lock()
	h.ready = true
	h.mu.Unlock()
	return nil
}

// Ready reports whether the contour tier may run.
func (h *Handle) Ready() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ready
}

// Shutdown marks the contour pipeline unavailable again.
func (h *Handle) Shutdown() {
	h.mu.Lock()
	h.ready = false
	h.mu.Unlock()
}

// RandSource supplies the randomness used to naturalize detected shapes.
// Tests inject a fixed-seed source to assert exact corner positions.
type RandSource interface {
	// Bool returns a random boolean.
	Bool() bool
	// Float64 returns a random value in [0, 1).
	Float64() float64
}

type mathRandSource struct {
	r *rand.Rand
}

func (s mathRandSource) Bool() bool       { return s.r.Intn(2) == 1 }
func (s mathRandSource) Float64() float64 { return s.r.Float64() }

// NewRandSource returns a RandSource seeded with the given seed.
func NewRandSource(seed int64) RandSource {
	return mathRandSource{r: rand.New(rand.NewSource(seed))}
}

// Detector finds document boundaries in images.
type Detector struct {
	handle *Handle
	rand   RandSource
}

// NewDetector creates a detector. handle may be nil, in which case the
// contour tier is skipped. rng may be nil to use an unseeded source.
func NewDetector(handle *Handle, rng RandSource) *Detector {
	if rng == nil {
		rng = mathRandSource{r: rand.New(rand.NewSource(rand.Int63()))}
	}
	return &Detector{handle: handle, rand: rng}
}

// Detect returns the best-guess document quadrilateral for img, in source
// pixel space. Detection always produces a result: a nil image or one with
// non-positive dimensions falls through to the template tier, whose corners
// are in view space rather than source space.
func (d *Detector) Detect(img image.Image) *Result {
	if img == nil {
		return TemplateQuadrilateral(0, 0)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return TemplateQuadrilateral(float64(w), float64(h))
	}

	if d.handle.Ready() {
		if res := d.detectContours(img); res != nil {
			return res
		}
	}

	return d.insetFallback(float64(w), float64(h))
}

// insetFallback synthesizes a quadrilateral inset 15% from the image edges
// and perturbs it so the selection reads as adjustable perspective rather
// than a fixed frame.
func (d *Detector) insetFallback(w, h float64) *Result {
	inset := geometry.Quadrilateral{
		{X: w * 0.15, Y: h * 0.15},
		{X: w * 0.85, Y: h * 0.15},
		{X: w * 0.85, Y: h * 0.85},
		{X: w * 0.15, Y: h * 0.85},
	}
	return &Result{
		Corners:    MakeNonRectangular(inset, w, h, d.rand),
		Confidence: 0.3,
		Tier:       TierInset,
	}
}
