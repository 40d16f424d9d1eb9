package editor

import "math"

// MagnifierHost is the optional loupe widget provided by the platform. The
// editor calls Show while a corner is held and Dismiss when the drag ends.
// Editors without a host simply skip these calls.
type MagnifierHost interface {
	// Show positions a magnified preview anchored near the view-space
	// point (x, y).
	Show(x, y float64)
	// Dismiss hides the preview.
	Dismiss()
}

// Magnifier limits for hosts that want consistent loupe behavior.
const (
	MinMagnifierZoom = 2.0
	MaxMagnifierZoom = 4.0
	MinMagnifierSize = 80.0
)

// ClampMagnifier normalizes a host-requested loupe configuration: zoom is
// clamped into [MinMagnifierZoom, MaxMagnifierZoom] and the preview size to
// at least MinMagnifierSize pixels.
func ClampMagnifier(zoom, size float64) (float64, float64) {
	zoom = math.Max(MinMagnifierZoom, math.Min(MaxMagnifierZoom, zoom))
	size = math.Max(MinMagnifierSize, size)
	return zoom, size
}
