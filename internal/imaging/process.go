package imaging

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is the quality used when saving scan output as JPEG.
const DefaultJPEGQuality = 90

// Downscale resizes img so its longest edge is at most maxEdge pixels,
// preserving aspect ratio. Images already within the limit are returned
// unchanged. maxEdge must be positive.
func Downscale(img image.Image, maxEdge int) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("downscale: nil image")
	}
	if maxEdge <= 0 {
		return nil, fmt.Errorf("downscale: non-positive max edge %d", maxEdge)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img, nil
	}

	if w >= h {
		return imaging.Resize(img, maxEdge, 0, imaging.Lanczos), nil
	}
	return imaging.Resize(img, 0, maxEdge, imaging.Lanczos), nil
}

// Resize scales img to exactly w x h pixels with Lanczos resampling.
func Resize(img image.Image, w, h int) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("resize: nil image")
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("resize: non-positive target %dx%d", w, h)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}

// Save writes img to path, choosing the encoder from the file extension.
// JPEG output uses DefaultJPEGQuality.
func Save(img image.Image, path string) error {
	return SaveJPEGQuality(img, path, DefaultJPEGQuality)
}

// SaveJPEGQuality is Save with an explicit JPEG quality (1-100). The quality
// only affects JPEG output; non-positive values fall back to the default.
func SaveJPEGQuality(img image.Image, path string, quality int) error {
	if img == nil {
		return fmt.Errorf("save: nil image")
	}
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	case ".png", ".gif", ".bmp", ".tif", ".tiff":
		return imaging.Save(img, path)
	default:
		return fmt.Errorf("save: unsupported extension %q", ext)
	}
}
