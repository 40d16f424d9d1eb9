// Package imaging provides image loading and resizing support for the scan
// pipeline.
//
// This package owns the decode boundary of the application: source
// photographs enter here (PNG, JPEG, GIF, WebP) and processed output
// leaves here. All operations work with standard Go image.Image types and
// use a coordinate system where (0,0) is at the top-left corner, X
// increases rightward, and Y increases downward.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image
// operations are stateless and can be called concurrently on different
// images.
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid
// redundant disk reads. Large images may consume significant memory when
// cached. Consider using Evict() or Clear() to manage memory for
// long-running processes.
package imaging
