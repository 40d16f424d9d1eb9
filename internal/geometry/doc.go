// Package geometry provides the point/quadrilateral model and the coordinate
// transform engine for the document scanning pipeline.
//
// The package deals with three coordinate spaces:
//
//   - Source space: pixel coordinates of the captured bitmap.
//   - View space: coordinates of the on-screen overlay the user edits in. The
//     bitmap is displayed fit-center (uniformly scaled to fit, centered, with
//     letterbox or pillarbox padding), so view space differs from source space
//     by a scale factor and a pair of centering offsets.
//   - Page space: coordinates of an output document rectangle (for example a
//     PDF page). Page mapping reuses the same fit-center arithmetic as view
//     mapping so the two can never drift apart.
//
// # Coordinate System
//
// All spaces use the standard image convention: origin (0, 0) at the top-left
// corner, X increasing rightward, Y increasing downward. Quadrilateral corners
// are always ordered top-left, top-right, bottom-right, bottom-left; consumers
// never reorder them.
//
// # Error Handling
//
// Transform functions never panic and never produce NaN or infinite results.
// Calls with non-positive dimensions report failure through a boolean return
// instead, because inputs originate from asynchronous UI and detector events
// that can race with view teardown.
//
// # Thread Safety
//
// Everything in this package is a pure function over value types and is safe
// to call concurrently from any goroutine.
package geometry
