// Package detect locates document boundaries in captured images.
//
// Detection is tiered. The primary tier runs a classical contour pipeline:
// grayscale conversion, Gaussian blur, Otsu binarization, morphological
// closing, boundary extraction, and convex-quadrilateral fitting over the
// resulting contours. When that tier is unavailable or finds no plausible
// document, a heuristic tier synthesizes a quadrilateral inset from the image
// edges. A final template tier, which needs no image at all, always succeeds.
//
// # Failure Semantics
//
// No tier lets an error escape the package boundary. Any internal failure,
// including a panic from image decoding edge cases, demotes detection to the
// next tier. The UI therefore always ends up with some quadrilateral to edit;
// the worst case is a template shape the user adjusts manually.
//
// # Shape Naturalization
//
// A detection that comes back as a near-perfect axis-aligned rectangle is
// usually a failure mode on flat or low-contrast backgrounds, and it also
// gives the user no visual cue that corners move independently. Such results
// are perturbed into a slightly trapezoidal shape before being returned. The
// random source driving the perturbation is injectable so tests can pin exact
// outputs. This behavior is preserved from long-standing practice; see
// DESIGN.md for the discussion.
//
// # Lifecycle
//
// The contour tier is guarded by a Handle with Init/Ready/Shutdown rather
// than hidden package state, so callers control when the heavyweight pipeline
// is considered available.
package detect
