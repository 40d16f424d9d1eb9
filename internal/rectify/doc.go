// Package rectify performs perspective correction of document images.
//
// # Overview
//
// Given a source image and the quadrilateral bounding the document within
// it, Rectify produces a flat, axis-aligned image of the document alone.
// The output dimensions come from the quadrilateral itself: the width is
// the longer of the two horizontal edges, the height the longer of the two
// vertical edges, so no content is compressed below its sampled resolution.
//
// # Method
//
// The mapping is a plane homography. The transform is built from the unit
// square to the source quadrilateral and composed with the adjoint for the
// inverse direction; each destination pixel is mapped back into the source
// and filled by bilinear sampling. Destination pixels that map outside the
// source bounds are black.
//
// # Error Handling
//
// Rectify never panics. A nil image, a degenerate quadrilateral, or a
// numerically singular transform produces a descriptive error instead of a
// distorted result.
package rectify
