// Package editor implements the interactive corner editor for document
// crop selections.
//
// # Overview
//
// The editor owns a single quadrilateral in view space and mutates it in
// response to touch events forwarded by a hosting display surface. A drag
// begins when a touch lands within the grab radius of a corner, moves that
// corner with the pointer, and ends on release or cancel. Corner positions
// are replaced wholesale on each edit; relative coordinates are derived
// from the last-known viewport on demand, so the absolute and relative
// views of a corner can never disagree.
//
// # Resizes
//
// When the viewport changes while idle (device rotation, window resize),
// every corner is recomputed from its fraction of the old viewport against
// the new dimensions. This keeps user edits stable without re-running
// detection.
//
// # Threading
//
// The editor is not safe for concurrent use. It is designed for
// single-threaded, event-driven touch dispatch; the animation state is
// advanced by the host's redraw loop through Tick, not by an internal
// timer.
package editor
