package geometry

// RelativeCorner is a corner position expressed as a fraction of the view
// dimensions, each component in [0, 1]. Relative positions survive view
// resizes (for example a device rotation), so user edits can be carried to
// the new viewport without re-running detection.
type RelativeCorner struct {
	RelX float64 `json:"rel_x"`
	RelY float64 `json:"rel_y"`
}

// Relative converts a view-space quadrilateral into relative corner
// positions against the given view dimensions. Returns false when either
// dimension is non-positive.
func (q Quadrilateral) Relative(viewW, viewH float64) ([4]RelativeCorner, bool) {
	var rel [4]RelativeCorner
	if viewW <= 0 || viewH <= 0 {
		return rel, false
	}
	for i, p := range q {
		rel[i] = RelativeCorner{RelX: p.X / viewW, RelY: p.Y / viewH}
	}
	return rel, true
}

// FromRelative rebuilds an absolute view-space quadrilateral from relative
// corner positions against the given view dimensions.
func FromRelative(rel [4]RelativeCorner, viewW, viewH float64) Quadrilateral {
	var q Quadrilateral
	for i, r := range rel {
		q[i] = Point{X: r.RelX * viewW, Y: r.RelY * viewH}
	}
	return q
}
