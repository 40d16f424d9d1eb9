package detect

import (
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"

	"github.com/papercrane/docscan/internal/geometry"
)

const (
	// maxDetectEdge caps the working resolution of the contour pipeline.
	// Larger inputs are downscaled first and the result mapped back.
	maxDetectEdge = 1000

	// minContourArea is the fraction of the image a contour's hull must
	// cover to be considered a document candidate.
	minContourArea = 0.20

	// minContourPoints discards small noise components.
	minContourPoints = 32
)

// detectContours runs the primary contour pipeline and returns a result in
// full-resolution source space, or nil when no plausible document boundary
// is found. Any panic inside the pipeline is treated the same as a null
// detection, so a decoding edge case can only ever demote detection to the
// next tier.
func (d *Detector) detectContours(img image.Image) (res *Result) {
	defer func() {
		if recover() != nil {
			res = nil
		}
	}()

	bounds := img.Bounds()
	fullW, fullH := bounds.Dx(), bounds.Dy()

	// Work at a bounded resolution.
	working := img
	scale := 1.0
	if longest := max(fullW, fullH); longest > maxDetectEdge {
		scale = float64(maxDetectEdge) / float64(longest)
		working = imaging.Resize(img, int(float64(fullW)*scale), int(float64(fullH)*scale), imaging.Lanczos)
	}
	wb := working.Bounds()
	w, h := wb.Dx(), wb.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	// Blur, then binarize at the Otsu threshold so the page separates from
	// the background, then close small gaps in the page region.
	blurred := blur.Gaussian(working, 2.0)
	binary := segment.Threshold(blurred, otsuLevel(blurred))
	mask := grayToMask(binary)
	closeMask(mask, w, h)

	edges := boundaryPixels(mask, w, h)
	contours := findContours(edges, w, h)

	var best geometry.Quadrilateral
	bestArea := 0.0
	bestConfidence := 0.0
	imgArea := float64(w * h)

	for _, contour := range contours {
		if len(contour) < minContourPoints {
			continue
		}
		hull := convexHull(contour)
		if len(hull) < 4 {
			continue
		}
		hullArea := polygonArea(hull)
		if hullArea < minContourArea*imgArea {
			continue
		}

		quad := quadFromHull(hull)
		avgW := (quad[geometry.TopLeft].Dist(quad[geometry.TopRight]) +
			quad[geometry.BottomLeft].Dist(quad[geometry.BottomRight])) / 2
		avgH := (quad[geometry.TopLeft].Dist(quad[geometry.BottomLeft]) +
			quad[geometry.TopRight].Dist(quad[geometry.BottomRight])) / 2
		if avgW <= 0 {
			continue
		}
		aspect := avgH / avgW
		if aspect <= 0.5 || aspect >= 2.5 {
			continue
		}
		if hullArea <= bestArea {
			continue
		}

		bestArea = hullArea
		best = quad
		// How well the hull fills its fitted quadrilateral: 1.0 means the
		// contour really is a quadrilateral.
		if qa := quad.Area(); qa > 0 {
			bestConfidence = math.Max(0, math.Min(1, 1-math.Abs(qa-hullArea)/qa))
		}
	}

	if bestArea == 0 {
		return nil
	}

	// Map back to full resolution and naturalize suspiciously rectangular
	// results.
	for i := range best {
		best[i].X /= scale
		best[i].Y /= scale
	}
	best = Naturalize(best, float64(fullW), float64(fullH), d.rand)

	return &Result{Corners: best, Confidence: bestConfidence, Tier: TierContour}
}

// otsuLevel computes the Otsu threshold over the grayscale histogram of img.
func otsuLevel(img image.Image) uint8 {
	var hist [256]int
	bounds := img.Bounds()
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := uint8(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
			hist[lum]++
			total++
		}
	}
	if total == 0 {
		return 128
	}

	sum := 0.0
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	sumB, wB := 0.0, 0
	bestLevel, bestVariance := uint8(128), 0.0
	for i, n := range hist {
		wB += n
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(n)
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		variance := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if variance > bestVariance {
			bestVariance = variance
			bestLevel = uint8(i)
		}
	}
	return bestLevel
}

// grayToMask converts a binary *image.Gray into a 2D boolean mask.
func grayToMask(img *image.Gray) [][]bool {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	mask := make([][]bool, h)
	for y := 0; y < h; y++ {
		mask[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			mask[y][x] = img.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y >= 128
		}
	}
	return mask
}

// closeMask performs one morphological close (dilate then erode) with a 3x3
// structuring element, bridging small gaps along the page boundary.
func closeMask(mask [][]bool, w, h int) {
	dilated := make([][]bool, h)
	for y := 0; y < h; y++ {
		dilated[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			for dy := -1; dy <= 1 && !dilated[y][x]; dy++ {
				for dx := -1; dx <= 1; dx++ {
					ny, nx := y+dy, x+dx
					if ny >= 0 && ny < h && nx >= 0 && nx < w && mask[ny][nx] {
						dilated[y][x] = true
						break
					}
				}
			}
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			keep := true
			for dy := -1; dy <= 1 && keep; dy++ {
				for dx := -1; dx <= 1; dx++ {
					ny, nx := y+dy, x+dx
					if ny >= 0 && ny < h && nx >= 0 && nx < w && !dilated[ny][nx] {
						keep = false
						break
					}
				}
			}
			mask[y][x] = keep
		}
	}
}

// boundaryPixels marks mask pixels that touch a background 4-neighbor.
// On a binary mask this is equivalent to edge detection and far cheaper.
func boundaryPixels(mask [][]bool, w, h int) [][]bool {
	edges := make([][]bool, h)
	for y := 0; y < h; y++ {
		edges[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			if !mask[y][x] {
				continue
			}
			if x == 0 || y == 0 || x == w-1 || y == h-1 ||
				!mask[y][x-1] || !mask[y][x+1] || !mask[y-1][x] || !mask[y+1][x] {
				edges[y][x] = true
			}
		}
	}
	return edges
}

type pixel struct{ x, y int }

// findContours groups connected edge pixels into contours using iterative
// 8-connected flood fill.
func findContours(edges [][]bool, w, h int) [][]pixel {
	visited := make([][]bool, h)
	for y := 0; y < h; y++ {
		visited[y] = make([]bool, w)
	}

	var contours [][]pixel
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !edges[y][x] || visited[y][x] {
				continue
			}
			var contour []pixel
			stack := []pixel{{x, y}}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if p.x < 0 || p.x >= w || p.y < 0 || p.y >= h {
					continue
				}
				if visited[p.y][p.x] || !edges[p.y][p.x] {
					continue
				}
				visited[p.y][p.x] = true
				contour = append(contour, p)
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						stack = append(stack, pixel{p.x + dx, p.y + dy})
					}
				}
			}
			if len(contour) >= minContourPoints {
				contours = append(contours, contour)
			}
		}
	}
	return contours
}

// convexHull computes the convex hull of a point set with the monotone chain
// algorithm. The returned hull is ordered along the boundary without the
// closing point.
func convexHull(pts []pixel) []geometry.Point {
	if len(pts) < 3 {
		out := make([]geometry.Point, len(pts))
		for i, p := range pts {
			out[i] = geometry.Point{X: float64(p.x), Y: float64(p.y)}
		}
		return out
	}

	sorted := make([]pixel, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].x != sorted[j].x {
			return sorted[i].x < sorted[j].x
		}
		return sorted[i].y < sorted[j].y
	})

	cross := func(o, a, b pixel) int {
		return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
	}

	var hull []pixel
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]

	out := make([]geometry.Point, len(hull))
	for i, p := range hull {
		out[i] = geometry.Point{X: float64(p.x), Y: float64(p.y)}
	}
	return out
}

// polygonArea computes the absolute shoelace area of a polygon.
func polygonArea(poly []geometry.Point) float64 {
	var sum float64
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// quadFromHull fits a quadrilateral to a convex hull by taking the extreme
// points along the two diagonal directions: min/max of x+y give the top-left
// and bottom-right corners, min/max of y-x the top-right and bottom-left.
func quadFromHull(hull []geometry.Point) geometry.Quadrilateral {
	tl, tr, br, bl := hull[0], hull[0], hull[0], hull[0]
	for _, p := range hull[1:] {
		if p.X+p.Y < tl.X+tl.Y {
			tl = p
		}
		if p.X+p.Y > br.X+br.Y {
			br = p
		}
		if p.Y-p.X < tr.Y-tr.X {
			tr = p
		}
		if p.Y-p.X > bl.Y-bl.X {
			bl = p
		}
	}
	return geometry.Quadrilateral{tl, tr, br, bl}
}
