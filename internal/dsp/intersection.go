package dsp

// Point is a planar coordinate.
type Point struct {
	X, Y float64
}

// SelfIntersections returns the points where the polyline (x, y) crosses
// itself. Only pairs of non-adjacent segments are tested and an intersection
// must lie strictly inside both segments, so tangential touches and shared
// vertices are not reported. Segments with a NaN endpoint never intersect,
// which lets callers separate sub-curves with NaN. Duplicate points are
// reported once, in discovery order.
func SelfIntersections(x, y []float64) []Point {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	seen := make(map[Point]struct{})
	var out []Point
	for i := 0; i+1 < n; i++ {
		for j := i + 2; j+1 < n; j++ {
			p, ok := segmentIntersection(
				x[i], y[i], x[i+1], y[i+1],
				x[j], y[j], x[j+1], y[j+1], false)
			if !ok {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Intersections returns every point where polyline (x1, y1) meets polyline
// (x2, y2), tangential touches included. Duplicates are reported once.
func Intersections(x1, y1, x2, y2 []float64) []Point {
	seen := make(map[Point]struct{})
	var out []Point
	for i := 0; i+1 < len(x1) && i+1 < len(y1); i++ {
		for j := 0; j+1 < len(x2) && j+1 < len(y2); j++ {
			p, ok := segmentIntersection(
				x1[i], y1[i], x1[i+1], y1[i+1],
				x2[j], y2[j], x2[j+1], y2[j+1], true)
			if !ok {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// segmentIntersection solves a + t(b-a) = c + u(d-c). The point is always
// computed from the first segment so repeated calls on the same pair yield
// bit-identical coordinates.
func segmentIntersection(ax, ay, bx, by, cx, cy, dx, dy float64, inclusive bool) (Point, bool) {
	rx, ry := bx-ax, by-ay
	sx, sy := dx-cx, dy-cy
	denom := rx*sy - ry*sx
	if denom == 0 || denom != denom {
		return Point{}, false
	}
	qx, qy := cx-ax, cy-ay
	t := (qx*sy - qy*sx) / denom
	u := (qx*ry - qy*rx) / denom
	if inclusive {
		if !(t >= 0 && t <= 1 && u >= 0 && u <= 1) {
			return Point{}, false
		}
	} else if !(t > 0 && t < 1 && u > 0 && u < 1) {
		return Point{}, false
	}
	return Point{X: ax + t*rx, Y: ay + t*ry}, true
}
