package geom

// Closest returns the point whose horizontal slot contains x. The slot
// boundary between two neighbours sits halfway between them, shifted left by
// bias pixels. ok is false when x lies outside the span of points.
func Closest(points []Point, x, bias float64) (p Point, ok bool) {
	for k, cur := range points {
		prev := points[0]
		if k > 0 {
			prev = points[k-1]
		}
		if x < prev.X || x > cur.X {
			continue
		}
		if x <= prev.X+(cur.X-prev.X)/2-bias {
			return prev, true
		}
		return cur, true
	}
	return Point{}, false
}
