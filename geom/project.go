package geom

// Vec2 is a position in pixel space.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Point is a projected data point.
type Point struct {
	X, Y float64
	// Value is the data value the point was projected from.
	Value float64
	// Index is the position of the value within its series.
	Index int
}

// Vec returns the pixel position of p.
func (p Point) Vec() Vec2 {
	return Vec2{X: p.X, Y: p.Y}
}

// Frame is the rectangle points are projected into.
type Frame struct {
	Left, Top, Width, Height float64
}

// Bottom returns the lowest pixel row of the frame.
func (f Frame) Bottom() float64 {
	return f.Top + f.Height
}

// Right returns the rightmost pixel column of the frame.
func (f Frame) Right() float64 {
	return f.Left + f.Width
}

// Scaler returns a Scaler mapping [minValue, maxValue] onto the frame's
// vertical extent.
func (f Frame) Scaler(minValue, maxValue float64, round bool) (Scaler, error) {
	return NewScaler(minValue, maxValue, f.Bottom(), f.Height, round)
}

// Project places values evenly across the frame's width, using s for the
// vertical position of each value. The scaler is expected to cover the
// frame's vertical extent. At least two values are required.
func Project(values []float64, s Scaler, f Frame) ([]Point, error) {
	if len(values) < 2 {
		return nil, &GeometryError{Reason: ReasonInsufficientPoints, Points: len(values)}
	}
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{
			X:     X(i, len(values), f.Left, f.Width),
			Y:     s.Y(v),
			Value: v,
			Index: i,
		}
	}
	return points, nil
}

// Bounds returns the smallest and largest value across every series. ok is
// false when no series holds a value.
func Bounds(series ...[]float64) (lo, hi float64, ok bool) {
	for _, values := range series {
		for _, v := range values {
			if !ok {
				lo, hi, ok = v, v, true
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi, ok
}
