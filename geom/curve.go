package geom

// Controls holds the Bézier control points of a smoothed polyline. Start[i]
// and End[i] belong to the segment running from point i to point i+1.
type Controls struct {
	Start, End []Vec2
}

// Segment returns the cubic Bézier for segment i of the curve through points.
func (c Controls) Segment(points []Point, i int) Segment {
	return Segment{
		P0: points[i].Vec(),
		C1: c.Start[i],
		C2: c.End[i],
		P1: points[i+1].Vec(),
	}
}

// Solve computes control points for a piecewise cubic Bézier curve that
// passes through every point with continuous first and second derivatives
// at the joints and zero curvature at both ends.
//
// The start control points are the solution of the tridiagonal system
//
//	2*S[0]   +   S[1]            = P[0] + 2*P[1]
//	S[i-1]   + 4*S[i] + S[i+1]   = 4*P[i] + 2*P[i+1]
//	S[n-2]   + 3.5*S[n-1]        = (8*P[n-1] + P[n]) / 2
//
// solved independently per axis. The end control points follow from the
// joint conditions. At least three points are required.
func Solve(points []Point) (Controls, error) {
	if len(points) < 3 {
		return Controls{}, &GeometryError{Reason: ReasonTooFewForCurve, Points: len(points)}
	}
	segments := len(points) - 1
	rhsX := make([]float64, segments)
	rhsY := make([]float64, segments)
	for i := 1; i < segments-1; i++ {
		rhsX[i] = 4*points[i].X + 2*points[i+1].X
		rhsY[i] = 4*points[i].Y + 2*points[i+1].Y
	}
	rhsX[0] = points[0].X + 2*points[1].X
	rhsY[0] = points[0].Y + 2*points[1].Y
	last := segments - 1
	rhsX[last] = (8*points[last].X + points[segments].X) / 2
	rhsY[last] = (8*points[last].Y + points[segments].Y) / 2

	xs := solveTridiagonal(rhsX)
	ys := solveTridiagonal(rhsY)

	c := Controls{
		Start: make([]Vec2, segments),
		End:   make([]Vec2, segments),
	}
	for i := range c.Start {
		c.Start[i] = Vec2{X: xs[i], Y: ys[i]}
	}
	for i := 0; i < last; i++ {
		c.End[i] = points[i+1].Vec().Mul(2).Sub(c.Start[i+1])
	}
	c.End[last] = points[segments].Vec().Add(c.Start[last]).Mul(0.5)
	return c, nil
}

// solveTridiagonal runs the Thomas algorithm over the fixed banded matrix
// used by Solve: unit off-diagonals, a diagonal of 2 in the first row, 3.5
// in the last row and 4 everywhere else. The matrix is diagonally dominant,
// so no pivoting is needed. rhs is consumed.
func solveTridiagonal(rhs []float64) []float64 {
	n := len(rhs)
	diag := make([]float64, n)
	out := make([]float64, n)
	diag[0] = 2
	for i := 1; i < n; i++ {
		m := 1 / diag[i-1]
		d := 4.0
		if i == n-1 {
			d = 3.5
		}
		diag[i] = d - m
		rhs[i] -= m * rhs[i-1]
	}
	out[n-1] = rhs[n-1] / diag[n-1]
	for i := n - 2; i >= 0; i-- {
		out[i] = (rhs[i] - out[i+1]) / diag[i]
	}
	return out
}

// Segment is a cubic Bézier from P0 to P1 with control points C1 and C2.
type Segment struct {
	P0, C1, C2, P1 Vec2
}

// At evaluates the segment at parameter t, clamped to [0, 1].
func (s Segment) At(t float64) Vec2 {
	t = clamp(t, 0, 1)
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Vec2{
		X: a*s.P0.X + b*s.C1.X + c*s.C2.X + d*s.P1.X,
		Y: a*s.P0.Y + b*s.C1.Y + c*s.C2.Y + d*s.P1.Y,
	}
}

// Derivative returns the first derivative at t.
func (s Segment) Derivative(t float64) Vec2 {
	u := 1 - t
	return s.C1.Sub(s.P0).Mul(3 * u * u).
		Add(s.C2.Sub(s.C1).Mul(6 * u * t)).
		Add(s.P1.Sub(s.C2).Mul(3 * t * t))
}

// SecondDerivative returns the second derivative at t.
func (s Segment) SecondDerivative(t float64) Vec2 {
	u := 1 - t
	a := s.C2.Sub(s.C1.Mul(2)).Add(s.P0)
	b := s.P1.Sub(s.C2.Mul(2)).Add(s.C1)
	return a.Mul(6 * u).Add(b.Mul(6 * t))
}
