package geom

import (
	"errors"
	"math"
	"testing"
)

func curvePoints(ys ...float64) []Point {
	points := make([]Point, len(ys))
	for i, y := range ys {
		points[i] = Point{X: float64(i) * 50, Y: y, Value: y, Index: i}
	}
	return points
}

func near(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestSolveContinuity(t *testing.T) {
	for _, points := range [][]Point{
		curvePoints(10, 80, 20),
		curvePoints(10, 80, 20, 60),
		curvePoints(0, 100, 0, 100, 0, 100, 0),
		curvePoints(5, 5, 5, 5),
	} {
		c, err := Solve(points)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(c.Start) != len(points)-1 || len(c.End) != len(points)-1 {
			t.Fatalf("expected %d segments, got %d/%d", len(points)-1, len(c.Start), len(c.End))
		}
		for i := 0; i < len(points)-1; i++ {
			seg := c.Segment(points, i)
			if !near(seg.At(0), points[i].Vec()) {
				t.Errorf("segment %d does not start on its point: %v", i, seg.At(0))
			}
			if !near(seg.At(1), points[i+1].Vec()) {
				t.Errorf("segment %d does not end on its point: %v", i, seg.At(1))
			}
		}
		for i := 0; i < len(points)-2; i++ {
			sum := c.End[i].Add(c.Start[i+1])
			if !near(sum, points[i+1].Vec().Mul(2)) {
				t.Errorf("expected first derivative continuity at joint %d, got %v", i+1, sum)
			}
			if l, r := c.Segment(points, i).Derivative(1), c.Segment(points, i+1).Derivative(0); !near(l, r) {
				t.Errorf("expected matching tangents at joint %d, got %v and %v", i+1, l, r)
			}
			left := c.Segment(points, i).SecondDerivative(1)
			right := c.Segment(points, i+1).SecondDerivative(0)
			if !near(left, right) {
				t.Errorf("expected second derivative continuity at joint %d, got %v and %v", i+1, left, right)
			}
		}
		last := len(points) - 2
		if d := c.Segment(points, 0).SecondDerivative(0); !near(d, Vec2{}) {
			t.Errorf("expected natural start, got curvature %v", d)
		}
		if d := c.Segment(points, last).SecondDerivative(1); !near(d, Vec2{}) {
			t.Errorf("expected natural end, got curvature %v", d)
		}
	}
}

func TestSolveFlatStaysFlat(t *testing.T) {
	points := curvePoints(5, 5, 5, 5, 5)
	c, err := Solve(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range c.Start {
		if math.Abs(c.Start[i].Y-5) > 1e-9 || math.Abs(c.End[i].Y-5) > 1e-9 {
			t.Errorf("expected control points on the line for segment %d, got %v %v", i, c.Start[i], c.End[i])
		}
	}
}

func TestSolveDoesNotMutate(t *testing.T) {
	points := curvePoints(1, 9, 4, 7)
	before := append([]Point(nil), points...)
	if _, err := Solve(points); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range points {
		if points[i] != before[i] {
			t.Errorf("expected point %d untouched, got %v", i, points[i])
		}
	}
}

func TestSolveTooFew(t *testing.T) {
	_, err := Solve(curvePoints(1, 2))
	if !errors.Is(err, &GeometryError{Reason: ReasonTooFewForCurve}) {
		t.Errorf("expected too-few-points error, got %v", err)
	}
	var gerr *GeometryError
	if !errors.As(err, &gerr) || gerr.Points != 2 {
		t.Errorf("expected error to carry point count 2, got %v", err)
	}
}
