package geom

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestProject(t *testing.T) {
	values := []float64{1, 2, 3, 2, 1}
	frame := Frame{Left: 20, Top: 20, Width: 400, Height: 200}
	lo, hi, ok := Bounds(values)
	if !ok {
		t.Fatalf("expected bounds for non-empty series")
	}
	s, err := frame.Scaler(lo, hi, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	points, err := Project(values, s, frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []Point{
		{X: 20, Y: 220, Value: 1, Index: 0},
		{X: 120, Y: 120, Value: 2, Index: 1},
		{X: 220, Y: 20, Value: 3, Index: 2},
		{X: 320, Y: 120, Value: 2, Index: 3},
		{X: 420, Y: 220, Value: 1, Index: 4},
	}
	if diff := cmp.Diff(expected, points, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("unexpected projection (-want +got):\n%s", diff)
	}
}

func TestProjectMonotonicX(t *testing.T) {
	values := make([]float64, 37)
	for i := range values {
		values[i] = float64(i % 5)
	}
	frame := Frame{Left: 3, Top: 3, Width: 317, Height: 94}
	s, _ := frame.Scaler(0, 4, true)
	points, err := Project(values, s, frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			t.Errorf("expected x to increase at %d: %v <= %v", i, points[i].X, points[i-1].X)
		}
	}
	for _, p := range points {
		if p.Y < frame.Top || p.Y > frame.Bottom() {
			t.Errorf("point %d escaped the frame: y=%v", p.Index, p.Y)
		}
	}
}

func TestProjectTooFew(t *testing.T) {
	s, _ := NewScaler(0, 1, 100, 100, false)
	_, err := Project([]float64{1}, s, Frame{Width: 100, Height: 100})
	if !errors.Is(err, &GeometryError{Reason: ReasonInsufficientPoints}) {
		t.Errorf("expected insufficient points error, got %v", err)
	}
}

func TestBounds(t *testing.T) {
	lo, hi, ok := Bounds([]float64{3, -1}, nil, []float64{7})
	if !ok || lo != -1 || hi != 7 {
		t.Errorf("expected (-1, 7, true), got (%v, %v, %v)", lo, hi, ok)
	}
	if _, _, ok := Bounds(nil); ok {
		t.Errorf("expected no bounds for empty input")
	}
}
