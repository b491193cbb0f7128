package geom

import (
	"errors"
	"math"
	"testing"
)

func TestScalerEndpoints(t *testing.T) {
	type testcase struct {
		name     string
		min, max float64
		round    bool
		value    float64
		expected float64
	}
	for _, tc := range []testcase{
		{name: "minimum on bottom", min: 1, max: 3, value: 1, expected: 200},
		{name: "maximum on top", min: 1, max: 3, value: 3, expected: 100},
		{name: "middle", min: 1, max: 3, value: 2, expected: 150},
		{name: "rounded minimum", min: 1, max: 3, value: 1, round: true, expected: 200},
		{name: "rounded maximum", min: 1, max: 3, value: 3, round: true, expected: 100},
		{name: "rounded to whole percent", min: 0, max: 3, value: 1, round: true, expected: 200 - 33},
		{name: "continuous third", min: 0, max: 3, value: 1, expected: 200 - 100.0/3},
		{name: "negative domain", min: -10, max: 10, value: 0, expected: 150},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewScaler(tc.min, tc.max, 200, 100, tc.round)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := s.Y(tc.value); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestScalerFlatDomain(t *testing.T) {
	s, err := NewScaler(5, 5, 200, 100, false)
	if !errors.Is(err, ErrFlatDomain) {
		t.Fatalf("expected ErrFlatDomain, got %v", err)
	}
	if !s.Flat() {
		t.Errorf("expected scaler to report flat domain")
	}
	for _, v := range []float64{-1, 5, 1000} {
		if got := s.Y(v); got != 150 {
			t.Errorf("expected midline 150 for %v, got %v", v, got)
		}
	}
}

func TestScalerInvert(t *testing.T) {
	s, err := NewScaler(10, 30, 220, 200, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range []float64{10, 12.5, 20, 30} {
		if got := s.Invert(s.Y(v)); math.Abs(got-v) > 1e-9 {
			t.Errorf("expected %v after round trip, got %v", v, got)
		}
	}
}

func TestX(t *testing.T) {
	if got := X(0, 5, 20, 400); got != 20 {
		t.Errorf("expected first index on left edge, got %v", got)
	}
	if got := X(4, 5, 20, 400); got != 420 {
		t.Errorf("expected last index on right edge, got %v", got)
	}
	if got := X(2, 5, 20, 400); got != 220 {
		t.Errorf("expected middle index at 220, got %v", got)
	}
	if got := X(0, 1, 20, 400); got != 20 {
		t.Errorf("expected single point on left edge, got %v", got)
	}
}
