// Package geom maps chart data into pixel space. It holds the pure numeric
// parts of the renderer: value scaling, point projection, the Bézier control
// point solver and the nearest-point lookup. Nothing here touches a drawing
// surface.
package geom

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Scaler maps values of a domain onto a vertical pixel range. Pixel rows grow
// downward while values grow upward, so the domain minimum lands on the
// bottom of the range.
type Scaler struct {
	min, span    float64
	bottom, size float64
	round        bool
	flat         bool
}

// NewScaler returns a Scaler mapping [domainMin, domainMax] onto the pixel
// rows [rangeStart-rangeLength, rangeStart]. When round is set the relative
// position is snapped to whole percentage points before being scaled, which
// reproduces the stair-stepping of the legacy renderer.
//
// A zero-span domain yields ErrFlatDomain together with a Scaler that places
// every value on the vertical midline of the range.
func NewScaler(domainMin, domainMax, rangeStart, rangeLength float64, round bool) (Scaler, error) {
	s := Scaler{
		min:    domainMin,
		span:   math.Abs(domainMax - domainMin),
		bottom: rangeStart,
		size:   rangeLength,
		round:  round,
	}
	if s.span == 0 || math.IsNaN(s.span) {
		s.flat = true
		return s, ErrFlatDomain
	}
	return s, nil
}

// Flat reports whether the scaler collapses its domain onto the midline.
func (s Scaler) Flat() bool {
	return s.flat
}

// Y returns the pixel row of value v.
func (s Scaler) Y(v float64) float64 {
	if s.flat {
		return s.bottom - s.size/2
	}
	frac := (v - s.min) / s.span
	if s.round {
		pct := math.Round(frac * 100)
		return s.bottom - (s.size/100)*pct
	}
	return s.bottom - s.size*frac
}

// Invert returns the value found at pixel row y. It ignores percentage
// rounding. A flat scaler reports its single domain value.
func (s Scaler) Invert(y float64) float64 {
	if s.flat || s.size == 0 {
		return s.min
	}
	return s.min + (s.bottom-y)/s.size*s.span
}

// X returns the horizontal position of index i when count points are spread
// evenly across [left, left+width]. A single point sits on the left edge.
func X(i, count int, left, width float64) float64 {
	if count < 2 {
		return left
	}
	return left + float64(i)*(width/float64(count-1))
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
