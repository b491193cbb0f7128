package geom

import (
	"errors"
	"fmt"
)

// Reasons reported by GeometryError.
const (
	ReasonInsufficientPoints = "insufficient-points"
	ReasonTooFewForCurve     = "too-few-points-for-curve"
)

// ErrFlatDomain is returned alongside a usable Scaler when the value domain
// has zero span. Every value of such a domain maps to the vertical midline.
var ErrFlatDomain = errors.New("geom: degenerate value domain")

// GeometryError reports an operation attempted on too few points.
type GeometryError struct {
	Reason string
	// Points is the number of points that were supplied.
	Points int
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geom: %s (%d points)", e.Reason, e.Points)
}

// Is matches any GeometryError with the same Reason, so callers can compare
// against a template value with errors.Is.
func (e *GeometryError) Is(target error) bool {
	t, ok := target.(*GeometryError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}
