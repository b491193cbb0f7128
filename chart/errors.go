package chart

import (
	"fmt"
	"strings"
)

// Reasons reported by InputDataError.
const (
	ReasonNoSeries         = "no-series"
	ReasonTooFewPoints     = "insufficient-points"
	ReasonMissingValueKey  = "missing-value-key"
	ReasonInvalidValue     = "invalid-value"
	ReasonDegenerateDomain = "degenerate-domain"
)

// ConfigurationError reports an unusable surface or option value. It is
// returned by New and Update, and by drawing when the options cannot fit
// the surface.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("chart: invalid %s: %s", e.Option, e.Reason)
}

// InputDataError reports series data that cannot be charted.
type InputDataError struct {
	Reason string
	// Series is the index of the offending series, or -1 when the condition
	// concerns the chart as a whole.
	Series int
	// Index is the position of the offending entry within the series, or -1.
	Index int
	Err   error
}

func (e *InputDataError) Error() string {
	var b strings.Builder
	b.WriteString("chart: ")
	if e.Series >= 0 {
		fmt.Fprintf(&b, "series %d: ", e.Series)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, "entry %d: ", e.Index)
	}
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *InputDataError) Unwrap() error {
	return e.Err
}

// Is matches any InputDataError with the same Reason.
func (e *InputDataError) Is(target error) bool {
	t, ok := target.(*InputDataError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}
