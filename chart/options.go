package chart

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// SpacingMode selects how Options.Spacing keeps lines away from the plot
// edges.
type SpacingMode uint8

const (
	// SpacingPixels shrinks the plot area vertically by Spacing pixels at
	// the top and bottom.
	SpacingPixels SpacingMode = iota
	// SpacingValue widens the value domain by Spacing on both ends.
	SpacingValue
)

func (m SpacingMode) String() string {
	if m == SpacingValue {
		return "value"
	}
	return "pixels"
}

// QueryOrigin selects the coordinate space of hit-test queries.
type QueryOrigin uint8

const (
	// QuerySurface takes query coordinates relative to the surface.
	QuerySurface QueryOrigin = iota
	// QueryPlot takes query coordinates relative to the left edge of the
	// plot area, inside padding and border.
	QueryPlot
)

func (o QueryOrigin) String() string {
	if o == QueryPlot {
		return "plot"
	}
	return "surface"
}

// Options configures how a chart is drawn. All values are read at draw
// time, so changes made through Chart.Update apply to the next draw.
type Options struct {
	// MinValue and MaxValue bound the value axis. Automatic bounds are the
	// extremes across every series.
	MinValue, MaxValue Setting[float64]

	// Padding is the blank margin around the plot area, in pixels.
	Padding     float64
	Spacing     float64
	SpacingMode SpacingMode
	// RoundPercent snaps vertical positions to whole percentages of the
	// plot height, reproducing the stair-stepping of older renderings.
	RoundPercent bool

	// Border is the width of the frame drawn around the background. It is
	// only drawn along with a background.
	Border      float64
	BorderColor Color
	// Background is skipped when zero.
	Background Color

	Grid       bool
	GridX      bool
	GridY      bool
	GridYCount int
	GridSize   float64
	GridColor  Color
	GridShadow bool
	GridDotted bool

	// Axis lines default to being drawn along with the grid, inheriting its
	// size, color and shadow.
	Axis       Setting[bool]
	AxisSize   Setting[float64]
	AxisColor  Setting[Color]
	AxisShadow Setting[bool]

	Bullets    bool
	BulletSize float64
	// BulletColor fills bullets when BulletFill is set. Otherwise bullets
	// are filled with their line color.
	BulletColor  Color
	BulletFill   bool
	BulletShadow bool

	ShadowColor color.NRGBA

	Fill      bool
	FillColor Color
	LineSize  float64
	LineCurve bool
	LineColor Color
	// LineShadow defaults to GridShadow.
	LineShadow Setting[bool]

	// ValueKey names the record field holding the value in AddRecords.
	ValueKey string

	// HitBias moves the boundary between neighbouring points left by the
	// given number of pixels during hit-tests. The automatic bias is half
	// the padding for QueryPlot queries and zero otherwise.
	HitBias     Setting[float64]
	QueryOrigin QueryOrigin
	// SingleSeriesHitTest limits hit-tests to the first series.
	SingleSeriesHitTest bool
}

// DefaultOptions returns the options charts start with.
func DefaultOptions() Options {
	return Options{
		MinValue:    Auto[float64](),
		MaxValue:    Auto[float64](),
		Padding:     20,
		Spacing:     10,
		SpacingMode: SpacingPixels,
		Border:      0.5,
		BorderColor: MustParseColor("#ddd"),
		Background:  MustParseColor("#fff", "#f8f8f8"),
		Grid:        true,
		GridX:       true,
		GridY:       true,
		GridYCount:  2,
		GridSize:    0.5,
		GridColor:   Solid(color.NRGBA{R: 150, G: 150, B: 150, A: 255}),
		GridDotted:  true,
		Bullets:     true,
		BulletSize:  5,
		BulletColor: MustParseColor("#000"),
		ShadowColor: color.NRGBA{A: 153},
		Fill:        true,
		FillColor: Gradient(
			color.NRGBA{R: 138, G: 184, B: 125, A: 51},
			color.NRGBA{R: 138, G: 184, B: 125, A: 153},
		),
		LineSize:  3,
		LineCurve: true,
		LineColor: MustParseColor("#8AB87D"),
		ValueKey:  "value",
	}
}

// LegacyOptions returns the defaults of the older single-series renderer:
// spacing in value units, percentage rounding, hit-tests on the first series
// only, relative to the plot area and biased by half the padding.
func LegacyOptions() Options {
	o := DefaultOptions()
	o.SpacingMode = SpacingValue
	o.RoundPercent = true
	o.SingleSeriesHitTest = true
	o.QueryOrigin = QueryPlot
	return o
}

func (o Options) hitBias() float64 {
	auto := 0.0
	if o.QueryOrigin == QueryPlot {
		auto = o.Padding / 2
	}
	return o.HitBias.Resolve(auto)
}

// Validate checks option values that are invalid regardless of the surface
// size.
func (o Options) Validate() error {
	finite := []struct {
		name  string
		value float64
	}{
		{"Padding", o.Padding},
		{"Spacing", o.Spacing},
		{"Border", o.Border},
		{"GridSize", o.GridSize},
		{"BulletSize", o.BulletSize},
		{"LineSize", o.LineSize},
	}
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ConfigurationError{Option: f.name, Reason: "must be a finite number"}
		}
		if f.value < 0 {
			return &ConfigurationError{Option: f.name, Reason: fmt.Sprintf("must not be negative, got %v", f.value)}
		}
	}
	if o.GridYCount < 0 {
		return &ConfigurationError{Option: "GridYCount", Reason: fmt.Sprintf("must not be negative, got %d", o.GridYCount)}
	}
	if o.LineSize == 0 {
		return &ConfigurationError{Option: "LineSize", Reason: "must be positive"}
	}
	if size, ok := o.AxisSize.Get(); ok && (size < 0 || math.IsNaN(size)) {
		return &ConfigurationError{Option: "AxisSize", Reason: fmt.Sprintf("must not be negative, got %v", size)}
	}
	if bias, ok := o.HitBias.Get(); ok && (math.IsNaN(bias) || math.IsInf(bias, 0)) {
		return &ConfigurationError{Option: "HitBias", Reason: "must be a finite number"}
	}
	minV, minFixed := o.MinValue.Get()
	maxV, maxFixed := o.MaxValue.Get()
	if minFixed && (math.IsNaN(minV) || math.IsInf(minV, 0)) {
		return &ConfigurationError{Option: "MinValue", Reason: "must be a finite number"}
	}
	if maxFixed && (math.IsNaN(maxV) || math.IsInf(maxV, 0)) {
		return &ConfigurationError{Option: "MaxValue", Reason: "must be a finite number"}
	}
	if minFixed && maxFixed && minV > maxV {
		return &ConfigurationError{Option: "MinValue", Reason: fmt.Sprintf("%v exceeds MaxValue %v", minV, maxV)}
	}
	if o.ValueKey == "" {
		return &ConfigurationError{Option: "ValueKey", Reason: "must not be empty"}
	}
	if o.LineColor.IsZero() {
		return &ConfigurationError{Option: "LineColor", Reason: "must be set"}
	}
	if o.Fill && o.FillColor.IsZero() {
		return &ConfigurationError{Option: "FillColor", Reason: "must be set when Fill is enabled"}
	}
	return nil
}

// validateFor additionally checks that the options leave room to plot on a
// surface of the given size.
func (o Options) validateFor(size image.Point) error {
	if err := o.Validate(); err != nil {
		return err
	}
	g := o.geometry(size)
	if g.plot.Width <= 0 || g.plot.Height <= 0 {
		return &ConfigurationError{
			Option: "Padding",
			Reason: fmt.Sprintf("leaves no room to plot on a %dx%d surface", size.X, size.Y),
		}
	}
	return nil
}
