// Package chart draws line charts onto a surface.Surface.
//
// A Chart owns its series and options and borrows the surface it draws on.
// Drawing projects every series into the plot area, optionally smooths it
// with Bézier curves, and paints background, grid, axes, fills, lines and
// bullets in that order. The projected points are kept for hit-testing.
//
// A Chart is not safe for concurrent use.
package chart

import (
	"errors"
	"fmt"
	"image"

	"git.sr.ht/~whereswaldon/linegraph/geom"
	"git.sr.ht/~whereswaldon/linegraph/surface"
)

// State is the lifecycle state of a chart.
type State uint8

const (
	// StateUninitialized charts hold no series.
	StateUninitialized State = iota
	// StateReady charts hold series that have not been drawn since they
	// last changed.
	StateReady
	// StateRendered charts have drawn their current series and options.
	StateRendered
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRendered:
		return "rendered"
	default:
		return "uninitialized"
	}
}

// Chart renders a set of series with one set of options.
type Chart struct {
	surf     surface.Surface
	size     image.Point
	opts     Options
	series   []Series
	state    State
	reporter reporter
	// cache holds the layout of the last successful draw.
	cache *Layout
}

// Option configures a chart under construction.
type Option func(*Chart) error

// WithOptions replaces the default options.
func WithOptions(o Options) Option {
	return func(c *Chart) error {
		c.opts = o
		return nil
	}
}

// WithValues adds an initial series drawn in the default style.
func WithValues(values []float64) Option {
	return func(c *Chart) error {
		return c.AddValues(values, SeriesStyle{})
	}
}

// WithErrorHandler registers a function receiving every error the chart
// reports, including recoverable conditions that do not fail a draw.
func WithErrorHandler(h func(error)) Option {
	return func(c *Chart) error {
		c.reporter.handler = h
		return nil
	}
}

// WithRepeatSuppression makes the chart report an error identical to the
// previously reported one only once, until a draw completes without
// reporting anything.
func WithRepeatSuppression(suppress bool) Option {
	return func(c *Chart) error {
		c.reporter.suppress = suppress
		return nil
	}
}

// New returns a chart drawing on s. The surface size is read once here;
// create a new chart to follow a resized surface.
func New(s surface.Surface, opts ...Option) (*Chart, error) {
	if s == nil {
		return nil, &ConfigurationError{Option: "Surface", Reason: "no drawing surface"}
	}
	c := &Chart{
		surf: s,
		size: s.Size(),
		opts: DefaultOptions(),
	}
	if c.size.X <= 0 || c.size.Y <= 0 {
		return nil, &ConfigurationError{Option: "Surface", Reason: "surface has no area"}
	}
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	if err := c.opts.validateFor(c.size); err != nil {
		return nil, err
	}
	return c, nil
}

// State returns the lifecycle state of the chart.
func (c *Chart) State() State {
	return c.state
}

// Size returns the surface size read at construction.
func (c *Chart) Size() image.Point {
	return c.size
}

// Options returns a copy of the current options.
func (c *Chart) Options() Options {
	return c.opts
}

// Update applies f to a copy of the options and keeps the result if it is
// valid. A rendered chart becomes ready again; nothing is redrawn.
func (c *Chart) Update(f func(*Options)) error {
	next := c.opts
	f(&next)
	if err := next.validateFor(c.size); err != nil {
		return err
	}
	c.opts = next
	c.cache = nil
	if c.state == StateRendered {
		c.state = StateReady
	}
	return nil
}

// geometry holds the rectangles a draw works with.
type geometry struct {
	size image.Point
	// inset is the distance from the surface edge to the plot area.
	inset float64
	// area is the region inside padding and border, bounded by the axes.
	area geom.Frame
	// plot is the region points are projected into.
	plot geom.Frame
}

func (o Options) geometry(size image.Point) geometry {
	inset := o.Padding + max(o.Border, 0)
	w, h := float64(size.X), float64(size.Y)
	g := geometry{
		size:  size,
		inset: inset,
		area:  geom.Frame{Left: inset, Top: inset, Width: w - 2*inset, Height: h - 2*inset},
	}
	g.plot = g.area
	if o.SpacingMode == SpacingPixels {
		g.plot.Top += o.Spacing
		g.plot.Height -= 2 * o.Spacing
	}
	return g
}

// SeriesLayout is the geometry of one projected series.
type SeriesLayout struct {
	Points []geom.Point
	// Controls is empty when the series is drawn with straight segments.
	Controls geom.Controls
}

// Curved reports whether the series is drawn as Bézier segments.
func (s SeriesLayout) Curved() bool {
	return len(s.Controls.Start) > 0
}

// Layout is the geometry of every series for one draw.
type Layout struct {
	Series []SeriesLayout
	// Min and Max are the resolved bounds of the value axis.
	Min, Max float64
	// Scaler maps values to rows of the plot area.
	Scaler geom.Scaler

	geo geometry
	// warnings are recoverable conditions found while laying out.
	warnings []error
}

// Layout computes the geometry the next draw would use without touching
// the surface.
func (c *Chart) Layout() (*Layout, error) {
	return c.layout()
}

func (c *Chart) layout() (*Layout, error) {
	if err := c.opts.validateFor(c.size); err != nil {
		return nil, err
	}
	if len(c.series) == 0 {
		return nil, &InputDataError{Reason: ReasonNoSeries, Series: -1, Index: -1}
	}
	values := make([][]float64, len(c.series))
	for i, s := range c.series {
		if len(s.Values) < 2 {
			return nil, &InputDataError{
				Reason: ReasonTooFewPoints,
				Series: i,
				Index:  -1,
				Err:    &geom.GeometryError{Reason: geom.ReasonInsufficientPoints, Points: len(s.Values)},
			}
		}
		values[i] = s.Values
	}

	lo, hi, _ := geom.Bounds(values...)
	lo = c.opts.MinValue.Resolve(lo)
	hi = c.opts.MaxValue.Resolve(hi)
	g := c.opts.geometry(c.size)
	if c.opts.SpacingMode == SpacingValue {
		lo -= c.opts.Spacing
		hi += c.opts.Spacing
	}
	if lo > hi {
		option := "MinValue"
		if _, fixed := c.opts.MinValue.Get(); !fixed {
			option = "MaxValue"
		}
		return nil, &ConfigurationError{Option: option, Reason: fmt.Sprintf("value range resolves to [%v, %v]", lo, hi)}
	}
	l := &Layout{Min: lo, Max: hi, geo: g}

	scaler, err := g.plot.Scaler(lo, hi, c.opts.RoundPercent)
	if errors.Is(err, geom.ErrFlatDomain) {
		Logger().WithField("value", lo).Debug("flat value domain, drawing on the midline")
		l.warnings = append(l.warnings, &InputDataError{Reason: ReasonDegenerateDomain, Series: -1, Index: -1, Err: err})
	}
	l.Scaler = scaler

	l.Series = make([]SeriesLayout, len(c.series))
	for i, s := range c.series {
		points, err := geom.Project(s.Values, scaler, g.plot)
		if err != nil {
			return nil, &InputDataError{Reason: ReasonTooFewPoints, Series: i, Index: -1, Err: err}
		}
		sl := SeriesLayout{Points: points}
		if c.opts.LineCurve {
			controls, err := geom.Solve(points)
			switch {
			case err == nil:
				sl.Controls = controls
			case errors.Is(err, &geom.GeometryError{Reason: geom.ReasonTooFewForCurve}):
				Logger().WithField("series", i).Debug("too few points to curve, drawing straight segments")
			default:
				return nil, &InputDataError{Reason: ReasonTooFewPoints, Series: i, Index: -1, Err: err}
			}
		}
		l.Series[i] = sl
	}
	return l, nil
}
