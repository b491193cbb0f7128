package chart

import (
	"fmt"
	"maps"

	"git.sr.ht/~whereswaldon/linegraph/geom"
)

// Match is a data point found by a hit-test.
type Match struct {
	Series int
	Point  geom.Point
	// Meta is a copy of the record the value was read from, or nil for
	// series added with AddValues.
	Meta map[string]any
}

// queryLayout returns the layout of the last draw, or computes it when the
// chart changed since.
func (c *Chart) queryLayout() (*Layout, error) {
	if c.cache != nil {
		return c.cache, nil
	}
	return c.layout()
}

// queryX converts a query coordinate to surface space.
func (c *Chart) queryX(l *Layout, x float64) float64 {
	if c.opts.QueryOrigin == QueryPlot {
		return x + l.geo.inset
	}
	return x
}

func (c *Chart) match(l *Layout, series int, x float64) (Match, bool) {
	p, ok := geom.Closest(l.Series[series].Points, x, c.opts.hitBias())
	if !ok {
		return Match{}, false
	}
	return Match{Series: series, Point: p, Meta: maps.Clone(c.series[series].meta(p.Index))}, true
}

// Closest returns, for each series considered by hit-tests, the point whose
// horizontal slot contains x. Series that x falls outside of are left out.
// Nothing is drawn.
func (c *Chart) Closest(x float64) []Match {
	l, err := c.queryLayout()
	if err != nil {
		Logger().WithError(err).Debug("hit-test on a chart that cannot be laid out")
		return nil
	}
	x = c.queryX(l, x)
	n := len(l.Series)
	if c.opts.SingleSeriesHitTest {
		n = min(n, 1)
	}
	var out []Match
	for i := 0; i < n; i++ {
		if m, ok := c.match(l, i, x); ok {
			out = append(out, m)
		}
	}
	return out
}

// ClosestIn is Closest restricted to one series.
func (c *Chart) ClosestIn(series int, x float64) (Match, bool) {
	l, err := c.queryLayout()
	if err != nil || series < 0 || series >= len(l.Series) {
		return Match{}, false
	}
	return c.match(l, series, c.queryX(l, x))
}

// Highlight redraws the chart and marks the points Closest finds for x with
// an enlarged bullet.
func (c *Chart) Highlight(x float64) ([]Match, error) {
	if err := c.Redraw(); err != nil {
		return nil, err
	}
	matches := c.Closest(x)
	size := c.opts.BulletSize * highlightScale
	for _, m := range matches {
		line := c.series[m.Series].Style.Line.Or(c.opts.LineColor)
		if err := c.drawBullet(m.Point, size, line); err != nil {
			err = fmt.Errorf("chart: highlighting series %d: %w", m.Series, err)
			c.reporter.report(err)
			return matches, err
		}
	}
	return matches, nil
}
