package chart

import (
	"git.sr.ht/~whereswaldon/linegraph/geom"
	"git.sr.ht/~whereswaldon/linegraph/surface"
)

const (
	dashLength = 2
	dashPeriod = 4
	// gridBlur is the shadow blur of grid and axis lines.
	gridBlur = 2
)

// Column is a vertical grid position.
type Column struct {
	// Index is the position of the entry drawn at X in the longest series.
	Index int
	X     float64
}

// Row is a horizontal grid line and the value found at its height.
type Row struct {
	Y     float64
	Value float64
}

// Axes describes the grid of a chart.
type Axes struct {
	// Columns holds one entry per index of the longest series, including
	// the first and last which fall on the plot edges and are not drawn.
	Columns []Column
	Rows    []Row
}

// GridAxes returns the grid positions the next draw would use, together
// with the values they correspond to.
func (c *Chart) GridAxes() (Axes, error) {
	l, err := c.layout()
	if err != nil {
		return Axes{}, err
	}
	var a Axes
	n := longest(c.series)
	for i := 0; i < n; i++ {
		a.Columns = append(a.Columns, Column{Index: i, X: geom.X(i, n, l.geo.plot.Left, l.geo.plot.Width)})
	}
	for _, y := range rows(l.geo.area, c.opts.GridYCount) {
		a.Rows = append(a.Rows, Row{Y: y, Value: l.Scaler.Invert(y)})
	}
	return a, nil
}

func longest(series []Series) int {
	n := 0
	for _, s := range series {
		n = max(n, len(s.Values))
	}
	return n
}

// rows spreads count lines evenly inside area, leaving equal gaps above the
// first and below the last.
func rows(area geom.Frame, count int) []float64 {
	out := make([]float64, count)
	for k := range out {
		out[k] = area.Top + float64(k+1)*area.Height/float64(count+1)
	}
	return out
}

// segment adds a line from (x0, y0) to (x1, y1) to the current path, broken
// into short dashes when dotted.
func segment(s surface.Surface, x0, y0, x1, y1 float64, dotted bool) {
	if !dotted {
		s.MoveTo(x0, y0)
		s.LineTo(x1, y1)
		return
	}
	if x0 == x1 {
		for y := y0; y < y1; y += dashPeriod {
			s.MoveTo(x0, y)
			s.LineTo(x0, min(y+dashLength, y1))
		}
		return
	}
	for x := x0; x < x1; x += dashPeriod {
		s.MoveTo(x, y0)
		s.LineTo(min(x+dashLength, x1), y1)
	}
}

func (c *Chart) drawGrid(l *Layout) error {
	o := c.opts
	if !o.Grid || o.GridSize <= 0 {
		return nil
	}
	s := c.surf
	area := l.geo.area
	s.SetShadow(c.shadow(o.GridShadow, gridBlur))
	s.SetStrokeStyle(o.GridColor.paint(c.height()))
	s.SetLineWidth(o.GridSize)
	s.SetLineCap(surface.CapButt)
	s.SetLineJoin(surface.JoinMiter)

	if o.GridY {
		for _, y := range rows(area, o.GridYCount) {
			s.BeginPath()
			segment(s, area.Left, y, area.Right(), y, o.GridDotted)
			if err := s.Stroke(); err != nil {
				return err
			}
		}
	}
	if o.GridX {
		n := longest(c.series)
		plot := l.geo.plot
		for i := 1; i < n-1; i++ {
			x := geom.X(i, n, plot.Left, plot.Width)
			s.BeginPath()
			segment(s, x, area.Top, x, area.Bottom(), o.GridDotted)
			if err := s.Stroke(); err != nil {
				return err
			}
		}
	}
	return nil
}

// drawAxis draws the left and bottom edges of the plot area.
func (c *Chart) drawAxis(g geometry) error {
	o := c.opts
	if !o.Axis.Resolve(o.Grid) {
		return nil
	}
	size := o.AxisSize.Resolve(o.GridSize)
	if size <= 0 {
		return nil
	}
	s := c.surf
	area := g.area
	s.SetShadow(c.shadow(o.AxisShadow.Resolve(o.GridShadow), gridBlur))
	s.SetStrokeStyle(o.AxisColor.Resolve(o.GridColor).paint(c.height()))
	s.SetLineWidth(size)
	s.SetLineCap(surface.CapButt)
	s.SetLineJoin(surface.JoinMiter)
	s.BeginPath()
	s.MoveTo(area.Left, area.Top)
	s.LineTo(area.Left, area.Bottom())
	s.MoveTo(area.Left, area.Bottom())
	s.LineTo(area.Right(), area.Bottom())
	return s.Stroke()
}
