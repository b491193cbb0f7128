package chart

import (
	"fmt"
	"math"

	"git.sr.ht/~whereswaldon/linegraph/geom"
	"git.sr.ht/~whereswaldon/linegraph/surface"
)

// highlightScale enlarges bullets drawn by Highlight.
const highlightScale = 1.4

// Draw renders every series on top of whatever the surface already holds.
// Options and series are validated before the first surface call, so a
// failed draw leaves the surface untouched.
func (c *Chart) Draw() error {
	l, err := c.layout()
	if err != nil {
		c.reporter.report(err)
		return err
	}
	return c.draw(l)
}

// Redraw clears the surface and draws the chart again. Redrawing unchanged
// series with unchanged options issues the same drawing commands.
func (c *Chart) Redraw() error {
	l, err := c.layout()
	if err != nil {
		c.reporter.report(err)
		return err
	}
	c.surf.Clear()
	return c.draw(l)
}

func (c *Chart) draw(l *Layout) error {
	for _, w := range l.warnings {
		c.reporter.report(w)
	}
	if err := c.render(l); err != nil {
		err = fmt.Errorf("chart: drawing: %w", err)
		c.reporter.report(err)
		return err
	}
	c.cache = l
	c.state = StateRendered
	if len(l.warnings) == 0 {
		c.reporter.reset()
	}
	Logger().WithField("series", len(l.Series)).Debug("chart drawn")
	return nil
}

func (c *Chart) render(l *Layout) error {
	if err := c.drawBackground(l.geo); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if err := c.drawGrid(l); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if err := c.drawAxis(l.geo); err != nil {
		return fmt.Errorf("axis: %w", err)
	}
	for i, sl := range l.Series {
		if err := c.drawSeries(l.geo, c.series[i].Style, sl); err != nil {
			return fmt.Errorf("series %d: %w", i, err)
		}
	}
	return nil
}

// height is the extent of vertical gradients.
func (c *Chart) height() float64 {
	return float64(c.size.Y)
}

func (c *Chart) shadow(on bool, blur float64) surface.Shadow {
	if !on {
		return surface.Shadow{}
	}
	return surface.Shadow{Color: c.opts.ShadowColor, Blur: max(blur, 0)}
}

func (c *Chart) drawBackground(g geometry) error {
	o := c.opts
	if o.Background.IsZero() {
		return nil
	}
	s := c.surf
	w, h := float64(g.size.X), float64(g.size.Y)
	s.SetShadow(surface.Shadow{})
	if b := o.Border; b > 0 && !o.BorderColor.IsZero() {
		s.SetFillStyle(o.BorderColor.paint(c.height()))
		if err := s.FillRect(0, 0, w, h); err != nil {
			return err
		}
		s.SetFillStyle(o.Background.paint(c.height()))
		return s.FillRect(b, b, w-2*b, h-2*b)
	}
	s.SetFillStyle(o.Background.paint(c.height()))
	return s.FillRect(0, 0, w, h)
}

// trace adds the line through sl to the current path. The first point is
// joined to the path with a line when join is set and starts a new subpath
// otherwise.
func trace(s surface.Surface, sl SeriesLayout, join bool) {
	p := sl.Points
	if join {
		s.LineTo(p[0].X, p[0].Y)
	} else {
		s.MoveTo(p[0].X, p[0].Y)
	}
	for i := 1; i < len(p); i++ {
		if !sl.Curved() {
			s.LineTo(p[i].X, p[i].Y)
			continue
		}
		seg := sl.Controls.Segment(p, i-1)
		s.BezierCurveTo(seg.C1.X, seg.C1.Y, seg.C2.X, seg.C2.Y, seg.P1.X, seg.P1.Y)
	}
}

func (c *Chart) drawSeries(g geometry, style SeriesStyle, sl SeriesLayout) error {
	o := c.opts
	s := c.surf
	line := style.Line.Or(o.LineColor)

	if o.Fill {
		fill := style.Fill.Or(o.FillColor)
		s.SetShadow(surface.Shadow{})
		s.SetFillStyle(fill.paint(c.height()))
		s.BeginPath()
		s.MoveTo(g.plot.Left, g.area.Bottom())
		trace(s, sl, true)
		s.LineTo(g.plot.Right(), g.area.Bottom())
		s.ClosePath()
		if err := s.Fill(); err != nil {
			return fmt.Errorf("fill: %w", err)
		}
	}

	s.SetShadow(c.shadow(o.LineShadow.Resolve(o.GridShadow), o.LineSize-1))
	s.SetStrokeStyle(line.paint(c.height()))
	s.SetLineWidth(o.LineSize)
	s.SetLineCap(surface.CapRound)
	s.SetLineJoin(surface.JoinBevel)
	s.BeginPath()
	trace(s, sl, false)
	if err := s.Stroke(); err != nil {
		return fmt.Errorf("line: %w", err)
	}

	if o.Bullets {
		for _, p := range sl.Points {
			if err := c.drawBullet(p, o.BulletSize, line); err != nil {
				return fmt.Errorf("bullet %d: %w", p.Index, err)
			}
		}
	}
	return nil
}

// drawBullet draws a dot of radius size at p. Bullets are filled with the
// line color, or filled with BulletColor and ringed with the line color when
// BulletFill is set.
func (c *Chart) drawBullet(p geom.Point, size float64, line Color) error {
	if size <= 0 {
		return nil
	}
	o := c.opts
	s := c.surf
	s.SetShadow(c.shadow(o.BulletShadow, o.LineSize-1))
	fill := line
	if o.BulletFill {
		fill = o.BulletColor.Or(line)
	}
	s.SetFillStyle(fill.paint(c.height()))
	s.BeginPath()
	s.Arc(p.X, p.Y, size, 0, 2*math.Pi)
	s.ClosePath()
	if err := s.Fill(); err != nil {
		return err
	}
	if !o.BulletFill {
		return nil
	}
	s.SetStrokeStyle(line.paint(c.height()))
	s.SetLineWidth(max(size/3, 1))
	return s.Stroke()
}
