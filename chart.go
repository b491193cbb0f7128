package main

import (
	"errors"
	"image"
	"image/color"
	"strconv"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/linegraph/backend"
	"git.sr.ht/~whereswaldon/linegraph/chart"
	giosurface "git.sr.ht/~whereswaldon/linegraph/surface/gio"
)

var errNoneEnabled = errors.New("no series enabled")

// ChartView draws a dataset with the chart engine and shows the values
// under the pointer.
type ChartView struct {
	cfg     backend.Config
	data    backend.Dataset
	Enabled []*widget.Bool
	Curve   widget.Bool
	Fill    widget.Bool
	keyList widget.List

	surf  *giosurface.Surface
	chart *chart.Chart
	// plotted maps chart series to dataset series.
	plotted []int
	err     error
	warning string
	dirty   bool
	drawn   bool
	// drawnX is the pointer position the surface was last highlighted at,
	// or -1.
	drawnX  float32
	matches []chart.Match

	// hover gesture state
	pos       f32.Point
	isHovered bool
}

func NewChartView(cfg backend.Config) *ChartView {
	c := &ChartView{
		cfg:    cfg,
		drawnX: -1,
	}
	c.Curve.Value = cfg.Options.LineCurve
	c.Fill.Value = cfg.Options.Fill
	return c
}

// SetData replaces the dataset. Series keep their enabled state by
// position.
func (c *ChartView) SetData(d backend.Dataset) {
	c.data = d
	for len(c.Enabled) < len(d.Series) {
		c.Enabled = append(c.Enabled, &widget.Bool{Value: true})
	}
	c.dirty = true
}

func (c *ChartView) palette() []chart.Color {
	if len(c.cfg.Palette) > 0 {
		return c.cfg.Palette
	}
	return palette
}

func (c *ChartView) seriesColor(i int) chart.Color {
	p := c.palette()
	return p[i%len(p)]
}

// rebuild creates a chart for the enabled series at the given size.
func (c *ChartView) rebuild(size image.Point) {
	c.dirty = false
	c.drawn = false
	c.chart = nil
	c.matches = nil
	c.warning = ""
	if c.surf == nil {
		c.surf = giosurface.New(size)
	} else {
		c.surf.Resize(size)
	}

	opts := c.cfg.Options
	opts.LineCurve = c.Curve.Value
	opts.Fill = c.Fill.Value
	// Pointer positions are relative to the surface.
	opts.QueryOrigin = chart.QuerySurface

	ch, err := chart.New(c.surf,
		chart.WithOptions(opts),
		chart.WithRepeatSuppression(true),
		chart.WithErrorHandler(func(err error) {
			c.warning = err.Error()
		}),
	)
	if err != nil {
		c.err = err
		return
	}
	var visible backend.Dataset
	c.plotted = c.plotted[:0]
	for i, s := range c.data.Series {
		if !c.Enabled[i].Value {
			continue
		}
		visible.Series = append(visible.Series, s)
		c.plotted = append(c.plotted, i)
	}
	if len(visible.Series) == 0 {
		c.err = errNoneEnabled
		return
	}
	lines := make([]chart.Color, len(c.plotted))
	for i, idx := range c.plotted {
		lines[i] = c.seriesColor(idx)
	}
	if err := visible.Plot(ch, lines); err != nil {
		c.err = err
		return
	}
	c.chart = ch
	c.err = nil
}

func (c *ChartView) Update(gtx C) {
	for _, b := range c.Enabled {
		if b.Update(gtx) {
			c.dirty = true
		}
	}
	curve := c.Curve.Update(gtx)
	fill := c.Fill.Update(gtx)
	if (curve || fill) && c.chart != nil {
		err := c.chart.Update(func(o *chart.Options) {
			o.LineCurve = c.Curve.Value
			o.Fill = c.Fill.Value
		})
		if err != nil {
			log.WithError(err).Warn("rejected chart options")
		}
		c.drawn = false
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move,
		})
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case pointer.Event:
			switch ev.Kind {
			case pointer.Enter:
				c.isHovered = true
				c.pos = ev.Position
			case pointer.Leave, pointer.Cancel:
				c.isHovered = false
			case pointer.Move:
				c.pos = ev.Position
			}
		}
	}
}

func (c *ChartView) Layout(gtx C, th *material.Theme) D {
	c.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return c.layoutControls(gtx, th)
		}),
		layout.Rigid(func(gtx C) D {
			if c.warning == "" {
				return D{}
			}
			l := material.Body2(th, c.warning)
			l.Color = color.NRGBA{R: 150, G: 100, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			return c.layoutPlot(gtx, th)
		}),
	)
}

func (c *ChartView) layoutControls(gtx C, th *material.Theme) D {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(material.CheckBox(th, &c.Curve, "Curved").Layout),
		layout.Rigid(material.CheckBox(th, &c.Fill, "Fill").Layout),
		layout.Rigid(layout.Spacer{Width: 16}.Layout),
		layout.Flexed(1, func(gtx C) D {
			c.keyList.Axis = layout.Horizontal
			return material.List(th, &c.keyList).Layout(gtx, len(c.data.Series), func(gtx C, i int) D {
				return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx C) D {
						size := image.Pt(gtx.Dp(8), gtx.Dp(8))
						paint.FillShape(gtx.Ops, swatch(c.seriesColor(i)), clip.Ellipse{Max: size}.Op(gtx.Ops))
						return D{Size: size}
					}),
					layout.Rigid(material.CheckBox(th, c.Enabled[i], c.data.Series[i].Name()).Layout),
				)
			})
		}),
	)
}

func (c *ChartView) layoutPlot(gtx C, th *material.Theme) D {
	size := gtx.Constraints.Max
	if size.X <= 0 || size.Y <= 0 {
		return D{Size: size}
	}
	if c.dirty || c.surf == nil || c.surf.Size() != size {
		c.rebuild(size)
	}
	if c.chart == nil {
		return layout.Center.Layout(gtx, material.Body1(th, c.err.Error()).Layout)
	}

	target := float32(-1)
	if c.isHovered {
		target = c.pos.X
	}
	if !c.drawn || target != c.drawnX {
		var err error
		if target < 0 {
			c.matches = nil
			err = c.chart.Redraw()
		} else {
			c.matches, err = c.chart.Highlight(float64(target))
		}
		c.drawn, c.drawnX = true, target
		if err != nil {
			c.warning = err.Error()
		}
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, c)
	dims := c.surf.Layout(gtx)
	if len(c.matches) > 0 {
		c.layoutHoverInfo(gtx, th)
	}
	return dims
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

// layoutHoverInfo draws a marker at the hovered entry and a box listing
// the value of every matched series.
func (c *ChartView) layoutHoverInfo(gtx C, th *material.Theme) {
	x := int(c.matches[0].Point.X)
	paint.FillShape(gtx.Ops, color.NRGBA{A: 100}, clip.Rect{
		Min: image.Pt(x, 0),
		Max: image.Pt(x+gtx.Dp(1), gtx.Constraints.Max.Y),
	}.Op())

	children := []layout.FlexChild{
		layout.Rigid(material.Body2(th, c.data.Label(c.matches[0].Point.Index)).Layout),
	}
	for _, m := range c.matches {
		idx := c.plotted[m.Series]
		children = append(children, layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(material.Body2(th, c.data.Series[idx].Name()).Layout),
				layout.Rigid(layout.Spacer{Width: 8}.Layout),
				layout.Rigid(material.Body2(th, strconv.FormatFloat(m.Point.Value, 'f', 3, 64)).Layout),
				layout.Rigid(layout.Spacer{Width: 8}.Layout),
				layout.Rigid(func(gtx C) D {
					size := image.Pt(gtx.Dp(8), gtx.Dp(8))
					paint.FillShape(gtx.Ops, swatch(c.seriesColor(idx)), clip.Ellipse{Max: size}.Op(gtx.Ops))
					return D{Size: size}
				}),
			)
		}))
	}

	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}
	dims, call := rec(gtx, func(gtx C) D {
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 200}, clip.Rect{Max: gtx.Constraints.Min}.Op())
				return D{Size: gtx.Constraints.Min}
			},
			func(gtx C) D {
				return layout.UniformInset(10).Layout(gtx, func(gtx C) D {
					return layout.Flex{
						Axis:      layout.Vertical,
						Alignment: layout.End,
					}.Layout(gtx, children...)
				})
			},
		)
	})
	gtx.Constraints = origConstraints

	// Keep the box beside the marker, on whichever side has more room.
	pos := image.Point{}
	if x > gtx.Constraints.Max.X-x {
		pos.X = max(x-dims.Size.X, 0)
	} else {
		pos.X = min(x+gtx.Dp(1), gtx.Constraints.Max.X-dims.Size.X)
	}
	if offscreenY := gtx.Constraints.Max.Y - (int(c.pos.Y) + dims.Size.Y); offscreenY < 0 {
		pos.Y = max(int(c.pos.Y)+offscreenY, 0)
	} else {
		pos.Y = int(c.pos.Y)
	}
	defer op.Offset(pos).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}
