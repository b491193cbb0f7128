// Package gio implements surface.Surface as a recording of Gio paint
// operations, so charts can be drawn inside a Gio window.
package gio

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"git.sr.ht/~whereswaldon/linegraph/surface"
)

// Surface records drawing into its own operation list. The recorded drawing
// stays valid across frames until the next Clear, so a chart only needs to
// be redrawn when its data, options or size change.
type Surface struct {
	surface.State
	size      image.Point
	ops       op.Ops
	macro     op.MacroOp
	recording bool
	calls     []op.CallOp
}

var _ surface.Surface = (*Surface)(nil)

// New returns an empty surface of the given size.
func New(size image.Point) *Surface {
	return &Surface{
		State: surface.NewState(),
		size:  size,
	}
}

func (s *Surface) Size() image.Point {
	return s.size
}

// Resize changes the reported size and clears the surface.
func (s *Surface) Resize(size image.Point) {
	s.size = size
	s.Clear()
}

func (s *Surface) Clear() {
	s.ops.Reset()
	s.calls = s.calls[:0]
	s.recording = false
}

func (s *Surface) begin() {
	if s.recording {
		return
	}
	s.macro = op.Record(&s.ops)
	s.recording = true
}

// Add appends everything drawn since the last Clear to ops.
func (s *Surface) Add(ops *op.Ops) {
	if s.recording {
		s.calls = append(s.calls, s.macro.Stop())
		s.recording = false
	}
	for _, c := range s.calls {
		c.Add(ops)
	}
}

// Layout draws the surface content and occupies its size.
func (s *Surface) Layout(gtx layout.Context) layout.Dimensions {
	defer clip.Rect{Max: s.size}.Push(gtx.Ops).Pop()
	s.Add(gtx.Ops)
	return layout.Dimensions{Size: s.size}
}

func (s *Surface) Fill() error {
	if s.Empty() {
		return nil
	}
	s.begin()
	segs := s.Segments()
	if sh := s.State.Shadow; sh.Visible() {
		c := sh.Color
		c.A /= 2
		shifted := surface.Translate(segs, sh.OffsetX, sh.OffsetY)
		s.paintClip(clip.Outline{Path: s.build(shifted)}.Op(), surface.Solid(c))
		if sh.Blur > 0 {
			s.paintClip(clip.Stroke{Path: s.build(shifted), Width: float32(sh.Blur)}.Op(), surface.Solid(c))
		}
	}
	s.paintClip(clip.Outline{Path: s.build(segs)}.Op(), s.FillStyle)
	return nil
}

func (s *Surface) Stroke() error {
	if s.Empty() {
		return nil
	}
	s.begin()
	segs := s.Segments()
	if sh := s.State.Shadow; sh.Visible() {
		c := sh.Color
		c.A /= 2
		shifted := surface.Translate(segs, sh.OffsetX, sh.OffsetY)
		s.paintClip(clip.Stroke{Path: s.build(shifted), Width: float32(s.LineWidth + sh.Blur)}.Op(), surface.Solid(c))
	}
	s.paintClip(clip.Stroke{Path: s.build(segs), Width: float32(s.LineWidth)}.Op(), s.StrokeStyle)
	return nil
}

func (s *Surface) FillRect(x, y, w, h float64) error {
	var rect surface.Path
	rect.MoveTo(x, y)
	rect.LineTo(x+w, y)
	rect.LineTo(x+w, y+h)
	rect.LineTo(x, y+h)
	rect.ClosePath()
	s.begin()
	s.paintClip(clip.Outline{Path: s.build(rect.Segments())}.Op(), s.FillStyle)
	return nil
}

func (s *Surface) build(segs []surface.Segment) clip.PathSpec {
	var p clip.Path
	p.Begin(&s.ops)
	for _, seg := range segs {
		switch seg.Verb {
		case surface.VerbMove:
			p.MoveTo(pt(seg.Pts[0].X, seg.Pts[0].Y))
		case surface.VerbLine:
			p.LineTo(pt(seg.Pts[0].X, seg.Pts[0].Y))
		case surface.VerbCubic:
			p.CubeTo(
				pt(seg.Pts[0].X, seg.Pts[0].Y),
				pt(seg.Pts[1].X, seg.Pts[1].Y),
				pt(seg.Pts[2].X, seg.Pts[2].Y),
			)
		case surface.VerbClose:
			p.Close()
		}
	}
	return p.End()
}

func (s *Surface) paintClip(c clip.Op, p surface.Paint) {
	if p.Gradient == nil || len(p.Gradient.Stops) == 0 {
		paint.FillShape(&s.ops, p.Color, c)
		return
	}
	defer c.Push(&s.ops).Pop()
	s.paintGradient(p.Gradient)
}

// paintGradient paints the current clip area. Gio gradients carry two stops,
// so axis-aligned gradients with more stops are painted as one band per
// pair of adjacent stops. Oblique gradients keep only their outer stops.
func (s *Surface) paintGradient(g *surface.LinearGradient) {
	stops := g.Stops
	along := func(t float64) f32.Point {
		return pt(g.X0+(g.X1-g.X0)*t, g.Y0+(g.Y1-g.Y0)*t)
	}
	vertical := g.X0 == g.X1
	horizontal := g.Y0 == g.Y1
	if len(stops) == 1 {
		paint.ColorOp{Color: stops[0].Color}.Add(&s.ops)
		paint.PaintOp{}.Add(&s.ops)
		return
	}
	if len(stops) == 2 || vertical == horizontal {
		first, last := stops[0], stops[len(stops)-1]
		gradient(&s.ops, along(first.Offset), first.Color, along(last.Offset), last.Color)
		return
	}
	reversed := (vertical && g.Y1 < g.Y0) || (horizontal && g.X1 < g.X0)
	last := len(stops) - 1
	for i := 1; i <= last; i++ {
		a, b := stops[i-1], stops[i]
		pa, pb := along(a.Offset), along(b.Offset)
		lo, hi := pa.Y, pb.Y
		if horizontal {
			lo, hi = pa.X, pb.X
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		// The outermost bands extend to the surface edges.
		openLow := (i == 1 && !reversed) || (i == last && reversed)
		openHigh := (i == last && !reversed) || (i == 1 && reversed)
		band := image.Rectangle{Max: s.size}
		start, end := int(math.Round(float64(lo))), int(math.Round(float64(hi)))
		if vertical {
			if !openLow {
				band.Min.Y = start
			}
			if !openHigh {
				band.Max.Y = end
			}
		} else {
			if !openLow {
				band.Min.X = start
			}
			if !openHigh {
				band.Max.X = end
			}
		}
		stack := clip.Rect(band).Push(&s.ops)
		gradient(&s.ops, pa, a.Color, pb, b.Color)
		stack.Pop()
	}
}

func gradient(ops *op.Ops, p1 f32.Point, c1 color.NRGBA, p2 f32.Point, c2 color.NRGBA) {
	paint.LinearGradientOp{
		Stop1:  p1,
		Color1: c1,
		Stop2:  p2,
		Color2: c2,
	}.Add(ops)
	paint.PaintOp{}.Add(ops)
}

func pt(x, y float64) f32.Point {
	return f32.Pt(float32(x), float32(y))
}
