// Package raster implements surface.Surface on a CPU rasterizer, producing
// images that can be encoded as PNG.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"git.sr.ht/~whereswaldon/linegraph/surface"
	"github.com/gogpu/gg"
)

// Surface draws onto an in-memory image.
type Surface struct {
	surface.State
	dc   *gg.Context
	size image.Point
}

var _ surface.Surface = (*Surface)(nil)

// New returns a transparent surface of the given size.
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	return &Surface{
		State: surface.NewState(),
		dc:    gg.NewContext(width, height),
		size:  image.Pt(width, height),
	}, nil
}

func (s *Surface) Size() image.Point {
	return s.size
}

func (s *Surface) Clear() {
	s.dc.Clear()
}

func (s *Surface) Fill() error {
	segs := s.Segments()
	if s.State.Shadow.Visible() {
		if err := s.shadowFill(segs); err != nil {
			return err
		}
	}
	s.replay(segs)
	s.dc.SetFillBrush(brush(s.FillStyle))
	if err := s.dc.Fill(); err != nil {
		return fmt.Errorf("failed filling path: %w", err)
	}
	return nil
}

func (s *Surface) Stroke() error {
	segs := s.Segments()
	if s.State.Shadow.Visible() {
		if err := s.shadowStroke(segs); err != nil {
			return err
		}
	}
	s.replay(segs)
	s.applyPen(s.LineWidth)
	s.dc.SetStrokeBrush(brush(s.StrokeStyle))
	if err := s.dc.Stroke(); err != nil {
		return fmt.Errorf("failed stroking path: %w", err)
	}
	return nil
}

func (s *Surface) FillRect(x, y, w, h float64) error {
	s.dc.ClearPath()
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.SetFillBrush(brush(s.FillStyle))
	if err := s.dc.Fill(); err != nil {
		return fmt.Errorf("failed filling rectangle: %w", err)
	}
	return nil
}

// The rasterizer has no blur, so shadows are approximated by drawing the
// geometry once more at the shadow offset, widened by the blur radius and
// at half the shadow opacity.
func (s *Surface) shadowFill(segs []surface.Segment) error {
	sh := s.State.Shadow
	shifted := surface.Translate(segs, sh.OffsetX, sh.OffsetY)
	c := sh.Color
	c.A /= 2
	s.replay(shifted)
	s.dc.SetFillBrush(gg.Solid(rgba(c)))
	if err := s.dc.Fill(); err != nil {
		return fmt.Errorf("failed filling shadow: %w", err)
	}
	if sh.Blur <= 0 {
		return nil
	}
	s.replay(shifted)
	s.applyPen(sh.Blur)
	if err := s.dc.Stroke(); err != nil {
		return fmt.Errorf("failed stroking shadow: %w", err)
	}
	return nil
}

func (s *Surface) shadowStroke(segs []surface.Segment) error {
	sh := s.State.Shadow
	c := sh.Color
	c.A /= 2
	s.replay(surface.Translate(segs, sh.OffsetX, sh.OffsetY))
	s.applyPen(s.LineWidth + sh.Blur)
	s.dc.SetStrokeBrush(gg.Solid(rgba(c)))
	if err := s.dc.Stroke(); err != nil {
		return fmt.Errorf("failed stroking shadow: %w", err)
	}
	return nil
}

func (s *Surface) applyPen(width float64) {
	s.dc.SetLineWidth(width)
	switch s.Cap {
	case surface.CapRound:
		s.dc.SetLineCap(gg.LineCapRound)
	case surface.CapSquare:
		s.dc.SetLineCap(gg.LineCapSquare)
	default:
		s.dc.SetLineCap(gg.LineCapButt)
	}
	switch s.Join {
	case surface.JoinRound:
		s.dc.SetLineJoin(gg.LineJoinRound)
	case surface.JoinBevel:
		s.dc.SetLineJoin(gg.LineJoinBevel)
	default:
		s.dc.SetLineJoin(gg.LineJoinMiter)
	}
}

func (s *Surface) replay(segs []surface.Segment) {
	s.dc.ClearPath()
	for _, seg := range segs {
		switch seg.Verb {
		case surface.VerbMove:
			s.dc.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case surface.VerbLine:
			s.dc.LineTo(seg.Pts[0].X, seg.Pts[0].Y)
		case surface.VerbCubic:
			s.dc.CubicTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		case surface.VerbClose:
			s.dc.ClosePath()
		}
	}
}

// Image returns the rendered image.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the rendered image to w as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// SavePNG writes the rendered image to the named file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed creating %q: %w", path, err)
	}
	if err := s.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed encoding %q: %w", path, err)
	}
	return f.Close()
}

// Close releases the rasterizer.
func (s *Surface) Close() error {
	return s.dc.Close()
}

func brush(p surface.Paint) gg.Brush {
	if p.Gradient == nil || len(p.Gradient.Stops) == 0 {
		return gg.Solid(rgba(p.Color))
	}
	g := p.Gradient
	lg := gg.NewLinearGradientBrush(g.X0, g.Y0, g.X1, g.Y1)
	for _, stop := range g.Stops {
		lg.AddColorStop(stop.Offset, rgba(stop.Color))
	}
	return lg
}

// rgba converts without premultiplying; gg colors carry straight alpha.
func rgba(c color.NRGBA) gg.RGBA {
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}
