// Package record provides a Surface that logs drawing operations instead of
// producing pixels. It is used to inspect what a chart draws.
package record

import (
	"image"

	"git.sr.ht/~whereswaldon/linegraph/surface"
)

// Kind identifies a logged drawing operation.
type Kind uint8

const (
	KindClear Kind = iota
	KindFill
	KindStroke
	KindFillRect
)

func (k Kind) String() string {
	switch k {
	case KindClear:
		return "clear"
	case KindFill:
		return "fill"
	case KindStroke:
		return "stroke"
	default:
		return "fill-rect"
	}
}

// Command is a drawing operation with the state it was issued under.
type Command struct {
	Kind Kind
	// Path is a copy of the current path for fills and strokes.
	Path  []surface.Segment
	Paint surface.Paint
	// LineWidth, Cap and Join are only meaningful for strokes.
	LineWidth float64
	Cap       surface.LineCap
	Join      surface.LineJoin
	Shadow    surface.Shadow
	// Rect holds x, y, width and height for KindFillRect.
	Rect [4]float64
}

// Surface records every drawing operation issued to it.
type Surface struct {
	surface.State
	size     image.Point
	calls    int
	Commands []Command
}

var _ surface.Surface = (*Surface)(nil)

// New returns a recording surface reporting the given size.
func New(width, height int) *Surface {
	return &Surface{
		State: surface.NewState(),
		size:  image.Pt(width, height),
	}
}

// Calls returns the number of Surface methods invoked so far, including
// style and path calls that are not logged as commands.
func (s *Surface) Calls() int {
	return s.calls
}

// Reset forgets every logged command and call.
func (s *Surface) Reset() {
	s.Commands = nil
	s.calls = 0
}

// Filter returns the logged commands of kind k.
func (s *Surface) Filter(k Kind) []Command {
	var out []Command
	for _, c := range s.Commands {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

func (s *Surface) Size() image.Point {
	s.calls++
	return s.size
}

func (s *Surface) Clear() {
	s.calls++
	s.Commands = append(s.Commands, Command{Kind: KindClear})
}

func (s *Surface) SetFillStyle(p surface.Paint) {
	s.calls++
	s.State.SetFillStyle(p)
}

func (s *Surface) SetStrokeStyle(p surface.Paint) {
	s.calls++
	s.State.SetStrokeStyle(p)
}

func (s *Surface) SetLineWidth(w float64) {
	s.calls++
	s.State.SetLineWidth(w)
}

func (s *Surface) SetLineCap(c surface.LineCap) {
	s.calls++
	s.State.SetLineCap(c)
}

func (s *Surface) SetLineJoin(j surface.LineJoin) {
	s.calls++
	s.State.SetLineJoin(j)
}

func (s *Surface) SetShadow(shadow surface.Shadow) {
	s.calls++
	s.State.SetShadow(shadow)
}

func (s *Surface) BeginPath() {
	s.calls++
	s.State.BeginPath()
}

func (s *Surface) MoveTo(x, y float64) {
	s.calls++
	s.State.MoveTo(x, y)
}

func (s *Surface) LineTo(x, y float64) {
	s.calls++
	s.State.LineTo(x, y)
}

func (s *Surface) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.calls++
	s.State.BezierCurveTo(c1x, c1y, c2x, c2y, x, y)
}

func (s *Surface) Arc(x, y, r, start, end float64) {
	s.calls++
	s.State.Arc(x, y, r, start, end)
}

func (s *Surface) ClosePath() {
	s.calls++
	s.State.ClosePath()
}

func (s *Surface) Fill() error {
	s.calls++
	s.Commands = append(s.Commands, Command{
		Kind:   KindFill,
		Path:   append([]surface.Segment(nil), s.Segments()...),
		Paint:  s.FillStyle,
		Shadow: s.State.Shadow,
	})
	return nil
}

func (s *Surface) Stroke() error {
	s.calls++
	s.Commands = append(s.Commands, Command{
		Kind:      KindStroke,
		Path:      append([]surface.Segment(nil), s.Segments()...),
		Paint:     s.StrokeStyle,
		LineWidth: s.LineWidth,
		Cap:       s.Cap,
		Join:      s.Join,
		Shadow:    s.State.Shadow,
	})
	return nil
}

func (s *Surface) FillRect(x, y, w, h float64) error {
	s.calls++
	s.Commands = append(s.Commands, Command{
		Kind:   KindFillRect,
		Paint:  s.FillStyle,
		Shadow: s.State.Shadow,
		Rect:   [4]float64{x, y, w, h},
	})
	return nil
}
