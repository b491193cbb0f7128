// Package surface defines the immediate-mode 2D drawing context charts are
// rendered onto, along with the path and style state shared by its
// implementations. Concrete surfaces live in the subpackages.
package surface

import (
	"image"
	"image/color"
	"math"
)

// Surface is a 2D immediate-mode drawing context. Styles and the current
// path persist between calls until changed; Fill and Stroke consume the
// current path using the style in effect at the time of the call.
type Surface interface {
	// Size reports the pixel dimensions of the surface.
	Size() image.Point
	// Clear erases everything drawn so far.
	Clear()

	SetFillStyle(Paint)
	SetStrokeStyle(Paint)
	SetLineWidth(float64)
	SetLineCap(LineCap)
	SetLineJoin(LineJoin)
	SetShadow(Shadow)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	// Arc adds a circular arc around (x, y) from angle start to end, in
	// radians, sweeping in the direction of increasing angle.
	Arc(x, y, r, start, end float64)
	ClosePath()

	Fill() error
	Stroke() error
	// FillRect fills the given rectangle with the fill style without
	// touching the current path.
	FillRect(x, y, w, h float64) error
}

type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return "butt"
	}
}

type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

// Stop is a color stop of a gradient, with Offset in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// LinearGradient interpolates its stops along the line from (X0, Y0) to
// (X1, Y1). Stops are expected in increasing offset order.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}

// ColorAt returns the gradient color at offset t along the gradient line.
func (g *LinearGradient) ColorAt(t float64) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerp(a.Color, b.Color, (t-a.Offset)/span)
	}
	return g.Stops[len(g.Stops)-1].Color
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Paint is a solid color, or a gradient when Gradient is non-nil.
type Paint struct {
	Color    color.NRGBA
	Gradient *LinearGradient
}

// Solid returns a Paint of the single color c.
func Solid(c color.NRGBA) Paint {
	return Paint{Color: c}
}

// Shadow describes the shadow cast by subsequent fills and strokes.
type Shadow struct {
	Color            color.NRGBA
	Blur             float64
	OffsetX, OffsetY float64
}

// Visible reports whether drawing with s would produce any shadow.
func (s Shadow) Visible() bool {
	return s.Color.A != 0 && (s.Blur > 0 || s.OffsetX != 0 || s.OffsetY != 0)
}

// State holds the style and path state common to every Surface. Concrete
// surfaces embed it and implement Size, Clear, Fill, Stroke and FillRect on
// top of it.
type State struct {
	Path
	FillStyle   Paint
	StrokeStyle Paint
	LineWidth   float64
	Cap         LineCap
	Join        LineJoin
	Shadow      Shadow
}

// NewState returns the initial drawing state: black paints and a one pixel
// line with butt caps and miter joins.
func NewState() State {
	black := Solid(color.NRGBA{A: 0xff})
	return State{
		FillStyle:   black,
		StrokeStyle: black,
		LineWidth:   1,
	}
}

func (s *State) SetFillStyle(p Paint) { s.FillStyle = p }

func (s *State) SetStrokeStyle(p Paint) { s.StrokeStyle = p }

func (s *State) SetLineCap(c LineCap) { s.Cap = c }

func (s *State) SetLineJoin(j LineJoin) { s.Join = j }

func (s *State) SetShadow(shadow Shadow) { s.Shadow = shadow }

// BeginPath discards the current path.
func (s *State) BeginPath() { s.Path.Reset() }

// SetLineWidth ignores non-positive and non-finite widths, leaving the
// previous width in effect.
func (s *State) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
		s.LineWidth = w
	}
}
