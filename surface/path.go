package surface

import (
	"math"

	"git.sr.ht/~whereswaldon/linegraph/geom"
)

// Verb identifies the kind of a path Segment.
type Verb uint8

const (
	VerbMove Verb = iota
	VerbLine
	VerbCubic
	VerbClose
)

func (v Verb) String() string {
	switch v {
	case VerbMove:
		return "M"
	case VerbLine:
		return "L"
	case VerbCubic:
		return "C"
	default:
		return "Z"
	}
}

// Segment is a single path element. Move and Line use Pts[0]; Cubic uses
// Pts[0] and Pts[1] as control points and Pts[2] as the end point.
type Segment struct {
	Verb Verb
	Pts  [3]geom.Vec2
}

// End returns the point the segment leaves the pen at. It is meaningless for
// VerbClose.
func (s Segment) End() geom.Vec2 {
	if s.Verb == VerbCubic {
		return s.Pts[2]
	}
	return s.Pts[0]
}

// Path records path construction calls in canvas semantics so they can be
// replayed onto a backend at fill or stroke time.
type Path struct {
	segs    []Segment
	start   geom.Vec2
	current geom.Vec2
	open    bool
}

// Reset discards every recorded segment.
func (p *Path) Reset() {
	p.segs = p.segs[:0]
	p.open = false
}

// Segments returns the recorded segments. The slice is reused after Reset.
func (p *Path) Segments() []Segment {
	return p.segs
}

// Empty reports whether the path holds no drawable segment.
func (p *Path) Empty() bool {
	for _, s := range p.segs {
		if s.Verb != VerbMove {
			return false
		}
	}
	return true
}

func (p *Path) MoveTo(x, y float64) {
	pt := geom.Vec2{X: x, Y: y}
	p.segs = append(p.segs, Segment{Verb: VerbMove, Pts: [3]geom.Vec2{pt}})
	p.start, p.current, p.open = pt, pt, true
}

// LineTo adds a line from the current point. On an empty path it behaves as
// MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	pt := geom.Vec2{X: x, Y: y}
	p.segs = append(p.segs, Segment{Verb: VerbLine, Pts: [3]geom.Vec2{pt}})
	p.current = pt
}

func (p *Path) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.open {
		p.MoveTo(c1x, c1y)
	}
	pt := geom.Vec2{X: x, Y: y}
	p.segs = append(p.segs, Segment{Verb: VerbCubic, Pts: [3]geom.Vec2{{X: c1x, Y: c1y}, {X: c2x, Y: c2y}, pt}})
	p.current = pt
}

func (p *Path) ClosePath() {
	if !p.open {
		return
	}
	p.segs = append(p.segs, Segment{Verb: VerbClose})
	p.current = p.start
}

// Arc approximates the arc with cubic segments of at most a quarter turn.
// The arc start is joined to the current point by a line, or begins a new
// subpath when there is none.
func (p *Path) Arc(x, y, r, start, end float64) {
	const twoPi = 2 * math.Pi
	if end-start >= twoPi {
		end = start + twoPi
	}
	for end < start {
		end += twoPi
	}
	first := geom.Vec2{X: x + r*math.Cos(start), Y: y + r*math.Sin(start)}
	if p.open {
		p.LineTo(first.X, first.Y)
	} else {
		p.MoveTo(first.X, first.Y)
	}
	if end == start || r <= 0 {
		return
	}
	n := int(math.Ceil((end - start) / (math.Pi / 2)))
	step := (end - start) / float64(n)
	for i := 0; i < n; i++ {
		a1 := start + float64(i)*step
		p.arcSegment(x, y, r, a1, a1+step)
	}
}

func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	// Handles of length 4/3*tan(theta/4) put the segment midpoint on the circle.
	alpha := 4.0 / 3 * math.Tan((a2-a1)/4)
	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)
	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2
	p.BezierCurveTo(
		x1-alpha*r*sin1, y1+alpha*r*cos1,
		x2+alpha*r*sin2, y2-alpha*r*cos2,
		x2, y2,
	)
}

// Translate returns the segments shifted by (dx, dy).
func Translate(segs []Segment, dx, dy float64) []Segment {
	out := make([]Segment, len(segs))
	d := geom.Vec2{X: dx, Y: dy}
	for i, s := range segs {
		out[i] = s
		if s.Verb == VerbClose {
			continue
		}
		n := 1
		if s.Verb == VerbCubic {
			n = 3
		}
		for k := 0; k < n; k++ {
			out[i].Pts[k] = s.Pts[k].Add(d)
		}
	}
	return out
}
