// Package svg implements surface.Surface by building an SVG document.
package svg

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/linegraph/surface"
	"golang.org/x/net/html"
)

const namespace = "http://www.w3.org/2000/svg"

// Surface accumulates drawing operations as SVG elements.
type Surface struct {
	surface.State
	size   image.Point
	root   *html.Node
	defs   *html.Node
	body   *html.Node
	nextID int
}

var _ surface.Surface = (*Surface)(nil)

// New returns an empty SVG document of the given size.
func New(width, height int) *Surface {
	s := &Surface{
		State: surface.NewState(),
		size:  image.Pt(width, height),
	}
	s.reset()
	return s
}

func (s *Surface) reset() {
	w, h := strconv.Itoa(s.size.X), strconv.Itoa(s.size.Y)
	s.root = element("svg", nil, nil, []html.Attribute{
		{Key: "xmlns", Val: namespace},
		{Key: "width", Val: w},
		{Key: "height", Val: h},
		{Key: "viewBox", Val: "0 0 " + w + " " + h},
	})
	s.defs = element("defs", s.root, nil, nil)
	s.body = element("g", s.root, nil, []html.Attribute{{Key: "class", Val: "chart"}})
	s.nextID = 0
}

func element(tag string, parent *html.Node, style map[string]string, attr []html.Attribute) *html.Node {
	e := &html.Node{
		Type:      html.ElementNode,
		Data:      tag,
		Namespace: "svg",
	}
	if parent != nil {
		parent.AppendChild(e)
	}
	if len(style) > 0 {
		e.Attr = append(e.Attr, styleAttr(style))
	}
	e.Attr = append(e.Attr, attr...)
	return e
}

func styleAttr(m map[string]string) html.Attribute {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(m[k])
		b.WriteByte(';')
	}
	return html.Attribute{Key: "style", Val: b.String()}
}

func (s *Surface) Size() image.Point {
	return s.size
}

// Clear discards every element drawn so far.
func (s *Surface) Clear() {
	s.reset()
}

func (s *Surface) Fill() error {
	if s.Empty() {
		return nil
	}
	style := map[string]string{
		"fill":   s.paint(s.FillStyle),
		"stroke": "none",
	}
	s.decorate(style, s.FillStyle)
	element("path", s.body, style, []html.Attribute{{Key: "d", Val: pathData(s.Segments())}})
	return nil
}

func (s *Surface) Stroke() error {
	if s.Empty() {
		return nil
	}
	style := map[string]string{
		"fill":            "none",
		"stroke":          s.paint(s.StrokeStyle),
		"stroke-width":    num(s.LineWidth),
		"stroke-linecap":  s.Cap.String(),
		"stroke-linejoin": s.Join.String(),
	}
	s.decorate(style, s.StrokeStyle)
	element("path", s.body, style, []html.Attribute{{Key: "d", Val: pathData(s.Segments())}})
	return nil
}

func (s *Surface) FillRect(x, y, w, h float64) error {
	style := map[string]string{"fill": s.paint(s.FillStyle)}
	s.decorate(style, s.FillStyle)
	element("rect", s.body, style, []html.Attribute{
		{Key: "x", Val: num(x)},
		{Key: "y", Val: num(y)},
		{Key: "width", Val: num(w)},
		{Key: "height", Val: num(h)},
	})
	return nil
}

// decorate adds the opacity and shadow properties shared by every shape.
func (s *Surface) decorate(style map[string]string, p surface.Paint) {
	if p.Gradient == nil && p.Color.A != 0xff {
		key := "fill-opacity"
		if style["fill"] == "none" {
			key = "stroke-opacity"
		}
		style[key] = num(float64(p.Color.A) / 255)
	}
	if s.State.Shadow.Visible() {
		style["filter"] = "url(#" + s.shadowFilter(s.State.Shadow) + ")"
	}
}

func (s *Surface) id(prefix string) string {
	s.nextID++
	return prefix + "-" + strconv.Itoa(s.nextID)
}

// paint returns the value of a fill or stroke property for p, defining a
// gradient when needed.
func (s *Surface) paint(p surface.Paint) string {
	if p.Gradient == nil || len(p.Gradient.Stops) == 0 {
		return hex(p.Color)
	}
	g := p.Gradient
	id := s.id("gradient")
	grad := element("linearGradient", s.defs, nil, []html.Attribute{
		{Key: "id", Val: id},
		{Key: "gradientUnits", Val: "userSpaceOnUse"},
		{Key: "x1", Val: num(g.X0)},
		{Key: "y1", Val: num(g.Y0)},
		{Key: "x2", Val: num(g.X1)},
		{Key: "y2", Val: num(g.Y1)},
	})
	for _, stop := range g.Stops {
		element("stop", grad, map[string]string{
			"stop-color": hex(stop.Color),
		}, []html.Attribute{
			{Key: "offset", Val: num(stop.Offset)},
			{Key: "stop-opacity", Val: num(float64(stop.Color.A) / 255)},
		})
	}
	return "url(#" + id + ")"
}

func (s *Surface) shadowFilter(sh surface.Shadow) string {
	id := s.id("shadow")
	filter := element("filter", s.defs, nil, []html.Attribute{
		{Key: "id", Val: id},
		{Key: "x", Val: "-50%"},
		{Key: "y", Val: "-50%"},
		{Key: "width", Val: "200%"},
		{Key: "height", Val: "200%"},
	})
	element("feDropShadow", filter, nil, []html.Attribute{
		{Key: "dx", Val: num(sh.OffsetX)},
		{Key: "dy", Val: num(sh.OffsetY)},
		// Canvas blur is twice the gaussian standard deviation.
		{Key: "stdDeviation", Val: num(sh.Blur / 2)},
		{Key: "flood-color", Val: hex(sh.Color)},
		{Key: "flood-opacity", Val: num(float64(sh.Color.A) / 255)},
	})
	return id
}

// Render writes the document to w.
func (s *Surface) Render(w io.Writer) error {
	if err := html.Render(w, s.root); err != nil {
		return fmt.Errorf("failed rendering svg: %w", err)
	}
	return nil
}

func pathData(segs []surface.Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(seg.Verb.String())
		switch seg.Verb {
		case surface.VerbMove, surface.VerbLine:
			fmt.Fprintf(&b, "%s,%s", num(seg.Pts[0].X), num(seg.Pts[0].Y))
		case surface.VerbCubic:
			fmt.Fprintf(&b, "%s,%s %s,%s %s,%s",
				num(seg.Pts[0].X), num(seg.Pts[0].Y),
				num(seg.Pts[1].X), num(seg.Pts[1].Y),
				num(seg.Pts[2].X), num(seg.Pts[2].Y))
		}
	}
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
