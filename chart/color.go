package chart

import (
	"fmt"
	"image/color"
	"strings"

	"git.sr.ht/~whereswaldon/linegraph/surface"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Color is either a single color or an ordered list of colors forming a
// vertical gradient over the full surface height. The zero Color means
// "default": series styles defer to the chart options, and optional
// decorations such as the background are skipped.
type Color struct {
	stops []color.NRGBA
}

// Solid returns the single color c.
func Solid(c color.NRGBA) Color {
	return Color{stops: []color.NRGBA{c}}
}

// Gradient returns a gradient through the given colors, top to bottom, with
// evenly spaced stops. A single color yields a solid Color.
func Gradient(stops ...color.NRGBA) Color {
	return Color{stops: append([]color.NRGBA(nil), stops...)}
}

// IsZero reports whether c is the default color.
func (c Color) IsZero() bool {
	return len(c.stops) == 0
}

// IsGradient reports whether c holds more than one color.
func (c Color) IsGradient() bool {
	return len(c.stops) > 1
}

// Stops returns a copy of the colors making up c.
func (c Color) Stops() []color.NRGBA {
	return append([]color.NRGBA(nil), c.stops...)
}

// Or returns c, or def when c is the default color.
func (c Color) Or(def Color) Color {
	if c.IsZero() {
		return def
	}
	return c
}

// Equal reports whether c and o hold the same colors.
func (c Color) Equal(o Color) bool {
	if len(c.stops) != len(o.stops) {
		return false
	}
	for i := range c.stops {
		if c.stops[i] != o.stops[i] {
			return false
		}
	}
	return true
}

func (c Color) String() string {
	if c.IsZero() {
		return "default"
	}
	parts := make([]string, len(c.stops))
	for i, s := range c.stops {
		parts[i] = fmt.Sprintf("rgba(%d,%d,%d,%.3g)", s.R, s.G, s.B, float64(s.A)/255)
	}
	return strings.Join(parts, " ")
}

// paint converts c for a surface of the given height.
func (c Color) paint(height float64) surface.Paint {
	switch len(c.stops) {
	case 0:
		return surface.Paint{}
	case 1:
		return surface.Solid(c.stops[0])
	}
	g := &surface.LinearGradient{Y1: height, Stops: make([]surface.Stop, len(c.stops))}
	step := 1 / float64(len(c.stops)-1)
	for i, s := range c.stops {
		g.Stops[i] = surface.Stop{Offset: min(float64(i)*step, 1), Color: s}
	}
	return surface.Paint{Color: c.stops[0], Gradient: g}
}

// ParseColor parses one CSS color string per gradient stop. Hex (#rgb and
// #rrggbb), rgb(), rgba() and named colors are accepted.
func ParseColor(values ...string) (Color, error) {
	if len(values) == 0 {
		return Color{}, fmt.Errorf("no color given")
	}
	stops := make([]color.NRGBA, len(values))
	for i, v := range values {
		c, err := parseOne(v)
		if err != nil {
			return Color{}, err
		}
		stops[i] = c
	}
	return Color{stops: stops}, nil
}

// MustParseColor is like ParseColor but panics on malformed input. It is
// meant for constant colors.
func MustParseColor(values ...string) Color {
	c, err := ParseColor(values...)
	if err != nil {
		panic(err)
	}
	return c
}

func parseOne(raw string) (color.NRGBA, error) {
	v := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	var dc drawing.Color
	switch {
	case v == "":
		return color.NRGBA{}, fmt.Errorf("empty color")
	case v == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(v, "#"):
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 || strings.Trim(hex, "0123456789abcdef") != "" {
			return color.NRGBA{}, fmt.Errorf("malformed hex color %q", raw)
		}
		dc = drawing.ColorFromHex(hex)
	default:
		dc = drawing.ParseColor(v)
		if dc == (drawing.Color{}) && !strings.HasPrefix(v, "rgba(") {
			return color.NRGBA{}, fmt.Errorf("unknown color %q", raw)
		}
	}
	return color.NRGBA{R: dc.R, G: dc.G, B: dc.B, A: dc.A}, nil
}
