package svg

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/linegraph/surface"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, s *Surface) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	return buf.String()
}

func TestStrokeProducesPath(t *testing.T) {
	s := New(100, 50)
	s.SetStrokeStyle(surface.Solid(color.NRGBA{R: 0x8a, G: 0xb8, B: 0x7d, A: 0xff}))
	s.SetLineWidth(3)
	s.SetLineCap(surface.CapRound)
	s.SetLineJoin(surface.JoinBevel)
	s.BeginPath()
	s.MoveTo(0, 10)
	s.BezierCurveTo(10, 0, 20, 0, 30.5, 10)
	require.NoError(t, s.Stroke())

	out := render(t, s)
	require.True(t, strings.HasPrefix(out, "<svg"))
	require.Contains(t, out, `viewBox="0 0 100 50"`)
	require.Contains(t, out, `d="M0,10 C10,0 20,0 30.5,10"`)
	require.Contains(t, out, "stroke:#8ab87d;")
	require.Contains(t, out, "stroke-linecap:round;")
	require.Contains(t, out, "stroke-linejoin:bevel;")
	require.Contains(t, out, "stroke-width:3;")
}

func TestGradientFillDefinesStops(t *testing.T) {
	s := New(10, 10)
	s.SetFillStyle(surface.Paint{Gradient: &surface.LinearGradient{
		Y1: 10,
		Stops: []surface.Stop{
			{Offset: 0, Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
			{Offset: 1, Color: color.NRGBA{R: 0xf8, G: 0xf8, B: 0xf8, A: 0xff}},
		},
	}})
	require.NoError(t, s.FillRect(0, 0, 10, 10))

	out := render(t, s)
	require.Contains(t, out, "<linearGradient")
	require.Contains(t, out, `id="gradient-1"`)
	require.Contains(t, out, "fill:url(#gradient-1);")
	require.Equal(t, 2, strings.Count(out, "<stop"))
}

func TestShadowAddsFilter(t *testing.T) {
	s := New(10, 10)
	s.SetShadow(surface.Shadow{Color: color.NRGBA{A: 153}, Blur: 2})
	s.BeginPath()
	s.Arc(5, 5, 2, 0, 6.3)
	require.NoError(t, s.Fill())

	out := render(t, s)
	require.Contains(t, out, "<feDropShadow")
	require.Contains(t, out, "filter:url(#shadow-1);")
}

func TestClearDropsContent(t *testing.T) {
	s := New(10, 10)
	s.BeginPath()
	s.MoveTo(0, 0)
	s.LineTo(5, 5)
	require.NoError(t, s.Stroke())
	s.Clear()
	out := render(t, s)
	require.NotContains(t, out, "<path")
}

func TestEmptyPathDrawsNothing(t *testing.T) {
	s := New(10, 10)
	s.BeginPath()
	require.NoError(t, s.Fill())
	require.NoError(t, s.Stroke())
	require.NotContains(t, render(t, s), "<path")
}
