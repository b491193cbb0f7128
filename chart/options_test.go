package chart

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{in: "#fff", want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: "#8AB87D", want: color.NRGBA{R: 138, G: 184, B: 125, A: 255}},
		{in: " rgb(150, 150, 150) ", want: color.NRGBA{R: 150, G: 150, B: 150, A: 255}},
		{in: "transparent", want: color.NRGBA{}},
	}
	for _, tc := range tests {
		c, err := ParseColor(tc.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.in, err)
			continue
		}
		if got := c.Stops(); len(got) != 1 || got[0] != tc.want {
			t.Errorf("%q: expected %v, got %v", tc.in, tc.want, got)
		}
	}

	for _, bad := range []string{"", "#ggg", "#12345", "no-such-color"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}

func TestParseGradient(t *testing.T) {
	c, err := ParseColor("#fff", "#f8f8f8")
	require.NoError(t, err)
	require.True(t, c.IsGradient())

	p := c.paint(300)
	require.NotNil(t, p.Gradient)
	require.Equal(t, 300.0, p.Gradient.Y1)
	require.Equal(t, 0.0, p.Gradient.Stops[0].Offset)
	require.Equal(t, 1.0, p.Gradient.Stops[1].Offset)
	require.Equal(t, color.NRGBA{R: 248, G: 248, B: 248, A: 255}, p.Gradient.Stops[1].Color)
}

func TestColorOr(t *testing.T) {
	def := Solid(color.NRGBA{B: 255, A: 255})
	require.True(t, Color{}.Or(def).Equal(def))
	red := Solid(color.NRGBA{R: 255, A: 255})
	require.True(t, red.Or(def).Equal(red))
}

func TestSetting(t *testing.T) {
	auto := Auto[float64]()
	require.True(t, auto.IsAuto())
	require.Equal(t, 3.0, auto.Resolve(3))
	require.Equal(t, "auto", auto.String())

	fixed := Fixed(1.5)
	require.Equal(t, 1.5, fixed.Resolve(3))
	require.Equal(t, "1.5", fixed.String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		option string
	}{
		{name: "negative padding", mutate: func(o *Options) { o.Padding = -1 }, option: "Padding"},
		{name: "infinite spacing", mutate: func(o *Options) { o.Spacing = math.Inf(1) }, option: "Spacing"},
		{name: "zero line", mutate: func(o *Options) { o.LineSize = 0 }, option: "LineSize"},
		{name: "inverted bounds", mutate: func(o *Options) {
			o.MinValue = Fixed(10.0)
			o.MaxValue = Fixed(1.0)
		}, option: "MinValue"},
		{name: "empty key", mutate: func(o *Options) { o.ValueKey = "" }, option: "ValueKey"},
		{name: "no line color", mutate: func(o *Options) { o.LineColor = Color{} }, option: "LineColor"},
		{name: "no fill color", mutate: func(o *Options) { o.FillColor = Color{} }, option: "FillColor"},
		{name: "nan bias", mutate: func(o *Options) { o.HitBias = Fixed(math.NaN()) }, option: "HitBias"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := DefaultOptions()
			tc.mutate(&o)
			err := o.Validate()
			var cfg *ConfigurationError
			require.ErrorAs(t, err, &cfg)
			require.Equal(t, tc.option, cfg.Option)
		})
	}
	require.NoError(t, DefaultOptions().Validate())
	require.NoError(t, LegacyOptions().Validate())
}

func TestGeometry(t *testing.T) {
	o := DefaultOptions()
	g := o.geometry(image.Pt(441, 241))
	require.Equal(t, 20.5, g.inset)
	require.Equal(t, 400.0, g.area.Width)
	require.Equal(t, 30.5, g.plot.Top)
	require.Equal(t, 180.0, g.plot.Height)

	o.SpacingMode = SpacingValue
	g = o.geometry(image.Pt(441, 241))
	require.Equal(t, g.area, g.plot)
}
