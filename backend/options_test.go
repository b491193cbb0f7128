package backend

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/linegraph/chart"
	"github.com/stretchr/testify/require"
)

func TestReadOptions(t *testing.T) {
	doc := `
profile: legacy
padding: 10
spacing_mode: pixels
axis: auto
axis_size: 2
line_shadow: true
max_value: 100
min_value: auto
background: ["#fff", "rgb(240, 240, 240)"]
line_color: "#2563eb"
shadow_color: "#000"
query_origin: surface
palette: ["#f00", "#0f0"]
`
	cfg, err := ReadOptions(strings.NewReader(doc))
	require.NoError(t, err)
	o := cfg.Options

	require.Equal(t, 10.0, o.Padding)
	require.Equal(t, chart.SpacingPixels, o.SpacingMode)
	require.True(t, o.RoundPercent, "legacy profile is kept")
	require.True(t, o.Axis.IsAuto())
	size, ok := o.AxisSize.Get()
	require.True(t, ok)
	require.Equal(t, 2.0, size)
	require.Equal(t, "true", o.LineShadow.String())
	require.Equal(t, "100", o.MaxValue.String())
	require.True(t, o.MinValue.IsAuto())
	require.Equal(t, []color.NRGBA{
		{R: 255, G: 255, B: 255, A: 255},
		{R: 240, G: 240, B: 240, A: 255},
	}, o.Background.Stops())
	require.Equal(t, color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 255}, o.LineColor.Stops()[0])
	require.Equal(t, color.NRGBA{A: 255}, o.ShadowColor)
	require.Equal(t, chart.QuerySurface, o.QueryOrigin)
	require.Len(t, cfg.Palette, 2)
}

func TestReadOptionsEmpty(t *testing.T) {
	cfg, err := ReadOptions(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, chart.DefaultOptions().Padding, cfg.Options.Padding)
	require.Empty(t, cfg.Palette)
}

func TestReadOptionsErrors(t *testing.T) {
	for _, doc := range []string{
		"paddng: 3",
		"profile: fancy",
		"spacing_mode: inches",
		"line_color: notacolor",
		"padding: -4",
		"shadow_color: ['#000', '#fff']",
		"axis_size: wide",
	} {
		_, err := ReadOptions(strings.NewReader(doc))
		require.Error(t, err, doc)
	}
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("line_size: 5\n"), 0o644))
	cfg, err := LoadOptions(path)
	require.NoError(t, err)
	require.Equal(t, 5.0, cfg.Options.LineSize)

	_, err = LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestReadProfileOptions(t *testing.T) {
	cfg, err := ReadProfileOptions(strings.NewReader("padding: 40\n"), ProfileLegacy)
	require.NoError(t, err)
	require.Equal(t, 40.0, cfg.Options.Padding)
	require.True(t, cfg.Options.RoundPercent, "legacy profile is kept")
	require.True(t, cfg.Options.HitBias.IsAuto(), "hit bias follows the final padding")

	cfg, err = ReadProfileOptions(strings.NewReader("profile: legacy\n"), ProfileLegacy)
	require.NoError(t, err)
	require.True(t, cfg.Options.RoundPercent)

	_, err = ReadProfileOptions(strings.NewReader("profile: default\n"), ProfileLegacy)
	require.ErrorContains(t, err, "conflicts")
}

func TestProfileOptions(t *testing.T) {
	o, err := ProfileOptions("")
	require.NoError(t, err)
	require.Equal(t, chart.DefaultOptions().Padding, o.Padding)

	o, err = ProfileOptions(ProfileLegacy)
	require.NoError(t, err)
	require.True(t, o.RoundPercent)

	_, err = ProfileOptions("fancy")
	require.Error(t, err)
}
