package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/linegraph/backend"
	"git.sr.ht/~whereswaldon/linegraph/chart"
	"github.com/stretchr/testify/require"
)

func testData(t *testing.T) backend.Dataset {
	t.Helper()
	d, err := backend.ReadCSV(strings.NewReader("day,a,b\nmon,1,3\ntue,2,2\nwed,3,1\n"))
	require.NoError(t, err)
	return d
}

func TestRenderPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.png")
	j := renderJob{output: out, format: "png", width: 320, height: 160}
	require.NoError(t, j.run(testData(t), backend.Config{Options: chart.DefaultOptions()}))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 320, img.Bounds().Dx())
	require.Equal(t, 160, img.Bounds().Dy())
}

func TestRenderSVG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.svg")
	j := renderJob{output: out, format: "svg", width: 320, height: 160}
	cfg := backend.Config{
		Options: chart.DefaultOptions(),
		Palette: []chart.Color{chart.MustParseColor("#2563eb")},
	}
	require.NoError(t, j.run(testData(t), cfg))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	doc := string(data)
	require.True(t, strings.HasPrefix(doc, "<svg"))
	require.Contains(t, doc, "stroke:#2563eb")
}

func TestRenderRejectsCrampedChart(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.png")
	j := renderJob{output: out, format: "png", width: 30, height: 30}
	err := j.run(testData(t), backend.Config{Options: chart.DefaultOptions()})
	var cfgErr *chart.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

func TestJobNaming(t *testing.T) {
	defer func(o, d, f string) { outputPath, outputDir, format = o, d, f }(outputPath, outputDir, format)

	outputPath, outputDir, format = "", "", ""
	j := job(filepath.Join("data", "load.csv"))
	require.Equal(t, filepath.Join("data", "load.png"), j.output)
	require.Equal(t, "png", j.format)

	outputDir, format = "out", "SVG"
	j = job(filepath.Join("data", "load.csv"))
	require.Equal(t, filepath.Join("out", "load.svg"), j.output)
	require.Equal(t, "svg", j.format)

	outputPath, outputDir, format = "chart.svg", "", ""
	j = job("load.csv")
	require.Equal(t, "chart.svg", j.output)
	require.Equal(t, "svg", j.format)
}
