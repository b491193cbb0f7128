package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"git.sr.ht/~whereswaldon/linegraph/surface"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmptySize(t *testing.T) {
	_, err := New(0, 10)
	require.Error(t, err)
}

func TestFillRectPaintsPixels(t *testing.T) {
	s, err := New(20, 20)
	require.NoError(t, err)
	defer s.Close()

	s.SetFillStyle(surface.Solid(color.NRGBA{R: 0xff, A: 0xff}))
	require.NoError(t, s.FillRect(0, 0, 20, 10))

	r, g, b, a := s.Image().At(10, 5).RGBA()
	require.Equal(t, [4]uint32{0xffff, 0, 0, 0xffff}, [4]uint32{r, g, b, a})
	_, _, _, a = s.Image().At(10, 15).RGBA()
	require.Zero(t, a, "lower half must stay transparent")
}

func TestEncodePNG(t *testing.T) {
	s, err := New(16, 8)
	require.NoError(t, err)
	defer s.Close()

	s.SetStrokeStyle(surface.Solid(color.NRGBA{B: 0xff, A: 0xff}))
	s.SetLineWidth(2)
	s.BeginPath()
	s.MoveTo(0, 4)
	s.LineTo(16, 4)
	require.NoError(t, s.Stroke())

	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 16, img.Bounds().Dx())
	require.Equal(t, 8, img.Bounds().Dy())

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, s.SavePNG(path))
}
