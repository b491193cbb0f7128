package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"git.sr.ht/~whereswaldon/linegraph/backend"
	"git.sr.ht/~whereswaldon/linegraph/chart"
	"git.sr.ht/~whereswaldon/linegraph/surface"
	"git.sr.ht/~whereswaldon/linegraph/surface/raster"
	"git.sr.ht/~whereswaldon/linegraph/surface/svg"
)

// canvas is a surface that can be written out as a file.
type canvas interface {
	surface.Surface
	Encode(w io.Writer) error
	Close() error
}

type pngCanvas struct {
	*raster.Surface
}

func (p pngCanvas) Encode(w io.Writer) error {
	return p.EncodePNG(w)
}

type svgCanvas struct {
	*svg.Surface
}

func (s svgCanvas) Encode(w io.Writer) error {
	return s.Render(w)
}

func (svgCanvas) Close() error {
	return nil
}

func newCanvas(format string, width, height int) (canvas, error) {
	switch format {
	case "png":
		s, err := raster.New(width, height)
		if err != nil {
			return nil, err
		}
		return pngCanvas{s}, nil
	case "svg":
		return svgCanvas{svg.New(width, height)}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// renderJob draws datasets into one output file.
type renderJob struct {
	output        string
	format        string
	width, height int
}

func (j renderJob) run(d backend.Dataset, cfg backend.Config) (err error) {
	cv, err := newCanvas(j.format, j.width, j.height)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, cv.Close())
	}()

	c, err := chart.New(cv,
		chart.WithOptions(cfg.Options),
		chart.WithRepeatSuppression(true),
	)
	if err != nil {
		return err
	}
	if err := d.Plot(c, cfg.Palette); err != nil {
		return err
	}
	if err := c.Draw(); err != nil {
		return err
	}

	f, err := os.Create(j.output)
	if err != nil {
		return fmt.Errorf("failed creating output: %w", err)
	}
	if err := cv.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed writing %s: %w", j.format, err)
	}
	return f.Close()
}
