package backend

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"git.sr.ht/~whereswaldon/linegraph/chart"
	"gopkg.in/yaml.v3"
)

// Config is a chart configuration read from a file.
type Config struct {
	Options chart.Options
	// Palette colors series in turn, overriding Options.LineColor.
	Palette []chart.Color
}

// autoValue is an option that may be given as "auto".
type autoValue[T any] struct {
	set, auto bool
	v         T
}

func (a *autoValue[T]) UnmarshalYAML(n *yaml.Node) error {
	a.set = true
	if n.Kind == yaml.ScalarNode && n.Value == "auto" {
		a.auto = true
		return nil
	}
	return n.Decode(&a.v)
}

func applyAuto[T any](dst *chart.Setting[T], a autoValue[T]) {
	switch {
	case !a.set:
	case a.auto:
		*dst = chart.Auto[T]()
	default:
		*dst = chart.Fixed(a.v)
	}
}

// colorValue is a CSS color, or a list of them forming a gradient.
type colorValue struct {
	c chart.Color
}

func (c *colorValue) UnmarshalYAML(n *yaml.Node) error {
	var values []string
	switch n.Kind {
	case yaml.ScalarNode:
		values = []string{n.Value}
	case yaml.SequenceNode:
		if err := n.Decode(&values); err != nil {
			return err
		}
	default:
		return fmt.Errorf("line %d: expected a color or a list of colors", n.Line)
	}
	parsed, err := chart.ParseColor(values...)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	c.c = parsed
	return nil
}

func applyColor(dst *chart.Color, c *colorValue) {
	if c != nil {
		*dst = c.c
	}
}

func apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

type optionsFile struct {
	Profile string `yaml:"profile"`

	MinValue     autoValue[float64] `yaml:"min_value"`
	MaxValue     autoValue[float64] `yaml:"max_value"`
	Padding      *float64           `yaml:"padding"`
	Spacing      *float64           `yaml:"spacing"`
	SpacingMode  string             `yaml:"spacing_mode"`
	RoundPercent *bool              `yaml:"round_percent"`

	Border      *float64    `yaml:"border"`
	BorderColor *colorValue `yaml:"border_color"`
	Background  *colorValue `yaml:"background"`

	Grid       *bool       `yaml:"grid"`
	GridX      *bool       `yaml:"grid_x"`
	GridY      *bool       `yaml:"grid_y"`
	GridYCount *int        `yaml:"grid_y_count"`
	GridSize   *float64    `yaml:"grid_size"`
	GridColor  *colorValue `yaml:"grid_color"`
	GridShadow *bool       `yaml:"grid_shadow"`
	GridDotted *bool       `yaml:"grid_dotted"`

	Axis       autoValue[bool]       `yaml:"axis"`
	AxisSize   autoValue[float64]    `yaml:"axis_size"`
	AxisColor  autoValue[colorValue] `yaml:"axis_color"`
	AxisShadow autoValue[bool]       `yaml:"axis_shadow"`

	Bullets      *bool       `yaml:"bullets"`
	BulletSize   *float64    `yaml:"bullet_size"`
	BulletColor  *colorValue `yaml:"bullet_color"`
	BulletFill   *bool       `yaml:"bullet_fill"`
	BulletShadow *bool       `yaml:"bullet_shadow"`
	ShadowColor  *colorValue `yaml:"shadow_color"`

	Fill       *bool           `yaml:"fill"`
	FillColor  *colorValue     `yaml:"fill_color"`
	LineSize   *float64        `yaml:"line_size"`
	LineCurve  *bool           `yaml:"line_curve"`
	LineColor  *colorValue     `yaml:"line_color"`
	LineShadow autoValue[bool] `yaml:"line_shadow"`

	ValueKey            *string            `yaml:"value_key"`
	HitBias             autoValue[float64] `yaml:"hit_bias"`
	QueryOrigin         string             `yaml:"query_origin"`
	SingleSeriesHitTest *bool              `yaml:"single_series_hit_test"`

	Palette []colorValue `yaml:"palette"`
}

// Option profiles a configuration can start from.
const (
	ProfileDefault = "default"
	ProfileLegacy  = "legacy"
)

// ProfileOptions returns the options of the named profile. An empty name
// selects the default profile.
func ProfileOptions(profile string) (chart.Options, error) {
	switch profile {
	case "", ProfileDefault:
		return chart.DefaultOptions(), nil
	case ProfileLegacy:
		return chart.LegacyOptions(), nil
	default:
		return chart.Options{}, fmt.Errorf("unknown profile %q", profile)
	}
}

func (f *optionsFile) options() (chart.Options, error) {
	o, err := ProfileOptions(f.Profile)
	if err != nil {
		return o, err
	}

	applyAuto(&o.MinValue, f.MinValue)
	applyAuto(&o.MaxValue, f.MaxValue)
	apply(&o.Padding, f.Padding)
	apply(&o.Spacing, f.Spacing)
	switch f.SpacingMode {
	case "":
	case "pixels":
		o.SpacingMode = chart.SpacingPixels
	case "value":
		o.SpacingMode = chart.SpacingValue
	default:
		return o, fmt.Errorf("unknown spacing mode %q", f.SpacingMode)
	}
	apply(&o.RoundPercent, f.RoundPercent)

	apply(&o.Border, f.Border)
	applyColor(&o.BorderColor, f.BorderColor)
	applyColor(&o.Background, f.Background)

	apply(&o.Grid, f.Grid)
	apply(&o.GridX, f.GridX)
	apply(&o.GridY, f.GridY)
	apply(&o.GridYCount, f.GridYCount)
	apply(&o.GridSize, f.GridSize)
	applyColor(&o.GridColor, f.GridColor)
	apply(&o.GridShadow, f.GridShadow)
	apply(&o.GridDotted, f.GridDotted)

	applyAuto(&o.Axis, f.Axis)
	applyAuto(&o.AxisSize, f.AxisSize)
	switch a := f.AxisColor; {
	case !a.set:
	case a.auto:
		o.AxisColor = chart.Auto[chart.Color]()
	default:
		o.AxisColor = chart.Fixed(a.v.c)
	}
	applyAuto(&o.AxisShadow, f.AxisShadow)

	apply(&o.Bullets, f.Bullets)
	apply(&o.BulletSize, f.BulletSize)
	applyColor(&o.BulletColor, f.BulletColor)
	apply(&o.BulletFill, f.BulletFill)
	apply(&o.BulletShadow, f.BulletShadow)
	if f.ShadowColor != nil {
		stops := f.ShadowColor.c.Stops()
		if len(stops) != 1 {
			return o, errors.New("shadow_color must be a single color")
		}
		o.ShadowColor = stops[0]
	}

	apply(&o.Fill, f.Fill)
	applyColor(&o.FillColor, f.FillColor)
	apply(&o.LineSize, f.LineSize)
	apply(&o.LineCurve, f.LineCurve)
	applyColor(&o.LineColor, f.LineColor)
	applyAuto(&o.LineShadow, f.LineShadow)

	apply(&o.ValueKey, f.ValueKey)
	applyAuto(&o.HitBias, f.HitBias)
	switch f.QueryOrigin {
	case "":
	case "surface":
		o.QueryOrigin = chart.QuerySurface
	case "plot":
		o.QueryOrigin = chart.QueryPlot
	default:
		return o, fmt.Errorf("unknown query origin %q", f.QueryOrigin)
	}
	apply(&o.SingleSeriesHitTest, f.SingleSeriesHitTest)
	return o, nil
}

// ReadOptions reads a YAML chart configuration. Options missing from the
// document keep the values of the selected profile. Unknown keys are
// rejected.
func ReadOptions(r io.Reader) (Config, error) {
	return ReadProfileOptions(r, "")
}

// ReadProfileOptions is ReadOptions for a document applied on top of the
// named profile. A document selecting another profile is rejected.
func ReadProfileOptions(r io.Reader, profile string) (Config, error) {
	var f optionsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed decoding options: %w", err)
	}
	switch {
	case f.Profile == "":
		f.Profile = profile
	case profile != "" && f.Profile != profile:
		return Config{}, fmt.Errorf("profile %q conflicts with requested profile %q", f.Profile, profile)
	}
	o, err := f.options()
	if err != nil {
		return Config{}, err
	}
	if err := o.Validate(); err != nil {
		return Config{}, err
	}
	cfg := Config{Options: o}
	for _, c := range f.Palette {
		cfg.Palette = append(cfg.Palette, c.c)
	}
	return cfg, nil
}

// LoadOptions reads the YAML chart configuration at path.
func LoadOptions(path string) (Config, error) {
	return LoadProfileOptions(path, "")
}

// LoadProfileOptions reads the YAML chart configuration at path on top of
// the named profile.
func LoadProfileOptions(path, profile string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed reading options file: %w", err)
	}
	cfg, err := ReadProfileOptions(bytes.NewReader(data), profile)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
