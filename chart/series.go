package chart

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
)

// SeriesStyle overrides the chart colors for one series. Zero colors defer
// to Options.LineColor and Options.FillColor.
type SeriesStyle struct {
	Line Color
	Fill Color
}

// Series is a snapshot of one data series held by a chart.
type Series struct {
	Values []float64
	// Meta holds the originating record of each value when the series was
	// added with AddRecords, and is nil otherwise.
	Meta  []map[string]any
	Style SeriesStyle
}

func (s Series) clone() Series {
	out := Series{
		Values: append([]float64(nil), s.Values...),
		Style:  s.Style,
	}
	if s.Meta != nil {
		out.Meta = make([]map[string]any, len(s.Meta))
		for i, m := range s.Meta {
			out.Meta[i] = maps.Clone(m)
		}
	}
	return out
}

func (s Series) meta(i int) map[string]any {
	if i < 0 || i >= len(s.Meta) {
		return nil
	}
	return s.Meta[i]
}

// AddValues appends a series of plain values. Non-finite values are
// rejected with an InputDataError and the series is not added.
func (c *Chart) AddValues(values []float64, style SeriesStyle) error {
	series := len(c.series)
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			err := &InputDataError{Reason: ReasonInvalidValue, Series: series, Index: i, Err: fmt.Errorf("value %v is not finite", v)}
			c.reporter.report(err)
			return err
		}
	}
	c.append(Series{Values: append([]float64(nil), values...), Style: style})
	return nil
}

// AddRecords appends a series of records, reading each value from the field
// named by Options.ValueKey. Every field of a record, the value included,
// is kept as metadata for hit-test results. A record without the value
// field, or with a value that is not numeric, fails the whole series with
// an InputDataError and nothing is added.
func (c *Chart) AddRecords(records []map[string]any, style SeriesStyle) error {
	series := len(c.series)
	s := Series{
		Values: make([]float64, len(records)),
		Meta:   make([]map[string]any, len(records)),
		Style:  style,
	}
	for i, rec := range records {
		raw, ok := rec[c.opts.ValueKey]
		if !ok {
			err := &InputDataError{Reason: ReasonMissingValueKey, Series: series, Index: i, Err: fmt.Errorf("no %q field", c.opts.ValueKey)}
			c.reporter.report(err)
			return err
		}
		v, perr := toFloat(raw)
		if perr != nil {
			err := &InputDataError{Reason: ReasonInvalidValue, Series: series, Index: i, Err: perr}
			c.reporter.report(err)
			return err
		}
		s.Values[i] = v
		s.Meta[i] = maps.Clone(rec)
	}
	c.append(s)
	return nil
}

func (c *Chart) append(s Series) {
	c.series = append(c.series, s)
	c.state = StateReady
	c.cache = nil
	Logger().WithField("series", len(c.series)-1).WithField("points", len(s.Values)).Debug("series added")
}

// SeriesData returns a copy of every series held by the chart.
func (c *Chart) SeriesData() []Series {
	out := make([]Series, len(c.series))
	for i, s := range c.series {
		out[i] = s.clone()
	}
	return out
}

// ClearSeries removes every series. The chart returns to its uninitialized
// state; the surface is left untouched.
func (c *Chart) ClearSeries() {
	c.series = nil
	c.cache = nil
	c.state = StateUninitialized
}

func toFloat(raw any) (float64, error) {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int8:
		v = float64(n)
	case int16:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint:
		v = float64(n)
	case uint8:
		v = float64(n)
	case uint16:
		v = float64(n)
	case uint32:
		v = float64(n)
	case uint64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("parsing %q: %w", n.String(), err)
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %q: %w", n, err)
		}
		v = f
	default:
		return 0, fmt.Errorf("unsupported value type %T", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %v is not finite", v)
	}
	return v, nil
}
