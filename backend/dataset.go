package backend

import (
	"fmt"

	"git.sr.ht/~whereswaldon/linegraph/chart"
)

// Dataset is the content of one data file.
type Dataset struct {
	// Source names where the data was read from.
	Source string
	// Labels holds the index column of tabular data, if there was one.
	Labels []string
	Series []*Series
}

// Initialized reports whether the dataset holds anything to plot.
func (d *Dataset) Initialized() bool {
	return len(d.Series) > 0
}

// Len returns the length of the longest series.
func (d *Dataset) Len() int {
	n := 0
	for _, s := range d.Series {
		n = max(n, s.Len())
	}
	return n
}

// Label returns the label of entry i, or its index when the data had no
// index column.
func (d *Dataset) Label(i int) string {
	if i >= 0 && i < len(d.Labels) {
		return d.Labels[i]
	}
	return fmt.Sprint(i)
}

// Plot adds every series to c. Series are colored from palette in turn; an
// empty palette leaves the chart colors in effect.
func (d *Dataset) Plot(c *chart.Chart, palette []chart.Color) error {
	for i, s := range d.Series {
		var style chart.SeriesStyle
		if len(palette) > 0 {
			style.Line = palette[i%len(palette)]
		}
		var err error
		if s.Records() != nil {
			err = c.AddRecords(s.Records(), style)
		} else {
			err = c.AddValues(s.Values(), style)
		}
		if err != nil {
			return fmt.Errorf("plotting %q: %w", s.Name(), err)
		}
	}
	return nil
}
