package backend

import "maps"

// Series is one column of loaded data.
type Series struct {
	name    string
	values  []float64
	records []map[string]any
	// rangeMin and rangeMax are only meaningful once values were inserted.
	rangeMin, rangeMax float64
	sum                float64
}

func NewSeries(name string) *Series {
	return &Series{name: name}
}

// NewRecordSeries returns a series of records whose values are extracted
// by the chart through its value key.
func NewRecordSeries(name string, records []map[string]any) *Series {
	s := &Series{name: name, records: make([]map[string]any, len(records))}
	for i, r := range records {
		s.records[i] = maps.Clone(r)
	}
	return s
}

func (s *Series) Name() string {
	return s.name
}

// Len returns the number of entries in the series.
func (s *Series) Len() int {
	if s.records != nil {
		return len(s.records)
	}
	return len(s.values)
}

// Values returns the plain values of the series. It is nil for record
// series.
func (s *Series) Values() []float64 {
	return s.values
}

// Records returns the records of a record series, or nil.
func (s *Series) Records() []map[string]any {
	return s.records
}

// Range returns the extremes of the plain values. ok is false when there
// are none.
func (s *Series) Range() (lo, hi float64, ok bool) {
	if len(s.values) == 0 {
		return 0, 0, false
	}
	return s.rangeMin, s.rangeMax, true
}

// Mean returns the average of the plain values, or zero.
func (s *Series) Mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.sum / float64(len(s.values))
}

// Insert appends a value to the series.
func (s *Series) Insert(v float64) {
	if len(s.values) < 1 {
		s.rangeMin = v
		s.rangeMax = v
	} else {
		s.rangeMin = min(s.rangeMin, v)
		s.rangeMax = max(s.rangeMax, v)
	}
	s.values = append(s.values, v)
	s.sum += v
}
