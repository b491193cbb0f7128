package backend

import (
	"slices"
	"testing"
)

func makeTestSeries(t *testing.T, sampleCount int) (*Series, float64) {
	t.Helper()
	s := NewSeries("test")
	expectedSum := float64(0)
	for i := 0; i < sampleCount; i++ {
		v := float64(i%4) - 1
		s.Insert(v)
		expectedSum += v
	}
	return s, expectedSum
}

func TestSeriesRange(t *testing.T) {
	s, expectedSum := makeTestSeries(t, 10)
	if s.Len() != 10 {
		t.Errorf("expected 10 values, got %d", s.Len())
	}
	lo, hi, ok := s.Range()
	if !ok {
		t.Fatalf("expected a range")
	}
	if lo != -1 || hi != 2 {
		t.Errorf("expected range [-1, 2], got [%f, %f]", lo, hi)
	}
	if expected := expectedSum / 10; s.Mean() != expected {
		t.Errorf("expected mean %f, got %f", expected, s.Mean())
	}
}

func TestSeriesEmpty(t *testing.T) {
	s := NewSeries("empty")
	if _, _, ok := s.Range(); ok {
		t.Errorf("empty series should have no range")
	}
	if s.Mean() != 0 {
		t.Errorf("expected zero mean, got %f", s.Mean())
	}
	if s.Len() != 0 {
		t.Errorf("expected no values, got %d", s.Len())
	}
}

func TestRecordSeriesCopiesRecords(t *testing.T) {
	records := []map[string]any{{"value": 1.0}, {"value": 2.0, "note": "peak"}}
	s := NewRecordSeries("records", records)
	records[1]["note"] = "changed"

	if s.Len() != 2 {
		t.Errorf("expected 2 records, got %d", s.Len())
	}
	if s.Values() != nil {
		t.Errorf("record series should hold no plain values")
	}
	if note := s.Records()[1]["note"]; note != "peak" {
		t.Errorf("expected the series to keep its own copy, got note %v", note)
	}
}

func TestDatasetLabels(t *testing.T) {
	a, _ := makeTestSeries(t, 3)
	b, _ := makeTestSeries(t, 5)
	d := Dataset{Labels: []string{"mon", "tue"}, Series: []*Series{a, b}}
	if d.Len() != 5 {
		t.Errorf("expected the longest series length 5, got %d", d.Len())
	}
	got := []string{d.Label(0), d.Label(1), d.Label(4)}
	if expected := []string{"mon", "tue", "4"}; !slices.Equal(got, expected) {
		t.Errorf("expected labels %v, got %v", expected, got)
	}
}
