package backend

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is a supported data file format.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatJSON
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// FormatOf guesses the format of a file from its name.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".tsv", ".txt":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatUnknown
	}
}

// Load reads the data file at path.
func Load(path string) (Dataset, error) {
	return load(path, false)
}

// loadGrowing is Load for a file that may still be being written. A CSV row
// without its newline is left for the next reload.
func loadGrowing(path string) (Dataset, error) {
	return load(path, true)
}

func load(path string, growing bool) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed opening data file: %w", err)
	}
	defer f.Close()
	return decode(f, path, growing)
}

// Decode reads a dataset from r. The format is chosen from the extension of
// name, or sniffed from the content when the extension is not recognized.
func Decode(r io.Reader, name string) (Dataset, error) {
	return decode(r, name, false)
}

func decode(r io.Reader, name string, growing bool) (Dataset, error) {
	br := bufio.NewReader(r)
	format := FormatOf(name)
	if format == FormatUnknown {
		format = sniff(br)
	}
	var (
		d   Dataset
		err error
	)
	switch format {
	case FormatJSON:
		d, err = ReadJSON(br)
	case FormatXLSX:
		d, err = ReadXLSX(br, "")
	default:
		if growing {
			d, err = ReadCSV(NewLineReader(br))
		} else {
			d, err = ReadCSV(br)
		}
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("failed reading %s data from %q: %w", format, name, err)
	}
	d.Source = name
	return d, nil
}

func sniff(br *bufio.Reader) Format {
	head, _ := br.Peek(512)
	trimmed := bytes.TrimSpace(head)
	switch {
	case bytes.HasPrefix(head, []byte("PK\x03\x04")):
		return FormatXLSX
	case len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{'):
		return FormatJSON
	default:
		return FormatCSV
	}
}

// ReadCSV reads comma separated columns. The first row names the series.
// A first column holding anything other than numbers is taken as the labels
// of the entries. A column may end early with empty cells, but a gap inside
// a column is an error since it would shift the entries after it. Wrap r in
// NewLineReader to skip a last row that has no newline yet.
func ReadCSV(r io.Reader) (Dataset, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	rows, err := csvReader.ReadAll()
	if err != nil {
		return Dataset{}, err
	}
	return fromTable(rows)
}

// ReadXLSX reads the columns of a spreadsheet sheet the way ReadCSV reads
// a file. An empty sheet name selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()
	return readSheet(f, sheet)
}

// LoadXLSX is ReadXLSX for a file on disk.
func LoadXLSX(path, sheet string) (Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed opening workbook: %w", err)
	}
	defer f.Close()
	d, err := readSheet(f, sheet)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed reading %q: %w", path, err)
	}
	d.Source = path
	return d, nil
}

func readSheet(f *excelize.File, sheet string) (Dataset, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Dataset{}, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Dataset{}, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return fromTable(rows)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// fromTable turns rows of cells into a dataset, one series per column.
func fromTable(rows [][]string) (Dataset, error) {
	if len(rows) == 0 {
		return Dataset{}, errors.New("no heading row")
	}
	headings, data := rows[0], rows[1:]
	var d Dataset

	first := 0
	for _, row := range data {
		if c := cell(row, 0); c != "" {
			if _, err := strconv.ParseFloat(c, 64); err != nil {
				first = 1
				break
			}
		}
	}
	if first == 1 {
		d.Labels = make([]string, len(data))
		for i, row := range data {
			d.Labels[i] = cell(row, 0)
		}
	}

	for col := first; col < len(headings); col++ {
		name := cell(headings, col)
		if name == "" {
			name = fmt.Sprintf("series %d", col-first+1)
		}
		s := NewSeries(name)
		gap := -1
		for i, row := range data {
			c := cell(row, col)
			if c == "" {
				if gap < 0 {
					gap = i
				}
				continue
			}
			if gap >= 0 {
				return Dataset{}, fmt.Errorf("row %d, column %q: missing value", gap+2, name)
			}
			v, err := strconv.ParseFloat(c, 64)
			if err != nil {
				return Dataset{}, fmt.Errorf("row %d, column %q: %w", i+2, name, err)
			}
			s.Insert(v)
		}
		if s.Len() == 0 {
			Logger().WithField("column", name).Info("skipping empty column")
			continue
		}
		d.Series = append(d.Series, s)
	}
	if len(d.Series) == 0 {
		return Dataset{}, errors.New("no numeric columns")
	}
	return d, nil
}

// ReadJSON reads series from JSON. Accepted shapes are a single array of
// numbers or of records, an array of such arrays, or an object mapping
// series names to arrays. Records are kept whole; the chart extracts their
// values.
func ReadJSON(r io.Reader) (Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return Dataset{}, err
	}
	var d Dataset
	switch v := doc.(type) {
	case []any:
		if len(v) > 0 {
			if _, nested := v[0].([]any); nested {
				for i, entry := range v {
					s, err := jsonSeries(fmt.Sprintf("series %d", i+1), entry)
					if err != nil {
						return Dataset{}, err
					}
					d.Series = append(d.Series, s)
				}
				break
			}
		}
		s, err := jsonSeries("series 1", v)
		if err != nil {
			return Dataset{}, err
		}
		d.Series = append(d.Series, s)
	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			s, err := jsonSeries(name, v[name])
			if err != nil {
				return Dataset{}, err
			}
			d.Series = append(d.Series, s)
		}
	default:
		return Dataset{}, fmt.Errorf("expected an array or object, got %T", doc)
	}
	d.Series = slices.DeleteFunc(d.Series, func(s *Series) bool { return s.Len() == 0 })
	if len(d.Series) == 0 {
		return Dataset{}, errors.New("no series")
	}
	return d, nil
}

func jsonSeries(name string, raw any) (*Series, error) {
	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("series %q: expected an array, got %T", name, raw)
	}
	if len(entries) > 0 {
		if _, isRecord := entries[0].(map[string]any); isRecord {
			records := make([]map[string]any, len(entries))
			for i, e := range entries {
				rec, ok := e.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("series %q, entry %d: expected a record, got %T", name, i, e)
				}
				records[i] = rec
			}
			return NewRecordSeries(name, records), nil
		}
	}
	s := NewSeries(name)
	for i, e := range entries {
		n, ok := e.(json.Number)
		if !ok {
			return nil, fmt.Errorf("series %q, entry %d: expected a number, got %T", name, i, e)
		}
		v, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("series %q, entry %d: %w", name, i, err)
		}
		s.Insert(v)
	}
	return s, nil
}
