package frame

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ErrParse marks content that could not be read as CSV.
var ErrParse = errors.New("malformed CSV")

var missingMarkers = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReadCSV parses comma-separated content whose first record is the header.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no columns to parse", ErrParse)
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	return build(dedupeHeader(header), records[1:]), nil
}

// ParseCSV is ReadCSV over an in-memory buffer
func ParseCSV(data []byte) (*Frame, error) {
	return ReadCSV(bytes.NewReader(data))
}

func dedupeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n := seen[name]; n > 0 {
			candidate := fmt.Sprintf("%s.%d", name, n)
			for seen[candidate] > 0 {
				n++
				candidate = fmt.Sprintf("%s.%d", name, n)
			}
			seen[name] = n + 1
			name = candidate
		}
		seen[name]++
		names[i] = name
	}
	return names
}

func build(header []string, records [][]string) *Frame {
	f := &Frame{
		columns: make([]*Column, len(header)),
		index:   make(map[string]int, len(header)),
		rows:    len(records),
	}

	for i, name := range header {
		col := &Column{
			Name:  name,
			cells: make([]string, len(records)),
			null:  make([]bool, len(records)),
		}
		for row, rec := range records {
			col.cells[row] = rec[i]
			col.null[row] = missingMarkers[rec[i]]
		}
		col.Kind = inferKind(col)
		if col.Kind.Numeric() {
			col.nums = make([]float64, len(records))
			for row, cell := range col.cells {
				if !col.null[row] {
					col.nums[row], _ = strconv.ParseFloat(strings.TrimSpace(cell), 64)
				}
			}
		}
		f.columns[i] = col
		f.index[name] = i
	}

	return f
}

func inferKind(col *Column) Kind {
	isInt, isFloat, isTime := true, true, true
	seen := false

	for row, cell := range col.cells {
		if col.null[row] {
			continue
		}
		seen = true
		v := strings.TrimSpace(cell)
		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isFloat = false
			}
		}
		if isTime {
			if _, ok := parseTimestamp(v); !ok {
				isTime = false
			}
		}
		if !isInt && !isFloat && !isTime {
			return KindText
		}
	}

	switch {
	case !seen:
		return KindFloat
	case isInt:
		return KindInt
	case isFloat:
		return KindFloat
	case isTime:
		return KindTimestamp
	default:
		return KindText
	}
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// WriteCSV encodes the frame back to CSV using the original cell text
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Columns()); err != nil {
		return err
	}
	record := make([]string, len(f.columns))
	for row := 0; row < f.rows; row++ {
		for i, c := range f.columns {
			record[i] = c.cells[row]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
