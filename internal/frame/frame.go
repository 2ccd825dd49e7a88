// Package frame holds CSV content retrieved from HDFS as typed columns
// and provides the inspection helpers behind "hdfs sample" and "hdfs stats".
package frame

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindTimestamp
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTimestamp:
		return "timestamp"
	default:
		return "text"
	}
}

// Numeric reports whether values of this kind take part in Sum and Describe.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Column is one named, typed column. Cells keep their original text.
type Column struct {
	Name string
	Kind Kind

	cells []string
	null  []bool
	nums  []float64 // parsed values for numeric kinds, zero where null
}

// Len returns the number of cells
func (c *Column) Len() int {
	return len(c.cells)
}

// Value returns the original text of cell i
func (c *Column) Value(i int) string {
	return c.cells[i]
}

// IsNull reports whether cell i held a missing-value marker
func (c *Column) IsNull(i int) bool {
	return c.null[i]
}

// Missing returns the number of null cells
func (c *Column) Missing() int {
	n := 0
	for _, null := range c.null {
		if null {
			n++
		}
	}
	return n
}

// Floats returns the non-null values of a numeric column in row order.
// It returns nil for non-numeric columns.
func (c *Column) Floats() []float64 {
	if !c.Kind.Numeric() {
		return nil
	}
	out := make([]float64, 0, len(c.nums))
	for i, v := range c.nums {
		if !c.null[i] {
			out = append(out, v)
		}
	}
	return out
}

// Sum adds the non-null values of a numeric column
func (c *Column) Sum() float64 {
	var sum float64
	for _, v := range c.Floats() {
		sum += v
	}
	return sum
}

func (c *Column) slice(n int) *Column {
	out := &Column{
		Name:  c.Name,
		Kind:  c.Kind,
		cells: c.cells[:n],
		null:  c.null[:n],
	}
	if c.nums != nil {
		out.nums = c.nums[:n]
	}
	return out
}

// Frame is an ordered set of equally long columns.
type Frame struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// Shape returns (rows, columns)
func (f *Frame) Shape() (int, int) {
	return f.rows, len(f.columns)
}

// Rows returns the number of data rows
func (f *Frame) Rows() int {
	return f.rows
}

// Columns returns the column names in order
func (f *Frame) Columns() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name
func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.columns[i], true
}

// ColumnAt returns the i-th column
func (f *Frame) ColumnAt(i int) *Column {
	return f.columns[i]
}

// Head returns a frame with at most n leading rows.
// A negative n returns the whole frame.
func (f *Frame) Head(n int) *Frame {
	if n < 0 || n >= f.rows {
		return f
	}
	cols := make([]*Column, len(f.columns))
	for i, c := range f.columns {
		cols[i] = c.slice(n)
	}
	return &Frame{columns: cols, index: f.index, rows: n}
}

// MissingCount is the number of null cells in a column
type MissingCount struct {
	Name  string
	Count int
}

// Missing returns the null count of every column, in column order
func (f *Frame) Missing() []MissingCount {
	out := make([]MissingCount, len(f.columns))
	for i, c := range f.columns {
		out[i] = MissingCount{Name: c.Name, Count: c.Missing()}
	}
	return out
}

// Render writes up to n rows as an aligned table with a leading row index.
// A negative n renders every row.
func (f *Frame) Render(w io.Writer, n int) error {
	head := f.Head(n)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(head.Columns(), "\t"))
	for row := 0; row < head.rows; row++ {
		cells := make([]string, len(head.columns))
		for i, c := range head.columns {
			if c.null[row] {
				cells[i] = "NaN"
			} else {
				cells[i] = c.cells[row]
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t\n", row, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}

// RenderKinds writes one "name  kind" line per column
func (f *Frame) RenderKinds(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range f.columns {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.Kind)
	}
	return tw.Flush()
}

// RenderMissing writes one "name  count" line per column
func (f *Frame) RenderMissing(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, m := range f.Missing() {
		fmt.Fprintf(tw, "%s\t%d\n", m.Name, m.Count)
	}
	return tw.Flush()
}
