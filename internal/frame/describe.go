package frame

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Summary holds the descriptive statistics of one numeric column.
// Every field except Count is NaN when the column has no values.
type Summary struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// TextSummary holds count/unique/top/freq for a non-numeric column
type TextSummary struct {
	Name   string
	Count  int
	Unique int
	Top    string
	Freq   int
}

// Describe summarizes every numeric column in column order.
func (f *Frame) Describe() []Summary {
	var out []Summary
	for _, c := range f.columns {
		if c.Kind.Numeric() {
			out = append(out, summarize(c.Name, c.Floats()))
		}
	}
	return out
}

func summarize(name string, values []float64) Summary {
	s := Summary{Name: name, Count: len(values)}
	nan := math.NaN()
	if len(values) == 0 {
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	s.Mean = sum / float64(len(sorted))

	s.Std = nan
	if len(sorted) > 1 {
		var sq float64
		for _, v := range sorted {
			d := v - s.Mean
			sq += d * d
		}
		s.Std = math.Sqrt(sq / float64(len(sorted)-1))
	}

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q25 = quantile(sorted, 0.25)
	s.Q50 = quantile(sorted, 0.50)
	s.Q75 = quantile(sorted, 0.75)
	return s
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// DescribeText summarizes every non-numeric column in column order.
// Ties for the most frequent value go to the value seen first.
func (f *Frame) DescribeText() []TextSummary {
	var out []TextSummary
	for _, c := range f.columns {
		if c.Kind.Numeric() {
			continue
		}
		ts := TextSummary{Name: c.Name}
		counts := make(map[string]int)
		for row, cell := range c.cells {
			if c.null[row] {
				continue
			}
			ts.Count++
			counts[cell]++
			if n := counts[cell]; n > ts.Freq {
				ts.Top, ts.Freq = cell, n
			}
		}
		ts.Unique = len(counts)
		out = append(out, ts)
	}
	return out
}

// RenderDescribe writes the numeric summary with one column per input column
// and one row per statistic.
func RenderDescribe(w io.Writer, summaries []Summary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "no numeric columns")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	names := make([]string, len(summaries))
	for i, s := range summaries {
		names[i] = s.Name
	}
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(names, "\t"))

	stats := []struct {
		label string
		get   func(Summary) float64
	}{
		{"count", func(s Summary) float64 { return float64(s.Count) }},
		{"mean", func(s Summary) float64 { return s.Mean }},
		{"std", func(s Summary) float64 { return s.Std }},
		{"min", func(s Summary) float64 { return s.Min }},
		{"25%", func(s Summary) float64 { return s.Q25 }},
		{"50%", func(s Summary) float64 { return s.Q50 }},
		{"75%", func(s Summary) float64 { return s.Q75 }},
		{"max", func(s Summary) float64 { return s.Max }},
	}
	for _, st := range stats {
		cells := make([]string, len(summaries))
		for i, s := range summaries {
			cells[i] = formatStat(st.get(s))
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", st.label, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// RenderDescribeText writes the text summary, one line per column
func RenderDescribeText(w io.Writer, summaries []TextSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "column\tcount\tunique\ttop\tfreq")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\n", s.Name, s.Count, s.Unique, s.Top, s.Freq)
	}
	return tw.Flush()
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
