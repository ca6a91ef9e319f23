// Package render writes report tables and numeric chart series. All
// styling flows through an explicit Theme value passed per call; there
// is no process-wide default to mutate.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Theme configures rendering for one call. The zero value is unusable;
// start from DefaultTheme.
type Theme struct {
	FloatFormat string // strconv format verb for floats, e.g. "%.3f"
	NullText    string // written for empty cells
	InfText     string // written for infinite distances
}

// DefaultTheme returns the house style.
func DefaultTheme() Theme {
	return Theme{
		FloatFormat: "%.3f",
		NullText:    "-",
		InfText:     "unreachable",
	}
}

// Table is a rendered-ready result table.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// AddRow appends one row, padding or truncating to the column count.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	t.Rows = append(t.Rows, row)
}

// Markdown renders the table as a GitHub-style markdown table.
func (t Table) Markdown(th Theme) string {
	var b strings.Builder

	writeRow := func(cells []string) {
		b.WriteString("|")
		for i := range t.Columns {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if cell == "" {
				cell = th.NullText
			}
			b.WriteString(" ")
			b.WriteString(escapeCell(cell))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(t.Columns)
	b.WriteString("|")
	for range t.Columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(row)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Float formats a float per the theme. Infinities render as the
// theme's marker instead of leaking "+Inf" into reports.
func (th Theme) Float(v float64) string {
	if v > maxFinite || v < -maxFinite {
		return th.InfText
	}
	return fmt.Sprintf(th.FloatFormat, v)
}

// Int formats an integer cell.
func (th Theme) Int(v int64) string {
	return strconv.FormatInt(v, 10)
}

const maxFinite = 1.7976931348623157e308

// Series is one numeric chart series handed to the external plotter.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// WriteTSV writes the series as tab-separated x/y pairs, the exchange
// format the plotting collaborator consumes.
func (s Series) WriteTSV(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s\n", s.Name); err != nil {
		return err
	}
	for i := range s.X {
		y := 0.0
		if i < len(s.Y) {
			y = s.Y[i]
		}
		if _, err := fmt.Fprintf(w, "%g\t%g\n", s.X[i], y); err != nil {
			return err
		}
	}
	return nil
}
