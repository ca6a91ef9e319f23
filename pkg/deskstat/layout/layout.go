// Package layout reconstructs tabular rows from positioned text tokens
// produced by a PDF layout extractor. The reconstruction is two-phase:
// column anchors are derived from a labeled header row, then every token
// is classified by nearest-anchor lookup and an explicit row-continuation
// predicate. No coordinate constants are hard-coded; they are a property
// of the source document, not of this package.
package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quantpress/deskstat/pkg/deskstat/internalerr"
)

// Token is one positioned text fragment on a page. Y grows downward in
// reading order; callers adapting extractors with bottom-up coordinates
// must flip Y before handing tokens over.
type Token struct {
	Page int
	X    float64
	Y    float64
	Text string
}

// Column pairs a column name with its anchor x-coordinate, taken from
// the position of the column's header label.
type Column struct {
	Name string
	X    float64
}

// Anchors is the ordered set of column anchors for one table, leftmost
// first. The leftmost column doubles as the row-boundary signal: a token
// at its x-coordinate starts a new row.
type Anchors struct {
	Columns []Column
}

// coordTol absorbs sub-point jitter in extractor output when comparing
// x-coordinates against anchors.
const coordTol = 0.5

// Row is one reconstructed table row: column name to cell text. Missing
// cells are absent from the map; callers treat "" and absent alike.
type Row map[string]string

// DeriveAnchors locates the header row (the row whose leftmost token
// matches labels[0], the header sentinel) and returns one anchor per
// label, positioned at that label's token. It fails with a structural
// error when the sentinel is absent or the header is incomplete:
// silently proceeding would reconstruct nothing but preamble.
func DeriveAnchors(tokens []Token, labels []string) (Anchors, error) {
	if len(labels) == 0 {
		return Anchors{}, fmt.Errorf("derive anchors: no column labels given: %w", internalerr.ErrInvalidInput)
	}

	sorted := sortTokens(tokens)
	rows := groupByLine(sorted)

	for _, line := range rows {
		if strings.TrimSpace(line[0].Text) != labels[0] {
			continue
		}
		anchors, err := matchHeader(line, labels)
		if err != nil {
			return Anchors{}, err
		}
		return anchors, nil
	}

	return Anchors{}, fmt.Errorf("derive anchors: header sentinel %q not found on any page: %w",
		labels[0], internalerr.ErrStructural)
}

func matchHeader(line []Token, labels []string) (Anchors, error) {
	var a Anchors
	next := 0
	for _, tok := range line {
		if next >= len(labels) {
			break
		}
		if strings.TrimSpace(tok.Text) == labels[next] {
			a.Columns = append(a.Columns, Column{Name: labels[next], X: tok.X})
			next++
		}
	}
	if next != len(labels) {
		return Anchors{}, fmt.Errorf("derive anchors: header row matched %d of %d labels: %w",
			next, len(labels), internalerr.ErrStructural)
	}
	return a, nil
}

// Reconstruct assigns every token to a row and column. A new row begins
// whenever a token sits at the leftmost anchor; a token's column is the
// rightmost anchor at or to its left. Everything before the first header
// row is preamble and is skipped, and header repeats on later pages are
// dropped rather than emitted as data rows.
func Reconstruct(tokens []Token, a Anchors) ([]Row, error) {
	if len(a.Columns) == 0 {
		return nil, fmt.Errorf("reconstruct: empty anchor set: %w", internalerr.ErrInvalidInput)
	}

	sentinel := a.Columns[0].Name
	leftX := a.Columns[0].X

	sorted := sortTokens(tokens)
	lines := groupByLine(sorted)

	var rows []Row
	var current Row
	seenHeader := false

	for _, line := range lines {
		first := strings.TrimSpace(line[0].Text)
		atLeft := nearAnchor(line[0].X, leftX)

		if atLeft && first == sentinel {
			// Header row, or a repeat of it on a later page.
			seenHeader = true
			continue
		}
		if !seenHeader {
			continue // preamble
		}

		if atLeft {
			if current != nil {
				rows = append(rows, current)
			}
			current = Row{}
		}
		if current == nil {
			// Data before any row boundary: wrapped text belonging to
			// a row that started above the header repeat. Treat as a
			// fresh row rather than dropping it.
			current = Row{}
		}

		for _, tok := range line {
			col := columnFor(tok.X, a)
			appendCell(current, col, tok.Text)
		}
	}
	if current != nil {
		rows = append(rows, current)
	}

	if !seenHeader {
		return nil, fmt.Errorf("reconstruct: header sentinel %q never seen: %w",
			sentinel, internalerr.ErrStructural)
	}
	return rows, nil
}

// ContinuationFunc reports whether cur is a continuation of prev: a
// physical row carrying wrapped text for the same logical row.
type ContinuationFunc func(prev, cur Row) bool

// DateRangeContinuation builds the continuation predicate used for the
// diary tables: a row continues the previous one when its time column is
// empty and the date cell is part of a hyphenated range split across
// lines (either side of the hyphen may carry the dangling half).
func DateRangeContinuation(dateCol, timeCol string) ContinuationFunc {
	return func(prev, cur Row) bool {
		if strings.TrimSpace(cur[timeCol]) != "" {
			return false
		}
		p := strings.TrimSpace(prev[dateCol])
		c := strings.TrimSpace(cur[dateCol])
		if c == "" {
			return true // pure wrap, no date fragment at all
		}
		return strings.HasSuffix(p, "-") || strings.HasPrefix(c, "-")
	}
}

// MergeContinuations folds continuation rows into their logical
// predecessor, concatenating per-column text with a space. The logical
// row count only advances on non-continuation rows.
func MergeContinuations(rows []Row, continues ContinuationFunc) []Row {
	var out []Row
	for _, r := range rows {
		if len(out) > 0 && continues(out[len(out)-1], r) {
			merged := out[len(out)-1]
			for col, text := range r {
				appendCell(merged, col, text)
			}
			continue
		}
		// Copy so merging never aliases the caller's rows.
		cp := Row{}
		for col, text := range r {
			cp[col] = text
		}
		out = append(out, cp)
	}
	return out
}

func appendCell(r Row, col, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if existing, ok := r[col]; ok && existing != "" {
		r[col] = existing + " " + text
	} else {
		r[col] = text
	}
}

// columnFor returns the name of the greatest anchor at or to the left
// of x. Tokens left of the first anchor clamp to the first column.
func columnFor(x float64, a Anchors) string {
	name := a.Columns[0].Name
	for _, c := range a.Columns {
		if x+coordTol >= c.X {
			name = c.Name
		} else {
			break
		}
	}
	return name
}

func nearAnchor(x, anchor float64) bool {
	d := x - anchor
	return d >= -coordTol && d <= coordTol
}

func sortTokens(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	copy(out, tokens)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// groupByLine splits sorted tokens into physical lines: runs sharing a
// page and y-coordinate within tolerance.
func groupByLine(sorted []Token) [][]Token {
	var lines [][]Token
	for _, tok := range sorted {
		if strings.TrimSpace(tok.Text) == "" {
			continue
		}
		if n := len(lines); n > 0 {
			last := lines[n-1][0]
			if last.Page == tok.Page && tok.Y-last.Y <= coordTol {
				lines[n-1] = append(lines[n-1], tok)
				continue
			}
		}
		lines = append(lines, []Token{tok})
	}
	return lines
}
