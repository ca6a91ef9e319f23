// Package xlsxdata loads the journal-classification workbook. The
// workbook layout (sheet names, column order) is fixed by the upstream
// publisher; anything off is a structural error, never a guess.
package xlsxdata

import (
	"fmt"
	"strings"

	"github.com/tsawler/tabula/xlsx"

	"github.com/quantpress/deskstat/pkg/deskstat/internalerr"
	"github.com/quantpress/deskstat/pkg/deskstat/similarity"
)

// Assignment links one journal to one field.
type Assignment struct {
	JournalID string
	FieldID   string
}

// Classification is the loaded workbook content.
type Classification struct {
	Fields      []similarity.Field
	Assignments []Assignment
}

// Load reads the classification workbook: a field table (code,
// description, area, abbreviation) and a journal table (journal id plus
// a multi-valued field-code cell).
func Load(path, fieldSheet, journalSheet string) (*Classification, error) {
	r, err := xlsx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer r.Close()

	fields, err := loadFields(r, fieldSheet)
	if err != nil {
		return nil, err
	}
	assignments, err := loadAssignments(r, journalSheet)
	if err != nil {
		return nil, err
	}
	return &Classification{Fields: fields, Assignments: assignments}, nil
}

func loadFields(r *xlsx.Reader, sheetName string) ([]similarity.Field, error) {
	sheet, err := r.SheetByName(sheetName)
	if err != nil {
		return nil, fmt.Errorf("field sheet %q not in workbook (have %v): %w",
			sheetName, r.SheetNames(), internalerr.ErrStructural)
	}
	if len(sheet.Rows) < 2 {
		return nil, fmt.Errorf("field sheet %q has no data rows: %w", sheetName, internalerr.ErrStructural)
	}
	if got := cell(sheet.Rows[0], 0); !strings.EqualFold(got, "Code") {
		return nil, fmt.Errorf("field sheet %q: first column is %q, want Code: %w",
			sheetName, got, internalerr.ErrStructural)
	}

	var fields []similarity.Field
	for _, row := range sheet.Rows[1:] {
		id := cell(row, 0)
		if id == "" {
			continue
		}
		fields = append(fields, similarity.Field{
			ID:          id,
			Description: cell(row, 1),
			Area:        cell(row, 2),
			Abbrev:      cell(row, 3),
		})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("field sheet %q yielded no fields: %w", sheetName, internalerr.ErrStructural)
	}
	return fields, nil
}

func loadAssignments(r *xlsx.Reader, sheetName string) ([]Assignment, error) {
	sheet, err := r.SheetByName(sheetName)
	if err != nil {
		return nil, fmt.Errorf("journal sheet %q not in workbook (have %v): %w",
			sheetName, r.SheetNames(), internalerr.ErrStructural)
	}
	if len(sheet.Rows) < 2 {
		return nil, fmt.Errorf("journal sheet %q has no data rows: %w", sheetName, internalerr.ErrStructural)
	}

	var out []Assignment
	for _, row := range sheet.Rows[1:] {
		journal := cell(row, 0)
		if journal == "" {
			continue
		}
		for _, id := range SplitCodes(cell(row, 1)) {
			out = append(out, Assignment{JournalID: journal, FieldID: id})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("journal sheet %q yielded no assignments: %w", sheetName, internalerr.ErrStructural)
	}
	return out, nil
}

// SplitCodes splits a multi-valued field-code cell ("1000; 2002;") into
// individual codes.
func SplitCodes(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Counter builds a similarity counter from the classification: every
// field registered, every journal's assignments counted once.
func (c *Classification) Counter() *similarity.Counter {
	counter := similarity.NewCounter()
	for _, f := range c.Fields {
		counter.RegisterField(f.ID)
	}

	byJournal := make(map[string][]string)
	var order []string
	for _, a := range c.Assignments {
		if _, ok := byJournal[a.JournalID]; !ok {
			order = append(order, a.JournalID)
		}
		byJournal[a.JournalID] = append(byJournal[a.JournalID], a.FieldID)
	}
	for _, j := range order {
		counter.AddJournal(byJournal[j])
	}
	return counter
}

func cell(row []xlsx.Cell, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col].Value)
}
