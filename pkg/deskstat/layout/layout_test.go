package layout

import (
	"errors"
	"testing"

	"github.com/quantpress/deskstat/pkg/deskstat/internalerr"
)

var diaryLabels = []string{"Date", "Time", "Meeting", "Location", "With", "Portfolio"}

// headerTokens lays out a header row at the given page and y, using the
// anchor geometry of the reference document.
func headerTokens(page int, y float64) []Token {
	xs := []float64{72, 149, 235, 390, 504, 630}
	var out []Token
	for i, label := range diaryLabels {
		out = append(out, Token{Page: page, X: xs[i], Y: y, Text: label})
	}
	return out
}

func TestDeriveAnchors(t *testing.T) {
	tokens := []Token{
		{Page: 1, X: 72, Y: 10, Text: "Ministerial Diary"},
		{Page: 1, X: 72, Y: 20, Text: "January 2020"},
	}
	tokens = append(tokens, headerTokens(1, 30)...)

	a, err := DeriveAnchors(tokens, diaryLabels)
	if err != nil {
		t.Fatalf("DeriveAnchors: %v", err)
	}
	if len(a.Columns) != 6 {
		t.Fatalf("want 6 anchors, got %d", len(a.Columns))
	}
	if a.Columns[0].Name != "Date" || a.Columns[0].X != 72 {
		t.Errorf("leftmost anchor = %+v", a.Columns[0])
	}
	if a.Columns[5].Name != "Portfolio" || a.Columns[5].X != 630 {
		t.Errorf("rightmost anchor = %+v", a.Columns[5])
	}
}

func TestDeriveAnchorsMissingSentinel(t *testing.T) {
	tokens := []Token{
		{Page: 1, X: 72, Y: 10, Text: "No header anywhere"},
	}
	_, err := DeriveAnchors(tokens, diaryLabels)
	if !errors.Is(err, internalerr.ErrStructural) {
		t.Fatalf("want structural error, got %v", err)
	}
}

func TestDeriveAnchorsIncompleteHeader(t *testing.T) {
	tokens := []Token{
		{Page: 1, X: 72, Y: 30, Text: "Date"},
		{Page: 1, X: 149, Y: 30, Text: "Time"},
	}
	_, err := DeriveAnchors(tokens, diaryLabels)
	if !errors.Is(err, internalerr.ErrStructural) {
		t.Fatalf("want structural error, got %v", err)
	}
}

func TestReconstructTwoRows(t *testing.T) {
	tokens := headerTokens(1, 30)
	tokens = append(tokens,
		Token{Page: 1, X: 72, Y: 40, Text: "1 July"},
		Token{Page: 1, X: 149, Y: 40, Text: "9.00am"},
		Token{Page: 1, X: 235, Y: 40, Text: "Cabinet"},
		Token{Page: 1, X: 72, Y: 50, Text: "2 July"},
		Token{Page: 1, X: 149, Y: 50, Text: "10.00am"},
		Token{Page: 1, X: 235, Y: 50, Text: "Party room"},
	)

	a, err := DeriveAnchors(tokens, diaryLabels)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := Reconstruct(tokens, a)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d: %v", len(rows), rows)
	}
	if rows[0]["Date"] != "1 July" || rows[0]["Meeting"] != "Cabinet" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1]["Date"] != "2 July" || rows[1]["Time"] != "10.00am" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestReconstructMultiTokenCellAndWrap(t *testing.T) {
	tokens := headerTokens(1, 30)
	tokens = append(tokens,
		Token{Page: 1, X: 72, Y: 40, Text: "1 July"},
		Token{Page: 1, X: 235, Y: 40, Text: "Meeting with"},
		Token{Page: 1, X: 300, Y: 40, Text: "stakeholders"},
		// Wrapped line: does not start at the leftmost anchor, so it
		// belongs to the same physical row.
		Token{Page: 1, X: 235, Y: 48, Text: "and officials"},
	)

	a, _ := DeriveAnchors(tokens, diaryLabels)
	rows, err := Reconstruct(tokens, a)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("want 1 row, got %d", len(rows))
	}
	if rows[0]["Meeting"] != "Meeting with stakeholders and officials" {
		t.Errorf("Meeting = %q", rows[0]["Meeting"])
	}
}

func TestReconstructSkipsPreambleAndHeaderRepeats(t *testing.T) {
	tokens := []Token{
		{Page: 1, X: 72, Y: 10, Text: "Ministerial Diary"},
	}
	tokens = append(tokens, headerTokens(1, 30)...)
	tokens = append(tokens,
		Token{Page: 1, X: 72, Y: 40, Text: "1 July"},
		Token{Page: 1, X: 149, Y: 40, Text: "9.00am"},
	)
	// Header repeats on page 2.
	tokens = append(tokens, headerTokens(2, 10)...)
	tokens = append(tokens,
		Token{Page: 2, X: 72, Y: 20, Text: "2 July"},
		Token{Page: 2, X: 149, Y: 20, Text: "3.00pm"},
	)

	a, _ := DeriveAnchors(tokens, diaryLabels)
	rows, err := Reconstruct(tokens, a)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d: %v", len(rows), rows)
	}
	for _, r := range rows {
		if r["Date"] == "Date" {
			t.Errorf("header repeat leaked into data rows: %v", r)
		}
	}
}

func TestReconstructMissingHeaderFailsLoudly(t *testing.T) {
	a := Anchors{Columns: []Column{{Name: "Date", X: 72}, {Name: "Time", X: 149}}}
	tokens := []Token{
		{Page: 1, X: 72, Y: 40, Text: "1 July"},
	}
	_, err := Reconstruct(tokens, a)
	if !errors.Is(err, internalerr.ErrStructural) {
		t.Fatalf("want structural error when sentinel never seen, got %v", err)
	}
}

func TestMergeContinuations(t *testing.T) {
	rows := []Row{
		{"Date": "6-", "Time": "9.00am", "Meeting": "Visit"},
		{"Date": "7 July", "Meeting": "(continued)"},
		{"Date": "8 July", "Time": "2.00pm", "Meeting": "Cabinet"},
	}
	merged := MergeContinuations(rows, DateRangeContinuation("Date", "Time"))
	if len(merged) != 2 {
		t.Fatalf("want 2 logical rows, got %d: %v", len(merged), merged)
	}
	if merged[0]["Date"] != "6- 7 July" {
		t.Errorf("merged date = %q", merged[0]["Date"])
	}
	if merged[0]["Meeting"] != "Visit (continued)" {
		t.Errorf("merged meeting = %q", merged[0]["Meeting"])
	}
	if merged[1]["Date"] != "8 July" {
		t.Errorf("rows after a continuation must be untouched: %v", merged[1])
	}
}

func TestMergeContinuationsDoesNotMergeCompleteRows(t *testing.T) {
	rows := []Row{
		{"Date": "6 July", "Time": "9.00am"},
		{"Date": "7 July", "Time": "10.00am"},
	}
	merged := MergeContinuations(rows, DateRangeContinuation("Date", "Time"))
	if len(merged) != 2 {
		t.Fatalf("want 2 rows, got %d", len(merged))
	}
}
