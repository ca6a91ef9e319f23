package diary

import (
	"reflect"
	"testing"

	"github.com/quantpress/deskstat/pkg/deskstat/layout"
)

func headerTokens(page int, y float64) []layout.Token {
	xs := []float64{72, 149, 235, 390, 504, 630}
	var out []layout.Token
	for i, label := range Columns {
		out = append(out, layout.Token{Page: page, X: xs[i], Y: y, Text: label})
	}
	return out
}

func TestFromTokensEndToEnd(t *testing.T) {
	tokens := headerTokens(1, 30)
	tokens = append(tokens,
		layout.Token{Page: 1, X: 72, Y: 40, Text: "1 July"},
		layout.Token{Page: 1, X: 149, Y: 40, Text: "9.00am – 9.30am"},
		layout.Token{Page: 1, X: 235, Y: 40, Text: "Cabinet meeting"},
		layout.Token{Page: 1, X: 390, Y: 40, Text: "Canberra"},
		layout.Token{Page: 1, X: 630, Y: 40, Text: "Prime Minster"},
	)

	entries, err := FromTokens(tokens)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Time != "9.00am - 9.30am" {
		t.Errorf("Time = %q, normalization should have replaced the en dash", e.Time)
	}
	if e.Portfolio != "Prime Minister" {
		t.Errorf("Portfolio = %q, transcription fix missing", e.Portfolio)
	}
	if e.With != "" {
		t.Errorf("blank cell should stay empty, got %q", e.With)
	}
}

func TestFromRowsMergesContinuations(t *testing.T) {
	rows := []layout.Row{
		{"Date": "6-", "Time": "9.00am", "Meeting": "Regional visit"},
		{"Date": "7 July", "Meeting": "day two"},
	}
	entries := FromRows(rows)
	if len(entries) != 1 {
		t.Fatalf("want 1 merged entry, got %d", len(entries))
	}
	if entries[0].Date != "6- 7 July" {
		t.Errorf("Date = %q", entries[0].Date)
	}
	if entries[0].Meeting != "Regional visit day two" {
		t.Errorf("Meeting = %q", entries[0].Meeting)
	}
}

func TestPortfolios(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Health", []string{"Health"}},
		{"Health; Aged Care", []string{"Health", "Aged Care"}},
		{"Health, Aged Care and Sport", []string{"Health", "Aged Care", "Sport"}},
		{"Health; Health", []string{"Health"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := Portfolios(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Portfolios(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
