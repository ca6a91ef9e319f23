// Package diary turns reconstructed ministerial-diary table rows into
// clean calendar entries and prepares the portfolio relation used by
// the word-importance analysis.
package diary

import (
	"strings"

	"github.com/quantpress/deskstat/pkg/deskstat/layout"
	"github.com/quantpress/deskstat/pkg/deskstat/textnorm"
)

// Column labels of the diary table, in layout order. The first label is
// the header sentinel.
var Columns = []string{"Date", "Time", "Meeting", "Location", "With", "Portfolio"}

// Entry is one logical calendar entry. Empty fields were blank in the
// source table.
type Entry struct {
	Date      string
	Time      string
	Meeting   string
	Location  string
	With      string
	Portfolio string
}

// FromTokens runs the full reconstruction for a diary token stream:
// derive anchors from the header row, reconstruct physical rows, merge
// hyphen-continued rows, and normalize every cell.
func FromTokens(tokens []layout.Token) ([]Entry, error) {
	anchors, err := layout.DeriveAnchors(tokens, Columns)
	if err != nil {
		return nil, err
	}
	rows, err := layout.Reconstruct(tokens, anchors)
	if err != nil {
		return nil, err
	}
	return FromRows(rows), nil
}

// FromRows assembles entries from reconstructed rows, merging
// continuation rows into their logical predecessor first.
func FromRows(rows []layout.Row) []Entry {
	merged := layout.MergeContinuations(rows, layout.DateRangeContinuation("Date", "Time"))

	entries := make([]Entry, 0, len(merged))
	for _, r := range merged {
		entries = append(entries, Entry{
			Date:      textnorm.Normalize(r["Date"]),
			Time:      textnorm.Normalize(r["Time"]),
			Meeting:   textnorm.Normalize(r["Meeting"]),
			Location:  textnorm.Normalize(r["Location"]),
			With:      textnorm.Normalize(r["With"]),
			Portfolio: textnorm.Normalize(r["Portfolio"]),
		})
	}
	return entries
}

// portfolioSeparators split the denormalized portfolio strings of the
// source table, which pack several responsibilities into one cell.
var portfolioSeparators = []string{";", ",", " and "}

// Portfolios normalizes one raw portfolio cell into a clean one-to-many
// relation: each returned string is a single portfolio name, trimmed,
// deduplicated, in first-seen order. This replaces ad hoc splitting
// inline with aggregation: callers count words against the clean
// relation only.
func Portfolios(raw string) []string {
	raw = textnorm.Normalize(raw)
	if raw == "" {
		return nil
	}

	parts := []string{raw}
	for _, sep := range portfolioSeparators {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}

	var out []string
	seen := make(map[string]struct{})
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
