// Package pdftoken adapts the tabula PDF extractor's positioned text
// fragments into the layout package's token stream.
package pdftoken

import (
	"fmt"
	"log"

	"github.com/tsawler/tabula"

	"github.com/quantpress/deskstat/pkg/deskstat/layout"
)

// FromPDF extracts positioned tokens from every page of a PDF. Tabula
// reports PDF user-space coordinates with y growing upward; tokens are
// flipped per page so y grows in reading order as layout expects.
func FromPDF(path string) ([]layout.Token, error) {
	ext := tabula.Open(path)
	pageCount, err := ext.PageCount()
	if err != nil {
		ext.Close()
		return nil, fmt.Errorf("page count of %s: %w", path, err)
	}
	ext.Close()

	var tokens []layout.Token
	for page := 1; page <= pageCount; page++ {
		frags, warnings, err := tabula.Open(path).Pages(page).Fragments()
		if err != nil {
			return nil, fmt.Errorf("extract page %d of %s: %w", page, path, err)
		}
		for _, w := range warnings {
			log.Printf("Warning: %s page %d: %v", path, page, w)
		}

		maxY := 0.0
		for _, f := range frags {
			if f.Y > maxY {
				maxY = f.Y
			}
		}
		for _, f := range frags {
			tokens = append(tokens, layout.Token{
				Page: page,
				X:    f.X,
				Y:    maxY - f.Y,
				Text: f.Text,
			})
		}
	}
	return tokens, nil
}
