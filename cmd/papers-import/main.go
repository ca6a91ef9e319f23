// Command papers-import converts a saved HTML index page of the
// working-paper series into the JSONL metadata file papers-report
// consumes. The index lists one paper per table row: number, issue
// month, title.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/quantpress/deskstat/pkg/deskstat/papers"
)

func main() {
	var (
		input  = flag.String("input", "", "Path to saved HTML index (required)")
		output = flag.String("output", "papers.jsonl", "Output JSONL path")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("open %s: %v", *input, err)
	}
	doc, err := html.Parse(f)
	f.Close()
	if err != nil {
		log.Fatalf("parse %s: %v", *input, err)
	}

	var ps []papers.Paper
	for _, row := range tableRows(doc) {
		p, ok := parseRow(row)
		if !ok {
			continue
		}
		ps = append(ps, p)
	}
	if len(ps) == 0 {
		log.Fatalf("no paper rows found in %s", *input)
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create %s: %v", *output, err)
	}
	defer out.Close()

	encoder := json.NewEncoder(out)
	for _, p := range ps {
		if err := encoder.Encode(p); err != nil {
			log.Fatalf("write %s: %v", *output, err)
		}
	}
	fmt.Printf("Imported %d papers to %s\n", len(ps), *output)
}

// tableRows returns the cell texts of every <tr> in the document.
func tableRows(doc *html.Node) [][]string {
	var rows [][]string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, strings.TrimSpace(textContent(c)))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return rows
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

var months = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// parseRow interprets one index row: ["12", "March 2020", "Title..."].
// Header rows and anything malformed are skipped.
func parseRow(cells []string) (papers.Paper, bool) {
	if len(cells) < 3 {
		return papers.Paper{}, false
	}

	number, err := strconv.Atoi(strings.TrimPrefix(cells[0], "No. "))
	if err != nil {
		return papers.Paper{}, false
	}

	parts := strings.Fields(cells[1])
	if len(parts) != 2 {
		return papers.Paper{}, false
	}
	month, ok := months[strings.ToLower(parts[0])]
	if !ok {
		return papers.Paper{}, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return papers.Paper{}, false
	}

	title := cells[2]
	if title == "" {
		return papers.Paper{}, false
	}

	return papers.Paper{Number: number, Year: year, Month: month, Title: title}, true
}
