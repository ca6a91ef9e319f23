// Package papers holds the working-paper series metadata and its
// summary statistics.
package papers

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/quantpress/deskstat/pkg/deskstat/internalerr"
	"github.com/quantpress/deskstat/pkg/deskstat/tfidf"
)

// Paper is one working paper of the series.
type Paper struct {
	Number int    `json:"number"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Title  string `json:"title"`
}

// LoadJSONL loads papers from a JSONL file. Malformed lines are skipped
// with a warning; a file yielding no papers at all is a structural
// error.
func LoadJSONL(path string) ([]Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var out []Paper
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var p Paper
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no valid papers found in %s: %w", path, internalerr.ErrStructural)
	}
	return out, nil
}

// YearCount is the number of papers issued in one year.
type YearCount struct {
	Year  int
	Count int
}

// PerYear counts papers by year, ascending.
func PerYear(ps []Paper) []YearCount {
	counts := make(map[int]int)
	for _, p := range ps {
		counts[p.Year]++
	}
	out := make([]YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// PerMonth counts papers by calendar month, 1 through 12. Months with
// no papers appear with a zero count.
func PerMonth(ps []Paper) [12]int {
	var out [12]int
	for _, p := range ps {
		if p.Month >= 1 && p.Month <= 12 {
			out[p.Month-1]++
		}
	}
	return out
}

// TitleCorpus builds a tf-idf corpus from paper titles, grouping by
// publication year so the scores surface what each year's papers were
// about.
func TitleCorpus(ps []Paper, tok *tfidf.Tokenizer) *tfidf.Corpus {
	c := tfidf.NewCorpus()
	for _, p := range ps {
		c.AddTokens(fmt.Sprintf("%d", p.Year), tok.Tokenize(p.Title))
	}
	return c
}
