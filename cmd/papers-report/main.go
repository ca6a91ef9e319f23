// Command papers-report summarizes the working-paper series: output per
// year and month, and the title words that distinguish each year.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/quantpress/deskstat/pkg/deskstat"
	"github.com/quantpress/deskstat/pkg/deskstat/papers"
	"github.com/quantpress/deskstat/pkg/deskstat/render"
	"github.com/quantpress/deskstat/pkg/deskstat/store"
	"github.com/quantpress/deskstat/pkg/deskstat/store/memstore"
	"github.com/quantpress/deskstat/pkg/deskstat/store/sqlite"
	"github.com/quantpress/deskstat/pkg/deskstat/tfidf"
)

var titleStopwords = []string{
	"the", "a", "an", "and", "of", "in", "on", "for", "from", "evidence",
}

func main() {
	var (
		metadata = flag.String("metadata", "", "Path to papers JSONL (required)")
		topN     = flag.Int("top", 5, "Top title words per year")
		dbPath   = flag.String("db", "", "Optional: SQLite path to record the run")
	)
	flag.Parse()

	if *metadata == "" {
		log.Fatal("--metadata required")
	}

	ctx := context.Background()

	ps, err := papers.LoadJSONL(*metadata)
	if err != nil {
		log.Fatalf("load papers: %v", err)
	}

	runner := deskstat.New(deskstat.Options{Store: openStore(ctx, *dbPath), Theme: render.DefaultTheme()})
	defer runner.Close()

	run, err := runner.Begin(ctx, "papers", map[string]string{"metadata": *metadata})
	if err != nil {
		log.Fatalf("begin run: %v", err)
	}
	th := runner.Theme()

	yearTbl := render.Table{Name: "per-year", Columns: []string{"Year", "Papers"}}
	for _, yc := range papers.PerYear(ps) {
		yearTbl.AddRow(fmt.Sprintf("%d", yc.Year), th.Int(int64(yc.Count)))
	}
	yearMD, err := run.Record(ctx, yearTbl)
	if err != nil {
		log.Fatalf("record per-year: %v", err)
	}

	monthTbl := render.Table{Name: "per-month", Columns: []string{"Month", "Papers"}}
	months := papers.PerMonth(ps)
	for m := time.January; m <= time.December; m++ {
		monthTbl.AddRow(m.String(), th.Int(int64(months[m-1])))
	}
	monthMD, err := run.Record(ctx, monthTbl)
	if err != nil {
		log.Fatalf("record per-month: %v", err)
	}

	corpus := papers.TitleCorpus(ps, tfidf.NewTokenizer(titleStopwords))
	wordTbl := render.Table{Name: "title-words", Columns: []string{"Year", "Word", "TF-IDF"}}
	lastDoc := ""
	perDoc := 0
	for _, s := range corpus.Scores() {
		if s.Doc != lastDoc {
			lastDoc = s.Doc
			perDoc = 0
		}
		if perDoc >= *topN {
			continue
		}
		perDoc++
		wordTbl.AddRow(s.Doc, s.Word, th.Float(s.TFIDF))
	}
	wordMD, err := run.Record(ctx, wordTbl)
	if err != nil {
		log.Fatalf("record title words: %v", err)
	}

	fmt.Printf("# Working paper series (run %s)\n\n", run.ID)
	fmt.Printf("%d papers.\n\n", len(ps))
	fmt.Println(yearMD)
	fmt.Println(monthMD)
	fmt.Println(wordMD)
}

func openStore(ctx context.Context, path string) store.Store {
	if path == "" {
		return memstore.New()
	}
	s, err := sqlite.Open(ctx, path)
	if err != nil {
		log.Fatalf("open store %s: %v", path, err)
	}
	return s
}
