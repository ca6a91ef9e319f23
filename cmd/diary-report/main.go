// Command diary-report reconstructs the ministerial diary from its
// published PDF and renders the entry table plus per-portfolio word
// importance.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/quantpress/deskstat/internal/pdftoken"
	"github.com/quantpress/deskstat/pkg/deskstat"
	"github.com/quantpress/deskstat/pkg/deskstat/config"
	"github.com/quantpress/deskstat/pkg/deskstat/diary"
	"github.com/quantpress/deskstat/pkg/deskstat/render"
	"github.com/quantpress/deskstat/pkg/deskstat/store"
	"github.com/quantpress/deskstat/pkg/deskstat/store/memstore"
	"github.com/quantpress/deskstat/pkg/deskstat/store/sqlite"
	"github.com/quantpress/deskstat/pkg/deskstat/textnorm"
	"github.com/quantpress/deskstat/pkg/deskstat/tfidf"
)

var defaultStopwords = []string{
	"the", "and", "of", "with", "for", "to", "in", "on", "at", "re",
	"meeting", "minister", "mp", "hon",
}

func main() {
	var (
		pdfPath = flag.String("pdf", "", "Path to diary PDF (required)")
		cfgPath = flag.String("config", "", "Optional: report config YAML")
		topN    = flag.Int("top", 10, "Top words per portfolio")
		dbPath  = flag.String("db", "", "Optional: SQLite path to record the run")
	)
	flag.Parse()

	if *pdfPath == "" {
		log.Fatal("--pdf required")
	}

	stopwords := defaultStopwords
	var corrections map[string]string
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		if len(cfg.Diary.Stopwords) > 0 {
			stopwords = cfg.Diary.Stopwords
		}
		corrections = cfg.Diary.Corrections
	}

	ctx := context.Background()

	tokens, err := pdftoken.FromPDF(*pdfPath)
	if err != nil {
		log.Fatalf("extract tokens: %v", err)
	}
	for _, tok := range tokens {
		if flagged := textnorm.Unrecognized(tok.Text); len(flagged) > 0 {
			log.Printf("Warning: unrecognized characters %v in %q (page %d)", flagged, tok.Text, tok.Page)
		}
	}

	entries, err := diary.FromTokens(tokens)
	if err != nil {
		log.Fatalf("reconstruct diary: %v", err)
	}
	if len(corrections) > 0 {
		for i := range entries {
			applyCorrections(&entries[i], corrections)
		}
	}

	runner := deskstat.New(deskstat.Options{Store: openStore(ctx, *dbPath), Theme: render.DefaultTheme()})
	defer runner.Close()

	run, err := runner.Begin(ctx, "diary", map[string]string{"pdf": *pdfPath})
	if err != nil {
		log.Fatalf("begin run: %v", err)
	}

	entryTbl := render.Table{Name: "entries", Columns: []string{"Date", "Time", "Meeting", "Location", "With", "Portfolio"}}
	for _, e := range entries {
		entryTbl.AddRow(e.Date, e.Time, e.Meeting, e.Location, e.With, e.Portfolio)
	}
	entriesMD, err := run.Record(ctx, entryTbl)
	if err != nil {
		log.Fatalf("record entries: %v", err)
	}

	// Word importance per portfolio: the clean entry->portfolio relation
	// is built first, then counted.
	tok := tfidf.NewTokenizer(stopwords)
	corpus := tfidf.NewCorpus()
	for _, e := range entries {
		words := tok.Tokenize(e.Meeting)
		for _, p := range diary.Portfolios(e.Portfolio) {
			corpus.AddTokens(p, words)
		}
	}

	th := runner.Theme()
	wordTbl := render.Table{Name: "portfolio-words", Columns: []string{"Portfolio", "Word", "Count", "TF-IDF"}}
	lastDoc := ""
	perDoc := 0
	for _, s := range corpus.Scores() { // already doc-ordered, best first
		if s.Doc != lastDoc {
			lastDoc = s.Doc
			perDoc = 0
		}
		if perDoc >= *topN {
			continue
		}
		perDoc++
		wordTbl.AddRow(s.Doc, s.Word, th.Int(s.Count), th.Float(s.TFIDF))
	}
	wordsMD, err := run.Record(ctx, wordTbl)
	if err != nil {
		log.Fatalf("record words: %v", err)
	}

	fmt.Printf("# Ministerial diary (run %s)\n\n", run.ID)
	fmt.Printf("%d entries across %d portfolios.\n\n", len(entries), corpus.Documents())
	fmt.Println(entriesMD)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println(wordsMD)
}

// applyCorrections re-runs normalization with the configured extra
// whole-word corrections. Normalization is idempotent, so the second
// pass only applies the extras.
func applyCorrections(e *diary.Entry, extra map[string]string) {
	for _, cell := range []*string{&e.Date, &e.Time, &e.Meeting, &e.Location, &e.With, &e.Portfolio} {
		*cell = textnorm.NormalizeWith(*cell, extra)
	}
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
