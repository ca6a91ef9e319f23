// Command fields-report renders the research-field similarity report:
// Jaccard similarity over journal assignments from the classification
// workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/quantpress/deskstat/internal/xlsxdata"
	"github.com/quantpress/deskstat/pkg/deskstat"
	"github.com/quantpress/deskstat/pkg/deskstat/config"
	"github.com/quantpress/deskstat/pkg/deskstat/render"
	"github.com/quantpress/deskstat/pkg/deskstat/store"
	"github.com/quantpress/deskstat/pkg/deskstat/store/memstore"
	"github.com/quantpress/deskstat/pkg/deskstat/store/sqlite"
)

func main() {
	var (
		workbook     = flag.String("workbook", "", "Path to classification workbook (required)")
		fieldSheet   = flag.String("field-sheet", "ASJC codes", "Sheet holding the field table")
		journalSheet = flag.String("journal-sheet", "Active journals", "Sheet holding journal-field assignments")
		top          = flag.Int("top", 25, "Number of highest-similarity pairs to print")
		cfgPath      = flag.String("config", "", "Optional: report config YAML")
		dbPath       = flag.String("db", "", "Optional: SQLite path to record the run")
	)
	flag.Parse()

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		applyConfig(cfg, setFlags(), workbook, fieldSheet, journalSheet)
	}
	if *workbook == "" {
		log.Fatal("--workbook required")
	}

	ctx := context.Background()

	cls, err := xlsxdata.Load(*workbook, *fieldSheet, *journalSheet)
	if err != nil {
		log.Fatalf("load classification: %v", err)
	}

	runner := deskstat.New(deskstat.Options{Store: openStore(ctx, *dbPath), Theme: render.DefaultTheme()})
	defer runner.Close()

	run, err := runner.Begin(ctx, "fields", map[string]string{"workbook": *workbook})
	if err != nil {
		log.Fatalf("begin run: %v", err)
	}

	counter := cls.Counter()
	names := make(map[string]string, len(cls.Fields))
	for _, f := range cls.Fields {
		names[f.ID] = f.Description
	}

	th := runner.Theme()
	tbl := render.Table{Name: "top-similarity", Columns: []string{"Field A", "Field B", "Shared", "Union", "Jaccard"}}
	for _, s := range counter.Top(*top) {
		tbl.AddRow(label(s.A, names), label(s.B, names), th.Int(s.Intersection), th.Int(s.Union), th.Float(s.Jaccard))
	}

	md, err := run.Record(ctx, tbl)
	if err != nil {
		log.Fatalf("record table: %v", err)
	}

	fmt.Printf("# Field similarity (run %s)\n\n", run.ID)
	fmt.Printf("%d fields, %d pairs in the full matrix.\n\n", len(cls.Fields), len(counter.Matrix()))
	fmt.Println(md)
}

func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyConfig fills inputs from the config file. Flags passed explicitly
// on the command line stay authoritative.
func applyConfig(cfg *config.Config, set map[string]bool, workbook, fieldSheet, journalSheet *string) {
	if !set["workbook"] && cfg.Fields.Workbook != "" {
		*workbook = cfg.Fields.Workbook
	}
	if !set["field-sheet"] {
		*fieldSheet = cfg.Fields.FieldSheet
	}
	if !set["journal-sheet"] {
		*journalSheet = cfg.Fields.JournalSheet
	}
}

func label(id string, names map[string]string) string {
	if n := names[id]; n != "" {
		return fmt.Sprintf("%s (%s)", n, id)
	}
	return id
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
