// Command subway-report computes betweenness and reach centrality over
// the transit network and renders the ranked stop tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/quantpress/deskstat/internal/transit"
	"github.com/quantpress/deskstat/pkg/deskstat"
	"github.com/quantpress/deskstat/pkg/deskstat/config"
	"github.com/quantpress/deskstat/pkg/deskstat/centrality"
	"github.com/quantpress/deskstat/pkg/deskstat/graph"
	"github.com/quantpress/deskstat/pkg/deskstat/render"
	"github.com/quantpress/deskstat/pkg/deskstat/store"
	"github.com/quantpress/deskstat/pkg/deskstat/store/memstore"
	"github.com/quantpress/deskstat/pkg/deskstat/store/sqlite"
)

func main() {
	var (
		stopsPath = flag.String("stops", "", "Path to stops CSV (required)")
		edgesPath = flag.String("edges", "", "Path to travel-time edges CSV (required)")
		tmax      = flag.Float64("tmax", 60, "Reach horizon in minutes")
		top       = flag.Int("top", 20, "Stops to list per measure")
		cfgPath   = flag.String("config", "", "Optional: report config YAML")
		dbPath    = flag.String("db", "", "Optional: SQLite path to record the run")
	)
	flag.Parse()

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		applyConfig(cfg, setFlags(), stopsPath, edgesPath, tmax)
	}
	if *stopsPath == "" || *edgesPath == "" {
		log.Fatal("--stops and --edges required")
	}

	ctx := context.Background()

	g, err := transit.BuildGraph(*stopsPath, *edgesPath)
	if err != nil {
		log.Fatalf("build network: %v", err)
	}

	runner := deskstat.New(deskstat.Options{Store: openStore(ctx, *dbPath), Theme: render.DefaultTheme()})
	defer runner.Close()

	run, err := runner.Begin(ctx, "subway", map[string]string{
		"stops": *stopsPath,
		"edges": *edgesPath,
		"tmax":  fmt.Sprintf("%g", *tmax),
	})
	if err != nil {
		log.Fatalf("begin run: %v", err)
	}

	th := runner.Theme()

	between := centrality.Betweenness(g)
	betweenTbl := rankedTable("betweenness", g, between, *top, th)
	betweenMD, err := run.Record(ctx, betweenTbl)
	if err != nil {
		log.Fatalf("record betweenness: %v", err)
	}

	reach := centrality.Reach(g, *tmax)
	reachTbl := rankedTable("reach", g, reach, *top, th)
	reachMD, err := run.Record(ctx, reachTbl)
	if err != nil {
		log.Fatalf("record reach: %v", err)
	}

	// Mean finite travel time per stop; unreachable pairs are excluded
	// from the average, not zeroed.
	distTbl := render.Table{Name: "mean-travel-time", Columns: []string{"Stop", "Mean minutes", "Unreachable"}}
	all := g.AllPairs()
	for _, n := range g.Nodes() {
		var sum float64
		var finite, unreachable int
		for id, d := range all[n.ID] {
			if id == n.ID {
				continue
			}
			if math.IsInf(d, 1) {
				unreachable++
				continue
			}
			sum += d
			finite++
		}
		cell := th.Float(math.Inf(1))
		if finite > 0 {
			cell = th.Float(sum / float64(finite))
		}
		distTbl.AddRow(n.Name, cell, th.Int(int64(unreachable)))
	}
	distMD, err := run.Record(ctx, distTbl)
	if err != nil {
		log.Fatalf("record distances: %v", err)
	}

	fmt.Printf("# Subway network centrality (run %s)\n\n", run.ID)
	fmt.Printf("%d stops, reach horizon %g minutes.\n\n", g.Len(), *tmax)
	fmt.Println(betweenMD)
	fmt.Println(reachMD)
	fmt.Println(distMD)
}

func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyConfig fills inputs from the config file. Flags passed explicitly
// on the command line stay authoritative.
func applyConfig(cfg *config.Config, set map[string]bool, stops, edges *string, tmax *float64) {
	if !set["stops"] && cfg.Subway.Stops != "" {
		*stops = cfg.Subway.Stops
	}
	if !set["edges"] && cfg.Subway.Edges != "" {
		*edges = cfg.Subway.Edges
	}
	if !set["tmax"] {
		*tmax = cfg.Subway.TmaxMinutes
	}
}

func rankedTable(name string, g *graph.Graph, scores map[string]float64, top int, th render.Theme) render.Table {
	type ranked struct {
		id    string
		score float64
	}
	rows := make([]ranked, 0, len(scores))
	for id, s := range scores {
		rows = append(rows, ranked{id, s})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		return rows[i].id < rows[j].id
	})
	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}

	tbl := render.Table{Name: name, Columns: []string{"Stop", "Score"}}
	for _, r := range rows {
		label := r.id
		if n, ok := g.Node(r.id); ok && n.Name != "" {
			label = n.Name
		}
		tbl.AddRow(label, th.Float(r.score))
	}
	return tbl
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
