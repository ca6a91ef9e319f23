package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/quantpress/deskstat/pkg/deskstat/store"
)

func TestRunRoundTrip(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	run := store.Run{
		ID:        "01HRUN",
		Report:    "subway",
		StartedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Params:    map[string]string{"tmax": "60"},
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.GetRun(ctx, "01HRUN")
	if err != nil || !ok {
		t.Fatalf("GetRun: ok=%v err=%v", ok, err)
	}
	if got.Report != "subway" || got.Params["tmax"] != "60" {
		t.Errorf("got %+v", got)
	}

	// Returned run must be a copy.
	got.Params["tmax"] = "mutated"
	again, _, _ := s.GetRun(ctx, "01HRUN")
	if again.Params["tmax"] != "60" {
		t.Error("GetRun must return a defensive copy")
	}
}

func TestGetRunMissing(t *testing.T) {
	s := New()
	_, ok, err := s.GetRun(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("missing run must report ok=false")
	}
}

func TestListRunsFilterAndOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, r := range []store.Run{
		{ID: "01A", Report: "subway"},
		{ID: "01B", Report: "fields"},
		{ID: "01C", Report: "subway"},
	} {
		if err := s.SaveRun(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(ctx, "subway", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != "01C" || runs[1].ID != "01A" {
		t.Errorf("ListRuns = %+v", runs)
	}

	limited, _ := s.ListRuns(ctx, "", 1)
	if len(limited) != 1 {
		t.Errorf("limit ignored: %+v", limited)
	}
}

func TestTables(t *testing.T) {
	s := New()
	ctx := context.Background()

	t1 := store.ResultTable{Name: "betweenness", Columns: []string{"stop", "score"}, Rows: [][]string{{"a", "1.0"}}}
	t2 := store.ResultTable{Name: "reach", Columns: []string{"stop", "score"}}
	if err := s.SaveTable(ctx, "run1", t1); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveTable(ctx, "run1", t2); err != nil {
		t.Fatal(err)
	}

	tables, err := s.TablesForRun(ctx, "run1")
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 2 || tables[0].Name != "betweenness" || tables[1].Name != "reach" {
		t.Errorf("TablesForRun = %+v", tables)
	}
	if tables[0].Rows[0][1] != "1.0" {
		t.Errorf("rows = %+v", tables[0].Rows)
	}
}
