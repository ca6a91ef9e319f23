package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/quantpress/deskstat/pkg/deskstat/store"
)

func openTemp(t *testing.T) store.Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRunRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	run := store.Run{
		ID:        "01HSQL",
		Report:    "diary",
		StartedAt: time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
		Params:    map[string]string{"pdf": "diary.pdf"},
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.GetRun(ctx, "01HSQL")
	if err != nil || !ok {
		t.Fatalf("GetRun: ok=%v err=%v", ok, err)
	}
	if got.Report != "diary" || !got.StartedAt.Equal(run.StartedAt) {
		t.Errorf("got %+v", got)
	}
	if got.Params["pdf"] != "diary.pdf" {
		t.Errorf("params = %v", got.Params)
	}

	_, ok, err = s.GetRun(ctx, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("missing run must report ok=false")
	}
}

func TestSQLiteSaveRunIsUpsert(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if err := s.SaveRun(ctx, store.Run{ID: "01X", Report: "a", Params: map[string]string{"k": "1"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRun(ctx, store.Run{ID: "01X", Report: "b", Params: map[string]string{"k": "2"}}); err != nil {
		t.Fatal(err)
	}

	got, _, err := s.GetRun(ctx, "01X")
	if err != nil {
		t.Fatal(err)
	}
	if got.Report != "b" || got.Params["k"] != "2" {
		t.Errorf("upsert did not replace: %+v", got)
	}
}

func TestSQLiteTablesOrdered(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if err := s.SaveRun(ctx, store.Run{ID: "01T", Report: "subway"}); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"betweenness", "reach", "distances"} {
		tbl := store.ResultTable{
			Name:    name,
			Columns: []string{"stop", "value"},
			Rows:    [][]string{{"central", "1"}},
		}
		if err := s.SaveTable(ctx, "01T", tbl); err != nil {
			t.Fatal(err)
		}
	}

	tables, err := s.TablesForRun(ctx, "01T")
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 3 {
		t.Fatalf("want 3 tables, got %d", len(tables))
	}
	for i, want := range []string{"betweenness", "reach", "distances"} {
		if tables[i].Name != want {
			t.Errorf("tables[%d] = %q, want %q", i, tables[i].Name, want)
		}
	}
	if tables[0].Rows[0][0] != "central" {
		t.Errorf("rows lost in round trip: %+v", tables[0])
	}
}

func TestSQLiteListRuns(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	for _, id := range []string{"01A", "01B", "01C"} {
		if err := s.SaveRun(ctx, store.Run{ID: id, Report: "fields"}); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := s.ListRuns(ctx, "fields", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != "01C" {
		t.Errorf("ListRuns = %+v", runs)
	}
}
