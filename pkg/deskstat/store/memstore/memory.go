// Package memstore is an in-memory store.Store used by tests and
// one-shot runs that do not need persistence.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/quantpress/deskstat/pkg/deskstat/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu     sync.RWMutex
	runs   map[string]store.Run
	tables map[string][]store.ResultTable
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs:   make(map[string]store.Run),
		tables: make(map[string][]store.ResultTable),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun inserts or replaces a run.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = copyRun(r)
	return nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, false, nil
	}
	return copyRun(r), true, nil
}

// ListRuns returns runs for a report, newest first (ULIDs sort by time).
func (s *Store) ListRuns(ctx context.Context, report string, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Run
	for _, r := range s.runs {
		if report == "" || r.Report == report {
			out = append(out, copyRun(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SaveTable appends a result table to a run.
func (s *Store) SaveTable(ctx context.Context, runID string, t store.ResultTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[runID] = append(s.tables[runID], copyTable(t))
	return nil
}

// TablesForRun returns a run's tables in insertion order.
func (s *Store) TablesForRun(ctx context.Context, runID string) ([]store.ResultTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := s.tables[runID]
	out := make([]store.ResultTable, len(tables))
	for i, t := range tables {
		out[i] = copyTable(t)
	}
	return out, nil
}

func copyRun(r store.Run) store.Run {
	cp := r
	cp.Params = make(map[string]string, len(r.Params))
	for k, v := range r.Params {
		cp.Params[k] = v
	}
	return cp
}

func copyTable(t store.ResultTable) store.ResultTable {
	cp := store.ResultTable{Name: t.Name}
	cp.Columns = append([]string(nil), t.Columns...)
	cp.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cp.Rows[i] = append([]string(nil), row...)
	}
	return cp
}
