// Package store persists report runs and their computed result tables
// so a rendered report can be reproduced or compared without recomputing.
package store

import (
	"context"
	"time"
)

// Store is the interface for persisting and querying report runs.
type Store interface {
	Close() error

	// Runs
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context, report string, limit int) ([]Run, error)

	// Result tables
	SaveTable(ctx context.Context, runID string, t ResultTable) error
	TablesForRun(ctx context.Context, runID string) ([]ResultTable, error)
}

// Run is one report execution.
type Run struct {
	ID        string // ULID, sortable by creation time
	Report    string
	StartedAt time.Time
	Params    map[string]string
}

// ResultTable is one computed table of a run.
type ResultTable struct {
	Name    string
	Columns []string
	Rows    [][]string
}
