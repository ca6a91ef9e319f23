// Package deskstat ties a report run together: it mints run IDs,
// records computed tables in the configured store, and renders them
// with an explicit theme.
package deskstat

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/quantpress/deskstat/pkg/deskstat/render"
	"github.com/quantpress/deskstat/pkg/deskstat/store"
)

// Runner creates and records report runs.
type Runner struct {
	store   store.Store
	theme   render.Theme
	entropy *ulid.MonotonicEntropy
}

// Options configures a Runner.
type Options struct {
	Store store.Store
	Theme render.Theme
}

// New creates a Runner with the given dependencies.
func New(opts Options) *Runner {
	return &Runner{
		store:   opts.Store,
		theme:   opts.Theme,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Close shuts down the underlying store.
func (r *Runner) Close() error {
	return r.store.Close()
}

// Run is one in-progress report execution.
type Run struct {
	ID     string
	runner *Runner
	info   store.Run
}

// Begin starts a report run with a fresh ULID.
func (r *Runner) Begin(ctx context.Context, report string, params map[string]string) (*Run, error) {
	now := time.Now()
	id := ulid.MustNew(ulid.Timestamp(now), r.entropy).String()

	info := store.Run{
		ID:        id,
		Report:    report,
		StartedAt: now,
		Params:    params,
	}
	if err := r.store.SaveRun(ctx, info); err != nil {
		return nil, err
	}
	return &Run{ID: id, runner: r, info: info}, nil
}

// Record persists one computed table and returns its markdown
// rendering for the report body.
func (run *Run) Record(ctx context.Context, t render.Table) (string, error) {
	err := run.runner.store.SaveTable(ctx, run.ID, store.ResultTable{
		Name:    t.Name,
		Columns: t.Columns,
		Rows:    t.Rows,
	})
	if err != nil {
		return "", err
	}
	return t.Markdown(run.runner.theme), nil
}

// Theme exposes the runner's theme for ad hoc formatting in report
// mains.
func (r *Runner) Theme() render.Theme {
	return r.theme
}
