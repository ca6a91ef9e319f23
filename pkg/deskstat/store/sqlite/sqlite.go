// Package sqlite persists report runs in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quantpress/deskstat/pkg/deskstat/store"
)

// sqliteStore implements store.Store using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	report TEXT NOT NULL,
	started_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_params (
	run_id TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY(run_id, key),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS result_tables (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	columns TEXT NOT NULL,
	rows TEXT NOT NULL,
	PRIMARY KEY(run_id, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run and its parameters.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO runs (id, report, started_at) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET report=excluded.report, started_at=excluded.started_at;
`
	if _, err := tx.ExecContext(ctx, stmt, r.ID, r.Report, r.StartedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_params WHERE run_id=?`, r.ID); err != nil {
		return err
	}
	for k, v := range r.Params {
		if _, err := tx.ExecContext(ctx, `INSERT INTO run_params (run_id, key, value) VALUES (?, ?, ?)`, r.ID, k, v); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRun returns a run by ID.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	var r store.Run
	var started string
	err := s.db.QueryRowContext(ctx, `SELECT id, report, started_at FROM runs WHERE id=?`, id).
		Scan(&r.ID, &r.Report, &started)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	if t, perr := time.Parse(time.RFC3339, started); perr == nil {
		r.StartedAt = t
	}

	r.Params = make(map[string]string)
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM run_params WHERE run_id=?`, id)
	if err != nil {
		return store.Run{}, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return store.Run{}, false, err
		}
		r.Params[k] = v
	}
	return r, true, rows.Err()
}

// ListRuns returns runs for a report, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, report string, limit int) ([]store.Run, error) {
	query := `SELECT id, report, started_at FROM runs`
	args := []interface{}{}
	if report != "" {
		query += ` WHERE report=?`
		args = append(args, report)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		var r store.Run
		var started string
		if err := rows.Scan(&r.ID, &r.Report, &started); err != nil {
			return nil, err
		}
		if t, perr := time.Parse(time.RFC3339, started); perr == nil {
			r.StartedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveTable appends a result table to a run. Columns and rows are
// stored JSON-encoded; the tables are read back whole, never queried
// cell-wise.
func (s *sqliteStore) SaveTable(ctx context.Context, runID string, t store.ResultTable) error {
	cols, err := json.Marshal(t.Columns)
	if err != nil {
		return err
	}
	rowsJSON, err := json.Marshal(t.Rows)
	if err != nil {
		return err
	}

	var next int
	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position)+1, 0) FROM result_tables WHERE run_id=?`, runID).Scan(&next)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO result_tables (run_id, position, name, columns, rows) VALUES (?, ?, ?, ?, ?)`,
		runID, next, t.Name, string(cols), string(rowsJSON))
	return err
}

// TablesForRun returns a run's tables in insertion order.
func (s *sqliteStore) TablesForRun(ctx context.Context, runID string) ([]store.ResultTable, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, columns, rows FROM result_tables WHERE run_id=? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.ResultTable
	for rows.Next() {
		var t store.ResultTable
		var cols, rowsJSON string
		if err := rows.Scan(&t.Name, &cols, &rowsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(cols), &t.Columns); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(rowsJSON), &t.Rows); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
