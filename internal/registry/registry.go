// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry persists experiment generation runs in a SQLite
// database, so past runs can be listed and their output directories found
// again.
package registry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/KusmierczykHobbyPrjs/sci-tools/pkg/types"
)

const dbFile = "runs.db"

// Store manages the generation-run SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the registry database at dir/runs.db, creating the
// schema if it does not exist.
func Open(cfg types.RegistryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = ".sci-tools"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating registry directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening registry database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			template TEXT NOT NULL,
			config TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			identifier TEXT,
			file_count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one generation run and returns its row ID.
func (s *Store) Record(run types.RunRecord) (int64, error) {
	created := run.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	res, err := s.db.Exec(
		`INSERT INTO runs (created_at, template, config, output_dir, identifier, file_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		created.UTC().Format(time.RFC3339),
		run.Template, run.Config, run.OutputDir, run.Identifier, run.FileCount,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first. A non-positive limit
// falls back to the configured maximum.
func (s *Store) List(limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.Query(
		`SELECT id, created_at, template, config, output_dir, identifier, file_count
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunRecord
	for rows.Next() {
		var r types.RunRecord
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Template, &r.Config, &r.OutputDir, &r.Identifier, &r.FileCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
