package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"logistics-planner/internal/domain"
	"os"
	"strings"
	"time"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT NOT NULL,
		method TEXT NOT NULL,
		input_name TEXT NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		found INTEGER NOT NULL,
		cost INTEGER NOT NULL,
		instructions INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (run_id, method)
	);
	`

	createPlanCacheQuery := `
	CREATE TABLE IF NOT EXISTS plan_cache (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_runs_created_at
	ON runs(created_at);
	`

	return execSchema(db, createRunsQuery, createPlanCacheQuery, createIndexQuery)
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT NOT NULL,
		method TEXT NOT NULL,
		input_name TEXT NOT NULL,
		elapsed_ms BIGINT NOT NULL,
		found BOOLEAN NOT NULL,
		cost BIGINT NOT NULL,
		instructions INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (run_id, method)
	);
	`

	createPlanCacheQuery := `
	CREATE TABLE IF NOT EXISTS plan_cache (
		cache_key TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_runs_created_at
	ON runs(created_at DESC);
	`

	return execSchema(db, createRunsQuery, createPlanCacheQuery, createIndexQuery)
}

func execSchema(db *sql.DB, statements ...string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// RunSeed is one ledger row of an exported run history.
type RunSeed struct {
	RunID        string    `json:"run_id"`
	InputName    string    `json:"input_name"`
	Method       string    `json:"method"`
	ElapsedMs    int64     `json:"elapsed_ms"`
	Found        bool      `json:"found"`
	Cost         int       `json:"cost"`
	Instructions int       `json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
}

// Populate the SQLite ledger with run records from a JSON export.
func SeedRunsFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed runs: read %q: %w", jsonPath, err)
	}

	var data []RunSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed runs: parse json: %w", err)
	}

	repo := NewSqliteRunRepository(db)
	for i, item := range data {
		if strings.TrimSpace(item.RunID) == "" || strings.TrimSpace(item.Method) == "" {
			return fmt.Errorf("seed runs: item at index %d: run_id and method are required", i+1)
		}

		rec := domain.RunRecord{
			RunID:        item.RunID,
			InputName:    item.InputName,
			Method:       item.Method,
			Elapsed:      time.Duration(item.ElapsedMs) * time.Millisecond,
			Found:        item.Found,
			Cost:         item.Cost,
			Instructions: item.Instructions,
			CreatedAt:    item.CreatedAt,
		}
		if err := repo.save(rec); err != nil {
			return fmt.Errorf("seed runs: %w", err)
		}
	}

	return nil
}
