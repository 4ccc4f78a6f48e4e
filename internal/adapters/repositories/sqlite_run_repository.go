package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/platform/obs"
	"time"
)

// SQLite-backed implementation of the RunRepository port.
// Timestamps are stored as unix milliseconds.
type SqliteRunRepository struct{ DB *sql.DB }

func NewSqliteRunRepository(db *sql.DB) *SqliteRunRepository {
	return &SqliteRunRepository{DB: db}
}

func (s *SqliteRunRepository) SaveRun(ctx context.Context, rec domain.RunRecord) (err error) {
	defer obs.Time(ctx, "runs.sqlite.SaveRun")(&err)
	return s.saveContext(ctx, rec)
}

func (s *SqliteRunRepository) save(rec domain.RunRecord) error {
	return s.saveContext(context.Background(), rec)
}

func (s *SqliteRunRepository) saveContext(ctx context.Context, rec domain.RunRecord) error {
	if s.DB == nil {
		return errors.New("sqlite run repository: DB is nil")
	}

	query := `
	INSERT OR REPLACE INTO runs (
		run_id,
		method,
		input_name,
		elapsed_ms,
		found,
		cost,
		instructions,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := s.DB.ExecContext(ctx, query,
		rec.RunID,
		rec.Method,
		rec.InputName,
		rec.ElapsedMs(),
		rec.Found,
		rec.Cost,
		rec.Instructions,
		rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save run: insert run_id=%s method=%s: %w", rec.RunID, rec.Method, err)
	}
	return nil
}

// Return the most recent runs, newest first.
func (s *SqliteRunRepository) ListRuns(ctx context.Context, limit int) (_ []domain.RunRecord, err error) {
	defer obs.Time(ctx, "runs.sqlite.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite run repository: DB is nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("list runs: limit must be positive, got %d", limit)
	}

	query := `
	SELECT
		run_id,
		method,
		input_name,
		elapsed_ms,
		found,
		cost,
		instructions,
		created_at
	FROM runs
	ORDER BY created_at DESC, run_id, method
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.RunRecord, 0, limit)
	for rows.Next() {
		var rec domain.RunRecord
		var elapsedMs, createdAt int64
		if err := rows.Scan(
			&rec.RunID,
			&rec.Method,
			&rec.InputName,
			&elapsedMs,
			&rec.Found,
			&rec.Cost,
			&rec.Instructions,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		rec.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		rec.CreatedAt = time.UnixMilli(createdAt).UTC()
		runs = append(runs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
