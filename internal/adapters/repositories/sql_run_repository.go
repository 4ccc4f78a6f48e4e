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

// SQLRunRepository is the Postgres (pgx) implementation of the RunRepository port.
type SQLRunRepository struct{ DB *sql.DB }

func NewSQLRunRepository(db *sql.DB) *SQLRunRepository {
	return &SQLRunRepository{DB: db}
}

func (s *SQLRunRepository) SaveRun(ctx context.Context, rec domain.RunRecord) (err error) {
	defer obs.Time(ctx, "runs.sql.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("sql run repository: DB is nil")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO runs (run_id, method, input_name, elapsed_ms, found, cost, instructions, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (run_id, method) DO UPDATE
	SET input_name = EXCLUDED.input_name,
		elapsed_ms = EXCLUDED.elapsed_ms,
		found = EXCLUDED.found,
		cost = EXCLUDED.cost,
		instructions = EXCLUDED.instructions,
		created_at = EXCLUDED.created_at;
	`,
		rec.RunID,
		rec.Method,
		rec.InputName,
		rec.ElapsedMs(),
		rec.Found,
		rec.Cost,
		rec.Instructions,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save run: insert run_id=%s method=%s: %w", rec.RunID, rec.Method, err)
	}
	return nil
}

func (s *SQLRunRepository) ListRuns(ctx context.Context, limit int) (_ []domain.RunRecord, err error) {
	defer obs.Time(ctx, "runs.sql.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("sql run repository: DB is nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("list runs: limit must be positive, got %d", limit)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT run_id, method, input_name, elapsed_ms, found, cost, instructions, created_at
	FROM runs
	ORDER BY created_at DESC, run_id, method
	LIMIT $1;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.RunRecord, 0, limit)
	for rows.Next() {
		var rec domain.RunRecord
		var elapsedMs int64
		if err := rows.Scan(
			&rec.RunID,
			&rec.Method,
			&rec.InputName,
			&elapsedMs,
			&rec.Found,
			&rec.Cost,
			&rec.Instructions,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		rec.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
