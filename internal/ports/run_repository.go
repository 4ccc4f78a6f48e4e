package ports

import (
	"context"
	"logistics-planner/internal/domain"
)

// Port: a boundary for recording executed methods in a run ledger.
type RunRepository interface {
	// Persist one executed method.
	SaveRun(ctx context.Context, rec domain.RunRecord) error
	// Return the most recent records, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
