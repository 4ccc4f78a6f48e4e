package ports

import (
	"context"
	"logistics-planner/internal/domain"
)

// Contract for emitting the outcome of one method: the instruction file and the run log line.
type PlanWriter interface {
	WritePlan(ctx context.Context, rec domain.RunRecord, plan *domain.Plan) error
}
