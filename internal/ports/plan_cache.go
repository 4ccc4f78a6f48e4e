package ports

import (
	"context"
	"logistics-planner/internal/domain"
)

// Cache of finished plans keyed by model fingerprint and method.
// Only plans are cached, never search state.
type PlanCache interface {
	// Return the cached plan; ok is false on a miss.
	GetPlan(ctx context.Context, key string) (plan *domain.Plan, ok bool, err error)
	PutPlan(ctx context.Context, key string, plan *domain.Plan) error
}
