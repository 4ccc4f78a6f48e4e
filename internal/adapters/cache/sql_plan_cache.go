package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/platform/obs"
	"strings"
)

// SQLPlanCache is a Postgres-backed cache of finished plans.
type SQLPlanCache struct {
	DB *sql.DB
}

func NewSQLPlanCache(db *sql.DB) *SQLPlanCache {
	return &SQLPlanCache{DB: db}
}

func (s *SQLPlanCache) GetPlan(ctx context.Context, key string) (_ *domain.Plan, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.sql.GetPlan")(&err)

	if s.DB == nil {
		return nil, false, errors.New("plan cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get plan cache: key must not be empty")
	}

	var payload []byte
	err = s.DB.QueryRowContext(ctx, `
	SELECT payload
	FROM plan_cache
	WHERE cache_key = $1;
	`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: query plan_cache table: %w", err)
	}

	plan, err := decodePlan(payload)
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}
	return plan, true, nil
}

func (s *SQLPlanCache) PutPlan(ctx context.Context, key string, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "plan.cache.sql.PutPlan")(&err)

	if s.DB == nil {
		return errors.New("plan cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert plan cache: key must not be empty")
	}

	payload, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("insert plan cache: %w", err)
	}

	if _, err := s.DB.ExecContext(ctx, `
	INSERT INTO plan_cache (cache_key, payload)
	VALUES ($1, $2)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		created_at = now();
	`, key, payload); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}

	return nil
}
