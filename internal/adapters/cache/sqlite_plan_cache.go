package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/platform/obs"
	"strings"
	"time"
)

// SQLite backed cache of finished plans.
// Keys are built by the caller from the model fingerprint and the method.
type SqlitePlanCache struct {
	DB *sql.DB
}

func NewSqlitePlanCache(db *sql.DB) *SqlitePlanCache {
	return &SqlitePlanCache{DB: db}
}

func (s *SqlitePlanCache) GetPlan(ctx context.Context, key string) (_ *domain.Plan, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.sqlite.GetPlan")(&err)

	if s.DB == nil {
		return nil, false, errors.New("plan cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get plan cache: key must not be empty")
	}

	var payload string
	err = s.DB.QueryRowContext(ctx, `
	SELECT payload
	FROM plan_cache
	WHERE cache_key = ?;
	`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: query plan_cache table: %w", err)
	}

	plan, err := decodePlan([]byte(payload))
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}
	return plan, true, nil
}

func (s *SqlitePlanCache) PutPlan(ctx context.Context, key string, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "plan.cache.sqlite.PutPlan")(&err)

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
	INSERT OR REPLACE INTO plan_cache (
		cache_key,
		payload,
		created_at
	)
	VALUES (?, ?, ?);
	`, key, string(payload), time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}

	return nil
}
