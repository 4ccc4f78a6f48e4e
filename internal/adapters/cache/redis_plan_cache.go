package cache

import (
	"context"
	"errors"
	"fmt"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPlanCache stores finished plans as JSON strings with an optional TTL.
type RedisPlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPlanCache connects to redisURL (redis://host:port/db) and verifies the connection.
func NewRedisPlanCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisPlanCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis plan cache: parse url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis plan cache: connect: %w", err)
	}

	return &RedisPlanCache{client: client, ttl: ttl}, nil
}

func (r *RedisPlanCache) GetPlan(ctx context.Context, key string) (_ *domain.Plan, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.redis.GetPlan")(&err)

	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}

	plan, err := decodePlan(b)
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}
	return plan, true, nil
}

func (r *RedisPlanCache) PutPlan(ctx context.Context, key string, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "plan.cache.redis.PutPlan")(&err)

	payload, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("insert plan cache: %w", err)
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}
	return nil
}

func (r *RedisPlanCache) Close() error { return r.client.Close() }
