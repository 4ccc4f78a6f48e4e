package cache

import (
	"context"
	"fmt"
	"logistics-planner/internal/adapters/repositories"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/platform/db"
	"logistics-planner/internal/ports"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.PlanCache = (*SqlitePlanCache)(nil)
	_ ports.PlanCache = (*SQLPlanCache)(nil)
	_ ports.PlanCache = (*RedisPlanCache)(nil)
)

func samplePlan() *domain.Plan {
	return &domain.Plan{
		Method: "GLOBAL_ALLACTIONS",
		Found:  true,
		Cost:   145,
		Actions: []domain.Action{
			{Kind: domain.PickUp, Vehicle: 0, Subject: 0},
			{Kind: domain.Fly, Vehicle: 0, Subject: 1},
			{Kind: domain.DropOff, Vehicle: 0, Subject: 0},
		},
	}
}

func exercise(t *testing.T, c ports.PlanCache) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := c.GetPlan(ctx, "plan:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.PutPlan(ctx, "plan:a", samplePlan()))

	got, ok, err := c.GetPlan(ctx, "plan:a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, samplePlan(), got)

	unsolved := &domain.Plan{Method: "LOCAL_MOVESONLY"}
	require.NoError(t, c.PutPlan(ctx, "plan:a", unsolved))
	got, ok, err = c.GetPlan(ctx, "plan:a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.Found)
	assert.Empty(t, got.Actions)
}

func TestSqlitePlanCache(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(conn))

	exercise(t, NewSqlitePlanCache(conn))
}

func TestRedisPlanCache(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisPlanCache(context.Background(), fmt.Sprintf("redis://%s", mr.Addr()), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	exercise(t, c)

	mr.FastForward(2 * time.Hour)
	_, ok, err := c.GetPlan(context.Background(), "plan:a")
	require.NoError(t, err)
	assert.False(t, ok, "entry must expire with its ttl")
}

func TestRedisPlanCacheRejectsBadURL(t *testing.T) {
	_, err := NewRedisPlanCache(context.Background(), "not-a-url", 0)
	assert.Error(t, err)
}

func TestDecodePlanRejectsUnknownInstruction(t *testing.T) {
	_, err := decodePlan([]byte(`{"found":true,"instructions":["teleport 0 1"]}`))
	assert.Error(t, err)
}
