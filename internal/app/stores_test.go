package app

import (
	"context"
	"logistics-planner/internal/adapters/cache"
	"logistics-planner/internal/adapters/repositories"
	"logistics-planner/internal/config"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/heuristic"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStoresDisabled(t *testing.T) {
	st, err := OpenStores(context.Background(), config.Settings{})
	require.NoError(t, err)
	defer st.Close()

	assert.Nil(t, st.Runs)
	assert.Nil(t, st.Cache)
}

func TestOpenStoresSQLite(t *testing.T) {
	ctx := context.Background()
	st, err := OpenStores(ctx, config.Settings{
		LedgerDriver: "sqlite",
		LedgerDSN:    filepath.Join(t.TempDir(), "nested", "runs.db"),
	})
	require.NoError(t, err)
	defer st.Close()

	require.IsType(t, &repositories.SqliteRunRepository{}, st.Runs)
	require.IsType(t, &cache.SqlitePlanCache{}, st.Cache)

	rec := domain.RunRecord{RunID: "r1", Method: "GLOBAL_ALLACTIONS", Found: true, Cost: 145, CreatedAt: time.Now().UTC()}
	require.NoError(t, st.Runs.SaveRun(ctx, rec))

	runs, err := st.Runs.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 145, runs[0].Cost)
}

func TestOpenStoresPrefersRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	st, err := OpenStores(context.Background(), config.Settings{
		LedgerDriver: "sqlite",
		LedgerDSN:    filepath.Join(t.TempDir(), "runs.db"),
		RedisURL:     "redis://" + mr.Addr(),
		PlanCacheTTL: time.Hour,
	})
	require.NoError(t, err)

	assert.IsType(t, &cache.RedisPlanCache{}, st.Cache)
	assert.NoError(t, st.Close())
}

func TestOpenStoresRedisUnreachable(t *testing.T) {
	_, err := OpenStores(context.Background(), config.Settings{RedisURL: "redis://127.0.0.1:1"})
	assert.Error(t, err)
}

func TestSearchOptions(t *testing.T) {
	opts := SearchOptions(config.Settings{HeuristicLegacy: true, MaxDepth: 7})
	assert.Equal(t, heuristic.Legacy, opts.Formula)
	assert.Equal(t, 7, opts.MaxDepth)

	assert.Equal(t, heuristic.Corrected, SearchOptions(config.Settings{}).Formula)
}
