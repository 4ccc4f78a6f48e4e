package config

import (
	"logistics-planner/internal/domain"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LOG_FILE", "COST_PROFILE", "HEURISTIC_LEGACY", "SEARCH_MAX_DEPTH", "DUMP_STATE", "LEDGER_DRIVER", "REDIS_URL", "PLAN_CACHE_TTL", "PORT"} {
		t.Setenv(k, "")
	}

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "log.txt", s.LogFile)
	assert.Equal(t, "8080", s.Port)
	assert.False(t, s.HeuristicLegacy)
	assert.Zero(t, s.MaxDepth)
	assert.Empty(t, s.LedgerDriver)
	assert.Equal(t, 24*time.Hour, s.PlanCacheTTL)
}

func TestLoadLedgerDrivers(t *testing.T) {
	t.Setenv("LEDGER_DRIVER", "sqlite")
	t.Setenv("LEDGER_DSN", "")
	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "data/runs.db", s.LedgerDSN)

	t.Setenv("LEDGER_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/runs")
	s, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "pgx", s.LedgerDriver)
	assert.Equal(t, "postgres://localhost/runs", s.LedgerDSN)

	t.Setenv("LEDGER_DRIVER", "mongo")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("SEARCH_MAX_DEPTH", "deep")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SEARCH_MAX_DEPTH", "-3")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("SEARCH_MAX_DEPTH", "")
	t.Setenv("PLAN_CACHE_TTL", "a day")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadCostsOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fly_plane: 200\ntruck_capacity: 2\n"), 0o600))

	costs, err := LoadCosts(path)
	require.NoError(t, err)

	want := domain.DefaultCosts()
	want.FlyPlane = 200
	want.TruckCapacity = 2
	assert.Equal(t, want, costs)
}

func TestLoadCostsRejectsInvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plane_capacity: 0\n"), 0o600))

	_, err := LoadCosts(path)
	assert.Error(t, err)

	costs, err := LoadCosts("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCosts(), costs)
}
