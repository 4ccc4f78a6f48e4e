package config

import (
	"fmt"
	"logistics-planner/internal/domain"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Get returns the environment value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Settings are the environment-driven knobs shared by the binaries.
type Settings struct {
	LogFile         string
	CostProfile     string
	HeuristicLegacy bool
	MaxDepth        int
	DumpState       bool
	LedgerDriver    string
	LedgerDSN       string
	RedisURL        string
	PlanCacheTTL    time.Duration
	Port            string
}

// Load reads Settings from the environment. Call godotenv.Load first to
// pick up a .env file.
func Load() (Settings, error) {
	s := Settings{
		LogFile:      Get("LOG_FILE", "log.txt"),
		CostProfile:  Get("COST_PROFILE", ""),
		LedgerDriver: strings.ToLower(Get("LEDGER_DRIVER", "")),
		RedisURL:     Get("REDIS_URL", ""),
		Port:         Get("PORT", "8080"),
	}

	var err error
	if s.HeuristicLegacy, err = strconv.ParseBool(Get("HEURISTIC_LEGACY", "false")); err != nil {
		return Settings{}, fmt.Errorf("load config: HEURISTIC_LEGACY: %w", err)
	}
	if s.DumpState, err = strconv.ParseBool(Get("DUMP_STATE", "false")); err != nil {
		return Settings{}, fmt.Errorf("load config: DUMP_STATE: %w", err)
	}
	if s.MaxDepth, err = strconv.Atoi(Get("SEARCH_MAX_DEPTH", "0")); err != nil {
		return Settings{}, fmt.Errorf("load config: SEARCH_MAX_DEPTH: %w", err)
	}
	if s.PlanCacheTTL, err = time.ParseDuration(Get("PLAN_CACHE_TTL", "24h")); err != nil {
		return Settings{}, fmt.Errorf("load config: PLAN_CACHE_TTL: %w", err)
	}
	if s.MaxDepth < 0 {
		return Settings{}, fmt.Errorf("load config: SEARCH_MAX_DEPTH must be >= 0, got %d", s.MaxDepth)
	}

	switch s.LedgerDriver {
	case "":
	case "sqlite":
		s.LedgerDSN = Get("LEDGER_DSN", "data/runs.db")
	case "pgx", "postgres":
		s.LedgerDriver = "pgx"
		s.LedgerDSN = Get("LEDGER_DSN", Get("DATABASE_URL", ""))
		if s.LedgerDSN == "" {
			return Settings{}, fmt.Errorf("load config: LEDGER_DSN or DATABASE_URL is required for the pgx ledger")
		}
	default:
		return Settings{}, fmt.Errorf("load config: unknown LEDGER_DRIVER %q", s.LedgerDriver)
	}

	return s, nil
}

// LoadCosts returns the default prices overridden by the YAML profile at
// path. An empty path yields the defaults.
func LoadCosts(path string) (domain.Costs, error) {
	costs := domain.DefaultCosts()
	if path == "" {
		return costs, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Costs{}, fmt.Errorf("load costs: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &costs); err != nil {
		return domain.Costs{}, fmt.Errorf("load costs: parse %q: %w", path, err)
	}
	if err := costs.Validate(); err != nil {
		return domain.Costs{}, fmt.Errorf("load costs: %q: %w", path, err)
	}
	return costs, nil
}
