package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"logistics-planner/internal/adapters/cache"
	"logistics-planner/internal/adapters/repositories"
	"logistics-planner/internal/config"
	"logistics-planner/internal/heuristic"
	"logistics-planner/internal/platform/db"
	"logistics-planner/internal/ports"
	"logistics-planner/internal/services"
)

// Stores holds the optional persistence adapters selected by Settings.
// Runs and Cache are nil when disabled.
type Stores struct {
	Runs  ports.RunRepository
	Cache ports.PlanCache

	closers []func() error
}

// OpenStores wires the run ledger and the plan cache. The ledger database
// doubles as plan cache unless REDIS_URL selects Redis.
func OpenStores(ctx context.Context, s config.Settings) (*Stores, error) {
	st := &Stores{}

	var conn *sql.DB
	var err error
	switch s.LedgerDriver {
	case "sqlite":
		if conn, err = db.OpenSQLite(s.LedgerDSN); err != nil {
			return nil, fmt.Errorf("open stores: %w", err)
		}
		st.closers = append(st.closers, conn.Close)
		if err := repositories.InitSchema(conn); err != nil {
			st.Close()
			return nil, fmt.Errorf("open stores: %w", err)
		}
		st.Runs = repositories.NewSqliteRunRepository(conn)
		st.Cache = cache.NewSqlitePlanCache(conn)
	case "pgx":
		if conn, err = db.Open(s.LedgerDSN); err != nil {
			return nil, fmt.Errorf("open stores: %w", err)
		}
		st.closers = append(st.closers, conn.Close)
		if err := repositories.InitPostgresSchema(conn); err != nil {
			st.Close()
			return nil, fmt.Errorf("open stores: %w", err)
		}
		st.Runs = repositories.NewSQLRunRepository(conn)
		st.Cache = cache.NewSQLPlanCache(conn)
	}

	if s.RedisURL != "" {
		rc, err := cache.NewRedisPlanCache(ctx, s.RedisURL, s.PlanCacheTTL)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("open stores: %w", err)
		}
		st.closers = append(st.closers, rc.Close)
		st.Cache = rc
	}

	log.Printf("stores ready ledger=%q redis=%t", s.LedgerDriver, s.RedisURL != "")
	return st, nil
}

// Close releases every opened connection, newest first.
func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// SearchOptions maps the search knobs of s.
func SearchOptions(s config.Settings) services.SearchOptions {
	opts := services.SearchOptions{MaxDepth: s.MaxDepth}
	if s.HeuristicLegacy {
		opts.Formula = heuristic.Legacy
	}
	return opts
}
