package services

import (
	"context"
	"fmt"
	"log"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/platform/obs"
	"logistics-planner/internal/ports"
	"logistics-planner/internal/state"
	"time"

	"github.com/google/uuid"
)

type RunRequest struct {
	// InputName identifies the run in log lines and the ledger (the output base name for the CLI).
	InputName string
	Methods   []Method
	Options   SearchOptions
	// DumpState logs the final state of every solved method.
	DumpState bool
}

type MethodOutcome struct {
	Record domain.RunRecord
	Plan   *domain.Plan
}

// CacheKey identifies the plan of method over m under opts.
func CacheKey(m *domain.Model, method Method, opts SearchOptions) (string, error) {
	fp, err := m.Fingerprint()
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	return fmt.Sprintf("plan:%016x:%s:%s:%d", fp, method.Name(), opts.Formula, opts.MaxDepth), nil
}

// planMethod returns the plan of one method, served from cache when possible.
// A cached plan comes without a Solution.
func planMethod(ctx context.Context, m *domain.Model, method Method, opts SearchOptions, cache ports.PlanCache) (plan *domain.Plan, sol *Solution, err error) {
	defer obs.Time(ctx, "plan_method "+method.Name())(&err)

	var key string
	if cache != nil {
		key, err = CacheKey(m, method, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("plan method: %w", err)
		}
		cached, ok, err := cache.GetPlan(ctx, key)
		if err != nil {
			// cache failures are logged, never returned
			log.Printf("op=plan_cache_get key=%s err=%v", key, err)
		} else if ok {
			return cached, nil, nil
		}
	}

	sol, err = Solve(ctx, m, method, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("plan method: %w", err)
	}
	plan = sol.Plan(method)

	if cache != nil {
		if err := cache.PutPlan(ctx, key, plan); err != nil {
			log.Printf("op=plan_cache_put key=%s err=%v", key, err)
		}
	}
	return plan, sol, nil
}

// RunAll executes every requested method in order, writing each outcome
// through writer and recording it in the ledger. Writer, ledger and cache
// are optional.
func RunAll(
	ctx context.Context,
	m *domain.Model,
	req RunRequest,
	writer ports.PlanWriter,
	runs ports.RunRepository,
	cache ports.PlanCache,
) ([]MethodOutcome, error) {
	methods := req.Methods
	if len(methods) == 0 {
		methods = Methods
	}

	runID := uuid.NewString()
	ctx = obs.WithRunID(ctx, runID)

	outcomes := make([]MethodOutcome, 0, len(methods))
	for _, method := range methods {
		start := time.Now()
		plan, sol, err := planMethod(ctx, m, method, req.Options, cache)
		if err != nil {
			return outcomes, fmt.Errorf("run all: %w", err)
		}
		elapsed := time.Since(start)

		rec := domain.RunRecord{
			RunID:        runID,
			InputName:    req.InputName,
			Method:       method.Name(),
			Elapsed:      elapsed,
			Found:        plan.Found,
			Cost:         plan.Cost,
			Instructions: len(plan.Actions),
			CreatedAt:    start.UTC(),
		}

		if req.DumpState && sol != nil && sol.Found {
			log.Printf("op=final_state run_id=%s method=%s depth=%d\n%s",
				runID, method.Name(), sol.Arena.Depth(sol.Final), state.Describe(sol.Arena.Get(sol.Final)))
		}

		if writer != nil {
			if err := writer.WritePlan(ctx, rec, plan); err != nil {
				return outcomes, fmt.Errorf("run all: write plan %s: %w", method.Name(), err)
			}
		}
		if runs != nil {
			if err := runs.SaveRun(ctx, rec); err != nil {
				return outcomes, fmt.Errorf("run all: save run %s: %w", method.Name(), err)
			}
		}

		log.Printf("run_id=%s method=%s dur=%dms outcome=%s", runID, method.Name(), rec.ElapsedMs(), plan.Outcome())
		outcomes = append(outcomes, MethodOutcome{Record: rec, Plan: plan})
	}

	return outcomes, nil
}
