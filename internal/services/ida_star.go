package services

import (
	"cmp"
	"context"
	"fmt"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/heuristic"
	"logistics-planner/internal/platform/obs"
	"logistics-planner/internal/state"
	"math"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// noBound is reported by an episode in which no branch was cut by the limit.
const noBound = math.MaxInt

// How often (in expansions) the search checks its context.
const pollEvery = 1024

type SearchOptions struct {
	Formula heuristic.Formula
	// MaxDepth caps the number of actions below the phase root; 0 disables the cap.
	MaxDepth int
}

// Phase is one bounded sub-problem: the vehicles and cities a search may
// touch, the successor mode and the goal that ends it.
type Phase struct {
	Name  string
	Scope domain.Scope
	Mode  state.Mode
	Goal  state.Goal
}

type SearchResult struct {
	Final    state.StateID
	Found    bool
	Episodes int
	Expanded int
	Limit    int
}

// Searcher runs IDA* over the states of one arena.
type Searcher struct {
	gen     *state.Generator
	est     *heuristic.Estimator
	opts    SearchOptions
	metrics *obs.SearchMetrics
}

func NewSearcher(gen *state.Generator, opts SearchOptions) *Searcher {
	return &Searcher{
		gen:     gen,
		est:     heuristic.NewEstimator(gen.Model(), opts.Formula),
		opts:    opts,
		metrics: obs.DefaultSearchMetrics(),
	}
}

type scored struct {
	id state.StateID
	f  int
}

type frame struct {
	id       state.StateID
	depth    int
	children []scored
	next     int
}

// Search runs bounded depth-first episodes from root, raising the bound to the
// smallest f that exceeded it, until the goal is met or no bound is left.
// An exhausted search is not an error: it returns a result with Found false.
func (s *Searcher) Search(ctx context.Context, root state.StateID, phase Phase) (res SearchResult, err error) {
	ctx, span := obs.StartSpan(ctx, "ida.search",
		attribute.String("phase", phase.Name),
		attribute.String("formula", s.est.Formula().String()),
	)
	defer obs.EndSpan(span, &err)
	start := time.Now()

	arena := s.gen.Arena()
	limit := s.f(arena.Get(root), phase.Scope)
	res = SearchResult{Final: state.NoState, Limit: limit}

	for {
		res.Episodes++
		mark := arena.Len()

		final, found, next, err := s.episode(ctx, root, limit, phase, &res.Expanded)
		if err != nil {
			arena.Truncate(mark)
			return res, fmt.Errorf("ida search: phase %s: %w", phase.Name, err)
		}
		if found {
			res.Final, res.Found, res.Limit = final, true, limit
			break
		}

		arena.Truncate(mark)
		if next == noBound {
			break
		}
		limit = next
		res.Limit = limit
	}

	s.metrics.RecordPhase(ctx, phase.Name, res.Found, res.Episodes, res.Expanded, time.Since(start))
	span.SetAttributes(
		attribute.Bool("found", res.Found),
		attribute.Int("episodes", res.Episodes),
		attribute.Int("expanded", res.Expanded),
		attribute.Int("limit", res.Limit),
	)
	return res, nil
}

// episode explores every state with f <= limit depth-first, children in
// ascending f. It returns the goal state, or the smallest f above limit.
func (s *Searcher) episode(ctx context.Context, root state.StateID, limit int, phase Phase, expanded *int) (state.StateID, bool, int, error) {
	arena := s.gen.Arena()
	visited := state.NewVisited(arena)
	next := noBound

	var stack []frame

	// enter tests a node and, when it is worth expanding, pushes its frame.
	enter := func(id state.StateID, f, depth int) (bool, error) {
		st := arena.Get(id)
		if phase.Goal(st) {
			return true, nil
		}
		if f > limit {
			next = min(next, f)
			return false, nil
		}
		visited.Add(id)
		if s.opts.MaxDepth > 0 && depth >= s.opts.MaxDepth {
			return false, nil
		}

		*expanded++
		if *expanded%pollEvery == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}

		succs := s.gen.Successors(id, phase.Scope, phase.Mode)
		children := make([]scored, 0, len(succs))
		for _, c := range succs {
			children = append(children, scored{id: c.ID, f: s.f(c.State, phase.Scope)})
		}
		slices.SortStableFunc(children, func(a, b scored) int { return cmp.Compare(a.f, b.f) })

		stack = append(stack, frame{id: id, depth: depth, children: children})
		return false, nil
	}

	found, err := enter(root, s.f(arena.Get(root), phase.Scope), 0)
	if err != nil || found {
		return root, found, next, err
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.children) {
			stack = stack[:len(stack)-1]
			continue
		}

		child := top.children[top.next]
		top.next++
		if visited.Contains(arena.Get(child.id)) {
			continue
		}

		found, err := enter(child.id, child.f, top.depth+1)
		if err != nil {
			return state.NoState, false, next, err
		}
		if found {
			return child.id, true, next, nil
		}
	}

	return state.NoState, false, next, nil
}

func (s *Searcher) f(st state.State, scope domain.Scope) int {
	return st.Cost() + s.est.Estimate(st, scope)
}
