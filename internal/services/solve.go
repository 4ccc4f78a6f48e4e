package services

import (
	"context"
	"fmt"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/platform/obs"
	"logistics-planner/internal/state"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

type Strategy uint8

const (
	// Local resolves every city with its own trucks, relocates packages
	// between cities with planes, then resolves every city again.
	Local Strategy = iota
	// Global searches the whole problem at once.
	Global
)

func (s Strategy) String() string {
	if s == Global {
		return "GLOBAL"
	}
	return "LOCAL"
}

// Method is one strategy/mode combination of a run.
type Method struct {
	Strategy Strategy
	Mode     state.Mode
}

// Name is the method label used in result file names and log lines.
func (m Method) Name() string { return m.Strategy.String() + "_" + m.Mode.String() }

// Methods lists the combinations a full run executes, in order.
var Methods = []Method{
	{Strategy: Local, Mode: state.MovesOnly},
	{Strategy: Local, Mode: state.AllActions},
	{Strategy: Global, Mode: state.MovesOnly},
	{Strategy: Global, Mode: state.AllActions},
}

// ParseMethod reads a strategy ("local"/"global") and a mode ("full"/"moves").
func ParseMethod(strategy, mode string) (Method, error) {
	var m Method
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "local":
		m.Strategy = Local
	case "global", "":
		m.Strategy = Global
	default:
		return Method{}, fmt.Errorf("parse method: unknown strategy %q", strategy)
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "full", "all", "":
		m.Mode = state.AllActions
	case "moves", "movesonly":
		m.Mode = state.MovesOnly
	default:
		return Method{}, fmt.Errorf("parse method: unknown mode %q", mode)
	}
	return m, nil
}

// Solution is the final state of a solved method together with its arena.
type Solution struct {
	Arena    *state.Arena
	Final    state.StateID
	Found    bool
	Expanded int
}

// Phases returns the search phases a strategy runs over m, in order.
func Phases(m *domain.Model, method Method) []Phase {
	if method.Strategy == Global {
		return []Phase{{
			Name:  "global",
			Scope: domain.GlobalScope(),
			Mode:  method.Mode,
			Goal:  state.Delivered(m),
		}}
	}

	cityPass := func(round int) []Phase {
		out := make([]Phase, 0, len(m.Cities))
		for _, c := range m.Cities {
			out = append(out, Phase{
				Name:  fmt.Sprintf("city-%d/%d", c.CityID, round),
				Scope: domain.CityScope(c.CityID),
				Mode:  method.Mode,
				Goal:  state.CityResolved(m, c.CityID),
			})
		}
		return out
	}

	phases := cityPass(1)
	phases = append(phases, Phase{
		Name:  "planes",
		Scope: domain.PlaneScope(),
		Mode:  method.Mode,
		Goal:  state.PlanesDone(m),
	})
	return append(phases, cityPass(2)...)
}

// Solve runs every phase of method from the initial state of m in a fresh
// arena. Each phase starts where the previous one ended; a phase without a
// solution ends the method unsolved.
func Solve(ctx context.Context, m *domain.Model, method Method, opts SearchOptions) (sol *Solution, err error) {
	ctx, span := obs.StartSpan(ctx, "solve", attribute.String("method", method.Name()))
	defer obs.EndSpan(span, &err)

	arena, root := state.NewArena(state.Initial(m))
	searcher := NewSearcher(state.NewGenerator(m, arena), opts)

	sol = &Solution{Arena: arena, Final: root}
	for _, phase := range Phases(m, method) {
		res, err := searcher.Search(ctx, sol.Final, phase)
		sol.Expanded += res.Expanded
		if err != nil {
			return nil, fmt.Errorf("solve %s: %w", method.Name(), err)
		}
		if !res.Found {
			sol.Found = false
			return sol, nil
		}
		sol.Final = res.Final
	}
	sol.Found = true

	span.SetAttributes(attribute.Int("cost", arena.Get(sol.Final).Cost()))
	return sol, nil
}

// Plan converts a solution into the instruction list of method.
func (s *Solution) Plan(method Method) *domain.Plan {
	p := &domain.Plan{Method: method.Name(), Found: s.Found}
	if !s.Found {
		return p
	}
	p.Actions = s.Arena.Path(s.Final)
	p.Cost = s.Arena.Get(s.Final).Cost()
	return p
}
