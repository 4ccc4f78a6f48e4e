package state

import (
	"logistics-planner/internal/domain"
)

const (
	carryUtility  = 100
	attendUtility = 1
	noUtility     = -1
)

// ExpandMovesOnly produces at most one macro successor per vehicle in scope:
// the vehicle loads everything its best destination advances, then moves there.
func (g *Generator) ExpandMovesOnly(id StateID, scope domain.Scope) []Successor {
	s := g.arena.Get(id)
	var out []Successor

	for i := range s.PlaneCount() {
		if g.inScope(s, scope, domain.Plane, i) {
			if succ, ok := g.macro(id, s, domain.Plane, i); ok {
				out = append(out, succ)
			}
		}
	}
	for i := range s.TruckCount() {
		if g.inScope(s, scope, domain.Truck, i) {
			if succ, ok := g.macro(id, s, domain.Truck, i); ok {
				out = append(out, succ)
			}
		}
	}

	return out
}

func (g *Generator) macro(id StateID, s State, kind domain.VehicleKind, vehicle int) (Successor, bool) {
	at := s.Position(kind, vehicle)

	best, bestUtility := domain.NoPlace, noUtility
	for _, dest := range g.destinations(s, kind, vehicle) {
		if dest == at {
			continue
		}
		if u := g.utility(s, kind, at, dest); u > bestUtility {
			best, bestUtility = dest, u
		}
	}
	if best == domain.NoPlace {
		return Successor{}, false
	}

	capacity := g.model.Costs.Capacity(kind)
	here := s.PlaceCargo(at)
	for j := len(here) - 1; j >= 0; j-- {
		if len(s.Cargo(kind, vehicle)) >= capacity {
			break
		}
		pkg := here[j]
		if g.canLoad(kind, pkg, at) && g.arrives(kind, pkg, best) {
			id, s = g.load(id, s, kind, vehicle, pkg)
		}
	}

	id, s = g.move(id, s, kind, vehicle, best)
	return Successor{ID: id, State: s}, true
}

// utility scores moving a vehicle of kind from at to dest: packages it can
// carry there weigh 100, packages waiting at dest for another vehicle weigh 1.
func (g *Generator) utility(s State, kind domain.VehicleKind, at, dest int) int {
	u := 0
	for _, pkg := range s.PlaceCargo(at) {
		if g.canLoad(kind, pkg, at) && g.arrives(kind, pkg, dest) {
			u += carryUtility
		}
	}
	for _, pkg := range s.PlaceCargo(dest) {
		if !g.model.IsSettled(pkg, dest) && !g.arrives(kind, pkg, dest) {
			u += attendUtility
		}
	}
	return u
}
