package state

import (
	"logistics-planner/internal/domain"
)

// Mode selects the granularity of successor generation.
type Mode uint8

const (
	// AllActions enumerates every primitive load, unload and move.
	AllActions Mode = iota
	// MovesOnly bundles a greedy load with one move per vehicle.
	MovesOnly
)

func (m Mode) String() string {
	if m == MovesOnly {
		return "MOVESONLY"
	}
	return "ALLACTIONS"
}

// Successor is a state stored in the arena and handed to the search.
type Successor struct {
	ID    StateID
	State State
}

// Successors expands id under scope using the given mode.
func (g *Generator) Successors(id StateID, scope domain.Scope, mode Mode) []Successor {
	if mode == MovesOnly {
		return g.ExpandMovesOnly(id, scope)
	}
	return g.Expand(id, scope)
}

// Expand enumerates every primitive action of every vehicle in scope:
// planes first, then trucks, each vehicle producing loads, unloads and moves.
func (g *Generator) Expand(id StateID, scope domain.Scope) []Successor {
	s := g.arena.Get(id)
	var out []Successor

	for i := range s.PlaneCount() {
		if g.inScope(s, scope, domain.Plane, i) {
			out = g.expandVehicle(out, id, s, domain.Plane, i)
		}
	}
	for i := range s.TruckCount() {
		if g.inScope(s, scope, domain.Truck, i) {
			out = g.expandVehicle(out, id, s, domain.Truck, i)
		}
	}

	return out
}

func (g *Generator) expandVehicle(out []Successor, id StateID, s State, kind domain.VehicleKind, vehicle int) []Successor {
	at := s.Position(kind, vehicle)
	cargo := s.Cargo(kind, vehicle)
	full := len(cargo) >= g.model.Costs.Capacity(kind)

	if !full {
		for _, pkg := range s.PlaceCargo(at) {
			if g.canLoad(kind, pkg, at) {
				cid, child := g.load(id, s, kind, vehicle, pkg)
				out = append(out, Successor{ID: cid, State: child})
			}
		}
	}

	for _, pkg := range cargo {
		cid, child := g.unload(id, s, kind, vehicle, pkg)
		out = append(out, Successor{ID: cid, State: child})
	}

	for _, dest := range g.destinations(s, kind, vehicle) {
		if dest == at {
			continue
		}
		if g.relevant(s, kind, vehicle, dest) || (!full && g.holdsUnsettled(s, dest)) {
			cid, child := g.move(id, s, kind, vehicle, dest)
			out = append(out, Successor{ID: cid, State: child})
		}
	}

	return out
}
