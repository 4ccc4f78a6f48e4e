package state

import (
	"logistics-planner/internal/domain"
)

// Generator derives successor states from a model's rules. Every state it
// creates is stored in the arena, so a successor's parent chain (including
// the intermediate states of a move cascade) can be replayed with Arena.Path.
type Generator struct {
	model *domain.Model
	arena *Arena
}

func NewGenerator(m *domain.Model, a *Arena) *Generator {
	return &Generator{model: m, arena: a}
}

func (g *Generator) Model() *domain.Model { return g.model }
func (g *Generator) Arena() *Arena        { return g.arena }

// apply stores the child of parent produced by a single primitive action.
func (g *Generator) apply(parentID StateID, parent State, a domain.Action) (StateID, State) {
	kind := a.Kind.Vehicle()
	child := parent.derive(parentID, a, g.model.Costs.Price(a.Kind))

	switch a.Kind {
	case domain.Load, domain.PickUp:
		child.removeFromPlace(parent.Position(kind, a.Vehicle), a.Subject)
		child.addCargo(kind, a.Vehicle, a.Subject)
	case domain.Unload, domain.DropOff:
		child.removeCargo(kind, a.Vehicle, a.Subject)
		child.addToPlace(parent.Position(kind, a.Vehicle), a.Subject)
	case domain.Drive, domain.Fly:
		child.setPosition(kind, a.Vehicle, a.Subject)
	}

	child.seal()
	return g.arena.Add(child), child
}

// load puts pkg aboard the vehicle from the place it stands on.
func (g *Generator) load(id StateID, s State, kind domain.VehicleKind, vehicle, pkg int) (StateID, State) {
	return g.apply(id, s, domain.Action{Kind: kind.LoadAction(), Vehicle: vehicle, Subject: pkg})
}

func (g *Generator) unload(id StateID, s State, kind domain.VehicleKind, vehicle, pkg int) (StateID, State) {
	return g.apply(id, s, domain.Action{Kind: kind.UnloadAction(), Vehicle: vehicle, Subject: pkg})
}

// move relocates a vehicle and chains the automatic unloads of every package
// the arrival completes. The returned state is the last one of the chain.
func (g *Generator) move(id StateID, s State, kind domain.VehicleKind, vehicle, dest int) (StateID, State) {
	id, s = g.apply(id, s, domain.Action{Kind: kind.MoveAction(), Vehicle: vehicle, Subject: dest})

	cargo := s.Cargo(kind, vehicle)
	for j := len(cargo) - 1; j >= 0; j-- {
		pkg := cargo[j]
		if g.arrives(kind, pkg, dest) {
			id, s = g.unload(id, s, kind, vehicle, pkg)
		}
	}
	return id, s
}

// arrives reports whether a package aboard a vehicle of kind is unloaded
// automatically when the vehicle reaches dest.
func (g *Generator) arrives(kind domain.VehicleKind, pkg, dest int) bool {
	m := g.model
	if kind == domain.Plane {
		return m.TargetCity(pkg) == m.CityOf(dest)
	}
	return m.Packages[pkg].Target == dest ||
		(m.Places[dest].IsAirport && m.TargetCity(pkg) != m.CityOf(dest))
}

// canLoad applies the per-kind loading rule for pkg resting on place.
// Delivered packages are never picked up again.
func (g *Generator) canLoad(kind domain.VehicleKind, pkg, place int) bool {
	m := g.model
	if m.IsSettled(pkg, place) {
		return false
	}
	if kind == domain.Plane {
		return m.TargetCity(pkg) != m.CityOf(place)
	}
	return !m.Places[place].IsAirport || m.TargetCity(pkg) == m.CityOf(place)
}

// relevant reports whether the vehicle carries a package the move to dest would unload.
func (g *Generator) relevant(s State, kind domain.VehicleKind, vehicle, dest int) bool {
	for _, pkg := range s.Cargo(kind, vehicle) {
		if g.arrives(kind, pkg, dest) {
			return true
		}
	}
	return false
}

// holdsUnsettled reports whether place has a package that is not yet delivered.
func (g *Generator) holdsUnsettled(s State, place int) bool {
	for _, pkg := range s.PlaceCargo(place) {
		if !g.model.IsSettled(pkg, place) {
			return true
		}
	}
	return false
}

// destinations lists the places a vehicle can move to, in scan order.
func (g *Generator) destinations(s State, kind domain.VehicleKind, vehicle int) []int {
	if kind == domain.Plane {
		return g.model.Airports
	}
	return g.model.Cities[g.model.CityOf(s.Position(kind, vehicle))].Places
}

// inScope reports whether a vehicle takes part in a search limited by scope.
func (g *Generator) inScope(s State, scope domain.Scope, kind domain.VehicleKind, vehicle int) bool {
	if kind == domain.Plane {
		return scope.Planes
	}
	return scope.Trucks && scope.Permits(g.model.CityOf(s.Position(kind, vehicle)))
}
