package heuristic

import (
	"logistics-planner/internal/domain"
	"logistics-planner/internal/state"
)

// Estimator computes f-bounds for the search. It keeps scratch matrices
// between calls and is not safe for concurrent use; create one per search.
type Estimator struct {
	model   *domain.Model
	formula Formula

	cities *TransferMatrix
	places []*TransferMatrix
}

func NewEstimator(m *domain.Model, formula Formula) *Estimator {
	e := &Estimator{
		model:   m,
		formula: formula,
		cities:  NewTransferMatrix(len(m.Cities)),
		places:  make([]*TransferMatrix, len(m.Cities)),
	}
	for i, c := range m.Cities {
		e.places[i] = NewTransferMatrix(len(c.Places))
	}
	return e
}

func (e *Estimator) Formula() Formula { return e.formula }

// Estimate returns the transfer cost still ahead of s for the vehicles and
// cities enabled by scope. Packages already aboard a counted vehicle have
// paid their load, so that price is taken off again.
func (e *Estimator) Estimate(s state.State, scope domain.Scope) int {
	e.reset()
	m := e.model

	for place := range s.PlaceCount() {
		e.count(s.PlaceCargo(place), place, scope)
	}
	aboardTrucks := 0
	for i := range s.TruckCount() {
		aboardTrucks += e.count(s.Cargo(domain.Truck, i), s.Position(domain.Truck, i), scope)
	}
	aboardPlanes := 0
	for i := range s.PlaneCount() {
		aboardPlanes += e.count(s.Cargo(domain.Plane, i), s.Position(domain.Plane, i), scope)
	}

	c := m.Costs
	total := 0
	if scope.Planes {
		total += e.cities.Cost(Pricing{
			Move:     c.FlyPlane,
			Service:  c.LoadPlane + c.UnloadPlane,
			Capacity: c.PlaneCapacity,
		}, e.formula)
	}
	if scope.Trucks {
		truck := Pricing{
			Move:     c.DriveTruck,
			Service:  c.LoadTruck + c.UnloadTruck,
			Capacity: c.TruckCapacity,
		}
		for city, matrix := range e.places {
			if scope.Permits(city) {
				total += matrix.Cost(truck, e.formula)
			}
		}
	}

	return total - aboardPlanes*c.LoadPlane - aboardTrucks*c.LoadTruck
}

// count adds the transfers of packages held at place and returns how many
// passed the scope restriction.
func (e *Estimator) count(pkgs []int, place int, scope domain.Scope) int {
	m := e.model
	from := m.Places[place]
	if !scope.Permits(from.CityID) {
		return 0
	}

	for _, pkg := range pkgs {
		target := m.Places[m.Packages[pkg].Target]
		e.cities.Increment(from.CityID, target.CityID)
		if from.CityID == target.CityID {
			e.places[from.CityID].Increment(from.Ordinal, target.Ordinal)
			continue
		}
		outbound := m.Places[m.Cities[from.CityID].Airport]
		inbound := m.Places[m.Cities[target.CityID].Airport]
		e.places[from.CityID].Increment(from.Ordinal, outbound.Ordinal)
		e.places[target.CityID].Increment(inbound.Ordinal, target.Ordinal)
	}
	return len(pkgs)
}

func (e *Estimator) reset() {
	e.cities.Reset()
	for _, p := range e.places {
		p.Reset()
	}
}
