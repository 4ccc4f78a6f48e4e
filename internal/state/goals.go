package state

import (
	"logistics-planner/internal/domain"
)

// Goal tests whether a state completes a search phase.
type Goal func(s State) bool

// Delivered holds when every package rests on its exact target place.
func Delivered(m *domain.Model) Goal {
	return func(s State) bool {
		for place := range s.PlaceCount() {
			for _, pkg := range s.PlaceCargo(place) {
				if !m.IsSettled(pkg, place) {
					return false
				}
			}
		}
		// every package on its target also means nothing is aboard a vehicle
		return countPlaced(s) == m.PackageCount()
	}
}

// CityResolved holds when nothing is left to do inside city: its places only
// hold delivered packages or packages staged at the airport for another city,
// and no truck in the city nor plane parked there carries cargo.
func CityResolved(m *domain.Model, city int) Goal {
	c := m.Cities[city]
	return func(s State) bool {
		for _, place := range c.Places {
			for _, pkg := range s.PlaceCargo(place) {
				if m.IsSettled(pkg, place) {
					continue
				}
				if place == c.Airport && m.TargetCity(pkg) != city {
					continue
				}
				return false
			}
		}
		for i := range s.TruckCount() {
			if m.CityOf(s.Position(domain.Truck, i)) == city && len(s.Cargo(domain.Truck, i)) > 0 {
				return false
			}
		}
		for i := range s.PlaneCount() {
			if m.CityOf(s.Position(domain.Plane, i)) == city && len(s.Cargo(domain.Plane, i)) > 0 {
				return false
			}
		}
		return true
	}
}

// PlanesDone holds when every package on the ground lies in its target city
// and no plane carries cargo. Truck cargo is left to the city phases.
func PlanesDone(m *domain.Model) Goal {
	return func(s State) bool {
		for i := range s.PlaneCount() {
			if len(s.Cargo(domain.Plane, i)) > 0 {
				return false
			}
		}
		for place := range s.PlaceCount() {
			for _, pkg := range s.PlaceCargo(place) {
				if m.TargetCity(pkg) != m.CityOf(place) {
					return false
				}
			}
		}
		return true
	}
}

func countPlaced(s State) int {
	n := 0
	for place := range s.PlaceCount() {
		n += len(s.PlaceCargo(place))
	}
	return n
}
