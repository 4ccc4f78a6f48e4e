package state

import (
	"fmt"
	"logistics-planner/internal/domain"
	"strings"
)

// Describe renders a state for diagnostics: vehicle positions and the
// content of every non-empty container, followed by the path cost.
func Describe(s State) string {
	var b strings.Builder

	for _, kind := range []domain.VehicleKind{domain.Truck, domain.Plane} {
		n := s.TruckCount()
		if kind == domain.Plane {
			n = s.PlaneCount()
		}
		for i := range n {
			fmt.Fprintf(&b, "%s %d at %d carries %v\n", kind, i, s.Position(kind, i), s.Cargo(kind, i))
		}
	}
	for place := range s.PlaceCount() {
		if c := s.PlaceCargo(place); len(c) > 0 {
			fmt.Fprintf(&b, "place %d holds %v\n", place, c)
		}
	}
	fmt.Fprintf(&b, "cost %d\n", s.Cost())

	return b.String()
}
