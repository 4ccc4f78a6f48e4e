// Package state holds the immutable world snapshots explored by the planner,
// the arena that owns them and the successor generators that derive new ones.
package state

import (
	"encoding/binary"
	"logistics-planner/internal/domain"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// StateID addresses a State inside an Arena.
type StateID int

// NoState is the parent of a root state.
const NoState StateID = -1

// State is one world configuration: where every vehicle stands and which
// container (place, truck or plane) holds every package.
//
// Containers are sorted package-id slices. A State never mutates a container
// it received from its parent; derivations replace the touched containers with
// fresh slices and share the rest.
type State struct {
	trucks     []int
	planes     []int
	truckCargo [][]int
	planeCargo [][]int
	placeCargo [][]int

	cost   int
	parent StateID
	action domain.Action
	hash   uint64
}

// Initial builds the root state of a model: vehicles at their starts and
// every package on its start place.
func Initial(m *domain.Model) State {
	s := State{
		trucks:     slices.Clone(m.TruckStarts),
		planes:     slices.Clone(m.PlaneStarts),
		truckCargo: make([][]int, len(m.TruckStarts)),
		planeCargo: make([][]int, len(m.PlaneStarts)),
		placeCargo: make([][]int, len(m.Places)),
		parent:     NoState,
	}
	for _, p := range m.Packages {
		s.placeCargo[p.Start] = append(s.placeCargo[p.Start], p.PackageID)
	}
	s.seal()
	return s
}

func (s State) Cost() int             { return s.cost }
func (s State) Parent() StateID       { return s.parent }
func (s State) Action() domain.Action { return s.action }
func (s State) Hash() uint64          { return s.hash }

func (s State) TruckCount() int { return len(s.trucks) }
func (s State) PlaneCount() int { return len(s.planes) }
func (s State) PlaceCount() int { return len(s.placeCargo) }

// Position returns the place a vehicle stands on.
func (s State) Position(kind domain.VehicleKind, vehicle int) int {
	if kind == domain.Plane {
		return s.planes[vehicle]
	}
	return s.trucks[vehicle]
}

// Cargo returns the packages aboard a vehicle. The slice must not be modified.
func (s State) Cargo(kind domain.VehicleKind, vehicle int) []int {
	if kind == domain.Plane {
		return s.planeCargo[vehicle]
	}
	return s.truckCargo[vehicle]
}

// PlaceCargo returns the packages resting on a place. The slice must not be modified.
func (s State) PlaceCargo(place int) []int { return s.placeCargo[place] }

// PackageCount counts packages across all containers.
func (s State) PackageCount() int {
	n := 0
	for _, groups := range [][][]int{s.placeCargo, s.truckCargo, s.planeCargo} {
		for _, c := range groups {
			n += len(c)
		}
	}
	return n
}

// Equal compares world configurations, ignoring cost, parent and action.
func (s State) Equal(o State) bool {
	if s.hash != o.hash {
		return false
	}
	if !slices.Equal(s.trucks, o.trucks) || !slices.Equal(s.planes, o.planes) {
		return false
	}
	return containersEqual(s.placeCargo, o.placeCargo) &&
		containersEqual(s.truckCargo, o.truckCargo) &&
		containersEqual(s.planeCargo, o.planeCargo)
}

func containersEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// seal computes the structural hash. Every constructor calls it last.
func (s *State) seal() {
	n := len(s.trucks) + len(s.planes) + len(s.placeCargo) + len(s.truckCargo) + len(s.planeCargo)
	buf := make([]byte, 0, 4*(n+8))

	put := func(v int) { buf = binary.LittleEndian.AppendUint32(buf, uint32(v)) }
	for _, p := range s.trucks {
		put(p)
	}
	put(-1)
	for _, p := range s.planes {
		put(p)
	}
	for _, groups := range [][][]int{s.placeCargo, s.truckCargo, s.planeCargo} {
		put(-2)
		for _, c := range groups {
			put(len(c))
			for _, pkg := range c {
				put(pkg)
			}
		}
	}

	s.hash = xxhash.Sum64(buf)
}

// derive starts a child of s: same containers, new label and cost.
func (s State) derive(parent StateID, a domain.Action, price int) State {
	child := s
	child.parent = parent
	child.action = a
	child.cost = s.cost + price
	return child
}

func (s *State) setPosition(kind domain.VehicleKind, vehicle, place int) {
	if kind == domain.Plane {
		s.planes = slices.Clone(s.planes)
		s.planes[vehicle] = place
		return
	}
	s.trucks = slices.Clone(s.trucks)
	s.trucks[vehicle] = place
}

func (s *State) addCargo(kind domain.VehicleKind, vehicle, pkg int) {
	if kind == domain.Plane {
		s.planeCargo = replaceContainer(s.planeCargo, vehicle, withPackage(s.planeCargo[vehicle], pkg))
		return
	}
	s.truckCargo = replaceContainer(s.truckCargo, vehicle, withPackage(s.truckCargo[vehicle], pkg))
}

func (s *State) removeCargo(kind domain.VehicleKind, vehicle, pkg int) {
	if kind == domain.Plane {
		s.planeCargo = replaceContainer(s.planeCargo, vehicle, withoutPackage(s.planeCargo[vehicle], pkg))
		return
	}
	s.truckCargo = replaceContainer(s.truckCargo, vehicle, withoutPackage(s.truckCargo[vehicle], pkg))
}

func (s *State) addToPlace(place, pkg int) {
	s.placeCargo = replaceContainer(s.placeCargo, place, withPackage(s.placeCargo[place], pkg))
}

func (s *State) removeFromPlace(place, pkg int) {
	s.placeCargo = replaceContainer(s.placeCargo, place, withoutPackage(s.placeCargo[place], pkg))
}

func replaceContainer(groups [][]int, i int, c []int) [][]int {
	out := slices.Clone(groups)
	out[i] = c
	return out
}

// withPackage returns a new sorted slice holding c plus pkg.
func withPackage(c []int, pkg int) []int {
	i, _ := slices.BinarySearch(c, pkg)
	out := make([]int, 0, len(c)+1)
	out = append(out, c[:i]...)
	out = append(out, pkg)
	return append(out, c[i:]...)
}

// withoutPackage returns a new slice holding c minus pkg.
func withoutPackage(c []int, pkg int) []int {
	i, found := slices.BinarySearch(c, pkg)
	if !found {
		return c
	}
	out := make([]int, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...)
}
