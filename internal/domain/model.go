package domain

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// NoPlace marks a missing place reference (a city without an airport).
const NoPlace = -1

// Represents a location where packages and vehicles can stand.
// Ordinal is the position of the place inside its city (input order),
// used to index the per-city transfer matrices.
type Place struct {
	PlaceID   int
	CityID    int
	Ordinal   int
	IsAirport bool
}

// Represents a city: its places in input order, its airport and the
// trucks that start (and therefore stay) inside it.
type City struct {
	CityID   int
	Places   []int
	Airport  int
	TruckIDs []int
}

// Model is the static description of a planning problem.
// It is built once by NewModel and never mutated afterwards.
type Model struct {
	Cities      []City
	Places      []Place
	Packages    []Package
	Airports    []int
	TruckStarts []int
	PlaneStarts []int
	Costs       Costs
}

// ModelInput is the raw problem layout, indices as they appear in the input file.
type ModelInput struct {
	CityCount   int
	PlaceCities []int
	Airports    []int
	TruckStarts []int
	PlaneStarts []int
	Packages    []Package
}

// NewModel validates the layout and links places, cities and trucks.
func NewModel(in ModelInput, costs Costs) (*Model, error) {
	if err := costs.Validate(); err != nil {
		return nil, fmt.Errorf("new model: %w", err)
	}
	if in.CityCount < 0 {
		return nil, fmt.Errorf("new model: negative city count %d", in.CityCount)
	}

	m := &Model{
		Cities:      make([]City, in.CityCount),
		Places:      make([]Place, len(in.PlaceCities)),
		Packages:    make([]Package, len(in.Packages)),
		Airports:    make([]int, 0, in.CityCount),
		TruckStarts: append([]int(nil), in.TruckStarts...),
		PlaneStarts: append([]int(nil), in.PlaneStarts...),
		Costs:       costs,
	}
	for i := range m.Cities {
		m.Cities[i] = City{CityID: i, Airport: NoPlace}
	}

	for placeID, cityID := range in.PlaceCities {
		if cityID < 0 || cityID >= in.CityCount {
			return nil, fmt.Errorf("new model: place %d references unknown city %d", placeID, cityID)
		}
		city := &m.Cities[cityID]
		m.Places[placeID] = Place{PlaceID: placeID, CityID: cityID, Ordinal: len(city.Places)}
		city.Places = append(city.Places, placeID)
	}

	if len(in.Airports) != in.CityCount {
		return nil, fmt.Errorf("new model: expected %d airports, got %d", in.CityCount, len(in.Airports))
	}
	for cityID, placeID := range in.Airports {
		if !m.validPlace(placeID) {
			return nil, fmt.Errorf("new model: airport of city %d references unknown place %d", cityID, placeID)
		}
		place := &m.Places[placeID]
		if place.IsAirport {
			return nil, fmt.Errorf("new model: place %d declared as airport twice", placeID)
		}
		place.IsAirport = true
		m.Cities[place.CityID].Airport = placeID
		m.Airports = append(m.Airports, placeID)
	}
	for _, c := range m.Cities {
		if c.Airport == NoPlace {
			return nil, fmt.Errorf("new model: city %d has no airport", c.CityID)
		}
	}

	for truckID, placeID := range m.TruckStarts {
		if !m.validPlace(placeID) {
			return nil, fmt.Errorf("new model: truck %d starts at unknown place %d", truckID, placeID)
		}
		city := &m.Cities[m.Places[placeID].CityID]
		city.TruckIDs = append(city.TruckIDs, truckID)
	}

	for planeID, placeID := range m.PlaneStarts {
		if !m.validPlace(placeID) {
			return nil, fmt.Errorf("new model: plane %d starts at unknown place %d", planeID, placeID)
		}
		if !m.Places[placeID].IsAirport {
			return nil, fmt.Errorf("new model: plane %d starts at place %d which is not an airport", planeID, placeID)
		}
	}

	for i, p := range in.Packages {
		if !m.validPlace(p.Start) || !m.validPlace(p.Target) {
			return nil, fmt.Errorf("new model: package %d references unknown place (start=%d target=%d)", i, p.Start, p.Target)
		}
		m.Packages[i] = Package{PackageID: i, Start: p.Start, Target: p.Target}
	}

	return m, nil
}

func (m *Model) validPlace(id int) bool { return id >= 0 && id < len(m.Places) }

// CityOf returns the city owning place.
func (m *Model) CityOf(place int) int { return m.Places[place].CityID }

func (m *Model) TruckCount() int   { return len(m.TruckStarts) }
func (m *Model) PlaneCount() int   { return len(m.PlaneStarts) }
func (m *Model) PackageCount() int { return len(m.Packages) }

// ErrEmptyModel is returned by Fingerprint for a nil model.
var ErrEmptyModel = errors.New("model is nil")

// Fingerprint hashes the full problem (layout, packages and prices).
// Two models with equal fingerprints produce identical plans for the same method.
func (m *Model) Fingerprint() (uint64, error) {
	if m == nil {
		return 0, ErrEmptyModel
	}

	buf := make([]byte, 0, 8*(len(m.Places)+len(m.Packages)*2+16))
	put := func(v int) { buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(v))) }

	put(len(m.Cities))
	put(len(m.Places))
	for _, p := range m.Places {
		put(p.CityID)
	}
	for _, a := range m.Airports {
		put(a)
	}
	put(len(m.TruckStarts))
	for _, t := range m.TruckStarts {
		put(t)
	}
	put(len(m.PlaneStarts))
	for _, p := range m.PlaneStarts {
		put(p)
	}
	put(len(m.Packages))
	for _, p := range m.Packages {
		put(p.Start)
		put(p.Target)
	}
	c := m.Costs
	for _, v := range []int{c.LoadTruck, c.UnloadTruck, c.DriveTruck, c.LoadPlane, c.UnloadPlane, c.FlyPlane, c.TruckCapacity, c.PlaneCapacity} {
		put(v)
	}

	return xxhash.Sum64(buf), nil
}
