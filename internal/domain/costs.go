package domain

import (
	"errors"
	"fmt"
)

// Costs holds the fixed prices and capacities of the transport network.
// It is a plain value: build it once and pass it around, never mutate a shared copy.
type Costs struct {
	LoadTruck     int `yaml:"load_truck"`
	UnloadTruck   int `yaml:"unload_truck"`
	DriveTruck    int `yaml:"drive_truck"`
	LoadPlane     int `yaml:"load_plane"`
	UnloadPlane   int `yaml:"unload_plane"`
	FlyPlane      int `yaml:"fly_plane"`
	TruckCapacity int `yaml:"truck_capacity"`
	PlaneCapacity int `yaml:"plane_capacity"`
}

func DefaultCosts() Costs {
	return Costs{
		LoadTruck:     2,
		UnloadTruck:   2,
		DriveTruck:    17,
		LoadPlane:     14,
		UnloadPlane:   11,
		FlyPlane:      120,
		TruckCapacity: 4,
		PlaneCapacity: 30,
	}
}

// Validate rejects negative prices and non-positive capacities.
func (c Costs) Validate() error {
	prices := []struct {
		name  string
		value int
	}{
		{"load_truck", c.LoadTruck},
		{"unload_truck", c.UnloadTruck},
		{"drive_truck", c.DriveTruck},
		{"load_plane", c.LoadPlane},
		{"unload_plane", c.UnloadPlane},
		{"fly_plane", c.FlyPlane},
	}
	for _, p := range prices {
		if p.value < 0 {
			return fmt.Errorf("validate costs: %s must be >= 0, got %d", p.name, p.value)
		}
	}

	if c.TruckCapacity < 1 || c.PlaneCapacity < 1 {
		return errors.New("validate costs: capacities must be >= 1")
	}

	return nil
}

// Price returns the fixed price of one action of the given kind.
func (c Costs) Price(k ActionKind) int {
	switch k {
	case Drive:
		return c.DriveTruck
	case Fly:
		return c.FlyPlane
	case Load:
		return c.LoadTruck
	case Unload:
		return c.UnloadTruck
	case PickUp:
		return c.LoadPlane
	case DropOff:
		return c.UnloadPlane
	default:
		return 0
	}
}

func (c Costs) Capacity(k VehicleKind) int {
	if k == Plane {
		return c.PlaneCapacity
	}
	return c.TruckCapacity
}
