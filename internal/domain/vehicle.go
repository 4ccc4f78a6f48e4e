package domain

import "fmt"

// VehicleKind distinguishes trucks (intra-city) from planes (inter-city).
type VehicleKind uint8

const (
	Truck VehicleKind = iota
	Plane
)

func (k VehicleKind) String() string {
	switch k {
	case Truck:
		return "truck"
	case Plane:
		return "plane"
	default:
		return fmt.Sprintf("vehicle(%d)", uint8(k))
	}
}

// LoadAction returns the action kind used to put a package aboard this vehicle kind.
func (k VehicleKind) LoadAction() ActionKind {
	if k == Plane {
		return PickUp
	}
	return Load
}

// UnloadAction returns the action kind used to take a package off this vehicle kind.
func (k VehicleKind) UnloadAction() ActionKind {
	if k == Plane {
		return DropOff
	}
	return Unload
}

// MoveAction returns the action kind used to relocate this vehicle kind.
func (k VehicleKind) MoveAction() ActionKind {
	if k == Plane {
		return Fly
	}
	return Drive
}
