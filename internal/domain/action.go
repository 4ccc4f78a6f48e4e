package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ActionKind is one primitive operation on a vehicle.
type ActionKind uint8

const (
	NoAction ActionKind = iota
	Drive
	Fly
	Load
	Unload
	PickUp
	DropOff
)

var actionNames = [...]string{
	NoAction: "",
	Drive:    "drive",
	Fly:      "fly",
	Load:     "load",
	Unload:   "unload",
	PickUp:   "pickUp",
	DropOff:  "dropOff",
}

func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return fmt.Sprintf("action(%d)", uint8(k))
}

// Vehicle returns the vehicle kind the action applies to.
func (k ActionKind) Vehicle() VehicleKind {
	switch k {
	case Fly, PickUp, DropOff:
		return Plane
	default:
		return Truck
	}
}

// IsMove reports whether the action relocates a vehicle.
func (k ActionKind) IsMove() bool { return k == Drive || k == Fly }

// Action is a single instruction of a plan.
// Subject is a place id for moves and a package id for cargo actions.
type Action struct {
	Kind    ActionKind
	Vehicle int
	Subject int
}

// String renders the action in the output vocabulary, e.g. "drive 0 3".
func (a Action) String() string {
	return a.Kind.String() + " " + strconv.Itoa(a.Vehicle) + " " + strconv.Itoa(a.Subject)
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return Action{}, fmt.Errorf("parse action %q: expected 3 fields, got %d", s, len(fields))
	}

	kind := NoAction
	for k, name := range actionNames {
		if name != "" && name == fields[0] {
			kind = ActionKind(k)
			break
		}
	}
	if kind == NoAction {
		return Action{}, fmt.Errorf("parse action %q: unknown instruction %q", s, fields[0])
	}

	vehicle, err := strconv.Atoi(fields[1])
	if err != nil {
		return Action{}, fmt.Errorf("parse action %q: vehicle: %w", s, err)
	}
	subject, err := strconv.Atoi(fields[2])
	if err != nil {
		return Action{}, fmt.Errorf("parse action %q: subject: %w", s, err)
	}
	if vehicle < 0 || subject < 0 {
		return Action{}, errors.New("parse action: negative id")
	}

	return Action{Kind: kind, Vehicle: vehicle, Subject: subject}, nil
}
