package state

import (
	"logistics-planner/internal/domain"
	"slices"
)

// Arena owns every State of one planning run. States reference their parent
// by StateID, so a path is rebuilt by walking indices, never pointers.
type Arena struct {
	states []State
}

// NewArena creates an arena holding root as its first state.
func NewArena(root State) (*Arena, StateID) {
	a := &Arena{states: make([]State, 0, 1024)}
	root.parent = NoState
	return a, a.Add(root)
}

func (a *Arena) Add(s State) StateID {
	a.states = append(a.states, s)
	return StateID(len(a.states) - 1)
}

// Get returns a copy of the state header; container slices are shared and read-only.
func (a *Arena) Get(id StateID) State { return a.states[id] }

func (a *Arena) Len() int { return len(a.states) }

// Truncate drops every state created after the first n. Callers use it to
// reclaim the states of a failed search episode; ids >= n become invalid.
func (a *Arena) Truncate(n int) {
	if n < 0 || n >= len(a.states) {
		return
	}
	clear(a.states[n:])
	a.states = a.states[:n]
}

// Path returns the actions leading from the arena root to id, in order.
func (a *Arena) Path(id StateID) []domain.Action {
	var out []domain.Action
	for cur := id; cur != NoState; {
		s := a.states[cur]
		if s.parent == NoState {
			break
		}
		out = append(out, s.action)
		cur = s.parent
	}
	slices.Reverse(out)
	return out
}

// Depth is the number of actions between the root and id.
func (a *Arena) Depth(id StateID) int {
	n := 0
	for cur := a.states[id].parent; cur != NoState; cur = a.states[cur].parent {
		n++
	}
	return n
}
