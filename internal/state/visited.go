package state

// Visited is the set of world configurations seen during one search episode.
// States are bucketed by hash and compared structurally on collision.
type Visited struct {
	arena   *Arena
	buckets map[uint64][]StateID
	size    int
}

func NewVisited(a *Arena) *Visited {
	return &Visited{arena: a, buckets: make(map[uint64][]StateID)}
}

// Contains reports whether a state equal to s was added.
func (v *Visited) Contains(s State) bool {
	for _, id := range v.buckets[s.Hash()] {
		if v.arena.Get(id).Equal(s) {
			return true
		}
	}
	return false
}

// Add records id. It returns false when an equal state was already present.
func (v *Visited) Add(id StateID) bool {
	s := v.arena.Get(id)
	if v.Contains(s) {
		return false
	}
	v.buckets[s.Hash()] = append(v.buckets[s.Hash()], id)
	v.size++
	return true
}

func (v *Visited) Len() int { return v.size }
