// Package heuristic estimates the remaining delivery cost of a state from
// counts of the package transfers still to be made.
package heuristic

// Formula selects how a matrix combines its trip and service terms.
type Formula uint8

const (
	// Corrected charges every counted package its service price.
	Corrected Formula = iota
	// Legacy adds the per-package service price once per matrix, whatever
	// the number of packages. Kept to reproduce historical plan costs.
	Legacy
)

func (f Formula) String() string {
	if f == Legacy {
		return "legacy"
	}
	return "corrected"
}

// Pricing is what one matrix charges: a move per trip, a service fee per
// package moved and the vehicle capacity bounding the packages per trip.
type Pricing struct {
	Move     int
	Service  int
	Capacity int
}

// TransferMatrix counts pending transfers between n locations.
type TransferMatrix struct {
	n     int
	cells []int
}

func NewTransferMatrix(n int) *TransferMatrix {
	return &TransferMatrix{n: n, cells: make([]int, n*n)}
}

func (t *TransferMatrix) Increment(from, to int) { t.cells[from*t.n+to]++ }

func (t *TransferMatrix) Count(from, to int) int { return t.cells[from*t.n+to] }

// Reset zeroes every cell so the matrix can be reused.
func (t *TransferMatrix) Reset() { clear(t.cells) }

// Cost prices the off-diagonal cells: ceil(count/capacity) trips per cell
// plus the service term selected by formula.
func (t *TransferMatrix) Cost(p Pricing, formula Formula) int {
	trips, service := 0, 0
	for from := range t.n {
		for to := range t.n {
			if from == to {
				continue
			}
			count := t.cells[from*t.n+to]
			if count == 0 {
				continue
			}
			trips += (count + p.Capacity - 1) / p.Capacity
			service += count * p.Service
		}
	}

	if formula == Legacy {
		return trips*p.Move + p.Service
	}
	return trips*p.Move + service
}
