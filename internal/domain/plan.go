package domain

import (
	"strconv"
	"time"
)

// NoSolution is the log sentinel written in place of a cost when a method fails.
const NoSolution = "NO_SOLUTION_FOUND"

// Represents the outcome of one solve method over one model.
// A Plan is immutable planning data: the ordered instructions and their
// cumulative cost. Found is false when the search exhausted every bound.
type Plan struct {
	Method  string
	Found   bool
	Cost    int
	Actions []Action
}

// Instructions renders the plan in the output vocabulary, one line per action.
func (p *Plan) Instructions() []string {
	out := make([]string, 0, len(p.Actions))
	for _, a := range p.Actions {
		out = append(out, a.String())
	}
	return out
}

// Outcome returns the cost as text, or NoSolution.
func (p *Plan) Outcome() string {
	if p == nil || !p.Found {
		return NoSolution
	}
	return strconv.Itoa(p.Cost)
}

// Represents one executed method in the run ledger.
type RunRecord struct {
	RunID        string
	InputName    string
	Method       string
	Elapsed      time.Duration
	Found        bool
	Cost         int
	Instructions int
	CreatedAt    time.Time
}

// ElapsedMs is the elapsed time in whole milliseconds, as written to the log line.
func (r RunRecord) ElapsedMs() int64 { return r.Elapsed.Milliseconds() }
