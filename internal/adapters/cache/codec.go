package cache

import (
	"encoding/json"
	"fmt"
	"logistics-planner/internal/domain"
)

// planPayload is the stored form of a plan: instructions in the output vocabulary.
type planPayload struct {
	Method       string   `json:"method"`
	Found        bool     `json:"found"`
	Cost         int      `json:"cost"`
	Instructions []string `json:"instructions"`
}

func encodePlan(p *domain.Plan) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("encode plan: plan is nil")
	}
	b, err := json.Marshal(planPayload{
		Method:       p.Method,
		Found:        p.Found,
		Cost:         p.Cost,
		Instructions: p.Instructions(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return b, nil
}

func decodePlan(b []byte) (*domain.Plan, error) {
	var payload planPayload
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	p := &domain.Plan{
		Method:  payload.Method,
		Found:   payload.Found,
		Cost:    payload.Cost,
		Actions: make([]domain.Action, 0, len(payload.Instructions)),
	}
	for _, line := range payload.Instructions {
		a, err := domain.ParseAction(line)
		if err != nil {
			return nil, fmt.Errorf("decode plan: %w", err)
		}
		p.Actions = append(p.Actions, a)
	}
	return p, nil
}
