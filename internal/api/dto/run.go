package dto

import "time"

type RunResponse struct {
	RunID        string    `json:"run_id"`
	InputName    string    `json:"input_name"`
	Method       string    `json:"method"`
	ElapsedMs    int64     `json:"elapsed_ms"`
	Found        bool      `json:"found"`
	Cost         int       `json:"cost"`
	Instructions int       `json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}
