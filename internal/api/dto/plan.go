package dto

type PlanResponse struct {
	Method       string   `json:"method"`
	Found        bool     `json:"found"`
	Cost         int      `json:"cost"`
	Outcome      string   `json:"outcome"`
	ElapsedMs    int64    `json:"elapsed_ms"`
	Instructions []string `json:"instructions"`
}

type ListPlanResponse struct {
	RunID string         `json:"run_id"`
	Plans []PlanResponse `json:"plans"`
}
