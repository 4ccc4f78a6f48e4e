package handlers

import (
	"log"
	"logistics-planner/internal/api/dto"
	"logistics-planner/internal/ports"
	"net/http"
	"strconv"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 500
)

// RunHandler exposes the run ledger read-only.
type RunHandler struct {
	Runs ports.RunRepository
}

func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.Runs == nil {
		writeError(w, r, http.StatusNotFound, "run ledger is disabled")
		return
	}

	limit := defaultRunLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRunLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	runs, err := h.Runs.ListRuns(r.Context(), limit)
	if err != nil {
		log.Printf("list runs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{Runs: make([]dto.RunResponse, 0, len(runs))}
	for _, rec := range runs {
		res.Runs = append(res.Runs, dto.RunResponse{
			RunID:        rec.RunID,
			InputName:    rec.InputName,
			Method:       rec.Method,
			ElapsedMs:    rec.ElapsedMs(),
			Found:        rec.Found,
			Cost:         rec.Cost,
			Instructions: rec.Instructions,
			CreatedAt:    rec.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
