package handlers

import (
	"errors"
	"io"
	"log"
	"logistics-planner/internal/adapters/modelfile"
	"logistics-planner/internal/api/dto"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/ports"
	"logistics-planner/internal/services"
	"net/http"
	"strings"
)

// Upper bound of an uploaded model.
const maxModelBytes = 1 << 20

type PlanHandler struct {
	Runs    ports.RunRepository
	Cache   ports.PlanCache
	Costs   domain.Costs
	Options services.SearchOptions
}

// Plan solves the text model in the request body.
// Without strategy and mode every method runs, as the CLI does;
// with either one only that method runs.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	var methods []services.Method
	if q.Get("strategy") != "" || q.Get("mode") != "" {
		m, err := services.ParseMethod(q.Get("strategy"), q.Get("mode"))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		methods = []services.Method{m}
	}

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxModelBytes+1))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "cannot read body")
		return
	}
	if len(body) > maxModelBytes {
		writeError(w, r, http.StatusRequestEntityTooLarge, "model too large")
		return
	}

	model, err := modelfile.Parse(strings.NewReader(string(body)), h.Costs)
	if err != nil {
		if errors.Is(err, modelfile.ErrFormat) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("parse model failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	name := strings.TrimSpace(q.Get("name"))
	if name == "" {
		name = "http"
	}

	req := services.RunRequest{InputName: name, Methods: methods, Options: h.Options}
	outcomes, err := services.RunAll(r.Context(), model, req, nil, h.Runs, h.Cache)
	if err != nil {
		log.Printf("run all failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPlanResponse{Plans: make([]dto.PlanResponse, 0, len(outcomes))}
	for _, o := range outcomes {
		res.RunID = o.Record.RunID
		res.Plans = append(res.Plans, dto.PlanResponse{
			Method:       o.Plan.Method,
			Found:        o.Plan.Found,
			Cost:         o.Plan.Cost,
			Outcome:      o.Plan.Outcome(),
			ElapsedMs:    o.Record.ElapsedMs(),
			Instructions: o.Plan.Instructions(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
