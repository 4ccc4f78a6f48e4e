package api

import (
	"logistics-planner/internal/api/handlers"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/ports"
	"logistics-planner/internal/services"
	"net/http"
)

// Dependencies of the HTTP API. Runs and Cache may be nil.
type Deps struct {
	Runs    ports.RunRepository
	Cache   ports.PlanCache
	Costs   domain.Costs
	Options services.SearchOptions
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Runs:    deps.Runs,
		Cache:   deps.Cache,
		Costs:   deps.Costs,
		Options: deps.Options,
	}
	runHandler := &handlers.RunHandler{Runs: deps.Runs}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/runs", runHandler.List)

	return requestIDMiddleware(loggingMiddleware(mux))
}
