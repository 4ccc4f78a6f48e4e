package api

import (
	"context"
	"encoding/json"
	"logistics-planner/internal/api/dto"
	"logistics-planner/internal/domain"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
)

// Two single-place cities; truck and plane start on city 0's airport.
const singleHop = `2
2
0
1
0
1
1
0
1
0
1
0 1
`

type memoryRuns struct {
	saved []domain.RunRecord
}

func (r *memoryRuns) SaveRun(_ context.Context, rec domain.RunRecord) error {
	r.saved = append(r.saved, rec)
	return nil
}

func (r *memoryRuns) ListRuns(_ context.Context, limit int) ([]domain.RunRecord, error) {
	out := slices.Clone(r.saved)
	slices.Reverse(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newTestRouter(runs *memoryRuns) http.Handler {
	deps := Deps{Costs: domain.DefaultCosts()}
	if runs != nil {
		deps.Runs = runs
	}
	return NewRouter(deps)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(nil), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "logistics-planner" {
		t.Fatalf("body = %v", body)
	}
	if rec := do(t, newTestRouter(nil), http.MethodPost, "/health", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health status = %d", rec.Code)
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("request id = %q", got)
	}
}

func TestPlanSingleMethod(t *testing.T) {
	runs := &memoryRuns{}
	rec := do(t, newTestRouter(runs), http.MethodPost, "/plans?strategy=global&mode=full&name=hop", singleHop)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	var res dto.ListPlanResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Plans) != 1 || res.RunID == "" {
		t.Fatalf("response = %+v", res)
	}

	p := res.Plans[0]
	want := []string{"pickUp 0 0", "fly 0 1", "dropOff 0 0"}
	if p.Method != "GLOBAL_ALLACTIONS" || !p.Found || p.Cost != 145 || p.Outcome != "145" {
		t.Fatalf("plan = %+v", p)
	}
	if !slices.Equal(p.Instructions, want) {
		t.Fatalf("instructions = %v, want %v", p.Instructions, want)
	}

	if len(runs.saved) != 1 || runs.saved[0].InputName != "hop" {
		t.Fatalf("ledger = %+v", runs.saved)
	}
}

func TestPlanEveryMethod(t *testing.T) {
	rec := do(t, newTestRouter(nil), http.MethodPost, "/plans", singleHop)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	var res dto.ListPlanResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var names []string
	for _, p := range res.Plans {
		names = append(names, p.Method)
	}
	want := []string{"LOCAL_MOVESONLY", "LOCAL_ALLACTIONS", "GLOBAL_MOVESONLY", "GLOBAL_ALLACTIONS"}
	if !slices.Equal(names, want) {
		t.Fatalf("methods = %v, want %v", names, want)
	}
}

func TestPlanRejectsBadRequests(t *testing.T) {
	h := newTestRouter(nil)

	cases := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"wrong method", http.MethodGet, "/plans", "", http.StatusMethodNotAllowed},
		{"unknown strategy", http.MethodPost, "/plans?strategy=sideways", singleHop, http.StatusBadRequest},
		{"malformed model", http.MethodPost, "/plans", "2\nx\n", http.StatusBadRequest},
		{"empty model", http.MethodPost, "/plans", "", http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := do(t, h, tc.method, tc.target, tc.body)
		if rec.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d (%s)", tc.name, rec.Code, tc.status, rec.Body.String())
		}
	}
}

func TestRunsListsNewestFirst(t *testing.T) {
	runs := &memoryRuns{}
	h := newTestRouter(runs)

	for _, mode := range []string{"full", "moves"} {
		if rec := do(t, h, http.MethodPost, "/plans?mode="+mode, singleHop); rec.Code != http.StatusOK {
			t.Fatalf("plan %s: status = %d", mode, rec.Code)
		}
	}

	rec := do(t, h, http.MethodGet, "/runs?limit=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var res dto.ListRunsResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Runs) != 1 || res.Runs[0].Method != "GLOBAL_MOVESONLY" {
		t.Fatalf("runs = %+v", res.Runs)
	}
}

func TestRunsValidation(t *testing.T) {
	if rec := do(t, newTestRouter(nil), http.MethodGet, "/runs", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("disabled ledger: status = %d", rec.Code)
	}

	h := newTestRouter(&memoryRuns{})
	for _, limit := range []string{"0", "501", "many"} {
		if rec := do(t, h, http.MethodGet, "/runs?limit="+limit, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("limit %s: status = %d", limit, rec.Code)
		}
	}
}
