package services

import (
	"bytes"
	"context"
	"errors"
	"log"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/state"
	"strings"
	"testing"
)

type memoryWriter struct {
	records []domain.RunRecord
	plans   []*domain.Plan
}

func (w *memoryWriter) WritePlan(_ context.Context, rec domain.RunRecord, plan *domain.Plan) error {
	w.records = append(w.records, rec)
	w.plans = append(w.plans, plan)
	return nil
}

type memoryRuns struct {
	saved []domain.RunRecord
	err   error
}

func (r *memoryRuns) SaveRun(_ context.Context, rec domain.RunRecord) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, rec)
	return nil
}

func (r *memoryRuns) ListRuns(_ context.Context, limit int) ([]domain.RunRecord, error) {
	return r.saved, nil
}

type memoryCache struct {
	plans map[string]*domain.Plan
	hits  int
}

func (c *memoryCache) GetPlan(_ context.Context, key string) (*domain.Plan, bool, error) {
	p, ok := c.plans[key]
	if ok {
		c.hits++
	}
	return p, ok, nil
}

func (c *memoryCache) PutPlan(_ context.Context, key string, plan *domain.Plan) error {
	c.plans[key] = plan
	return nil
}

func TestRunAllWritesEveryMethodInOrder(t *testing.T) {
	m := singleHop(t)
	writer := &memoryWriter{}
	runs := &memoryRuns{}

	outcomes, err := RunAll(context.Background(), m, RunRequest{InputName: "out.txt"}, writer, runs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outcomes) != 4 || len(writer.records) != 4 || len(runs.saved) != 4 {
		t.Fatalf("expected 4 outcomes, writes and records, got %d/%d/%d", len(outcomes), len(writer.records), len(runs.saved))
	}
	for i, method := range Methods {
		rec := runs.saved[i]
		if rec.Method != method.Name() {
			t.Fatalf("record %d method = %q, want %q", i, rec.Method, method.Name())
		}
		if rec.RunID == "" || rec.RunID != runs.saved[0].RunID {
			t.Fatalf("record %d run id = %q, want shared non-empty id", i, rec.RunID)
		}
		if !rec.Found || rec.Cost != 145 || rec.Instructions != 3 {
			t.Fatalf("record %d = %+v", i, rec)
		}
		if rec.InputName != "out.txt" {
			t.Fatalf("record %d input = %q", i, rec.InputName)
		}
	}
}

func TestRunAllServesRepeatedMethodsFromCache(t *testing.T) {
	m := singleHop(t)
	cache := &memoryCache{plans: map[string]*domain.Plan{}}

	if _, err := RunAll(context.Background(), m, RunRequest{}, nil, nil, cache); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cache.plans) != 4 || cache.hits != 0 {
		t.Fatalf("after first run: %d cached, %d hits", len(cache.plans), cache.hits)
	}

	outcomes, err := RunAll(context.Background(), m, RunRequest{}, nil, nil, cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.hits != 4 {
		t.Fatalf("expected 4 cache hits, got %d", cache.hits)
	}
	if outcomes[3].Plan.Cost != 145 {
		t.Fatalf("cached plan cost = %d", outcomes[3].Plan.Cost)
	}
}

func TestRunAllStopsOnLedgerError(t *testing.T) {
	m := singleHop(t)
	runs := &memoryRuns{err: errors.New("disk full")}

	outcomes, err := RunAll(context.Background(), m, RunRequest{}, nil, runs, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(outcomes) != 0 {
		t.Fatalf("expected no completed outcome, got %d", len(outcomes))
	}
}

func TestCacheKeyTracksOptions(t *testing.T) {
	m := singleHop(t)

	a, err := CacheKey(m, Methods[0], SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := CacheKey(m, Methods[0], SearchOptions{MaxDepth: 10})
	c, _ := CacheKey(m, Methods[1], SearchOptions{})
	if a == b || a == c {
		t.Fatalf("cache keys must differ: %q %q %q", a, b, c)
	}
}

func TestRunAllDumpsFinalState(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	m := singleHop(t)
	req := RunRequest{
		Methods:   []Method{{Strategy: Global, Mode: state.AllActions}},
		DumpState: true,
	}
	if _, err := RunAll(context.Background(), m, req, nil, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"op=final_state", "method=GLOBAL_ALLACTIONS", "depth=3", "place 1 holds [0]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}
