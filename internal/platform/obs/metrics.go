package obs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SearchMetrics holds the instruments recorded once per search phase.
type SearchMetrics struct {
	expanded metric.Int64Counter
	episodes metric.Int64Counter
	duration metric.Float64Histogram
}

func NewSearchMetrics(mp metric.MeterProvider) (*SearchMetrics, error) {
	meter := mp.Meter(tracerName)

	var m SearchMetrics
	var err error
	if m.expanded, err = meter.Int64Counter(
		"search.expanded",
		metric.WithDescription("States expanded by IDA* episodes"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, fmt.Errorf("create expanded counter: %w", err)
	}
	if m.episodes, err = meter.Int64Counter(
		"search.episodes",
		metric.WithDescription("Bounded depth-first episodes run"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, fmt.Errorf("create episodes counter: %w", err)
	}
	if m.duration, err = meter.Float64Histogram(
		"search.duration",
		metric.WithDescription("Phase search duration in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}
	return &m, nil
}

var defaultSearchMetrics = sync.OnceValue(func() *SearchMetrics {
	m, err := NewSearchMetrics(otel.GetMeterProvider())
	if err != nil {
		log.Printf("op=search_metrics err=%v", err)
		return nil
	}
	return m
})

// DefaultSearchMetrics returns instruments on the global meter provider, or
// nil when they cannot be created.
func DefaultSearchMetrics() *SearchMetrics { return defaultSearchMetrics() }

// RecordPhase records one finished phase. A nil receiver records nothing.
func (m *SearchMetrics) RecordPhase(ctx context.Context, phase string, found bool, episodes, expanded int, dur time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("phase", phase),
		attribute.Bool("found", found),
	)
	m.expanded.Add(ctx, int64(expanded), attrs)
	m.episodes.Add(ctx, int64(episodes), attrs)
	m.duration.Record(ctx, float64(dur.Microseconds())/1000, attrs)
}
