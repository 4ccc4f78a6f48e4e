package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestTimeLogsRunIDAndError(t *testing.T) {
	buf := captureLog(t)
	ctx := WithRunID(context.Background(), "run-1")

	err := errors.New("boom")
	Time(ctx, "solve")(&err)

	line := buf.String()
	for _, want := range []string{"run_id=run-1", "op=solve", "err=boom"} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}

func TestTimeWithoutError(t *testing.T) {
	buf := captureLog(t)

	var err error
	Time(context.Background(), "parse")(&err)

	if strings.Contains(buf.String(), "err=") {
		t.Fatalf("unexpected err field: %q", buf.String())
	}
}

func TestSpansReachRegisteredProvider(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := StartSpan(context.Background(), "ida.episode", attribute.Int("limit", 145))
	err := errors.New("cancelled")
	EndSpan(span, &err)

	ended := sr.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(ended))
	}
	if ended[0].Name() != "ida.episode" {
		t.Fatalf("span name = %q", ended[0].Name())
	}
	if ended[0].Status().Code != codes.Error {
		t.Fatalf("span status = %v, want error", ended[0].Status().Code)
	}
}

func TestSearchMetricsRecordPhase(t *testing.T) {
	m, err := NewSearchMetrics(noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.RecordPhase(context.Background(), "global", true, 3, 120, 5*time.Millisecond)

	var missing *SearchMetrics
	missing.RecordPhase(context.Background(), "global", false, 1, 1, time.Millisecond)
}
