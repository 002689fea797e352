package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/tape/internal/adapters/telemetry"
	"go.trai.ch/tape/internal/core/ports"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr
}

func TestOTelTracer_StartWithAttributes(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(t.Context(), "batch",
		ports.WithAttribute("tape.records", 3),
		ports.WithAttribute("tape.dry_run", true),
	)
	span.SetAttribute("tape.program", "cc")
	span.SetAttribute("tape.args", []string{"-c", "a.c"})
	span.SetAttribute("tape.other", struct{ A int }{A: 1})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "batch", spans[0].Name())
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.Int("tape.records", 3),
		attribute.Bool("tape.dry_run", true),
		attribute.String("tape.program", "cc"),
		attribute.StringSlice("tape.args", []string{"-c", "a.c"}),
		attribute.String("tape.other", "{1}"),
	}, spans[0].Attributes())
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	tracer.EmitPlan(t.Context(), []string{"mkdir -p out"})
	assert.Empty(t, sr.Ended(), "no span in context means no event")

	ctx, span := tracer.Start(t.Context(), "batch")
	tracer.EmitPlan(ctx, []string{"mkdir -p out", "cc -c a.c"})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
	assert.Equal(t, []attribute.KeyValue{
		attribute.StringSlice("records", []string{"mkdir -p out", "cc -c a.c"}),
	}, events[0].Attributes)
}

func TestOTelSpan_RecordErrorAndWrite(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(t.Context(), "run-verbose")
	n, err := span.Write([]byte("output line"))
	require.NoError(t, err)
	assert.Equal(t, len("output line"), n)
	span.RecordError(errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)

	names := make([]string, 0, len(spans[0].Events()))
	for _, e := range spans[0].Events() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"log", "exception"}, names)
}

func TestSummary(t *testing.T) {
	summary := telemetry.NewSummary()
	tp := telemetry.Setup(summary)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	tracer := telemetry.NewOTelTracer("test")

	ctx, root := tracer.Start(t.Context(), "batch")
	_, ok := tracer.Start(ctx, "mkdir")
	ok.End()
	_, failed := tracer.Start(ctx, "run-verbose")
	failed.RecordError(errors.New("exit status 1"))
	failed.End()
	root.End()

	stats := summary.Stats()
	assert.Equal(t, 2, stats.Records)
	assert.Equal(t, 1, stats.Failed)
	assert.GreaterOrEqual(t, stats.Duration.Nanoseconds(), int64(0))

	summary.Reset()
	assert.Equal(t, telemetry.Stats{}, summary.Stats())
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx, span := tracer.Start(t.Context(), "batch", ports.WithAttribute("k", "v"))
	assert.Equal(t, t.Context(), ctx)

	tracer.EmitPlan(ctx, []string{"x"})
	span.SetAttribute("k", 1)
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	span.End()
}
