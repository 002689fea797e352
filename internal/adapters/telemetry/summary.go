package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Stats are the totals collected by a Summary.
type Stats struct {
	Records  int
	Failed   int
	Duration time.Duration
}

// Summary implements sdktrace.SpanProcessor. Root spans are batch runs;
// their children are records.
type Summary struct {
	mu    sync.Mutex
	stats Stats
}

// NewSummary returns an empty Summary.
func NewSummary() *Summary {
	return &Summary{}
}

// OnStart does nothing.
func (s *Summary) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd accumulates the ended span.
func (s *Summary) OnEnd(span sdktrace.ReadOnlySpan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !span.Parent().IsValid() {
		s.stats.Duration += span.EndTime().Sub(span.StartTime())
		return
	}

	s.stats.Records++
	if span.Status().Code == codes.Error {
		s.stats.Failed++
	}
}

// ForceFlush does nothing.
func (s *Summary) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (s *Summary) Shutdown(_ context.Context) error {
	return nil
}

// Stats returns the totals so far.
func (s *Summary) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Reset clears the totals.
func (s *Summary) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = Stats{}
}

// Setup installs a global tracer provider feeding the given processors and
// returns it so the caller can shut it down.
func Setup(processors ...sdktrace.SpanProcessor) *sdktrace.TracerProvider {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp
}
