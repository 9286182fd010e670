package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Tracer only opens child spans. Requests without a sampled parent, such as
// health probes, never produce root spans from helpers.
type Tracer struct {
	tracer   trace.Tracer
	prefixes []string
}

// NewTracer restricts spans to names with one of prefixes when any are given.
func NewTracer(scope string, prefixes ...string) Tracer {
	return Tracer{tracer: otel.Tracer(scope), prefixes: prefixes}
}

func (t Tracer) Allows(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if len(t.prefixes) == 0 {
		return true
	}
	for _, prefix := range t.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func (t Tracer) Start(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !t.Allows(name) {
		return ctx, noopSpan
	}
	return t.tracer.Start(ctx, name)
}

// RecordError marks the span in ctx as failed.
func RecordError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
