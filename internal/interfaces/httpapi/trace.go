package httpapi

import (
	"context"

	"github.com/riskibarqy/matchday/internal/observability"
	"go.opentelemetry.io/otel/trace"
)

// Only handler methods get their own spans; middleware and response helpers
// share the otelhttp server span.
var apiTracer = observability.NewTracer("matchday/internal/interfaces/httpapi", "httpapi.Handler.")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}
