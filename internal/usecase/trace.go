package usecase

import (
	"context"

	"github.com/riskibarqy/matchday/internal/observability"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = observability.NewTracer("matchday/internal/usecase")

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, name)
}
