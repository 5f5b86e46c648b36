package usecase

import (
	"context"
	"errors"

	"github.com/riskibarqy/pickem-league/internal/platform/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = tracing.New("pickem-league/internal/usecase", nil)

func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, name, attrs...)
}

// failUsecaseSpan records server-side failures only. Caller mistakes such as
// bad input, unknown ids or non-membership leave the span status untouched.
func failUsecaseSpan(span trace.Span, err error) {
	if err == nil || isCallerError(err) {
		return
	}
	tracing.Fail(span, err)
}

func isCallerError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrConflict)
}
