package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	AttrLeagueID = attribute.Key("pickem.league_id")
	AttrUserID   = attribute.Key("pickem.user_id")
	AttrWeek     = attribute.Key("pickem.week")
)

var noopSpan = trace.SpanFromContext(context.Background())

// Tracer starts child spans only when the context already carries a sampled
// parent, so helpers called from untraced routes never emit root spans.
type Tracer struct {
	tracer trace.Tracer
	allow  func(name string) bool
}

// New returns a Tracer for the instrumentation scope. A nil allow accepts every
// non-empty span name.
func New(scope string, allow func(name string) bool) Tracer {
	return Tracer{tracer: otel.Tracer(scope), allow: allow}
}

func (t Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if t.allow != nil && !t.allow(name) {
		return ctx, noopSpan
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Scope builds the league/week/user attributes shared by handler and usecase
// spans. Empty values and non-positive weeks are left out.
func Scope(leagueID string, week int, userID string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if leagueID = strings.TrimSpace(leagueID); leagueID != "" {
		attrs = append(attrs, AttrLeagueID.String(leagueID))
	}
	if week > 0 {
		attrs = append(attrs, AttrWeek.Int(week))
	}
	if userID = strings.TrimSpace(userID); userID != "" {
		attrs = append(attrs, AttrUserID.String(userID))
	}
	return attrs
}

// Fail marks the span as errored. Nil errors are ignored.
func Fail(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
