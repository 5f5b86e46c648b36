package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/platform/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = tracing.New("pickem-league/internal/interfaces/httpapi", func(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
})

// startHandlerSpan opens the per-handler span under the otelhttp server span,
// tagged with the league, week and caller of the request when known.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	return apiTracer.Start(r.Context(), handlerSpanPrefix+name, handlerSpanAttributes(r)...)
}

func handlerSpanAttributes(r *http.Request) []attribute.KeyValue {
	week, _ := strconv.Atoi(strings.TrimSpace(r.PathValue("week")))
	var userID string
	if p, ok := principalFromContext(r.Context()); ok {
		userID = p.UserID
	}
	return tracing.Scope(r.PathValue("leagueID"), week, userID)
}
