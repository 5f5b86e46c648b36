package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/platform/tracing"
)

func TestHandlerSpanAttributes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/lg-1/weeks/3/leaderboard", nil)
	req.SetPathValue("leagueID", "lg-1")
	req.SetPathValue("week", "3")
	req = req.WithContext(withPrincipal(req.Context(), user.Principal{UserID: "u-7"}))

	attrs := handlerSpanAttributes(req)
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %v", attrs)
	}
	if attrs[0] != tracing.AttrLeagueID.String("lg-1") || attrs[1] != tracing.AttrWeek.Int(3) || attrs[2] != tracing.AttrUserID.String("u-7") {
		t.Fatalf("unexpected attributes: %v", attrs)
	}
}

func TestHandlerSpanAttributes_UnscopedRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/games?week=2", nil)
	if attrs := handlerSpanAttributes(req); len(attrs) != 0 {
		t.Fatalf("expected no attributes, got %v", attrs)
	}
}

func TestStartHandlerSpan_NoParentSpan(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	ctx, span := startHandlerSpan(req, "Healthz")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Fatalf("expected a no-op span without a parent")
	}
	if ctx != req.Context() {
		t.Fatalf("expected the request context to be returned unchanged")
	}
}
