package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func TestShouldTraceRequest(t *testing.T) {
	cases := map[string]bool{
		"/healthz":                           false,
		" /healthz ":                         false,
		"/READYZ":                            false,
		"/metrics":                           false,
		"/":                                  true,
		"/v1/games":                          true,
		"/v1/leagues/lg-1/season/me":         true,
		"/v1/leagues/lg-1/weeks/2/reconcile": true,
	}
	for path, want := range cases {
		if got := shouldTraceRequest(path); got != want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", path, got, want)
		}
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
		err    bool
	}{
		{name: "valid", header: "Bearer abc.def", want: "abc.def"},
		{name: "case insensitive scheme", header: "bearer  abc ", want: "abc"},
		{name: "missing", header: "", err: true},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", err: true},
		{name: "scheme only", header: "Bearer", err: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/games", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			got, err := bearerToken(req)
			if tc.err {
				if !errors.Is(err, usecase.ErrUnauthorized) {
					t.Fatalf("expected ErrUnauthorized, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("bearerToken()=%q,%v want=%q", got, err, tc.want)
			}
		})
	}
}

func TestRequestLogging_LevelFollowsStatus(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{status: http.StatusOK, level: `"level":"INFO"`},
		{status: http.StatusNotFound, level: `"level":"WARN"`},
		{status: http.StatusServiceUnavailable, level: `"level":"ERROR"`},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		logger := logging.New(&buf, logging.LevelDebug, logging.FormatJSON)
		handler := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte("body"))
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/games", nil))

		line := buf.String()
		if !strings.Contains(line, tc.level) {
			t.Fatalf("status %d: expected %s in %s", tc.status, tc.level, line)
		}
		if !strings.Contains(line, `"bytes":4`) {
			t.Fatalf("status %d: expected bytes=4 in %s", tc.status, line)
		}
	}
}

func TestRequestLogging_SkipsProbePaths(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.LevelDebug, logging.FormatJSON)
	handler := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if buf.Len() != 0 {
		t.Fatalf("expected no log line for /healthz, got %s", buf.String())
	}
}
