package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func runCommand(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()

	week, season, seasonType, mine = 0, 0, 0, false
	token = ""
	timeout = 5 * time.Second

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--host", serverURL}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLeaderboardCommandBuildsPathAndToken(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":[]}`))
	}))
	defer srv.Close()

	out, err := runCommand(t, srv.URL, "leaderboard", "lg1", "--week", "3", "--token", "abc")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotPath != "/v1/leagues/lg1/weeks/3/leaderboard" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer abc" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if !strings.Contains(out, "Status Code: 200") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestReconcileCommandUsesPost(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":{}}`))
	}))
	defer srv.Close()

	if _, err := runCommand(t, srv.URL, "reconcile", "lg1", "--week", "2", "--me"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/v1/leagues/lg1/weeks/2/submission/reconcile" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestCommandFailsOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","error":{"code":403}}`))
	}))
	defer srv.Close()

	if _, err := runCommand(t, srv.URL, "winners", "lg1"); err == nil {
		t.Fatalf("expected error for 403 response")
	}
}

func TestGamesCommandQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":[]}`))
	}))
	defer srv.Close()

	if _, err := runCommand(t, srv.URL, "games", "--week", "1", "--season", "2024"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotQuery != "season=2024&week=1" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
}

func TestPrettyJSONFallsBackToRaw(t *testing.T) {
	if got := prettyJSON([]byte("not json")); got != "not json" {
		t.Fatalf("unexpected output: %q", got)
	}
}
