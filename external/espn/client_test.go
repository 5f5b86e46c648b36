package espn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/metrics"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

const scoreboardFixture = `{
  "events": [
    {
      "id": "401671789",
      "date": "2024-09-06T00:20Z",
      "week": {"number": 1},
      "status": {"type": {"state": "post", "completed": true}},
      "competitions": [{
        "competitors": [
          {"homeAway": "home", "score": "27", "team": {"displayName": "Kansas City Chiefs", "abbreviation": "KC"}},
          {"homeAway": "away", "score": "20", "team": {"displayName": "Baltimore Ravens", "abbreviation": "BAL"}}
        ]
      }]
    },
    {
      "id": "401671790",
      "date": "2024-09-08T17:00Z",
      "week": {"number": 1},
      "status": {"type": {"state": "pre"}},
      "competitions": [{
        "competitors": [
          {"homeAway": "away", "score": "0", "team": {"displayName": "Pittsburgh Steelers"}},
          {"homeAway": "home", "score": "0", "team": {"displayName": "Atlanta Falcons"}}
        ]
      }]
    },
    {
      "id": "",
      "competitions": []
    },
    {
      "id": "401671791",
      "status": {"type": {"state": "in"}},
      "competitions": [{"competitors": [{"homeAway": "home", "team": {"displayName": "Solo"}}]}]
    }
  ]
}`

func newTestClient(t *testing.T, srv *httptest.Server, cfg ClientConfig) *Client {
	t.Helper()
	cfg.BaseURL = srv.URL
	cfg.HTTPClient = srv.Client()
	cfg.RetryBackoff = time.Millisecond
	cfg.Logger = logging.NewNop()
	return NewClient(cfg)
}

func TestListGames_MapsScoreboard(t *testing.T) {
	t.Parallel()

	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		if r.URL.Path != "/scoreboard" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(scoreboardFixture))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, ClientConfig{SeasonType: 2})
	games, err := client.ListGames(context.Background(), game.Query{Week: 1, Season: 2024})
	require.NoError(t, err)

	assert.Equal(t, "seasontype=2&week=1&year=2024", gotQuery)
	assert.Equal(t, userAgent, gotAgent)
	require.Len(t, games, 2)

	first := games[0]
	assert.Equal(t, "401671789", first.ID)
	assert.Equal(t, "Kansas City Chiefs", first.HomeTeam)
	assert.Equal(t, "Baltimore Ravens", first.AwayTeam)
	assert.Equal(t, game.StatusFinal, first.Status)
	require.NotNil(t, first.HomeScore)
	require.NotNil(t, first.AwayScore)
	assert.Equal(t, 27, *first.HomeScore)
	assert.Equal(t, 20, *first.AwayScore)
	require.NotNil(t, first.KickoffAt)
	assert.Equal(t, time.Date(2024, 9, 6, 0, 20, 0, 0, time.UTC), *first.KickoffAt)

	second := games[1]
	assert.Equal(t, "Atlanta Falcons", second.HomeTeam)
	assert.Equal(t, "Pittsburgh Steelers", second.AwayTeam)
	assert.Equal(t, game.StatusScheduled, second.Status)
	assert.False(t, second.Result().IsFinal())
}

func TestListGames_RejectsInvalidWeek(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	_, err := client.ListGames(context.Background(), game.Query{Week: 0})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestNewClient_DefaultTransportIsTraced(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events": []}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 2 * time.Second, Logger: logging.NewNop()})
	require.IsType(t, &otelhttp.Transport{}, client.httpClient.Transport)
	assert.Equal(t, 2*time.Second, client.httpClient.Timeout)

	games, err := client.ListGames(context.Background(), game.Query{Week: 1})
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestListGames_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"events": []}`))
	}))
	defer srv.Close()

	m := metrics.NewMock()
	client := newTestClient(t, srv, ClientConfig{MaxRetries: 2, Metrics: m})
	games, err := client.ListGames(context.Background(), game.Query{Week: 3})
	require.NoError(t, err)
	assert.Empty(t, games)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 1, m.FeedRequests(metrics.FeedOutcomeSuccess))
}

func TestListGames_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, ClientConfig{MaxRetries: 3})
	_, err := client.ListGames(context.Background(), game.Query{Week: 3})
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestListGames_CachesByQuery(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(scoreboardFixture))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, ClientConfig{Cache: cache.NewStore(time.Minute)})
	ctx := context.Background()

	first, err := client.ListGames(ctx, game.Query{Week: 1})
	require.NoError(t, err)
	*first[0].HomeScore = 99

	second, err := client.ListGames(ctx, game.Query{Week: 1})
	require.NoError(t, err)
	assert.Equal(t, 27, *second[0].HomeScore, "cached payload must not share state with callers")
	assert.Equal(t, int32(1), calls.Load())

	_, err = client.ListGames(ctx, game.Query{Week: 2})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestListGames_OpensCircuitAfterFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := metrics.NewMock()
	client := newTestClient(t, srv, ClientConfig{
		Metrics: m,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Hour,
		},
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := client.ListGames(ctx, game.Query{Week: 1})
		require.Error(t, err)
	}
	assert.True(t, m.CircuitOpen())

	_, err := client.ListGames(ctx, game.Query{Week: 1})
	require.True(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 1, m.FeedRequests(metrics.FeedOutcomeCircuitOpen))
	assert.Equal(t, 2, m.FeedRequests(metrics.FeedOutcomeError))
}

func TestParseScore(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parseScore(""))
	assert.Nil(t, parseScore("n/a"))
	got := parseScore(" 17 ")
	require.NotNil(t, got)
	assert.Equal(t, 17, *got)
}
