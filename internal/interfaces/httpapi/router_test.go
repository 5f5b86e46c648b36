package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type stubVerifier map[string]user.Principal

func (s stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := s[token]
	if !ok {
		return user.Principal{}, usecase.ErrUnauthorized
	}
	return p, nil
}

type staticFeed []game.Game

func (f staticFeed) ListGames(_ context.Context, q game.Query) ([]game.Game, error) {
	if q.Week != 1 {
		return []game.Game{}, nil
	}
	return append([]game.Game(nil), f...), nil
}

func intPtr(v int) *int { return &v }

func finalGame(id, home, away string, homeScore, awayScore int) game.Game {
	return game.Game{ID: id, Week: 1, HomeTeam: home, AwayTeam: away, HomeScore: intPtr(homeScore), AwayScore: intPtr(awayScore), Status: game.StatusFinal}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	feed := staticFeed{
		finalGame("g1", "Chiefs", "Ravens", 27, 20),
		finalGame("g2", "Falcons", "Steelers", 10, 18),
		finalGame("g3", "Bills", "Cardinals", 34, 28),
		finalGame("g4", "Bears", "Titans", 24, 17),
		finalGame("g5", "Bengals", "Patriots", 10, 16),
	}
	leagues := memory.NewLeagueRepository()
	submissions := memory.NewSubmissionRepository()
	seasons := memory.NewSeasonRecordRepository()
	now := time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)
	opts := []usecase.Option{
		usecase.WithLogger(logging.NewNop()),
		usecase.WithClock(func() time.Time { return now }),
	}

	submissionSvc := usecase.NewSubmissionService(leagues, submissions, seasons, feed, idgen.NewUUIDGenerator(), opts...)
	handler := NewHandler(
		usecase.NewLeagueService(leagues, idgen.NewUUIDGenerator(), opts...),
		submissionSvc,
		usecase.NewStandingsService(leagues, submissions, seasons, submissionSvc, opts...),
		usecase.NewGameService(feed, opts...),
		logging.NewNop(),
	)
	verifier := stubVerifier{
		"alice-token":   {UserID: "alice", DisplayName: "Alice"},
		"bob-token":     {UserID: "bob", DisplayName: "Bob"},
		"mallory-token": {UserID: "mallory", DisplayName: "Mallory"},
	}
	return NewRouter(handler, verifier, logging.NewNop(), nil, []string{"*"})
}

type envelope struct {
	Data  map[string]any   `json:"data"`
	Error *googleErrorBody `json:"error"`
}

type listEnvelope struct {
	Data []map[string]any `json:"data"`
}

func do(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

var alicePicks = map[string]any{
	"picks": []map[string]any{
		{"game_id": "g1", "team": "Chiefs"},
		{"game_id": "g2", "team": "Steelers"},
		{"game_id": "g3", "team": "Bills"},
		{"game_id": "g4", "team": "Titans"},
		{"game_id": "g5", "team": "Patriots"},
	},
	"tie_break_game_id": "g1",
	"predicted_total":   47,
}

func TestRouter_LeagueSubmissionAndStandingsFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/leagues", "alice-token", map[string]any{"name": "Sunday Crew", "password": "secret"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[envelope](t, rec)
	leagueID, _ := created.Data["id"].(string)
	inviteCode, _ := created.Data["invite_code"].(string)
	require.NotEmpty(t, leagueID)
	assert.Equal(t, "standard", created.Data["mode"])

	rec = do(t, router, http.MethodPost, "/v1/leagues/join", "bob-token", map[string]any{"invite_code": inviteCode, "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/v1/leagues/"+leagueID, "bob-token", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	detail := decode[envelope](t, rec)
	members, _ := detail.Data["members"].([]any)
	assert.Len(t, members, 2)

	submissionPath := "/v1/leagues/" + leagueID + "/weeks/1/submission"
	rec = do(t, router, http.MethodPost, submissionPath, "alice-token", alicePicks)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sub := decode[envelope](t, rec)
	assert.EqualValues(t, 13, sub.Data["weekly_points"])
	assert.EqualValues(t, 4, sub.Data["correct_picks"])
	assert.EqualValues(t, 5, sub.Data["tfs_points"])

	rec = do(t, router, http.MethodPost, submissionPath, "alice-token", alicePicks)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, submissionPath, "bob-token", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/weeks/1/leaderboard", "bob-token", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	board := decode[listEnvelope](t, rec)
	require.Len(t, board.Data, 2)
	assert.Equal(t, "alice", board.Data[0]["user_id"])
	assert.EqualValues(t, 1, board.Data[0]["rank"])
	assert.Equal(t, false, board.Data[1]["submitted"])

	rec = do(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/season/me", "alice-token", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	season := decode[envelope](t, rec)
	assert.EqualValues(t, 13, season.Data["total_points"])
	assert.EqualValues(t, 1, season.Data["weeks_played"])

	rec = do(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/season/winners", "bob-token", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	winners := decode[listEnvelope](t, rec)
	require.Len(t, winners.Data, 1)
	assert.Equal(t, "alice", winners.Data[0]["user_id"])

	rec = do(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/weeks/1/reconcile", "alice-token", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reconciled := decode[envelope](t, rec)
	assert.EqualValues(t, 0, reconciled.Data["changed_count"])
	assert.EqualValues(t, 1, reconciled.Data["unchanged_count"])
}

func TestRouter_AuthAndMembership(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/leagues/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/leagues/me", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodPost, "/v1/leagues", "alice-token", map[string]any{"name": "Sunday Crew", "password": "secret"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	leagueID, _ := decode[envelope](t, rec).Data["id"].(string)

	rec = do(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/season/leaderboard", "mallory-token", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
}

func TestRouter_RejectsBadInput(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/leagues", "alice-token", map[string]any{"name": "Crew", "password": "secret", "mode": "survivor"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/v1/leagues", "alice-token", map[string]any{"name": "Crew", "password": "secret", "extra": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/v1/leagues/l1/weeks/zero/leaderboard", "alice-token", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/v1/games", "alice-token", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestRouter_ListGames(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/games?week=1", "alice-token", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	games := decode[listEnvelope](t, rec)
	require.Len(t, games.Data, 5)
	assert.Equal(t, "Chiefs", games.Data[0]["home_team"])
	assert.Equal(t, "final", games.Data[0]["status"])
}

func TestRouter_HealthzAndRecover(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	panicking := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec = httptest.NewRecorder()
	panicking.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/games", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
