package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/metrics"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

var fixedNow = time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)

type stubFeed struct {
	mu    sync.Mutex
	games []game.Game
	err   error
	calls int
}

func (f *stubFeed) ListGames(_ context.Context, _ game.Query) ([]game.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]game.Game(nil), f.games...), nil
}

func (f *stubFeed) set(games []game.Game, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.games = games
	f.err = err
}

func (f *stubFeed) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func intPtr(v int) *int { return &v }

func finalGame(id, home, away string, homeScore, awayScore int) game.Game {
	return game.Game{
		ID:        id,
		Week:      1,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: intPtr(homeScore),
		AwayScore: intPtr(awayScore),
		Status:    game.StatusFinal,
	}
}

func scheduled(games []game.Game) []game.Game {
	out := make([]game.Game, len(games))
	for i, g := range games {
		g.HomeScore, g.AwayScore = nil, nil
		g.Status = game.StatusScheduled
		out[i] = g
	}
	return out
}

// weekOneFinals: Chiefs, Steelers, Bills, Bears and Patriots win. g1 totals 47.
func weekOneFinals() []game.Game {
	return []game.Game{
		finalGame("g1", "Chiefs", "Ravens", 27, 20),
		finalGame("g2", "Falcons", "Steelers", 10, 18),
		finalGame("g3", "Bills", "Cardinals", 34, 28),
		finalGame("g4", "Bears", "Titans", 24, 17),
		finalGame("g5", "Bengals", "Patriots", 10, 16),
	}
}

// fourCorrectPicks gets every game but g4 right.
func fourCorrectPicks() []pickem.Pick {
	return []pickem.Pick{
		{GameID: "g1", Team: "Chiefs"},
		{GameID: "g2", Team: "Steelers"},
		{GameID: "g3", Team: "Bills"},
		{GameID: "g4", Team: "Titans"},
		{GameID: "g5", Team: "Patriots"},
	}
}

type testEnv struct {
	leagues     *memory.LeagueRepository
	submissions *memory.SubmissionRepository
	seasons     *memory.SeasonRecordRepository
	feed        *stubFeed
	metrics     *metrics.Mock

	submissionSvc *SubmissionService
	standingsSvc  *StandingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		leagues:     memory.NewLeagueRepository(),
		submissions: memory.NewSubmissionRepository(),
		seasons:     memory.NewSeasonRecordRepository(),
		feed:        &stubFeed{games: weekOneFinals()},
		metrics:     metrics.NewMock(),
	}
	opts := []Option{
		WithLogger(logging.NewNop()),
		WithMetrics(env.metrics),
		WithClock(func() time.Time { return fixedNow }),
		WithReconcileWorkers(2),
	}
	env.submissionSvc = NewSubmissionService(env.leagues, env.submissions, env.seasons, env.feed, idgen.NewUUIDGenerator(), opts...)
	env.standingsSvc = NewStandingsService(env.leagues, env.submissions, env.seasons, env.submissionSvc, opts...)
	return env
}

// addLeague stores a league whose members join one minute apart in the given order.
func (e *testEnv) addLeague(t *testing.T, leagueID string, mode pickem.Mode, userIDs ...string) {
	t.Helper()

	ctx := context.Background()
	item := league.League{
		ID:         leagueID,
		Name:       "League " + leagueID,
		Sport:      league.SportNFL,
		Mode:       mode,
		InviteCode: "CODE" + leagueID,
		CreatorID:  userIDs[0],
	}
	if err := e.leagues.Create(ctx, item, league.Member{UserID: userIDs[0], DisplayName: "Player " + userIDs[0], JoinedAt: fixedNow}); err != nil {
		t.Fatalf("create league: %v", err)
	}
	for i, userID := range userIDs[1:] {
		member := league.Member{
			LeagueID:    leagueID,
			UserID:      userID,
			DisplayName: "Player " + userID,
			JoinedAt:    fixedNow.Add(time.Duration(i+1) * time.Minute),
		}
		if err := e.leagues.AddMember(ctx, member); err != nil {
			t.Fatalf("add member %s: %v", userID, err)
		}
	}
}

func (e *testEnv) submit(t *testing.T, userID, leagueID string, picks []pickem.Pick, tieBreakGameID string, predicted float64) pickem.WeeklySubmission {
	t.Helper()

	sub, err := e.submissionSvc.Submit(context.Background(), SubmitInput{
		UserID:         userID,
		LeagueID:       leagueID,
		Week:           1,
		Picks:          picks,
		TieBreakGameID: tieBreakGameID,
		PredictedTotal: predicted,
	})
	if err != nil {
		t.Fatalf("submit for %s: %v", userID, err)
	}
	return sub
}
