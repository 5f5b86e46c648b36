package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	"github.com/riskibarqy/pickem-league/internal/domain/standings"
	"github.com/riskibarqy/pickem-league/internal/platform/tracing"
)

const (
	reconcileStatusChanged   = "changed"
	reconcileStatusUnchanged = "unchanged"
	reconcileStatusFailed    = "failed"
)

type WeekReconcileRow struct {
	UserID       string
	SubmissionID string
	Status       string
	WeeklyPoints int
	Message      string
}

type WeekReconcileResult struct {
	LeagueID       string
	Week           int
	Degraded       bool
	Rows           []WeekReconcileRow
	ChangedCount   int
	UnchangedCount int
	FailedCount    int
}

type StandingsService struct {
	leagueRepo     league.Repository
	submissionRepo pickem.SubmissionRepository
	seasonRepo     standings.Repository
	submissions    *SubmissionService
	opts           serviceOptions
}

func NewStandingsService(
	leagueRepo league.Repository,
	submissionRepo pickem.SubmissionRepository,
	seasonRepo standings.Repository,
	submissions *SubmissionService,
	opts ...Option,
) *StandingsService {
	return &StandingsService{
		leagueRepo:     leagueRepo,
		submissionRepo: submissionRepo,
		seasonRepo:     seasonRepo,
		submissions:    submissions,
		opts:           newServiceOptions(opts),
	}
}

// WeeklyLeaderboard ranks every league member by points for one week.
// Members without a submission are listed with zeros.
func (s *StandingsService) WeeklyLeaderboard(ctx context.Context, userID, leagueID string, week int) ([]standings.Ranked[standings.WeeklyEntry], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.WeeklyLeaderboard", tracing.Scope(leagueID, week, userID)...)
	defer span.End()

	userID, leagueID, err := normalizeWeekKey(userID, leagueID, week)
	if err != nil {
		return nil, err
	}
	players, err := s.memberPlayers(ctx, userID, leagueID)
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := s.opts.withStoreTimeout(ctx)
	defer cancel()
	submissions, err := s.submissionRepo.ListByLeagueAndWeek(storeCtx, leagueID, week)
	if err != nil {
		return nil, fmt.Errorf("%w: list week submissions: %w", ErrDependencyUnavailable, err)
	}

	return standings.BuildWeeklyLeaderboard(players, submissions, s.opts.tieOrder), nil
}

// SeasonLeaderboard ranks every league member by total points.
func (s *StandingsService) SeasonLeaderboard(ctx context.Context, userID, leagueID string) ([]standings.Ranked[standings.SeasonEntry], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.SeasonLeaderboard", tracing.Scope(leagueID, 0, userID)...)
	defer span.End()

	players, records, err := s.seasonInputs(ctx, userID, leagueID)
	if err != nil {
		return nil, err
	}
	return standings.BuildSeasonLeaderboard(players, records, s.opts.tieOrder), nil
}

// UserSeasonStats returns the caller's season record. Without a materialized
// record it falls back to store-side totals, which carry no weekly breakdown.
func (s *StandingsService) UserSeasonStats(ctx context.Context, userID, leagueID string) (standings.SeasonRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.UserSeasonStats", tracing.Scope(leagueID, 0, userID)...)
	defer span.End()

	userID, leagueID, err := normalizeWeekKey(userID, leagueID, 1)
	if err != nil {
		return standings.SeasonRecord{}, err
	}
	if _, err := s.opts.getLeague(ctx, s.leagueRepo, leagueID); err != nil {
		return standings.SeasonRecord{}, err
	}
	if err := s.opts.requireMember(ctx, s.leagueRepo, leagueID, userID); err != nil {
		return standings.SeasonRecord{}, err
	}

	storeCtx, cancel := s.opts.withStoreTimeout(ctx)
	defer cancel()

	record, exists, err := s.seasonRepo.Get(storeCtx, userID, leagueID)
	if err != nil {
		return standings.SeasonRecord{}, fmt.Errorf("%w: get season record: %w", ErrDependencyUnavailable, err)
	}
	if exists {
		return record, nil
	}

	totals, err := s.submissionRepo.SumSubmissions(storeCtx, userID, leagueID)
	if err != nil {
		return standings.SeasonRecord{}, fmt.Errorf("%w: sum submissions: %w", ErrDependencyUnavailable, err)
	}
	totals.UserID = userID
	totals.LeagueID = leagueID
	return standings.SeasonRecordFromTotals(totals), nil
}

// Winners returns the season leaders: most points, then best win percentage.
// Everyone still level is a co-winner.
func (s *StandingsService) Winners(ctx context.Context, userID, leagueID string) ([]standings.SeasonEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Winners", tracing.Scope(leagueID, 0, userID)...)
	defer span.End()

	players, records, err := s.seasonInputs(ctx, userID, leagueID)
	if err != nil {
		return nil, err
	}

	winnerIDs := standings.DetermineWinner(records)
	if len(winnerIDs) == 0 {
		return []standings.SeasonEntry{}, nil
	}
	isWinner := make(map[string]struct{}, len(winnerIDs))
	for _, id := range winnerIDs {
		isWinner[id] = struct{}{}
	}

	board := standings.BuildSeasonLeaderboard(players, records, s.opts.tieOrder)
	out := make([]standings.SeasonEntry, 0, len(winnerIDs))
	for _, row := range board {
		if _, ok := isWinner[row.Entry.Player.UserID]; ok {
			out = append(out, row.Entry)
		}
	}
	return out, nil
}

// ReconcileWeek rescores every submission of a league week against one feed
// fetch. Nothing is written while the feed is unavailable.
func (s *StandingsService) ReconcileWeek(ctx context.Context, userID, leagueID string, week int) (_ WeekReconcileResult, retErr error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ReconcileWeek", tracing.Scope(leagueID, week, userID)...)
	defer span.End()
	defer func() { failUsecaseSpan(span, retErr) }()

	userID, leagueID, err := normalizeWeekKey(userID, leagueID, week)
	if err != nil {
		return WeekReconcileResult{}, err
	}
	lg, err := s.opts.getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return WeekReconcileResult{}, err
	}
	if err := s.opts.requireMember(ctx, s.leagueRepo, leagueID, userID); err != nil {
		return WeekReconcileResult{}, err
	}

	result := WeekReconcileResult{LeagueID: leagueID, Week: week, Rows: []WeekReconcileRow{}}

	storeCtx, cancel := s.opts.withStoreTimeout(ctx)
	submissions, err := s.submissionRepo.ListByLeagueAndWeek(storeCtx, leagueID, week)
	cancel()
	if err != nil {
		return WeekReconcileResult{}, fmt.Errorf("%w: list week submissions: %w", ErrDependencyUnavailable, err)
	}
	if len(submissions) == 0 {
		return result, nil
	}

	games, ok, err := s.opts.loadGames(ctx, s.submissions.feed, game.Query{Week: week})
	if err != nil {
		return WeekReconcileResult{}, err
	}
	if !ok {
		result.Degraded = true
		return result, nil
	}
	results := game.Results(games)

	pool, err := ants.NewPool(min(s.opts.workers, len(submissions)))
	if err != nil {
		return WeekReconcileResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make(chan WeekReconcileRow, len(submissions))
	var changedCount, unchangedCount, failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, submission := range submissions {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := WeekReconcileRow{UserID: submission.UserID, SubmissionID: submission.ID}
			out, err := s.submissions.rescore(ctx, lg, submission, results)
			if err == nil {
				_, err = s.submissions.RecomputeSeason(ctx, submission.UserID, leagueID)
			}

			switch {
			case err != nil:
				row.Status = reconcileStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			case out.Changed:
				row.Status = reconcileStatusChanged
				changedCount.Add(1)
			default:
				row.Status = reconcileStatusUnchanged
				unchangedCount.Add(1)
			}
			row.WeeklyPoints = out.Submission.WeeklyPoints
			rows <- row
		}); err != nil {
			workers.Done()
			return WeekReconcileResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Rows = append(result.Rows, row)
	}
	sort.SliceStable(result.Rows, func(i, j int) bool {
		return result.Rows[i].UserID < result.Rows[j].UserID
	})

	result.ChangedCount = int(changedCount.Load())
	result.UnchangedCount = int(unchangedCount.Load())
	result.FailedCount = int(failedCount.Load())
	if result.FailedCount > 0 {
		s.opts.logger.WarnContext(ctx, "week reconcile finished with failures",
			"league_id", leagueID,
			"week", week,
			"failed", result.FailedCount,
		)
	}
	return result, nil
}

func (s *StandingsService) memberPlayers(ctx context.Context, userID, leagueID string) ([]standings.Player, error) {
	if _, err := s.opts.getLeague(ctx, s.leagueRepo, leagueID); err != nil {
		return nil, err
	}
	if err := s.opts.requireMember(ctx, s.leagueRepo, leagueID, userID); err != nil {
		return nil, err
	}
	members, err := s.opts.listMembers(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	players := make([]standings.Player, 0, len(members))
	for _, member := range members {
		players = append(players, standings.Player{UserID: member.UserID, Name: member.DisplayNameOr()})
	}
	return players, nil
}

func (s *StandingsService) seasonInputs(ctx context.Context, userID, leagueID string) ([]standings.Player, map[string]standings.SeasonRecord, error) {
	userID, leagueID, err := normalizeWeekKey(userID, leagueID, 1)
	if err != nil {
		return nil, nil, err
	}
	players, err := s.memberPlayers(ctx, userID, leagueID)
	if err != nil {
		return nil, nil, err
	}

	storeCtx, cancel := s.opts.withStoreTimeout(ctx)
	defer cancel()
	items, err := s.seasonRepo.ListByLeague(storeCtx, leagueID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: list season records: %w", ErrDependencyUnavailable, err)
	}

	records := make(map[string]standings.SeasonRecord, len(items))
	for _, item := range items {
		records[item.UserID] = item
	}
	return players, records, nil
}
