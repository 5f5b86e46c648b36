package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	"github.com/riskibarqy/pickem-league/internal/domain/standings"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/tracing"
)

type SubmitInput struct {
	UserID         string
	LeagueID       string
	Week           int
	Picks          []pickem.Pick
	TieBreakGameID string
	PredictedTotal float64
}

// ReconcileResult is the stored submission after a reconcile and whether it was rewritten.
type ReconcileResult struct {
	Submission pickem.WeeklySubmission
	Changed    bool
	// Degraded is set when the game feed was unavailable and nothing was rescored.
	Degraded bool
}

type SubmissionService struct {
	leagueRepo     league.Repository
	submissionRepo pickem.SubmissionRepository
	seasonRepo     standings.Repository
	feed           GameFeed
	idGen          idgen.Generator
	opts           serviceOptions
}

func NewSubmissionService(
	leagueRepo league.Repository,
	submissionRepo pickem.SubmissionRepository,
	seasonRepo standings.Repository,
	feed GameFeed,
	idGen idgen.Generator,
	opts ...Option,
) *SubmissionService {
	return &SubmissionService{
		leagueRepo:     leagueRepo,
		submissionRepo: submissionRepo,
		seasonRepo:     seasonRepo,
		feed:           feed,
		idGen:          idGen,
		opts:           newServiceOptions(opts),
	}
}

// Submit validates, scores and stores a user's picks for one week, then
// refreshes the user's season record.
func (s *SubmissionService) Submit(ctx context.Context, input SubmitInput) (_ pickem.WeeklySubmission, retErr error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.Submit", tracing.Scope(input.LeagueID, input.Week, input.UserID)...)
	defer span.End()
	defer func() { failUsecaseSpan(span, retErr) }()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	if input.UserID == "" {
		return pickem.WeeklySubmission{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.LeagueID == "" {
		return pickem.WeeklySubmission{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.Week < 1 {
		return pickem.WeeklySubmission{}, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}

	lg, err := s.opts.getLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return pickem.WeeklySubmission{}, err
	}

	strategy := pickem.StrategyFor(lg.Mode, s.opts.rules)
	picks := normalizePicks(input.Picks)
	guess, err := strategy.Validate(pickem.Draft{
		Picks:          picks,
		TieBreakGameID: input.TieBreakGameID,
		PredictedTotal: input.PredictedTotal,
	})
	if err != nil {
		s.opts.metrics.IncValidationFailures()
		return pickem.WeeklySubmission{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.opts.requireMember(ctx, s.leagueRepo, lg.ID, input.UserID); err != nil {
		return pickem.WeeklySubmission{}, err
	}

	storeCtx, cancel := s.opts.withStoreTimeout(ctx)
	_, exists, err := s.submissionRepo.FindSubmission(storeCtx, input.UserID, lg.ID, input.Week)
	cancel()
	if err != nil {
		return pickem.WeeklySubmission{}, fmt.Errorf("%w: find submission: %w", ErrDependencyUnavailable, err)
	}
	if exists {
		return pickem.WeeklySubmission{}, fmt.Errorf("%w: %w", ErrConflict, pickem.ErrDuplicateSubmission)
	}

	games, _, err := s.opts.loadGames(ctx, s.feed, game.Query{Week: input.Week})
	if err != nil {
		return pickem.WeeklySubmission{}, err
	}
	results := game.Results(games)
	if checker, ok := strategy.(pickem.SelectionValidator); ok {
		if err := checker.ValidateSelections(picks, results); err != nil {
			s.opts.metrics.IncValidationFailures()
			return pickem.WeeklySubmission{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	picks = annotatePicks(picks, games)
	scored := strategy.Score(picks, guess, results)

	submissionID, err := s.idGen.NewID()
	if err != nil {
		return pickem.WeeklySubmission{}, fmt.Errorf("generate submission id: %w", err)
	}

	now := s.opts.now().UTC()
	submission := pickem.WeeklySubmission{
		ID:        submissionID,
		UserID:    input.UserID,
		LeagueID:  lg.ID,
		Week:      input.Week,
		TieBreak:  guess,
		CreatedAt: now,
		UpdatedAt: now,
	}
	submission.Apply(scored)

	storeCtx, cancel = s.opts.withStoreTimeout(ctx)
	err = s.submissionRepo.CreateSubmission(storeCtx, submission)
	cancel()
	if err != nil {
		if errors.Is(err, pickem.ErrDuplicateSubmission) {
			return pickem.WeeklySubmission{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return pickem.WeeklySubmission{}, fmt.Errorf("%w: create submission: %w", ErrDependencyUnavailable, err)
	}
	s.opts.metrics.IncSubmissions(string(strategy.Mode()))

	if _, err := s.RecomputeSeason(ctx, input.UserID, lg.ID); err != nil {
		s.opts.logger.WarnContext(ctx, "season record not refreshed after submit",
			"user_id", input.UserID,
			"league_id", lg.ID,
			"week", input.Week,
			"error", err,
		)
	}

	return submission, nil
}

// GetSubmission reads a stored submission. It never rescores.
func (s *SubmissionService) GetSubmission(ctx context.Context, userID, leagueID string, week int) (pickem.WeeklySubmission, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.GetSubmission", tracing.Scope(leagueID, week, userID)...)
	defer span.End()

	userID, leagueID, err := normalizeWeekKey(userID, leagueID, week)
	if err != nil {
		return pickem.WeeklySubmission{}, err
	}
	if err := s.opts.requireMember(ctx, s.leagueRepo, leagueID, userID); err != nil {
		return pickem.WeeklySubmission{}, err
	}

	return s.findSubmission(ctx, userID, leagueID, week)
}

// ReconcileSubmission rescores a stored submission against the current feed.
// The store is written only when the result differs. Safe to retry.
func (s *SubmissionService) ReconcileSubmission(ctx context.Context, userID, leagueID string, week int) (_ ReconcileResult, retErr error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.ReconcileSubmission", tracing.Scope(leagueID, week, userID)...)
	defer span.End()
	defer func() { failUsecaseSpan(span, retErr) }()

	userID, leagueID, err := normalizeWeekKey(userID, leagueID, week)
	if err != nil {
		return ReconcileResult{}, err
	}
	lg, err := s.opts.getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return ReconcileResult{}, err
	}
	if err := s.opts.requireMember(ctx, s.leagueRepo, leagueID, userID); err != nil {
		return ReconcileResult{}, err
	}

	submission, err := s.findSubmission(ctx, userID, leagueID, week)
	if err != nil {
		return ReconcileResult{}, err
	}

	games, ok, err := s.opts.loadGames(ctx, s.feed, game.Query{Week: week})
	if err != nil {
		return ReconcileResult{}, err
	}
	if !ok {
		return ReconcileResult{Submission: submission, Degraded: true}, nil
	}

	result, err := s.rescore(ctx, lg, submission, game.Results(games))
	if err != nil {
		return ReconcileResult{}, err
	}
	if _, err := s.RecomputeSeason(ctx, userID, leagueID); err != nil {
		return ReconcileResult{}, err
	}
	return result, nil
}

// RecomputeSeason rebuilds the user's season record from every stored submission.
func (s *SubmissionService) RecomputeSeason(ctx context.Context, userID, leagueID string) (standings.SeasonRecord, error) {
	storeCtx, cancel := s.opts.withStoreTimeout(ctx)
	defer cancel()

	submissions, err := s.submissionRepo.ListByUserAndLeague(storeCtx, userID, leagueID)
	if err != nil {
		return standings.SeasonRecord{}, fmt.Errorf("%w: list submissions: %w", ErrDependencyUnavailable, err)
	}

	record := standings.AggregateSeason(submissions)
	record.UserID = userID
	record.LeagueID = leagueID
	record.UpdatedAt = s.opts.now().UTC()
	if err := s.seasonRepo.Upsert(storeCtx, record); err != nil {
		return standings.SeasonRecord{}, fmt.Errorf("%w: upsert season record: %w", ErrDependencyUnavailable, err)
	}
	return record, nil
}

// rescore applies the league strategy to a stored submission and writes it back when it changed.
func (s *SubmissionService) rescore(ctx context.Context, lg league.League, submission pickem.WeeklySubmission, results []pickem.GameResult) (ReconcileResult, error) {
	strategy := pickem.StrategyFor(lg.Mode, s.opts.rules)
	scored := strategy.Score(submission.Picks, submission.TieBreak, results)
	if !submission.Differs(scored) {
		s.opts.metrics.IncReconciled(false)
		return ReconcileResult{Submission: submission}, nil
	}

	patch := pickem.PatchFrom(scored, s.opts.now().UTC())
	storeCtx, cancel := s.opts.withStoreTimeout(ctx)
	err := s.submissionRepo.UpdateSubmission(storeCtx, submission.ID, patch)
	cancel()
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("%w: update submission: %w", ErrDependencyUnavailable, err)
	}

	submission.Apply(scored)
	submission.UpdatedAt = patch.UpdatedAt
	s.opts.metrics.IncReconciled(true)
	s.opts.logger.InfoContext(ctx, "submission rescored",
		"submission_id", submission.ID,
		"user_id", submission.UserID,
		"league_id", submission.LeagueID,
		"week", submission.Week,
		"weekly_points", submission.WeeklyPoints,
	)
	return ReconcileResult{Submission: submission, Changed: true}, nil
}

func (s *SubmissionService) findSubmission(ctx context.Context, userID, leagueID string, week int) (pickem.WeeklySubmission, error) {
	storeCtx, cancel := s.opts.withStoreTimeout(ctx)
	defer cancel()

	submission, exists, err := s.submissionRepo.FindSubmission(storeCtx, userID, leagueID, week)
	if err != nil {
		return pickem.WeeklySubmission{}, fmt.Errorf("%w: find submission: %w", ErrDependencyUnavailable, err)
	}
	if !exists {
		return pickem.WeeklySubmission{}, fmt.Errorf("%w: no submission for week %d", ErrNotFound, week)
	}
	return submission, nil
}

func normalizeWeekKey(userID, leagueID string, week int) (string, string, error) {
	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return "", "", fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return "", "", fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if week < 1 {
		return "", "", fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	return userID, leagueID, nil
}

func normalizePicks(in []pickem.Pick) []pickem.Pick {
	out := make([]pickem.Pick, len(in))
	for i, pick := range in {
		out[i] = pickem.Pick{
			GameID:     strings.TrimSpace(pick.GameID),
			Team:       strings.TrimSpace(pick.Team),
			Opponent:   strings.TrimSpace(pick.Opponent),
			IsHome:     pick.IsHome,
			Confidence: pick.Confidence,
		}
	}
	return out
}

// annotatePicks fills opponent and home side from the feed for games it knows.
func annotatePicks(picks []pickem.Pick, games []game.Game) []pickem.Pick {
	byID := make(map[string]game.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}
	for i, pick := range picks {
		g, ok := byID[pick.GameID]
		if !ok {
			continue
		}
		switch pick.Team {
		case g.HomeTeam:
			picks[i].IsHome = true
			picks[i].Opponent = g.AwayTeam
		case g.AwayTeam:
			picks[i].IsHome = false
			picks[i].Opponent = g.HomeTeam
		}
	}
	return picks
}
