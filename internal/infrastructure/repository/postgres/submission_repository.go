package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

const (
	submissionsTable          = "pick_submissions"
	submissionUniqueWeekIndex = "pick_submissions_user_league_week_key"
)

type SubmissionRepository struct {
	db *sqlx.DB
}

var _ pickem.SubmissionRepository = (*SubmissionRepository)(nil)

func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) FindSubmission(ctx context.Context, userID, leagueID string, week int) (pickem.WeeklySubmission, bool, error) {
	query, args, err := qb.Select("*").From(submissionsTable).
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("league_public_id", leagueID),
			qb.Eq("week", week),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return pickem.WeeklySubmission{}, false, fmt.Errorf("build find submission query: %w", err)
	}

	var row submissionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pickem.WeeklySubmission{}, false, nil
		}
		return pickem.WeeklySubmission{}, false, fmt.Errorf("find submission: %w", err)
	}

	item, err := submissionFromRow(row)
	if err != nil {
		return pickem.WeeklySubmission{}, false, err
	}
	return item, true, nil
}

func (r *SubmissionRepository) CreateSubmission(ctx context.Context, submission pickem.WeeklySubmission) error {
	picks, err := encodePicks(submission.Picks)
	if err != nil {
		return err
	}

	insertModel := submissionInsertModel{
		PublicID:       submission.ID,
		UserID:         submission.UserID,
		LeagueID:       submission.LeagueID,
		Week:           submission.Week,
		Picks:          picks,
		TieBreakGameID: submission.TieBreak.GameID,
		PredictedTotal: submission.TieBreak.PredictedTotal,
		PickCount:      submission.PickCount(),
		WeeklyPoints:   submission.WeeklyPoints,
		CorrectPicks:   submission.CorrectPicks,
		TFSPoints:      submission.TFSPoints,
		CreatedAt:      submission.CreatedAt,
		UpdatedAt:      submission.UpdatedAt,
	}
	query, args, err := qb.InsertModel(submissionsTable, insertModel, "")
	if err != nil {
		return fmt.Errorf("build create submission query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, submissionUniqueWeekIndex) {
			return pickem.ErrDuplicateSubmission
		}
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) UpdateSubmission(ctx context.Context, submissionID string, patch pickem.SubmissionPatch) error {
	picks, err := encodePicks(patch.Picks)
	if err != nil {
		return err
	}

	query, args, err := qb.Update(submissionsTable).
		Set("picks", picks).
		Set("weekly_points", patch.WeeklyPoints).
		Set("correct_picks", patch.CorrectPicks).
		Set("tfs_points", patch.TFSPoints).
		Set("updated_at", patch.UpdatedAt).
		Where(qb.Eq("public_id", submissionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update submission query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update submission: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update submission: not found")
	}
	return nil
}

func (r *SubmissionRepository) SumSubmissions(ctx context.Context, userID, leagueID string) (pickem.Totals, error) {
	conditions := []qb.Condition{qb.Eq("user_id", userID)}
	if leagueID != "" {
		conditions = append(conditions, qb.Eq("league_public_id", leagueID))
	}

	query, args, err := qb.Select(
		"COUNT(*) AS submissions",
		"COALESCE(SUM(weekly_points), 0) AS weekly_points",
		"COALESCE(SUM(correct_picks), 0) AS correct_picks",
		"COALESCE(SUM(pick_count), 0) AS total_picks",
		"COALESCE(SUM(tfs_points), 0) AS tfs_points",
	).
		From(submissionsTable).
		Where(conditions...).
		ToSQL()
	if err != nil {
		return pickem.Totals{}, fmt.Errorf("build sum submissions query: %w", err)
	}

	var row submissionTotalsRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return pickem.Totals{}, fmt.Errorf("sum submissions: %w", err)
	}
	return pickem.Totals{
		UserID:       userID,
		LeagueID:     leagueID,
		Submissions:  row.Submissions,
		WeeklyPoints: row.WeeklyPoints,
		CorrectPicks: row.CorrectPicks,
		TotalPicks:   row.TotalPicks,
		TFSPoints:    row.TFSPoints,
	}, nil
}

func (r *SubmissionRepository) ListByUserAndLeague(ctx context.Context, userID, leagueID string) ([]pickem.WeeklySubmission, error) {
	query, args, err := qb.Select("*").From(submissionsTable).
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("league_public_id", leagueID),
		).
		OrderBy("week ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list submissions by user query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *SubmissionRepository) ListByLeagueAndWeek(ctx context.Context, leagueID string, week int) ([]pickem.WeeklySubmission, error) {
	query, args, err := qb.Select("*").From(submissionsTable).
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("week", week),
		).
		OrderBy("created_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list submissions by week query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *SubmissionRepository) list(ctx context.Context, query string, args []any) ([]pickem.WeeklySubmission, error) {
	var rows []submissionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	out := make([]pickem.WeeklySubmission, 0, len(rows))
	for _, row := range rows {
		item, err := submissionFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func submissionFromRow(row submissionTableModel) (pickem.WeeklySubmission, error) {
	picks, err := decodePicks(row.Picks)
	if err != nil {
		return pickem.WeeklySubmission{}, fmt.Errorf("submission %s: %w", row.PublicID, err)
	}
	return pickem.WeeklySubmission{
		ID:           row.PublicID,
		UserID:       row.UserID,
		LeagueID:     row.LeagueID,
		Week:         row.Week,
		Picks:        picks,
		TieBreak:     pickem.TieBreakGuess{GameID: row.TieBreakGameID, PredictedTotal: row.PredictedTotal},
		WeeklyPoints: row.WeeklyPoints,
		CorrectPicks: row.CorrectPicks,
		TFSPoints:    row.TFSPoints,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
