package pickem

import "context"

// SubmissionRepository stores weekly submissions. CreateSubmission returns
// ErrDuplicateSubmission when the (user, league, week) triple already exists.
type SubmissionRepository interface {
	FindSubmission(ctx context.Context, userID, leagueID string, week int) (WeeklySubmission, bool, error)
	CreateSubmission(ctx context.Context, submission WeeklySubmission) error
	UpdateSubmission(ctx context.Context, submissionID string, patch SubmissionPatch) error
	// SumSubmissions totals a user's submissions. An empty leagueID sums across all leagues.
	SumSubmissions(ctx context.Context, userID, leagueID string) (Totals, error)
	ListByUserAndLeague(ctx context.Context, userID, leagueID string) ([]WeeklySubmission, error)
	ListByLeagueAndWeek(ctx context.Context, leagueID string, week int) ([]WeeklySubmission, error)
}
