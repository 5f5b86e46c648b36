package standings

import "context"

// Repository stores materialized season records keyed by (user, league).
type Repository interface {
	Get(ctx context.Context, userID, leagueID string) (SeasonRecord, bool, error)
	Upsert(ctx context.Context, record SeasonRecord) error
	ListByLeague(ctx context.Context, leagueID string) ([]SeasonRecord, error)
}
