package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pickem-league/internal/domain/standings"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

const (
	seasonRecordsTable = "season_records"
	seasonRecordUpsert = `ON CONFLICT (user_id, league_public_id) DO UPDATE SET
	total_points = EXCLUDED.total_points,
	correct_picks = EXCLUDED.correct_picks,
	total_picks = EXCLUDED.total_picks,
	total_tfs_points = EXCLUDED.total_tfs_points,
	win_percentage = EXCLUDED.win_percentage,
	weekly_stats = EXCLUDED.weekly_stats,
	updated_at = EXCLUDED.updated_at`
)

type SeasonRecordRepository struct {
	db *sqlx.DB
}

var _ standings.Repository = (*SeasonRecordRepository)(nil)

func NewSeasonRecordRepository(db *sqlx.DB) *SeasonRecordRepository {
	return &SeasonRecordRepository{db: db}
}

func (r *SeasonRecordRepository) Get(ctx context.Context, userID, leagueID string) (standings.SeasonRecord, bool, error) {
	query, args, err := qb.Select("*").From(seasonRecordsTable).
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("league_public_id", leagueID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return standings.SeasonRecord{}, false, fmt.Errorf("build get season record query: %w", err)
	}

	var row seasonRecordTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standings.SeasonRecord{}, false, nil
		}
		return standings.SeasonRecord{}, false, fmt.Errorf("get season record: %w", err)
	}

	record, err := seasonRecordFromRow(row)
	if err != nil {
		return standings.SeasonRecord{}, false, err
	}
	return record, true, nil
}

func (r *SeasonRecordRepository) Upsert(ctx context.Context, record standings.SeasonRecord) error {
	weekly, err := standings.NewWeeklyStatsMap(record.WeeklyStats)
	if err != nil {
		return err
	}
	weeklyJSON, err := encodeWeeklyStats(weekly)
	if err != nil {
		return err
	}

	insertModel := seasonRecordInsertModel{
		UserID:         record.UserID,
		LeagueID:       record.LeagueID,
		TotalPoints:    record.TotalPoints,
		CorrectPicks:   record.CorrectPicks,
		TotalPicks:     record.TotalPicks,
		TotalTFSPoints: record.TotalTFSPoints,
		WinPercentage:  record.WinPercentage,
		WeeklyStats:    weeklyJSON,
		UpdatedAt:      record.UpdatedAt,
	}
	query, args, err := qb.InsertModel(seasonRecordsTable, insertModel, seasonRecordUpsert)
	if err != nil {
		return fmt.Errorf("build upsert season record query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert season record: %w", err)
	}
	return nil
}

func (r *SeasonRecordRepository) ListByLeague(ctx context.Context, leagueID string) ([]standings.SeasonRecord, error) {
	query, args, err := qb.Select("*").From(seasonRecordsTable).
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("user_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season records query: %w", err)
	}

	var rows []seasonRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season records: %w", err)
	}

	out := make([]standings.SeasonRecord, 0, len(rows))
	for _, row := range rows {
		record, err := seasonRecordFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func seasonRecordFromRow(row seasonRecordTableModel) (standings.SeasonRecord, error) {
	weekly, err := decodeWeeklyStats(row.WeeklyStats)
	if err != nil {
		return standings.SeasonRecord{}, fmt.Errorf("season record user=%s league=%s: %w", row.UserID, row.LeagueID, err)
	}
	return standings.SeasonRecord{
		UserID:         row.UserID,
		LeagueID:       row.LeagueID,
		TotalPoints:    row.TotalPoints,
		CorrectPicks:   row.CorrectPicks,
		TotalPicks:     row.TotalPicks,
		TotalTFSPoints: row.TotalTFSPoints,
		WinPercentage:  row.WinPercentage,
		WeeklyStats:    weekly,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}
