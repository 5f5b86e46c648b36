package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/standings"
)

type SeasonRecordRepository struct {
	mu    sync.RWMutex
	items map[string]standings.SeasonRecord
}

var _ standings.Repository = (*SeasonRecordRepository)(nil)

func NewSeasonRecordRepository() *SeasonRecordRepository {
	return &SeasonRecordRepository{items: make(map[string]standings.SeasonRecord)}
}

func (r *SeasonRecordRepository) Get(_ context.Context, userID, leagueID string) (standings.SeasonRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[seasonKey(userID, leagueID)]
	if !ok {
		return standings.SeasonRecord{}, false, nil
	}
	return cloneRecord(item), true, nil
}

func (r *SeasonRecordRepository) Upsert(_ context.Context, record standings.SeasonRecord) error {
	weekly, err := standings.NewWeeklyStatsMap(record.WeeklyStats)
	if err != nil {
		return err
	}
	record.WeeklyStats = weekly

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[seasonKey(record.UserID, record.LeagueID)] = record
	return nil
}

// ListByLeague returns records ordered by user id.
func (r *SeasonRecordRepository) ListByLeague(_ context.Context, leagueID string) ([]standings.SeasonRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standings.SeasonRecord, 0)
	for _, item := range r.items {
		if item.LeagueID == leagueID {
			out = append(out, cloneRecord(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func seasonKey(userID, leagueID string) string {
	return fmt.Sprintf("%s|%s", leagueID, userID)
}

func cloneRecord(in standings.SeasonRecord) standings.SeasonRecord {
	weekly := make(map[int]standings.WeeklyStats, len(in.WeeklyStats))
	for week, stats := range in.WeeklyStats {
		weekly[week] = stats
	}
	in.WeeklyStats = weekly
	return in
}
