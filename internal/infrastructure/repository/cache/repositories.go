package cache

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/standings"
	basecache "github.com/riskibarqy/pickem-league/internal/platform/cache"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

var _ league.Repository = (*LeagueRepository)(nil)

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League, creator league.Member) error {
	if err := r.next.Create(ctx, item, creator); err != nil {
		return err
	}

	r.cache.Delete(ctx, leagueByIDKey(item.ID))
	r.cache.Delete(ctx, leagueMembersKey(item.ID))
	r.cache.Delete(ctx, leagueByMemberKey(creator.UserID))
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueByIDKey(leagueID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

// GetByInviteCode is not cached: joins are rare and a stale miss would block them.
func (r *LeagueRepository) GetByInviteCode(ctx context.Context, inviteCode string) (league.League, bool, error) {
	return r.next.GetByInviteCode(ctx, inviteCode)
}

func (r *LeagueRepository) ListByMember(ctx context.Context, userID string) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueByMemberKey(userID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByMember(ctx, userID)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) AddMember(ctx context.Context, member league.Member) error {
	if err := r.next.AddMember(ctx, member); err != nil {
		return err
	}

	r.cache.Delete(ctx, leagueMembersKey(member.LeagueID))
	r.cache.Delete(ctx, leagueByMemberKey(member.UserID))
	return nil
}

func (r *LeagueRepository) IsMember(ctx context.Context, leagueID, userID string) (bool, error) {
	members, err := r.ListMembers(ctx, leagueID)
	if err != nil {
		return false, err
	}
	for _, m := range members {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Member, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueMembersKey(leagueID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListMembers(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]league.Member(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.Member)
	return append([]league.Member(nil), items...), nil
}

type cachedLeague struct {
	value  league.League
	exists bool
}

func leagueByIDKey(leagueID string) string {
	return "league:id:" + leagueID
}

func leagueMembersKey(leagueID string) string {
	return "league:members:" + leagueID
}

func leagueByMemberKey(userID string) string {
	return "league:member:" + userID
}

// SeasonRecordRepository caches league-wide season record lists. Per-user
// reads go straight to the store.
type SeasonRecordRepository struct {
	next  standings.Repository
	cache *basecache.Store
}

var _ standings.Repository = (*SeasonRecordRepository)(nil)

func NewSeasonRecordRepository(next standings.Repository, cache *basecache.Store) *SeasonRecordRepository {
	return &SeasonRecordRepository{next: next, cache: cache}
}

func (r *SeasonRecordRepository) Get(ctx context.Context, userID, leagueID string) (standings.SeasonRecord, bool, error) {
	return r.next.Get(ctx, userID, leagueID)
}

func (r *SeasonRecordRepository) Upsert(ctx context.Context, record standings.SeasonRecord) error {
	if err := r.next.Upsert(ctx, record); err != nil {
		return err
	}

	r.cache.Delete(ctx, seasonRecordsKey(record.LeagueID))
	return nil
}

func (r *SeasonRecordRepository) ListByLeague(ctx context.Context, leagueID string) ([]standings.SeasonRecord, error) {
	v, err := r.cache.GetOrLoad(ctx, seasonRecordsKey(leagueID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cloneSeasonRecords(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standings.SeasonRecord)
	return cloneSeasonRecords(items), nil
}

func seasonRecordsKey(leagueID string) string {
	return "season-record:list:" + leagueID
}

func cloneSeasonRecords(in []standings.SeasonRecord) []standings.SeasonRecord {
	out := make([]standings.SeasonRecord, len(in))
	for i, rec := range in {
		weeks := make(map[int]standings.WeeklyStats, len(rec.WeeklyStats))
		for week, stats := range rec.WeeklyStats {
			weeks[week] = stats
		}
		rec.WeeklyStats = weeks
		out[i] = rec
	}
	return out
}
