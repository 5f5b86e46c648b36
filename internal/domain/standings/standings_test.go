package standings

import (
	"errors"
	"reflect"
	"testing"

	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
)

func submission(userID string, week, points, correct, tfs int) pickem.WeeklySubmission {
	return pickem.WeeklySubmission{
		UserID:       userID,
		LeagueID:     "l1",
		Week:         week,
		Picks:        make([]pickem.Pick, 5),
		WeeklyPoints: points,
		CorrectPicks: correct,
		TFSPoints:    tfs,
	}
}

func TestAggregateSeasonSkipsMissingWeeks(t *testing.T) {
	record := AggregateSeason([]pickem.WeeklySubmission{submission("u1", 1, 10, 4, 2)})

	if record.TotalPoints != 10 {
		t.Fatalf("expected 10 total points, got %d", record.TotalPoints)
	}
	if len(record.WeeklyStats) != 1 {
		t.Fatalf("expected only week 1, got %v", record.WeeklyStats)
	}
	if _, ok := record.WeeklyStats[1]; !ok {
		t.Fatalf("expected week 1 entry")
	}
	if record.UserID != "u1" || record.LeagueID != "l1" {
		t.Fatalf("unexpected ids: %s %s", record.UserID, record.LeagueID)
	}
}

func TestAggregateSeasonTotals(t *testing.T) {
	subs := []pickem.WeeklySubmission{
		submission("u1", 1, 10, 4, 2),
		submission("u1", 2, 7, 1, 5),
		submission("u1", 4, 0, 0, 0),
	}

	record := AggregateSeason(subs)

	if record.TotalPoints != 17 || record.CorrectPicks != 5 || record.TotalPicks != 15 || record.TotalTFSPoints != 7 {
		t.Fatalf("unexpected totals: %+v", record)
	}
	if want := float64(5) / float64(15) * 100; record.WinPercentage != want {
		t.Fatalf("expected unrounded win percentage %v, got %v", want, record.WinPercentage)
	}
	if record.WeeksPlayed() != 3 {
		t.Fatalf("expected 3 weeks played, got %d", record.WeeksPlayed())
	}
	if !record.Matches(2, WeeklyStats{WeeklyPoints: 7, CorrectPicks: 1, TotalPicks: 5, TFSPoints: 5}) {
		t.Fatalf("unexpected week 2 stats: %+v", record.WeeklyStats[2])
	}
}

func TestAggregateSeasonIsAdditive(t *testing.T) {
	subs := []pickem.WeeklySubmission{
		submission("u1", 1, 10, 4, 2),
		submission("u1", 2, 7, 1, 5),
		submission("u1", 3, 12, 5, 2),
		submission("u1", 5, 3, 1, 1),
	}

	whole := AggregateSeason(subs)
	for split := 0; split <= len(subs); split++ {
		left := AggregateSeason(subs[:split])
		right := AggregateSeason(subs[split:])
		if left.TotalPoints+right.TotalPoints != whole.TotalPoints {
			t.Fatalf("split=%d: %d + %d != %d", split, left.TotalPoints, right.TotalPoints, whole.TotalPoints)
		}
	}

	reversed := []pickem.WeeklySubmission{subs[3], subs[2], subs[1], subs[0]}
	if got := AggregateSeason(reversed); !reflect.DeepEqual(got, whole) {
		t.Fatalf("aggregation depends on order: %+v vs %+v", got, whole)
	}
}

func TestAggregateSeasonEmpty(t *testing.T) {
	record := AggregateSeason(nil)
	if record.TotalPoints != 0 || record.WinPercentage != 0 || len(record.WeeklyStats) != 0 {
		t.Fatalf("expected zero record, got %+v", record)
	}
}

func TestNewWeeklyStatsMap(t *testing.T) {
	out, err := NewWeeklyStatsMap(map[int]WeeklyStats{1: {WeeklyPoints: 3}, 18: {}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(out))
	}

	if _, err := NewWeeklyStatsMap(map[int]WeeklyStats{0: {}}); !errors.Is(err, ErrInvalidWeek) {
		t.Fatalf("expected invalid week error, got %v", err)
	}
}

func TestSeasonRecordFromTotals(t *testing.T) {
	record := SeasonRecordFromTotals(pickem.Totals{UserID: "u1", LeagueID: "l1", WeeklyPoints: 20, CorrectPicks: 6, TotalPicks: 10, TFSPoints: 8})
	if record.TotalPoints != 20 || record.TotalTFSPoints != 8 || record.WinPercentage != 60 {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestBuildWeeklyLeaderboardIncludesEveryMember(t *testing.T) {
	members := []Player{{UserID: "u1", Name: "Ann"}, {UserID: "u2", Name: "Bob"}, {UserID: "u3", Name: "Cy"}}
	subs := []pickem.WeeklySubmission{
		submission("u2", 3, 12, 4, 4),
		submission("u4", 3, 2, 1, 0),
	}

	rows := BuildWeeklyLeaderboard(members, subs, TieOrderInput)

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].Entry.Player.UserID != "u2" || rows[0].Rank != 1 || !rows[0].Entry.Submitted {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[1].Entry.Player.UserID != "u4" || rows[1].Rank != 2 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if rows[2].Entry.Player.UserID != "u1" || rows[3].Entry.Player.UserID != "u3" {
		t.Fatalf("zero rows lost input order: %+v", rows)
	}
	if rows[2].Rank != 3 || rows[3].Rank != 3 {
		t.Fatalf("expected shared rank for zero rows, got %d and %d", rows[2].Rank, rows[3].Rank)
	}
	if rows[2].Entry.Submitted || rows[2].Entry.Points != 0 {
		t.Fatalf("expected zero stats for missing submission: %+v", rows[2])
	}
}

func TestBuildLeaderboardTieOrder(t *testing.T) {
	entries := []SeasonEntry{
		{Player: Player{UserID: "a"}, TotalPoints: 30, WinPercentage: 50},
		{Player: Player{UserID: "b"}, TotalPoints: 30, WinPercentage: 70},
		{Player: Player{UserID: "c"}, TotalPoints: 40, WinPercentage: 40},
	}

	input := BuildLeaderboard(entries, MetricPoints, TieOrderInput)
	if got := ids(input); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Fatalf("unexpected input order: %v", got)
	}

	byPct := BuildLeaderboard(entries, MetricPoints, TieOrderWinPercentage)
	if got := ids(byPct); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Fatalf("unexpected win percentage order: %v", got)
	}
	if byPct[1].Rank != 2 || byPct[2].Rank != 2 {
		t.Fatalf("expected equal points to share rank 2, got %d and %d", byPct[1].Rank, byPct[2].Rank)
	}

	if entries[0].Player.UserID != "a" {
		t.Fatalf("input slice was reordered")
	}
}

func TestBuildSeasonLeaderboard(t *testing.T) {
	members := []Player{{UserID: "u1"}, {UserID: "u2"}}
	records := map[string]SeasonRecord{
		"u2": {UserID: "u2", TotalPoints: 25, CorrectPicks: 9, TotalPicks: 15, WinPercentage: 60},
	}

	rows := BuildSeasonLeaderboard(members, records, TieOrderInput)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Entry.Player.UserID != "u2" || rows[0].Entry.TotalPoints != 25 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[1].Entry.TotalPoints != 0 || rows[1].Rank != 2 {
		t.Fatalf("unexpected zero row: %+v", rows[1])
	}
}

func TestDetermineWinner(t *testing.T) {
	tests := []struct {
		name    string
		records map[string]SeasonRecord
		want    []string
	}{
		{
			name:    "empty",
			records: nil,
			want:    nil,
		},
		{
			name: "co-winners",
			records: map[string]SeasonRecord{
				"u2": {TotalPoints: 30, WinPercentage: 60},
				"u1": {TotalPoints: 30, WinPercentage: 60},
				"u3": {TotalPoints: 20, WinPercentage: 90},
			},
			want: []string{"u1", "u2"},
		},
		{
			name: "win percentage breaks points tie",
			records: map[string]SeasonRecord{
				"u1": {TotalPoints: 30, WinPercentage: 55},
				"u2": {TotalPoints: 30, WinPercentage: 60},
			},
			want: []string{"u2"},
		},
		{
			name: "all zero",
			records: map[string]SeasonRecord{
				"u1": {},
				"u2": {},
			},
			want: []string{"u1", "u2"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DetermineWinner(tc.records); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func ids(rows []Ranked[SeasonEntry]) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Entry.Player.UserID)
	}
	return out
}
