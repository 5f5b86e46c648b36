package standings

import (
	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
)

// AggregateSeason sums submissions into a season record. Weeks without a
// submission are absent from WeeklyStats, never stored as zero rows.
func AggregateSeason(submissions []pickem.WeeklySubmission) SeasonRecord {
	record := SeasonRecord{WeeklyStats: make(map[int]WeeklyStats, len(submissions))}
	for i, sub := range submissions {
		if i == 0 {
			record.UserID = sub.UserID
			record.LeagueID = sub.LeagueID
		}

		stats := WeekStatsOf(sub)
		record.TotalPoints += stats.WeeklyPoints
		record.CorrectPicks += stats.CorrectPicks
		record.TotalPicks += stats.TotalPicks
		record.TotalTFSPoints += stats.TFSPoints
		record.WeeklyStats[sub.Week] = record.WeeklyStats[sub.Week].add(stats)
	}
	record.WinPercentage = WinPercentage(record.CorrectPicks, record.TotalPicks)
	return record
}

// SeasonRecordFromTotals builds a record from store-side sums. WeeklyStats stays empty.
func SeasonRecordFromTotals(totals pickem.Totals) SeasonRecord {
	return SeasonRecord{
		UserID:         totals.UserID,
		LeagueID:       totals.LeagueID,
		TotalPoints:    totals.WeeklyPoints,
		CorrectPicks:   totals.CorrectPicks,
		TotalPicks:     totals.TotalPicks,
		TotalTFSPoints: totals.TFSPoints,
		WinPercentage:  WinPercentage(totals.CorrectPicks, totals.TotalPicks),
		WeeklyStats:    map[int]WeeklyStats{},
	}
}

// WeekStatsOf returns the week contribution of one submission.
func WeekStatsOf(sub pickem.WeeklySubmission) WeeklyStats {
	return WeeklyStats{
		WeeklyPoints: sub.WeeklyPoints,
		CorrectPicks: sub.CorrectPicks,
		TotalPicks:   sub.PickCount(),
		TFSPoints:    sub.TFSPoints,
	}
}
