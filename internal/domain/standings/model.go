package standings

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidWeek = errors.New("week must be >= 1")

// WeeklyStats is one week's contribution to a season record.
type WeeklyStats struct {
	WeeklyPoints int
	CorrectPicks int
	TotalPicks   int
	TFSPoints    int
}

func (w WeeklyStats) add(other WeeklyStats) WeeklyStats {
	return WeeklyStats{
		WeeklyPoints: w.WeeklyPoints + other.WeeklyPoints,
		CorrectPicks: w.CorrectPicks + other.CorrectPicks,
		TotalPicks:   w.TotalPicks + other.TotalPicks,
		TFSPoints:    w.TFSPoints + other.TFSPoints,
	}
}

// NewWeeklyStatsMap copies in and rejects week keys below 1.
func NewWeeklyStatsMap(in map[int]WeeklyStats) (map[int]WeeklyStats, error) {
	out := make(map[int]WeeklyStats, len(in))
	for week, stats := range in {
		if week < 1 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidWeek, week)
		}
		out[week] = stats
	}
	return out, nil
}

// SeasonRecord is the materialized season view for one user in one league.
// It can always be rebuilt from the user's submissions.
type SeasonRecord struct {
	UserID         string
	LeagueID       string
	TotalPoints    int
	CorrectPicks   int
	TotalPicks     int
	TotalTFSPoints int
	WinPercentage  float64
	WeeklyStats    map[int]WeeklyStats
	UpdatedAt      time.Time
}

// WeeksPlayed returns the number of submitted weeks.
func (r SeasonRecord) WeeksPlayed() int {
	return len(r.WeeklyStats)
}

// Matches reports whether the stored week entry equals stats.
func (r SeasonRecord) Matches(week int, stats WeeklyStats) bool {
	stored, ok := r.WeeklyStats[week]
	return ok && stored == stats
}

// WinPercentage returns correct/total*100, or 0 when nothing was picked. The value is not rounded.
func WinPercentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}
