package standings

import (
	"sort"

	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
)

// Metric names the value a leaderboard is ranked by.
type Metric string

const (
	MetricPoints        Metric = "points"
	MetricCorrectPicks  Metric = "correct_picks"
	MetricWinPercentage Metric = "win_percentage"
)

// TieOrder decides the order of entries with an equal metric.
type TieOrder string

const (
	// TieOrderInput keeps equal entries in the order they were given.
	TieOrderInput TieOrder = "input"
	// TieOrderWinPercentage puts the higher win percentage first among equal entries.
	TieOrderWinPercentage TieOrder = "win_percentage"
)

// Player identifies a league member on a leaderboard.
type Player struct {
	UserID string
	Name   string
}

// Entry is anything a leaderboard can rank.
type Entry interface {
	MetricValue(metric Metric) float64
}

// Ranked is an entry with its dense rank. Equal metric values share a rank.
type Ranked[T Entry] struct {
	Rank  int
	Entry T
}

type WeeklyEntry struct {
	Player       Player
	Points       int
	CorrectPicks int
	TotalPicks   int
	TFSPoints    int
	Submitted    bool
}

func (e WeeklyEntry) MetricValue(metric Metric) float64 {
	switch metric {
	case MetricCorrectPicks:
		return float64(e.CorrectPicks)
	case MetricWinPercentage:
		return WinPercentage(e.CorrectPicks, e.TotalPicks)
	default:
		return float64(e.Points)
	}
}

type SeasonEntry struct {
	Player         Player
	TotalPoints    int
	CorrectPicks   int
	TotalPicks     int
	TotalTFSPoints int
	WinPercentage  float64
}

func (e SeasonEntry) MetricValue(metric Metric) float64 {
	switch metric {
	case MetricCorrectPicks:
		return float64(e.CorrectPicks)
	case MetricWinPercentage:
		return e.WinPercentage
	default:
		return float64(e.TotalPoints)
	}
}

// BuildLeaderboard sorts entries descending by metric and assigns dense ranks.
// The sort is stable, so equal entries keep input order unless order asks for
// the win percentage as a secondary key.
func BuildLeaderboard[T Entry](entries []T, metric Metric, order TieOrder) []Ranked[T] {
	sorted := make([]T, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		left, right := sorted[i].MetricValue(metric), sorted[j].MetricValue(metric)
		if left != right {
			return left > right
		}
		if order == TieOrderWinPercentage && metric != MetricWinPercentage {
			return sorted[i].MetricValue(MetricWinPercentage) > sorted[j].MetricValue(MetricWinPercentage)
		}
		return false
	})

	out := make([]Ranked[T], 0, len(sorted))
	rank := 0
	for i, entry := range sorted {
		if i == 0 || entry.MetricValue(metric) != sorted[i-1].MetricValue(metric) {
			rank++
		}
		out = append(out, Ranked[T]{Rank: rank, Entry: entry})
	}
	return out
}

// BuildWeeklyLeaderboard ranks one week by points. Every member appears; members
// without a submission get zero stats. Submitters missing from members are appended.
func BuildWeeklyLeaderboard(members []Player, submissions []pickem.WeeklySubmission, order TieOrder) []Ranked[WeeklyEntry] {
	byUser := make(map[string]pickem.WeeklySubmission, len(submissions))
	for _, sub := range submissions {
		if _, exists := byUser[sub.UserID]; !exists {
			byUser[sub.UserID] = sub
		}
	}

	entries := make([]WeeklyEntry, 0, len(members)+len(submissions))
	seen := make(map[string]struct{}, len(members))
	for _, member := range members {
		if _, dup := seen[member.UserID]; dup {
			continue
		}
		seen[member.UserID] = struct{}{}
		entries = append(entries, weeklyEntry(member, byUser))
	}
	for _, sub := range submissions {
		if _, ok := seen[sub.UserID]; ok {
			continue
		}
		seen[sub.UserID] = struct{}{}
		entries = append(entries, weeklyEntry(Player{UserID: sub.UserID}, byUser))
	}

	return BuildLeaderboard(entries, MetricPoints, order)
}

func weeklyEntry(player Player, byUser map[string]pickem.WeeklySubmission) WeeklyEntry {
	sub, ok := byUser[player.UserID]
	if !ok {
		return WeeklyEntry{Player: player}
	}
	return WeeklyEntry{
		Player:       player,
		Points:       sub.WeeklyPoints,
		CorrectPicks: sub.CorrectPicks,
		TotalPicks:   sub.PickCount(),
		TFSPoints:    sub.TFSPoints,
		Submitted:    true,
	}
}

// BuildSeasonLeaderboard ranks season records by total points. Members without a record get zeros.
func BuildSeasonLeaderboard(members []Player, records map[string]SeasonRecord, order TieOrder) []Ranked[SeasonEntry] {
	entries := make([]SeasonEntry, 0, len(members))
	seen := make(map[string]struct{}, len(members))
	for _, member := range members {
		if _, dup := seen[member.UserID]; dup {
			continue
		}
		seen[member.UserID] = struct{}{}
		entries = append(entries, seasonEntry(member, records[member.UserID]))
	}

	extra := make([]string, 0)
	for userID := range records {
		if _, ok := seen[userID]; !ok {
			extra = append(extra, userID)
		}
	}
	sort.Strings(extra)
	for _, userID := range extra {
		entries = append(entries, seasonEntry(Player{UserID: userID}, records[userID]))
	}

	return BuildLeaderboard(entries, MetricPoints, order)
}

func seasonEntry(player Player, record SeasonRecord) SeasonEntry {
	return SeasonEntry{
		Player:         player,
		TotalPoints:    record.TotalPoints,
		CorrectPicks:   record.CorrectPicks,
		TotalPicks:     record.TotalPicks,
		TotalTFSPoints: record.TotalTFSPoints,
		WinPercentage:  record.WinPercentage,
	}
}
