package game

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusFinal      Status = "final"
)

// Game is one matchup reported by the game feed.
type Game struct {
	ID        string
	Week      int
	HomeTeam  string
	AwayTeam  string
	HomeScore *int
	AwayScore *int
	Status    Status
	KickoffAt *time.Time
}

// Query selects a week of games. Zero Season and SeasonType use the feed defaults.
type Query struct {
	Week       int
	Season     int
	SeasonType int
}

// Result converts the game into scorer input. Scores are only passed through once the game is final.
func (g Game) Result() pickem.GameResult {
	out := pickem.GameResult{
		ID:       g.ID,
		HomeTeam: g.HomeTeam,
		AwayTeam: g.AwayTeam,
	}
	if g.Status == StatusFinal && g.HomeScore != nil && g.AwayScore != nil {
		home, away := *g.HomeScore, *g.AwayScore
		out.HomeScore = &home
		out.AwayScore = &away
	}
	return out
}

func Results(games []Game) []pickem.GameResult {
	out := make([]pickem.GameResult, 0, len(games))
	for _, g := range games {
		out = append(out, g.Result())
	}
	return out
}

// ParseStatus maps a feed state (pre, in, post) onto a Status.
func ParseStatus(state string) Status {
	switch state {
	case "post":
		return StatusFinal
	case "in":
		return StatusInProgress
	default:
		return StatusScheduled
	}
}
