package httpapi

import (
	"sort"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	"github.com/riskibarqy/pickem-league/internal/domain/standings"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type createLeagueRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Mode     string `json:"mode" validate:"omitempty,oneof=standard confidence"`
	Password string `json:"password" validate:"required"`
}

type joinLeagueRequest struct {
	InviteCode string `json:"invite_code" validate:"required,max=16"`
	Password   string `json:"password" validate:"required"`
}

// Pick count and tie-break rules are left to the scorer so clients see its messages.
type submitPicksRequest struct {
	Picks          []pickRequest `json:"picks" validate:"dive"`
	TieBreakGameID string        `json:"tie_break_game_id"`
	PredictedTotal float64       `json:"predicted_total"`
}

type pickRequest struct {
	GameID     string `json:"game_id" validate:"required"`
	Team       string `json:"team" validate:"required"`
	Confidence int    `json:"confidence,omitempty" validate:"gte=0"`
}

type gameDTO struct {
	ID        string `json:"id"`
	Week      int    `json:"week"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
	Status    string `json:"status"`
	KickoffAt string `json:"kickoff_at,omitempty"`
}

type leagueDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Sport      string `json:"sport"`
	Mode       string `json:"mode"`
	InviteCode string `json:"invite_code"`
	CreatorID  string `json:"creator_id"`
	CreatedAt  string `json:"created_at"`
}

type memberDTO struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	JoinedAt    string `json:"joined_at"`
}

type leagueDetailDTO struct {
	leagueDTO
	Members []memberDTO `json:"members"`
}

type pickDTO struct {
	GameID     string `json:"game_id"`
	Team       string `json:"team"`
	Opponent   string `json:"opponent"`
	IsHome     bool   `json:"is_home"`
	Confidence int    `json:"confidence,omitempty"`
	IsCorrect  *bool  `json:"is_correct"`
}

type tieBreakDTO struct {
	GameID         string `json:"game_id"`
	PredictedTotal int    `json:"predicted_total"`
}

type submissionDTO struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	LeagueID     string      `json:"league_id"`
	Week         int         `json:"week"`
	Picks        []pickDTO   `json:"picks"`
	TieBreak     tieBreakDTO `json:"tie_break"`
	WeeklyPoints int         `json:"weekly_points"`
	CorrectPicks int         `json:"correct_picks"`
	TFSPoints    int         `json:"tfs_points"`
	CreatedAt    string      `json:"created_at"`
	UpdatedAt    string      `json:"updated_at"`
}

type reconcileResultDTO struct {
	Submission submissionDTO `json:"submission"`
	Changed    bool          `json:"changed"`
	Degraded   bool          `json:"degraded"`
}

type weeklyEntryDTO struct {
	Rank         int    `json:"rank"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Points       int    `json:"points"`
	CorrectPicks int    `json:"correct_picks"`
	TotalPicks   int    `json:"total_picks"`
	TFSPoints    int    `json:"tfs_points"`
	Submitted    bool   `json:"submitted"`
}

type seasonEntryDTO struct {
	Rank           int     `json:"rank"`
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	TotalPoints    int     `json:"total_points"`
	CorrectPicks   int     `json:"correct_picks"`
	TotalPicks     int     `json:"total_picks"`
	TotalTFSPoints int     `json:"total_tfs_points"`
	WinPercentage  float64 `json:"win_percentage"`
}

type weeklyStatsDTO struct {
	Week         int `json:"week"`
	WeeklyPoints int `json:"weekly_points"`
	CorrectPicks int `json:"correct_picks"`
	TotalPicks   int `json:"total_picks"`
	TFSPoints    int `json:"tfs_points"`
}

type seasonRecordDTO struct {
	UserID         string           `json:"user_id"`
	LeagueID       string           `json:"league_id"`
	TotalPoints    int              `json:"total_points"`
	CorrectPicks   int              `json:"correct_picks"`
	TotalPicks     int              `json:"total_picks"`
	TotalTFSPoints int              `json:"total_tfs_points"`
	WinPercentage  float64          `json:"win_percentage"`
	WeeksPlayed    int              `json:"weeks_played"`
	Weeks          []weeklyStatsDTO `json:"weeks"`
}

type weekReconcileRowDTO struct {
	UserID       string `json:"user_id"`
	SubmissionID string `json:"submission_id"`
	Status       string `json:"status"`
	WeeklyPoints int    `json:"weekly_points"`
	Message      string `json:"message,omitempty"`
}

type weekReconcileDTO struct {
	LeagueID       string                `json:"league_id"`
	Week           int                   `json:"week"`
	Degraded       bool                  `json:"degraded"`
	ChangedCount   int                   `json:"changed_count"`
	UnchangedCount int                   `json:"unchanged_count"`
	FailedCount    int                   `json:"failed_count"`
	Rows           []weekReconcileRowDTO `json:"rows"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func gameToDTO(g game.Game) gameDTO {
	out := gameDTO{
		ID:        g.ID,
		Week:      g.Week,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		HomeScore: g.HomeScore,
		AwayScore: g.AwayScore,
		Status:    string(g.Status),
	}
	if g.KickoffAt != nil {
		out.KickoffAt = formatTime(*g.KickoffAt)
	}
	return out
}

func leagueToDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:         l.ID,
		Name:       l.Name,
		Sport:      l.Sport,
		Mode:       string(l.Mode),
		InviteCode: l.InviteCode,
		CreatorID:  l.CreatorID,
		CreatedAt:  formatTime(l.CreatedAt),
	}
}

func memberToDTO(m league.Member) memberDTO {
	return memberDTO{
		UserID:      m.UserID,
		DisplayName: m.DisplayNameOr(),
		JoinedAt:    formatTime(m.JoinedAt),
	}
}

func submissionToDTO(s pickem.WeeklySubmission) submissionDTO {
	picks := make([]pickDTO, 0, len(s.Picks))
	for _, p := range s.Picks {
		picks = append(picks, pickDTO{
			GameID:     p.GameID,
			Team:       p.Team,
			Opponent:   p.Opponent,
			IsHome:     p.IsHome,
			Confidence: p.Confidence,
			IsCorrect:  p.IsCorrect,
		})
	}

	return submissionDTO{
		ID:       s.ID,
		UserID:   s.UserID,
		LeagueID: s.LeagueID,
		Week:     s.Week,
		Picks:    picks,
		TieBreak: tieBreakDTO{
			GameID:         s.TieBreak.GameID,
			PredictedTotal: s.TieBreak.PredictedTotal,
		},
		WeeklyPoints: s.WeeklyPoints,
		CorrectPicks: s.CorrectPicks,
		TFSPoints:    s.TFSPoints,
		CreatedAt:    formatTime(s.CreatedAt),
		UpdatedAt:    formatTime(s.UpdatedAt),
	}
}

func weeklyEntryToDTO(row standings.Ranked[standings.WeeklyEntry]) weeklyEntryDTO {
	e := row.Entry
	return weeklyEntryDTO{
		Rank:         row.Rank,
		UserID:       e.Player.UserID,
		Name:         e.Player.Name,
		Points:       e.Points,
		CorrectPicks: e.CorrectPicks,
		TotalPicks:   e.TotalPicks,
		TFSPoints:    e.TFSPoints,
		Submitted:    e.Submitted,
	}
}

func seasonEntryToDTO(rank int, e standings.SeasonEntry) seasonEntryDTO {
	return seasonEntryDTO{
		Rank:           rank,
		UserID:         e.Player.UserID,
		Name:           e.Player.Name,
		TotalPoints:    e.TotalPoints,
		CorrectPicks:   e.CorrectPicks,
		TotalPicks:     e.TotalPicks,
		TotalTFSPoints: e.TotalTFSPoints,
		WinPercentage:  e.WinPercentage,
	}
}

func seasonRecordToDTO(r standings.SeasonRecord) seasonRecordDTO {
	weeks := make([]weeklyStatsDTO, 0, len(r.WeeklyStats))
	for week, stats := range r.WeeklyStats {
		weeks = append(weeks, weeklyStatsDTO{
			Week:         week,
			WeeklyPoints: stats.WeeklyPoints,
			CorrectPicks: stats.CorrectPicks,
			TotalPicks:   stats.TotalPicks,
			TFSPoints:    stats.TFSPoints,
		})
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Week < weeks[j].Week })

	return seasonRecordDTO{
		UserID:         r.UserID,
		LeagueID:       r.LeagueID,
		TotalPoints:    r.TotalPoints,
		CorrectPicks:   r.CorrectPicks,
		TotalPicks:     r.TotalPicks,
		TotalTFSPoints: r.TotalTFSPoints,
		WinPercentage:  r.WinPercentage,
		WeeksPlayed:    r.WeeksPlayed(),
		Weeks:          weeks,
	}
}

func weekReconcileToDTO(r usecase.WeekReconcileResult) weekReconcileDTO {
	rows := make([]weekReconcileRowDTO, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, weekReconcileRowDTO{
			UserID:       row.UserID,
			SubmissionID: row.SubmissionID,
			Status:       row.Status,
			WeeklyPoints: row.WeeklyPoints,
			Message:      row.Message,
		})
	}

	return weekReconcileDTO{
		LeagueID:       r.LeagueID,
		Week:           r.Week,
		Degraded:       r.Degraded,
		ChangedCount:   r.ChangedCount,
		UnchangedCount: r.UnchangedCount,
		FailedCount:    r.FailedCount,
		Rows:           rows,
	}
}
