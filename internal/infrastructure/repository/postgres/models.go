package postgres

import (
	"time"
)

type leagueTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	Name         string    `db:"name"`
	Sport        string    `db:"sport"`
	Mode         string    `db:"mode"`
	InviteCode   string    `db:"invite_code"`
	PasswordHash string    `db:"password_hash"`
	CreatorID    string    `db:"creator_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type leagueInsertModel struct {
	PublicID     string    `db:"public_id"`
	Name         string    `db:"name"`
	Sport        string    `db:"sport"`
	Mode         string    `db:"mode"`
	InviteCode   string    `db:"invite_code"`
	PasswordHash string    `db:"password_hash"`
	CreatorID    string    `db:"creator_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type leagueMemberTableModel struct {
	ID          int64     `db:"id"`
	LeagueID    string    `db:"league_public_id"`
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	JoinedAt    time.Time `db:"joined_at"`
}

type leagueMemberInsertModel struct {
	LeagueID    string    `db:"league_public_id"`
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	JoinedAt    time.Time `db:"joined_at"`
}

type submissionTableModel struct {
	ID             int64     `db:"id"`
	PublicID       string    `db:"public_id"`
	UserID         string    `db:"user_id"`
	LeagueID       string    `db:"league_public_id"`
	Week           int       `db:"week"`
	Picks          []byte    `db:"picks"`
	TieBreakGameID string    `db:"tie_break_game_id"`
	PredictedTotal int       `db:"predicted_total"`
	PickCount      int       `db:"pick_count"`
	WeeklyPoints   int       `db:"weekly_points"`
	CorrectPicks   int       `db:"correct_picks"`
	TFSPoints      int       `db:"tfs_points"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type submissionInsertModel struct {
	PublicID       string    `db:"public_id"`
	UserID         string    `db:"user_id"`
	LeagueID       string    `db:"league_public_id"`
	Week           int       `db:"week"`
	Picks          string    `db:"picks"`
	TieBreakGameID string    `db:"tie_break_game_id"`
	PredictedTotal int       `db:"predicted_total"`
	PickCount      int       `db:"pick_count"`
	WeeklyPoints   int       `db:"weekly_points"`
	CorrectPicks   int       `db:"correct_picks"`
	TFSPoints      int       `db:"tfs_points"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type submissionTotalsRow struct {
	Submissions  int `db:"submissions"`
	WeeklyPoints int `db:"weekly_points"`
	CorrectPicks int `db:"correct_picks"`
	TotalPicks   int `db:"total_picks"`
	TFSPoints    int `db:"tfs_points"`
}

type seasonRecordTableModel struct {
	ID             int64     `db:"id"`
	UserID         string    `db:"user_id"`
	LeagueID       string    `db:"league_public_id"`
	TotalPoints    int       `db:"total_points"`
	CorrectPicks   int       `db:"correct_picks"`
	TotalPicks     int       `db:"total_picks"`
	TotalTFSPoints int       `db:"total_tfs_points"`
	WinPercentage  float64   `db:"win_percentage"`
	WeeklyStats    []byte    `db:"weekly_stats"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type seasonRecordInsertModel struct {
	UserID         string    `db:"user_id"`
	LeagueID       string    `db:"league_public_id"`
	TotalPoints    int       `db:"total_points"`
	CorrectPicks   int       `db:"correct_picks"`
	TotalPicks     int       `db:"total_picks"`
	TotalTFSPoints int       `db:"total_tfs_points"`
	WinPercentage  float64   `db:"win_percentage"`
	WeeklyStats    string    `db:"weekly_stats"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// pickDocument is one element of the picks JSONB column.
type pickDocument struct {
	GameID     string `json:"gameId"`
	Team       string `json:"team"`
	Opponent   string `json:"opponent"`
	IsHome     bool   `json:"isHome"`
	Confidence int    `json:"confidence,omitempty"`
	IsCorrect  *bool  `json:"isCorrect"`
}

type weeklyStatsDocument struct {
	WeeklyPoints int `json:"weeklyPoints"`
	CorrectPicks int `json:"correctPicks"`
	TotalPicks   int `json:"totalPicks"`
	TFSPoints    int `json:"tfsPoints"`
}
