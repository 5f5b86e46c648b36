package pickem

import "time"

// Mode selects the scoring strategy a league plays with.
type Mode string

const (
	ModeStandard   Mode = "standard"
	ModeConfidence Mode = "confidence"
)

// GameResult is one game as seen by the scorer. Scores stay nil until reported.
type GameResult struct {
	ID        string
	HomeTeam  string
	AwayTeam  string
	HomeScore *int
	AwayScore *int
}

// IsFinal reports whether both scores are present.
func (g GameResult) IsFinal() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// Total returns the combined final score.
func (g GameResult) Total() (int, bool) {
	if !g.IsFinal() {
		return 0, false
	}
	return *g.HomeScore + *g.AwayScore, true
}

// Pick is one game selection. IsCorrect is derived by the scorer and stays nil while undecided.
type Pick struct {
	GameID     string
	Team       string
	Opponent   string
	IsHome     bool
	Confidence int
	IsCorrect  *bool
}

// TieBreakGuess is the predicted combined score for the designated TFS game.
type TieBreakGuess struct {
	GameID         string
	PredictedTotal int
}

// Draft is a submission as received, before validation.
type Draft struct {
	Picks          []Pick
	TieBreakGameID string
	PredictedTotal float64
}

// ScoredWeek is the scorer output for one weekly submission.
type ScoredWeek struct {
	Picks        []Pick
	WeeklyPoints int
	CorrectPicks int
	TFSPoints    int
}

// WeeklySubmission is stored once per (user, league, week).
type WeeklySubmission struct {
	ID           string
	UserID       string
	LeagueID     string
	Week         int
	Picks        []Pick
	TieBreak     TieBreakGuess
	WeeklyPoints int
	CorrectPicks int
	TFSPoints    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PickCount is the number of picks counted toward season totals.
func (s WeeklySubmission) PickCount() int {
	return len(s.Picks)
}

// Apply copies scored values onto the submission.
func (s *WeeklySubmission) Apply(scored ScoredWeek) {
	s.Picks = ClonePicks(scored.Picks)
	s.WeeklyPoints = scored.WeeklyPoints
	s.CorrectPicks = scored.CorrectPicks
	s.TFSPoints = scored.TFSPoints
}

// Differs reports whether scored values disagree with what is stored, including per-pick outcomes.
func (s WeeklySubmission) Differs(scored ScoredWeek) bool {
	if s.WeeklyPoints != scored.WeeklyPoints ||
		s.CorrectPicks != scored.CorrectPicks ||
		s.TFSPoints != scored.TFSPoints {
		return true
	}
	if len(s.Picks) != len(scored.Picks) {
		return true
	}
	for i := range s.Picks {
		if !sameOutcome(s.Picks[i].IsCorrect, scored.Picks[i].IsCorrect) {
			return true
		}
	}
	return false
}

// SubmissionPatch carries the re-scored fields written back by reconciliation.
type SubmissionPatch struct {
	Picks        []Pick
	WeeklyPoints int
	CorrectPicks int
	TFSPoints    int
	UpdatedAt    time.Time
}

// PatchFrom builds the update for a re-scored week.
func PatchFrom(scored ScoredWeek, at time.Time) SubmissionPatch {
	return SubmissionPatch{
		Picks:        ClonePicks(scored.Picks),
		WeeklyPoints: scored.WeeklyPoints,
		CorrectPicks: scored.CorrectPicks,
		TFSPoints:    scored.TFSPoints,
		UpdatedAt:    at,
	}
}

// Totals is the store-side sum over a user's submissions.
type Totals struct {
	UserID       string
	LeagueID     string
	Submissions  int
	WeeklyPoints int
	CorrectPicks int
	TotalPicks   int
	TFSPoints    int
}

func sameOutcome(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ClonePicks returns a deep copy of picks.
func ClonePicks(in []Pick) []Pick {
	if in == nil {
		return nil
	}
	out := make([]Pick, len(in))
	for i, p := range in {
		out[i] = p
		if p.IsCorrect != nil {
			v := *p.IsCorrect
			out[i].IsCorrect = &v
		}
	}
	return out
}
