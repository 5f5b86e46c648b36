package pickem

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidPickCount      = errors.New("invalid pick count")
	ErrTieBreakGameNotPicked = errors.New("tie-break game is not among picks")
	ErrInvalidPredictedTotal = errors.New("predicted total must be a non-negative integer")
	ErrDuplicateGame         = errors.New("duplicate game in picks")
	ErrDuplicateSubmission   = errors.New("submission already exists for user, league and week")
)

// TiePolicy decides how a final game with equal scores resolves.
type TiePolicy string

const (
	// TiePolicyAwayWins keeps the strict home > away comparison, so a tie counts as an away win.
	TiePolicyAwayWins TiePolicy = "away"
	// TiePolicyPush leaves every pick on a tied game undecided.
	TiePolicyPush TiePolicy = "push"
)

// TieBreakBand awards Points when the guess is off by at most MaxDifference.
type TieBreakBand struct {
	MaxDifference int
	Points        int
}

// Strategy validates and scores one weekly submission.
type Strategy interface {
	Mode() Mode
	Validate(draft Draft) (TieBreakGuess, error)
	Score(picks []Pick, tieBreak TieBreakGuess, results []GameResult) ScoredWeek
}

// Rules stores the standard pick-five scoring parameters.
type Rules struct {
	PicksPerWeek         int
	PointsPerCorrectPick int
	TieBreakBands        []TieBreakBand
	TiePolicy            TiePolicy
}

var _ Strategy = Rules{}

func DefaultRules() Rules {
	return Rules{
		PicksPerWeek:         5,
		PointsPerCorrectPick: 2,
		TieBreakBands: []TieBreakBand{
			{MaxDifference: 0, Points: 5},
			{MaxDifference: 3, Points: 4},
			{MaxDifference: 5, Points: 3},
			{MaxDifference: 7, Points: 2},
			{MaxDifference: 10, Points: 1},
		},
		TiePolicy: TiePolicyAwayWins,
	}
}

func (r Rules) Mode() Mode {
	return ModeStandard
}

// ValidateSubmission checks a submission against the default rules.
func ValidateSubmission(picks []Pick, tieBreak TieBreakGuess) error {
	_, err := DefaultRules().Validate(Draft{
		Picks:          picks,
		TieBreakGameID: tieBreak.GameID,
		PredictedTotal: float64(tieBreak.PredictedTotal),
	})
	return err
}

// Validate applies the rules in a fixed order and returns the first violation:
// pick count, tie-break game membership, predicted total, duplicate games.
func (r Rules) Validate(draft Draft) (TieBreakGuess, error) {
	if len(draft.Picks) != r.PicksPerWeek {
		return TieBreakGuess{}, fmt.Errorf("%w: expected %d, got %d", ErrInvalidPickCount, r.PicksPerWeek, len(draft.Picks))
	}

	gameID := strings.TrimSpace(draft.TieBreakGameID)
	picked := false
	for _, pick := range draft.Picks {
		if gameID != "" && pick.GameID == gameID {
			picked = true
			break
		}
	}
	if !picked {
		return TieBreakGuess{}, fmt.Errorf("%w: game=%q", ErrTieBreakGameNotPicked, gameID)
	}

	total := draft.PredictedTotal
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 || total != math.Trunc(total) || total > math.MaxInt32 {
		return TieBreakGuess{}, fmt.Errorf("%w: got %v", ErrInvalidPredictedTotal, total)
	}

	seen := make(map[string]struct{}, len(draft.Picks))
	for _, pick := range draft.Picks {
		if _, exists := seen[pick.GameID]; exists {
			return TieBreakGuess{}, fmt.Errorf("%w: %s", ErrDuplicateGame, pick.GameID)
		}
		seen[pick.GameID] = struct{}{}
	}

	return TieBreakGuess{GameID: gameID, PredictedTotal: int(total)}, nil
}
