package pickem

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoPicks           = errors.New("no picks submitted")
	ErrTooManyPicks      = errors.New("too many picks")
	ErrMissingGameID     = errors.New("game id is required")
	ErrMissingTeam       = errors.New("team selection is required")
	ErrInvalidConfidence = errors.New("confidence out of range")
	ErrInvalidSelection  = errors.New("team is not playing in this game")
)

// ConfidenceRules scores picks by their confidence weight. There is no tie-break game.
type ConfidenceRules struct {
	MaxPicks      int
	MinConfidence int
	MaxConfidence int
}

var _ Strategy = ConfidenceRules{}

func DefaultConfidenceRules() ConfidenceRules {
	return ConfidenceRules{
		MaxPicks:      5,
		MinConfidence: 1,
		MaxConfidence: 5,
	}
}

func (r ConfidenceRules) Mode() Mode {
	return ModeConfidence
}

// Validate collects every violation instead of stopping at the first one.
func (r ConfidenceRules) Validate(draft Draft) (TieBreakGuess, error) {
	if len(draft.Picks) == 0 {
		return TieBreakGuess{}, ErrNoPicks
	}

	var errs []error
	if len(draft.Picks) > r.MaxPicks {
		errs = append(errs, fmt.Errorf("%w: maximum %d allowed", ErrTooManyPicks, r.MaxPicks))
	}

	games := make(map[string]struct{}, len(draft.Picks))
	for i, pick := range draft.Picks {
		n := i + 1
		if strings.TrimSpace(pick.GameID) == "" {
			errs = append(errs, fmt.Errorf("%w: pick %d", ErrMissingGameID, n))
		}
		if strings.TrimSpace(pick.Team) == "" {
			errs = append(errs, fmt.Errorf("%w: pick %d", ErrMissingTeam, n))
		}
		if pick.Confidence < r.MinConfidence || pick.Confidence > r.MaxConfidence {
			errs = append(errs, fmt.Errorf("%w: pick %d must be between %d and %d", ErrInvalidConfidence, n, r.MinConfidence, r.MaxConfidence))
		}
		if _, dup := games[pick.GameID]; dup {
			errs = append(errs, fmt.Errorf("%w: pick %d", ErrDuplicateGame, n))
		}
		games[pick.GameID] = struct{}{}
	}

	return TieBreakGuess{}, errors.Join(errs...)
}

// ValidateSelections rejects picks naming a team that plays neither side of a known game.
// Picks for games missing from results are left alone.
func (r ConfidenceRules) ValidateSelections(picks []Pick, results []GameResult) error {
	byID := indexResults(results)

	var errs []error
	for i, pick := range picks {
		result, ok := byID[pick.GameID]
		if !ok {
			continue
		}
		if _, known := pickedSide(pick, result); !known {
			errs = append(errs, fmt.Errorf("%w: pick %d", ErrInvalidSelection, i+1))
		}
	}
	return errors.Join(errs...)
}

// Score awards each correct pick its confidence value. Ties never score in this mode,
// and a pick naming neither side stays undecided.
func (r ConfidenceRules) Score(picks []Pick, _ TieBreakGuess, results []GameResult) ScoredWeek {
	byID := indexResults(results)

	out := ScoredWeek{Picks: make([]Pick, len(picks))}
	for i, pick := range picks {
		scored := pick
		scored.IsCorrect = nil
		result, ok := byID[pick.GameID]
		if !ok || !result.IsFinal() || *result.HomeScore == *result.AwayScore {
			out.Picks[i] = scored
			continue
		}
		if pickedHome, known := pickedSide(pick, result); known {
			homeWon := *result.HomeScore > *result.AwayScore
			correct := pickedHome == homeWon
			scored.IsCorrect = &correct
			if correct {
				out.CorrectPicks++
				out.WeeklyPoints += pick.Confidence
			}
		}
		out.Picks[i] = scored
	}
	return out
}

func pickedSide(pick Pick, result GameResult) (home bool, known bool) {
	switch pick.Team {
	case result.HomeTeam:
		return true, true
	case result.AwayTeam:
		return false, true
	}
	return false, false
}

// SelectionValidator is implemented by strategies that check picks against the week's games.
type SelectionValidator interface {
	ValidateSelections(picks []Pick, results []GameResult) error
}

var _ SelectionValidator = ConfidenceRules{}

// StrategyFor returns the strategy for a league mode, falling back to the standard rules.
func StrategyFor(mode Mode, standard Rules) Strategy {
	if mode == ModeConfidence {
		return DefaultConfidenceRules()
	}
	return standard
}
