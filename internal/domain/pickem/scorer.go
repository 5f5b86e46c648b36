package pickem

// Score evaluates picks with the default rules.
func Score(picks []Pick, tieBreak TieBreakGuess, results []GameResult) ScoredWeek {
	return DefaultRules().Score(picks, tieBreak, results)
}

// Score never fails: a game that is missing or not final leaves its pick undecided.
func (r Rules) Score(picks []Pick, tieBreak TieBreakGuess, results []GameResult) ScoredWeek {
	byID := indexResults(results)

	out := ScoredWeek{Picks: make([]Pick, len(picks))}
	for i, pick := range picks {
		scored := pick
		scored.IsCorrect = nil
		if result, ok := byID[pick.GameID]; ok {
			scored.IsCorrect = r.pickOutcome(pick, result)
		}
		if scored.IsCorrect != nil && *scored.IsCorrect {
			out.CorrectPicks++
		}
		out.Picks[i] = scored
	}

	if result, ok := byID[tieBreak.GameID]; ok {
		if total, final := result.Total(); final {
			out.TFSPoints = r.TieBreakPoints(absInt(tieBreak.PredictedTotal - total))
		}
	}

	out.WeeklyPoints = r.PointsPerCorrectPick*out.CorrectPicks + out.TFSPoints
	return out
}

// TieBreakPoints maps an absolute guess difference onto the first matching band.
func (r Rules) TieBreakPoints(difference int) int {
	if difference < 0 {
		difference = -difference
	}
	for _, band := range r.TieBreakBands {
		if difference <= band.MaxDifference {
			return band.Points
		}
	}
	return 0
}

func (r Rules) pickOutcome(pick Pick, result GameResult) *bool {
	if !result.IsFinal() {
		return nil
	}
	home, away := *result.HomeScore, *result.AwayScore
	if home == away && r.TiePolicy == TiePolicyPush {
		return nil
	}

	homeWon := home > away
	pickedHome := pick.Team == result.HomeTeam
	correct := pickedHome == homeWon
	return &correct
}

// indexResults keeps the first result per game id.
func indexResults(results []GameResult) map[string]GameResult {
	out := make(map[string]GameResult, len(results))
	for _, result := range results {
		if result.ID == "" {
			continue
		}
		if _, exists := out[result.ID]; exists {
			continue
		}
		out[result.ID] = result
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
