package standings

import "sort"

// DetermineWinner returns the users with the highest total points, narrowed to
// the highest win percentage among them. Co-winners are returned sorted by id.
// The result is non-empty whenever records is non-empty.
func DetermineWinner(records map[string]SeasonRecord) []string {
	if len(records) == 0 {
		return nil
	}

	bestPoints := 0
	first := true
	for _, record := range records {
		if first || record.TotalPoints > bestPoints {
			bestPoints = record.TotalPoints
			first = false
		}
	}

	bestPct := -1.0
	for _, record := range records {
		if record.TotalPoints == bestPoints && record.WinPercentage > bestPct {
			bestPct = record.WinPercentage
		}
	}

	winners := make([]string, 0, 1)
	for userID, record := range records {
		if record.TotalPoints == bestPoints && record.WinPercentage == bestPct {
			winners = append(winners, userID)
		}
	}
	sort.Strings(winners)
	return winners
}
