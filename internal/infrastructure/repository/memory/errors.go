package memory

import "fmt"

func errLeagueNotFound(leagueID string) error {
	return fmt.Errorf("league not found: %s", leagueID)
}
