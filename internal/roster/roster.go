// Package roster holds the tournament team configuration: which scraped
// team ids are in scope, the label each one plays under, and its pool
// assignment. The roster is explicit input to every tournament view; nothing
// in the aggregation layer assumes a global team set.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
)

// TournamentTeam is one configured entry on the tournament board.
type TournamentTeam struct {
	Label  string `json:"label"`   // display name on the board
	TeamID string `json:"team_id"` // scraped source team id
	Pool   string `json:"pool"`
}

// Load reads a roster file: a JSON array of tournament teams.
func Load(path string) ([]TournamentTeam, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}

	var teams []TournamentTeam
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("parsing roster %s: %w", path, err)
	}

	for i, t := range teams {
		if t.TeamID == "" {
			return nil, fmt.Errorf("roster %s: entry %d has no team_id", path, i)
		}
		if t.Label == "" {
			teams[i].Label = t.TeamID
		}
	}

	return teams, nil
}
