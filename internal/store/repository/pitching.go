package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kraytos1/aces-analytics/internal/store"
)

// PitchingRepository handles pitching stat lines
type PitchingRepository struct {
	db *store.Database
}

// NewPitchingRepository creates a new pitching repository
func NewPitchingRepository(db *store.Database) *PitchingRepository {
	return &PitchingRepository{db: db}
}

// Insert stores one pitching line; duplicates for the same game and side
// are swallowed the same way batting lines are.
func (r *PitchingRepository) Insert(ctx context.Context, line *store.PitchingLine) error {
	query := `
		INSERT INTO pitching_stats (game_id, team_id, team_name, home_or_away,
			is_source_team, opponent, pitcher_name, ip,
			h_allowed, r_allowed, er_allowed, bb_allowed, strikeouts,
			pitches_thrown, strikes_thrown, batters_faced)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (game_id, team_id, pitcher_name) DO NOTHING
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		line.GameID, line.TeamID, line.TeamName, line.HomeOrAway,
		line.IsSourceTeam, line.Opponent, line.PitcherName, line.IP,
		line.HAllowed, line.RAllowed, line.ERAllowed, line.BBAllowed, line.Strikeouts,
		line.PitchesThrown, line.StrikesThrown, line.BattersFaced,
	)
	if err != nil {
		return fmt.Errorf("inserting pitching line for %s: %w", line.PitcherName, err)
	}

	return nil
}

// GetSourceTeamLines returns the scraped team's own pitching lines.
func (r *PitchingRepository) GetSourceTeamLines(ctx context.Context, teamID string) ([]*store.PitchingLine, error) {
	query := `
		SELECT id, game_id, team_id, team_name, home_or_away, is_source_team,
			opponent, pitcher_name, ip,
			h_allowed, r_allowed, er_allowed, bb_allowed, strikeouts,
			pitches_thrown, strikes_thrown, batters_faced
		FROM pitching_stats
		WHERE team_id = $1 AND is_source_team
		ORDER BY pitcher_name, game_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying pitching lines: %w", err)
	}
	defer rows.Close()

	return r.scanLines(rows)
}

func (r *PitchingRepository) scanLines(rows *sql.Rows) ([]*store.PitchingLine, error) {
	lines := make([]*store.PitchingLine, 0)

	for rows.Next() {
		line := &store.PitchingLine{}
		err := rows.Scan(
			&line.ID, &line.GameID, &line.TeamID, &line.TeamName, &line.HomeOrAway,
			&line.IsSourceTeam, &line.Opponent, &line.PitcherName, &line.IP,
			&line.HAllowed, &line.RAllowed, &line.ERAllowed, &line.BBAllowed, &line.Strikeouts,
			&line.PitchesThrown, &line.StrikesThrown, &line.BattersFaced,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning pitching line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
