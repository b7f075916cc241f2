package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kraytos1/aces-analytics/internal/store"
)

// TeamRepository tracks the display names learned for scraped team ids
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// Upsert records the display name seen on a team's schedule page,
// replacing whatever was stored before.
func (r *TeamRepository) Upsert(ctx context.Context, team *store.Team) error {
	query := `
		INSERT INTO teams (team_id, team_name)
		VALUES ($1, $2)
		ON CONFLICT (team_id) DO UPDATE SET team_name = EXCLUDED.team_name
	`

	if _, err := r.db.DB().ExecContext(ctx, query, team.TeamID, team.TeamName); err != nil {
		return fmt.Errorf("upserting team %s: %w", team.TeamID, err)
	}

	return nil
}

// ResolveName returns the stored display name for a team id, or the given
// fallback label when the team has never been scraped.
func (r *TeamRepository) ResolveName(ctx context.Context, teamID, fallback string) (string, error) {
	var name string
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT team_name FROM teams WHERE team_id = $1`, teamID).Scan(&name)

	if err == sql.ErrNoRows {
		if fallback != "" {
			return fallback, nil
		}
		return teamID, nil
	}
	if err != nil {
		return "", fmt.Errorf("resolving team name: %w", err)
	}

	return name, nil
}
