package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kraytos1/aces-analytics/internal/store"
)

// BattingRepository handles batting stat lines
type BattingRepository struct {
	db *store.Database
}

// NewBattingRepository creates a new batting repository
func NewBattingRepository(db *store.Database) *BattingRepository {
	return &BattingRepository{db: db}
}

// Insert stores one batting line. Re-inserting the same player for the same
// game and side is a no-op, so re-scraping a game is idempotent.
func (r *BattingRepository) Insert(ctx context.Context, line *store.BattingLine) error {
	query := `
		INSERT INTO batting_stats (game_id, team_id, team_name, home_or_away,
			is_source_team, opponent, player_name, position,
			ab, r, h, rbi, bb, so, doubles, triples, home_runs, stolen_bases, total_bases)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (game_id, team_id, player_name) DO NOTHING
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		line.GameID, line.TeamID, line.TeamName, line.HomeOrAway,
		line.IsSourceTeam, line.Opponent, line.PlayerName, line.Position,
		line.AB, line.R, line.H, line.RBI, line.BB, line.SO,
		line.Doubles, line.Triples, line.HomeRuns, line.StolenBases, line.TotalBases,
	)
	if err != nil {
		return fmt.Errorf("inserting batting line for %s: %w", line.PlayerName, err)
	}

	return nil
}

// GetSourceTeamLines returns the batting lines belonging to the scraped team
// itself (opponent rows excluded so aggregation never double-counts).
func (r *BattingRepository) GetSourceTeamLines(ctx context.Context, teamID string) ([]*store.BattingLine, error) {
	query := `
		SELECT id, game_id, team_id, team_name, home_or_away, is_source_team,
			opponent, player_name, position,
			ab, r, h, rbi, bb, so, doubles, triples, home_runs, stolen_bases, total_bases
		FROM batting_stats
		WHERE team_id = $1 AND is_source_team
		ORDER BY player_name, game_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying batting lines: %w", err)
	}
	defer rows.Close()

	return r.scanLines(rows)
}

// GetByGame returns every batting line recorded for a game, both sides.
func (r *BattingRepository) GetByGame(ctx context.Context, gameID string) ([]*store.BattingLine, error) {
	query := `
		SELECT id, game_id, team_id, team_name, home_or_away, is_source_team,
			opponent, player_name, position,
			ab, r, h, rbi, bb, so, doubles, triples, home_runs, stolen_bases, total_bases
		FROM batting_stats
		WHERE game_id = $1
		ORDER BY home_or_away, id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying batting lines: %w", err)
	}
	defer rows.Close()

	return r.scanLines(rows)
}

func (r *BattingRepository) scanLines(rows *sql.Rows) ([]*store.BattingLine, error) {
	lines := make([]*store.BattingLine, 0)

	for rows.Next() {
		line := &store.BattingLine{}
		err := rows.Scan(
			&line.ID, &line.GameID, &line.TeamID, &line.TeamName, &line.HomeOrAway,
			&line.IsSourceTeam, &line.Opponent, &line.PlayerName, &line.Position,
			&line.AB, &line.R, &line.H, &line.RBI, &line.BB, &line.SO,
			&line.Doubles, &line.Triples, &line.HomeRuns, &line.StolenBases, &line.TotalBases,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning batting line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
