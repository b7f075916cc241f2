package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kraytos1/aces-analytics/internal/store"
)

// GameRepository handles game data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `game_id, source_team_id, game_date, home_team_id, away_team_id,
	home_score, away_score, status, box_score_url, created_at, updated_at`

// Upsert inserts a game, or refreshes scores/status for an existing one.
// A duplicate game_id is expected on re-scrape: only score backfill and the
// status transition to final are applied, everything else stays untouched.
func (r *GameRepository) Upsert(ctx context.Context, game *store.Game) error {
	query := `
		INSERT INTO games (game_id, source_team_id, game_date, home_team_id,
			away_team_id, home_score, away_score, status, box_score_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (game_id) DO UPDATE SET
			home_score = COALESCE(EXCLUDED.home_score, games.home_score),
			away_score = COALESCE(EXCLUDED.away_score, games.away_score),
			status     = CASE WHEN EXCLUDED.status = 'final' THEN 'final' ELSE games.status END,
			updated_at = NOW()
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		game.GameID, game.SourceTeamID, game.GameDate, game.HomeTeamID,
		game.AwayTeamID, game.HomeScore, game.AwayScore, game.Status, game.BoxScoreURL,
	)
	if err != nil {
		return fmt.Errorf("upserting game %s: %w", game.GameID, err)
	}

	return nil
}

// GetByID finds a game by its derived id
func (r *GameRepository) GetByID(ctx context.Context, gameID string) (*store.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(
		&game.GameID, &game.SourceTeamID, &game.GameDate, &game.HomeTeamID, &game.AwayTeamID,
		&game.HomeScore, &game.AwayScore, &game.Status, &game.BoxScoreURL,
		&game.CreatedAt, &game.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}

	return game, nil
}

// GetBySourceTeam returns all games scraped from one team's schedule,
// in date order.
func (r *GameRepository) GetBySourceTeam(ctx context.Context, sourceTeamID string) ([]*store.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE source_team_id = $1 ORDER BY game_date`

	rows, err := r.db.DB().QueryContext(ctx, query, sourceTeamID)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// scanGames scans multiple game rows
func (r *GameRepository) scanGames(rows *sql.Rows) ([]*store.Game, error) {
	games := make([]*store.Game, 0)

	for rows.Next() {
		game := &store.Game{}
		err := rows.Scan(
			&game.GameID, &game.SourceTeamID, &game.GameDate, &game.HomeTeamID, &game.AwayTeamID,
			&game.HomeScore, &game.AwayScore, &game.Status, &game.BoxScoreURL,
			&game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
