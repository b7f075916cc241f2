package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database represents the PostgreSQL connection for scraped stats
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase opens and verifies a database connection
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries
func (db *Database) DB() *sql.DB {
	return db.conn
}

// migration pairs a version label with the DDL it applies. The schema is
// fixed and versioned; inserts never branch on column existence at runtime.
type migration struct {
	version string
	ddl     string
}

var migrations = []migration{
	{
		version: "001_create_games",
		ddl: `
		CREATE TABLE IF NOT EXISTS games (
			game_id        VARCHAR(120) PRIMARY KEY,
			source_team_id VARCHAR(50)  NOT NULL,
			game_date      DATE         NOT NULL,
			home_team_id   VARCHAR(50)  NOT NULL,
			away_team_id   VARCHAR(50)  NOT NULL,
			home_score     INT,
			away_score     INT,
			status         VARCHAR(20)  NOT NULL DEFAULT 'scheduled',
			box_score_url  VARCHAR(500),
			created_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			updated_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		)`,
	},
	{
		version: "002_create_batting_stats",
		ddl: `
		CREATE TABLE IF NOT EXISTS batting_stats (
			id             SERIAL PRIMARY KEY,
			game_id        VARCHAR(120) NOT NULL REFERENCES games(game_id),
			team_id        VARCHAR(50)  NOT NULL,
			team_name      VARCHAR(200),
			home_or_away   VARCHAR(10),
			is_source_team BOOLEAN      NOT NULL DEFAULT FALSE,
			opponent       VARCHAR(200),
			player_name    VARCHAR(200) NOT NULL,
			position       VARCHAR(20),
			ab INT, r INT, h INT, rbi INT, bb INT, so INT,
			doubles INT, triples INT, home_runs INT,
			stolen_bases INT, total_bases INT,
			UNIQUE (game_id, team_id, player_name)
		)`,
	},
	{
		version: "003_create_pitching_stats",
		ddl: `
		CREATE TABLE IF NOT EXISTS pitching_stats (
			id             SERIAL PRIMARY KEY,
			game_id        VARCHAR(120) NOT NULL REFERENCES games(game_id),
			team_id        VARCHAR(50)  NOT NULL,
			team_name      VARCHAR(200),
			home_or_away   VARCHAR(10),
			is_source_team BOOLEAN      NOT NULL DEFAULT FALSE,
			opponent       VARCHAR(200),
			pitcher_name   VARCHAR(200) NOT NULL,
			ip             VARCHAR(10),
			h_allowed INT, r_allowed INT, er_allowed INT,
			bb_allowed INT, strikeouts INT,
			pitches_thrown INT,
			strikes_thrown INT,
			batters_faced  INT,
			UNIQUE (game_id, team_id, pitcher_name)
		)`,
	},
	{
		version: "004_create_teams",
		ddl: `
		CREATE TABLE IF NOT EXISTS teams (
			team_id   VARCHAR(50) PRIMARY KEY,
			team_name VARCHAR(200) NOT NULL
		)`,
	},
	{
		version: "005_index_games_source_team",
		ddl: `
		CREATE INDEX IF NOT EXISTS idx_games_source_team ON games (source_team_id);
		CREATE INDEX IF NOT EXISTS idx_batting_team ON batting_stats (team_id, is_source_team);
		CREATE INDEX IF NOT EXISTS idx_pitching_team ON pitching_stats (team_id, is_source_team)`,
	},
}

// RunMigrations applies all pending schema migrations in order
func (db *Database) RunMigrations() error {
	log.Println("Running database migrations...")

	if err := db.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		if err := db.runMigration(m); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", m.version, err)
		}
	}

	log.Println("✓ All migrations completed successfully")
	return nil
}

// createMigrationsTable creates a table to track which migrations have been run
func (db *Database) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.conn.Exec(query)
	return err
}

// runMigration applies a single migration if it hasn't been applied yet
func (db *Database) runMigration(m migration) error {
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", m.version).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		log.Printf("  ⊘ Skipping %s (already applied)", m.version)
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.ddl); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", m.version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("  ✓ Applied %s", m.version)
	return nil
}

// HealthCheck performs a health check on the database
func (db *Database) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}
