package store

import (
	"database/sql"
	"time"
)

// Game status values.
const (
	StatusScheduled = "scheduled"
	StatusFinal     = "final"
)

// Home/away flags as stored on stat lines.
const (
	SideHome = "HOME"
	SideAway = "AWAY"
)

// Game represents one scraped schedule entry. GameID is derived from
// (date, home team, away team) so re-scraping the same schedule upserts
// instead of duplicating.
type Game struct {
	GameID       string        `json:"game_id" db:"game_id"`
	SourceTeamID string        `json:"source_team_id" db:"source_team_id"`
	GameDate     time.Time     `json:"game_date" db:"game_date"`
	HomeTeamID   string        `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   string        `json:"away_team_id" db:"away_team_id"`
	HomeScore    sql.NullInt32 `json:"home_score,omitempty" db:"home_score"`
	AwayScore    sql.NullInt32 `json:"away_score,omitempty" db:"away_score"`
	Status       string        `json:"status" db:"status"`
	BoxScoreURL  string        `json:"box_score_url" db:"box_score_url"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// BattingLine is one player's batting row for one game and one side.
type BattingLine struct {
	ID           int    `json:"id" db:"id"`
	GameID       string `json:"game_id" db:"game_id"`
	TeamID       string `json:"team_id" db:"team_id"`
	TeamName     string `json:"team_name" db:"team_name"`
	HomeOrAway   string `json:"home_or_away" db:"home_or_away"`
	IsSourceTeam bool   `json:"is_source_team" db:"is_source_team"`
	Opponent     string `json:"opponent" db:"opponent"`
	PlayerName   string `json:"player_name" db:"player_name"`
	Position     string `json:"position" db:"position"`
	AB           int    `json:"ab" db:"ab"`
	R            int    `json:"r" db:"r"`
	H            int    `json:"h" db:"h"`
	RBI          int    `json:"rbi" db:"rbi"`
	BB           int    `json:"bb" db:"bb"`
	SO           int    `json:"so" db:"so"`
	Doubles      int    `json:"doubles" db:"doubles"`
	Triples      int    `json:"triples" db:"triples"`
	HomeRuns     int    `json:"home_runs" db:"home_runs"`
	StolenBases  int    `json:"stolen_bases" db:"stolen_bases"`
	TotalBases   int    `json:"total_bases" db:"total_bases"`
}

// PitchingLine is one pitcher's row for one game and one side. IP keeps the
// fractional innings notation ("5.2" = 5⅔ innings) as raw text. PitchesThrown,
// StrikesThrown and BattersFaced are null when the extra-stats panel did not
// provide them; null means unknown, distinct from a true zero.
type PitchingLine struct {
	ID            int           `json:"id" db:"id"`
	GameID        string        `json:"game_id" db:"game_id"`
	TeamID        string        `json:"team_id" db:"team_id"`
	TeamName      string        `json:"team_name" db:"team_name"`
	HomeOrAway    string        `json:"home_or_away" db:"home_or_away"`
	IsSourceTeam  bool          `json:"is_source_team" db:"is_source_team"`
	Opponent      string        `json:"opponent" db:"opponent"`
	PitcherName   string        `json:"pitcher_name" db:"pitcher_name"`
	IP            string        `json:"ip" db:"ip"`
	HAllowed      int           `json:"h_allowed" db:"h_allowed"`
	RAllowed      int           `json:"r_allowed" db:"r_allowed"`
	ERAllowed     int           `json:"er_allowed" db:"er_allowed"`
	BBAllowed     int           `json:"bb_allowed" db:"bb_allowed"`
	Strikeouts    int           `json:"strikeouts" db:"strikeouts"`
	PitchesThrown sql.NullInt32 `json:"pitches_thrown,omitempty" db:"pitches_thrown"`
	StrikesThrown sql.NullInt32 `json:"strikes_thrown,omitempty" db:"strikes_thrown"`
	BattersFaced  sql.NullInt32 `json:"batters_faced,omitempty" db:"batters_faced"`
}

// Team maps a GameChanger team id to the display name seen on its pages.
type Team struct {
	TeamID   string `json:"team_id" db:"team_id"`
	TeamName string `json:"team_name" db:"team_name"`
}
