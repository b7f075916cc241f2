package gamechanger

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kraytos1/aces-analytics/internal/store"
)

// ScheduleGame is one entry parsed from a team schedule page, in page order.
// OurScore/OppScore are nil until the game has a "W n-m"/"L n-m" result.
type ScheduleGame struct {
	GameDate    time.Time
	BoxScoreURL string
	HomeOrAway  string // store.SideHome, store.SideAway, or "" when unknown
	OurScore    *int
	OppScore    *int
}

// Played reports whether the schedule entry carries a final score.
func (g ScheduleGame) Played() bool {
	return g.OurScore != nil && g.OppScore != nil
}

// GameID derives the stable id for a game. The same (date, home, away)
// triple always yields the same id, which is what makes re-scraping an
// upsert instead of a duplicate insert.
func GameID(date time.Time, homeTeamID, awayTeamID string) string {
	id := fmt.Sprintf("%s_%s_vs_%s", date.Format("2006-01-02"), homeTeamID, awayTeamID)
	return strings.ReplaceAll(id, " ", "_")
}

// OpponentPlaceholder builds the stand-in id used when the opponent's real
// team id is unknown at scrape time. The source team id is folded in so two
// different teams' views of their opponents can never collide on game id.
func OpponentPlaceholder(sourceTeamID string) string {
	return "OPP-" + sourceTeamID
}

// AssembleGame orients a schedule entry into a store.Game for the given
// source team: the scraped team takes the side its schedule says it played,
// the opponent gets the placeholder id. An entry with no home/away marker is
// treated as home, with a warning.
func AssembleGame(g ScheduleGame, sourceTeamID string) *store.Game {
	opp := OpponentPlaceholder(sourceTeamID)

	side := g.HomeOrAway
	if side != store.SideHome && side != store.SideAway {
		log.Printf("[WARN] Game on %s has no home/away marker; assuming home", g.GameDate.Format("2006-01-02"))
		side = store.SideHome
	}

	homeID, awayID := sourceTeamID, opp
	if side == store.SideAway {
		homeID, awayID = opp, sourceTeamID
	}

	game := &store.Game{
		GameID:       GameID(g.GameDate, homeID, awayID),
		SourceTeamID: sourceTeamID,
		GameDate:     g.GameDate,
		HomeTeamID:   homeID,
		AwayTeamID:   awayID,
		Status:       store.StatusScheduled,
		BoxScoreURL:  g.BoxScoreURL,
	}

	if g.Played() {
		ours, theirs := *g.OurScore, *g.OppScore
		if side == store.SideHome {
			game.HomeScore = sql.NullInt32{Int32: int32(ours), Valid: true}
			game.AwayScore = sql.NullInt32{Int32: int32(theirs), Valid: true}
		} else {
			game.HomeScore = sql.NullInt32{Int32: int32(theirs), Valid: true}
			game.AwayScore = sql.NullInt32{Int32: int32(ours), Valid: true}
		}
		game.Status = store.StatusFinal
	}

	return game
}

func nullInt32(n int) sql.NullInt32 {
	return sql.NullInt32{Int32: int32(n), Valid: true}
}

// RunReport summarizes one ingest run. Every skipped row or unmatched token
// increments Warnings; a run is never silent about what it dropped.
type RunReport struct {
	SourceTeamID  string `json:"source_team_id"`
	GamesFound    int    `json:"games_found"`
	GamesIngested int    `json:"games_ingested"`
	BattingRows   int    `json:"batting_rows"`
	PitchingRows  int    `json:"pitching_rows"`
	RowsInserted  int    `json:"rows_inserted"`
	Warnings      int    `json:"warnings"`
}

func (r RunReport) String() string {
	return fmt.Sprintf("team=%s games=%d/%d batting=%d pitching=%d inserted=%d warnings=%d",
		r.SourceTeamID, r.GamesIngested, r.GamesFound, r.BattingRows, r.PitchingRows, r.RowsInserted, r.Warnings)
}
