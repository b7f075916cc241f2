package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/kraytos1/aces-analytics/internal/store"
)

func finalGame(homeID, awayID string, homeScore, awayScore int) *store.Game {
	return &store.Game{
		GameID:     "g-" + homeID + "-" + awayID,
		GameDate:   time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC),
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		HomeScore:  sql.NullInt32{Int32: int32(homeScore), Valid: true},
		AwayScore:  sql.NullInt32{Int32: int32(awayScore), Valid: true},
		Status:     store.StatusFinal,
	}
}

func TestSummarizeSeason(t *testing.T) {
	games := []*store.Game{
		finalGame("TEAM-A", "OPP-TEAM-A", 10, 4), // win at home
		finalGame("OPP-TEAM-A", "TEAM-A", 8, 2),  // loss on the road
		finalGame("TEAM-A", "OPP-TEAM-A", 5, 5),  // tie: counts G only
	}

	s := SummarizeSeason("TEAM-A", games)

	if s.Games != 3 {
		t.Errorf("Games = %d, expected 3", s.Games)
	}
	if s.Wins != 1 || s.Losses != 1 {
		t.Errorf("W-L = %d-%d, expected 1-1", s.Wins, s.Losses)
	}
	if s.RunsScored != 17 || s.RunsAgainst != 17 {
		t.Errorf("RS/RA = %d/%d, expected 17/17", s.RunsScored, s.RunsAgainst)
	}
	if s.RunDiff != 0 {
		t.Errorf("RunDiff = %d, expected 0", s.RunDiff)
	}

	// Score conservation: runs scored from the home side equal runs against
	// from the away side of the same games.
	opp := SummarizeSeason("OPP-TEAM-A", games)
	if opp.RunsScored != s.RunsAgainst || opp.RunsAgainst != s.RunsScored {
		t.Errorf("runs not conserved across sides: %+v vs %+v", s, opp)
	}
}

func TestSummarizeSeasonSkipsIncomplete(t *testing.T) {
	scheduled := &store.Game{
		GameID:     "g-upcoming",
		HomeTeamID: "TEAM-A",
		AwayTeamID: "OPP-TEAM-A",
		Status:     store.StatusScheduled,
	}
	missingScore := finalGame("TEAM-A", "OPP-TEAM-A", 3, 0)
	missingScore.AwayScore = sql.NullInt32{}

	s := SummarizeSeason("TEAM-A", []*store.Game{scheduled, missingScore})

	if s.Games != 0 {
		t.Errorf("Games = %d, expected 0 (incomplete games excluded)", s.Games)
	}
	if s.WinPct != 0.0 {
		t.Errorf("WinPct = %v, expected 0.0 with no games", s.WinPct)
	}
}

func TestSortLeaderboard(t *testing.T) {
	board := []TeamSeasonSummary{
		{TeamID: "low", Games: 4, Wins: 1, WinPct: 0.25, RunDiff: -10, RunsScored: 12},
		{TeamID: "rs-edge", Games: 4, Wins: 3, WinPct: 0.75, RunDiff: 8, RunsScored: 30},
		{TeamID: "top", Games: 4, Wins: 4, WinPct: 1.0, RunDiff: 20, RunsScored: 40},
		{TeamID: "rd-edge", Games: 4, Wins: 3, WinPct: 0.75, RunDiff: 12, RunsScored: 25},
		{TeamID: "rs-lower", Games: 4, Wins: 3, WinPct: 0.75, RunDiff: 8, RunsScored: 22},
	}

	SortLeaderboard(board)

	expected := []string{"top", "rd-edge", "rs-edge", "rs-lower", "low"}
	for i, want := range expected {
		if board[i].TeamID != want {
			t.Errorf("position %d = %s, expected %s", i, board[i].TeamID, want)
		}
	}
}
