package gamechanger

import (
	"testing"
	"time"

	"github.com/kraytos1/aces-analytics/internal/store"
)

func TestGameID(t *testing.T) {
	date := time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)

	id := GameID(date, "TEAM-A", "OPP-TEAM-A")
	if id != "2026-06-14_TEAM-A_vs_OPP-TEAM-A" {
		t.Errorf("GameID = %q", id)
	}

	// Deterministic: same inputs, same id.
	if again := GameID(date, "TEAM-A", "OPP-TEAM-A"); again != id {
		t.Errorf("GameID not deterministic: %q vs %q", id, again)
	}

	// Spaces in ids never leak into the key.
	spaced := GameID(date, "Team A", "Team B")
	if spaced != "2026-06-14_Team_A_vs_Team_B" {
		t.Errorf("GameID with spaces = %q", spaced)
	}
}

func TestOpponentPlaceholder(t *testing.T) {
	a := OpponentPlaceholder("TEAM-A")
	b := OpponentPlaceholder("TEAM-B")

	if a != "OPP-TEAM-A" {
		t.Errorf("placeholder = %q", a)
	}
	if a == b {
		t.Error("placeholders for different source teams must differ")
	}
}

func TestAssembleGame(t *testing.T) {
	date := time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)
	ours, theirs := 10, 4

	tests := []struct {
		name      string
		side      string
		wantHome  string
		wantAway  string
		homeScore int32
		awayScore int32
	}{
		{"home win", store.SideHome, "TEAM-A", "OPP-TEAM-A", 10, 4},
		{"away win", store.SideAway, "OPP-TEAM-A", "TEAM-A", 4, 10},
		{"unknown side defaults home", "", "TEAM-A", "OPP-TEAM-A", 10, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sg := ScheduleGame{
				GameDate:    date,
				BoxScoreURL: "https://web.gc.com/x",
				HomeOrAway:  tt.side,
				OurScore:    &ours,
				OppScore:    &theirs,
			}

			game := AssembleGame(sg, "TEAM-A")

			if game.HomeTeamID != tt.wantHome || game.AwayTeamID != tt.wantAway {
				t.Errorf("orientation = %s vs %s, expected %s vs %s",
					game.HomeTeamID, game.AwayTeamID, tt.wantHome, tt.wantAway)
			}
			if game.Status != store.StatusFinal {
				t.Errorf("status = %q, expected final", game.Status)
			}
			if !game.HomeScore.Valid || game.HomeScore.Int32 != tt.homeScore {
				t.Errorf("home score = %+v, expected %d", game.HomeScore, tt.homeScore)
			}
			if !game.AwayScore.Valid || game.AwayScore.Int32 != tt.awayScore {
				t.Errorf("away score = %+v, expected %d", game.AwayScore, tt.awayScore)
			}
			if game.SourceTeamID != "TEAM-A" {
				t.Errorf("source team = %q", game.SourceTeamID)
			}
		})
	}
}

func TestAssembleGameUnplayed(t *testing.T) {
	sg := ScheduleGame{
		GameDate:    time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC),
		BoxScoreURL: "https://web.gc.com/x",
		HomeOrAway:  store.SideHome,
	}

	game := AssembleGame(sg, "TEAM-A")

	if game.Status != store.StatusScheduled {
		t.Errorf("status = %q, expected scheduled", game.Status)
	}
	if game.HomeScore.Valid || game.AwayScore.Valid {
		t.Errorf("scores should be null for unplayed games: %+v", game)
	}
}

func TestTeamIDFromScheduleURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
		wantErr  bool
	}{
		{"https://web.gc.com/teams/HPJ0j14/TEAM-A/schedule", "TEAM-A", false},
		{"https://web.gc.com/teams/HPJ0j14/TEAM-A/schedule/", "TEAM-A", false},
		{"https://web.gc.com/teams/TEAM-A", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := TeamIDFromScheduleURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("team id = %q, expected %q", got, tt.expected)
			}
		})
	}
}
