package gamechanger

import (
	"os"
	"testing"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func TestParseSchedulePage(t *testing.T) {
	doc, err := ParseHTML(loadFixture(t, "schedule.html"))
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	games := ParseSchedulePage(doc, "TEAM-A")

	// Four valid games; the day-32 row is invalid and dropped.
	if len(games) != 4 {
		t.Fatalf("expected 4 games, got %d", len(games))
	}

	first := games[0]
	if got := first.GameDate.Format("2006-01-02"); got != "2026-06-14" {
		t.Errorf("first game date = %s, expected 2026-06-14", got)
	}
	if first.BoxScoreURL != "https://web.gc.com/teams/HPJ0j14/TEAM-A/games/game-1" {
		t.Errorf("first game URL = %s", first.BoxScoreURL)
	}
	if first.HomeOrAway != "HOME" {
		t.Errorf("first game side = %q, expected HOME", first.HomeOrAway)
	}
	if !first.Played() || *first.OurScore != 10 || *first.OppScore != 4 {
		t.Errorf("first game score = %+v, expected W 10-4", first)
	}

	second := games[1]
	if second.HomeOrAway != "AWAY" {
		t.Errorf("second game side = %q, expected AWAY", second.HomeOrAway)
	}
	if !second.Played() || *second.OurScore != 2 || *second.OppScore != 8 {
		t.Errorf("second game score = %+v, expected L 2-8", second)
	}

	// No "vs."/"@" prefix: side unknown, score still parsed.
	third := games[2]
	if third.HomeOrAway != "" {
		t.Errorf("third game side = %q, expected unknown", third.HomeOrAway)
	}
	if !third.Played() {
		t.Error("third game should carry a final score")
	}
	// Absolute href stays untouched.
	if third.BoxScoreURL != "https://web.gc.com/teams/HPJ0j14/TEAM-A/games/game-3" {
		t.Errorf("third game URL = %s", third.BoxScoreURL)
	}

	// Upcoming game from the second month section.
	fourth := games[3]
	if got := fourth.GameDate.Format("2006-01-02"); got != "2026-07-04" {
		t.Errorf("fourth game date = %s, expected 2026-07-04", got)
	}
	if fourth.Played() {
		t.Error("fourth game has a start time, not a score; should not be played")
	}
}

func TestParseSchedulePageEmpty(t *testing.T) {
	doc, err := ParseHTML("<html><body><div>nothing here</div></body></html>")
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	games := ParseSchedulePage(doc, "TEAM-A")
	if len(games) != 0 {
		t.Errorf("expected empty schedule, got %d games", len(games))
	}
}

func TestParseTeamName(t *testing.T) {
	doc, err := ParseHTML(loadFixture(t, "schedule.html"))
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	if got := ParseTeamName(doc); got != "Aces 12U" {
		t.Errorf("ParseTeamName = %q, expected %q", got, "Aces 12U")
	}
}

func TestResultPattern(t *testing.T) {
	tests := []struct {
		text   string
		played bool
	}{
		{"W 10-4", true},
		{"L 2-8", true},
		{"5:30 PM", false},
		{"Final", false},
		{"", false},
		{"W 10", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := resultRe.MatchString(tt.text); got != tt.played {
				t.Errorf("resultRe.MatchString(%q) = %v, expected %v", tt.text, got, tt.played)
			}
		})
	}
}
