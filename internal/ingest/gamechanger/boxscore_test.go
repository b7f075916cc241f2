package gamechanger

import (
	"testing"

	"github.com/kraytos1/aces-analytics/internal/store"
)

func TestParseBoxScore(t *testing.T) {
	doc, err := ParseHTML(loadFixture(t, "boxscore.html"))
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	box := ParseBoxScore(doc, "TEAM-A", "OPP-TEAM-A", "2026-06-14_TEAM-A_vs_OPP-TEAM-A")

	// The malformed away batting row and the unmatched SB token.
	if box.Warnings != 2 {
		t.Errorf("expected 2 warnings, got %d", box.Warnings)
	}

	if len(box.AwayBatting) != 2 {
		t.Fatalf("expected 2 away batting lines, got %d", len(box.AwayBatting))
	}
	if len(box.HomeBatting) != 1 {
		t.Fatalf("expected 1 home batting line, got %d", len(box.HomeBatting))
	}

	smith := box.AwayBatting[0]
	if smith.PlayerName != "John Smith" || smith.Position != "SS" {
		t.Errorf("unexpected first away batter: %+v", smith)
	}
	if smith.TeamName != "Thunder 12U" || smith.Opponent != "Aces 12U" {
		t.Errorf("team/opponent wrong: %q vs %q", smith.TeamName, smith.Opponent)
	}
	if smith.HomeOrAway != store.SideAway {
		t.Errorf("side = %q, expected AWAY", smith.HomeOrAway)
	}
	if smith.AB != 3 || smith.R != 2 || smith.H != 2 || smith.RBI != 1 || smith.BB != 1 || smith.SO != 0 {
		t.Errorf("counting stats wrong: %+v", smith)
	}

	// Extras: "Jon Smith" fuzzy-resolves to John Smith, "John Smith 2" is SB=2.
	if smith.Doubles != 1 {
		t.Errorf("Doubles = %d, expected 1 (fuzzy-matched panel entry)", smith.Doubles)
	}
	if smith.StolenBases != 2 {
		t.Errorf("StolenBases = %d, expected 2", smith.StolenBases)
	}
	// Derived TB: 1 single + 1 double = 3.
	if smith.TotalBases != 3 {
		t.Errorf("TotalBases = %d, expected 3", smith.TotalBases)
	}

	maloney := box.AwayBatting[1]
	if maloney.HomeRuns != 1 {
		t.Errorf("Maloney HomeRuns = %d, expected 1", maloney.HomeRuns)
	}
	// 1 hit that was the HR: 0 singles, TB = 4.
	if maloney.TotalBases != 4 {
		t.Errorf("Maloney TotalBases = %d, expected 4", maloney.TotalBases)
	}

	// Panel-provided TB wins over derivation.
	soares := box.HomeBatting[0]
	if soares.TotalBases != 5 {
		t.Errorf("Soares TotalBases = %d, expected 5 from panel", soares.TotalBases)
	}
	if soares.TeamName != "Aces 12U" || soares.Opponent != "Thunder 12U" {
		t.Errorf("home team/opponent wrong: %q vs %q", soares.TeamName, soares.Opponent)
	}
}

func TestParseBoxScorePitching(t *testing.T) {
	doc, err := ParseHTML(loadFixture(t, "boxscore.html"))
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	box := ParseBoxScore(doc, "TEAM-A", "OPP-TEAM-A", "g1")

	// The "Totals" row has no decimal IP and is not a pitching line.
	if len(box.AwayPitching) != 1 {
		t.Fatalf("expected 1 away pitching line, got %d", len(box.AwayPitching))
	}
	if len(box.HomePitching) != 1 {
		t.Fatalf("expected 1 home pitching line, got %d", len(box.HomePitching))
	}

	sheets := box.AwayPitching[0]
	if sheets.PitcherName != "Raiden Sheets" {
		t.Errorf("pitcher name = %q", sheets.PitcherName)
	}
	if sheets.IP != "4.2" {
		t.Errorf("IP = %q, expected raw \"4.2\"", sheets.IP)
	}
	if sheets.HAllowed != 5 || sheets.RAllowed != 3 || sheets.ERAllowed != 2 ||
		sheets.BBAllowed != 1 || sheets.Strikeouts != 6 {
		t.Errorf("pitching counting stats wrong: %+v", sheets)
	}

	// Pitches-Strikes composite and BF from the pitching extras panel.
	if !sheets.PitchesThrown.Valid || sheets.PitchesThrown.Int32 != 62 {
		t.Errorf("PitchesThrown = %+v, expected 62", sheets.PitchesThrown)
	}
	if !sheets.StrikesThrown.Valid || sheets.StrikesThrown.Int32 != 41 {
		t.Errorf("StrikesThrown = %+v, expected 41", sheets.StrikesThrown)
	}
	if !sheets.BattersFaced.Valid || sheets.BattersFaced.Int32 != 21 {
		t.Errorf("BattersFaced = %+v, expected 21", sheets.BattersFaced)
	}

	// Home side has no pitching extras panel: composite stats stay null.
	jester := box.HomePitching[0]
	if jester.PitchesThrown.Valid || jester.StrikesThrown.Valid || jester.BattersFaced.Valid {
		t.Errorf("expected null composite stats without a panel: %+v", jester)
	}
}
