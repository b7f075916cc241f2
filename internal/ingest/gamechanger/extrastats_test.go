package gamechanger

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/kraytos1/aces-analytics/internal/store"
)

func parseTestDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := ParseHTML(html)
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}
	return doc
}

func TestMergeBattingExtrasAccumulates(t *testing.T) {
	doc := parseTestDoc(t, `<div>
		<div class="grid"></div>
		<div class="BoxScoreComponents__boxScoreExtraStats-x">
			<div>
				<span class="Text__semibold">2B:</span>
				<span class="BoxScoreComponents__extraPlayerStat">John Smith 2,</span>
			</div>
			<div>
				<span class="Text__semibold">2B:</span>
				<span class="BoxScoreComponents__extraPlayerStat">John Smith</span>
			</div>
			<div>
				<span class="Text__semibold">HBP:</span>
				<span class="BoxScoreComponents__extraPlayerStat">John Smith</span>
			</div>
		</div>
	</div>`)

	lines := []*store.BattingLine{
		{PlayerName: "John Smith"},
		{PlayerName: "John Smith"},
	}

	container := doc.Find("div.grid").First()
	warnings := MergeBattingExtras(container, lines)

	if warnings != 0 {
		t.Errorf("expected 0 warnings, got %d", warnings)
	}

	// Repeated labels accumulate, and both same-name rows get credit.
	// Unmapped labels (HBP) are ignored without warning.
	for i, line := range lines {
		if line.Doubles != 3 {
			t.Errorf("line %d Doubles = %d, expected 3", i, line.Doubles)
		}
	}
}

func TestMergePitchingExtrasBadComposite(t *testing.T) {
	doc := parseTestDoc(t, `<div>
		<div class="grid"></div>
		<div class="BoxScoreComponents__boxScoreExtraStatsPitchingExtra-x">
			<div>
				<span class="Text__semibold">Pitches-Strikes:</span>
				<span class="BoxScoreComponents__extraPlayerStat">Raiden Sheets 62</span>
			</div>
		</div>
	</div>`)

	lines := []*store.PitchingLine{{PitcherName: "Raiden Sheets"}}

	container := doc.Find("div.grid").First()
	warnings := MergePitchingExtras(container, lines)

	if warnings != 1 {
		t.Errorf("expected 1 warning for malformed composite, got %d", warnings)
	}

	// On pattern failure the values stay unknown, never zero.
	if lines[0].PitchesThrown.Valid || lines[0].StrikesThrown.Valid {
		t.Errorf("composite stats should stay null: %+v", lines[0])
	}
}

func TestMergeExtrasNoPanel(t *testing.T) {
	doc := parseTestDoc(t, `<div><div class="grid"></div><div class="other"></div></div>`)

	lines := []*store.BattingLine{{PlayerName: "John Smith"}}
	container := doc.Find("div.grid").First()

	if warnings := MergeBattingExtras(container, lines); warnings != 0 {
		t.Errorf("expected 0 warnings without a panel, got %d", warnings)
	}
	if lines[0].Doubles != 0 {
		t.Errorf("no panel should leave stats untouched: %+v", lines[0])
	}
}
