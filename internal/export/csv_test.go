package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kraytos1/aces-analytics/internal/service"
)

func sampleBoard() []service.TeamSeasonSummary {
	return []service.TeamSeasonSummary{
		{TeamName: "Aces 12U", Pool: "A", Games: 5, Wins: 4, Losses: 1, RunsScored: 42, RunsAgainst: 18, WinPct: 0.8, RunDiff: 24},
		{TeamName: "Thunder 12U", Pool: "B", Games: 5, Wins: 2, Losses: 3, RunsScored: 25, RunsAgainst: 31, WinPct: 0.4, RunDiff: -6},
	}
}

func TestWriteBoard(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBoard(&buf, sampleBoard()); err != nil {
		t.Fatalf("WriteBoard failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}

	if lines[0] != "Team,Pool,G,W,L,RS,RA" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Aces 12U,A,5,4,1,42,18" {
		t.Errorf("first row = %q", lines[1])
	}
	if lines[2] != "Thunder 12U,B,5,2,3,25,31" {
		t.Errorf("second row = %q", lines[2])
	}
}

func TestBoardRoundTrip(t *testing.T) {
	original := sampleBoard()

	var buf bytes.Buffer
	if err := WriteBoard(&buf, original); err != nil {
		t.Fatalf("WriteBoard failed: %v", err)
	}

	parsed, err := ReadBoard(&buf)
	if err != nil {
		t.Fatalf("ReadBoard failed: %v", err)
	}

	if len(parsed) != len(original) {
		t.Fatalf("round trip lost rows: %d vs %d", len(parsed), len(original))
	}

	for i := range original {
		want, got := original[i], parsed[i]
		if got.TeamName != want.TeamName || got.Pool != want.Pool ||
			got.Games != want.Games || got.Wins != want.Wins || got.Losses != want.Losses ||
			got.RunsScored != want.RunsScored || got.RunsAgainst != want.RunsAgainst {
			t.Errorf("row %d mismatch: %+v vs %+v", i, got, want)
		}
		if got.RunDiff != want.RunDiff || got.WinPct != want.WinPct {
			t.Errorf("row %d derived fields mismatch: %+v vs %+v", i, got, want)
		}
	}
}

func TestReadBoardRejectsBadHeader(t *testing.T) {
	if _, err := ReadBoard(strings.NewReader("A,B,C\n1,2,3\n")); err == nil {
		t.Error("expected error for wrong header")
	}
	if _, err := ReadBoard(strings.NewReader("Team,Pool,G,W,L,RS,RA\nAces,A,x,0,0,0,0\n")); err == nil {
		t.Error("expected error for non-integer count")
	}
}

func TestWriteBoardEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBoard(&buf, nil); err != nil {
		t.Fatalf("WriteBoard failed: %v", err)
	}

	if strings.TrimSpace(buf.String()) != "Team,Pool,G,W,L,RS,RA" {
		t.Errorf("empty board should still write the header: %q", buf.String())
	}
}
