// Package export renders tournament standings as CSV for the threat-board
// upload flow.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kraytos1/aces-analytics/internal/service"
)

// Header is the exact column set the threat board expects.
var Header = []string{"Team", "Pool", "G", "W", "L", "RS", "RA"}

// WriteBoard writes a leaderboard as CSV, one row per team in the order
// given, integers rendered plainly.
func WriteBoard(w io.Writer, board []service.TeamSeasonSummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, team := range board {
		row := []string{
			team.TeamName,
			team.Pool,
			strconv.Itoa(team.Games),
			strconv.Itoa(team.Wins),
			strconv.Itoa(team.Losses),
			strconv.Itoa(team.RunsScored),
			strconv.Itoa(team.RunsAgainst),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", team.TeamName, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadBoard parses a board CSV written by WriteBoard back into summaries.
// Rate fields (win percentage, run differential) are rederived.
func ReadBoard(r io.Reader) ([]service.TeamSeasonSummary, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) != len(Header) {
		return nil, fmt.Errorf("unexpected CSV header: %v", header)
	}
	for i, col := range Header {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected CSV header: %v", header)
		}
	}

	board := make([]service.TeamSeasonSummary, 0)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		team := service.TeamSeasonSummary{TeamName: record[0], Pool: record[1]}
		ints := []*int{&team.Games, &team.Wins, &team.Losses, &team.RunsScored, &team.RunsAgainst}
		for i, dst := range ints {
			n, err := strconv.Atoi(record[i+2])
			if err != nil {
				return nil, fmt.Errorf("bad value %q in column %s: %w", record[i+2], Header[i+2], err)
			}
			*dst = n
		}

		team.RunDiff = team.RunsScored - team.RunsAgainst
		if team.Games > 0 {
			team.WinPct = float64(team.Wins) / float64(team.Games)
		}
		board = append(board, team)
	}

	return board, nil
}
