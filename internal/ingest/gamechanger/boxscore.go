package gamechanger

import (
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kraytos1/aces-analytics/internal/store"
)

// AG-Grid cell positions in the box-score tables. Batting and pitching grids
// share the same generic structure; only the meaning of the columns differs.
const (
	colName         = 1
	gridRowSelector = "div.ag-root-wrapper-body div.ag-center-cols-container div[role='row']"
)

// BoxScore holds the four row collections extracted from one box-score page.
// Warnings counts every skipped row and unmatched extra-stat token.
type BoxScore struct {
	AwayBatting  []*store.BattingLine
	HomeBatting  []*store.BattingLine
	AwayPitching []*store.PitchingLine
	HomePitching []*store.PitchingLine
	Warnings     int
}

// Rows returns batting plus pitching row counts.
func (b *BoxScore) Rows() (batting, pitching int) {
	return len(b.AwayBatting) + len(b.HomeBatting), len(b.AwayPitching) + len(b.HomePitching)
}

// ParseBoxScore extracts every batting and pitching line from a box-score
// page, one collection per team side, with the extra-stats panels already
// merged in. A malformed individual row is skipped with a warning and never
// aborts the rest of the page.
func ParseBoxScore(doc *goquery.Document, homeTeamID, awayTeamID, gameID string) *BoxScore {
	awayName := NormalizeText(doc.Find("div.BoxScore__teamName.BoxScore__awayTeamName").First().Text())
	homeName := NormalizeText(doc.Find("div.BoxScore__teamName.BoxScore__homeTeamName").First().Text())

	box := &BoxScore{}

	if c := doc.Find("div.BoxScore__awayLineup").First(); c.Length() > 0 {
		box.AwayBatting = extractBatting(c, box, gameID, awayTeamID, awayName, homeName, store.SideAway)
	}
	if c := doc.Find("div.BoxScore__homeLineup").First(); c.Length() > 0 {
		box.HomeBatting = extractBatting(c, box, gameID, homeTeamID, homeName, awayName, store.SideHome)
	}
	if c := doc.Find("div.BoxScore__awayPitching").First(); c.Length() > 0 {
		box.AwayPitching = extractPitching(c, box, gameID, awayTeamID, awayName, homeName, store.SideAway)
	}
	if c := doc.Find("div.BoxScore__homePitching").First(); c.Length() > 0 {
		box.HomePitching = extractPitching(c, box, gameID, homeTeamID, homeName, awayName, store.SideHome)
	}

	batting, pitching := box.Rows()
	log.Printf("[INFO] Game %s: extracted %d batting, %d pitching rows", gameID, batting, pitching)
	return box
}

// extractBatting walks one side's lineup grid. Column order:
// Player | AB | R | H | RBI | BB | SO, with 2B/3B/HR/SB/TB supplied by the
// extra-stats panel below the grid.
func extractBatting(container *goquery.Selection, box *BoxScore, gameID, teamID, teamName, opponent, side string) []*store.BattingLine {
	lines := make([]*store.BattingLine, 0)

	container.Find(gridRowSelector).Each(func(_ int, row *goquery.Selection) {
		name, position, ok := playerCell(row)
		if !ok {
			return
		}
		if name == "" {
			log.Printf("[WARN] Batting row without player name in game %s; skipping", gameID)
			box.Warnings++
			return
		}

		cells, err := numericCells(row, 2, 7)
		if err != nil {
			log.Printf("[WARN] Malformed batting row for %q in game %s: %v", name, gameID, err)
			box.Warnings++
			return
		}

		lines = append(lines, &store.BattingLine{
			GameID:     gameID,
			TeamID:     teamID,
			TeamName:   teamName,
			HomeOrAway: side,
			Opponent:   opponent,
			PlayerName: name,
			Position:   position,
			AB:         cells[0],
			R:          cells[1],
			H:          cells[2],
			RBI:        cells[3],
			BB:         cells[4],
			SO:         cells[5],
		})
	})

	box.Warnings += MergeBattingExtras(container, lines)

	for _, line := range lines {
		line.TotalBases = deriveTotalBases(line)
	}

	return lines
}

// extractPitching walks one side's pitching grid. Column order:
// Pitcher | IP | H | R | ER | BB | SO. The IP cell keeps its fractional
// notation as text; a decimal point there is what marks a pitching row when
// the grids share a generic structure.
func extractPitching(container *goquery.Selection, box *BoxScore, gameID, teamID, teamName, opponent, side string) []*store.PitchingLine {
	lines := make([]*store.PitchingLine, 0)

	container.Find(gridRowSelector).Each(func(_ int, row *goquery.Selection) {
		name, _, ok := playerCell(row)
		if !ok {
			return
		}
		if name == "" {
			log.Printf("[WARN] Pitching row without pitcher name in game %s; skipping", gameID)
			box.Warnings++
			return
		}

		ip, ok := cellText(row, 2)
		if !ok || !strings.Contains(ip, ".") {
			// Not a pitching line (summary or batting spillover).
			return
		}

		cells, err := numericCells(row, 3, 7)
		if err != nil {
			log.Printf("[WARN] Malformed pitching row for %q in game %s: %v", name, gameID, err)
			box.Warnings++
			return
		}

		lines = append(lines, &store.PitchingLine{
			GameID:      gameID,
			TeamID:      teamID,
			TeamName:    teamName,
			HomeOrAway:  side,
			Opponent:    opponent,
			PitcherName: name,
			IP:          ip,
			HAllowed:    cells[0],
			RAllowed:    cells[1],
			ERAllowed:   cells[2],
			BBAllowed:   cells[3],
			Strikeouts:  cells[4],
		})
	})

	box.Warnings += MergePitchingExtras(container, lines)

	return lines
}

// playerCell reads the first grid cell: player name span plus the optional
// "(POS)" info span. ok is false when the row has no first cell at all
// (spacer rows, header rows).
func playerCell(row *goquery.Selection) (name, position string, ok bool) {
	first := row.Find(fmt.Sprintf("div[aria-colindex='%d']", colName)).First()
	if first.Length() == 0 {
		return "", "", false
	}

	name = NormalizeText(first.Find("span.BoxScoreComponents__playerName").First().Text())
	position = strings.Trim(NormalizeText(first.Find("span.BoxScoreComponents__playerInfo").First().Text()), "()")
	return name, position, true
}

// numericCells reads cells [from..to] as ints through ToInt. A missing cell
// makes the whole row malformed.
func numericCells(row *goquery.Selection, from, to int) ([]int, error) {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		text, ok := cellText(row, i)
		if !ok {
			return nil, fmt.Errorf("missing cell at column %d", i)
		}
		out = append(out, ToInt(text))
	}
	return out, nil
}

func cellText(row *goquery.Selection, idx int) (string, bool) {
	cell := row.Find(fmt.Sprintf("div[aria-colindex='%d']", idx)).First()
	if cell.Length() == 0 {
		return "", false
	}
	return NormalizeText(cell.Text()), true
}

// deriveTotalBases fills TB when the extra-stats panel didn't provide one:
// singles = H - (2B+3B+HR), clamped at zero against bad source data.
func deriveTotalBases(line *store.BattingLine) int {
	if line.TotalBases > 0 {
		return line.TotalBases
	}
	singles := line.H - (line.Doubles + line.Triples + line.HomeRuns)
	if singles < 0 {
		singles = 0
	}
	return singles + 2*line.Doubles + 3*line.Triples + 4*line.HomeRuns
}
