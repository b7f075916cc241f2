package gamechanger

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kraytos1/aces-analytics/internal/reconciliation"
	"github.com/kraytos1/aces-analytics/internal/store"
)

// The extra-stats panel under each grid lists stats that don't get their own
// column, one line per category:
//
//	2B: Brody Pegelow, Mason Maloney
//	HR: Raiden Sheets
//	SB: Declan Soares 4, Ayden Jester
//	Pitches-Strikes: Raiden Sheets 62-41
//
// A token without a trailing number means the stat occurred once.
var (
	battingTokenRe  = regexp.MustCompile(`^(.+?)(?:\s+(\d+))?$`)
	pitchingTokenRe = regexp.MustCompile(`^(.+?)\s+([0-9\-]+)$`)
	pitchStrikeRe   = regexp.MustCompile(`(\d+)-(\d+)`)
)

// MergeBattingExtras folds the batting extra-stats panel into the already
// extracted lines. Counts accumulate onto every row whose cleaned name
// matches the token, so duplicate names on a roster each get credit.
// Returns the number of warnings raised.
func MergeBattingExtras(container *goquery.Selection, lines []*store.BattingLine) int {
	if len(lines) == 0 {
		return 0
	}

	panel := findExtrasPanel(container, false)
	if panel == nil {
		return 0
	}

	names := make([]string, len(lines))
	for i, line := range lines {
		names[i] = line.PlayerName
	}
	matcher := reconciliation.NewNameMatcher(names, CleanPlayerName)

	warnings := 0
	eachStatLine(panel, func(label string, tokens []string) {
		var apply func(line *store.BattingLine, n int)
		switch label {
		case "2B":
			apply = func(l *store.BattingLine, n int) { l.Doubles += n }
		case "3B":
			apply = func(l *store.BattingLine, n int) { l.Triples += n }
		case "HR":
			apply = func(l *store.BattingLine, n int) { l.HomeRuns += n }
		case "SB":
			apply = func(l *store.BattingLine, n int) { l.StolenBases += n }
		case "TB":
			apply = func(l *store.BattingLine, n int) { l.TotalBases += n }
		default:
			// HBP, SF, CS, E and friends have no column yet.
			return
		}

		for _, tok := range tokens {
			m := battingTokenRe.FindStringSubmatch(tok)
			if m == nil {
				continue
			}
			name := strings.TrimSpace(m[1])
			count := 1
			if m[2] != "" {
				count = ToInt(m[2])
			}

			rows := matcher.Resolve(name, CleanPlayerName)
			if rows == nil {
				log.Printf("[WARN] No batting match for extra-stat name %q (candidates: %v)", name, matcher.Names())
				warnings++
				continue
			}
			for _, idx := range rows {
				apply(lines[idx], count)
			}
		}
	})

	return warnings
}

// MergePitchingExtras folds the pitching extra-stats panel into the extracted
// lines. "Pitches-Strikes" is the composite "<pitches>-<strikes>" field; when
// its pattern fails both values stay null — unknown, not zero.
func MergePitchingExtras(container *goquery.Selection, lines []*store.PitchingLine) int {
	if len(lines) == 0 {
		return 0
	}

	panel := findExtrasPanel(container, true)
	if panel == nil {
		return 0
	}

	names := make([]string, len(lines))
	for i, line := range lines {
		names[i] = line.PitcherName
	}
	matcher := reconciliation.NewNameMatcher(names, CleanPlayerName)

	warnings := 0
	eachStatLine(panel, func(label string, tokens []string) {
		if label != "Pitches-Strikes" && label != "Batters Faced" && label != "BF" {
			return
		}

		for _, tok := range tokens {
			m := pitchingTokenRe.FindStringSubmatch(tok)
			if m == nil {
				log.Printf("[WARN] Unparseable pitching extra-stat token %q under %q", tok, label)
				warnings++
				continue
			}
			name, value := strings.TrimSpace(m[1]), m[2]

			rows := matcher.Resolve(name, CleanPlayerName)
			if rows == nil {
				log.Printf("[WARN] No pitching match for extra-stat name %q (candidates: %v)", name, matcher.Names())
				warnings++
				continue
			}

			switch label {
			case "Pitches-Strikes":
				ps := pitchStrikeRe.FindStringSubmatch(value)
				if ps == nil {
					log.Printf("[WARN] Unparseable pitches-strikes value %q for %q", value, name)
					warnings++
					continue
				}
				pitches, _ := strconv.Atoi(ps[1])
				strikes, _ := strconv.Atoi(ps[2])
				for _, idx := range rows {
					lines[idx].PitchesThrown = nullInt32(pitches)
					lines[idx].StrikesThrown = nullInt32(strikes)
				}
			default: // Batters Faced / BF
				bf, err := strconv.Atoi(value)
				if err != nil {
					log.Printf("[WARN] Unparseable batters-faced value %q for %q", value, name)
					warnings++
					continue
				}
				for _, idx := range rows {
					lines[idx].BattersFaced = nullInt32(bf)
				}
			}
		}
	})

	return warnings
}

// findExtrasPanel locates the extra-stats block that follows a side's grid
// container. The pitching panel is distinguished by a "PitchingExtra" class
// fragment; the batting panel lacks it.
func findExtrasPanel(container *goquery.Selection, pitching bool) *goquery.Selection {
	var panel *goquery.Selection

	container.NextAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
		class, _ := sib.Attr("class")
		if !strings.Contains(class, "BoxScoreComponents__boxScoreExtraStats") {
			return true
		}
		if pitching != strings.Contains(class, "PitchingExtra") {
			return true
		}
		panel = sib
		return false
	})

	return panel
}

// eachStatLine iterates a panel's stat lines: the bold span is the category
// label ("2B:", "HR:"), the remaining spans are player tokens with trailing
// commas stripped.
func eachStatLine(panel *goquery.Selection, fn func(label string, tokens []string)) {
	panel.ChildrenFiltered("div").Each(func(_ int, lineDiv *goquery.Selection) {
		label := NormalizeText(lineDiv.Find("span.Text__semibold").First().Text())
		if label == "" {
			return
		}
		label = strings.TrimSuffix(label, ":")

		tokens := make([]string, 0)
		lineDiv.Find("span.BoxScoreComponents__extraPlayerStat").Each(func(_ int, span *goquery.Selection) {
			tok := strings.TrimSuffix(NormalizeText(span.Text()), ",")
			if tok != "" {
				tokens = append(tokens, tok)
			}
		})

		if len(tokens) > 0 {
			fn(label, tokens)
		}
	})
}
