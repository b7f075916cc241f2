package gamechanger

import (
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const scheduleBaseURL = "https://web.gc.com"

var resultRe = regexp.MustCompile(`^([WL])\s+(\d+)-(\d+)$`)

// ParseSchedulePage extracts the game list from a team schedule page, in the
// order the page renders it. The page groups day rows under month headers;
// each event anchor inside a day row is one game. Entries whose date cannot
// be assembled are skipped with a warning, never fatally. An empty schedule
// is a valid result.
func ParseSchedulePage(doc *goquery.Document, teamID string) []ScheduleGame {
	games := make([]ScheduleGame, 0)

	doc.Find("div.ScheduleSection__stickyItem").Each(func(_ int, header *goquery.Selection) {
		monthText := NormalizeText(header.Find("span.ScheduleSection__sectionTitle").Text())
		if monthText == "" {
			return
		}

		month, err := time.Parse("January 2006", monthText)
		if err != nil {
			log.Printf("[WARN] Unparseable month header %q; skipping section", monthText)
			return
		}

		section := header.NextAllFiltered("div.ScheduleListByMonth__eventMonth").First()
		if section.Length() == 0 {
			return
		}

		section.Find("div.ScheduleListByMonth__dayRow").Each(func(_ int, dayRow *goquery.Selection) {
			dayText := NormalizeText(dayRow.Find("div.ScheduleListByMonth__dateText").First().Text())
			day, err := strconv.Atoi(dayText)
			if err != nil {
				return
			}

			date := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)
			if date.Day() != day || date.Month() != month.Month() {
				log.Printf("[WARN] Invalid date %q in %q; skipping day row", dayText, monthText)
				return
			}

			dayRow.Find("a.ScheduleListByMonth__event").Each(func(_ int, link *goquery.Selection) {
				game, ok := parseEventLink(link, date)
				if ok {
					games = append(games, game)
				}
			})
		})
	})

	log.Printf("[INFO] Parsed %d games for team %s", len(games), teamID)
	return games
}

// parseEventLink reads one schedule event anchor: box-score URL from the
// href, home/away from the title prefix, scores from the result text.
func parseEventLink(link *goquery.Selection, date time.Time) (ScheduleGame, bool) {
	href, _ := link.Attr("href")
	if href == "" {
		return ScheduleGame{}, false
	}
	if strings.HasPrefix(href, "/") {
		href = scheduleBaseURL + href
	}

	title := NormalizeText(link.Find(".ScheduleListByMonth__title .Text__semibold").First().Text())

	side := ""
	switch {
	case strings.HasPrefix(strings.ToLower(title), "vs."):
		side = "HOME"
	case strings.HasPrefix(title, "@"):
		side = "AWAY"
	}

	game := ScheduleGame{
		GameDate:    date,
		BoxScoreURL: href,
		HomeOrAway:  side,
	}

	// "W 13-2" / "L 4-8" carry the final score from the scraped team's point
	// of view; anything else ("12:00 PM", "Final", "") means not yet played.
	scoreText := NormalizeText(link.Find("span.ScheduleListByMonth__scoreOrTimeText").First().Text())
	if m := resultRe.FindStringSubmatch(scoreText); m != nil {
		ours, _ := strconv.Atoi(m[2])
		theirs, _ := strconv.Atoi(m[3])
		game.OurScore = &ours
		game.OppScore = &theirs
	}

	return game, true
}

// ParseTeamName reads the team display name from the schedule page's nav bar.
// Empty when the header is missing.
func ParseTeamName(doc *goquery.Document) string {
	return NormalizeText(doc.Find(".NewTeamNavBar__teamName").First().Text())
}
