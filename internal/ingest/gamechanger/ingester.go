package gamechanger

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kraytos1/aces-analytics/internal/store"
	"github.com/kraytos1/aces-analytics/internal/store/repository"
)

// Fetcher retrieves rendered page HTML. Satisfied by Client; tests substitute
// a fixture-backed stub.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ProgressEvent is emitted as an ingest run moves through its stages, so
// long-running scrapes can be watched live.
type ProgressEvent struct {
	Stage        string    `json:"stage"` // schedule, game, done, error
	SourceTeamID string    `json:"source_team_id"`
	GameID       string    `json:"game_id,omitempty"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
}

// ProgressSink receives progress events. Implementations must not block the
// ingest loop.
type ProgressSink interface {
	Publish(ctx context.Context, event ProgressEvent)
}

// MultiSink fans each progress event out to several sinks.
type MultiSink []ProgressSink

func (m MultiSink) Publish(ctx context.Context, event ProgressEvent) {
	for _, sink := range m {
		sink.Publish(ctx, event)
	}
}

// Ingester drives the scrape pipeline for one schedule page: fetch the
// schedule, then fetch and extract every linked box score, persisting as it
// goes. Failures below the schedule level are per-game: a bad box-score page
// is logged and skipped while the rest of the run continues.
type Ingester struct {
	fetcher  Fetcher
	games    *repository.GameRepository
	batting  *repository.BattingRepository
	pitching *repository.PitchingRepository
	teams    *repository.TeamRepository
	progress ProgressSink
}

// NewIngester creates an ingester. progress may be nil.
func NewIngester(
	fetcher Fetcher,
	games *repository.GameRepository,
	batting *repository.BattingRepository,
	pitching *repository.PitchingRepository,
	teams *repository.TeamRepository,
	progress ProgressSink,
) *Ingester {
	return &Ingester{
		fetcher:  fetcher,
		games:    games,
		batting:  batting,
		pitching: pitching,
		teams:    teams,
		progress: progress,
	}
}

// TeamIDFromScheduleURL pulls the team id out of a schedule URL of the form
// .../teams/<org>/<team_id>/schedule.
func TeamIDFromScheduleURL(scheduleURL string) (string, error) {
	parts := strings.Split(strings.Trim(scheduleURL, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-1] != "schedule" {
		return "", fmt.Errorf("not a schedule URL: %s", scheduleURL)
	}
	teamID := parts[len(parts)-2]
	if teamID == "" {
		return "", fmt.Errorf("empty team id in schedule URL: %s", scheduleURL)
	}
	return teamID, nil
}

// Run ingests one team's schedule page and every linked box score. The
// returned report is non-nil whenever the schedule itself was reachable;
// only a failure to fetch or parse the schedule page is fatal.
func (i *Ingester) Run(ctx context.Context, scheduleURL string) (*RunReport, error) {
	teamID, err := TeamIDFromScheduleURL(scheduleURL)
	if err != nil {
		return nil, err
	}

	report := &RunReport{SourceTeamID: teamID}
	i.publish(ctx, ProgressEvent{Stage: "schedule", SourceTeamID: teamID,
		Message: "fetching schedule"})

	html, err := i.fetcher.Fetch(ctx, scheduleURL)
	if err != nil {
		i.publish(ctx, ProgressEvent{Stage: "error", SourceTeamID: teamID,
			Message: err.Error()})
		return nil, fmt.Errorf("fetching schedule for %s: %w", teamID, err)
	}

	doc, err := ParseHTML(html)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule for %s: %w", teamID, err)
	}

	i.recordTeamName(ctx, teamID, doc)

	scheduled := ParseSchedulePage(doc, teamID)
	report.GamesFound = len(scheduled)

	for _, sg := range scheduled {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		if sg.BoxScoreURL == "" {
			continue
		}
		i.ingestGame(ctx, sg, teamID, report)
	}

	i.publish(ctx, ProgressEvent{Stage: "done", SourceTeamID: teamID,
		Message: report.String()})
	log.Printf("[INFO] Ingest complete: %s", report)
	return report, nil
}

// ingestGame persists one game and its box score. Every failure in here is
// per-game: log, count the warning, move on.
func (i *Ingester) ingestGame(ctx context.Context, sg ScheduleGame, teamID string, report *RunReport) {
	game := AssembleGame(sg, teamID)

	if err := i.games.Upsert(ctx, game); err != nil {
		log.Printf("[WARN] Failed to upsert game %s: %v", game.GameID, err)
		report.Warnings++
		return
	}

	i.publish(ctx, ProgressEvent{Stage: "game", SourceTeamID: teamID,
		GameID: game.GameID, Message: "fetching box score"})

	html, err := i.fetcher.Fetch(ctx, sg.BoxScoreURL)
	if err != nil {
		log.Printf("[WARN] Failed to fetch box score for %s: %v", game.GameID, err)
		report.Warnings++
		return
	}

	doc, err := ParseHTML(html)
	if err != nil {
		log.Printf("[WARN] Failed to parse box score HTML for %s: %v", game.GameID, err)
		report.Warnings++
		return
	}

	box := ParseBoxScore(doc, game.HomeTeamID, game.AwayTeamID, game.GameID)
	report.Warnings += box.Warnings

	batting, pitching := box.Rows()
	report.BattingRows += batting
	report.PitchingRows += pitching

	for _, line := range append(box.AwayBatting, box.HomeBatting...) {
		line.IsSourceTeam = line.TeamID == teamID
		if err := i.batting.Insert(ctx, line); err != nil {
			log.Printf("[WARN] Batting insert failed for %s in %s: %v", line.PlayerName, game.GameID, err)
			report.Warnings++
			continue
		}
		report.RowsInserted++
	}

	for _, line := range append(box.AwayPitching, box.HomePitching...) {
		line.IsSourceTeam = line.TeamID == teamID
		if err := i.pitching.Insert(ctx, line); err != nil {
			log.Printf("[WARN] Pitching insert failed for %s in %s: %v", line.PitcherName, game.GameID, err)
			report.Warnings++
			continue
		}
		report.RowsInserted++
	}

	report.GamesIngested++
}

// recordTeamName stores the display name shown on the schedule page so
// leaderboards can label the team properly.
func (i *Ingester) recordTeamName(ctx context.Context, teamID string, doc *goquery.Document) {
	name := ParseTeamName(doc)
	if name == "" {
		return
	}
	team := &store.Team{TeamID: teamID, TeamName: name}
	if err := i.teams.Upsert(ctx, team); err != nil {
		log.Printf("[WARN] Failed to record team name for %s: %v", teamID, err)
	}
}

func (i *Ingester) publish(ctx context.Context, event ProgressEvent) {
	if i.progress == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	i.progress.Publish(ctx, event)
}
