package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/kraytos1/aces-analytics/internal/roster"
	"github.com/kraytos1/aces-analytics/internal/store"
	"github.com/kraytos1/aces-analytics/internal/store/repository"
)

// TeamSeasonSummary is one team's season record as seen from its own scraped
// schedule. Ties count toward games played but neither wins nor losses.
type TeamSeasonSummary struct {
	TeamID      string  `json:"team_id"`
	TeamName    string  `json:"team_name"`
	Pool        string  `json:"pool,omitempty"`
	Games       int     `json:"games"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	RunsScored  int     `json:"runs_scored"`
	RunsAgainst int     `json:"runs_against"`
	WinPct      float64 `json:"win_pct"`
	RunDiff     int     `json:"run_diff"`
}

// TeamService aggregates game results into season records and tournament
// standings.
type TeamService struct {
	gameRepo *repository.GameRepository
	teamRepo *repository.TeamRepository
}

// NewTeamService creates a new team service
func NewTeamService(db *store.Database) *TeamService {
	return &TeamService{
		gameRepo: repository.NewGameRepository(db),
		teamRepo: repository.NewTeamRepository(db),
	}
}

// GetSeasonSummary computes one team's record from its stored games.
func (s *TeamService) GetSeasonSummary(ctx context.Context, teamID string) (*TeamSeasonSummary, error) {
	games, err := s.gameRepo.GetBySourceTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching games for %s: %w", teamID, err)
	}

	summary := SummarizeSeason(teamID, games)

	name, err := s.teamRepo.ResolveName(ctx, teamID, "")
	if err != nil {
		return nil, err
	}
	summary.TeamName = name

	return &summary, nil
}

// GetGames returns the stored schedule and results for one team.
func (s *TeamService) GetGames(ctx context.Context, teamID string) ([]*store.Game, error) {
	return s.gameRepo.GetBySourceTeam(ctx, teamID)
}

// TournamentBoard builds the leaderboard for a configured roster: one season
// summary per roster entry, labeled from the roster (falling back to the
// scraped name), in leaderboard order.
func (s *TeamService) TournamentBoard(ctx context.Context, teams []roster.TournamentTeam) ([]TeamSeasonSummary, error) {
	board := make([]TeamSeasonSummary, 0, len(teams))

	for _, entry := range teams {
		games, err := s.gameRepo.GetBySourceTeam(ctx, entry.TeamID)
		if err != nil {
			return nil, fmt.Errorf("fetching games for %s: %w", entry.TeamID, err)
		}

		summary := SummarizeSeason(entry.TeamID, games)
		summary.Pool = entry.Pool

		name, err := s.teamRepo.ResolveName(ctx, entry.TeamID, entry.Label)
		if err != nil {
			return nil, err
		}
		summary.TeamName = name

		board = append(board, summary)
	}

	SortLeaderboard(board)
	return board, nil
}

// SummarizeSeason folds a team's games into its season record. Only final
// games with both scores present count; the team takes whichever side its id
// appears on.
func SummarizeSeason(teamID string, games []*store.Game) TeamSeasonSummary {
	summary := TeamSeasonSummary{TeamID: teamID}

	for _, game := range games {
		if game.Status != store.StatusFinal || !game.HomeScore.Valid || !game.AwayScore.Valid {
			continue
		}

		var scored, against int
		switch teamID {
		case game.HomeTeamID:
			scored, against = int(game.HomeScore.Int32), int(game.AwayScore.Int32)
		case game.AwayTeamID:
			scored, against = int(game.AwayScore.Int32), int(game.HomeScore.Int32)
		default:
			continue
		}

		summary.Games++
		summary.RunsScored += scored
		summary.RunsAgainst += against
		if scored > against {
			summary.Wins++
		} else if scored < against {
			summary.Losses++
		}
	}

	summary.RunDiff = summary.RunsScored - summary.RunsAgainst
	if summary.Games > 0 {
		summary.WinPct = float64(summary.Wins) / float64(summary.Games)
	}

	return summary
}

// SortLeaderboard orders summaries by win percentage, then run differential,
// then runs scored, all descending. Equal teams keep their roster order.
func SortLeaderboard(board []TeamSeasonSummary) {
	sort.SliceStable(board, func(i, j int) bool {
		a, b := board[i], board[j]
		if a.WinPct != b.WinPct {
			return a.WinPct > b.WinPct
		}
		if a.RunDiff != b.RunDiff {
			return a.RunDiff > b.RunDiff
		}
		return a.RunsScored > b.RunsScored
	})
}
