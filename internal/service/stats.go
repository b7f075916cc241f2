package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kraytos1/aces-analytics/internal/store"
	"github.com/kraytos1/aces-analytics/internal/store/repository"
)

// PlayerSeasonStats is one player's accumulated batting line with derived
// rate stats. Every rate with a zero denominator reports 0.0.
type PlayerSeasonStats struct {
	PlayerName  string  `json:"player_name"`
	Games       int     `json:"games"`
	AB          int     `json:"ab"`
	R           int     `json:"r"`
	H           int     `json:"h"`
	RBI         int     `json:"rbi"`
	BB          int     `json:"bb"`
	SO          int     `json:"so"`
	Doubles     int     `json:"doubles"`
	Triples     int     `json:"triples"`
	HomeRuns    int     `json:"home_runs"`
	StolenBases int     `json:"stolen_bases"`
	TotalBases  int     `json:"total_bases"`
	PA          int     `json:"pa"`
	AVG         float64 `json:"avg"`
	OBP         float64 `json:"obp"`
	SLG         float64 `json:"slg"`
	OPS         float64 `json:"ops"`
	ISO         float64 `json:"iso"`
}

// PitcherSeasonStats is one pitcher's accumulated line. Innings are summed in
// outs so fractional notation ("4.2" = 4 innings, 2 outs) adds correctly.
type PitcherSeasonStats struct {
	PitcherName string  `json:"pitcher_name"`
	Games       int     `json:"games"`
	IP          string  `json:"ip"`
	HAllowed    int     `json:"h_allowed"`
	RAllowed    int     `json:"r_allowed"`
	ERAllowed   int     `json:"er_allowed"`
	BBAllowed   int     `json:"bb_allowed"`
	Strikeouts  int     `json:"strikeouts"`
	ERA         float64 `json:"era"`
	WHIP        float64 `json:"whip"`
}

// StatsService aggregates per-game stat lines into player season totals.
type StatsService struct {
	battingRepo  *repository.BattingRepository
	pitchingRepo *repository.PitchingRepository
}

// NewStatsService creates a new stats service
func NewStatsService(db *store.Database) *StatsService {
	return &StatsService{
		battingRepo:  repository.NewBattingRepository(db),
		pitchingRepo: repository.NewPitchingRepository(db),
	}
}

// GetTeamHitting returns season batting totals for the team's own players,
// sorted by OPS descending.
func (s *StatsService) GetTeamHitting(ctx context.Context, teamID string) ([]PlayerSeasonStats, error) {
	lines, err := s.battingRepo.GetSourceTeamLines(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching batting lines for %s: %w", teamID, err)
	}
	return AggregateBatting(lines), nil
}

// GetTeamPitching returns season pitching totals for the team's own pitchers,
// sorted by innings pitched descending.
func (s *StatsService) GetTeamPitching(ctx context.Context, teamID string) ([]PitcherSeasonStats, error) {
	lines, err := s.pitchingRepo.GetSourceTeamLines(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching pitching lines for %s: %w", teamID, err)
	}
	return AggregatePitching(lines), nil
}

// AggregateBatting folds per-game batting lines into per-player season
// totals keyed by exact stored player name.
func AggregateBatting(lines []*store.BattingLine) []PlayerSeasonStats {
	byPlayer := make(map[string]*PlayerSeasonStats)
	order := make([]string, 0)

	for _, line := range lines {
		stats, ok := byPlayer[line.PlayerName]
		if !ok {
			stats = &PlayerSeasonStats{PlayerName: line.PlayerName}
			byPlayer[line.PlayerName] = stats
			order = append(order, line.PlayerName)
		}

		stats.Games++
		stats.AB += line.AB
		stats.R += line.R
		stats.H += line.H
		stats.RBI += line.RBI
		stats.BB += line.BB
		stats.SO += line.SO
		stats.Doubles += line.Doubles
		stats.Triples += line.Triples
		stats.HomeRuns += line.HomeRuns
		stats.StolenBases += line.StolenBases
		stats.TotalBases += line.TotalBases
	}

	out := make([]PlayerSeasonStats, 0, len(order))
	for _, name := range order {
		stats := byPlayer[name]
		stats.PA = stats.AB + stats.BB
		stats.AVG = safeDiv(stats.H, stats.AB)
		stats.OBP = safeDiv(stats.H+stats.BB, stats.PA)
		stats.SLG = safeDiv(stats.TotalBases, stats.AB)
		stats.OPS = stats.OBP + stats.SLG
		stats.ISO = stats.SLG - stats.AVG
		out = append(out, *stats)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].OPS > out[j].OPS })
	return out
}

// AggregatePitching folds per-game pitching lines into per-pitcher season
// totals keyed by exact stored pitcher name.
func AggregatePitching(lines []*store.PitchingLine) []PitcherSeasonStats {
	type acc struct {
		stats PitcherSeasonStats
		outs  int
	}

	byPitcher := make(map[string]*acc)
	order := make([]string, 0)

	for _, line := range lines {
		a, ok := byPitcher[line.PitcherName]
		if !ok {
			a = &acc{stats: PitcherSeasonStats{PitcherName: line.PitcherName}}
			byPitcher[line.PitcherName] = a
			order = append(order, line.PitcherName)
		}

		a.stats.Games++
		a.outs += IPToOuts(line.IP)
		a.stats.HAllowed += line.HAllowed
		a.stats.RAllowed += line.RAllowed
		a.stats.ERAllowed += line.ERAllowed
		a.stats.BBAllowed += line.BBAllowed
		a.stats.Strikeouts += line.Strikeouts
	}

	accs := make([]*acc, 0, len(order))
	for _, name := range order {
		a := byPitcher[name]
		a.stats.IP = OutsToIP(a.outs)
		innings := float64(a.outs) / 3.0
		if innings > 0 {
			a.stats.ERA = float64(a.stats.ERAllowed) * 9.0 / innings
			a.stats.WHIP = float64(a.stats.HAllowed+a.stats.BBAllowed) / innings
		}
		accs = append(accs, a)
	}

	sort.SliceStable(accs, func(i, j int) bool { return accs[i].outs > accs[j].outs })

	out := make([]PitcherSeasonStats, 0, len(accs))
	for _, a := range accs {
		out = append(out, a.stats)
	}
	return out
}

// IPToOuts converts baseball innings notation to outs: "4.2" means four
// innings and two outs, so 14 outs. Unparseable input counts zero outs.
func IPToOuts(ip string) int {
	whole, frac, _ := strings.Cut(strings.TrimSpace(ip), ".")

	innings, err := strconv.Atoi(whole)
	if err != nil {
		return 0
	}

	outs := 0
	if frac != "" {
		outs, err = strconv.Atoi(frac)
		if err != nil || outs < 0 || outs > 2 {
			outs = 0
		}
	}

	return innings*3 + outs
}

// OutsToIP renders outs back into innings notation.
func OutsToIP(outs int) string {
	return fmt.Sprintf("%d.%d", outs/3, outs%3)
}

// safeDiv divides counting stats, with empty denominators reading as 0.0
// rather than NaN.
func safeDiv(num, den int) float64 {
	if den == 0 {
		return 0.0
	}
	return float64(num) / float64(den)
}
