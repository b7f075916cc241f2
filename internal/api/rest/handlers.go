package rest

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"time"

	"github.com/gorilla/mux"

	"github.com/kraytos1/aces-analytics/internal/cache"
	"github.com/kraytos1/aces-analytics/internal/export"
	"github.com/kraytos1/aces-analytics/internal/roster"
	"github.com/kraytos1/aces-analytics/internal/scheduler"
	"github.com/kraytos1/aces-analytics/internal/service"
	"github.com/kraytos1/aces-analytics/internal/store"
)

// boardCacheTTL bounds staleness between scrape-triggered invalidations.
const boardCacheTTL = 5 * time.Minute

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db           *store.Database
	teamService  *service.TeamService
	statsService *service.StatsService
	orchestrator *scheduler.Orchestrator
	cache        *cache.RedisCache
	roster       []roster.TournamentTeam
}

// NewHandler creates a new handler. orchestrator and viewCache may be nil:
// without an orchestrator the scrape trigger reports unavailable, without a
// cache every board request recomputes.
func NewHandler(db *store.Database, orchestrator *scheduler.Orchestrator,
	viewCache *cache.RedisCache, tournamentRoster []roster.TournamentTeam) *Handler {
	return &Handler{
		db:           db,
		teamService:  service.NewTeamService(db),
		statsService: service.NewStatsService(db),
		orchestrator: orchestrator,
		cache:        viewCache,
		roster:       tournamentRoster,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "aces-analytics",
	})
}

// GetTournamentBoard returns season summaries for the configured roster, in
// leaderboard order. Responses are served from Redis until a scrape run
// invalidates them or the TTL lapses.
func (h *Handler) GetTournamentBoard(w http.ResponseWriter, r *http.Request) {
	key := cache.BoardKey("default")

	if h.cache != nil {
		if cached, err := h.cache.Get(r.Context(), key); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	board, err := h.teamService.TournamentBoard(r.Context(), h.roster)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build tournament board", err)
		return
	}

	if h.cache != nil {
		if data, err := json.Marshal(board); err == nil {
			if err := h.cache.Set(r.Context(), key, data, boardCacheTTL); err != nil {
				log.Printf("[WARN] Failed to cache tournament board: %v", err)
			}
		}
	}

	respondJSON(w, http.StatusOK, board)
}

// GetTournamentCSV returns the tournament board as CSV for the threat-board
// upload flow.
func (h *Handler) GetTournamentCSV(w http.ResponseWriter, r *http.Request) {
	board, err := h.teamService.TournamentBoard(r.Context(), h.roster)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build tournament board", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="tournament.csv"`)
	if err := export.WriteBoard(w, board); err != nil {
		log.Printf("[ERROR] Writing tournament CSV: %v", err)
	}
}

// GetTeamHitting returns season batting totals for one team's players.
func (h *Handler) GetTeamHitting(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamID"]

	stats, err := h.statsService.GetTeamHitting(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch hitting stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetTeamPitching returns season pitching totals for one team's pitchers.
func (h *Handler) GetTeamPitching(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamID"]

	stats, err := h.statsService.GetTeamPitching(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch pitching stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetTeamGames returns the stored schedule and results for one team.
func (h *Handler) GetTeamGames(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamID"]

	games, err := h.teamService.GetGames(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, games)
}

// GetTeamSummary returns one team's season record.
func (h *Handler) GetTeamSummary(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamID"]

	summary, err := h.teamService.GetSeasonSummary(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

type scrapeRequest struct {
	ScheduleURL string `json:"schedule_url"`
}

// TriggerScrape starts an ingest run in the background: for one schedule URL
// when the body names one, otherwise for every configured URL. Progress is
// observable on the websocket feed; the response only acknowledges the start.
func (h *Handler) TriggerScrape(w http.ResponseWriter, r *http.Request) {
	if h.orchestrator == nil {
		respondError(w, http.StatusServiceUnavailable, "Scraping not configured", nil)
		return
	}

	var req scrapeRequest
	if r.Body != nil {
		// An empty body means "scrape everything".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	go func() {
		ctx := context.Background()
		if req.ScheduleURL != "" {
			if _, err := h.orchestrator.RunOne(ctx, req.ScheduleURL); err != nil {
				log.Printf("[ERROR] Triggered scrape of %s failed: %v", req.ScheduleURL, err)
			}
			return
		}
		if _, err := h.orchestrator.RunAll(ctx); err != nil {
			log.Printf("[ERROR] Triggered scrape run failed: %v", err)
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]string{
		"status": "accepted",
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
