package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/kraytos1/aces-analytics/internal/cache"
	"github.com/kraytos1/aces-analytics/internal/roster"
	"github.com/kraytos1/aces-analytics/internal/scheduler"
	"github.com/kraytos1/aces-analytics/internal/store"
)

// AuthConfig carries the optional basic-auth credentials for the API.
// Empty username disables auth.
type AuthConfig struct {
	Username string
	Password string
}

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, orchestrator *scheduler.Orchestrator,
	viewCache *cache.RedisCache, tournamentRoster []roster.TournamentTeam, auth AuthConfig) *Server {

	handler := NewHandler(db, orchestrator, viewCache, tournamentRoster)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(BasicAuthMiddleware(auth.Username, auth.Password))

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Tournament views
	api.HandleFunc("/tournament/board", handler.GetTournamentBoard).Methods("GET")
	api.HandleFunc("/tournament.csv", handler.GetTournamentCSV).Methods("GET")

	// Teams
	api.HandleFunc("/teams/{teamID}/hitting", handler.GetTeamHitting).Methods("GET")
	api.HandleFunc("/teams/{teamID}/pitching", handler.GetTeamPitching).Methods("GET")
	api.HandleFunc("/teams/{teamID}/games", handler.GetTeamGames).Methods("GET")
	api.HandleFunc("/teams/{teamID}/summary", handler.GetTeamSummary).Methods("GET")

	// Scrape trigger
	api.HandleFunc("/scrape", handler.TriggerScrape).Methods("POST")

	corsHandler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: corsHandler,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
