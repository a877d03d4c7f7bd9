package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"github.com/wordduel/wordduel-go/internal/api/handler"
	"github.com/wordduel/wordduel-go/internal/api/middleware"
	"github.com/wordduel/wordduel-go/internal/api/response"
	basemw "github.com/wordduel/wordduel-go/internal/middleware"
	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/services/auth"
	"github.com/wordduel/wordduel-go/internal/services/challenge"
	"github.com/wordduel/wordduel-go/internal/services/match"
	"github.com/wordduel/wordduel-go/internal/services/matchmaking"
	"github.com/wordduel/wordduel-go/internal/services/stats"
	"github.com/wordduel/wordduel-go/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	MatchController    *match.Controller
	MatchmakingService *matchmaking.Service
	ChallengeService   *challenge.Service
	StatsService       *stats.Service
	Hubs               *sse.HubManager
	Broadcaster        *sse.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService, cfg.StatsService)
	queueHandler := handler.NewQueueHandler(cfg.MatchmakingService, cfg.Broadcaster)
	challengeHandler := handler.NewChallengeHandler(cfg.ChallengeService, cfg.Broadcaster)
	gameHandler := handler.NewGameHandler(cfg.MatchController, cfg.StatsService, cfg.Hubs, cfg.Broadcaster, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := basemw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Matchmaking queue routes (all require auth)
	queue := api.PathPrefix("/queue").Subrouter()
	queue.Use(authMiddleware)
	queue.HandleFunc("", queueHandler.Join).Methods(http.MethodPost)
	queue.HandleFunc("", queueHandler.Leave).Methods(http.MethodDelete)

	// Challenge routes (all require auth)
	challenges := api.PathPrefix("/challenges").Subrouter()
	challenges.Use(authMiddleware)
	challenges.HandleFunc("", challengeHandler.Create).Methods(http.MethodPost)
	challenges.HandleFunc("/{challengeId}", challengeHandler.Get).Methods(http.MethodGet)
	challenges.HandleFunc("/{challengeId}/accept", challengeHandler.Accept).Methods(http.MethodPost)
	challenges.HandleFunc("/{challengeId}/reject", challengeHandler.Reject).Methods(http.MethodPost)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("/{gameId}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{gameId}/guesses", gameHandler.Guess).Methods(http.MethodPost)
	games.HandleFunc("/{gameId}/forfeit", gameHandler.Forfeit).Methods(http.MethodPost)
	games.HandleFunc("/{gameId}/record", gameHandler.History).Methods(http.MethodGet)
	games.HandleFunc("/{gameId}/events", gameHandler.Events).Methods(http.MethodGet)

	// Personal notification stream (matchmaking, challenges)
	events := api.PathPrefix("/events").Subrouter()
	events.Use(authMiddleware)
	events.HandleFunc("", gameHandler.Notifications).Methods(http.MethodGet)

	// Public lookups (no auth)
	api.HandleFunc("/modes", modesHandler).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", playerHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func modesHandler(w http.ResponseWriter, _ *http.Request) {
	modes := lo.Map(model.Modes(), func(m model.Mode, _ int) response.Mode {
		return response.ModeFromModel(m)
	})
	response.JSON(w, http.StatusOK, modes)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
