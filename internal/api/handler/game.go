package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordduel/wordduel-go/internal/api/middleware"
	"github.com/wordduel/wordduel-go/internal/api/request"
	"github.com/wordduel/wordduel-go/internal/api/response"
	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/services/match"
	"github.com/wordduel/wordduel-go/internal/services/stats"
	"github.com/wordduel/wordduel-go/internal/sse"
)

// GameHandler handles in-game endpoints
type GameHandler struct {
	match       *match.Controller
	stats       *stats.Service
	hubs        *sse.HubManager
	broadcaster *sse.Broadcaster
	logger      *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	matchController *match.Controller,
	statsService *stats.Service,
	hubs *sse.HubManager,
	broadcaster *sse.Broadcaster,
	logger *slog.Logger,
) *GameHandler {
	return &GameHandler{
		match:       matchController,
		stats:       statsService,
		hubs:        hubs,
		broadcaster: broadcaster,
		logger:      logger.With(slog.String("component", "game_handler")),
	}
}

// Get handles GET /api/v1/games/{gameId}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.SessionID(mux.Vars(r)["gameId"])

	view, err := h.match.GetSession(gameID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !viewHasPlayer(view, player.ID) {
		WriteError(w, model.ErrNotParticipant)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromView(&view, player.ID))
}

// Guess handles POST /api/v1/games/{gameId}/guesses
// The whole submit/win-check/exhaustion-check sequence runs inside the
// match controller; this handler only broadcasts and persists the result.
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.SessionID(mux.Vars(r)["gameId"])

	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Word == "" {
		WriteError(w, NewInvalidRequestError("word is required"))
		return
	}

	outcome, err := h.match.PlayGuess(gameID, player.ID, req.Word)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.NotifyGuess(gameID, player.ID, outcome.Feedback, outcome.Attempt)
	if outcome.Over {
		h.finishGame(r, gameID, outcome)
	}

	response.JSON(w, http.StatusOK, response.GuessResponseFromOutcome(&outcome))
}

// Forfeit handles POST /api/v1/games/{gameId}/forfeit
func (h *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.SessionID(mux.Vars(r)["gameId"])

	outcome, err := h.match.Forfeit(gameID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.finishGame(r, gameID, outcome)

	response.JSON(w, http.StatusOK, response.GuessResponseFromOutcome(&outcome))
}

// History handles GET /api/v1/games/{gameId}/record
// Completed duels are evicted from the live store; their records come
// from persistent storage instead.
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	gameID := model.SessionID(mux.Vars(r)["gameId"])

	record, err := h.stats.GameRecord(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameRecordFromModel(record))
}

// Events handles GET /api/v1/games/{gameId}/events (SSE)
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.SessionID(mux.Vars(r)["gameId"])

	view, err := h.match.GetSession(gameID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !viewHasPlayer(view, player.ID) {
		WriteError(w, model.ErrNotParticipant)
		return
	}

	if err := h.serveStream(w, r, sse.GameRoom(gameID), player.ID); err != nil {
		h.logger.Warn("sse stream ended with error",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()))
	}
}

// Notifications handles GET /api/v1/events (SSE, personal room)
func (h *GameHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.serveStream(w, r, sse.UserRoom(player.ID), player.ID); err != nil {
		h.logger.Warn("sse stream ended with error",
			slog.String("player_id", string(player.ID)),
			slog.String("error", err.Error()))
	}
}

// serveStream attaches an SSE client to a room. The empty-hub sweep
// can close a hub between lookup and registration; losing that race
// just means taking a fresh hub from the manager.
func (h *GameHandler) serveStream(w http.ResponseWriter, r *http.Request, room sse.Room, playerID model.PlayerID) error {
	client := sse.NewClient(playerID)
	for {
		hub := h.hubs.GetOrCreateHub(room)
		err := client.ServeSSE(w, r, hub)
		if errors.Is(err, sse.ErrHubClosed) {
			continue
		}
		return err
	}
}

func viewHasPlayer(view model.SessionView, id model.PlayerID) bool {
	for _, p := range view.Players {
		if p == id {
			return true
		}
	}
	return false
}

// finishGame broadcasts the outcome and persists the completed record.
// Persistence failure is logged, not surfaced: the duel is already
// resolved and the guesser's response must reflect that.
func (h *GameHandler) finishGame(r *http.Request, gameID model.SessionID, outcome match.GuessOutcome) {
	h.broadcaster.NotifyGameOver(gameID, outcome.Word, outcome.Resolution)

	if err := h.stats.RecordCompletion(r.Context(), gameID, outcome.Word, outcome.Resolution); err != nil {
		h.logger.Error("failed to persist game completion",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()))
	}
	// The game room hub is left for the periodic empty-hub sweep so the
	// in-flight game-over event still reaches connected clients.
}
