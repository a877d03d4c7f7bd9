package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordduel/wordduel-go/internal/api/middleware"
	"github.com/wordduel/wordduel-go/internal/api/request"
	"github.com/wordduel/wordduel-go/internal/api/response"
	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/services/challenge"
	"github.com/wordduel/wordduel-go/internal/sse"
)

// ChallengeHandler handles direct-challenge endpoints
type ChallengeHandler struct {
	challenges  *challenge.Service
	broadcaster *sse.Broadcaster
}

// NewChallengeHandler creates a new challenge handler
func NewChallengeHandler(challengeService *challenge.Service, broadcaster *sse.Broadcaster) *ChallengeHandler {
	return &ChallengeHandler{
		challenges:  challengeService,
		broadcaster: broadcaster,
	}
}

// Create handles POST /api/v1/challenges
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	ch, err := h.challenges.Create(r.Context(), player.ID, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.NotifyChallenge(ch.ChallengedID, "challenge-received", ch)

	response.JSON(w, http.StatusCreated, response.ChallengeFromModel(ch))
}

// Get handles GET /api/v1/challenges/{challengeId}
func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	challengeID := model.SessionID(mux.Vars(r)["challengeId"])

	ch, err := h.challenges.Get(r.Context(), challengeID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if ch.ChallengerID != player.ID && ch.ChallengedID != player.ID {
		WriteError(w, model.ErrChallengeNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.ChallengeFromModel(ch))
}

// Accept handles POST /api/v1/challenges/{challengeId}/accept
// Only the challenged player can accept. On success the duel starts
// immediately; the challenge id doubles as the game id.
func (h *ChallengeHandler) Accept(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	challengeID := model.SessionID(mux.Vars(r)["challengeId"])

	ch, err := h.challenges.Get(r.Context(), challengeID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if ch.ChallengedID != player.ID {
		WriteError(w, model.ErrChallengeNotFound)
		return
	}

	ch, view, err := h.challenges.Accept(r.Context(), challengeID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.NotifyChallenge(ch.ChallengerID, "challenge-accepted", ch)
	h.broadcaster.NotifyMatchFound(view.ID, view.Mode, view.Players)

	response.JSON(w, http.StatusOK, response.GameStateFromView(&view, player.ID))
}

// Reject handles POST /api/v1/challenges/{challengeId}/reject
// The challenged player rejects; the challenger cancels. Both close
// the invitation the same way.
func (h *ChallengeHandler) Reject(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	challengeID := model.SessionID(mux.Vars(r)["challengeId"])

	ch, err := h.challenges.Get(r.Context(), challengeID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if ch.ChallengerID != player.ID && ch.ChallengedID != player.ID {
		WriteError(w, model.ErrChallengeNotFound)
		return
	}

	ch, err = h.challenges.Reject(r.Context(), challengeID)
	if err != nil {
		WriteError(w, err)
		return
	}

	notify := ch.ChallengerID
	if player.ID == ch.ChallengerID {
		notify = ch.ChallengedID
	}
	h.broadcaster.NotifyChallenge(notify, "challenge-rejected", ch)

	response.JSON(w, http.StatusOK, response.ChallengeFromModel(ch))
}
