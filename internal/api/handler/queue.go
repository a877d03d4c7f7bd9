package handler

import (
	"encoding/json"
	"net/http"

	"github.com/samber/lo"

	"github.com/wordduel/wordduel-go/internal/api/middleware"
	"github.com/wordduel/wordduel-go/internal/api/request"
	"github.com/wordduel/wordduel-go/internal/api/response"
	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/services/matchmaking"
	"github.com/wordduel/wordduel-go/internal/sse"
)

// QueueHandler handles matchmaking endpoints
type QueueHandler struct {
	matchmaking *matchmaking.Service
	broadcaster *sse.Broadcaster
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(matchmakingService *matchmaking.Service, broadcaster *sse.Broadcaster) *QueueHandler {
	return &QueueHandler{
		matchmaking: matchmakingService,
		broadcaster: broadcaster,
	}
}

// Join handles POST /api/v1/queue
func (h *QueueHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.JoinQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Mode == "" {
		WriteError(w, NewInvalidRequestError("mode is required"))
		return
	}

	result, err := h.matchmaking.Join(r.Context(), model.ModeID(req.Mode), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if result == nil {
		response.JSON(w, http.StatusAccepted, response.QueueStatus{Matched: false})
		return
	}

	h.broadcaster.NotifyMatchFound(result.SessionID, result.Mode, result.Players)

	response.JSON(w, http.StatusOK, response.QueueStatus{
		Matched: true,
		GameID:  string(result.SessionID),
		Mode:    string(result.Mode),
		Players: lo.Map(result.Players, func(id model.PlayerID, _ int) string {
			return string(id)
		}),
	})
}

// Leave handles DELETE /api/v1/queue
func (h *QueueHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	h.matchmaking.Leave(player.ID)
	response.NoContent(w)
}
