package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/wordduel/wordduel-go/internal/model"
)

// Broadcaster publishes game and notification events over SSE
type Broadcaster struct {
	hubs   *HubManager
	logger *slog.Logger
}

// NewBroadcaster creates a Broadcaster on top of a HubManager
func NewBroadcaster(hubs *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubs:   hubs,
		logger: logger.With(slog.String("component", "broadcaster")),
	}
}

type matchFoundEvent struct {
	GameID  model.SessionID  `json:"game_id"`
	Mode    model.ModeID     `json:"mode"`
	Players []model.PlayerID `json:"players"`
}

type challengeEvent struct {
	ChallengeID  model.SessionID       `json:"challenge_id"`
	ChallengerID model.PlayerID        `json:"challenger_id"`
	ChallengedID model.PlayerID        `json:"challenged_id"`
	Status       model.ChallengeStatus `json:"status"`
}

type guessEvent struct {
	GameID   model.SessionID `json:"game_id"`
	PlayerID model.PlayerID  `json:"player_id"`
	Feedback model.Feedback  `json:"feedback"`
	Attempt  int             `json:"attempt"`
}

type gameOverEvent struct {
	GameID model.SessionID     `json:"game_id"`
	Word   string              `json:"word"`
	Winner model.PlayerID      `json:"winner,omitempty"`
	Reason model.ResolveReason `json:"reason"`
}

// NotifyMatchFound tells each matched player their game is ready
func (b *Broadcaster) NotifyMatchFound(gameID model.SessionID, modeID model.ModeID, players []model.PlayerID) {
	payload := matchFoundEvent{GameID: gameID, Mode: modeID, Players: players}
	for _, playerID := range players {
		b.sendToRoom(UserRoom(playerID), "match-found", payload)
	}
	b.sendToRoom(GameRoom(gameID), "game-start", payload)
}

// NotifyChallenge delivers a challenge lifecycle event to a player
func (b *Broadcaster) NotifyChallenge(to model.PlayerID, eventName string, ch *model.Challenge) {
	b.sendToRoom(UserRoom(to), eventName, challengeEvent{
		ChallengeID:  ch.ID,
		ChallengerID: ch.ChallengerID,
		ChallengedID: ch.ChallengedID,
		Status:       ch.Status,
	})
}

// NotifyGuess publishes a guess result to the game room. Opponents see
// only the feedback, never the guessed word.
func (b *Broadcaster) NotifyGuess(gameID model.SessionID, playerID model.PlayerID, feedback model.Feedback, attempt int) {
	b.sendToRoom(GameRoom(gameID), "guess-result", guessEvent{
		GameID:   gameID,
		PlayerID: playerID,
		Feedback: feedback,
		Attempt:  attempt,
	})
}

// NotifyGameOver publishes the duel outcome to the game room
func (b *Broadcaster) NotifyGameOver(gameID model.SessionID, word string, res model.Resolution) {
	b.sendToRoom(GameRoom(gameID), "game-over", gameOverEvent{
		GameID: gameID,
		Word:   word,
		Winner: res.Winner,
		Reason: res.Reason,
	})
}

func (b *Broadcaster) sendToRoom(room Room, eventName string, payload any) {
	hub := b.hubs.GetHub(room)
	if hub == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("failed to marshal sse payload",
			slog.String("event", eventName),
			slog.String("error", err.Error()))
		return
	}
	hub.BroadcastEvent(eventName, string(data))
}
