package matchmaking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wordduel/wordduel-go/internal/dependencies/clock"
	"github.com/wordduel/wordduel-go/internal/dependencies/random"
	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/services/match"
	"github.com/wordduel/wordduel-go/internal/services/words"
	"github.com/wordduel/wordduel-go/internal/storage"
)

// SessionIDLength is the length of generated session ids
const SessionIDLength = 12

// ticket is one player waiting in a mode queue
type ticket struct {
	playerID model.PlayerID
	queuedAt time.Time
}

// MatchResult describes a freshly paired duel
type MatchResult struct {
	SessionID model.SessionID
	Mode      model.ModeID
	Players   []model.PlayerID
}

// Service pairs waiting players per mode. The two oldest waiters in a
// queue are matched, a secret word is drawn, and the session plus its
// active game record are created before either player is told.
type Service struct {
	mu     sync.Mutex
	queues map[model.ModeID][]ticket

	match   *match.Controller
	words   *words.Service
	storage storage.Storage
	random  random.Random
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new matchmaking Service
func New(
	matchController *match.Controller,
	wordService *words.Service,
	store storage.Storage,
	rnd random.Random,
	clk clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		queues:  make(map[model.ModeID][]ticket),
		match:   matchController,
		words:   wordService,
		storage: store,
		random:  rnd,
		clock:   clk,
		logger:  logger.With(slog.String("component", "matchmaking")),
	}
}

// Join adds a player to the queue for a mode. When a second player is
// waiting, both are dequeued and the match is created; the result is
// nil while the caller is still waiting for an opponent.
func (s *Service) Join(ctx context.Context, modeID model.ModeID, playerID model.PlayerID) (*MatchResult, error) {
	mode, ok := model.LookupMode(modeID)
	if !ok {
		return nil, model.ErrUnknownMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, queue := range s.queues {
		for _, t := range queue {
			if t.playerID == playerID {
				return nil, model.ErrAlreadyQueued
			}
		}
	}

	s.queues[modeID] = append(s.queues[modeID], ticket{
		playerID: playerID,
		queuedAt: s.clock.Now(),
	})

	if len(s.queues[modeID]) < 2 {
		s.logger.Info("player queued",
			slog.String("player_id", string(playerID)),
			slog.String("mode", string(modeID)),
		)
		return nil, nil
	}

	first, second := s.queues[modeID][0], s.queues[modeID][1]
	s.queues[modeID] = s.queues[modeID][2:]

	result, err := s.createMatch(ctx, mode, first.playerID, second.playerID)
	if err != nil {
		// Put the waiters back so neither silently drops out of the queue
		s.queues[modeID] = append([]ticket{first, second}, s.queues[modeID]...)
		return nil, err
	}
	return result, nil
}

// createMatch draws a word, creates the session and persists the
// active game record. Caller holds the queue lock.
func (s *Service) createMatch(ctx context.Context, mode model.Mode, a, b model.PlayerID) (*MatchResult, error) {
	word, err := s.words.Random(ctx, mode.WordLength())
	if err != nil {
		return nil, err
	}

	sessionID := model.SessionID(s.random.String(SessionIDLength, random.SessionIDAlphabet))
	players := []model.PlayerID{a, b}

	view, err := s.match.CreateSession(sessionID, word, mode.ID, players)
	if err != nil {
		return nil, err
	}

	record := &model.GameRecord{
		ID:        sessionID,
		Word:      word,
		Mode:      mode.ID,
		Players:   players,
		Status:    model.SessionStatusActive,
		CreatedAt: view.CreatedAt,
	}
	if err := s.storage.SaveGameRecord(ctx, record); err != nil {
		s.match.EndSession(sessionID)
		return nil, err
	}

	s.logger.Info("match created",
		slog.String("session_id", string(sessionID)),
		slog.String("mode", string(mode.ID)),
		slog.String("player_a", string(a)),
		slog.String("player_b", string(b)),
	)

	return &MatchResult{
		SessionID: sessionID,
		Mode:      mode.ID,
		Players:   players,
	}, nil
}

// Leave removes a player from every queue (disconnect path). Reports
// whether the player was waiting anywhere.
func (s *Service) Leave(playerID model.PlayerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	for modeID, queue := range s.queues {
		for i, t := range queue {
			if t.playerID == playerID {
				s.queues[modeID] = append(queue[:i], queue[i+1:]...)
				removed = true
				break
			}
		}
	}
	return removed
}

// Waiting returns the number of players queued for a mode
func (s *Service) Waiting(modeID model.ModeID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queues[modeID])
}
