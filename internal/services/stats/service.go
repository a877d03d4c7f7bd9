package stats

import (
	"context"
	"log/slog"

	"github.com/wordduel/wordduel-go/internal/dependencies/clock"
	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/storage"
)

// Service implements the write-after-resolution contract: once a duel
// resolves, its record is completed and the winner's tally grows.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new stats Service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger.With(slog.String("component", "stats")),
	}
}

// RecordCompletion finalizes the game record for a resolved duel and
// credits the winner, if any.
func (s *Service) RecordCompletion(ctx context.Context, sessionID model.SessionID, word string, res model.Resolution) error {
	record, err := s.storage.GetGameRecord(ctx, sessionID)
	if err != nil {
		return err
	}

	record.Status = model.SessionStatusCompleted
	record.Word = word
	record.Winner = res.Winner
	record.Reason = res.Reason
	record.CompletedAt = s.clock.Now()

	if err := s.storage.SaveGameRecord(ctx, record); err != nil {
		return err
	}

	if res.Winner != "" {
		if err := s.storage.IncrementWins(ctx, res.Winner); err != nil {
			return err
		}
	}

	s.logger.Info("game recorded",
		slog.String("session_id", string(sessionID)),
		slog.String("winner", string(res.Winner)),
		slog.String("reason", string(res.Reason)),
	)
	return nil
}

// Leaderboard returns the top players by win count
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return s.storage.TopPlayers(ctx, limit)
}

// GameRecord returns the persisted record of a duel
func (s *Service) GameRecord(ctx context.Context, id model.SessionID) (*model.GameRecord, error) {
	return s.storage.GetGameRecord(ctx, id)
}
