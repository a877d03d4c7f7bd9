package challenge

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wordduel/wordduel-go/internal/dependencies/clock"
	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/services/match"
	"github.com/wordduel/wordduel-go/internal/services/words"
	"github.com/wordduel/wordduel-go/internal/storage"
)

// Config holds configuration for the challenge service
type Config struct {
	// TTL is how long an invitation stays open before expiring
	TTL time.Duration
}

// DefaultConfig returns default challenge configuration
func DefaultConfig() Config {
	return Config{TTL: 5 * time.Minute}
}

// Service manages direct game invitations between players. A challenge
// id doubles as the session id of the duel created on acceptance.
type Service struct {
	storage storage.Storage
	match   *match.Controller
	words   *words.Service
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new challenge Service
func New(
	store storage.Storage,
	matchController *match.Controller,
	wordService *words.Service,
	clk clock.Clock,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.TTL == 0 {
		cfg = DefaultConfig()
	}
	return &Service{
		storage: store,
		match:   matchController,
		words:   wordService,
		clock:   clk,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "challenge")),
	}
}

// Create opens a new invitation from challenger to challenged
func (s *Service) Create(ctx context.Context, challenger, challenged model.PlayerID) (*model.Challenge, error) {
	if challenger == "" || challenged == "" || challenger == challenged {
		return nil, model.ErrInvalidPlayerSet
	}

	now := s.clock.Now()
	challenge := &model.Challenge{
		ID:           model.SessionID(uuid.NewString()),
		ChallengerID: challenger,
		ChallengedID: challenged,
		Status:       model.ChallengeStatusWaiting,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.cfg.TTL),
	}

	if err := s.storage.SaveChallenge(ctx, challenge); err != nil {
		return nil, err
	}

	s.logger.Info("challenge created",
		slog.String("challenge_id", string(challenge.ID)),
		slog.String("challenger", string(challenger)),
		slog.String("challenged", string(challenged)),
	)

	return challenge, nil
}

// Get retrieves a challenge by id
func (s *Service) Get(ctx context.Context, id model.SessionID) (*model.Challenge, error) {
	return s.storage.GetChallenge(ctx, id)
}

// Accept turns an open invitation into a live challenge-mode duel.
// The challenge id becomes the session id.
func (s *Service) Accept(ctx context.Context, id model.SessionID) (*model.Challenge, model.SessionView, error) {
	challenge, err := s.storage.GetChallenge(ctx, id)
	if err != nil {
		return nil, model.SessionView{}, err
	}

	now := s.clock.Now()
	if challenge.Status != model.ChallengeStatusWaiting {
		return nil, model.SessionView{}, model.ErrChallengeClosed
	}
	if !now.Before(challenge.ExpiresAt) {
		challenge.Status = model.ChallengeStatusExpired
		_ = s.storage.SaveChallenge(ctx, challenge)
		return nil, model.SessionView{}, model.ErrChallengeExpired
	}

	mode, _ := model.LookupMode(model.ModeChallenge)
	word, err := s.words.Random(ctx, mode.WordLength())
	if err != nil {
		return nil, model.SessionView{}, err
	}

	players := []model.PlayerID{challenge.ChallengerID, challenge.ChallengedID}
	view, err := s.match.CreateSession(challenge.ID, word, mode.ID, players)
	if err != nil {
		return nil, model.SessionView{}, err
	}

	challenge.Status = model.ChallengeStatusAccepted
	if err := s.storage.SaveChallenge(ctx, challenge); err != nil {
		s.match.EndSession(challenge.ID)
		return nil, model.SessionView{}, err
	}

	record := &model.GameRecord{
		ID:        challenge.ID,
		Word:      word,
		Mode:      mode.ID,
		Players:   players,
		Status:    model.SessionStatusActive,
		CreatedAt: now,
	}
	if err := s.storage.SaveGameRecord(ctx, record); err != nil {
		s.logger.Error("failed to persist challenge game record",
			slog.String("challenge_id", string(challenge.ID)),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("challenge accepted",
		slog.String("challenge_id", string(challenge.ID)),
	)

	return challenge, view, nil
}

// Reject closes an open invitation. Used for both explicit rejection
// by the challenged player and cancellation by the challenger.
func (s *Service) Reject(ctx context.Context, id model.SessionID) (*model.Challenge, error) {
	challenge, err := s.storage.GetChallenge(ctx, id)
	if err != nil {
		return nil, err
	}

	if challenge.Status != model.ChallengeStatusWaiting {
		return nil, model.ErrChallengeClosed
	}

	challenge.Status = model.ChallengeStatusRejected
	if err := s.storage.SaveChallenge(ctx, challenge); err != nil {
		return nil, err
	}

	s.logger.Info("challenge rejected", slog.String("challenge_id", string(id)))
	return challenge, nil
}

// ExpireStale marks every open invitation past its deadline as expired
// and returns how many were closed. Run periodically from the server.
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	waiting, err := s.storage.ListWaitingChallenges(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	expired := 0
	for _, challenge := range waiting {
		if now.Before(challenge.ExpiresAt) {
			continue
		}
		challenge.Status = model.ChallengeStatusExpired
		if err := s.storage.SaveChallenge(ctx, challenge); err != nil {
			return expired, err
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("stale challenges expired", slog.Int("count", expired))
	}
	return expired, nil
}
