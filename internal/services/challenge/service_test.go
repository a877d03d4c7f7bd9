package challenge

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordduel/wordduel-go/internal/dependencies/mocks"
	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/services/feedback"
	"github.com/wordduel/wordduel-go/internal/services/match"
	"github.com/wordduel/wordduel-go/internal/services/tiebreak"
	"github.com/wordduel/wordduel-go/internal/services/words"
	"github.com/wordduel/wordduel-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	ctx        context.Context
	clock      *mocks.MockClock
	store      *memory.Storage
	controller *match.Controller
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.store = memory.New()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	s.Require().NoError(s.store.SaveWordList(s.ctx, 5, []string{"APPLE"}))

	wordService := words.New(s.store, nil, mocks.NewMockRandom(), logger)
	s.controller = match.NewController(feedback.New(), tiebreak.New(), s.clock, logger)
	s.service = New(s.store, s.controller, wordService, s.clock, Config{TTL: 5 * time.Minute}, logger)
}

// Create

func (s *ServiceSuite) TestCreate() {
	challenge, err := s.service.Create(s.ctx, "p1", "p2")
	s.Require().NoError(err)

	s.NotEmpty(challenge.ID)
	s.Equal(model.PlayerID("p1"), challenge.ChallengerID)
	s.Equal(model.PlayerID("p2"), challenge.ChallengedID)
	s.Equal(model.ChallengeStatusWaiting, challenge.Status)
	s.Equal(s.clock.Now().Add(5*time.Minute), challenge.ExpiresAt)

	stored, err := s.store.GetChallenge(s.ctx, challenge.ID)
	s.Require().NoError(err)
	s.Equal(challenge.ID, stored.ID)
}

func (s *ServiceSuite) TestCreateGeneratesDistinctIDs() {
	first, err := s.service.Create(s.ctx, "p1", "p2")
	s.Require().NoError(err)
	second, err := s.service.Create(s.ctx, "p1", "p3")
	s.Require().NoError(err)

	s.NotEqual(first.ID, second.ID)
}

func (s *ServiceSuite) TestCreateSelfChallengeRejected() {
	_, err := s.service.Create(s.ctx, "p1", "p1")
	s.Require().ErrorIs(err, model.ErrInvalidPlayerSet)
}

func (s *ServiceSuite) TestCreateEmptyPlayerRejected() {
	_, err := s.service.Create(s.ctx, "p1", "")
	s.Require().ErrorIs(err, model.ErrInvalidPlayerSet)
}

// Accept

func (s *ServiceSuite) TestAcceptCreatesSession() {
	challenge, err := s.service.Create(s.ctx, "p1", "p2")
	s.Require().NoError(err)

	accepted, view, err := s.service.Accept(s.ctx, challenge.ID)
	s.Require().NoError(err)

	s.Equal(model.ChallengeStatusAccepted, accepted.Status)
	s.Equal(challenge.ID, view.ID)
	s.Equal(model.ModeChallenge, view.Mode)
	s.Equal([]model.PlayerID{"p1", "p2"}, view.Players)
	s.Equal(1, s.controller.ActiveSessions())

	record, err := s.store.GetGameRecord(s.ctx, challenge.ID)
	s.Require().NoError(err)
	s.Equal(model.SessionStatusActive, record.Status)
	s.Equal("APPLE", record.Word)
}

func (s *ServiceSuite) TestAcceptUnknownChallenge() {
	_, _, err := s.service.Accept(s.ctx, "missing")
	s.Require().ErrorIs(err, model.ErrChallengeNotFound)
}

func (s *ServiceSuite) TestAcceptTwiceRejected() {
	challenge, err := s.service.Create(s.ctx, "p1", "p2")
	s.Require().NoError(err)

	_, _, err = s.service.Accept(s.ctx, challenge.ID)
	s.Require().NoError(err)
	_, _, err = s.service.Accept(s.ctx, challenge.ID)
	s.Require().ErrorIs(err, model.ErrChallengeClosed)
}

func (s *ServiceSuite) TestAcceptAfterExpiry() {
	challenge, err := s.service.Create(s.ctx, "p1", "p2")
	s.Require().NoError(err)

	s.clock.Advance(5*time.Minute + time.Second)

	_, _, err = s.service.Accept(s.ctx, challenge.ID)
	s.Require().ErrorIs(err, model.ErrChallengeExpired)

	stored, err := s.store.GetChallenge(s.ctx, challenge.ID)
	s.Require().NoError(err)
	s.Equal(model.ChallengeStatusExpired, stored.Status)
	s.Equal(0, s.controller.ActiveSessions())
}

// Reject

func (s *ServiceSuite) TestReject() {
	challenge, err := s.service.Create(s.ctx, "p1", "p2")
	s.Require().NoError(err)

	rejected, err := s.service.Reject(s.ctx, challenge.ID)
	s.Require().NoError(err)
	s.Equal(model.ChallengeStatusRejected, rejected.Status)

	_, _, err = s.service.Accept(s.ctx, challenge.ID)
	s.Require().ErrorIs(err, model.ErrChallengeClosed)
}

func (s *ServiceSuite) TestRejectAfterAccept() {
	challenge, err := s.service.Create(s.ctx, "p1", "p2")
	s.Require().NoError(err)
	_, _, err = s.service.Accept(s.ctx, challenge.ID)
	s.Require().NoError(err)

	_, err = s.service.Reject(s.ctx, challenge.ID)
	s.Require().ErrorIs(err, model.ErrChallengeClosed)
}

// ExpireStale

func (s *ServiceSuite) TestExpireStale() {
	first, err := s.service.Create(s.ctx, "p1", "p2")
	s.Require().NoError(err)

	s.clock.Advance(3 * time.Minute)
	second, err := s.service.Create(s.ctx, "p3", "p4")
	s.Require().NoError(err)

	s.clock.Advance(3 * time.Minute)

	expired, err := s.service.ExpireStale(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, expired)

	stored, err := s.store.GetChallenge(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(model.ChallengeStatusExpired, stored.Status)

	stored, err = s.store.GetChallenge(s.ctx, second.ID)
	s.Require().NoError(err)
	s.Equal(model.ChallengeStatusWaiting, stored.Status)
}

func (s *ServiceSuite) TestExpireStaleNothingWaiting() {
	expired, err := s.service.ExpireStale(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, expired)
}
