package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wordduel/wordduel-go/internal/model"
)

// IntegrationSuite drives a full duel through the assembled app,
// exercising the wiring rather than any one service in isolation.
type IntegrationSuite struct {
	suite.Suite
	ctx context.Context
	app *TestApp
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.ctx = context.Background()
	s.app = NewTestApp()
	s.Require().NoError(s.app.LoadTestWords())
}

func (s *IntegrationSuite) TestClassicDuelResolvedByExactGuess() {
	_, err := s.app.MatchController.CreateSession("g1", "APPLE", model.ModeClassic, []model.PlayerID{"p1", "p2"})
	s.Require().NoError(err)

	outcome, err := s.app.MatchController.PlayGuess("g1", "p1", "ALERT")
	s.Require().NoError(err)
	s.False(outcome.Over)
	s.Equal(1, outcome.Feedback.Green)
	s.Equal(2, outcome.Feedback.Yellow)

	outcome, err = s.app.MatchController.PlayGuess("g1", "p2", "APPLE")
	s.Require().NoError(err)
	s.True(outcome.Over)
	s.Equal(model.PlayerID("p2"), outcome.Resolution.Winner)
	s.Equal(model.ReasonGuessed, outcome.Resolution.Reason)
	s.Equal("APPLE", outcome.Word)

	_, err = s.app.MatchController.GetSession("g1")
	s.Require().ErrorIs(err, model.ErrSessionNotFound)

	_, err = s.app.MatchController.PlayGuess("g1", "p1", "STONE")
	s.Require().ErrorIs(err, model.ErrSessionNotFound)
}

func (s *IntegrationSuite) TestMatchedDuelPersistsRecordAndWins() {
	s.app.MockRandom.QueueIntn(0)
	s.app.MockRandom.QueueString("GAMEINTTEST1")

	result, err := s.app.MatchmakingService.Join(s.ctx, model.ModeClassic, "p1")
	s.Require().NoError(err)
	s.Require().Nil(result)

	result, err = s.app.MatchmakingService.Join(s.ctx, model.ModeClassic, "p2")
	s.Require().NoError(err)
	s.Require().NotNil(result)

	outcome, err := s.app.MatchController.PlayGuess(result.SessionID, "p1", "APPLE")
	s.Require().NoError(err)
	s.Require().True(outcome.Over)

	err = s.app.StatsService.RecordCompletion(s.ctx, result.SessionID, outcome.Word, outcome.Resolution)
	s.Require().NoError(err)

	record, err := s.app.StatsService.GameRecord(s.ctx, result.SessionID)
	s.Require().NoError(err)
	s.Equal(model.SessionStatusCompleted, record.Status)
	s.Equal(model.PlayerID("p1"), record.Winner)
	s.Equal("APPLE", record.Word)

	top, err := s.app.StatsService.Leaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal(model.PlayerID("p1"), top[0].PlayerID)
}

func (s *IntegrationSuite) TestChallengeBecomesDuel() {
	challenge, err := s.app.ChallengeService.Create(s.ctx, "p1", "p2")
	s.Require().NoError(err)

	_, view, err := s.app.ChallengeService.Accept(s.ctx, challenge.ID)
	s.Require().NoError(err)
	s.Equal(challenge.ID, view.ID)
	s.Equal(model.ModeChallenge, view.Mode)

	outcome, err := s.app.MatchController.Forfeit(challenge.ID, "p2")
	s.Require().NoError(err)
	s.True(outcome.Over)
	s.Equal(model.PlayerID("p1"), outcome.Resolution.Winner)
	s.Equal(model.ReasonForfeit, outcome.Resolution.Reason)
}
