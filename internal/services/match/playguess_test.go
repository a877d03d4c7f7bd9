package match

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordduel/wordduel-go/internal/dependencies/mocks"
	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/services/feedback"
	"github.com/wordduel/wordduel-go/internal/services/tiebreak"
)

type PlayGuessSuite struct {
	suite.Suite
	clock      *mocks.MockClock
	controller *Controller
}

func TestPlayGuessSuite(t *testing.T) {
	suite.Run(t, new(PlayGuessSuite))
}

func (s *PlayGuessSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s.controller = NewController(feedback.New(), tiebreak.New(), s.clock, logger)

	_, err := s.controller.CreateSession("g1", "APPLE", model.ModeClassic, []model.PlayerID{"p1", "p2"})
	s.Require().NoError(err)
}

func (s *PlayGuessSuite) TestNonTerminalGuess() {
	outcome, err := s.controller.PlayGuess("g1", "p1", "ALERT")
	s.Require().NoError(err)

	s.False(outcome.Over)
	s.Equal(0, outcome.Attempt)
	s.Equal(1, outcome.Feedback.Green)
	s.Equal(2, outcome.Feedback.Yellow)
	s.Equal(1, s.controller.ActiveSessions())
}

func (s *PlayGuessSuite) TestAttemptIndexIncrements() {
	first, err := s.controller.PlayGuess("g1", "p1", "ALERT")
	s.Require().NoError(err)
	second, err := s.controller.PlayGuess("g1", "p1", "STONE")
	s.Require().NoError(err)

	s.Equal(0, first.Attempt)
	s.Equal(1, second.Attempt)
}

func (s *PlayGuessSuite) TestCorrectGuessWinsAndEvicts() {
	outcome, err := s.controller.PlayGuess("g1", "p1", "APPLE")
	s.Require().NoError(err)

	s.True(outcome.Over)
	s.Equal(model.PlayerID("p1"), outcome.Resolution.Winner)
	s.Equal(model.ReasonGuessed, outcome.Resolution.Reason)
	s.Equal("APPLE", outcome.Word)
	s.Equal(model.SessionStatusCompleted, outcome.Final.Status)
	s.Equal(model.PlayerID("p1"), outcome.Final.Winner)

	// Completed sessions are evicted immediately
	s.Equal(0, s.controller.ActiveSessions())
	_, err = s.controller.GetSession("g1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *PlayGuessSuite) TestLastAttemptWinIsGuessedNotTiebreak() {
	// Fill both histories so p1's sixth guess exhausts the board
	for i := 0; i < 6; i++ {
		_, err := s.controller.PlayGuess("g1", "p2", "STONY")
		s.Require().NoError(err)
	}
	for i := 0; i < 5; i++ {
		_, err := s.controller.PlayGuess("g1", "p1", "ALERT")
		s.Require().NoError(err)
	}

	outcome, err := s.controller.PlayGuess("g1", "p1", "APPLE")
	s.Require().NoError(err)

	s.True(outcome.Over)
	s.Equal(model.ReasonGuessed, outcome.Resolution.Reason)
	s.Equal(model.PlayerID("p1"), outcome.Resolution.Winner)
}

func (s *PlayGuessSuite) TestExhaustionResolvesByTiebreak() {
	for i := 0; i < 6; i++ {
		_, err := s.controller.PlayGuess("g1", "p1", "ALERT") // green=1 each
		s.Require().NoError(err)
	}
	var outcome GuessOutcome
	var err error
	for i := 0; i < 6; i++ {
		outcome, err = s.controller.PlayGuess("g1", "p2", "STONY") // nothing
		s.Require().NoError(err)
	}

	s.True(outcome.Over)
	s.Equal(model.PlayerID("p1"), outcome.Resolution.Winner)
	s.Equal(model.ReasonTiebreak, outcome.Resolution.Reason)
	s.Equal(0, s.controller.ActiveSessions())
}

func (s *PlayGuessSuite) TestExhaustionWithEqualAggregatesIsTie() {
	for i := 0; i < 6; i++ {
		_, err := s.controller.PlayGuess("g1", "p1", "ALERT")
		s.Require().NoError(err)
	}
	var outcome GuessOutcome
	var err error
	for i := 0; i < 6; i++ {
		outcome, err = s.controller.PlayGuess("g1", "p2", "ALERT")
		s.Require().NoError(err)
	}

	s.True(outcome.Over)
	s.Empty(outcome.Resolution.Winner)
	s.Equal(model.ReasonTie, outcome.Resolution.Reason)
}

func (s *PlayGuessSuite) TestGuessAfterGameOverFails() {
	_, err := s.controller.PlayGuess("g1", "p1", "APPLE")
	s.Require().NoError(err)

	_, err = s.controller.PlayGuess("g1", "p2", "ALERT")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *PlayGuessSuite) TestInvalidGuessDoesNotAdvanceState() {
	_, err := s.controller.PlayGuess("g1", "p1", "ZZZ")
	s.ErrorIs(err, model.ErrInvalidGuessLength)

	view, getErr := s.controller.GetSession("g1")
	s.Require().NoError(getErr)
	s.Empty(view.Guesses["p1"])
	s.Equal(model.SessionStatusActive, view.Status)
}

func (s *PlayGuessSuite) TestConcurrentFinalGuessesProduceOneResolution() {
	// Drive both players to their last attempt
	for i := 0; i < 5; i++ {
		_, err := s.controller.PlayGuess("g1", "p1", "ALERT")
		s.Require().NoError(err)
		_, err = s.controller.PlayGuess("g1", "p2", "ALERT")
		s.Require().NoError(err)
	}

	var wg sync.WaitGroup
	results := make([]GuessOutcome, 2)
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0], errs[0] = s.controller.PlayGuess("g1", "p1", "STONE")
	}()
	go func() {
		defer wg.Done()
		results[1], errs[1] = s.controller.PlayGuess("g1", "p2", "STONE")
	}()
	wg.Wait()

	// Whichever guess lands second closes the game; exactly one call
	// observes the terminal state.
	over := 0
	for i := range results {
		s.Require().NoError(errs[i])
		if results[i].Over {
			over++
		}
	}
	s.Equal(1, over)
	s.Equal(0, s.controller.ActiveSessions())
}

// Forfeit tests

func (s *PlayGuessSuite) TestForfeitAwardsOpponent() {
	outcome, err := s.controller.Forfeit("g1", "p1")
	s.Require().NoError(err)

	s.True(outcome.Over)
	s.Equal(model.PlayerID("p2"), outcome.Resolution.Winner)
	s.Equal(model.ReasonForfeit, outcome.Resolution.Reason)
	s.Equal("APPLE", outcome.Word)
	s.Equal(0, s.controller.ActiveSessions())
}

func (s *PlayGuessSuite) TestForfeitByNonParticipant() {
	_, err := s.controller.Forfeit("g1", "p3")
	s.ErrorIs(err, model.ErrNotParticipant)
	s.Equal(1, s.controller.ActiveSessions())
}

func (s *PlayGuessSuite) TestForfeitAbsentSession() {
	_, err := s.controller.Forfeit("missing", "p1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
