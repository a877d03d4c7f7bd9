package match

import (
	"log/slog"

	"github.com/wordduel/wordduel-go/internal/model"
)

// GuessOutcome is the result of one fully processed guess
type GuessOutcome struct {
	Feedback model.Feedback
	Attempt  int // 0-indexed row of the guess in the player's history
	Over     bool
	// Populated only when Over is true
	Resolution model.Resolution
	Word       string // the secret, revealed at game end
	Final      model.SessionView
}

// PlayGuess runs the mandatory per-guess sequence as one atomic unit:
// submit, then check win, then check exhaustion. Checking exhaustion
// first would misread a last-attempt correct guess as a draw, and
// releasing the lock between steps would let two closing guesses
// interleave, so the whole sequence runs under a single lock hold.
// Terminal sessions are resolved and evicted before returning.
func (c *Controller) PlayGuess(id model.SessionID, playerID model.PlayerID, guessText string) (GuessOutcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fb, err := c.submitGuessLocked(id, playerID, guessText)
	if err != nil {
		return GuessOutcome{}, err
	}

	session := c.sessions[id]
	outcome := GuessOutcome{
		Feedback: fb,
		Attempt:  len(session.Guesses[playerID]) - 1,
	}

	switch {
	case c.checkWinLocked(id, guessText):
		c.setWinnerLocked(id, playerID)
	case !c.checkExhaustionLocked(id):
		return outcome, nil
	}

	session.Status = model.SessionStatusCompleted
	outcome.Over = true
	outcome.Resolution = c.resolveWinnerLocked(id)
	outcome.Word = session.Secret
	outcome.Final = session.View()
	c.endSessionLocked(id)

	c.logger.Info("session resolved",
		slog.String("session_id", string(id)),
		slog.String("winner", string(outcome.Resolution.Winner)),
		slog.String("reason", string(outcome.Resolution.Reason)),
	)

	return outcome, nil
}

// Forfeit concedes the duel on behalf of playerID. The opponent wins
// outright; the session is resolved and evicted like any other end.
func (c *Controller) Forfeit(id model.SessionID, playerID model.PlayerID) (GuessOutcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.sessions[id]
	if !ok {
		return GuessOutcome{}, model.ErrSessionNotFound
	}
	if session.Status != model.SessionStatusActive {
		return GuessOutcome{}, model.ErrSessionNotActive
	}
	if !session.HasPlayer(playerID) {
		return GuessOutcome{}, model.ErrNotParticipant
	}

	var opponent model.PlayerID
	for _, p := range session.Players {
		if p != playerID {
			opponent = p
		}
	}

	session.Status = model.SessionStatusCompleted
	session.Winner = opponent

	outcome := GuessOutcome{
		Over:       true,
		Resolution: model.Resolution{Winner: opponent, Reason: model.ReasonForfeit},
		Word:       session.Secret,
		Final:      session.View(),
	}
	c.endSessionLocked(id)

	c.logger.Info("session resolved",
		slog.String("session_id", string(id)),
		slog.String("winner", string(opponent)),
		slog.String("reason", string(model.ReasonForfeit)),
	)

	return outcome, nil
}
