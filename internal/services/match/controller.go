package match

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/wordduel/wordduel-go/internal/dependencies/clock"
	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/services/feedback"
	"github.com/wordduel/wordduel-go/internal/services/tiebreak"
)

// Controller owns every in-progress session. It is the only component
// holding session references; callers only ever see SessionView copies.
// All state lives in memory, so a process restart drops in-flight duels
// (completed records are persisted elsewhere).
//
// A single store-wide mutex serializes mutation. PlayGuess holds it
// across the whole submit / check-win / check-exhaustion sequence, so
// two final guesses can never interleave.
type Controller struct {
	mu       sync.Mutex
	sessions map[model.SessionID]*model.Session

	feedback *feedback.Service
	tiebreak *tiebreak.Service
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new match Controller
func NewController(
	feedbackService *feedback.Service,
	tiebreakService *tiebreak.Service,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		sessions: make(map[model.SessionID]*model.Session),
		feedback: feedbackService,
		tiebreak: tiebreakService,
		clock:    clk,
		logger:   logger,
	}
}

// CreateSession registers a new active session for exactly two distinct
// players. The secret and maxAttempts are fixed at creation. A duplicate
// id is rejected rather than silently replacing a live duel.
func (c *Controller) CreateSession(id model.SessionID, secret string, modeID model.ModeID, players []model.PlayerID) (model.SessionView, error) {
	if len(players) != 2 || players[0] == players[1] || players[0] == "" || players[1] == "" {
		return model.SessionView{}, model.ErrInvalidPlayerSet
	}

	mode, ok := model.LookupMode(modeID)
	if !ok {
		return model.SessionView{}, model.ErrUnknownMode
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sessions[id]; exists {
		return model.SessionView{}, model.ErrSessionExists
	}

	now := c.clock.Now()
	guesses := make(map[model.PlayerID][]model.Guess, len(players))
	for _, pid := range players {
		guesses[pid] = []model.Guess{}
	}

	session := &model.Session{
		ID:          id,
		Secret:      strings.ToUpper(secret),
		Mode:        modeID,
		Players:     []model.PlayerID{players[0], players[1]},
		Guesses:     guesses,
		MaxAttempts: mode.MaxAttempts,
		WordLength:  mode.WordLength(),
		Status:      model.SessionStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.sessions[id] = session

	c.logger.Info("session created",
		slog.String("session_id", string(id)),
		slog.String("mode", string(modeID)),
		slog.Int("max_attempts", mode.MaxAttempts),
	)

	return session.View(), nil
}

// GetSession returns a read-only snapshot of a session.
// Absence is a soft condition reported via ErrSessionNotFound.
func (c *Controller) GetSession(id model.SessionID) (model.SessionView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.sessions[id]
	if !ok {
		return model.SessionView{}, model.ErrSessionNotFound
	}
	return session.View(), nil
}

// SubmitGuess computes feedback for a guess and appends it to the
// player's history. The operation either fully applies or has no
// effect: validation failures leave the history untouched.
func (c *Controller) SubmitGuess(id model.SessionID, playerID model.PlayerID, guessText string) (model.Feedback, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitGuessLocked(id, playerID, guessText)
}

func (c *Controller) submitGuessLocked(id model.SessionID, playerID model.PlayerID, guessText string) (model.Feedback, error) {
	session, ok := c.sessions[id]
	if !ok {
		return model.Feedback{}, model.ErrSessionNotFound
	}
	if session.Status != model.SessionStatusActive {
		return model.Feedback{}, model.ErrSessionNotActive
	}
	if !session.HasPlayer(playerID) {
		// Stale client state or a client bug, not a store invariant
		// violation; refuse the guess and report it.
		c.logger.Warn("guess from unregistered player",
			slog.String("session_id", string(id)),
			slog.String("player_id", string(playerID)),
		)
		return model.Feedback{}, model.ErrNotParticipant
	}

	fb, err := c.feedback.Compute(guessText, session.Secret)
	if err != nil {
		return model.Feedback{}, err
	}

	session.Guesses[playerID] = append(session.Guesses[playerID], model.Guess{
		Word:     strings.ToUpper(strings.TrimSpace(guessText)),
		Feedback: fb,
	})
	session.UpdatedAt = c.clock.Now()

	return fb, nil
}

// CheckWin reports whether the guess text matches the secret exactly,
// case-insensitively. Pure predicate; the guess need not have been
// submitted first.
func (c *Controller) CheckWin(id model.SessionID, playerID model.PlayerID, guessText string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkWinLocked(id, guessText)
}

func (c *Controller) checkWinLocked(id model.SessionID, guessText string) bool {
	session, ok := c.sessions[id]
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(guessText), session.Secret)
}

// CheckExhaustion reports whether every participant has used all
// attempts. Pure predicate.
func (c *Controller) CheckExhaustion(id model.SessionID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkExhaustionLocked(id)
}

func (c *Controller) checkExhaustionLocked(id model.SessionID) bool {
	session, ok := c.sessions[id]
	if !ok {
		return false
	}
	return session.Exhausted()
}

// SetWinner records an explicit winner ahead of eviction. No-op if the
// session is absent.
func (c *Controller) SetWinner(id model.SessionID, playerID model.PlayerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setWinnerLocked(id, playerID)
}

func (c *Controller) setWinnerLocked(id model.SessionID, playerID model.PlayerID) {
	session, ok := c.sessions[id]
	if !ok {
		return
	}
	session.Winner = playerID
	session.UpdatedAt = c.clock.Now()
}

// ResolveWinner decides the winner once a win or exhaustion has been
// detected: an explicitly set winner resolves as "guessed", otherwise
// the tiebreak comparison runs over both full feedback histories.
func (c *Controller) ResolveWinner(id model.SessionID) model.Resolution {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveWinnerLocked(id)
}

func (c *Controller) resolveWinnerLocked(id model.SessionID) model.Resolution {
	session, ok := c.sessions[id]
	if !ok {
		return model.Resolution{Reason: model.ReasonNotFound}
	}
	if session.Winner != "" {
		return model.Resolution{Winner: session.Winner, Reason: model.ReasonGuessed}
	}

	first, second := session.Players[0], session.Players[1]
	outcome := c.tiebreak.Resolve(
		feedbackHistory(session.Guesses[first]),
		feedbackHistory(session.Guesses[second]),
	)

	switch outcome {
	case tiebreak.OutcomeFirst:
		return model.Resolution{Winner: first, Reason: model.ReasonTiebreak}
	case tiebreak.OutcomeSecond:
		return model.Resolution{Winner: second, Reason: model.ReasonTiebreak}
	default:
		return model.Resolution{Reason: model.ReasonTie}
	}
}

// EndSession evicts a session from the store. Idempotent: ending an
// absent session is not an error.
func (c *Controller) EndSession(id model.SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endSessionLocked(id)
}

func (c *Controller) endSessionLocked(id model.SessionID) {
	if _, ok := c.sessions[id]; !ok {
		return
	}
	delete(c.sessions, id)
	c.logger.Info("session evicted", slog.String("session_id", string(id)))
}

// ActiveSessions returns the number of in-progress sessions
func (c *Controller) ActiveSessions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

func feedbackHistory(guesses []model.Guess) []model.Feedback {
	out := make([]model.Feedback, len(guesses))
	for i, g := range guesses {
		out[i] = g.Feedback
	}
	return out
}
