package model

import "time"

// SessionID uniquely identifies an in-progress duel
type SessionID string

// SessionStatus represents the lifecycle phase of a session
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session is one in-progress two-player duel. Instances are owned
// exclusively by the match controller; everything that leaves the
// controller is a SessionView copy.
type Session struct {
	ID          SessionID
	Secret      string // normalized to upper case at creation
	Mode        ModeID
	Players     []PlayerID // exactly two, distinct
	Guesses     map[PlayerID][]Guess
	MaxAttempts int      // copied from the mode at creation
	WordLength  int      // copied from the mode at creation
	Winner      PlayerID // empty until a correct guess is recorded
	Status      SessionStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPlayer reports whether the given player is a registered participant
func (s *Session) HasPlayer(id PlayerID) bool {
	for _, p := range s.Players {
		if p == id {
			return true
		}
	}
	return false
}

// Exhausted reports whether every participant has used all attempts
func (s *Session) Exhausted() bool {
	for _, p := range s.Players {
		if len(s.Guesses[p]) < s.MaxAttempts {
			return false
		}
	}
	return true
}

// View returns a deep copy safe to hand outside the controller
func (s *Session) View() SessionView {
	guesses := make(map[PlayerID][]Guess, len(s.Guesses))
	for pid, history := range s.Guesses {
		cp := make([]Guess, len(history))
		copy(cp, history)
		guesses[pid] = cp
	}
	players := make([]PlayerID, len(s.Players))
	copy(players, s.Players)
	return SessionView{
		ID:          s.ID,
		Mode:        s.Mode,
		Players:     players,
		Guesses:     guesses,
		MaxAttempts: s.MaxAttempts,
		WordLength:  s.WordLength,
		Winner:      s.Winner,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SessionView is a caller-facing snapshot of a session. The secret word
// is deliberately omitted; it is only revealed through a Resolution.
type SessionView struct {
	ID          SessionID
	Mode        ModeID
	Players     []PlayerID
	Guesses     map[PlayerID][]Guess
	MaxAttempts int
	WordLength  int
	Winner      PlayerID
	Status      SessionStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ResolveReason explains how a winner decision was reached
type ResolveReason string

const (
	ReasonGuessed  ResolveReason = "guessed"   // a player hit the exact word
	ReasonTiebreak ResolveReason = "tiebreak"  // aggregate feedback comparison
	ReasonTie      ResolveReason = "tie"       // aggregates equal on both axes
	ReasonForfeit  ResolveReason = "forfeit"   // a player conceded
	ReasonNotFound ResolveReason = "not_found" // session absent
)

// Resolution is the outcome of resolveWinner: at most one winner, or
// none for a tie
type Resolution struct {
	Winner PlayerID // empty for tie / not_found
	Reason ResolveReason
}
