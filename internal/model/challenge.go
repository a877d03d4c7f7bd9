package model

import "time"

// ChallengeStatus represents the invitation handshake state
type ChallengeStatus string

const (
	ChallengeStatusWaiting  ChallengeStatus = "waiting"
	ChallengeStatusAccepted ChallengeStatus = "accepted"
	ChallengeStatusRejected ChallengeStatus = "rejected"
	ChallengeStatusExpired  ChallengeStatus = "expired"
)

// Challenge is a direct game invitation between two players. Its ID
// doubles as the session id of the game created when it is accepted.
type Challenge struct {
	ID           SessionID
	ChallengerID PlayerID
	ChallengedID PlayerID
	Status       ChallengeStatus
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// IsOpen reports whether the challenge can still be accepted
func (c *Challenge) IsOpen(now time.Time) bool {
	return c.Status == ChallengeStatusWaiting && now.Before(c.ExpiresAt)
}
