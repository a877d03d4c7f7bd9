package model

import "time"

// PlayerID uniquely identifies a player across the system.
// Player identity is established by the auth layer; game code treats
// these as opaque strings.
type PlayerID string

// Player represents a game participant
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool // true for unregistered players
	CreatedAt   time.Time
}

// RegisteredPlayer extends Player with authentication data
// Stored separately so credentials never travel with session state
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LeaderboardEntry is one row of the win-count leaderboard
type LeaderboardEntry struct {
	PlayerID    PlayerID
	DisplayName string
	Wins        int
}
