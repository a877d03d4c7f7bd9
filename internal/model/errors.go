package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Session errors
	ErrInvalidPlayerSet   = errors.New("session requires exactly two distinct players")
	ErrUnknownMode        = errors.New("unknown game mode")
	ErrSessionExists      = errors.New("session id already in use")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionNotActive   = errors.New("session is not active")
	ErrNotParticipant     = errors.New("player is not part of this session")
	ErrInvalidGuessLength = errors.New("guess length does not match word length")

	// Matchmaking errors
	ErrAlreadyQueued = errors.New("player is already waiting for a match")

	// Challenge errors
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrChallengeClosed   = errors.New("challenge is no longer open")
	ErrChallengeExpired  = errors.New("challenge has expired")

	// Record errors
	ErrRecordNotFound = errors.New("game record not found")

	// Word list errors
	ErrNoWordsForLength = errors.New("no words available for requested length")
)
