package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeGameExists         = "GAME_EXISTS"
	CodeGameOver           = "GAME_OVER"
	CodeNotParticipant     = "NOT_PARTICIPANT"
	CodeInvalidGuess       = "INVALID_GUESS"
	CodeInvalidPlayers     = "INVALID_PLAYERS"
	CodeUnknownMode        = "UNKNOWN_MODE"
	CodeAlreadyQueued      = "ALREADY_QUEUED"
	CodeChallengeNotFound  = "CHALLENGE_NOT_FOUND"
	CodeChallengeClosed    = "CHALLENGE_CLOSED"
	CodeChallengeExpired   = "CHALLENGE_EXPIRED"
	CodeRecordNotFound     = "RECORD_NOT_FOUND"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		// Completed games are evicted, so a finished duel and a game
		// that never existed report the same way.
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game no longer available"}}
	case errors.Is(err, model.ErrSessionExists):
		return &httpError{http.StatusConflict, APIError{CodeGameExists, "Game already exists"}}
	case errors.Is(err, model.ErrSessionNotActive):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is already over"}}
	case errors.Is(err, model.ErrNotParticipant):
		return &httpError{http.StatusForbidden, APIError{CodeNotParticipant, "You are not a player in this game"}}
	case errors.Is(err, model.ErrInvalidGuessLength):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGuess, "Guess has the wrong length"}}
	case errors.Is(err, model.ErrInvalidPlayerSet):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayers, "A duel needs two distinct players"}}
	case errors.Is(err, model.ErrUnknownMode):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownMode, "Unknown game mode"}}
	case errors.Is(err, model.ErrAlreadyQueued):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyQueued, "Already waiting in a queue"}}
	case errors.Is(err, model.ErrChallengeNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeChallengeNotFound, "Challenge not found"}}
	case errors.Is(err, model.ErrChallengeClosed):
		return &httpError{http.StatusConflict, APIError{CodeChallengeClosed, "Challenge is no longer open"}}
	case errors.Is(err, model.ErrChallengeExpired):
		return &httpError{http.StatusGone, APIError{CodeChallengeExpired, "Challenge has expired"}}
	case errors.Is(err, model.ErrRecordNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRecordNotFound, "Game record not found"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
