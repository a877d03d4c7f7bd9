package response

import (
	"time"

	"github.com/samber/lo"

	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/services/auth"
	"github.com/wordduel/wordduel-go/internal/services/match"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Mode represents a game mode
type Mode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BoardRows   int    `json:"board_rows"`
	BoardCols   int    `json:"board_cols"`
	Description string `json:"description"`
}

// ModeFromModel converts model.Mode
func ModeFromModel(m model.Mode) Mode {
	return Mode{
		ID:          string(m.ID),
		Name:        m.Name,
		BoardRows:   m.BoardRows,
		BoardCols:   m.BoardCols,
		Description: m.Description,
	}
}

// Guess represents a single guess and its feedback
type Guess struct {
	Word     string         `json:"word,omitempty"`
	Feedback model.Feedback `json:"feedback"`
}

// GameState is a per-viewer projection of a duel. The viewer's own
// guesses include the guessed words; the opponent's show feedback only.
type GameState struct {
	ID           string   `json:"id"`
	Mode         string   `json:"mode"`
	Status       string   `json:"status"`
	Players      []string `json:"players"`
	WordLength   int      `json:"word_length"`
	MaxAttempts  int      `json:"max_attempts"`
	MyGuesses    []Guess  `json:"my_guesses"`
	OpponentRows []Guess  `json:"opponent_rows"`
	Winner       *string  `json:"winner,omitempty"`
}

// GameStateFromView converts a session view for the given viewer
func GameStateFromView(v *model.SessionView, viewer model.PlayerID) GameState {
	players := lo.Map(v.Players, func(id model.PlayerID, _ int) string {
		return string(id)
	})

	var mine, theirs []Guess
	for playerID, history := range v.Guesses {
		for _, g := range history {
			if playerID == viewer {
				mine = append(mine, Guess{Word: g.Word, Feedback: g.Feedback})
			} else {
				theirs = append(theirs, Guess{Feedback: g.Feedback})
			}
		}
	}

	var winner *string
	if v.Winner != "" {
		w := string(v.Winner)
		winner = &w
	}

	return GameState{
		ID:           string(v.ID),
		Mode:         string(v.Mode),
		Status:       string(v.Status),
		Players:      players,
		WordLength:   v.WordLength,
		MaxAttempts:  v.MaxAttempts,
		MyGuesses:    mine,
		OpponentRows: theirs,
		Winner:       winner,
	}
}

// GuessResponse is the response after submitting a guess
type GuessResponse struct {
	Feedback model.Feedback `json:"feedback"`
	Attempt  int            `json:"attempt"`
	Over     bool           `json:"over"`
	Word     string         `json:"word,omitempty"`
	Winner   *string        `json:"winner,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

// GuessResponseFromOutcome converts a guess outcome
func GuessResponseFromOutcome(o *match.GuessOutcome) GuessResponse {
	resp := GuessResponse{
		Feedback: o.Feedback,
		Attempt:  o.Attempt,
		Over:     o.Over,
	}
	if o.Over {
		resp.Word = o.Word
		resp.Reason = string(o.Resolution.Reason)
		if o.Resolution.Winner != "" {
			w := string(o.Resolution.Winner)
			resp.Winner = &w
		}
	}
	return resp
}

// QueueStatus is the response after joining a matchmaking queue
type QueueStatus struct {
	Matched bool     `json:"matched"`
	GameID  string   `json:"game_id,omitempty"`
	Mode    string   `json:"mode,omitempty"`
	Players []string `json:"players,omitempty"`
}

// Challenge represents a challenge in API responses
type Challenge struct {
	ID           string    `json:"id"`
	ChallengerID string    `json:"challenger_id"`
	ChallengedID string    `json:"challenged_id"`
	Status       string    `json:"status"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ChallengeFromModel converts model.Challenge
func ChallengeFromModel(c *model.Challenge) Challenge {
	return Challenge{
		ID:           string(c.ID),
		ChallengerID: string(c.ChallengerID),
		ChallengedID: string(c.ChallengedID),
		Status:       string(c.Status),
		ExpiresAt:    c.ExpiresAt,
	}
}

// LeaderboardEntry represents a leaderboard row
type LeaderboardEntry struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Wins        int    `json:"wins"`
}

// LeaderboardFromModel converts leaderboard entries
func LeaderboardFromModel(entries []model.LeaderboardEntry) []LeaderboardEntry {
	return lo.Map(entries, func(e model.LeaderboardEntry, _ int) LeaderboardEntry {
		return LeaderboardEntry{
			PlayerID:    string(e.PlayerID),
			DisplayName: e.DisplayName,
			Wins:        e.Wins,
		}
	})
}

// GameRecord represents a completed duel's record
type GameRecord struct {
	ID          string     `json:"id"`
	Word        string     `json:"word,omitempty"`
	Mode        string     `json:"mode"`
	Players     []string   `json:"players"`
	Status      string     `json:"status"`
	Winner      *string    `json:"winner,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// GameRecordFromModel converts model.GameRecord. The secret word is
// only exposed once the game has completed.
func GameRecordFromModel(r *model.GameRecord) GameRecord {
	players := lo.Map(r.Players, func(id model.PlayerID, _ int) string {
		return string(id)
	})

	resp := GameRecord{
		ID:        string(r.ID),
		Mode:      string(r.Mode),
		Players:   players,
		Status:    string(r.Status),
		Reason:    string(r.Reason),
		CreatedAt: r.CreatedAt,
	}
	if r.Status == model.SessionStatusCompleted {
		resp.Word = r.Word
		if !r.CompletedAt.IsZero() {
			t := r.CompletedAt
			resp.CompletedAt = &t
		}
		if r.Winner != "" {
			w := string(r.Winner)
			resp.Winner = &w
		}
	}
	return resp
}
