package storage

import (
	"context"

	"github.com/wordduel/wordduel-go/internal/model"
)

// Storage defines the interface for data persistence. In-flight session
// state never goes through here; storage holds players, challenge
// invitations, word lists, completed game records and win counts.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Game record operations
	SaveGameRecord(ctx context.Context, record *model.GameRecord) error
	GetGameRecord(ctx context.Context, id model.SessionID) (*model.GameRecord, error)

	// Challenge operations
	SaveChallenge(ctx context.Context, challenge *model.Challenge) error
	GetChallenge(ctx context.Context, id model.SessionID) (*model.Challenge, error)
	ListWaitingChallenges(ctx context.Context) ([]*model.Challenge, error)

	// Word list operations, keyed by word length
	SaveWordList(ctx context.Context, length int, words []string) error
	GetWordList(ctx context.Context, length int) ([]string, error)

	// Leaderboard operations
	IncrementWins(ctx context.Context, playerID model.PlayerID) error
	TopPlayers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}
