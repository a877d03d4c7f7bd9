package redis

import (
	"fmt"

	"github.com/wordduel/wordduel-go/internal/model"
)

// Key prefix for all duel-related data
const keyPrefix = "wduel"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// recordKey returns the Redis key for a GameRecord
func recordKey(id model.SessionID) string {
	return fmt.Sprintf("%s:record:%s", keyPrefix, id)
}

// challengeKey returns the Redis key for a Challenge
func challengeKey(id model.SessionID) string {
	return fmt.Sprintf("%s:challenge:%s", keyPrefix, id)
}

// waitingChallengesKey returns the Redis key for the SET of open challenge ids
func waitingChallengesKey() string {
	return fmt.Sprintf("%s:idx:waiting_challenges", keyPrefix)
}

// wordListKey returns the Redis key for the word list of a given length
func wordListKey(length int) string {
	return fmt.Sprintf("%s:words:%d", keyPrefix, length)
}

// leaderboardKey returns the Redis key for the win-count sorted set
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}
