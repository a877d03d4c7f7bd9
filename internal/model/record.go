package model

import "time"

// GameRecord is the persistent trace of a duel: written once when the
// match is made and again after resolution. Completed records are what
// history and the leaderboard are built from; in-flight session state
// never touches storage.
type GameRecord struct {
	ID          SessionID
	Word        string
	Mode        ModeID
	Players     []PlayerID
	Status      SessionStatus
	Winner      PlayerID      // empty for ties and active games
	Reason      ResolveReason // empty until resolution
	CreatedAt   time.Time
	CompletedAt time.Time // zero until resolution
}
