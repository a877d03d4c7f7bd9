package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings for different entity types. Game records and the
	// leaderboard are kept without expiry; guests and challenges age out.
	GuestPlayerTTL time.Duration
	ChallengeTTL   time.Duration
	RecordTTL      time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		GuestPlayerTTL: 24 * time.Hour,
		ChallengeTTL:   24 * time.Hour,
		RecordTTL:      0,
	}
}
