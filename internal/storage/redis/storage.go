package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, playerKey(player.ID), data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Game record operations

func (s *Storage) SaveGameRecord(ctx context.Context, record *model.GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, recordKey(record.ID), data, s.cfg.RecordTTL).Err()
}

func (s *Storage) GetGameRecord(ctx context.Context, id model.SessionID) (*model.GameRecord, error) {
	data, err := s.client.Get(ctx, recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRecordNotFound
		}
		return nil, err
	}

	var record model.GameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Challenge operations

func (s *Storage) SaveChallenge(ctx context.Context, challenge *model.Challenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return err
	}

	key := challengeKey(challenge.ID)
	indexKey := waitingChallengesKey()

	// Pipeline keeps the waiting-challenges index in step with the record
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.ChallengeTTL)
	if challenge.Status == model.ChallengeStatusWaiting {
		pipe.SAdd(ctx, indexKey, string(challenge.ID))
	} else {
		pipe.SRem(ctx, indexKey, string(challenge.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetChallenge(ctx context.Context, id model.SessionID) (*model.Challenge, error) {
	data, err := s.client.Get(ctx, challengeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrChallengeNotFound
		}
		return nil, err
	}

	var challenge model.Challenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (s *Storage) ListWaitingChallenges(ctx context.Context) ([]*model.Challenge, error) {
	ids, err := s.client.SMembers(ctx, waitingChallengesKey()).Result()
	if err != nil {
		return nil, err
	}

	var waiting []*model.Challenge
	for _, id := range ids {
		challenge, err := s.GetChallenge(ctx, model.SessionID(id))
		if err != nil {
			if errors.Is(err, model.ErrChallengeNotFound) {
				// Record expired out from under the index
				_ = s.client.SRem(ctx, waitingChallengesKey(), id).Err()
				continue
			}
			return nil, err
		}
		waiting = append(waiting, challenge)
	}
	return waiting, nil
}

// Word list operations

func (s *Storage) SaveWordList(ctx context.Context, length int, words []string) error {
	data, err := json.Marshal(words)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, wordListKey(length), data, 0).Err()
}

func (s *Storage) GetWordList(ctx context.Context, length int) ([]string, error) {
	data, err := s.client.Get(ctx, wordListKey(length)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoWordsForLength
		}
		return nil, err
	}

	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, model.ErrNoWordsForLength
	}
	return words, nil
}

// Leaderboard operations

func (s *Storage) IncrementWins(ctx context.Context, playerID model.PlayerID) error {
	return s.client.ZIncrBy(ctx, leaderboardKey(), 1, string(playerID)).Err()
}

func (s *Storage) TopPlayers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	results, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(results))
	for _, z := range results {
		pid := model.PlayerID(z.Member.(string))
		entry := model.LeaderboardEntry{PlayerID: pid, Wins: int(z.Score)}
		if player, err := s.GetPlayer(ctx, pid); err == nil {
			entry.DisplayName = player.DisplayName
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
