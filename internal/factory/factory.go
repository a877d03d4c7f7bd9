package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/wordduel/wordduel-go/internal/dependencies/clock"
	"github.com/wordduel/wordduel-go/internal/dependencies/random"
	"github.com/wordduel/wordduel-go/internal/services/auth"
	"github.com/wordduel/wordduel-go/internal/services/challenge"
	"github.com/wordduel/wordduel-go/internal/services/feedback"
	"github.com/wordduel/wordduel-go/internal/services/match"
	"github.com/wordduel/wordduel-go/internal/services/matchmaking"
	"github.com/wordduel/wordduel-go/internal/services/stats"
	"github.com/wordduel/wordduel-go/internal/services/tiebreak"
	"github.com/wordduel/wordduel-go/internal/services/words"
	"github.com/wordduel/wordduel-go/internal/sse"
	"github.com/wordduel/wordduel-go/internal/storage"
	"github.com/wordduel/wordduel-go/internal/storage/memory"
	redisstorage "github.com/wordduel/wordduel-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	FeedbackService    *feedback.Service
	TiebreakService    *tiebreak.Service
	MatchController    *match.Controller
	WordService        *words.Service
	MatchmakingService *matchmaking.Service
	ChallengeService   *challenge.Service
	StatsService       *stats.Service
	AuthService        *auth.Service
	HubManager         *sse.HubManager
	Broadcaster        *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// ChallengeConfig holds configuration for challenges (optional)
	ChallengeConfig challenge.Config
	// WordFetcher supplies secret words from an external source (optional)
	// If nil, only stored word lists are used
	WordFetcher words.Fetcher
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create services
	feedbackService := feedback.New()
	tiebreakService := tiebreak.New()
	matchController := match.NewController(feedbackService, tiebreakService, clk, logger)
	wordService := words.New(store, cfg.WordFetcher, rnd, logger)
	matchmakingService := matchmaking.New(matchController, wordService, store, rnd, clk, logger)
	challengeService := challenge.New(store, matchController, wordService, clk, cfg.ChallengeConfig, logger)
	statsService := stats.New(store, clk, logger)
	authService := auth.New(store, clk, cfg.AuthConfig)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		FeedbackService:    feedbackService,
		TiebreakService:    tiebreakService,
		MatchController:    matchController,
		WordService:        wordService,
		MatchmakingService: matchmakingService,
		ChallengeService:   challengeService,
		StatsService:       statsService,
		AuthService:        authService,
		HubManager:         hubManager,
		Broadcaster:        broadcaster,
	}
}
