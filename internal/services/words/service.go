package words

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wordduel/wordduel-go/internal/dependencies/random"
	"github.com/wordduel/wordduel-go/internal/storage"
)

// Fallback lists used when no external source is configured or the
// fetch fails. Secrets are stored upper case.
var fallbackWords = map[int][]string{
	5: {
		"APPLE", "BEACH", "CLOUD", "DREAM", "EARTH",
		"FLAME", "GHOST", "HEART", "IVORY", "JUICE",
		"KNIFE", "LIGHT", "MAGIC", "NIGHT", "OCEAN",
		"PEACE", "QUEEN", "RADIO", "SMILE", "TIGER",
		"UNITY", "VOICE", "WATER", "YOUTH", "ZEBRA",
	},
	6: {
		"PLANET", "BASKET", "CANDLE", "DRAGON", "FOREST",
		"GARDEN", "HAMMER", "ISLAND", "JUNGLE", "KETTLE",
		"LUMBER", "MARBLE", "NECTAR", "ORANGE", "PEBBLE",
		"RIBBON", "SADDLE", "TEMPLE", "VELVET", "WINTER",
	},
}

// Fetcher retrieves candidate secret words from an external source
type Fetcher interface {
	FetchWords(ctx context.Context, length int) ([]string, error)
}

// Service supplies secret words for new duels. Word lists live in
// storage; an optional Fetcher refreshes them from an external source,
// falling back to the stored list when the fetch fails.
type Service struct {
	storage storage.Storage
	fetcher Fetcher // nil means stored lists only
	random  random.Random
	logger  *slog.Logger
}

// New creates a new words Service
func New(store storage.Storage, fetcher Fetcher, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		fetcher: fetcher,
		random:  rnd,
		logger:  logger.With(slog.String("component", "words")),
	}
}

// LoadDefaults seeds storage with the built-in fallback lists
func (s *Service) LoadDefaults(ctx context.Context) error {
	for length, list := range fallbackWords {
		if err := s.storage.SaveWordList(ctx, length, list); err != nil {
			return err
		}
	}
	return nil
}

// Random returns a secret word of the given length. A configured
// fetcher is tried first; on failure the stored list is used.
func (s *Service) Random(ctx context.Context, length int) (string, error) {
	if s.fetcher != nil {
		fetched, err := s.fetcher.FetchWords(ctx, length)
		if err == nil && len(fetched) > 0 {
			return fetched[s.random.Intn(len(fetched))], nil
		}
		if err != nil {
			s.logger.Warn("word fetch failed, using stored list",
				slog.Int("length", length),
				slog.String("error", err.Error()),
			)
		}
	}

	stored, err := s.storage.GetWordList(ctx, length)
	if err != nil {
		return "", err
	}
	return stored[s.random.Intn(len(stored))], nil
}

// IsKnown reports whether the word appears in the stored list for its
// length. Used for optional guess validation at the boundary.
func (s *Service) IsKnown(ctx context.Context, word string) bool {
	w := strings.ToUpper(strings.TrimSpace(word))
	stored, err := s.storage.GetWordList(ctx, len(w))
	if err != nil {
		return false
	}
	for _, candidate := range stored {
		if candidate == w {
			return true
		}
	}
	return false
}

// Interface for dependency injection
type ServiceInterface interface {
	LoadDefaults(ctx context.Context) error
	Random(ctx context.Context, length int) (string, error)
	IsKnown(ctx context.Context, word string) bool
}

var _ ServiceInterface = (*Service)(nil)
