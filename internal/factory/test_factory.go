package factory

import (
	"context"
	"time"

	"github.com/wordduel/wordduel-go/internal/dependencies/mocks"
	"github.com/wordduel/wordduel-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, Config{}, nil)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestWords seeds small word lists for testing
func (t *TestApp) LoadTestWords() error {
	fives := []string{
		"APPLE", "ALLOY", "ALERT", "BEACH", "CRANE",
		"DRIVE", "EAGLE", "LOLLY", "PLANT", "STONE",
	}
	sixes := []string{
		"PLANET", "BASKET", "CANDLE", "GARDEN", "SILVER",
	}
	ctx := context.Background()
	if err := t.Storage.SaveWordList(ctx, 5, fives); err != nil {
		return err
	}
	return t.Storage.SaveWordList(ctx, 6, sixes)
}
