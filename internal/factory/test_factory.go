package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/faircommit/factiondraft/internal/catalog"
	"github.com/faircommit/factiondraft/internal/dependencies/mocks"
	"github.com/faircommit/factiondraft/internal/dependencies/random"
	"github.com/faircommit/factiondraft/internal/services/auth"
	"github.com/faircommit/factiondraft/internal/services/game"
	"github.com/faircommit/factiondraft/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mock clock for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing. Time is mocked so tests
// can drive token expiry; randomness stays real so dealt hands behave like
// production.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	rnd := random.New()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	cat, err := catalog.Load()
	if err != nil {
		panic(err)
	}

	app := newWithDependencies(store, cat, mockClock, rnd, auth.DefaultConfig(), game.DefaultConfig(), logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
