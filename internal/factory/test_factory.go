package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/chessclub/internal/dependencies/mocks"
	"github.com/mcoot/chessclub/internal/model"
	"github.com/mcoot/chessclub/internal/storage"
	"github.com/mcoot/chessclub/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Memory    *memory.Storage
}

// NewTestApp creates an App over an in-memory store and a fixed clock
func NewTestApp() *TestApp {
	mockClock := newMockClock()
	store := memory.New(mockClock)

	return &TestApp{
		App:       newWithDependencies(store, mockClock, slog.New(slog.NewJSONHandler(io.Discard, nil))),
		MockClock: mockClock,
		Memory:    store,
	}
}

// NewTestAppWithStore creates an App over an arbitrary store, e.g. a mocks.MockStore
func NewTestAppWithStore(store storage.Store) *TestApp {
	mockClock := newMockClock()
	return &TestApp{
		App:       newWithDependencies(store, mockClock, slog.New(slog.NewJSONHandler(io.Discard, nil))),
		MockClock: mockClock,
	}
}

// SeedPlayers loads players into the in-memory store
func (t *TestApp) SeedPlayers(players ...model.Player) {
	t.Memory.Seed(players...)
}

func newMockClock() *mocks.MockClock {
	return mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
}
