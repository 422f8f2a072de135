package mocks

import (
	"context"
	"sync"

	"github.com/mcoot/chessclub/internal/model"
	"github.com/mcoot/chessclub/internal/storage"
)

// MockStore is a scriptable store. Unset funcs return empty results.
type MockStore struct {
	ListFunc   func(ctx context.Context) ([]model.Player, error)
	InsertFunc func(ctx context.Context, row model.PlayerCreate) (*model.Player, error)

	mu          sync.Mutex
	listCalls   int
	insertCalls int
	inserted    []model.PlayerCreate
}

var _ storage.Store = (*MockStore)(nil)

// NewMockStore creates a MockStore that lists players and echoes inserts
func NewMockStore(players ...model.Player) *MockStore {
	return &MockStore{
		ListFunc: func(context.Context) ([]model.Player, error) {
			return players, nil
		},
	}
}

func (m *MockStore) ListPlayers(ctx context.Context) ([]model.Player, error) {
	m.mu.Lock()
	m.listCalls++
	fn := m.ListFunc
	m.mu.Unlock()

	if fn == nil {
		return []model.Player{}, nil
	}
	return fn(ctx)
}

func (m *MockStore) InsertPlayer(ctx context.Context, row model.PlayerCreate) (*model.Player, error) {
	m.mu.Lock()
	m.insertCalls++
	m.inserted = append(m.inserted, row)
	fn := m.InsertFunc
	m.mu.Unlock()

	if fn == nil {
		p := row.ToPlayer("1")
		return &p, nil
	}
	return fn(ctx, row)
}

// ListCalls returns how many times ListPlayers was called
func (m *MockStore) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// InsertCalls returns how many times InsertPlayer was called
func (m *MockStore) InsertCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertCalls
}

// Inserted returns every row passed to InsertPlayer
func (m *MockStore) Inserted() []model.PlayerCreate {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := make([]model.PlayerCreate, len(m.inserted))
	copy(rows, m.inserted)
	return rows
}
