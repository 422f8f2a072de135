package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/chessclub/internal/dependencies/clock"
	"github.com/mcoot/chessclub/internal/model"
	"github.com/mcoot/chessclub/internal/storage"
)

// Storage is an in-memory implementation of the store.
// Ties on elo keep insertion order; players without an elo sort last.
type Storage struct {
	mu      sync.RWMutex
	clock   clock.Clock
	players []model.Player
	nextID  int64
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	if clk == nil {
		clk = clock.New()
	}
	return &Storage{
		clock:  clk,
		nextID: 1,
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) ListPlayers(ctx context.Context) ([]model.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	players := make([]model.Player, len(s.players))
	copy(players, s.players)
	s.mu.RUnlock()

	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i].Elo, players[j].Elo
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})

	// Only the leaderboard columns are selected
	for i := range players {
		players[i].Email = nil
		players[i].IsActive = nil
		players[i].JoinedDate = nil
	}
	return players, nil
}

func (s *Storage) InsertPlayer(ctx context.Context, row model.PlayerCreate) (*model.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	player := row.ToPlayer(model.FormatID(s.nextID))
	joined := s.clock.Now()
	player.JoinedDate = &joined
	s.nextID++

	s.players = append(s.players, player)

	created := player
	return &created, nil
}

// Seed stores players verbatim, bypassing creation defaults.
// Players without an id are given the next sequential one.
func (s *Storage) Seed(players ...model.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range players {
		if p.ID == "" {
			p.ID = model.FormatID(s.nextID)
			s.nextID++
		}
		s.players = append(s.players, p)
	}
}

// Len returns the number of stored players
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
