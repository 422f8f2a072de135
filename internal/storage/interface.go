package storage

import (
	"context"

	"github.com/mcoot/chessclub/internal/model"
)

// Store is the external table store the leaderboard reads from and writes to.
// Persistence, ordering and access policy all belong to the store.
type Store interface {
	// ListPlayers returns the leaderboard columns of every player,
	// ordered by elo descending. Tie order is up to the store.
	ListPlayers(ctx context.Context) ([]model.Player, error)

	// InsertPlayer creates a player row and returns it as persisted
	InsertPlayer(ctx context.Context, row model.PlayerCreate) (*model.Player, error)
}
