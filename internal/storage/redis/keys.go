package redis

import (
	"fmt"

	"github.com/mcoot/chessclub/internal/model"
)

// playerKey returns the key holding a player's JSON row
func playerKey(prefix string, id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", prefix, id)
}

// ratingIndexKey returns the sorted set ordering players by rating.
// Scores are negated elo so an ascending range is the leaderboard order.
func ratingIndexKey(prefix string) string {
	return fmt.Sprintf("%s:idx:rating", prefix)
}

// sequenceKey returns the counter used to assign player ids
func sequenceKey(prefix string) string {
	return fmt.Sprintf("%s:seq:player", prefix)
}

// indexMember zero-pads the id so equal scores fall back to insertion order
func indexMember(seq int64) string {
	return fmt.Sprintf("%020d", seq)
}
