package redis

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/chessclub/internal/dependencies/clock"
	"github.com/mcoot/chessclub/internal/model"
	"github.com/mcoot/chessclub/internal/storage"
)

// Storage is a Redis-backed store, handy for running the club locally
type Storage struct {
	client *redis.Client
	clock  clock.Clock
	prefix string
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
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

	return NewWithClient(client, cfg, clk), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, clk clock.Clock) *Storage {
	if clk == nil {
		clk = clock.New()
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		clock:  clk,
		prefix: prefix,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) ListPlayers(ctx context.Context) ([]model.Player, error) {
	members, err := s.client.ZRange(ctx, ratingIndexKey(s.prefix), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(members) == 0 {
		return []model.Player{}, nil
	}

	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = playerKey(s.prefix, memberID(m))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]model.Player, 0, len(values))
	for _, val := range values {
		raw, ok := val.(string)
		if !ok {
			continue // Index entry without a row
		}
		var player model.Player
		if err := json.Unmarshal([]byte(raw), &player); err != nil {
			continue // Skip invalid data
		}
		// Only the leaderboard columns are selected
		player.Email = nil
		player.IsActive = nil
		player.JoinedDate = nil
		players = append(players, player)
	}

	return players, nil
}

func (s *Storage) InsertPlayer(ctx context.Context, row model.PlayerCreate) (*model.Player, error) {
	seq, err := s.client.Incr(ctx, sequenceKey(s.prefix)).Result()
	if err != nil {
		return nil, err
	}

	player := row.ToPlayer(model.FormatID(seq))
	joined := s.clock.Now()
	player.JoinedDate = &joined

	data, err := json.Marshal(player)
	if err != nil {
		return nil, err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(s.prefix, player.ID), data, 0)
	pipe.ZAdd(ctx, ratingIndexKey(s.prefix), redis.Z{
		Score:  ratingScore(player.Elo),
		Member: indexMember(seq),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return &player, nil
}

// ratingScore negates elo; unrated players sort after everyone else
func ratingScore(elo *int) float64 {
	if elo == nil {
		return math.Inf(1)
	}
	return -float64(*elo)
}

func memberID(member string) model.PlayerID {
	trimmed := strings.TrimLeft(member, "0")
	if _, err := strconv.ParseInt(trimmed, 10, 64); err != nil {
		return model.PlayerID(member)
	}
	return model.PlayerID(trimmed)
}
