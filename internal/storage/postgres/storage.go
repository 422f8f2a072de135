package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lib/pq"

	"github.com/mcoot/chessclub/internal/model"
	"github.com/mcoot/chessclub/internal/storage"
)

const (
	listQuery = `
		SELECT id::text, name, elo, games_played, wins, losses, draws
		FROM players
		ORDER BY elo DESC NULLS LAST`

	insertQuery = `
		INSERT INTO players (name, email, elo, is_active, games_played, wins, losses, draws)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text, name, email, elo, is_active, games_played, wins, losses, draws`
)

// Storage reads and writes the players table over a direct SQL connection.
// Row-level policies still apply to whichever role the DSN logs in as.
type Storage struct {
	db *sql.DB
}

// Connect opens a pooled connection and verifies it within timeout
func Connect(dsn string, timeout time.Duration) (*Storage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return New(db), nil
}

// New wraps an existing database handle
func New(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Close releases the connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) ListPlayers(ctx context.Context) ([]model.Player, error) {
	rows, err := s.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, translateError(err)
	}
	defer func() { _ = rows.Close() }()

	players := []model.Player{}
	for rows.Next() {
		var (
			p     model.Player
			id    string
			elo   sql.NullInt64
			games sql.NullInt64
			wins  sql.NullInt64
			loss  sql.NullInt64
			draws sql.NullInt64
		)
		if err := rows.Scan(&id, &p.Name, &elo, &games, &wins, &loss, &draws); err != nil {
			return nil, translateError(err)
		}
		p.ID = model.PlayerID(id)
		p.Elo = intOrNil(elo)
		p.GamesPlayed = intOrNil(games)
		p.Wins = intOrNil(wins)
		p.Losses = intOrNil(loss)
		p.Draws = intOrNil(draws)
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return players, nil
}

func (s *Storage) InsertPlayer(ctx context.Context, row model.PlayerCreate) (*model.Player, error) {
	var (
		p      model.Player
		id     string
		email  sql.NullString
		elo    sql.NullInt64
		active sql.NullBool
		games  sql.NullInt64
		wins   sql.NullInt64
		loss   sql.NullInt64
		draws  sql.NullInt64
	)

	var emailArg any
	if row.Email != nil {
		emailArg = *row.Email
	}

	err := s.db.QueryRowContext(ctx, insertQuery,
		row.Name,
		emailArg,
		row.Elo,
		row.IsActive,
		row.GamesPlayed,
		row.Wins,
		row.Losses,
		row.Draws,
	).Scan(&id, &p.Name, &email, &elo, &active, &games, &wins, &loss, &draws)
	if err != nil {
		return nil, translateError(err)
	}

	p.ID = model.PlayerID(id)
	if email.Valid {
		p.Email = &email.String
	}
	if active.Valid {
		p.IsActive = &active.Bool
	}
	p.Elo = intOrNil(elo)
	p.GamesPlayed = intOrNil(games)
	p.Wins = intOrNil(wins)
	p.Losses = intOrNil(loss)
	p.Draws = intOrNil(draws)
	return &p, nil
}

// translateError turns server-side errors into the store's APIError so
// callers see the same shape whichever backend is configured
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	status := http.StatusBadRequest
	switch pqErr.Code {
	case "42501": // insufficient_privilege
		status = http.StatusForbidden
	case "23505": // unique_violation
		status = http.StatusConflict
	case "42P01": // undefined_table
		status = http.StatusNotFound
	}

	return &storage.APIError{
		StatusCode: status,
		Code:       string(pqErr.Code),
		Message:    pqErr.Message,
		Details:    pqErr.Detail,
		Hint:       pqErr.Hint,
	}
}

func intOrNil(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
