package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// PlayersTable is the store table holding club members
const PlayersTable = "players"

// DefaultElo is the starting rating when none (or garbage) is supplied
const DefaultElo = 1200

// ListColumns are the columns requested by the leaderboard query
var ListColumns = []string{"id", "name", "elo", "games_played", "wins", "losses", "draws"}

// PlayerID is assigned by the store and otherwise opaque
type PlayerID string

// UnmarshalJSON accepts both numeric and string identifiers,
// since the store may use either an identity column or a uuid
func (id *PlayerID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PlayerID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("player id must be a string or a number")
	}
	*id = PlayerID(n.String())
	return nil
}

// Player is a club member as returned by the store.
// Pointer fields are nil when the store omits the column or returns null.
type Player struct {
	ID          PlayerID   `json:"id"`
	Name        string     `json:"name"`
	Email       *string    `json:"email,omitempty"`
	Elo         *int       `json:"elo"`
	IsActive    *bool      `json:"is_active,omitempty"`
	GamesPlayed *int       `json:"games_played"`
	Wins        *int       `json:"wins"`
	Losses      *int       `json:"losses"`
	Draws       *int       `json:"draws"`
	JoinedDate  *time.Time `json:"joined_date,omitempty"`
}

// PlayerCreate is the row sent to the store when registering a player
type PlayerCreate struct {
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	Elo         int     `json:"elo"`
	IsActive    bool    `json:"is_active"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Draws       int     `json:"draws"`
}

// NewPlayerCreate returns a payload with the creation defaults filled in
func NewPlayerCreate(name string) PlayerCreate {
	return PlayerCreate{
		Name:     name,
		Elo:      DefaultElo,
		IsActive: true,
	}
}

// ToPlayer materialises the row a store would persist for this payload
func (c PlayerCreate) ToPlayer(id PlayerID) Player {
	elo, games, wins, losses, draws := c.Elo, c.GamesPlayed, c.Wins, c.Losses, c.Draws
	active := c.IsActive
	p := Player{
		ID:          id,
		Name:        c.Name,
		Elo:         &elo,
		IsActive:    &active,
		GamesPlayed: &games,
		Wins:        &wins,
		Losses:      &losses,
		Draws:       &draws,
	}
	if c.Email != nil {
		email := *c.Email
		p.Email = &email
	}
	return p
}

// IntPtr is a small helper for building players in code and tests
func IntPtr(n int) *int {
	return &n
}

// FormatID renders a numeric id the way the store would
func FormatID(n int64) PlayerID {
	return PlayerID(strconv.FormatInt(n, 10))
}
