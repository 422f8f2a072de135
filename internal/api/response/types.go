package response

import (
	"time"

	"github.com/mcoot/chessclub/internal/model"
	"github.com/mcoot/chessclub/internal/services/leaderboard"
)

// Player represents a stored player in API responses
type Player struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       *string    `json:"email,omitempty"`
	Elo         *int       `json:"elo"`
	IsActive    *bool      `json:"is_active,omitempty"`
	GamesPlayed int        `json:"games_played"`
	Wins        int        `json:"wins"`
	Losses      int        `json:"losses"`
	Draws       int        `json:"draws"`
	JoinedDate  *time.Time `json:"joined_date,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		Name:        p.Name,
		Email:       p.Email,
		Elo:         p.Elo,
		IsActive:    p.IsActive,
		GamesPlayed: deref(p.GamesPlayed),
		Wins:        deref(p.Wins),
		Losses:      deref(p.Losses),
		Draws:       deref(p.Draws),
		JoinedDate:  p.JoinedDate,
	}
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

// PlayerList is the ranked leaderboard
type PlayerList struct {
	Players   []leaderboard.RankedRow `json:"players"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// PlayerListFromState converts a settled view snapshot
func PlayerListFromState(s leaderboard.ViewState) PlayerList {
	return PlayerList{
		Players:   s.Rows(),
		UpdatedAt: s.UpdatedAt,
	}
}

// CreatePlayerResponse is returned after a player is added
type CreatePlayerResponse struct {
	Player  Player `json:"player"`
	Message string `json:"message"`
}

// Health is the health check body
type Health struct {
	Status string `json:"status"`
}
