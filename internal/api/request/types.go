package request

import (
	"bytes"
	"encoding/json"

	"github.com/mcoot/chessclub/internal/services/leaderboard"
)

// CreatePlayerRequest is the request body for adding a player
type CreatePlayerRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email,omitempty"`
	Elo   EloText `json:"elo,omitempty"`
}

// Fields converts the request into form input
func (r CreatePlayerRequest) Fields() leaderboard.Fields {
	return leaderboard.Fields{
		Name:  r.Name,
		Email: r.Email,
		Elo:   string(r.Elo),
	}
}

// EloText is the elo field as typed; clients may send a number or a string
type EloText string

// UnmarshalJSON accepts a JSON number, string or null
func (e *EloText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*e = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = EloText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*e = EloText(n.String())
	return nil
}
