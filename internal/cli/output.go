package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintf(o.w, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *PlayerList:
		o.printPlayerList(v)
	case *AddPlayerResult:
		o.printAddPlayerResult(v)
	case *HealthResult:
		_, _ = fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case *LeaderboardSnapshot:
		o.printSnapshot(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// RankedRow mirrors one leaderboard row of the API
type RankedRow struct {
	ID          string `json:"id"`
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Elo         string `json:"elo"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`
}

// PlayerList is the response of GET /api/v1/players
type PlayerList struct {
	Players   []RankedRow `json:"players"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Player is a stored player
type Player struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	Elo         *int    `json:"elo"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Draws       int     `json:"draws"`
}

// AddPlayerRequest is the body of POST /api/v1/players
type AddPlayerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Elo   string `json:"elo,omitempty"`
}

// AddPlayerResult is the response of POST /api/v1/players
type AddPlayerResult struct {
	Player  Player `json:"player"`
	Message string `json:"message"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayerList(l *PlayerList) {
	if len(l.Players) == 0 {
		_, _ = fmt.Fprintln(o.w, "No players found. Add some to get started!")
		return
	}
	o.printRows(l.Players)
}

func (o *Output) printRows(rows []RankedRow) {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RANK\tNAME\tELO\tPLAYED\tWINS\tLOSSES\tDRAWS")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.Rank, r.Name, r.Elo, r.GamesPlayed, r.Wins, r.Losses, r.Draws)
	}
	_ = tw.Flush()
}

func (o *Output) printAddPlayerResult(r *AddPlayerResult) {
	_, _ = fmt.Fprintln(o.w, r.Message)
	elo := "N/A"
	if r.Player.Elo != nil {
		elo = fmt.Sprintf("%d", *r.Player.Elo)
	}
	_, _ = fmt.Fprintf(o.w, "ID: %s\nElo: %s\n", r.Player.ID, elo)
}
