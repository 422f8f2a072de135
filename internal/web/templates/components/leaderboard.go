package components

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/chessclub/internal/services/leaderboard"
)

const (
	// LeaderboardID is the element swapped by fragment loads and SSE pushes
	LeaderboardID = "leaderboard"

	emptyLeaderboardText = "No players found. Add some to get started!"
)

var leaderboardColumns = []string{"Rank", "Name", "Elo", "Played", "Wins", "Losses", "Draws"}

// Leaderboard renders the player list section for a view snapshot.
// With oob set the section carries hx-swap-oob so it can ride along other responses.
func Leaderboard(state leaderboard.ViewState, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section id="` + LeaderboardID + `" class="leaderboard" data-status="` + string(state.Status) + `"`)
		if oob {
			b.WriteString(` hx-swap-oob="true"`)
		}
		b.WriteString(`>`)
		writeLeaderboardBody(&b, state)
		b.WriteString(`</section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeLeaderboardBody(b *strings.Builder, state leaderboard.ViewState) {
	switch state.Status {
	case leaderboard.StatusFailed:
		// The error replaces the table entirely
		b.WriteString(`<p class="error" style="color: red;">` + templ.EscapeString(state.Error) + `</p>`)
		return
	case leaderboard.StatusReady:
	default:
		b.WriteString(`<p class="loading">Loading players...</p>`)
		return
	}

	b.WriteString(`<table class="leaderboard-table"><thead><tr>`)
	for _, col := range leaderboardColumns {
		b.WriteString(`<th>` + col + `</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)

	rows := state.Rows()
	if len(rows) == 0 {
		b.WriteString(`<tr class="placeholder"><td colspan="` + strconv.Itoa(len(leaderboardColumns)) + `">` +
			emptyLeaderboardText + `</td></tr>`)
	}
	for _, row := range rows {
		b.WriteString(`<tr data-player-id="` + templ.EscapeString(string(row.ID)) + `">`)
		cells := []string{
			strconv.Itoa(row.Rank),
			row.Name,
			row.Elo,
			strconv.Itoa(row.GamesPlayed),
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Losses),
			strconv.Itoa(row.Draws),
		}
		for _, cell := range cells {
			b.WriteString(`<td>` + templ.EscapeString(cell) + `</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
}
