package components

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/chessclub/internal/services/leaderboard"
)

// AddPlayerFormID is the element replaced after an htmx form post
const AddPlayerFormID = "add-player"

// AddPlayerForm renders the registration form for a form snapshot
func AddPlayerForm(state leaderboard.FormState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		disabled := ""
		if state.Submitting {
			disabled = ` disabled`
		}

		var b strings.Builder
		b.WriteString(`<div id="` + AddPlayerFormID + `" class="add-player">`)
		b.WriteString(`<h2>Add New Player</h2>`)
		b.WriteString(`<form method="post" action="/players" hx-post="/players" hx-target="#` + AddPlayerFormID + `" hx-swap="outerHTML" hx-disabled-elt="find input, find button">`)

		b.WriteString(`<div class="field"><label for="playerName">Name:* </label>`)
		b.WriteString(`<input type="text" id="playerName" name="name" required value="` + templ.EscapeString(state.Fields.Name) + `"` + disabled + `></div>`)

		b.WriteString(`<div class="field"><label for="playerEmail">Email: </label>`)
		b.WriteString(`<input type="email" id="playerEmail" name="email" value="` + templ.EscapeString(state.Fields.Email) + `"` + disabled + `></div>`)

		b.WriteString(`<div class="field"><label for="playerElo">Starting Elo (optional, default 1200): </label>`)
		b.WriteString(`<input type="number" id="playerElo" name="elo" placeholder="1200" value="` + templ.EscapeString(state.Fields.Elo) + `"` + disabled + `></div>`)

		label := "Add Player"
		if state.Submitting {
			label = "Adding..."
		}
		b.WriteString(`<button type="submit"` + disabled + `>` + label + `</button>`)
		b.WriteString(`</form>`)

		if msg := state.Message; msg != nil {
			color := "green"
			if msg.Kind == leaderboard.MessageError {
				color = "red"
			}
			b.WriteString(`<p class="message message-` + string(msg.Kind) + `" style="color: ` + color + `;">` +
				templ.EscapeString(msg.Text) + `</p>`)
		}
		b.WriteString(`</div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
