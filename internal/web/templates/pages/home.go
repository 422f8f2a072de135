package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/chessclub/internal/services/leaderboard"
	"github.com/mcoot/chessclub/internal/web/templates/components"
	"github.com/mcoot/chessclub/internal/web/templates/layout"
)

// HomeData is everything the leaderboard page shows
type HomeData struct {
	layout.PageData
	Leaderboard leaderboard.ViewState
	Form        leaderboard.FormState
}

// Home renders the club page: heading, live leaderboard and the add-player form
func Home(data HomeData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		// The hidden sink receives pushed events; their content swaps out of band
		if _, err := io.WriteString(w, `<h1>Office Chess Club Leaderboard</h1>`+
			`<div hx-ext="sse" sse-connect="/events"><div sse-swap="leaderboard-update" hx-swap="none" hidden></div>`); err != nil {
			return err
		}
		if err := components.Leaderboard(data.Leaderboard, false).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}
		return components.AddPlayerForm(data.Form).Render(ctx, w)
	})
	return layout.Page(data.PageData, body)
}
