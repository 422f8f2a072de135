package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/chessclub/internal/middleware"
	"github.com/mcoot/chessclub/internal/web/templates/layout"
)

// Recovery creates panic recovery middleware for the web interface.
// Full page loads get the error inside the page shell; htmx requests get a fragment.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	message := "Something went wrong. Please try again later."
	if id := middleware.GetRequestID(r.Context()); id != "" {
		message += " (request " + id + ")"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)

	if r.Header.Get("HX-Request") == "true" {
		_, _ = w.Write([]byte(`<p class="error" style="color: red;">` + templ.EscapeString(message) + `</p>`))
		return
	}

	page := layout.Page(layout.PageData{
		Title: "Error",
		Flash: &layout.FlashMessage{Type: FlashError, Message: message},
	}, templ.Raw(`<h1>Internal Server Error</h1><p><a href="/">Return to the leaderboard</a></p>`))
	_ = page.Render(context.WithoutCancel(r.Context()), w)
}
