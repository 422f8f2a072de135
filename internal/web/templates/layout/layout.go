// Package layout holds the page shell shared by every full-page render.
package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string
	Message string
}

// PageData is common to every page
type PageData struct {
	Title string
	Flash *FlashMessage
}

// Page wraps body in the document shell with htmx and the SSE extension loaded
func Page(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := "Office Chess Club"
		if data.Title != "" {
			title = data.Title + " - " + title
		}
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(title)+`</title>`+
			`<link rel="stylesheet" href="/static/style.css">`+
			`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`+
			`<script src="https://unpkg.com/htmx-ext-sse@2.2.2/sse.js"></script>`+
			`</head><body><main class="app">`); err != nil {
			return err
		}
		if data.Flash != nil {
			if _, err := io.WriteString(w, `<div class="flash flash-`+templ.EscapeString(data.Flash.Type)+`" role="status">`+
				templ.EscapeString(data.Flash.Message)+`</div>`); err != nil {
				return err
			}
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
