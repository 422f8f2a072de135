package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/chessclub/internal/api/apierr"
	"github.com/mcoot/chessclub/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// The JSON error names the request id so it can be matched to the log entry.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError(middleware.GetRequestID(r.Context())))
}
