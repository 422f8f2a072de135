package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/chessclub/internal/middleware"
)

// Logging creates request logging middleware for pages, fragments and streams
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "web")))
}
