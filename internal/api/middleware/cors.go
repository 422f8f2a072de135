package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/mcoot/chessclub/internal/middleware"
)

// CORS allows browser clients served from origins to call the API.
// With no origins configured cross-origin requests are refused.
func CORS(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}
	if len(origins) == 0 {
		// cors treats an empty list as "*"
		opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
	}
	return cors.Handler(opts)
}
