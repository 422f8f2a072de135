package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/chessclub/internal/services/leaderboard"
	"github.com/mcoot/chessclub/internal/web/handler"
	"github.com/mcoot/chessclub/internal/web/middleware"
	"github.com/mcoot/chessclub/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	Coordinator *leaderboard.Coordinator
	Hub         *sse.Hub
	StaticDir   string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	hub := cfg.Hub
	if hub == nil {
		hub = sse.NewHub(cfg.Logger)
		go hub.Run()
	}

	leaderboardHandler := handler.NewLeaderboardHandler(cfg.Coordinator, hub, cfg.Logger)

	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	r.HandleFunc("/leaderboard", leaderboardHandler.Leaderboard).Methods(http.MethodGet)
	r.HandleFunc("/events", leaderboardHandler.Events).Methods(http.MethodGet)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Flash())
	pages.HandleFunc("/", leaderboardHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/players", leaderboardHandler.AddPlayer).Methods(http.MethodPost)

	return r
}
