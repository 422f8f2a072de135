package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/chessclub/internal/middleware"
	"github.com/mcoot/chessclub/internal/services/leaderboard"
	webmw "github.com/mcoot/chessclub/internal/web/middleware"
	"github.com/mcoot/chessclub/internal/web/sse"
	"github.com/mcoot/chessclub/internal/web/templates/components"
	"github.com/mcoot/chessclub/internal/web/templates/layout"
	"github.com/mcoot/chessclub/internal/web/templates/pages"
)

// LeaderboardHandler serves the club page, its fragments and the event stream
type LeaderboardHandler struct {
	coordinator *leaderboard.Coordinator
	hub         *sse.Hub
	logger      *slog.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(coordinator *leaderboard.Coordinator, hub *sse.Hub, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		coordinator: coordinator,
		hub:         hub,
		logger:      logger.With(slog.String("component", "web")),
	}
}

// Home renders the full page after (re)activating the view
func (h *LeaderboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	view := h.coordinator.View()
	h.logRefreshError(r, view.Activate(r.Context()))

	h.renderHome(w, r, http.StatusOK, leaderboard.FormState{})
}

// Leaderboard renders just the leaderboard section
func (h *LeaderboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	view := h.coordinator.View()
	h.logRefreshError(r, view.Refresh(r.Context()))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Leaderboard(view.State(), false).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// AddPlayer submits the add-player form.
// htmx posts get the form fragment back (plus the refreshed table out of band on success);
// plain posts follow post/redirect/get on success and re-render the page otherwise.
func (h *LeaderboardHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		webmw.SetFlash(w, webmw.FlashError, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := h.coordinator.NewForm()
	fields := leaderboard.Fields{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Elo:   r.PostFormValue("elo"),
	}
	if err := form.SetFields(fields); err != nil {
		http.Error(w, "Conflict", http.StatusConflict)
		return
	}

	_, err := form.Submit(r.Context())
	state := form.State()

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if renderErr := components.AddPlayerForm(state).Render(r.Context(), w); renderErr != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if err == nil {
			_ = components.Leaderboard(h.coordinator.View().State(), true).Render(r.Context(), w)
		}
		return
	}

	switch {
	case err == nil:
		webmw.SetFlash(w, webmw.FlashSuccess, state.Message.Text)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, leaderboard.ErrNameRequired):
		h.renderHome(w, r, http.StatusUnprocessableEntity, state)
	default:
		h.renderHome(w, r, http.StatusBadGateway, state)
	}
}

// Events streams leaderboard updates, starting with the current table
func (h *LeaderboardHandler) Events(w http.ResponseWriter, r *http.Request) {
	var initial []byte
	state := h.coordinator.View().State()
	if state.Status == leaderboard.StatusReady || state.Status == leaderboard.StatusFailed {
		msg, err := sse.LeaderboardEvent(r.Context(), state)
		if err != nil {
			h.logger.Error("failed to render initial leaderboard event", slog.Any("error", err))
		}
		initial = msg
	}

	sse.ServeSSE(w, r, h.hub, middleware.GetRequestID(r.Context()), initial)
}

func (h *LeaderboardHandler) renderHome(w http.ResponseWriter, r *http.Request, status int, form leaderboard.FormState) {
	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "Leaderboard",
			Flash: webmw.GetFlash(r.Context()),
		},
		Leaderboard: h.coordinator.View().State(),
		Form:        form,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render home page", slog.Any("error", err))
	}
}

// logRefreshError logs refresh failures the page does not already show
func (h *LeaderboardHandler) logRefreshError(r *http.Request, err error) {
	var storeErr *leaderboard.StoreError
	if err == nil || errors.As(err, &storeErr) {
		return
	}
	h.logger.Warn("leaderboard refresh skipped",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("error", err.Error()))
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
