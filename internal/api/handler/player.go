package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/chessclub/internal/api/apierr"
	"github.com/mcoot/chessclub/internal/api/request"
	"github.com/mcoot/chessclub/internal/api/response"
	"github.com/mcoot/chessclub/internal/services/leaderboard"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	coordinator *leaderboard.Coordinator
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(coordinator *leaderboard.Coordinator) *PlayerHandler {
	return &PlayerHandler{
		coordinator: coordinator,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	view := h.coordinator.View()
	err := view.Refresh(r.Context())
	var storeErr *leaderboard.StoreError
	if err != nil && !errors.As(err, &storeErr) {
		apierr.WriteError(w, err)
		return
	}

	// A newer refresh may have settled in the meantime; report what the view shows
	state := view.State()
	if state.Status == leaderboard.StatusFailed {
		apierr.WriteError(w, apierr.NewStoreError(state.Error))
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerListFromState(state))
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	form := h.coordinator.NewForm()
	if err := form.SetFields(req.Fields()); err != nil {
		apierr.WriteError(w, err)
		return
	}

	player, err := form.Submit(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Created(w, response.CreatePlayerResponse{
		Player:  response.PlayerFromModel(player),
		Message: form.State().Message.Text,
	})
}
